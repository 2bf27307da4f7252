package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInboundJoin(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"join","playerId":"alice"}`))
	require.NoError(t, err)
	assert.Equal(t, MsgJoin, msg.Type)
	assert.Equal(t, "alice", msg.PlayerID)

	// playerId 可缺省，由调用方回退为连接 id
	msg, err = DecodeInbound([]byte(`{"type":"join"}`))
	require.NoError(t, err)
	assert.Empty(t, msg.PlayerID)
}

func TestDecodeInboundInputMissingAxesAreFalse(t *testing.T) {
	msg, err := DecodeInbound([]byte(`{"type":"input","up":true}`))
	require.NoError(t, err)
	assert.Equal(t, InputAxes{Up: true}, msg.Axes())

	msg, err = DecodeInbound([]byte(`{"type":"input"}`))
	require.NoError(t, err)
	assert.Equal(t, InputAxes{}, msg.Axes())
}

func TestDecodeInboundRejectsGarbage(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"type":"teleport","x":1}`))
	assert.Error(t, err, "unknown type is dropped")

	_, err = DecodeInbound([]byte(`not json at all`))
	assert.Error(t, err)

	_, err = DecodeInbound(nil)
	assert.Error(t, err)
}

func TestBuildStateProjection(t *testing.T) {
	w := &World{
		Width:   800,
		Height:  600,
		Points:  []*Point{{ID: 0, X: 10, Y: 20, VX: 0.1, VY: 0.2, Value: 3}},
		Players: map[string]*Player{"c1": {ID: "alice", X: 1, Y: 2, Score: 9, Color: "#FF6B6B"}},
		rng:     testRNG(),
	}

	msg := BuildState(w)
	assert.Equal(t, MsgState, msg.Type)
	require.Len(t, msg.Players, 1)
	assert.Equal(t, PlayerState{ID: "alice", X: 1, Y: 2, Score: 9, Color: "#FF6B6B"}, msg.Players[0])
	require.Len(t, msg.Points, 1)
	assert.Equal(t, PointState{ID: 0, X: 10, Y: 20, Value: 3}, msg.Points[0])

	// 快照不携带点速度等内部字段，线上格式保持扁平
	b, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "vx")
	assert.Contains(t, string(b), `"type":"state"`)
}

func TestBuildStateReturnsFreshStructures(t *testing.T) {
	w := &World{
		Width:   800,
		Height:  600,
		Points:  []*Point{{ID: 0, X: 10, Y: 20, Value: 1}},
		Players: map[string]*Player{"c1": {ID: "alice", X: 1, Y: 2}},
		rng:     testRNG(),
	}

	first := BuildState(w)
	w.Players["c1"].X = 500
	w.Points[0].X = 500
	second := BuildState(w)

	assert.Equal(t, 1.0, first.Players[0].X, "earlier snapshot unaffected by later mutation")
	assert.Equal(t, 10.0, first.Points[0].X)
	assert.Equal(t, 500.0, second.Players[0].X)
}
