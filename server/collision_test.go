package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collisionWorld(points ...*Point) *World {
	return &World{
		Width:   800,
		Height:  600,
		Points:  points,
		Players: make(map[string]*Player),
		rng:     testRNG(),
	}
}

func TestResolveRadiusIsStrict(t *testing.T) {
	cfg := DefaultConfig()

	// 距离恰好等于半径：不收集
	w := collisionWorld(&Point{ID: 0, X: 125, Y: 100, Value: 2})
	w.Players["c1"] = &Player{ID: "p1", X: 100, Y: 100}
	events := Resolve(w, cfg, nil)
	assert.Empty(t, events)
	assert.Equal(t, 0, w.Players["c1"].Score)

	// 半径减 ε：收集
	w = collisionWorld(&Point{ID: 0, X: 124.999, Y: 100, Value: 2})
	w.Players["c1"] = &Player{ID: "p1", X: 100, Y: 100}
	events = Resolve(w, cfg, nil)
	require.Len(t, events, 1)
	assert.Equal(t, CollectionEvent{PlayerID: "p1", PointID: 0, Value: 2}, events[0])
	assert.Equal(t, 2, w.Players["c1"].Score)
}

func TestResolvePreservesCardinalityAndIDs(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg, testRNG())
	// 玩家压在前三个点上，确保本 Tick 有多次收集
	w.Players["c1"] = &Player{ID: "p1", X: w.Points[0].X, Y: w.Points[0].Y}
	w.Players["c2"] = &Player{ID: "p2", X: w.Points[1].X, Y: w.Points[1].Y}

	events := Resolve(w, cfg, nil)
	require.NotEmpty(t, events)

	require.Len(t, w.Points, cfg.PointCount)
	seen := make(map[int]bool, len(w.Points))
	for _, pt := range w.Points {
		seen[pt.ID] = true
	}
	for id := 0; id < cfg.PointCount; id++ {
		assert.True(t, seen[id], "id %d missing after respawn", id)
	}
}

func TestResolveDeterministicWinnerByPlayerID(t *testing.T) {
	cfg := DefaultConfig()

	for i := 0; i < 10; i++ {
		w := collisionWorld(&Point{ID: 0, X: 100, Y: 100, Value: 3})
		// 故意用与排序相反的插入顺序
		w.Players["z-conn"] = &Player{ID: "bbb", X: 100, Y: 100}
		w.Players["a-conn"] = &Player{ID: "aaa", X: 100, Y: 100}

		events := Resolve(w, cfg, nil)
		require.NotEmpty(t, events)
		assert.Equal(t, "aaa", events[0].PlayerID, "lowest player id wins the contested point")
		assert.Equal(t, 3, w.Players["a-conn"].Score)
	}
}

func TestResolveScoresAreMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	w := NewWorld(cfg, testRNG())
	w.Players["c1"] = &Player{ID: "p1", X: 400, Y: 300, Input: InputAxes{Right: true, Down: true}}
	w.Players["c2"] = &Player{ID: "p2", X: 100, Y: 100, Input: InputAxes{Left: true}}

	prev := map[string]int{"c1": 0, "c2": 0}
	for i := 0; i < 300; i++ {
		Integrate(w, cfg)
		Resolve(w, cfg, nil)
		for connID, p := range w.Players {
			require.GreaterOrEqual(t, p.Score, prev[connID], "tick %d", i)
			prev[connID] = p.Score
		}
	}
}

func TestResolveOnCollectSeesUpdatedScore(t *testing.T) {
	cfg := DefaultConfig()
	w := collisionWorld(&Point{ID: 0, X: 100, Y: 100, Value: 2})
	w.Players["c1"] = &Player{ID: "p1", Score: 5, X: 100, Y: 100}

	var gotScore int
	var gotEvent CollectionEvent
	events := Resolve(w, cfg, func(p *Player, ev CollectionEvent) {
		gotScore = p.Score
		gotEvent = ev
	})

	require.Len(t, events, 1)
	assert.Equal(t, 7, gotScore, "callback runs after the increment")
	assert.Equal(t, events[0], gotEvent)
}
