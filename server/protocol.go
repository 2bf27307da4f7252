package server

import (
	"encoding/json"
	"fmt"
)

// 线上消息类型。入站两种、出站三种，均为带 type 字段的扁平 JSON 对象
const (
	MsgJoin      = "join"
	MsgInput     = "input"
	MsgWelcome   = "welcome"
	MsgState     = "state"
	MsgCollected = "collected"
)

// InboundMessage 入站消息的并集结构：join 用 PlayerID，input 用四个轴
// 轴字段缺省即 false
type InboundMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId,omitempty"`
	Up       bool   `json:"up,omitempty"`
	Down     bool   `json:"down,omitempty"`
	Left     bool   `json:"left,omitempty"`
	Right    bool   `json:"right,omitempty"`
}

// Axes 提取输入轴
func (m InboundMessage) Axes() InputAxes {
	return InputAxes{Up: m.Up, Down: m.Down, Left: m.Left, Right: m.Right}
}

// DecodeInbound 解析入站消息；无法解析或类型未知时报错，由调用方丢弃并记日志
// 协议错误永远不终止连接或世界循环
func DecodeInbound(payload []byte) (InboundMessage, error) {
	var m InboundMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return InboundMessage{}, fmt.Errorf("malformed message: %w", err)
	}
	switch m.Type {
	case MsgJoin, MsgInput:
		return m, nil
	default:
		return InboundMessage{}, fmt.Errorf("unknown message type %q", m.Type)
	}
}

// WelcomeMessage join 后私发给发起连接的应答
type WelcomeMessage struct {
	Type        string  `json:"type"`
	PlayerID    string  `json:"playerId"`
	Score       int     `json:"score"`
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`
}

// PlayerState / PointState 广播快照里的轻量投影
type PlayerState struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Score int     `json:"score"`
	Color string  `json:"color"`
}

type PointState struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value int     `json:"value"`
}

// StateMessage 每 Tick 广播给所有连接的世界快照
type StateMessage struct {
	Type    string        `json:"type"`
	Players []PlayerState `json:"players"`
	Points  []PointState  `json:"points"`
}

// CollectedMessage 仅在本 Tick 产生 ≥1 次收集时广播
type CollectedMessage struct {
	Type   string            `json:"type"`
	Points []CollectionEvent `json:"points"`
}

// BuildState 组装只读快照：每次全新结构，慢客户端并发读取不会看到半更新
func BuildState(w *World) StateMessage {
	msg := StateMessage{
		Type:    MsgState,
		Players: make([]PlayerState, 0, len(w.Players)),
		Points:  make([]PointState, 0, len(w.Points)),
	}
	for _, p := range w.Players {
		msg.Players = append(msg.Players, PlayerState{
			ID:    string(p.ID),
			X:     p.X,
			Y:     p.Y,
			Score: p.Score,
			Color: p.Color,
		})
	}
	for _, pt := range w.Points {
		msg.Points = append(msg.Points, PointState{ID: pt.ID, X: pt.X, Y: pt.Y, Value: pt.Value})
	}
	return msg
}
