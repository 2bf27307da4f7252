package server

import (
	"math"
	"sort"
)

// CollectionEvent 一次收集：哪位玩家吃掉了哪个点、值多少
// 字段名即广播 collected 消息的线上格式
type CollectionEvent struct {
	PlayerID string `json:"playerId"`
	PointID  int    `json:"pointId"`
	Value    int    `json:"value"`
}

// Resolve 碰撞判定：距离严格小于 CollectRadius 才算收集
//
// 玩家按 (PlayerID, 连接id) 稳定排序后依次判定，同一 Tick 内多人同时
// 够到一个点时，排序靠前者得点，结果可复现。被收集的点立即以同一 id
// 原地重生，总数不变。onCollect 在每次得分后回调（用于挂起持久化写），
// 可为 nil。O(玩家数 × 点数)，两者都是小常量。
func Resolve(w *World, cfg Config, onCollect func(p *Player, ev CollectionEvent)) []CollectionEvent {
	if len(w.Players) == 0 {
		return nil
	}

	connIDs := make([]string, 0, len(w.Players))
	for connID := range w.Players {
		connIDs = append(connIDs, connID)
	}
	sort.Slice(connIDs, func(i, j int) bool {
		a, b := w.Players[connIDs[i]], w.Players[connIDs[j]]
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return connIDs[i] < connIDs[j]
	})

	var events []CollectionEvent
	for _, connID := range connIDs {
		p := w.Players[connID]
		for i, pt := range w.Points {
			dx := p.X - pt.X
			dy := p.Y - pt.Y
			if math.Sqrt(dx*dx+dy*dy) >= cfg.CollectRadius {
				continue
			}
			p.Score += pt.Value
			ev := CollectionEvent{PlayerID: string(p.ID), PointID: pt.ID, Value: pt.Value}
			events = append(events, ev)
			w.respawnPoint(i, cfg)
			if onCollect != nil {
				onCollect(p, ev)
			}
		}
	}
	return events
}
