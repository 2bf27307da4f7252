package server

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"
)

// World 单个房间的权威聚合：边界、点集合与在线玩家
// 所有修改都发生在房间协程内（Tick 或入站命令处理），无需加锁
type World struct {
	Width  float64
	Height float64

	// 点集合基数恒定，下标与 id 一致
	Points []*Point
	// 按连接 id 索引的在线玩家；同一 PlayerID 允许多个并发会话
	Players map[string]*Player

	rng *rand.Rand
}

// NewWorld 生成全新世界：PointCount 个随机点，无玩家
func NewWorld(cfg Config, rng *rand.Rand) *World {
	w := &World{
		Width:   cfg.WorldWidth,
		Height:  cfg.WorldHeight,
		Players: make(map[string]*Player),
		rng:     rng,
	}
	w.Points = make([]*Point, cfg.PointCount)
	for i := range w.Points {
		w.Points[i] = newPoint(rng, i, cfg)
	}
	return w
}

// worldRecord 落盘的快照记录：点数组 + 保存时间
// 玩家位置是瞬态的，不持久化（下次入场重新随机）
type worldRecord struct {
	Points  []*Point  `json:"points"`
	SavedAt time.Time `json:"savedAt"`
}

// RestoreWorld 从快照记录重建世界；记录损坏或点数不符时报错，由调用方回退到新世界
func RestoreWorld(cfg Config, rng *rand.Rand, blob []byte) (*World, error) {
	var rec worldRecord
	if err := json.Unmarshal(blob, &rec); err != nil {
		return nil, fmt.Errorf("decode world record: %w", err)
	}
	if len(rec.Points) != cfg.PointCount {
		return nil, fmt.Errorf("world record has %d points, want %d", len(rec.Points), cfg.PointCount)
	}
	w := &World{
		Width:   cfg.WorldWidth,
		Height:  cfg.WorldHeight,
		Points:  rec.Points,
		Players: make(map[string]*Player),
		rng:     rng,
	}
	return w, nil
}

// MarshalRecord 序列化当前点数组为快照记录
func (w *World) MarshalRecord(now time.Time) ([]byte, error) {
	return json.Marshal(worldRecord{Points: w.Points, SavedAt: now})
}

// respawnPoint 用同一 id 的全新随机点替换下标 i 处的点，保持基数不变
func (w *World) respawnPoint(i int, cfg Config) {
	w.Points[i] = newPoint(w.rng, w.Points[i].ID, cfg)
}
