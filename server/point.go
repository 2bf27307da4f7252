package server

import "math/rand"

// Point 场上可收集的点：位置、速度与分值（1~3）
// id 在世界内稳定且稠密（[0, PointCount)），被收集后原地以同一 id 重生
type Point struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Value int     `json:"value"`
}

// newPoint 以均匀随机的位置/速度/分值生成一个点
func newPoint(rng *rand.Rand, id int, cfg Config) *Point {
	return &Point{
		ID:    id,
		X:     rng.Float64() * cfg.WorldWidth,
		Y:     rng.Float64() * cfg.WorldHeight,
		VX:    (rng.Float64() - 0.5) * cfg.PointSpeed * 2,
		VY:    (rng.Float64() - 0.5) * cfg.PointSpeed * 2,
		Value: rng.Intn(3) + 1,
	}
}
