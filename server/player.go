package server

import "math/rand"

// PlayerID 玩家身份：由客户端提供的不透明字符串，跨重连稳定
// 未提供时回退为连接 id
type PlayerID string

// InputAxes 四个独立的布尔轴；对角输入两轴全速，不做归一化
type InputAxes struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// Player 世界内的玩家实体（服务端权威状态）
// 仅 Score 的生命周期长于会话：按 PlayerID 持久化，跨断线与重启保留
type Player struct {
	ID    PlayerID
	X     float64
	Y     float64
	Score int
	Color string // 入场时随机分配的装饰色，不持久化
	Input InputAxes
}

// playerColors 装饰色盘
var playerColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4",
	"#FFEAA7", "#DDA0DD", "#98D8C8", "#F7DC6F",
}

func randomColor(rng *rand.Rand) string {
	return playerColors[rng.Intn(len(playerColors))]
}

// newPlayer 在世界内随机位置生成玩家，分数为持久化读到的历史值
func newPlayer(rng *rand.Rand, id PlayerID, score int, cfg Config) *Player {
	return &Player{
		ID:    id,
		X:     rng.Float64() * cfg.WorldWidth,
		Y:     rng.Float64() * cfg.WorldHeight,
		Score: score,
		Color: randomColor(rng),
	}
}
