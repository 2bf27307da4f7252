package server

import (
	"os"
	"strconv"
	"time"
)

// Config 世界与循环的全部可调参数，默认值与线上部署一致
// 环境变量可覆盖（见 FromEnv），运行期可通过 /admin/config 热更新部分字段
type Config struct {
	TickRate      int           // 每秒 Tick 数
	WorldWidth    float64       // 世界宽度（世界单位）
	WorldHeight   float64       // 世界高度
	PointCount    int           // 场上点的恒定数量
	PointSpeed    float64       // 点的速度上限（每轴分量取 ±PointSpeed 内均匀随机）
	PlayerSpeed   float64       // 玩家每 Tick 固定位移
	PlayerRadius  float64       // 玩家渲染半径，用于边界内缩裁剪
	CollectRadius float64       // 收集判定半径（严格小于才算收集）
	SaveInterval  time.Duration // 世界快照落盘周期
}

// DefaultConfig 返回默认配置（20 TPS、800x600、30 个点）
func DefaultConfig() Config {
	return Config{
		TickRate:      20,
		WorldWidth:    800,
		WorldHeight:   600,
		PointCount:    30,
		PointSpeed:    0.5,
		PlayerSpeed:   5,
		PlayerRadius:  15,
		CollectRadius: 25,
		SaveInterval:  30 * time.Second,
	}
}

// FromEnv 在默认值基础上应用环境变量覆盖
func FromEnv() Config {
	cfg := DefaultConfig()
	cfg.TickRate = envInt("PW_TICK_RATE", cfg.TickRate)
	cfg.WorldWidth = envFloat("PW_WORLD_WIDTH", cfg.WorldWidth)
	cfg.WorldHeight = envFloat("PW_WORLD_HEIGHT", cfg.WorldHeight)
	cfg.PointCount = envInt("PW_POINT_COUNT", cfg.PointCount)
	cfg.PointSpeed = envFloat("PW_POINT_SPEED", cfg.PointSpeed)
	cfg.PlayerSpeed = envFloat("PW_PLAYER_SPEED", cfg.PlayerSpeed)
	cfg.PlayerRadius = envFloat("PW_PLAYER_RADIUS", cfg.PlayerRadius)
	cfg.CollectRadius = envFloat("PW_COLLECT_RADIUS", cfg.CollectRadius)
	cfg.SaveInterval = envDuration("PW_SAVE_INTERVAL", cfg.SaveInterval)
	return cfg
}

// TickInterval 单个 Tick 的时长
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
