package store

import (
	"context"
	"errors"
)

// ErrNotFound 表示请求的键不存在（区别于后端故障）
var ErrNotFound = errors.New("store: not found")

// Store 持久化边界：玩家分数 + 世界快照，均为不透明的持久映射
// 具体后端（Redis / Postgres / 内存）由部署配置决定
type Store interface {
	// GetScore 读取玩家累计分数；键不存在时返回 ErrNotFound
	GetScore(ctx context.Context, playerID string) (int, error)
	// SetScore 覆盖写入玩家分数（分数单调递增，last-write-wins 可接受）
	SetScore(ctx context.Context, playerID string, score int) error
	// LoadWorld 读取指定世界的快照记录（点数组 + 保存时间，JSON 编码）
	LoadWorld(ctx context.Context, worldID string) ([]byte, error)
	// SaveWorld 覆盖写入世界快照记录
	SaveWorld(ctx context.Context, worldID string, blob []byte) error
	// Close 释放后端连接
	Close() error
}
