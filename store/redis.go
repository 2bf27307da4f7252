package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis 键布局（与最初的 Node 版部署保持兼容）：
//   player:<playerID> -> 分数（整数字符串）
//   world:<worldID>   -> 快照记录（JSON）
const (
	playerKeyPrefix = "player:"
	worldKeyPrefix  = "world:"
)

// RedisStore 基于 go-redis 的持久化实现，默认后端
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 连接 Redis 并做一次 PING 探活
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("store: parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("store: redis ping: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) GetScore(ctx context.Context, playerID string) (int, error) {
	score, err := r.client.Get(ctx, playerKeyPrefix+playerID).Int()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("store: redis get score: %w", err)
	}
	return score, nil
}

func (r *RedisStore) SetScore(ctx context.Context, playerID string, score int) error {
	if err := r.client.Set(ctx, playerKeyPrefix+playerID, score, 0).Err(); err != nil {
		return fmt.Errorf("store: redis set score: %w", err)
	}
	return nil
}

func (r *RedisStore) LoadWorld(ctx context.Context, worldID string) ([]byte, error) {
	blob, err := r.client.Get(ctx, worldKeyPrefix+worldID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: redis load world: %w", err)
	}
	return blob, nil
}

func (r *RedisStore) SaveWorld(ctx context.Context, worldID string, blob []byte) error {
	if err := r.client.Set(ctx, worldKeyPrefix+worldID, blob, 0).Err(); err != nil {
		return fmt.Errorf("store: redis save world: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
