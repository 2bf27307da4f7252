package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore 基于 pgxpool 的持久化实现，适合已有关系库的部署
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore 建立连接池并确保表结构存在
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("store: pgx pool: %w", err)
	}
	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (p *PostgresStore) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS player_scores (
			player_id TEXT PRIMARY KEY,
			score     BIGINT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS world_snapshots (
			world_id TEXT PRIMARY KEY,
			data     BYTEA NOT NULL,
			saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("store: ensure schema: %w", err)
		}
	}
	return nil
}

func (p *PostgresStore) GetScore(ctx context.Context, playerID string) (int, error) {
	var score int
	row := p.pool.QueryRow(ctx, "SELECT score FROM player_scores WHERE player_id = $1", playerID)
	err := row.Scan(&score)
	switch {
	case err == nil:
		return score, nil
	case errors.Is(err, pgx.ErrNoRows):
		return 0, ErrNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return 0, err
	default:
		return 0, fmt.Errorf("store: pg get score: %w", err)
	}
}

func (p *PostgresStore) SetScore(ctx context.Context, playerID string, score int) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO player_scores (player_id, score) VALUES ($1, $2)
		 ON CONFLICT (player_id) DO UPDATE SET score = EXCLUDED.score`,
		playerID, score)
	if err != nil {
		return fmt.Errorf("store: pg set score: %w", err)
	}
	return nil
}

func (p *PostgresStore) LoadWorld(ctx context.Context, worldID string) ([]byte, error) {
	var blob []byte
	row := p.pool.QueryRow(ctx, "SELECT data FROM world_snapshots WHERE world_id = $1", worldID)
	err := row.Scan(&blob)
	switch {
	case err == nil:
		return blob, nil
	case errors.Is(err, pgx.ErrNoRows):
		return nil, ErrNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		return nil, fmt.Errorf("store: pg load world: %w", err)
	}
}

func (p *PostgresStore) SaveWorld(ctx context.Context, worldID string, blob []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO world_snapshots (world_id, data, saved_at) VALUES ($1, $2, now())
		 ON CONFLICT (world_id) DO UPDATE SET data = EXCLUDED.data, saved_at = now()`,
		worldID, blob)
	if err != nil {
		return fmt.Errorf("store: pg save world: %w", err)
	}
	return nil
}

func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}
