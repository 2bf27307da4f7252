package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreScores(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.GetScore(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.SetScore(ctx, "alice", 3))
	require.NoError(t, m.SetScore(ctx, "alice", 8))
	score, err := m.GetScore(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 8, score, "writes overwrite, one record per player")

	_, err = m.GetScore(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreWorldBlobIsCopied(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.LoadWorld(ctx, "main")
	assert.ErrorIs(t, err, ErrNotFound)

	blob := []byte(`{"points":[]}`)
	require.NoError(t, m.SaveWorld(ctx, "main", blob))
	blob[0] = 'X' // 调用方的后续修改不得影响已存数据

	got, err := m.LoadWorld(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"points":[]}`), got)

	got[0] = 'Y'
	again, err := m.LoadWorld(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"points":[]}`), again)
}
