package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-relay-backend/internal/features/blocklist/models"
)

type memoryRepo struct {
	mu      sync.Mutex
	entries map[int64]*models.BlockEntry
	inserts int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{entries: make(map[int64]*models.BlockEntry)}
}

func (r *memoryRepo) Insert(_ context.Context, entry *models.BlockEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.UserID] = entry
	r.inserts++
	return nil
}

func (r *memoryRepo) Exists(_ context.Context, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[userID]
	return ok, nil
}

func TestBlockThenIsBlocked(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewBlockService(repo)
	ctx := context.Background()

	blocked, err := svc.IsBlocked(ctx, 42)
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, svc.Block(ctx, 42))

	blocked, err = svc.IsBlocked(ctx, 42)
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestRepeatedBlockIsHarmless(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewBlockService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Block(ctx, 42))
	require.NoError(t, svc.Block(ctx, 42))

	blocked, err := svc.IsBlocked(ctx, 42)
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.Equal(t, 2, repo.inserts)
}

func TestBlockEntryTimestampSet(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewBlockService(repo)

	require.NoError(t, svc.Block(context.Background(), 42))
	assert.False(t, repo.entries[42].BlockedAt.IsZero())
}
