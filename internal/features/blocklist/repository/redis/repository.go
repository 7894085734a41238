package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"support-relay-backend/internal/features/blocklist/models"
	"support-relay-backend/internal/features/blocklist/repository"
)

const keyPrefixBlocked = "blocked:"

type Repository struct {
	client redis.Cmdable
}

func NewRepository(client redis.Cmdable) repository.BlockRepository {
	return &Repository{client: client}
}

// Insert stores the entry keyed by user id. Repeated blocks overwrite the
// previous entry, so duplicates collapse without changing Exists semantics.
func (r *Repository) Insert(ctx context.Context, entry *models.BlockEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal block entry: %w", err)
	}

	key := fmt.Sprintf("%s%d", keyPrefixBlocked, entry.UserID)
	return r.client.Set(ctx, key, data, 0).Err()
}

func (r *Repository) Exists(ctx context.Context, userID int64) (bool, error) {
	key := fmt.Sprintf("%s%d", keyPrefixBlocked, userID)
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check block entry: %w", err)
	}
	return n > 0, nil
}
