package repository

import (
	"context"

	"support-relay-backend/internal/features/blocklist/models"
)

type BlockRepository interface {
	Insert(ctx context.Context, entry *models.BlockEntry) error
	Exists(ctx context.Context, userID int64) (bool, error)
}
