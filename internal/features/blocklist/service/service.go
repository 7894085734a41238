package service

import (
	"context"
	"time"

	apperrors "support-relay-backend/internal/common/errors"
	"support-relay-backend/internal/features/blocklist/models"
	"support-relay-backend/internal/features/blocklist/repository"
)

type BlockService interface {
	Block(ctx context.Context, userID int64) error
	IsBlocked(ctx context.Context, userID int64) (bool, error)
}

type blockService struct {
	repo repository.BlockRepository
}

func NewBlockService(repo repository.BlockRepository) BlockService {
	return &blockService{repo: repo}
}

func (s *blockService) Block(ctx context.Context, userID int64) error {
	entry := &models.BlockEntry{
		UserID:    userID,
		BlockedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return apperrors.NewDatabaseError("insert block entry", err)
	}
	return nil
}

func (s *blockService) IsBlocked(ctx context.Context, userID int64) (bool, error) {
	blocked, err := s.repo.Exists(ctx, userID)
	if err != nil {
		return false, apperrors.NewDatabaseError("check block entry", err)
	}
	return blocked, nil
}
