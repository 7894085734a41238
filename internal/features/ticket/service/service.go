package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "support-relay-backend/internal/common/errors"
	"support-relay-backend/internal/features/ticket/models"
	"support-relay-backend/internal/features/ticket/repository"
)

// CreateInput carries everything needed to open a ticket from one inbound
// user message.
type CreateInput struct {
	UserID      int64
	UserChatID  int64
	DisplayName string
	Body        string
	Attachment  *models.Attachment
}

type TicketService interface {
	Create(ctx context.Context, in CreateInput) (*models.Ticket, error)
	// MarkRead sets status=read and returns the ticket. Idempotent: marking
	// an already-read ticket succeeds. Returns a not-found error when the id
	// is malformed or has no record.
	MarkRead(ctx context.Context, id string) (*models.Ticket, error)
	Find(ctx context.Context, id string) (*models.Ticket, error)
}

type ticketService struct {
	repo repository.TicketRepository
}

func NewTicketService(repo repository.TicketRepository) TicketService {
	return &ticketService{repo: repo}
}

func (s *ticketService) Create(ctx context.Context, in CreateInput) (*models.Ticket, error) {
	now := time.Now()
	ticket := &models.Ticket{
		ID:          uuid.New().String(),
		UserID:      in.UserID,
		UserChatID:  in.UserChatID,
		DisplayName: in.DisplayName,
		Body:        in.Body,
		Attachment:  in.Attachment,
		Status:      models.StatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, ticket); err != nil {
		return nil, apperrors.NewDatabaseError("insert ticket", err)
	}

	return ticket, nil
}

func (s *ticketService) MarkRead(ctx context.Context, id string) (*models.Ticket, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewMalformedIDError(id)
	}

	found, err := s.repo.UpdateStatus(ctx, id, models.StatusRead)
	if err != nil {
		return nil, apperrors.NewDatabaseError("update ticket status", err)
	}
	if !found {
		return nil, apperrors.NewTicketNotFoundError(id)
	}

	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find ticket", err)
	}
	if ticket == nil {
		return nil, apperrors.NewTicketNotFoundError(id)
	}

	return ticket, nil
}

func (s *ticketService) Find(ctx context.Context, id string) (*models.Ticket, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewMalformedIDError(id)
	}

	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewDatabaseError("find ticket", err)
	}
	if ticket == nil {
		return nil, apperrors.NewTicketNotFoundError(id)
	}

	return ticket, nil
}
