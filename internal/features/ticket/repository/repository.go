package repository

import (
	"context"

	"support-relay-backend/internal/features/ticket/models"
)

// TicketRepository persists tickets. FindByID and UpdateStatus return
// (nil, nil) / (false, nil) when the id has no record.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *models.Ticket) error
	FindByID(ctx context.Context, id string) (*models.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status models.TicketStatus) (bool, error)
}
