package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"support-relay-backend/internal/features/ticket/models"
	"support-relay-backend/internal/features/ticket/repository"
)

const keyPrefixTicket = "ticket:"

type Repository struct {
	client redis.Cmdable
}

func NewRepository(client redis.Cmdable) repository.TicketRepository {
	return &Repository{client: client}
}

func (r *Repository) Insert(ctx context.Context, ticket *models.Ticket) error {
	data, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket: %w", err)
	}

	key := keyPrefixTicket + ticket.ID
	// Tickets are never deleted by the engine; retention is a store concern.
	return r.client.Set(ctx, key, data, 0).Err()
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Ticket, error) {
	data, err := r.client.Get(ctx, keyPrefixTicket+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	var ticket models.Ticket
	if err := json.Unmarshal(data, &ticket); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticket: %w", err)
	}

	return &ticket, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status models.TicketStatus) (bool, error) {
	ticket, err := r.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if ticket == nil {
		return false, nil
	}

	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	if err := r.Insert(ctx, ticket); err != nil {
		return false, fmt.Errorf("failed to save ticket status: %w", err)
	}
	return true, nil
}
