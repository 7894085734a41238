package router

import (
	"context"
	"sync"

	"support-relay-backend/internal/bot"
	blockmodels "support-relay-backend/internal/features/blocklist/models"
	"support-relay-backend/internal/features/directory"
	"support-relay-backend/internal/features/ticket/models"
)

// fakeTicketRepo is an in-memory TicketRepository.
type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*models.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*models.Ticket)}
}

func (r *fakeTicketRepo) Insert(_ context.Context, ticket *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *ticket
	r.tickets[ticket.ID] = &clone
	return nil
}

func (r *fakeTicketRepo) FindByID(_ context.Context, id string) (*models.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, nil
	}
	clone := *ticket
	return &clone, nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status models.TicketStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return false, nil
	}
	ticket.Status = status
	return true, nil
}

func (r *fakeTicketRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tickets)
}

func (r *fakeTicketRepo) any() *models.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tickets {
		clone := *t
		return &clone
	}
	return nil
}

// fakeBlockRepo is an in-memory BlockRepository.
type fakeBlockRepo struct {
	mu      sync.Mutex
	blocked map[int64]bool
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{blocked: make(map[int64]bool)}
}

func (r *fakeBlockRepo) Insert(_ context.Context, entry *blockmodels.BlockEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blocked[entry.UserID] = true
	return nil
}

func (r *fakeBlockRepo) Exists(_ context.Context, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blocked[userID], nil
}

// fakeDirectory serves canned records.
type fakeDirectory struct {
	records map[int64]*directory.Record
}

func (d *fakeDirectory) FindByID(_ context.Context, userID int64) (*directory.Record, error) {
	return d.records[userID], nil
}

// sentMessage records one outbound send.
type sentMessage struct {
	ChatID   int64
	Text     string
	Markdown bool
	Rows     [][]bot.Button

	MediaKind   models.MediaKind
	MediaFileID string
	Caption     string

	Edited  bool
	EditRef bot.MessageRef
}

// fakeSender collects outbound traffic for assertions.
type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (s *fakeSender) SendText(_ context.Context, chatID int64, text string, rows ...[]bot.Button) error {
	s.record(sentMessage{ChatID: chatID, Text: text, Rows: rows})
	return nil
}

func (s *fakeSender) SendMarkdown(_ context.Context, chatID int64, text string, rows ...[]bot.Button) error {
	s.record(sentMessage{ChatID: chatID, Text: text, Markdown: true, Rows: rows})
	return nil
}

func (s *fakeSender) SendMedia(_ context.Context, chatID int64, kind models.MediaKind, fileID, caption string) error {
	s.record(sentMessage{ChatID: chatID, MediaKind: kind, MediaFileID: fileID, Caption: caption})
	return nil
}

func (s *fakeSender) EditMessage(_ context.Context, ref bot.MessageRef, text string) error {
	s.record(sentMessage{ChatID: ref.ChatID, Text: text, Edited: true, EditRef: ref})
	return nil
}

func (s *fakeSender) record(m sentMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, m)
}

func (s *fakeSender) messages() []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sentMessage, len(s.sent))
	copy(out, s.sent)
	return out
}

func (s *fakeSender) sentTo(chatID int64) []sentMessage {
	var out []sentMessage
	for _, m := range s.messages() {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

func (s *fakeSender) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
}
