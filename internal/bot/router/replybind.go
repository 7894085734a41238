package router

import "sync"

// ReplyBindings holds, per admin session, the ticket the admin's next plain
// message should be routed to. Single slot per session: a new bind replaces
// the previous one outright.
type ReplyBindings struct {
	mu        sync.Mutex
	bySession map[int64]string
}

func NewReplyBindings() *ReplyBindings {
	return &ReplyBindings{bySession: make(map[int64]string)}
}

// Bind points the session at a ticket, replacing any existing binding.
func (b *ReplyBindings) Bind(sessionID int64, ticketID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bySession[sessionID] = ticketID
}

// Consume reads and clears the binding atomically. A second consume before
// a new bind reports ok=false.
func (b *ReplyBindings) Consume(sessionID int64) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ticketID, ok := b.bySession[sessionID]
	if ok {
		delete(b.bySession, sessionID)
	}
	return ticketID, ok
}

// Clear drops the binding without reading it.
func (b *ReplyBindings) Clear(sessionID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.bySession, sessionID)
}
