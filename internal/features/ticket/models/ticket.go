package models

import "time"

// TicketStatus is the lifecycle state of a ticket. Monotonic: new → read.
type TicketStatus string

const (
	StatusNew  TicketStatus = "new"
	StatusRead TicketStatus = "read"
)

// MediaKind classifies a ticket attachment.
type MediaKind string

const (
	MediaPhoto MediaKind = "photo"
	MediaVoice MediaKind = "voice"
	MediaVideo MediaKind = "video"
)

// Attachment is an optional media reference carried by a ticket. FileID is
// the transport's opaque handle, reusable for re-sending without download.
type Attachment struct {
	Kind   MediaKind `json:"kind"`
	FileID string    `json:"file_id"`
}

// Ticket is one persisted inbound user request.
type Ticket struct {
	ID          string       `json:"id"`
	UserID      int64        `json:"user_id"`
	UserChatID  int64        `json:"user_chat_id"`
	DisplayName string       `json:"display_name"`
	Body        string       `json:"body"`
	Attachment  *Attachment  `json:"attachment,omitempty"`
	Status      TicketStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
