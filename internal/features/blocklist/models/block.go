package models

import "time"

// BlockEntry records one blocked user. Presence of an entry is the standing
// fact checked on every inbound user message; entries never expire.
type BlockEntry struct {
	UserID    int64     `json:"user_id"`
	BlockedAt time.Time `json:"blocked_at"`
}
