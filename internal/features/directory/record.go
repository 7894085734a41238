package directory

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// timeLayouts are tried in order when a timestamp arrives as a bare string.
// Layouts without a zone produce UTC times.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FlexTime is a timestamp that may arrive in several string formats,
// possibly without zone information. Naive values are treated as UTC.
type FlexTime struct {
	time.Time
}

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		parsed, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp format: %q", s)
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Record is the read-only user record served by the external directory.
type Record struct {
	UserID       int64             `json:"user_id"`
	Username     string            `json:"username"`
	Gender       string            `json:"gender"`
	Premium      bool              `json:"premium"`
	PremiumUntil FlexTime          `json:"premium_until"`
	BanUntil     FlexTime          `json:"ban_until"`
	LastActive   FlexTime          `json:"last_active"`
	BanHistory   []json.RawMessage `json:"ban_history"`
	AutoDelete   *bool             `json:"auto_delete"`
}

// IsPremium reports whether the premium flag is set and not yet expired.
func (r *Record) IsPremium(now time.Time) bool {
	return r.Premium && r.PremiumUntil.After(now)
}

// IsBanned reports whether the ban is still in effect.
func (r *Record) IsBanned(now time.Time) bool {
	return r.BanUntil.After(now)
}

// AutoDeleteEnabled defaults to true when the field is absent.
func (r *Record) AutoDeleteEnabled() bool {
	if r.AutoDelete == nil {
		return true
	}
	return *r.AutoDelete
}

// Summary renders the fixed-field admin-facing view of the record.
func (r *Record) Summary(now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👤 Username: @%s\n", r.Username)
	fmt.Fprintf(&b, "⚧ Gender: %s\n", r.Gender)
	fmt.Fprintf(&b, "⭐ Premium: %s\n", yesNo(r.IsPremium(now)))
	fmt.Fprintf(&b, "🚫 Banned: %s\n", yesNo(r.IsBanned(now)))
	fmt.Fprintf(&b, "🕒 Last active: %s\n", formatTime(r.LastActive))
	fmt.Fprintf(&b, "📜 Ban history: %d\n", len(r.BanHistory))
	fmt.Fprintf(&b, "🗑 Auto-delete: %s", yesNo(r.AutoDeleteEnabled()))
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func formatTime(t FlexTime) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format("2006-01-02 15:04")
}
