// Package core owns the in-memory room state: bounded message and signal
// logs plus participant presence. It never touches transport resources and
// talks to durable storage only through MessageStore.
package core

import (
	"context"
	"time"

	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
)

// Retention caps and read limits.
const (
	ChatLogCap      = 100
	SignalLogCap    = 20
	ChatReadDefault = 50

	// PresenceThreshold is how long a participant stays active after its
	// last join without being reconciled away.
	PresenceThreshold = 30 * time.Second
)

// MessageStore is the persistence bridge. Writes are best-effort: a failure
// degrades durability only and must never unwind in-memory state. Reads are
// used once per room to warm an empty log.
type MessageStore interface {
	// SaveMessage stores the message as given, id and timestamp included,
	// so warm-up reads return the identifiers live pollers already saw.
	SaveMessage(ctx context.Context, msg domain.ChatMessage) error
	// RecentMessages returns up to limit messages in chronological order.
	RecentMessages(ctx context.Context, room domain.RoomID, limit int) ([]domain.ChatMessage, error)
}

// RoomStats is the activity view a reclaim policy decides on.
type RoomStats struct {
	CreatedAt  time.Time
	LastActive time.Time
	Occupants  int
	Retained   int
}
