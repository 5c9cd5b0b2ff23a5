package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusConnected is the only participant status this model knows; there are
// no intermediate states between joined and gone.
const StatusConnected = "connected"

// Participant is one peer inside a signaling room. Identity is the assigned
// ID; the display name only decides whether a repeat join refreshes an
// existing entry instead of creating a new one.
type Participant struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
	LastSeen time.Time `json:"last_seen"`
	Status   string    `json:"status"`
}

func NewParticipant(name string, now time.Time) Participant {
	return Participant{
		ID:       uuid.NewString(),
		Name:     name,
		JoinedAt: now,
		LastSeen: now,
		Status:   StatusConnected,
	}
}

// Active reports whether the participant was seen within threshold. A zero
// LastSeen keeps the participant (fail open) rather than dropping it.
func (p Participant) Active(now time.Time, threshold time.Duration) bool {
	if p.LastSeen.IsZero() {
		return true
	}
	return now.Sub(p.LastSeen) < threshold
}
