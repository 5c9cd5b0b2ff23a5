package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SignalUserLeft is the synthetic broadcast appended when a participant
// leaves a signaling room.
const SignalUserLeft = "user-left"

// Signal is an opaque relay envelope (offer/answer/candidate/...). Type and
// Data are never interpreted server-side. An empty To means broadcast.
type Signal struct {
	ID   string          `json:"id"`
	From string          `json:"from"`
	To   string          `json:"to,omitempty"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
	At   time.Time       `json:"timestamp"`
}

func NewSignal(from, to, kind string, data json.RawMessage) Signal {
	if from == "" {
		from = DefaultSignalFrom
	}
	return Signal{
		ID:   uuid.NewString(),
		From: from,
		To:   to,
		Type: kind,
		Data: data,
	}
}

// UserLeftSignal builds the departure broadcast for a participant id.
func UserLeftSignal(userID string) Signal {
	data, _ := json.Marshal(map[string]string{"user_id": userID})
	return Signal{
		ID:   uuid.NewString(),
		From: userID,
		Type: SignalUserLeft,
		Data: data,
	}
}
