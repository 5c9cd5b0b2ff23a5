package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxMessageLen bounds a chat message body.
const MaxMessageLen = 1000

// ChatMessage is an immutable chat entry. The sender is a display name, not
// an identity. At is assigned by the room on append, never by the client.
type ChatMessage struct {
	ID     string    `json:"id"`
	Room   RoomID    `json:"room"`
	Sender string    `json:"sender"`
	Body   string    `json:"message"`
	At     time.Time `json:"timestamp"`
}

// NewChatMessage validates and builds a message. The body is trimmed; an
// empty or oversized body is rejected. The timestamp stays zero until the
// room stamps it.
func NewChatMessage(room RoomID, sender, body string) (ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return ChatMessage{}, ErrBodyEmpty
	}
	if len(body) > MaxMessageLen {
		return ChatMessage{}, ErrBodyTooLong
	}
	if sender == "" {
		sender = DefaultSender
	}
	return ChatMessage{
		ID:     uuid.NewString(),
		Room:   room,
		Sender: sender,
		Body:   body,
	}, nil
}
