package core

import (
	"sync"
	"time"

	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
)

// ChatRoom is a threadsafe bounded message log. Appends evict from the head
// once the cap is reached; reads are chronological. The room never performs
// I/O itself: warm-up data is loaded by the caller and handed to Seed.
type ChatRoom struct {
	id domain.RoomID

	mu         sync.Mutex
	createdAt  time.Time
	lastActive time.Time
	lastStamp  time.Time
	warmed     bool
	messages   []domain.ChatMessage
	cap        int
}

func NewChatRoom(id domain.RoomID, logCap int) *ChatRoom {
	if logCap <= 0 {
		logCap = ChatLogCap
	}
	now := time.Now()
	return &ChatRoom{
		id:         id,
		createdAt:  now,
		lastActive: now,
		cap:        logCap,
	}
}

func (r *ChatRoom) ID() domain.RoomID { return r.id }

// Append stamps the message with a per-room monotonic timestamp and inserts
// it at the tail, evicting the oldest entries beyond the cap.
func (r *ChatRoom) Append(msg domain.ChatMessage) domain.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.At = r.stamp(time.Now())
	r.messages = append(r.messages, msg)
	if excess := len(r.messages) - r.cap; excess > 0 {
		r.messages = append(r.messages[:0:0], r.messages[excess:]...)
	}
	r.lastActive = msg.At
	return msg
}

// Recent returns the last n messages, oldest first. n <= 0 means the
// default read size.
func (r *ChatRoom) Recent(n int) []domain.ChatMessage {
	if n <= 0 {
		n = ChatReadDefault
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	start := len(r.messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]domain.ChatMessage, len(r.messages)-start)
	copy(out, r.messages[start:])
	return out
}

// NeedsWarm reports whether the log is still empty and has never been
// seeded from durable storage.
func (r *ChatRoom) NeedsWarm() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.warmed && len(r.messages) == 0
}

// Seed installs durable messages into an empty log, oldest first. It runs
// at most once per room lifetime: the room is marked warmed even when msgs
// is empty, and the seed is discarded if something was appended in between.
func (r *ChatRoom) Seed(msgs []domain.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.warmed {
		return
	}
	r.warmed = true
	if len(r.messages) > 0 || len(msgs) == 0 {
		return
	}
	if len(msgs) > r.cap {
		msgs = msgs[len(msgs)-r.cap:]
	}
	r.messages = append(r.messages, msgs...)
	for _, m := range msgs {
		if m.At.After(r.lastStamp) {
			r.lastStamp = m.At
		}
	}
}

func (r *ChatRoom) Stats() RoomStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomStats{
		CreatedAt:  r.createdAt,
		LastActive: r.lastActive,
		Retained:   len(r.messages),
	}
}

// stamp keeps per-room timestamps non-decreasing even if the wall clock
// steps backwards. Callers must hold r.mu.
func (r *ChatRoom) stamp(now time.Time) time.Time {
	if now.Before(r.lastStamp) {
		now = r.lastStamp
	}
	r.lastStamp = now
	return now
}
