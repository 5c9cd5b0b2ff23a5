package storage

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
)

const msgPrefix = "msg:"

// MessageRepository persists chat messages. Keys are
// "msg:{room_hex}:{timestamp_padded}:{uuid}": the room id is hex-encoded
// so an id containing ':' cannot collide with another room's key range,
// and the 19-digit zero-padded nanosecond timestamp makes lexicographic
// order chronological. The uuid disambiguates two messages landing on the
// same nanosecond.
type MessageRepository struct {
	db *badger.DB
}

func NewMessageRepository(db *badger.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// SaveMessage stores the message under the id and timestamp it already
// carries, so a later warm-up read returns the same identifiers live
// pollers saw.
func (m *MessageRepository) SaveMessage(ctx context.Context, msg domain.ChatMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.At.IsZero() {
		msg.At = time.Now().UTC()
	}
	key := messageKey(msg.Room, msg.At, msg.ID)
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// RecentMessages returns up to limit messages for a room in chronological
// order. It scans backwards from the newest key and reverses the result.
func (m *MessageRepository) RecentMessages(ctx context.Context, room domain.RoomID, limit int) ([]domain.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	var newest []domain.ChatMessage
	prefix := []byte(fmt.Sprintf("%s%s:", msgPrefix, roomKeyPart(room)))
	err := m.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Seek past the newest possible timestamp for this room.
		seek := append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		for it.Seek(seek); it.ValidForPrefix(prefix) && len(newest) < limit; it.Next() {
			err := it.Item().Value(func(v []byte) error {
				var msg domain.ChatMessage
				if err := json.Unmarshal(v, &msg); err != nil {
					return err
				}
				// Keys guarantee the room; the stored record has to agree.
				if msg.Room != room {
					return nil
				}
				newest = append(newest, msg)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.ChatMessage, 0, len(newest))
	for i := len(newest) - 1; i >= 0; i-- {
		out = append(out, newest[i])
	}
	return out, nil
}

// CountMessages reports the total number of stored messages across rooms.
func (m *MessageRepository) CountMessages(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count := 0
	err := m.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(msgPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

func messageKey(room domain.RoomID, at time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%s%s:%019d:%s", msgPrefix, roomKeyPart(room), at.UnixNano(), id))
}

// roomKeyPart makes the room id safe for use inside a ':'-separated key.
func roomKeyPart(room domain.RoomID) string {
	return hex.EncodeToString([]byte(room))
}
