package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
)

const bookingPrefix = "booking:"

// BookingRepository persists meeting bookings and their status workflow.
type BookingRepository struct {
	db *badger.DB
}

func NewBookingRepository(db *badger.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create stores a new booking in "pending" status and returns it with its
// assigned id and timestamps.
func (b *BookingRepository) Create(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return domain.Booking{}, err
	}
	now := time.Now().UTC()
	booking.ID = uuid.NewString()
	booking.Status = domain.BookingPending
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if booking.MeetingDuration == "" {
		booking.MeetingDuration = "45"
	}
	if booking.UrgencyLevel == "" {
		booking.UrgencyLevel = "medium"
	}

	value, err := json.Marshal(booking)
	if err != nil {
		return domain.Booking{}, err
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(bookingKey(booking.ID), value)
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return booking, nil
}

// List returns all bookings, newest first.
func (b *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []domain.Booking
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(bookingPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				var bk domain.Booking
				if err := json.Unmarshal(v, &bk); err != nil {
					return err
				}
				out = append(out, bk)
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
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UpdateStatus moves a booking to a new status. An unknown id is an error:
// confirming a booking that does not exist means the caller is out of date.
func (b *BookingRepository) UpdateStatus(ctx context.Context, id, status string) (domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return domain.Booking{}, err
	}
	var updated domain.Booking
	err := b.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(bookingKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		err = item.Value(func(v []byte) error {
			return json.Unmarshal(v, &updated)
		})
		if err != nil {
			return err
		}
		updated.Status = status
		updated.UpdatedAt = time.Now().UTC()
		value, err := json.Marshal(updated)
		if err != nil {
			return err
		}
		return txn.Set(bookingKey(id), value)
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return updated, nil
}

func bookingKey(id string) []byte {
	return []byte(bookingPrefix + id)
}
