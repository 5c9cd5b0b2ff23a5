// Package storage is the durable side of the system: badger-backed
// repositories for chat messages, clients and meeting bookings. It is a
// write-behind copy of live chat state, authoritative only for the booking
// and client records.
package storage

import (
	"github.com/dgraph-io/badger/v4"
)

// Open opens (or creates) the badger database at dir with its own logging
// silenced; the application logs at the repository level instead.
func Open(dir string) (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
}
