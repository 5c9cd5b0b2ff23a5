package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks caller mistakes; handlers map it to 400.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks lookups where absence is an error; handlers map it to 404.
	ErrNotFound = errors.New("not found")

	// ErrResourceExhausted is returned when the registry refuses to allocate
	// another room.
	ErrResourceExhausted = errors.New("resource exhausted")
)

var (
	ErrRoomRequired = fmt.Errorf("%w: room id required", ErrInvalidArgument)
	ErrBodyEmpty    = fmt.Errorf("%w: message body empty", ErrInvalidArgument)
	ErrBodyTooLong  = fmt.Errorf("%w: message body exceeds %d characters", ErrInvalidArgument, MaxMessageLen)
)
