// Package domain contains entities without logic, just meta-data.
package domain

type RoomID string

const (
	// DefaultRoom is used when a chat request carries no room id.
	DefaultRoom RoomID = "general"

	// DefaultSender is used when a chat message carries no sender name.
	DefaultSender = "Anonymous"

	// DefaultSignalFrom is used when a signal carries no sender id.
	DefaultSignalFrom = "anonymous"
)
