// Package app wires the room registries, the operation dispatcher and the
// reclaim sweeper on top of core.
package app

import (
	"sync"

	"github.com/Shivansh1606/advocate-chat-app/internal/core"
	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
	"github.com/rs/zerolog/log"
)

// ChatRegistry owns every chat room for the life of the process. Rooms are
// created lazily on first reference and removed only by the sweeper.
type ChatRegistry struct {
	mu       sync.RWMutex
	rooms    map[domain.RoomID]*core.ChatRoom
	logCap   int
	maxRooms int
}

// NewChatRegistry builds a registry. maxRooms <= 0 means unlimited.
func NewChatRegistry(logCap, maxRooms int) *ChatRegistry {
	return &ChatRegistry{
		rooms:    make(map[domain.RoomID]*core.ChatRoom),
		logCap:   logCap,
		maxRooms: maxRooms,
	}
}

// GetOrCreate returns the room for id, allocating it on first reference.
// The registry lock only guards the map; room data has its own lock, so
// operations on different rooms never contend here beyond insertion.
func (f *ChatRegistry) GetOrCreate(id domain.RoomID) (*core.ChatRoom, error) {
	f.mu.RLock()
	room, ok := f.rooms[id]
	f.mu.RUnlock()
	if ok {
		return room, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if room, ok = f.rooms[id]; ok {
		return room, nil
	}
	if f.maxRooms > 0 && len(f.rooms) >= f.maxRooms {
		return nil, domain.ErrResourceExhausted
	}
	room = core.NewChatRoom(id, f.logCap)
	f.rooms[id] = room
	log.Info().Str("module", "app.registry").Str("room", string(id)).Msg("chat room created")
	return room, nil
}

func (f *ChatRegistry) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.rooms)
}

func (f *ChatRegistry) Rooms() []*core.ChatRoom {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*core.ChatRoom, 0, len(f.rooms))
	for _, r := range f.rooms {
		out = append(out, r)
	}
	return out
}

func (f *ChatRegistry) Remove(id domain.RoomID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rooms, id)
}

// SignalRegistry owns every signaling room. A chat room and a signaling
// room with the same id are unrelated.
type SignalRegistry struct {
	mu       sync.RWMutex
	rooms    map[domain.RoomID]*core.SignalingRoom
	logCap   int
	maxRooms int
}

func NewSignalRegistry(logCap, maxRooms int) *SignalRegistry {
	return &SignalRegistry{
		rooms:    make(map[domain.RoomID]*core.SignalingRoom),
		logCap:   logCap,
		maxRooms: maxRooms,
	}
}

func (f *SignalRegistry) GetOrCreate(id domain.RoomID) (*core.SignalingRoom, error) {
	f.mu.RLock()
	room, ok := f.rooms[id]
	f.mu.RUnlock()
	if ok {
		return room, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if room, ok = f.rooms[id]; ok {
		return room, nil
	}
	if f.maxRooms > 0 && len(f.rooms) >= f.maxRooms {
		return nil, domain.ErrResourceExhausted
	}
	room = core.NewSignalingRoom(id, f.logCap)
	f.rooms[id] = room
	log.Info().Str("module", "app.registry").Str("room", string(id)).Msg("signaling room created")
	return room, nil
}

func (f *SignalRegistry) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.rooms)
}

func (f *SignalRegistry) Rooms() []*core.SignalingRoom {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*core.SignalingRoom, 0, len(f.rooms))
	for _, r := range f.rooms {
		out = append(out, r)
	}
	return out
}

func (f *SignalRegistry) Remove(id domain.RoomID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rooms, id)
}
