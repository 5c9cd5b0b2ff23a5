package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Shivansh1606/advocate-chat-app/internal/core"
)

func Test_TTLPolicy(t *testing.T) {
	req := require.New(t)
	now := time.Now()
	policy := TTLPolicy{TTL: time.Minute}

	req.True(policy.ShouldReclaim(now, core.RoomStats{LastActive: now.Add(-2 * time.Minute)}))
	req.False(policy.ShouldReclaim(now, core.RoomStats{LastActive: now.Add(-time.Second)}))

	// Occupied rooms are never reclaimed, however stale.
	req.False(policy.ShouldReclaim(now, core.RoomStats{LastActive: now.Add(-time.Hour), Occupants: 3}))

	// TTL 0 disables reclamation entirely.
	req.False(TTLPolicy{}.ShouldReclaim(now, core.RoomStats{LastActive: now.Add(-24 * time.Hour)}))
}

func Test_Sweeper_Reclaims_Idle_Rooms_Only(t *testing.T) {
	req := require.New(t)
	chat := NewChatRegistry(core.ChatLogCap, 0)
	signals := NewSignalRegistry(core.SignalLogCap, 0)

	_, err := chat.GetOrCreate("idle-chat")
	req.NoError(err)
	occupied, err := signals.GetOrCreate("live-call")
	req.NoError(err)
	occupied.Join("Alice", time.Now(), core.PresenceThreshold)

	// Threshold wide enough that Alice still counts as present at sweep
	// time; only the empty chat room is idle.
	sweeper := &Sweeper{
		Chat:      chat,
		Signals:   signals,
		Policy:    TTLPolicy{TTL: time.Minute},
		Threshold: 2 * time.Hour,
	}
	sweeper.Sweep(time.Now().Add(time.Hour))

	req.Equal(0, chat.Len())
	req.Equal(1, signals.Len())
}

func Test_Sweeper_Reclaims_Abandoned_Signaling_Room(t *testing.T) {
	req := require.New(t)
	signals := NewSignalRegistry(core.SignalLogCap, 0)

	room, err := signals.GetOrCreate("ghost-call")
	req.NoError(err)
	// Alice joined long ago, never left, and nobody polls the room: the
	// stale entry is still stored, but it must not hold the room open.
	room.Join("Alice", time.Now().Add(-24*time.Hour), core.PresenceThreshold)

	sweeper := &Sweeper{Signals: signals, Policy: TTLPolicy{TTL: time.Minute}}
	sweeper.Sweep(time.Now())

	req.Equal(0, signals.Len())
}

func Test_KeepForever_Never_Reclaims(t *testing.T) {
	req := require.New(t)
	req.False(KeepForever{}.ShouldReclaim(time.Now(), core.RoomStats{LastActive: time.Time{}}))
}
