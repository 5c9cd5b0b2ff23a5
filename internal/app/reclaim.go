package app

import (
	"context"
	"time"

	"github.com/Shivansh1606/advocate-chat-app/internal/core"
	"github.com/rs/zerolog/log"
)

// ReclaimPolicy decides whether an idle room may be dropped from its
// registry. The policy sees activity stats only; it never inspects room
// contents.
type ReclaimPolicy interface {
	ShouldReclaim(now time.Time, stats core.RoomStats) bool
}

// KeepForever never reclaims; rooms live for the process lifetime.
type KeepForever struct{}

func (KeepForever) ShouldReclaim(time.Time, core.RoomStats) bool { return false }

// TTLPolicy reclaims rooms that have been idle past the TTL and have no
// occupants. TTL <= 0 behaves like KeepForever.
type TTLPolicy struct {
	TTL time.Duration
}

func (p TTLPolicy) ShouldReclaim(now time.Time, stats core.RoomStats) bool {
	if p.TTL <= 0 || stats.Occupants > 0 {
		return false
	}
	return now.Sub(stats.LastActive) >= p.TTL
}

// Sweeper periodically applies a ReclaimPolicy to both registries.
// Threshold is the presence liveness window used to judge signaling-room
// occupancy; zero means the default.
type Sweeper struct {
	Chat      *ChatRegistry
	Signals   *SignalRegistry
	Policy    ReclaimPolicy
	Interval  time.Duration
	Threshold time.Duration
}

// Run blocks until ctx is done, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	if s.Policy == nil {
		s.Policy = KeepForever{}
	}
	interval := s.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(time.Now())
		}
	}
}

// Sweep removes every room the policy marks reclaimable.
func (s *Sweeper) Sweep(now time.Time) {
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = core.PresenceThreshold
	}
	reclaimed := 0
	if s.Chat != nil {
		for _, r := range s.Chat.Rooms() {
			if s.Policy.ShouldReclaim(now, r.Stats()) {
				s.Chat.Remove(r.ID())
				reclaimed++
			}
		}
	}
	if s.Signals != nil {
		for _, r := range s.Signals.Rooms() {
			if s.Policy.ShouldReclaim(now, r.Stats(now, threshold)) {
				s.Signals.Remove(r.ID())
				reclaimed++
			}
		}
	}
	if reclaimed > 0 {
		log.Info().Str("module", "app.sweeper").Int("reclaimed", reclaimed).Msg("idle rooms reclaimed")
	}
}
