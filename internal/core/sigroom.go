package core

import (
	"sync"
	"time"

	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
	"github.com/rs/zerolog/log"
)

// SignalingRoom holds peer presence and a short bounded signal log for one
// call. Signals are relayed opaquely; consumers diff against entry ids, so
// the whole retained log is returned on every poll.
//
// Presence pruning happens only inside reconcile, which every mutating and
// polling path runs. A room nobody polls keeps its stale participants until
// the registry sweeper reclaims it; that mirrors how the system has always
// behaved and is relied on by clients that rejoin under the same name.
type SignalingRoom struct {
	id domain.RoomID

	mu           sync.Mutex
	createdAt    time.Time
	lastActive   time.Time
	lastStamp    time.Time
	participants []domain.Participant
	signals      []domain.Signal
	cap          int
}

func NewSignalingRoom(id domain.RoomID, logCap int) *SignalingRoom {
	if logCap <= 0 {
		logCap = SignalLogCap
	}
	now := time.Now()
	return &SignalingRoom{
		id:         id,
		createdAt:  now,
		lastActive: now,
		cap:        logCap,
	}
}

func (r *SignalingRoom) ID() domain.RoomID { return r.id }

// Join adds a participant or, when the display name is already present,
// refreshes its last-seen and returns the existing id. The returned slice
// is the active set after the join.
func (r *SignalingRoom) Join(name string, now time.Time, threshold time.Duration) (string, []domain.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reconcile(now, threshold)
	now = r.stamp(now)
	r.lastActive = now

	for i := range r.participants {
		if r.participants[i].Name == name {
			r.participants[i].LastSeen = now
			log.Debug().Str("module", "core.sigroom").Str("room", string(r.id)).Str("user", r.participants[i].ID).Msg("rejoin refresh")
			return r.participants[i].ID, r.snapshot()
		}
	}

	p := domain.NewParticipant(name, now)
	r.participants = append(r.participants, p)
	log.Info().Str("module", "core.sigroom").Str("room", string(r.id)).Str("user", p.ID).Str("name", name).Msg("participant joined")
	return p.ID, r.snapshot()
}

// Leave removes the participant with the given id (no-op when absent) and
// appends a user-left broadcast so remaining peers can tear down.
func (r *SignalingRoom) Leave(userID string, now time.Time, threshold time.Duration) []domain.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.participants {
		if r.participants[i].ID == userID {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			break
		}
	}
	r.appendSignal(domain.UserLeftSignal(userID), now)
	r.reconcile(now, threshold)
	r.lastActive = r.lastStamp
	log.Info().Str("module", "core.sigroom").Str("room", string(r.id)).Str("user", userID).Msg("participant left")
	return r.snapshot()
}

// AppendSignal stamps and retains the envelope, evicting the oldest beyond
// the cap.
func (r *SignalingRoom) AppendSignal(sig domain.Signal, now time.Time) domain.Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.appendSignal(sig, now)
	r.lastActive = stored.At
	return stored
}

// Poll returns the retained signals and the active participant set. Polling
// reconciles presence as a side effect.
func (r *SignalingRoom) Poll(now time.Time, threshold time.Duration) ([]domain.Signal, []domain.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reconcile(now, threshold)
	sigs := make([]domain.Signal, len(r.signals))
	copy(sigs, r.signals)
	return sigs, r.snapshot()
}

// ActiveSnapshot is the read-only presence view; it never prunes.
func (r *SignalingRoom) ActiveSnapshot(now time.Time, threshold time.Duration) []domain.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		if p.Active(now, threshold) {
			out = append(out, p)
		}
	}
	return out
}

// Stats counts only participants still inside the liveness window, so a
// room whose peers vanished without leaving reads as unoccupied once the
// threshold passes. Stale entries stay stored until a mutating path
// reconciles them; they just stop holding the room open.
func (r *SignalingRoom) Stats(now time.Time, threshold time.Duration) RoomStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	active := 0
	for _, p := range r.participants {
		if p.Active(now, threshold) {
			active++
		}
	}
	return RoomStats{
		CreatedAt:  r.createdAt,
		LastActive: r.lastActive,
		Occupants:  active,
		Retained:   len(r.signals),
	}
}

// reconcile replaces the stored set with the active subset. Callers must
// hold r.mu.
func (r *SignalingRoom) reconcile(now time.Time, threshold time.Duration) {
	kept := r.participants[:0]
	for _, p := range r.participants {
		if p.Active(now, threshold) {
			kept = append(kept, p)
		}
	}
	if len(kept) < len(r.participants) {
		log.Debug().Str("module", "core.sigroom").Str("room", string(r.id)).Int("pruned", len(r.participants)-len(kept)).Msg("presence reconciled")
	}
	r.participants = kept
}

func (r *SignalingRoom) appendSignal(sig domain.Signal, now time.Time) domain.Signal {
	sig.At = r.stamp(now)
	r.signals = append(r.signals, sig)
	if excess := len(r.signals) - r.cap; excess > 0 {
		r.signals = append(r.signals[:0:0], r.signals[excess:]...)
	}
	return sig
}

func (r *SignalingRoom) snapshot() []domain.Participant {
	out := make([]domain.Participant, len(r.participants))
	copy(out, r.participants)
	return out
}

func (r *SignalingRoom) stamp(now time.Time) time.Time {
	if now.Before(r.lastStamp) {
		now = r.lastStamp
	}
	r.lastStamp = now
	return now
}
