package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Shivansh1606/advocate-chat-app/internal/core"
	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
	"github.com/rs/zerolog/log"
)

// Notifier receives every stored chat message, e.g. to push it to live
// subscribers. Implementations must not block.
type Notifier interface {
	MessageStored(room domain.RoomID, msg domain.ChatMessage)
}

// JoinResult is what a signaling join returns to the caller.
type JoinResult struct {
	UserID string
	Users  []domain.Participant
	Count  int
}

// SignalPoll is one poll of a signaling room: the whole retained log plus
// the active participant set.
type SignalPoll struct {
	Signals []domain.Signal
	Users   []domain.Participant
	Count   int
}

// Dispatcher is the single entry point for room operations. It validates
// input, applies defaults, and routes each operation to the right room; the
// room's own lock serializes operations per room. Durable writes happen off
// the request path and never fail the caller.
type Dispatcher struct {
	Chat    *ChatRegistry
	Signals *SignalRegistry
	Store   core.MessageStore // optional
	Push    Notifier          // optional

	Threshold      time.Duration // presence liveness window
	PersistTimeout time.Duration // budget for one durable call
}

func NewDispatcher(chat *ChatRegistry, signals *SignalRegistry, store core.MessageStore) *Dispatcher {
	return &Dispatcher{
		Chat:           chat,
		Signals:        signals,
		Store:          store,
		Threshold:      core.PresenceThreshold,
		PersistTimeout: 3 * time.Second,
	}
}

// SendMessage validates and appends a chat message. The in-memory append is
// the operation; persistence is asynchronous best-effort.
func (d *Dispatcher) SendMessage(room domain.RoomID, sender, body string) (domain.ChatMessage, error) {
	if room == "" {
		room = domain.DefaultRoom
	}
	msg, err := domain.NewChatMessage(room, sender, body)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	r, err := d.Chat.GetOrCreate(room)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	stored := r.Append(msg)

	if d.Store != nil {
		go d.persist(stored)
	}
	if d.Push != nil {
		d.Push.MessageStored(room, stored)
	}
	return stored, nil
}

// PollMessages returns the most recent messages, oldest first. The first
// poll of an empty room warms the log from durable storage, once.
func (d *Dispatcher) PollMessages(ctx context.Context, room domain.RoomID, limit int) ([]domain.ChatMessage, error) {
	if room == "" {
		room = domain.DefaultRoom
	}
	r, err := d.Chat.GetOrCreate(room)
	if err != nil {
		return nil, err
	}

	if d.Store != nil && r.NeedsWarm() {
		// Load before seeding so the store call never runs under the
		// room lock.
		warmCtx, cancel := context.WithTimeout(ctx, d.PersistTimeout)
		msgs, err := d.Store.RecentMessages(warmCtx, room, core.ChatReadDefault)
		cancel()
		if err != nil {
			// Leave the room unwarmed so the next poll retries once the
			// store recovers.
			log.Warn().Err(err).Str("module", "app.dispatcher").Str("room", string(room)).Msg("warm-up read failed, serving memory only")
		} else {
			r.Seed(msgs)
		}
	}
	return r.Recent(limit), nil
}

// JoinSignaling adds (or refreshes) a participant and returns the active
// set. An empty display name joins as the default sender name.
func (d *Dispatcher) JoinSignaling(room domain.RoomID, name string) (JoinResult, error) {
	if room == "" {
		return JoinResult{}, domain.ErrRoomRequired
	}
	if name == "" {
		name = domain.DefaultSender
	}
	r, err := d.Signals.GetOrCreate(room)
	if err != nil {
		return JoinResult{}, err
	}
	id, users := r.Join(name, time.Now(), d.Threshold)
	return JoinResult{UserID: id, Users: users, Count: len(users)}, nil
}

// LeaveSignaling removes a participant. A missing user id is a successful
// no-op; late or duplicate leaves must stay harmless.
func (d *Dispatcher) LeaveSignaling(room domain.RoomID, userID string) error {
	if room == "" {
		return domain.ErrRoomRequired
	}
	if userID == "" {
		return nil
	}
	r, err := d.Signals.GetOrCreate(room)
	if err != nil {
		return err
	}
	r.Leave(userID, time.Now(), d.Threshold)
	return nil
}

// SendSignal relays an opaque envelope into the room log. Type and data are
// not interpreted.
func (d *Dispatcher) SendSignal(room domain.RoomID, from, to, kind string, data json.RawMessage) (domain.Signal, error) {
	if room == "" {
		return domain.Signal{}, domain.ErrRoomRequired
	}
	r, err := d.Signals.GetOrCreate(room)
	if err != nil {
		return domain.Signal{}, err
	}
	return r.AppendSignal(domain.NewSignal(from, to, kind, data), time.Now()), nil
}

// PollSignals returns the retained log and active participants, reconciling
// presence as a side effect.
func (d *Dispatcher) PollSignals(room domain.RoomID) (SignalPoll, error) {
	if room == "" {
		return SignalPoll{}, domain.ErrRoomRequired
	}
	r, err := d.Signals.GetOrCreate(room)
	if err != nil {
		return SignalPoll{}, err
	}
	sigs, users := r.Poll(time.Now(), d.Threshold)
	return SignalPoll{Signals: sigs, Users: users, Count: len(users)}, nil
}

// persist writes one message to durable storage with its own deadline. A
// failure is degraded durability, not an operation failure: the message is
// already visible to pollers.
func (d *Dispatcher) persist(msg domain.ChatMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), d.PersistTimeout)
	defer cancel()
	if err := d.Store.SaveMessage(ctx, msg); err != nil {
		log.Warn().Err(err).Str("module", "app.dispatcher").Str("room", string(msg.Room)).Str("msg", msg.ID).Msg("durable write failed, message kept in memory only")
	}
}
