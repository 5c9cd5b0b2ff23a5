package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Shivansh1606/advocate-chat-app/internal/core"
	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
)

// fakeStore is an in-test persistence bridge with controllable behavior.
type fakeStore struct {
	mu        sync.Mutex
	saved     []domain.ChatMessage
	durable   map[domain.RoomID][]domain.ChatMessage
	saveErr   error
	loadErr   error
	loadCalls int
}

func (f *fakeStore) SaveMessage(_ context.Context, msg domain.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, msg)
	return nil
}

func (f *fakeStore) RecentMessages(_ context.Context, room domain.RoomID, _ int) ([]domain.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loadCalls++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.durable[room], nil
}

func (f *fakeStore) savedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func newTestDispatcher(store core.MessageStore) *Dispatcher {
	return NewDispatcher(
		NewChatRegistry(core.ChatLogCap, 0),
		NewSignalRegistry(core.SignalLogCap, 0),
		store,
	)
}

func Test_SendMessage_Rejects_Empty_Body(t *testing.T) {
	req := require.New(t)
	d := newTestDispatcher(&fakeStore{})

	_, err := d.SendMessage("consult", "Bob", "   ")
	req.ErrorIs(err, domain.ErrInvalidArgument)

	msgs, err := d.PollMessages(context.Background(), "consult", 50)
	req.NoError(err)
	req.Empty(msgs)
}

func Test_SendMessage_Rejects_Oversized_Body(t *testing.T) {
	req := require.New(t)
	d := newTestDispatcher(&fakeStore{})

	_, err := d.SendMessage("consult", "Bob", strings.Repeat("x", domain.MaxMessageLen+1))
	req.ErrorIs(err, domain.ErrInvalidArgument)

	msgs, err := d.PollMessages(context.Background(), "consult", 50)
	req.NoError(err)
	req.Empty(msgs)
}

func Test_SendMessage_Roundtrip(t *testing.T) {
	req := require.New(t)
	store := &fakeStore{}
	d := newTestDispatcher(store)

	sent, err := d.SendMessage("consult", "Bob", "hello")
	req.NoError(err)
	req.NotEmpty(sent.ID)
	req.False(sent.At.IsZero())

	msgs, err := d.PollMessages(context.Background(), "consult", 50)
	req.NoError(err)
	req.Len(msgs, 1)
	req.Equal("Bob", msgs[0].Sender)
	req.Equal("hello", msgs[0].Body)

	// The durable write happens off the request path and carries the same
	// identifiers pollers saw.
	req.Eventually(func() bool { return store.savedCount() == 1 }, time.Second, 10*time.Millisecond)
	store.mu.Lock()
	defer store.mu.Unlock()
	req.Equal(sent.ID, store.saved[0].ID)
	req.Equal(sent.At, store.saved[0].At)
}

func Test_SendMessage_Applies_Defaults(t *testing.T) {
	req := require.New(t)
	d := newTestDispatcher(&fakeStore{})

	sent, err := d.SendMessage("", "", "hello")
	req.NoError(err)
	req.Equal(domain.DefaultRoom, sent.Room)
	req.Equal(domain.DefaultSender, sent.Sender)

	msgs, err := d.PollMessages(context.Background(), domain.DefaultRoom, 50)
	req.NoError(err)
	req.Len(msgs, 1)
}

func Test_SendMessage_Survives_Persistence_Failure(t *testing.T) {
	req := require.New(t)
	store := &fakeStore{saveErr: errors.New("disk on fire")}
	d := newTestDispatcher(store)

	_, err := d.SendMessage("consult", "Bob", "hello")
	req.NoError(err)

	msgs, err := d.PollMessages(context.Background(), "consult", 50)
	req.NoError(err)
	req.Len(msgs, 1)
}

func Test_PollMessages_Warms_Up_Once(t *testing.T) {
	req := require.New(t)
	store := &fakeStore{durable: map[domain.RoomID][]domain.ChatMessage{
		"consult": {
			{ID: "a", Room: "consult", Sender: "Alice", Body: "first", At: time.Now().Add(-3 * time.Minute)},
			{ID: "b", Room: "consult", Sender: "Bob", Body: "second", At: time.Now().Add(-2 * time.Minute)},
			{ID: "c", Room: "consult", Sender: "Alice", Body: "third", At: time.Now().Add(-time.Minute)},
		},
	}}
	d := newTestDispatcher(store)

	msgs, err := d.PollMessages(context.Background(), "consult", 50)
	req.NoError(err)
	req.Len(msgs, 3)
	req.Equal([]string{"first", "second", "third"}, []string{msgs[0].Body, msgs[1].Body, msgs[2].Body})

	msgs, err = d.PollMessages(context.Background(), "consult", 50)
	req.NoError(err)
	req.Len(msgs, 3)

	store.mu.Lock()
	defer store.mu.Unlock()
	req.Equal(1, store.loadCalls)
}

func Test_PollMessages_Warm_Up_Failure_Degrades(t *testing.T) {
	req := require.New(t)
	store := &fakeStore{loadErr: errors.New("store down")}
	d := newTestDispatcher(store)

	msgs, err := d.PollMessages(context.Background(), "consult", 50)
	req.NoError(err)
	req.Empty(msgs)
}

func Test_PollMessages_Warm_Up_Retries_After_Store_Recovers(t *testing.T) {
	req := require.New(t)
	store := &fakeStore{
		loadErr: errors.New("store down"),
		durable: map[domain.RoomID][]domain.ChatMessage{
			"consult": {{ID: "a", Room: "consult", Sender: "Alice", Body: "hello", At: time.Now().Add(-time.Minute)}},
		},
	}
	d := newTestDispatcher(store)

	msgs, err := d.PollMessages(context.Background(), "consult", 50)
	req.NoError(err)
	req.Empty(msgs)

	store.mu.Lock()
	store.loadErr = nil
	store.mu.Unlock()

	msgs, err = d.PollMessages(context.Background(), "consult", 50)
	req.NoError(err)
	req.Len(msgs, 1)
	req.Equal("a", msgs[0].ID)

	store.mu.Lock()
	defer store.mu.Unlock()
	req.Equal(2, store.loadCalls)
}

func Test_JoinSignaling_Requires_Room(t *testing.T) {
	req := require.New(t)
	d := newTestDispatcher(nil)

	_, err := d.JoinSignaling("", "Alice")
	req.ErrorIs(err, domain.ErrInvalidArgument)
}

func Test_JoinSignaling_Idempotent_Rejoin(t *testing.T) {
	req := require.New(t)
	d := newTestDispatcher(nil)

	first, err := d.JoinSignaling("call-1", "Alice")
	req.NoError(err)
	second, err := d.JoinSignaling("call-1", "Alice")
	req.NoError(err)

	req.Equal(first.UserID, second.UserID)
	req.Equal(1, second.Count)
}

func Test_LeaveSignaling_Missing_User_Is_Noop(t *testing.T) {
	req := require.New(t)
	d := newTestDispatcher(nil)

	req.NoError(d.LeaveSignaling("call-1", ""))

	poll, err := d.PollSignals("call-1")
	req.NoError(err)
	req.Empty(poll.Signals)
}

func Test_LeaveSignaling_Broadcasts_Departure(t *testing.T) {
	req := require.New(t)
	d := newTestDispatcher(nil)

	joined, err := d.JoinSignaling("call-1", "Alice")
	req.NoError(err)
	req.NoError(d.LeaveSignaling("call-1", joined.UserID))

	poll, err := d.PollSignals("call-1")
	req.NoError(err)
	req.Zero(poll.Count)
	req.NotEmpty(poll.Signals)
	req.Equal(domain.SignalUserLeft, poll.Signals[len(poll.Signals)-1].Type)
}

func Test_SendSignal_Relays_Opaquely(t *testing.T) {
	req := require.New(t)
	d := newTestDispatcher(nil)

	sig, err := d.SendSignal("call-1", "peer-1", "peer-2", "offer", []byte(`{"sdp":"v=0"}`))
	req.NoError(err)
	req.NotEmpty(sig.ID)

	poll, err := d.PollSignals("call-1")
	req.NoError(err)
	req.Len(poll.Signals, 1)
	req.Equal("offer", poll.Signals[0].Type)
	req.Equal("peer-1", poll.Signals[0].From)
	req.Equal("peer-2", poll.Signals[0].To)
	req.JSONEq(`{"sdp":"v=0"}`, string(poll.Signals[0].Data))
}

func Test_Concurrent_Join_Storm(t *testing.T) {
	req := require.New(t)
	d := newTestDispatcher(nil)

	const peers = 32
	var wg sync.WaitGroup
	errs := make([]error, peers)
	for i := 0; i < peers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = d.JoinSignaling("storm", fmt.Sprintf("peer-%d", i))
		}(i)
	}
	wg.Wait()
	req.NoError(errors.Join(errs...))

	poll, err := d.PollSignals("storm")
	req.NoError(err)
	req.Equal(peers, poll.Count)
}
