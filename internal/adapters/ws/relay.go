// Package ws is the push variant of the chat transport: a WebSocket relay
// over the same dispatcher the poll endpoints use. Messages still go through
// the room log, so pollers and subscribers see identical history.
package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Shivansh1606/advocate-chat-app/internal/app"
	"github.com/Shivansh1606/advocate-chat-app/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// subscriber is one WebSocket endpoint with a buffered outbound queue.
type subscriber struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func (s *subscriber) TrySend(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("connection closed")
	}
	select {
	case s.send <- data:
		return nil
	default:
		return ErrBackpressure
	}
}

func (s *subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
	_ = s.conn.Close()
}

// Relay fans stored messages out to room subscribers. It implements
// app.Notifier; the dispatcher calls MessageStored after every append.
type Relay struct {
	Dispatch *app.Dispatcher

	limiter *FloodLimiter
	mu      sync.RWMutex
	rooms   map[domain.RoomID]map[*subscriber]struct{}
}

func NewRelay(dispatch *app.Dispatcher) *Relay {
	return &Relay{
		Dispatch: dispatch,
		limiter:  NewFloodLimiter(10, 10*time.Second),
		rooms:    make(map[domain.RoomID]map[*subscriber]struct{}),
	}
}

// MessageStored pushes one stored message to every subscriber of the room.
// A subscriber that cannot keep up is dropped; it can reconnect and poll.
func (r *Relay) MessageStored(room domain.RoomID, msg domain.ChatMessage) {
	data, err := json.Marshal(gin.H{"type": "message", "data": msg})
	if err != nil {
		return
	}

	r.mu.RLock()
	subs := make([]*subscriber, 0, len(r.rooms[room]))
	for s := range r.rooms[room] {
		subs = append(subs, s)
	}
	r.mu.RUnlock()

	for _, s := range subs {
		if err := s.TrySend(data); err != nil {
			log.Warn().Str("module", "adapters.ws").Str("room", string(room)).Msg("dropping slow subscriber")
			r.unsubscribe(room, s)
			s.Close()
		}
	}
}

// Handle upgrades GET /ws/chat?room=&name= and pumps until the peer goes
// away.
func (r *Relay) Handle(c *gin.Context) {
	room := domain.RoomID(c.Query("room"))
	if room == "" {
		room = domain.DefaultRoom
	}
	name := c.Query("name")
	if name == "" {
		name = domain.DefaultSender
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.ws").Msg("upgrade failed")
		return
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, 32)}
	r.subscribe(room, sub)
	log.Info().Str("module", "adapters.ws").Str("room", string(room)).Str("name", name).Msg("subscriber connected")

	go r.writePump(sub)
	r.readPump(room, name, sub)
}

func (r *Relay) subscribe(room domain.RoomID, s *subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[room] == nil {
		r.rooms[room] = make(map[*subscriber]struct{})
	}
	r.rooms[room][s] = struct{}{}
}

func (r *Relay) unsubscribe(room domain.RoomID, s *subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms[room], s)
	if len(r.rooms[room]) == 0 {
		delete(r.rooms, room)
	}
}

func (r *Relay) writePump(s *subscriber) {
	for data := range s.send {
		_ = s.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

type inboundFrame struct {
	Message string `json:"message"`
}

func (r *Relay) readPump(room domain.RoomID, name string, s *subscriber) {
	defer func() {
		r.unsubscribe(room, s)
		s.Close()
		log.Info().Str("module", "adapters.ws").Str("room", string(room)).Str("name", name).Msg("subscriber disconnected")
	}()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			r.sendError(s, "bad payload")
			continue
		}
		if !r.limiter.Allow(name) {
			r.sendError(s, "too many messages")
			continue
		}
		if _, err := r.Dispatch.SendMessage(room, name, frame.Message); err != nil {
			r.sendError(s, err.Error())
		}
	}
}

func (r *Relay) sendError(s *subscriber, reason string) {
	data, err := json.Marshal(gin.H{"type": "error", "error": reason})
	if err != nil {
		return
	}
	_ = s.TrySend(data)
}
