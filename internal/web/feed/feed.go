package feed

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// EventType labels a feed event
type EventType string

const (
	EventMessageSent      EventType = "message_sent"
	EventMessageRead      EventType = "message_read"
	EventQuestionCreated  EventType = "question_created"
	EventAnswerAdded      EventType = "answer_added"
	EventReviewerApproved EventType = "reviewer_approved"
	EventHeartbeat        EventType = "heartbeat"
)

// Event is a feed event pushed to connected clients
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data"`
}

// Client is one connected websocket
type client struct {
	id       string
	messages chan []byte
	done     chan struct{}
}

// Hub manages websocket connections and event broadcasting
type Hub struct {
	clients    map[string]*client
	register   chan *client
	unregister chan *client
	broadcast  chan Event
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex

	upgrader websocket.Upgrader
}

// NewHub creates the hub and starts its broadcast loop.
func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[string]*client),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Event, 100),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Session auth already ran; same-origin policy is not enforced here
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for _, c := range h.clients {
				close(c.messages)
			}
			h.clients = make(map[string]*client)
			h.mu.Unlock()
			log.Debug().Msg("Feed hub stopped")
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.id] = c
			total := len(h.clients)
			h.mu.Unlock()
			log.Debug().Str("client_id", c.id).Int("total_clients", total).Msg("Feed client connected")

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				close(c.messages)
			}
			total := len(h.clients)
			h.mu.Unlock()
			log.Debug().Str("client_id", c.id).Int("total_clients", total).Msg("Feed client disconnected")

		case event := <-h.broadcast:
			h.send(event)

		case <-heartbeat.C:
			h.send(Event{Type: EventHeartbeat, Data: time.Now().Unix()})
		}
	}
}

func (h *Hub) send(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal feed event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.messages <- data:
		default:
			// Slow client, drop the event rather than block the hub
			log.Debug().Str("client_id", c.id).Msg("Dropping feed event for slow client")
		}
	}
}

// Publish queues an event for broadcast to all connected clients. Events are
// dropped if the hub is stopped or its queue is full.
func (h *Hub) Publish(eventType EventType, data any) {
	select {
	case h.broadcast <- Event{Type: eventType, Data: data}:
	case <-h.done:
	default:
		log.Warn().Str("type", string(eventType)).Msg("Feed broadcast queue full, dropping event")
	}
}

// Stop shuts the hub down and disconnects all clients.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// ServeHTTP upgrades the request to a websocket and streams feed events until
// the client goes away or the hub stops.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade feed connection")
		return
	}

	c := &client{
		id:       uuid.NewString(),
		messages: make(chan []byte, 16),
		done:     make(chan struct{}),
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	// Reader goroutine: we never expect client frames, but reading is how
	// websocket close and ping/pong get processed.
	go func() {
		defer close(c.done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.messages:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
