package realtime

import (
	"sync"

	"github.com/astra-capstone/astra-backend/internal/platform/logger"
)

// Subscriber is an opaque handle for one live connection. Send must be safe
// to call from any goroutine and must return an error once the connection is
// unusable.
type Subscriber interface {
	Send(msg Message) error
}

// Hub maps a session id to the set of connections subscribed to it. A
// subscriber belongs to exactly one session's set for its lifetime.
type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	subscriptions map[string]map[Subscriber]bool
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:           log.With("component", "Hub"),
		subscriptions: make(map[string]map[Subscriber]bool),
	}
}

func (h *Hub) Register(sessionID string, sub Subscriber) {
	if sessionID == "" || sub == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.subscriptions[sessionID]
	if !ok {
		subs = make(map[Subscriber]bool)
		h.subscriptions[sessionID] = subs
	}
	subs[sub] = true
	h.log.Debug("subscriber registered", "session_id", sessionID, "subscribers", len(subs))
}

// Unregister removes sub from its session's set. Safe to call more than
// once; removing an absent subscriber is a no-op.
func (h *Hub) Unregister(sessionID string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.subscriptions[sessionID]
	if !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.subscriptions, sessionID)
	}
	h.log.Debug("subscriber removed", "session_id", sessionID)
}

// Publish delivers {event, session_id, data} to every current subscriber of
// sessionID, best effort. Delivery iterates a snapshot taken at publish
// time; a failed send prunes that subscriber without aborting the rest.
func (h *Hub) Publish(sessionID string, event Event, data any) {
	msg := Message{Event: event, SessionID: sessionID, Data: data}

	h.mu.RLock()
	subs := h.subscriptions[sessionID]
	snapshot := make([]Subscriber, 0, len(subs))
	for sub := range subs {
		snapshot = append(snapshot, sub)
	}
	h.mu.RUnlock()

	if len(snapshot) == 0 {
		return
	}

	var dead []Subscriber
	for _, sub := range snapshot {
		if err := sub.Send(msg); err != nil {
			h.log.Warn("send failed, dropping subscriber", "session_id", sessionID, "event", string(event), "error", err)
			dead = append(dead, sub)
		}
	}
	for _, sub := range dead {
		h.Unregister(sessionID, sub)
	}
}
