package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/interact"
	"github.com/ayusman/mudra/internal/scene"
	"github.com/ayusman/mudra/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Event is a single interaction event pushed to WebSocket clients.
type Event struct {
	Type      string         `json:"type"`
	Label     string         `json:"label,omitempty"`
	Target    *scene.Target  `json:"target,omitempty"`
	Anchor    *scene.Pointer `json:"anchor,omitempty"`
	Origin    string         `json:"origin,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

// Event types pushed over /api/events.
const (
	EventGesture     = "gesture"
	EventTooltipShow = "tooltip-show"
	EventTooltipHide = "tooltip-hide"
	EventPanelShow   = "panel-show"
	EventPanelHide   = "panel-hide"
	EventFocusExit   = "focus-exit"
)

// EventHub broadcasts interaction events to WebSocket clients and records
// them to the session log. It is the controller's notifier.
type EventHub struct {
	sessions  *store.SessionRepository
	sessionID string
	clients   map[*websocket.Conn]bool
	mu        sync.RWMutex
}

// NewEventHub creates an EventHub. The session repository may be nil, in
// which case events are broadcast but not persisted.
func NewEventHub(sessions *store.SessionRepository, sessionID string) *EventHub {
	return &EventHub{
		sessions:  sessions,
		sessionID: sessionID,
		clients:   make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// ClientCount returns the number of connected WebSocket clients.
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcast sends an event to all connected clients.
func (h *EventHub) broadcast(e Event) {
	e.Timestamp = time.Now().UnixMilli()

	msg, err := json.Marshal(e)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// record appends an event to the session log.
func (h *EventHub) record(kind, detail string) {
	if h.sessions == nil {
		return
	}
	if err := h.sessions.Append(h.sessionID, kind, detail); err != nil {
		log.Printf("failed to record session event: %v", err)
	}
}

// GestureChanged implements interact.Notifier.
func (h *EventHub) GestureChanged(label gesture.Label) {
	h.broadcast(Event{Type: EventGesture, Label: string(label)})
	h.record(store.EventKindGesture, string(label))
}

// ShowTooltip implements interact.Notifier.
func (h *EventHub) ShowTooltip(target scene.Target, anchor scene.Pointer) {
	h.broadcast(Event{Type: EventTooltipShow, Target: &target, Anchor: &anchor})
}

// HideTooltip implements interact.Notifier.
func (h *EventHub) HideTooltip() {
	h.broadcast(Event{Type: EventTooltipHide})
}

// ShowPanel implements interact.Notifier.
func (h *EventHub) ShowPanel(target scene.Target) {
	h.broadcast(Event{Type: EventPanelShow, Target: &target})
	h.record(store.EventKindFocusEnter, target.Name)
}

// HidePanel implements interact.Notifier.
func (h *EventHub) HidePanel() {
	h.broadcast(Event{Type: EventPanelHide})
}

// FocusExited implements interact.Notifier.
func (h *EventHub) FocusExited(origin interact.ExitOrigin) {
	h.broadcast(Event{Type: EventFocusExit, Origin: string(origin)})
	h.record(store.EventKindFocusExit, string(origin))
}
