// Package hub fans session events out to attached display clients over
// WebSocket. Displays render whatever photo a session currently shows and
// patch captions in as they reconcile.
package hub

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/dc25/photoview/internal/carousel"
)

// Event types pushed to displays.
const (
	EventPhotoShown     = "photo.shown"
	EventCaptionApplied = "caption.applied"
	EventSessionClosed  = "session.closed"
)

// Event is one session update as sent on the wire.
type Event struct {
	Type      string    `json:"type"`
	SessionID string    `json:"sessionId"`
	PhotoID   string    `json:"photoId,omitempty"`
	URL       string    `json:"url,omitempty"`
	Caption   string    `json:"caption,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the display clients attached to each session and broadcasts
// events to them. Run must be started on its own goroutine before clients
// attach.
type Hub struct {
	logger *slog.Logger

	mu         sync.RWMutex
	clients    map[string]map[*Client]bool // session id -> attached displays
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
}

// New creates a hub.
func New(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes register, unregister and broadcast requests until the
// process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.sessionID] == nil {
				h.clients[client.sessionID] = make(map[*Client]bool)
			}
			h.clients[client.sessionID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.sessionID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.sessionID)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("failed to encode event", "type", event.Type, "error", err)
				continue
			}

			h.mu.RLock()
			clients := h.clients[event.SessionID]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.send <- payload:
				default:
					// Slow display; drop the event rather than block.
				}
			}
		}
	}
}

// PhotoShown implements viewer.Notifier.
func (h *Hub) PhotoShown(sessionID string, photo carousel.Photo) {
	caption := ""
	if photo.Description != nil {
		caption = *photo.Description
	}
	h.publish(Event{
		Type:      EventPhotoShown,
		SessionID: sessionID,
		PhotoID:   photo.ID,
		URL:       photo.SourceURL(),
		Caption:   caption,
	})
}

// CaptionApplied implements viewer.Notifier.
func (h *Hub) CaptionApplied(sessionID, photoID, text string) {
	h.publish(Event{
		Type:      EventCaptionApplied,
		SessionID: sessionID,
		PhotoID:   photoID,
		Caption:   text,
	})
}

// SessionClosed tells attached displays the session is gone.
func (h *Hub) SessionClosed(sessionID string) {
	h.publish(Event{
		Type:      EventSessionClosed,
		SessionID: sessionID,
	})
}

func (h *Hub) publish(event Event) {
	event.Timestamp = time.Now().UTC()
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn("event dropped, broadcast queue full", "type", event.Type, "session", event.SessionID)
	}
}
