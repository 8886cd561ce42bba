package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"FiberTrack/entity"
)

// Event represents a WebSocket event sent to dashboard clients.
type Event struct {
	Type string      `json:"type"` // "report_submitted", "site_status"
	Data interface{} `json:"data"`
}

// Hub maintains the set of active WebSocket clients and broadcasts events.
// The dashboard stream is receive-only.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastReportSubmitted notifies dashboards about a new field report.
func (h *Hub) BroadcastReportSubmitted(role string, report entity.Report) {
	h.broadcast <- &Event{
		Type: "report_submitted",
		Data: map[string]interface{}{
			"role":   role,
			"report": report,
		},
	}
}

// BroadcastSiteStatus notifies dashboards about a site status transition.
func (h *Hub) BroadcastSiteStatus(siteID, status string) {
	h.broadcast <- &Event{
		Type: "site_status",
		Data: map[string]string{
			"site_id": siteID,
			"status":  status,
		},
	}
}
