package socket

import (
	"context"
	"encoding/json"
	"sync"

	"blogsmith/internal/article/model"
	"blogsmith/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	ConnectedType      = "CONNECTED"       // Sent to a client right after it joins
	ArticleCreatedType = "ARTICLE_CREATED" // A new article was stored
	ArticleDeletedType = "ARTICLE_DELETED" // An article was removed

	broadcastBuffer = 64
	sendBuffer      = 256
)

type WSMessage struct {
	Type      string          `json:"type"`
	ArticleID string          `json:"article_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type deletedPayload struct {
	RemainingCount int `json:"remainingCount"`
}

type connectedPayload struct {
	Clients int `json:"clients"`
}

// Hub fans article events out to every connected browser.
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan WSMessage
	Register   chan *Client
	Unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
}

type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan WSMessage, broadcastBuffer),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()

			payload, _ := json.Marshal(connectedPayload{Clients: count})
			msg, _ := json.Marshal(WSMessage{Type: ConnectedType, Payload: payload})
			client.Send <- msg

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.Broadcast:
			payload, err := json.Marshal(msg)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast message: %v", err)
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- payload:
				default:
					// Lagging client; drop it rather than block the hub.
					logger.Sugar.Warnf("Client send buffer is full. Dropping connection.")
					delete(h.clients, client)
					close(client.Send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// join and leave give up once Run has returned.
func (h *Hub) join(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) ArticleCreated(a model.Article) {
	payload, err := json.Marshal(a)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling article %s: %v", a.ID, err)
		return
	}
	h.publish(WSMessage{Type: ArticleCreatedType, ArticleID: a.ID, Payload: payload})
}

func (h *Hub) ArticleDeleted(id string, remaining int) {
	payload, _ := json.Marshal(deletedPayload{RemainingCount: remaining})
	h.publish(WSMessage{Type: ArticleDeletedType, ArticleID: id, Payload: payload})
}

// publish never blocks the request path; events are dropped when the hub is
// saturated or not running.
func (h *Hub) publish(msg WSMessage) {
	select {
	case h.Broadcast <- msg:
	default:
		logger.Sugar.Warnf("Broadcast buffer full, dropping %s event for %s", msg.Type, msg.ArticleID)
	}
}
