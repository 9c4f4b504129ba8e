package ws

import (
	"context"
	"log/slog"
	"sync"
)

// Hub maintains the set of active clients and routes messages. OnMessage and
// OnDisconnect run on the hub goroutine, one at a time.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Incoming   chan *ClientMessage
	mu         sync.RWMutex

	maxConnsPerIP int
	ipConns       map[string]int

	// OnMessage is called for each incoming client message.
	OnMessage func(cm *ClientMessage)
	// OnDisconnect is called when a client disconnects.
	OnDisconnect func(client *Client)
}

// NewHub creates a new Hub. maxConnsPerIP <= 0 disables the per-IP cap.
func NewHub(maxConnsPerIP int) *Hub {
	return &Hub{
		Clients:       make(map[*Client]bool),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		Incoming:      make(chan *ClientMessage, 256),
		maxConnsPerIP: maxConnsPerIP,
		ipConns:       make(map[string]int),
	}
}

// Run starts the hub's main loop and returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			h.mu.Unlock()
			slog.Info("client connected", "client", client.ID, "codec", client.codec().Name())

		case client := <-h.Unregister:
			h.mu.Lock()
			_, ok := h.Clients[client]
			delete(h.Clients, client)
			h.mu.Unlock()
			if !ok {
				continue
			}

			// Leave rooms first so no broadcast targets the client once
			// Send is closed.
			if h.OnDisconnect != nil {
				h.OnDisconnect(client)
			}
			client.Close()
			h.Release(client.RemoteIP)
			slog.Info("client disconnected", "client", client.ID)

		case cm := <-h.Incoming:
			if h.OnMessage != nil {
				h.OnMessage(cm)
			}
		}
	}
}

// Acquire reserves a connection slot for ip. It returns false when ip is
// already at the per-IP limit.
func (h *Hub) Acquire(ip string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.maxConnsPerIP > 0 && h.ipConns[ip] >= h.maxConnsPerIP {
		return false
	}
	h.ipConns[ip]++
	return true
}

// Release frees a slot reserved with Acquire.
func (h *Hub) Release(ip string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ipConns[ip] <= 1 {
		delete(h.ipConns, ip)
		return
	}
	h.ipConns[ip]--
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients)
}
