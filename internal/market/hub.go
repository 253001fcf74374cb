package market

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"stockguard/internal/logging"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin:       func(*http.Request) bool { return true },
	EnableCompression: true,
}

type client struct {
	conn *websocket.Conn
	out  chan []Tick
	done chan struct{}
}

// Hub fans simulated live-market ticks out to connected websocket clients.
// Slow clients are dropped rather than allowed to stall the broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}

	gen      *Generator
	prices   map[string]float64
	interval time.Duration
	log      logging.Logger
}

func NewHub(gen *Generator, interval time.Duration, log logging.Logger) *Hub {
	return &Hub{
		clients:  make(map[*client]struct{}),
		gen:      gen,
		prices:   make(map[string]float64),
		interval: interval,
		log:      log.With("component", "market-hub"),
	}
}

// Run generates a tick batch every interval and broadcasts it until the
// context is cancelled. The price map is only touched here; the generator
// is shared with request handlers and synchronizes internally.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case now := <-ticker.C:
			h.broadcast(h.gen.NextTicks(now, h.prices))
		}
	}
}

func (h *Hub) broadcast(ticks []Tick) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.out <- ticks:
		default:
			// drop the batch for this client rather than block the hub
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.done)
		delete(h.clients, c)
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and streams tick batches until the peer goes
// away.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	cl := &client{conn: conn, out: make(chan []Tick, 16), done: make(chan struct{})}
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, cl)
		h.mu.Unlock()
	}()

	// writer
	go func() {
		ping := time.NewTicker(45 * time.Second)
		defer ping.Stop()
		for {
			select {
			case ticks := <-cl.out:
				if err := conn.WriteJSON(ticks); err != nil {
					return
				}
			case <-ping.C:
				_ = conn.WriteMessage(websocket.PingMessage, nil)
			case <-cl.done:
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
		}
	}()

	// reader: nothing inbound matters, but reads drive pong handling and
	// detect the peer closing
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
