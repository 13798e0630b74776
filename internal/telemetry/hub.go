// Package telemetry streams board status reports to WebSocket clients.
// Every report an app makes becomes a JSON Frame; slow clients miss
// frames rather than stalling the reporting task.
package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"

	"github.com/vovakirdan/dso-arcade/internal/core"
	"github.com/vovakirdan/dso-arcade/internal/sched"
)

const (
	clientBuffer = 64
	writeTimeout = 5 * time.Second
)

// Frame is one status report as sent on the wire.
type Frame struct {
	Board    string `json:"board"`
	App      string `json:"app"`
	Cycles   uint64 `json:"cycles"`
	Ticks    uint64 `json:"ticks"`
	Score    int    `json:"score"`
	GameOver bool   `json:"gameOver"`
	Detail   string `json:"detail,omitempty"`
	Fired    uint64 `json:"fired"`
	Late     uint64 `json:"late"`
	Pending  int    `json:"pending"`
}

// HubStats holds live hub counters.
type HubStats struct {
	Clients          int    `json:"clients"`
	TotalConnections uint64 `json:"totalConnections"`
	Published        uint64 `json:"published"`
	Dropped          uint64 `json:"dropped"`
}

type client struct {
	frames chan Frame
	app    string // Only frames of this app, empty for all
}

// Hub fans frames out to the connected clients.
type Hub struct {
	logger         *log.Logger
	originPatterns []string

	mu      sync.Mutex
	clients map[*client]struct{}

	totalConnections atomic.Uint64
	published        atomic.Uint64
	dropped          atomic.Uint64
}

// NewHub creates a hub. originPatterns restricts cross-origin browsers;
// nil allows same-origin only.
func NewHub(logger *log.Logger, originPatterns []string) *Hub {
	return &Hub{
		logger:         logger,
		originPatterns: originPatterns,
		clients:        make(map[*client]struct{}),
	}
}

// Publish sends f to every client without blocking.
func (h *Hub) Publish(f Frame) {
	h.published.Add(1)

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.app != "" && c.app != f.App {
			continue
		}
		select {
		case c.frames <- f:
		default:
			h.dropped.Add(1)
		}
	}
}

// Source returns a board observer that publishes under the given board name.
func (h *Hub) Source(board string) *Source {
	return &Source{hub: h, board: board}
}

// Stats returns a snapshot of the hub counters.
func (h *Hub) Stats() HubStats {
	h.mu.Lock()
	n := len(h.clients)
	h.mu.Unlock()
	return HubStats{
		Clients:          n,
		TotalConnections: h.totalConnections.Load(),
		Published:        h.published.Load(),
		Dropped:          h.dropped.Load(),
	}
}

// HandleWS upgrades the request and streams frames until the client goes
// away. The optional "app" query parameter filters by app ID.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.logger.Warn("telemetry accept failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.CloseNow()

	c := &client{
		frames: make(chan Frame, clientBuffer),
		app:    r.URL.Query().Get("app"),
	}
	h.add(c)
	defer h.remove(c)
	h.logger.Info("telemetry client connected", "remote", r.RemoteAddr, "app", c.app)

	// Clients only listen; CloseRead handles their close frame.
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("telemetry client gone", "remote", r.RemoteAddr)
			return
		case f := <-c.frames:
			if err := write(ctx, conn, f); err != nil {
				h.logger.Debug("telemetry write failed", "remote", r.RemoteAddr, "err", err)
				return
			}
		}
	}
}

func write(ctx context.Context, conn *websocket.Conn, f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, data)
}

func (h *Hub) add(c *client) {
	h.totalConnections.Add(1)
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Source adapts a Hub to one board's status reports.
type Source struct {
	hub   *Hub
	board string
}

// Observe publishes one status report.
func (s *Source) Observe(app string, at sched.Instant, st core.Status, stats sched.Stats) {
	s.hub.Publish(Frame{
		Board:    s.board,
		App:      app,
		Cycles:   uint64(at),
		Ticks:    st.Ticks,
		Score:    st.Score,
		GameOver: st.GameOver,
		Detail:   st.Detail,
		Fired:    stats.Fired,
		Late:     stats.Late,
		Pending:  stats.Pending,
	})
}
