// Package monitor streams controller snapshots to staff tools over a
// websocket and answers health checks.
package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"trail/app"
	"trail/internal/buildinfo"
)

const (
	queueLen     = 64
	clientQueue  = 16
	writeTimeout = 200 * time.Millisecond
)

// Hub fans snapshots out to websocket clients.
type Hub struct {
	log     zerolog.Logger
	in      chan app.Snapshot
	started time.Time

	mu      sync.RWMutex
	last    app.Snapshot
	have    bool
	clients map[*websocket.Conn]chan []byte
	dropped uint64
}

func New(log zerolog.Logger) *Hub {
	return &Hub{
		log:     log.With().Str("component", "monitor").Logger(),
		in:      make(chan app.Snapshot, queueLen),
		started: time.Now(),
		clients: map[*websocket.Conn]chan []byte{},
	}
}

// Publish queues s for broadcast. It never blocks; when the queue is full
// the snapshot is dropped.
func (h *Hub) Publish(s app.Snapshot) {
	select {
	case h.in <- s:
	default:
		h.mu.Lock()
		h.dropped++
		h.mu.Unlock()
	}
}

// Run broadcasts queued snapshots until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case s := <-h.in:
			b, err := json.Marshal(s)
			if err != nil {
				h.log.Error().Err(err).Msg("marshal snapshot")
				continue
			}
			h.mu.Lock()
			h.last, h.have = s, true
			for c, q := range h.clients {
				select {
				case q <- b:
				default:
					h.log.Debug().Str("client", c.RemoteAddr().String()).Msg("client slow, frame dropped")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Handler serves /ws and /health.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.HandleWS)
	mux.HandleFunc("/health", h.HandleHealth)
	return mux
}

// Serve runs Run and an HTTP server on addr until ctx is done.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: h.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
	h.log.Info().Str("addr", ln.Addr().String()).Msg("monitor listening")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	q := make(chan []byte, clientQueue)

	h.mu.Lock()
	h.clients[conn] = q
	if h.have {
		if b, err := json.Marshal(h.last); err == nil {
			q <- b
		}
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Info().Str("client", conn.RemoteAddr().String()).Int("clients", n).Msg("client connected")

	go h.writer(conn, q)
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) writer(conn *websocket.Conn, q <-chan []byte) {
	for b := range q {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			h.log.Debug().Err(err).Msg("write snapshot")
			h.drop(conn)
			return
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	q, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		close(q)
		conn.Close()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.Unlock()
	for _, c := range conns {
		h.drop(c)
	}
}

// Health is the /health body.
type Health struct {
	Build   string        `json:"build"`
	UptimeS float64       `json:"uptime_s"`
	Clients int           `json:"clients"`
	Dropped uint64        `json:"dropped"`
	Last    *app.Snapshot `json:"last,omitempty"`
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.Health())
}

// Health reports hub state.
func (h *Hub) Health() Health {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := Health{
		Build:   buildinfo.Short(),
		UptimeS: time.Since(h.started).Seconds(),
		Clients: len(h.clients),
		Dropped: h.dropped,
	}
	if h.have {
		last := h.last
		out.Last = &last
	}
	return out
}
