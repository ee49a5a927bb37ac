package spectator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"gridsnake/game"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const writeWait = time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub pushes every published view to the connected websocket clients and keeps
// the latest one for plain HTTP reads.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan game.View
	latest  *game.View
	logger  zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]chan game.View),
		logger:  logger,
	}
}

// Publish hands v to every client. Clients that fall behind lose views rather
// than slowing down the simulation.
func (h *Hub) Publish(v game.View) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = &v
	for _, ch := range h.clients {
		select {
		case ch <- v:
		default:
		}
	}
}

// Clients returns the number of connected websocket clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Handler serves /ws (websocket stream) and /state (latest view as JSON).
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/state", h.serveState)
	return mux
}

// Serve starts an HTTP server for Handler on addr in the background. The
// returned stop function shuts it down, waiting at most a second.
func (h *Hub) Serve(addr string) (stop func()) {
	srv := &http.Server{Addr: addr, Handler: h.Handler()}
	go func() {
		h.logger.Info().Str("addr", addr).Msg("spectator server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error().Err(err).Msg("spectator server failed")
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func (h *Hub) serveState(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	latest := h.latest
	h.mu.Unlock()

	if latest == nil {
		http.Error(w, "no state yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(latest)
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	ch := h.register(conn)
	defer h.unregister(conn)

	// reader goroutine only notices the client going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case v := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(v); err != nil {
				h.logger.Debug().Err(err).Msg("spectator write failed")
				return
			}
		}
	}
}

func (h *Hub) register(conn *websocket.Conn) chan game.View {
	ch := make(chan game.View, 8)

	h.mu.Lock()
	h.clients[conn] = ch
	if h.latest != nil {
		ch <- *h.latest
	}
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().Str("remote", conn.RemoteAddr().String()).Int("clients", n).Msg("spectator connected")
	return ch
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}
