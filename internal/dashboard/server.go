package dashboard

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/monitor"
)

//go:embed index.html
var indexHTML []byte

const writeTimeout = 5 * time.Second

// Server is the display sink: it keeps the latest snapshot for
// GET /api/status and pushes each new snapshot to websocket clients.
type Server struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	latest  *monitor.Snapshot
	clients map[*websocket.Conn]struct{}
}

func NewServer(logger *zap.Logger) *Server {
	return &Server{
		logger: logger,
		upgrader: websocket.Upgrader{
			// loopback dashboard; same-origin checks add nothing here
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Publish implements monitor.Display. Called once per tick from the
// monitor goroutine; websocket writes are serialized under the lock.
func (s *Server) Publish(snap monitor.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = &snap
	for conn := range s.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(snap); err != nil {
			s.logger.Debug("ws_client_dropped", zap.Error(err))
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/", s.handleIndex)
	r.Get("/api/status", s.handleStatus)
	r.Get("/ws", s.handleWS)

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.latest
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if snap == nil {
		// no tick yet: everything is unknown
		_ = json.NewEncoder(w).Encode(monitor.Snapshot{
			Overall:      "unknown",
			OverallColor: "#808080",
			At:           time.Now().UTC(),
		})
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws_upgrade_failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	if s.latest != nil {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		_ = conn.WriteJSON(*s.latest)
	}
	s.mu.Unlock()

	// block until the client goes away, then unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}
