package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Server exposes a Hub over HTTP: /telemetry is the WebSocket stream and
// /health returns the hub counters.
type Server struct {
	hub    *Hub
	http   *http.Server
	logger *log.Logger
}

// NewServer creates a telemetry server on addr.
func NewServer(addr string, hub *Hub, logger *log.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/telemetry", hub.HandleWS)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(hub.Stats()); err != nil {
			logger.Debug("health encode failed", "err", err)
		}
	})

	return &Server{
		hub:    hub,
		logger: logger,
		http: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			MaxHeaderBytes:    1 << 16,
		},
	}
}

// Hub returns the server's hub.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the HTTP routes, for embedding or tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Start listens on the configured address and serves in the background
// until ctx is cancelled. It returns the bound address.
func (s *Server) Start(ctx context.Context) (net.Addr, error) {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return nil, err
	}
	s.logger.Info("telemetry listening", "addr", ln.Addr().String())

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("telemetry server stopped", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.http.Close()
		}
	}()
	return ln.Addr(), nil
}
