package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/dso-arcade/internal/board"
	"github.com/vovakirdan/dso-arcade/internal/config"
	"github.com/vovakirdan/dso-arcade/internal/registry"
	"github.com/vovakirdan/dso-arcade/internal/telemetry"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the board-per-session SSH server.
type SSHServerConfig struct {
	Address string
	// HostKeyPath defaults to ~/.arcade/host_key, generated on first use.
	HostKeyPath string
	IdleTimeout time.Duration
	AppID       string
	Board       config.Config
	// Telemetry, when set, streams every session's status reports.
	Telemetry *telemetry.Hub
}

// SSHServer serves one board per SSH session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer validates cfg and prepares the wish server.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "arcade-ssh"})
	}
	if !registry.Exists(cfg.AppID) {
		return nil, fmt.Errorf("cannot serve %q: %w", cfg.AppID, registry.ErrUnknownApp)
	}
	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, logger: logger}
	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.logSessions,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return srv, nil
}

// hostKeyPath resolves the key location and makes sure its directory exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot locate home directory: %w", err)
		}
		path = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

func sessionName(sess ssh.Session) string {
	return sess.User() + "@" + sess.RemoteAddr().String()
}

// teaHandler powers on a board for the session. The board stops with the
// session's context.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("session without a PTY", "session", sessionName(sess))
		return nil, nil
	}

	var obs board.Observer
	if s.config.Telemetry != nil {
		obs = s.config.Telemetry.Source(sessionName(sess))
	}

	model, err := NewModel(sess.Context(), Options{
		AppID:    s.config.AppID,
		Config:   s.config.Board,
		Logger:   s.logger.With("session", sessionName(sess)),
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
		Observer: obs,
	})
	if err != nil {
		s.logger.Error("cannot power on board", "session", sessionName(sess), "error", err)
		return nil, nil
	}
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session opened", "session", sessionName(sess))
		next(sess)
		s.logger.Info("session closed", "session", sessionName(sess), "duration", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until ctx is done, then drains open sessions.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("listening", "address", s.config.Address, "app", s.config.AppID)

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}
