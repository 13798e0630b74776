package tui

import (
	"context"
	"fmt"

	"github.com/vovakirdan/dso-arcade/internal/board"
	"github.com/vovakirdan/dso-arcade/internal/registry"
)

// session is one power cycle of a board running an app in the background.
type session struct {
	board  *board.Board
	app    board.App
	cancel context.CancelFunc
	done   chan error

	exited bool
	err    error
}

func startSession(ctx context.Context, opts Options) (*session, error) {
	app, err := registry.Create(opts.AppID, opts.Config)
	if err != nil {
		return nil, err
	}

	b := board.New(board.Options{
		Config:   opts.Config.Board,
		Logger:   opts.Logger,
		Buzzer:   opts.Buzzer,
		Observer: opts.Observer,
	})

	ctx, cancel := context.WithCancel(ctx)
	s := &session{
		board:  b,
		app:    app,
		cancel: cancel,
		done:   make(chan error, 1),
	}
	go func() {
		s.done <- b.Run(ctx, app)
	}()
	return s, nil
}

// poll reports whether the board stopped on its own.
func (s *session) poll() bool {
	if s.exited {
		return true
	}
	select {
	case err := <-s.done:
		s.exited = true
		s.err = err
		return true
	default:
		return false
	}
}

// stop powers the board off and returns its error, if any.
func (s *session) stop() error {
	s.cancel()
	if !s.exited {
		s.err = <-s.done
		s.exited = true
	}
	if s.err != nil {
		return fmt.Errorf("%s: %w", s.app.ID(), s.err)
	}
	return nil
}
