package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/dso-arcade/internal/board"
	"github.com/vovakirdan/dso-arcade/internal/config"
)

type stubApp struct{ title string }

func (s stubApp) ID() string                 { return "stub" }
func (s stubApp) Title() string              { return s.title }
func (s stubApp) Start(b *board.Board) error { return nil }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub", func(cfg config.Config) board.App {
		return stubApp{title: "Stub"}
	})

	if !Exists("zz-stub") {
		t.Fatal("Exists() = false after Register")
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" {
			found = info.Title == "Stub"
		}
	}
	if !found {
		t.Errorf("List() = %v, expected zz-stub with its title", List())
	}

	app, err := Create("zz-stub", config.DefaultConfig())
	if err != nil || app.Title() != "Stub" {
		t.Errorf("Create() = %v, %v", app, err)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-app", config.DefaultConfig())
	if !errors.Is(err, ErrUnknownApp) {
		t.Errorf("Create() error = %v, expected ErrUnknownApp", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(cfg config.Config) board.App { return stubApp{} }
	Register("zz-dup", f)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("zz-dup", f)
}
