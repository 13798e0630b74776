package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dso-arcade/internal/board"
	"github.com/vovakirdan/dso-arcade/internal/buzzer"
	"github.com/vovakirdan/dso-arcade/internal/config"
	"github.com/vovakirdan/dso-arcade/internal/core"
	"github.com/vovakirdan/dso-arcade/internal/input"
)

// Options configures a board view.
type Options struct {
	AppID  string
	Config config.Config
	Logger *log.Logger
	Buzzer buzzer.Buzzer
	Width  int // Initial terminal size, 0 for the defaults
	Height int

	// Observer receives the status reports of every board power cycle.
	Observer board.Observer
}

// Model is the Bubble Tea model showing one board's LCD.
type Model struct {
	ctx    context.Context
	opts   Options
	run    *session
	screen *core.Screen
	keys   KeyMap
	help   help.Model
	rc     core.RuntimeConfig
	hold   time.Duration
	err    error // Set when a restart fails
}

// NewModel powers on a board running opts.AppID.
func NewModel(ctx context.Context, opts Options) (Model, error) {
	rc := core.DefaultConfig()
	rc.TickRate = opts.Config.View.FPS
	if opts.Width > 0 && opts.Height > 0 {
		rc.ScreenW, rc.ScreenH = opts.Width, opts.Height
	}

	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Buzzer == nil {
		opts.Buzzer = buzzer.Nop{}
	}

	run, err := startSession(ctx, opts)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		ctx:    ctx,
		opts:   opts,
		run:    run,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		rc:     rc,
		hold:   time.Duration(opts.Config.View.HoldMS) * time.Millisecond,
	}
	m.screen = core.NewScreen(m.lcdSize())
	return m, nil
}

// lcdSize is the cell area left for the LCD after the status bar and help.
func (m Model) lcdSize() (int, int) {
	return m.rc.ScreenW, max(m.rc.ScreenH-2, 1)
}

// Init starts the refresh loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.rc.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.rc.ScreenW = msg.Width
		m.rc.ScreenH = msg.Height
		m.screen.Resize(m.lcdSize())
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.run.poll() && m.run.err != nil {
			return m, tea.Quit
		}
		return m, tickCmd(m.rc.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	if btn, ok := action.Button(); ok {
		m.run.board.Press(input.Button(btn), m.hold)
		return m, nil
	}

	switch action {
	case core.ActionQuit:
		return m, tea.Quit
	case core.ActionRestart:
		if err := m.run.stop(); err != nil {
			m.opts.Logger.Warn("board stopped with error", "err", err)
		}
		run, err := startSession(m.ctx, m.opts)
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.run = run
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// saveScreenshot saves the current LCD view to a file.
func (m *Model) saveScreenshot() {
	m.run.board.Framebuffer().Downsample(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.opts.AppID, timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, the board keeps running regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the LCD, a status bar and the key help.
func (m Model) View() string {
	m.run.board.Framebuffer().Downsample(m.screen)
	return RenderScreen(m.screen) + "\n" +
		renderStatus(m.run.app.Title(), m.run.board.Status(), m.run.board.Stats(), m.rc.ScreenW) + "\n" +
		m.help.View(m.keys)
}

// Run shows a board running opts.AppID until the user quits, then powers
// it off. Returns the error that stopped the board, if any.
func Run(ctx context.Context, opts Options) error {
	model, err := NewModel(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, runErr := p.Run()
	m, ok := final.(Model)
	if !ok {
		m = model
	}
	stopErr := m.run.stop()

	switch {
	case runErr != nil:
		return runErr
	case m.err != nil:
		return m.err
	default:
		return stopErr
	}
}
