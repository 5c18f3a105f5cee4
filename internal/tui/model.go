// Package tui hosts the hub in a terminal: it renders the scene with
// lipgloss, feeds mouse and keyboard input into it, and runs a small demo
// world underneath the overlay.
package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/stellarhub/internal/assets"
	"github.com/1broseidon/stellarhub/internal/chrome"
	"github.com/1broseidon/stellarhub/internal/config"
	"github.com/1broseidon/stellarhub/internal/geometry"
	"github.com/1broseidon/stellarhub/internal/hub"
	"github.com/1broseidon/stellarhub/internal/panels"
	"github.com/1broseidon/stellarhub/internal/scene"
)

// ClassOverlay styles the hub's backdrop.
const ClassOverlay = "hub-overlay"

// mousePointer is the pointer id used for the terminal mouse.
const mousePointer = 0

// ToggleHubMsg asks the model to toggle the overlay, e.g. from a global
// hotkey.
type ToggleHubMsg struct{}

// LogUpdatedMsg tells the model that new log lines are available.
type LogUpdatedMsg struct{}

// ConfigReloadedMsg carries a configuration re-read from disk.
type ConfigReloadedMsg struct {
	Result *config.LoadResult
}

// ConfigErrorMsg reports a configuration file that failed to reload.
type ConfigErrorMsg struct {
	Err error
}

// Options configures the model.
type Options struct {
	Config *config.Config
	Assets assets.Provider
	Logger *slog.Logger
	// Log feeds the Log panel; without it the panel is not registered.
	Log panels.LineSource
	// Cursor additionally receives every cursor hint, e.g. for native X11
	// cursors.
	Cursor chrome.CursorSink
	Now    func() time.Time
}

// Model is the bubbletea model of the terminal host.
type Model struct {
	cfg    *config.Config
	keys   keyMap
	logger *slog.Logger
	now    func() time.Time

	scene    *scene.Scene
	hub      *hub.Hub
	world    *World
	renderer *Renderer

	keysPanel   *panels.Keys
	logPanel    *panels.Log
	statusPanel *panels.Status

	native  chrome.CursorSink
	pointer Pointer
	last    geometry.Point
	hasLast bool

	width   int
	height  int
	started time.Time
}

// NewModel builds the scene, the hub with its panels and the demo world.
func NewModel(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	theme := opts.Assets
	if theme == nil {
		theme = assets.Builtin()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := &Model{
		cfg:      cfg,
		keys:     newKeyMap(cfg),
		logger:   logger,
		now:      now,
		scene:    scene.New(),
		world:    NewWorld(logger),
		renderer: NewRenderer(theme),
		native:   opts.Cursor,
		started:  now(),
	}

	retained := cfg.Retained()
	margins := cfg.WindowMargins.Insets()
	m.hub = hub.New(hub.Options{
		HandleWidth: cfg.ResizeHandleWidth,
		Margins:     &margins,
		Retained:    &retained,
		Behaviors:   m.world,
		Menus:       m.world,
		CanToggle:   m.world.CanToggle,
		Assets:      theme,
		Cursor:      m,
		Logger:      logger,
	})
	m.hub.Root().AddClass(ClassOverlay)

	m.scene.Root().Add(m.world.Node())
	m.scene.Root().Add(m.hub.Root())

	m.keysPanel = panels.NewKeys(m.helpBindings())
	m.statusPanel = panels.NewStatus(m.statusLines)
	windows := []hub.Window{m.keysPanel, m.statusPanel}
	if opts.Log != nil {
		m.logPanel = panels.NewLog(opts.Log)
		m.logPanel.SetVisible(false)
		windows = append(windows, m.logPanel)
	}
	for _, w := range windows {
		if err := m.hub.AddWindow(w); err != nil {
			return nil, fmt.Errorf("failed to register panel: %w", err)
		}
	}
	return m, nil
}

// Hub returns the overlay registry.
func (m *Model) Hub() *hub.Hub { return m.hub }

// World returns the demo world.
func (m *Model) World() *World { return m.world }

// Scene returns the scene being rendered.
func (m *Model) Scene() *scene.Scene { return m.scene }

// Pointer returns the last known pointer state.
func (m *Model) Pointer() Pointer { return m.pointer }

// SetCursor implements chrome.CursorSink.
func (m *Model) SetCursor(h chrome.CursorHint) {
	m.pointer.Hint = h
	if m.native != nil {
		m.native.SetCursor(h)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.toggle()
		default:
			m.world.HandleKey(msg)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case ToggleHubMsg:
		m.toggle()

	case controlMsg:
		data, err := msg.fn(m)
		msg.reply <- controlResult{data: data, err: err}

	case ConfigReloadedMsg:
		if msg.Result != nil {
			m.applyConfig(msg.Result.Config)
		}

	case ConfigErrorMsg:
		m.logger.Warn("config reload failed", "err", msg.Err)

	case LogUpdatedMsg:
	}

	m.refresh()
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	return m.renderer.Render(m.scene, m.pointer)
}

func (m *Model) refresh() {
	m.statusPanel.Refresh()
	m.scene.Layout(geometry.Size{Width: m.width, Height: m.height})
	if m.logPanel != nil {
		m.logPanel.Refresh()
	}
}

func (m *Model) toggle() {
	if !m.hub.ToggleVisibility() {
		m.logger.Info("hub toggle refused", "typing", m.world.Typing())
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	pos := geometry.Point{X: msg.X, Y: msg.Y}

	var kind scene.PointerKind
	switch msg.Action {
	case tea.MouseActionPress:
		if tea.MouseEvent(msg).IsWheel() {
			return
		}
		kind = scene.PointerDown
	case tea.MouseActionRelease:
		kind = scene.PointerUp
	case tea.MouseActionMotion:
		kind = scene.PointerMove
	default:
		return
	}

	var delta geometry.Point
	if m.hasLast {
		delta = pos.Sub(m.last)
	}
	m.last, m.hasLast = pos, true
	m.pointer.Position, m.pointer.Inside = pos, true

	m.scene.Dispatch(scene.PointerEvent{
		Kind:      kind,
		Position:  pos,
		Delta:     delta,
		Button:    mouseButton(msg.Button),
		PointerID: mousePointer,
	})
}

func mouseButton(b tea.MouseButton) scene.MouseButton {
	switch b {
	case tea.MouseButtonLeft:
		return scene.ButtonPrimary
	case tea.MouseButtonRight:
		return scene.ButtonSecondary
	case tea.MouseButtonMiddle:
		return scene.ButtonMiddle
	default:
		return scene.ButtonNone
	}
}

// applyConfig takes over the key bindings of a reloaded config. Layout
// settings apply to windows registered afterwards, so they take effect on
// the next start.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.keys = newKeyMap(cfg)
	m.keysPanel.SetBindings(m.helpBindings())
	m.logger.Info("config reloaded", "toggle_key", cfg.ToggleKey, "quit_key", cfg.QuitKey)
	m.logger.Debug("margins, theme and handle width apply on restart")
}

func (m *Model) helpBindings() []panels.Binding {
	return helpBindings(m.keys, m.world.Bindings(), m.cfg.GlobalHotkey)
}

func (m *Model) statusLines() []string {
	state := "closed"
	if m.hub.IsVisible() {
		state = "open"
	}
	ctx := "global"
	if m.world.Restricted() {
		ctx = "restricted"
	}
	visible := 0
	windows := m.hub.Windows()
	for _, w := range windows {
		if w.IsVisible() {
			visible++
		}
	}
	p := m.world.Player()
	return []string{
		fmt.Sprintf("hub        %s", state),
		fmt.Sprintf("windows    %d (%d visible)", len(windows), visible),
		fmt.Sprintf("behaviors  %s", m.world.Enabled()),
		fmt.Sprintf("context    %s", ctx),
		fmt.Sprintf("menus      %d", m.world.Menus()),
		fmt.Sprintf("player     %d,%d", p.X, p.Y),
		fmt.Sprintf("uptime     %s", m.now().Sub(m.started).Truncate(time.Second)),
	}
}
