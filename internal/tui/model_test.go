package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/stellarhub/internal/behavior"
	"github.com/1broseidon/stellarhub/internal/chrome"
	"github.com/1broseidon/stellarhub/internal/config"
	"github.com/1broseidon/stellarhub/internal/hub"
	"github.com/1broseidon/stellarhub/internal/logging"
	"github.com/1broseidon/stellarhub/internal/panels"
)

type recordingSink struct {
	hints []chrome.CursorHint
}

func (r *recordingSink) SetCursor(h chrome.CursorHint) { r.hints = append(r.hints, h) }

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	m, err := NewModel(opts)
	require.NoError(t, err)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func press(m *Model, k tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(k)
	return cmd
}

func TestNewModelRegistersPanels(t *testing.T) {
	ring := logging.NewRing(10, slog.LevelDebug)
	m := newTestModel(t, Options{Log: ring})

	var names []string
	for _, w := range m.Hub().Windows() {
		names = append(names, w.Name())
	}
	assert.Equal(t, []string{panels.KeysName, panels.StatusName, panels.LogName}, names)

	logPanel, err := m.Hub().WindowByName(panels.LogName)
	require.NoError(t, err)
	assert.False(t, logPanel.IsVisible())
	assert.Len(t, m.Hub().Toolbar().Controls(), 3)
}

func TestToggleKeyOpensAndClosesHub(t *testing.T) {
	m := newTestModel(t, Options{})

	press(m, tea.KeyMsg{Type: tea.KeyF12})
	assert.True(t, m.Hub().IsVisible())
	assert.Equal(t, m.Hub().Retained(), m.World().Enabled())

	start := m.World().Player()
	press(m, runes("d"))
	assert.Equal(t, start, m.World().Player(), "walking is suspended under the hub")

	press(m, tea.KeyMsg{Type: tea.KeyF12})
	assert.False(t, m.Hub().IsVisible())
	assert.Equal(t, behavior.All, m.World().Enabled())
}

func TestTypingBlocksToggle(t *testing.T) {
	m := newTestModel(t, Options{})
	press(m, runes("t"))
	require.True(t, m.World().Typing())

	press(m, tea.KeyMsg{Type: tea.KeyF12})
	assert.False(t, m.Hub().IsVisible())

	m.Update(ToggleHubMsg{})
	assert.False(t, m.Hub().IsVisible())
}

func TestEscapeClosesHub(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(ToggleHubMsg{})
	require.True(t, m.Hub().IsVisible())
	require.Equal(t, 1, m.World().Menus())

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Hub().IsVisible())
	assert.Equal(t, 0, m.World().Menus())
	assert.Equal(t, behavior.All, m.World().Enabled())
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, Options{})
	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestMouseDragResizesTopWindow(t *testing.T) {
	sink := &recordingSink{}
	m := newTestModel(t, Options{Cursor: sink})
	m.Update(ToggleHubMsg{})

	status, err := m.Hub().WindowByName(panels.StatusName)
	require.NoError(t, err)
	c, err := m.Hub().Chrome(status)
	require.NoError(t, err)
	require.True(t, c.Stabilized())
	before := c.Rect()

	corner := c.Root().WorldRect().Max()
	corner.X--
	corner.Y--
	m.Update(tea.MouseMsg{X: corner.X, Y: corner.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.True(t, c.Surface().Active())
	assert.Equal(t, chrome.CursorResizeDiagonalDown, m.Pointer().Hint.Cursor)
	require.NotEmpty(t, sink.hints)

	m.Update(tea.MouseMsg{X: corner.X - 3, Y: corner.Y - 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: corner.X - 3, Y: corner.Y - 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	assert.False(t, c.Surface().Active())
	after := c.Rect()
	assert.Equal(t, before.Width-3, after.Width)
	assert.Equal(t, before.Height-1, after.Height)
	assert.Equal(t, before.Min(), after.Min())
}

func TestWheelIsIgnored(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.False(t, m.Pointer().Inside)
}

func TestViewShowsWorldOrHub(t *testing.T) {
	m := newTestModel(t, Options{})

	view := strings.Join(plainLines(m.View()), "\n")
	assert.Contains(t, view, "tool 1")
	assert.NotContains(t, view, panels.StatusName)

	m.Update(ToggleHubMsg{})
	view = strings.Join(plainLines(m.View()), "\n")
	assert.Contains(t, view, panels.KeysName)
	assert.Contains(t, view, panels.StatusName)
	assert.Contains(t, view, "hub        open")
}

func TestViewEmptyBeforeSize(t *testing.T) {
	m, err := NewModel(Options{Logger: logging.Discard()})
	require.NoError(t, err)
	assert.Equal(t, "", m.View())
}

func TestConfigReloadRebindsKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	cfg := config.DefaultConfig()
	cfg.ToggleKey = "f9"
	m.Update(ConfigReloadedMsg{Result: &config.LoadResult{Config: cfg}})

	press(m, tea.KeyMsg{Type: tea.KeyF12})
	assert.False(t, m.Hub().IsVisible())
	press(m, tea.KeyMsg{Type: tea.KeyF9})
	assert.True(t, m.Hub().IsVisible())

	text := m.Scene().Root().Find("keys-text")
	require.NotNil(t, text)
	assert.Contains(t, text.Text, "f9")
}

func TestStatusPanelReportsState(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newTestModel(t, Options{Now: func() time.Time { return now }})
	now = now.Add(90 * time.Second)
	m.Update(ToggleHubMsg{})

	text := m.Scene().Root().Find("status-text")
	require.NotNil(t, text)
	assert.Contains(t, text.Text, "hub        open")
	assert.Contains(t, text.Text, "windows    2 (2 visible)")
	assert.Contains(t, text.Text, "context    restricted")
	assert.Contains(t, text.Text, "uptime     1m30s")
}

func syncBridge(m *Model) *Bridge {
	return NewBridge(func(msg tea.Msg) { m.Update(msg) })
}

func TestBridgeControlsHub(t *testing.T) {
	m := newTestModel(t, Options{})
	b := syncBridge(m)
	ctx := context.Background()

	st, err := b.Status(ctx)
	require.NoError(t, err)
	assert.False(t, st.HubVisible)
	assert.Equal(t, 2, st.WindowCount)
	assert.Equal(t, behavior.All.Names(), st.EnabledBehaviors)

	hd, err := b.ToggleHub(ctx)
	require.NoError(t, err)
	assert.True(t, hd.Visible)
	assert.True(t, hd.Changed)

	hd, err = b.SetHubVisible(ctx, true)
	require.NoError(t, err)
	assert.False(t, hd.Changed)

	info, err := b.SetWindowVisible(ctx, panels.KeysName, false)
	require.NoError(t, err)
	assert.False(t, info.Visible)
	assert.Equal(t, panels.KeysName, info.Name)

	wd, err := b.Windows(ctx)
	require.NoError(t, err)
	require.Len(t, wd.Windows, 2)
	assert.False(t, wd.Windows[0].Visible)
	assert.True(t, wd.Windows[1].Visible)
	assert.Positive(t, wd.Windows[1].Width)
}

func TestBridgeUnknownWindow(t *testing.T) {
	m := newTestModel(t, Options{})
	_, err := syncBridge(m).SetWindowVisible(context.Background(), "Nope", true)
	assert.True(t, errors.Is(err, hub.ErrNotRegistered))
}

func TestBridgeHonoursContext(t *testing.T) {
	b := NewBridge(func(tea.Msg) {})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := b.Status(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
