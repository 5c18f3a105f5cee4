package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/stellarhub/internal/behavior"
	"github.com/1broseidon/stellarhub/internal/geometry"
	"github.com/1broseidon/stellarhub/internal/hub"
	"github.com/1broseidon/stellarhub/internal/scene"
)

// ClassWorld styles the demo world behind the overlay.
const ClassWorld = "world"

const maxWorldMessages = 3

// worldKeys are the demo world's own bindings. Each is gated by a behavior
// flag.
type worldKeys struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Chat      key.Binding
	Inventory key.Binding
	Tool      key.Binding
	Escape    key.Binding
}

func newWorldKeys() worldKeys {
	return worldKeys{
		Up:        key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/↑", "walk up")),
		Down:      key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/↓", "walk down")),
		Left:      key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a/←", "walk left")),
		Right:     key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d/→", "walk right")),
		Chat:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "chat")),
		Inventory: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inventory")),
		Tool:      key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "select tool")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close menus")),
	}
}

func (k worldKeys) all() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Chat, k.Inventory, k.Tool, k.Escape}
}

// inventory is a closable menu owned by the world.
type inventory struct {
	world *World
}

func (i *inventory) Close() { i.world.closeInventory() }

// World is a stand-in for the host application under the overlay. It owns
// the behavior flags, the open-menu list and a text-entry mode that blocks
// the hub toggle.
type World struct {
	keys   worldKeys
	logger *slog.Logger

	enabled    behavior.Set
	restricted bool
	menus      []hub.ClosableMenu

	typing   bool
	draft    string
	inv      *inventory
	tool     int
	player   geometry.Point
	messages []string

	node       *scene.Node
	statusText *scene.Node
	playerNode *scene.Node
}

// NewWorld returns a world with every behavior enabled.
func NewWorld(logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.Default()
	}
	w := &World{
		keys:    newWorldKeys(),
		logger:  logger,
		enabled: behavior.All,
		tool:    1,
		player:  geometry.Point{X: 4, Y: 4},
	}

	w.node = scene.NewBox("world")
	w.node.Absolute = true
	w.node.AddClass(ClassWorld)
	w.statusText = scene.NewLabel("world-status", "")
	w.playerNode = scene.NewLabel("player", "@")
	w.playerNode.Absolute = true
	w.node.Add(w.statusText)
	w.node.Add(w.playerNode)
	w.sync()
	return w
}

// Node returns the world's scene node; it fills the scene behind the hub.
func (w *World) Node() *scene.Node { return w.node }

// Enabled implements hub.BehaviorService.
func (w *World) Enabled() behavior.Set { return w.enabled }

// SetEnabled implements hub.BehaviorService. The world has a single input
// context, so restrict only records the request.
func (w *World) SetEnabled(set behavior.Set, restrict bool) {
	w.enabled = set
	w.restricted = restrict
	w.logger.Debug("behaviors changed", "enabled", set.String(), "restricted", restrict)
	w.sync()
}

// Restricted reports whether the last SetEnabled was limited to the current
// input context.
func (w *World) Restricted() bool { return w.restricted }

// TrackMenu implements hub.MenuTracker.
func (w *World) TrackMenu(m hub.ClosableMenu) {
	for _, existing := range w.menus {
		if existing == m {
			return
		}
	}
	w.menus = append(w.menus, m)
}

// UntrackMenu implements hub.MenuTracker.
func (w *World) UntrackMenu(m hub.ClosableMenu) {
	for i, existing := range w.menus {
		if existing == m {
			w.menus = append(w.menus[:i:i], w.menus[i+1:]...)
			return
		}
	}
}

// Menus returns the number of tracked menus.
func (w *World) Menus() int { return len(w.menus) }

// CloseMenus closes every tracked menu, newest first. It does nothing
// unless the Escape behavior is enabled.
func (w *World) CloseMenus() bool {
	if !w.enabled.Has(behavior.Escape) || len(w.menus) == 0 {
		return false
	}
	open := append([]hub.ClosableMenu(nil), w.menus...)
	for i := len(open) - 1; i >= 0; i-- {
		open[i].Close()
	}
	return true
}

// CanToggle is the hub toggle guard: the overlay cannot be toggled while
// the player is typing.
func (w *World) CanToggle() bool { return !w.typing }

// Typing reports whether text entry is active.
func (w *World) Typing() bool { return w.typing }

// Player returns the player position in world cells.
func (w *World) Player() geometry.Point { return w.player }

// InventoryOpen reports whether the inventory menu is open.
func (w *World) InventoryOpen() bool { return w.inv != nil }

// Tool returns the selected tool slot.
func (w *World) Tool() int { return w.tool }

// Messages returns the most recent chat lines.
func (w *World) Messages() []string { return append([]string(nil), w.messages...) }

// HandleKey applies a key press to the world. It reports whether the key was
// consumed.
func (w *World) HandleKey(msg tea.KeyMsg) bool {
	defer w.sync()

	if w.typing {
		return w.handleTyping(msg)
	}

	switch {
	case key.Matches(msg, w.keys.Escape):
		return w.CloseMenus()
	case key.Matches(msg, w.keys.Chat):
		if !w.enabled.Has(behavior.Input) {
			return false
		}
		w.typing = true
		w.draft = ""
		return true
	case key.Matches(msg, w.keys.Inventory):
		if !w.enabled.Has(behavior.Inventory) {
			return false
		}
		if w.inv != nil {
			w.closeInventory()
		} else {
			w.inv = &inventory{world: w}
			w.TrackMenu(w.inv)
		}
		return true
	case key.Matches(msg, w.keys.Tool):
		if !w.enabled.Has(behavior.ToolSelection) {
			return false
		}
		w.tool = int(msg.String()[0] - '0')
		return true
	}

	var d geometry.Point
	switch {
	case key.Matches(msg, w.keys.Up):
		d.Y = -1
	case key.Matches(msg, w.keys.Down):
		d.Y = 1
	case key.Matches(msg, w.keys.Left):
		d.X = -1
	case key.Matches(msg, w.keys.Right):
		d.X = 1
	default:
		return false
	}
	if !w.enabled.Has(behavior.Walking) {
		return false
	}
	w.walk(d)
	return true
}

func (w *World) handleTyping(msg tea.KeyMsg) bool {
	if !w.enabled.Has(behavior.Input) {
		return false
	}
	switch msg.Type {
	case tea.KeyEnter:
		if text := strings.TrimSpace(w.draft); text != "" {
			w.messages = append(w.messages, text)
			if len(w.messages) > maxWorldMessages {
				w.messages = w.messages[len(w.messages)-maxWorldMessages:]
			}
		}
		w.typing = false
		w.draft = ""
	case tea.KeyEsc:
		w.typing = false
		w.draft = ""
	case tea.KeyBackspace:
		if r := []rune(w.draft); len(r) > 0 {
			w.draft = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		w.draft += " "
	case tea.KeyRunes:
		w.draft += string(msg.Runes)
	default:
		return false
	}
	return true
}

func (w *World) closeInventory() {
	if w.inv == nil {
		return
	}
	w.UntrackMenu(w.inv)
	w.inv = nil
	w.sync()
}

func (w *World) walk(d geometry.Point) {
	area := w.node.ContentRect()
	p := w.player.Add(d)
	if !area.Empty() {
		// Row 0..statusRows-1 holds the status text.
		p.X = geometry.Clamp(p.X, area.X, area.Right()-1)
		p.Y = geometry.Clamp(p.Y, area.Y+statusRows, area.Bottom()-1)
	}
	w.player = p
}

const statusRows = 2

// sync pushes world state into its scene nodes.
func (w *World) sync() {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tool %d  behaviors %s", w.tool, w.enabled)
	if w.inv != nil {
		sb.WriteString("  [inventory]")
	}
	sb.WriteByte('\n')
	switch {
	case w.typing:
		fmt.Fprintf(&sb, "say: %s_", w.draft)
	case len(w.messages) > 0:
		sb.WriteString(strings.Join(w.messages, " | "))
	}
	w.statusText.Text = sb.String()
	w.statusText.Height = statusRows
	w.playerNode.SetRect(geometry.Rect{X: w.player.X, Y: w.player.Y, Width: 1, Height: 1})
}

// Bindings returns the world's key help.
func (w *World) Bindings() []key.Binding { return w.keys.all() }
