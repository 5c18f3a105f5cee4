package hub

import (
	"github.com/1broseidon/stellarhub/internal/assets"
	"github.com/1broseidon/stellarhub/internal/chrome"
	"github.com/1broseidon/stellarhub/internal/event"
	"github.com/1broseidon/stellarhub/internal/geometry"
	"github.com/1broseidon/stellarhub/internal/scene"
)

// Toolbar style classes.
const (
	ClassToolbar   = "hub-toolbar"
	ClassChecked   = "checked"
	ClassUnchecked = "unchecked"
)

// Control is one toolbar toggle.
type Control struct {
	Window Window
	Node   *scene.Node

	checkedGlyph   string
	uncheckedGlyph string
}

// Checked reports whether the control shows its window as visible.
func (c *Control) Checked() bool { return c.Node.HasClass(ClassChecked) }

func (c *Control) setChecked(v bool) {
	glyph := c.uncheckedGlyph
	if v {
		glyph = c.checkedGlyph
		c.Node.RemoveClass(ClassUnchecked)
		c.Node.AddClass(ClassChecked)
	} else {
		c.Node.RemoveClass(ClassChecked)
		c.Node.AddClass(ClassUnchecked)
	}
	c.Node.Text = glyph + " " + c.Window.Name()
}

// Toolbar shows one toggle per registered window and is rebuilt from scratch
// whenever the registry changes.
type Toolbar struct {
	hub      *Hub
	root     *scene.Node
	controls []*Control
	subs     event.Group
	hubSubs  event.Group
}

func newToolbar(h *Hub) *Toolbar {
	t := &Toolbar{hub: h}
	t.root = scene.NewBox("toolbar")
	t.root.Flow = scene.Row
	t.root.Height = 1
	t.root.AddClass(ClassToolbar)

	t.hubSubs.Add(h.Added.Subscribe(func(Window) { t.rebuild() }))
	t.hubSubs.Add(h.Removed.Subscribe(func(Window) { t.rebuild() }))
	return t
}

func (t *Toolbar) glyph(name, fallback string) string {
	a, err := assets.Require(t.hub.assets, name)
	if err != nil {
		t.hub.logger.Warn("toolbar glyph fallback", "err", err)
		return fallback
	}
	return a.Glyph
}

func (t *Toolbar) rebuild() {
	t.subs.CancelAll()
	t.root.Clear()
	t.controls = nil

	checked := t.glyph(assets.ToggleChecked, "[x]")
	unchecked := t.glyph(assets.ToggleUnchecked, "[ ]")

	for _, e := range t.hub.entries {
		w, c := e.window, e.chrome

		ctl := &Control{Window: w, checkedGlyph: checked, uncheckedGlyph: unchecked}
		ctl.Node = scene.NewButton(w.Name(), "", func() { w.SetVisible(!w.IsVisible()) })
		ctl.Node.Padding = geometry.Insets{Left: 1, Right: 1}
		ctl.setChecked(w.IsVisible())

		t.subs.Add(w.VisibilityChanged().Subscribe(func(v bool) {
			t.windowVisibilityChanged(c, ctl, v)
		}))
		t.root.Add(ctl.Node)
		t.controls = append(t.controls, ctl)
	}
	t.hub.logger.Debug("toolbar rebuilt", "controls", len(t.controls))
}

func (t *Toolbar) windowVisibilityChanged(c *chrome.Chrome, ctl *Control, v bool) {
	c.SetVisible(v)
	if v {
		c.BringToFront()
	} else {
		c.CancelDrag()
	}
	ctl.setChecked(v)
}

// Root returns the toolbar node.
func (t *Toolbar) Root() *scene.Node { return t.root }

// Controls returns the current toggles in registry order.
func (t *Toolbar) Controls() []*Control {
	return append([]*Control(nil), t.controls...)
}

// Close detaches the toolbar from the registry and from every window.
func (t *Toolbar) Close() {
	t.subs.CancelAll()
	t.hubSubs.CancelAll()
}
