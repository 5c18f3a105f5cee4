// Package chrome builds the decorated frame around one panel: a title bar
// that moves it, margins that resize it, a close button and a content slot.
package chrome

import (
	"log/slog"

	"github.com/1broseidon/stellarhub/internal/assets"
	"github.com/1broseidon/stellarhub/internal/event"
	"github.com/1broseidon/stellarhub/internal/geometry"
	"github.com/1broseidon/stellarhub/internal/scene"
	"github.com/1broseidon/stellarhub/internal/surface"
)

// Style classes set on the frame's nodes.
const (
	ClassWindow   = "hub-window"
	ClassActive   = "hub-window-active"
	ClassTitlebar = "hub-window-titlebar"
	ClassTitle    = "hub-window-title"
	ClassClose    = "hub-window-close"
	ClassContent  = "hub-window-content"
)

const fallbackCloseGlyph = "x"

// DefaultMargins is where a frame sits inside its parent before the user
// first moves or resizes it.
var DefaultMargins = geometry.Insets{Top: 300, Bottom: 300, Left: 500, Right: 500}

// Options configures a frame.
type Options struct {
	Title       string
	HandleWidth int
	// Bounds limits the size of the content slot, not the whole frame.
	Bounds  geometry.Constraints
	Margins geometry.Insets
	OnClose func()
	Assets  assets.Provider
	Cursor  CursorSink
	Logger  *slog.Logger
}

// Chrome is the frame around one panel.
type Chrome struct {
	root     *scene.Node
	titlebar *scene.Node
	title    *scene.Node
	close    *scene.Node
	content  *scene.Node

	surface *surface.Surface
	bounds  geometry.Constraints
	onClose func()

	assets     assets.Provider
	sink       CursorSink
	logger     *slog.Logger
	cursor     Cursor
	stabilized bool
	subs       event.Group
}

// New builds a detached frame. Bounds are validated and rejected with a
// *geometry.ConfigurationError.
func New(opts Options) (*Chrome, error) {
	if err := opts.Bounds.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Chrome{
		bounds:  opts.Bounds,
		onClose: opts.OnClose,
		assets:  opts.Assets,
		sink:    opts.Cursor,
		logger:  logger,
	}

	c.root = scene.NewBox(opts.Title)
	c.root.Absolute = true
	c.root.Anchors = opts.Margins
	c.root.Padding = geometry.Uniform(opts.HandleWidth)
	c.root.AddClass(ClassWindow)

	c.titlebar = scene.NewBox("titlebar")
	c.titlebar.Flow = scene.Row
	c.titlebar.Height = 1
	c.titlebar.AddClass(ClassTitlebar)

	c.title = scene.NewLabel("title", opts.Title)
	c.title.Padding = geometry.Insets{Left: 1, Right: 1}
	c.title.AddClass(ClassTitle)

	c.close = scene.NewButton("close", c.closeGlyph(), c.Close)
	c.close.Padding = geometry.Insets{Left: 1, Right: 1}
	c.close.AddClass(ClassClose)

	c.titlebar.Add(c.title)
	c.titlebar.Add(scene.NewBox("spacer"))
	c.titlebar.Add(c.close)

	c.content = scene.NewBox("content")
	c.content.AddClass(ClassContent)
	c.content.OnPointer = func(ev scene.PointerEvent) bool {
		return ev.Kind == scene.PointerDown
	}

	c.root.Add(c.titlebar)
	c.root.Add(c.content)

	c.surface = surface.New(c.root, opts.HandleWidth)
	c.surface.SetMoveHandle(c.moveHandle)
	c.surface.OnModeChanged = c.modeChanged
	c.root.OnPointer = c.handlePointer

	c.subs.Add(c.content.GeometryChanged.Subscribe(c.contentGeometryChanged))
	return c, nil
}

func (c *Chrome) closeGlyph() string {
	a, err := assets.Require(c.assets, assets.CrossSmall)
	if err != nil {
		c.logger.Warn("close glyph fallback", "err", err)
		return fallbackCloseGlyph
	}
	return a.Glyph
}

// moveHandle returns the title bar in the frame's local space.
func (c *Chrome) moveHandle() geometry.Rect {
	return c.titlebar.Rect()
}

func (c *Chrome) handlePointer(ev scene.PointerEvent) bool {
	claimed := c.surface.HandlePointer(ev)
	if !c.surface.Active() {
		c.setCursor(CursorFor(c.surface.HoverMode(ev.Local)))
	}
	return claimed
}

func (c *Chrome) modeChanged(m surface.Mode) {
	if m.IsNone() {
		c.root.RemoveClass(ClassActive)
	} else {
		c.root.AddClass(ClassActive)
	}
	c.setCursor(CursorFor(m))
}

func (c *Chrome) setCursor(cur Cursor) {
	if cur == c.cursor {
		return
	}
	c.cursor = cur
	if c.sink != nil {
		c.sink.SetCursor(ResolveCursor(c.assets, cur, c.logger))
	}
}

// contentGeometryChanged converts the panel's content bounds into frame
// bounds on the first real layout, then fits the frame to them.
func (c *Chrome) contentGeometryChanged(r geometry.Rect) {
	if c.stabilized || r.Empty() || c.root.Rect().Empty() {
		return
	}
	c.stabilized = true

	frame := c.root.Rect().Size()
	padding := geometry.Size{Width: frame.Width - r.Width, Height: frame.Height - r.Height}
	if err := c.surface.SetConstraints(c.bounds.Grow(padding)); err != nil {
		c.logger.Error("frame bounds rejected", "window", c.root.Name, "err", err)
		return
	}
	c.surface.Fit()
	c.logger.Debug("frame stabilized", "window", c.root.Name, "rect", c.root.Rect().String(), "padding", padding.String())
}

// Close runs the close action.
func (c *Chrome) Close() {
	if c.onClose != nil {
		c.onClose()
	}
}

// Root returns the frame's node.
func (c *Chrome) Root() *scene.Node { return c.root }

// ContentSlot returns the node that holds the panel content.
func (c *Chrome) ContentSlot() *scene.Node { return c.content }

// SetContent replaces whatever the content slot shows with n.
func (c *Chrome) SetContent(n *scene.Node) {
	c.content.Clear()
	if n != nil {
		c.content.Add(n)
	}
}

// Surface returns the move/resize state machine.
func (c *Chrome) Surface() *surface.Surface { return c.surface }

// Title returns the title bar text.
func (c *Chrome) Title() string { return c.title.Text }

// Rect returns the frame's rect in its parent.
func (c *Chrome) Rect() geometry.Rect { return c.root.Rect() }

// Visible reports whether the frame is shown.
func (c *Chrome) Visible() bool { return c.root.Visible() }

// SetVisible shows or hides the frame.
func (c *Chrome) SetVisible(v bool) { c.root.SetVisible(v) }

// BringToFront raises the frame above its siblings.
func (c *Chrome) BringToFront() { c.root.BringToFront() }

// Cursor returns the cursor the frame last asked for.
func (c *Chrome) Cursor() Cursor { return c.cursor }

// CancelDrag abandons a move or resize in progress.
func (c *Chrome) CancelDrag() { c.surface.Cancel() }

// ResetCursor returns to the default cursor unless a drag is in progress.
func (c *Chrome) ResetCursor() {
	if !c.surface.Active() {
		c.setCursor(CursorDefault)
	}
}

// Owns reports whether n is the frame or inside it.
func (c *Chrome) Owns(n *scene.Node) bool {
	for ; n != nil; n = n.Parent() {
		if n == c.root {
			return true
		}
	}
	return false
}

// Stabilized reports whether frame bounds have been derived from layout.
func (c *Chrome) Stabilized() bool { return c.stabilized }

// Attach adds the frame to parent and keeps it inside the parent when the
// parent is resized.
func (c *Chrome) Attach(parent *scene.Node) {
	parent.Add(c.root)
	c.subs.Add(parent.GeometryChanged.Subscribe(c.parentGeometryChanged))
}

func (c *Chrome) parentGeometryChanged(geometry.Rect) {
	if !c.stabilized {
		return
	}
	c.surface.Fit()
}

// Detach removes the frame from its parent and drops its subscriptions.
// A detached frame is not reused.
func (c *Chrome) Detach() {
	c.root.RemoveFromParent()
	c.subs.CancelAll()
}
