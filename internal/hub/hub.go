// Package hub is the overlay window registry: it frames registered panels,
// shows and hides the overlay, and suspends host input while it is open.
package hub

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/stellarhub/internal/assets"
	"github.com/1broseidon/stellarhub/internal/behavior"
	"github.com/1broseidon/stellarhub/internal/chrome"
	"github.com/1broseidon/stellarhub/internal/event"
	"github.com/1broseidon/stellarhub/internal/geometry"
	"github.com/1broseidon/stellarhub/internal/scene"
	"github.com/1broseidon/stellarhub/internal/surface"
)

var (
	ErrDuplicateRegistration = errors.New("window already registered")
	ErrNotRegistered         = errors.New("window not registered")
)

// DefaultRetained is the behavior set left enabled while the overlay is open.
var DefaultRetained = behavior.Of(behavior.Input, behavior.Escape)

// BehaviorService exposes the host's input capabilities.
type BehaviorService interface {
	Enabled() behavior.Set
	// SetEnabled enables exactly set. restrictToCurrentContext limits the
	// change to the host's current input context.
	SetEnabled(set behavior.Set, restrictToCurrentContext bool)
}

// ClosableMenu is something the host's "close menu" input can dismiss.
type ClosableMenu interface {
	Close()
}

// MenuTracker is the host's list of open menus.
type MenuTracker interface {
	TrackMenu(ClosableMenu)
	UntrackMenu(ClosableMenu)
}

// Options configures a Hub. Zero values select defaults.
type Options struct {
	HandleWidth int
	Margins     *geometry.Insets
	Retained    *behavior.Set
	Behaviors   BehaviorService
	Menus       MenuTracker
	// CanToggle is consulted by ToggleVisibility; returning false refuses.
	CanToggle func() bool
	Assets    assets.Provider
	Cursor    chrome.CursorSink
	Logger    *slog.Logger
}

type entry struct {
	window Window
	chrome *chrome.Chrome
}

// menuProxy closes the overlay when the host closes its menus.
type menuProxy struct {
	hub *Hub
}

func (m *menuProxy) Close() { m.hub.SetVisible(false) }

// Hub owns the overlay node, one frame per registered window and the toolbar.
type Hub struct {
	handleWidth int
	margins     geometry.Insets
	retained    behavior.Set
	behaviors   BehaviorService
	menus       MenuTracker
	canToggle   func() bool
	assets      assets.Provider
	cursor      chrome.CursorSink
	logger      *slog.Logger

	overlay *scene.Node
	layer   *scene.Node
	toolbar *Toolbar
	entries []*entry

	visible  bool
	saved    behavior.Set
	hasSaved bool
	proxy    *menuProxy

	Added             event.Event[Window]
	Removed           event.Event[Window]
	VisibilityChanged event.Event[bool]
}

// New returns a hidden hub with an empty registry.
func New(opts Options) *Hub {
	h := &Hub{
		handleWidth: opts.HandleWidth,
		margins:     chrome.DefaultMargins,
		retained:    DefaultRetained,
		behaviors:   opts.Behaviors,
		menus:       opts.Menus,
		canToggle:   opts.CanToggle,
		assets:      opts.Assets,
		cursor:      opts.Cursor,
		logger:      opts.Logger,
	}
	if h.handleWidth <= 0 {
		h.handleWidth = surface.DefaultHandleWidth
	}
	if opts.Margins != nil {
		h.margins = *opts.Margins
	}
	if opts.Retained != nil {
		h.retained = *opts.Retained
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}

	h.overlay = scene.NewBox("hub")
	h.overlay.Absolute = true
	h.overlay.SetVisible(false)

	h.layer = scene.NewBox("hub-windows")
	h.layer.OnPointer = h.layerPointer

	h.toolbar = newToolbar(h)
	h.overlay.Add(h.toolbar.root)
	h.overlay.Add(h.layer)
	return h
}

// Root returns the overlay node; attach it to the scene root.
func (h *Hub) Root() *scene.Node { return h.overlay }

// Toolbar returns the toolbar mirroring the registry.
func (h *Hub) Toolbar() *Toolbar { return h.toolbar }

// Retained returns the behavior set kept while the overlay is open.
func (h *Hub) Retained() behavior.Set { return h.retained }

func (h *Hub) layerPointer(ev scene.PointerEvent) bool {
	if ev.Kind == scene.PointerMove {
		for _, e := range h.entries {
			if !e.chrome.Owns(ev.Target) {
				e.chrome.ResetCursor()
			}
		}
	}
	return false
}

func (h *Hub) indexOf(w Window) int {
	for i, e := range h.entries {
		if e.window == w {
			return i
		}
	}
	return -1
}

// AddWindow frames w and appends it to the registry.
func (h *Hub) AddWindow(w Window) error {
	if h.indexOf(w) >= 0 {
		return fmt.Errorf("add %q: %w", w.Name(), ErrDuplicateRegistration)
	}

	c, err := chrome.New(chrome.Options{
		Title:       w.Name(),
		HandleWidth: h.handleWidth,
		Bounds:      geometry.Constraints{Min: w.MinSize(), Max: w.MaxSize()},
		Margins:     h.margins,
		OnClose:     func() { w.SetVisible(false) },
		Assets:      h.assets,
		Cursor:      h.cursor,
		Logger:      h.logger,
	})
	if err != nil {
		return fmt.Errorf("add %q: %w", w.Name(), err)
	}
	if _, err := h.WindowByName(w.Name()); err == nil {
		h.logger.Warn("window name already registered, lookups by name return the first", "name", w.Name())
	}
	c.SetContent(w.Content())
	c.SetVisible(w.IsVisible())
	c.Attach(h.layer)

	h.entries = append(h.entries, &entry{window: w, chrome: c})
	h.logger.Info("window added", "name", w.Name(), "min", w.MinSize().String(), "max", w.MaxSize().String())
	h.Added.Emit(w)
	return nil
}

// RemoveWindow discards w's frame and drops it from the registry. The window
// itself is left untouched.
func (h *Hub) RemoveWindow(w Window) error {
	i := h.indexOf(w)
	if i < 0 {
		return fmt.Errorf("remove %q: %w", w.Name(), ErrNotRegistered)
	}
	e := h.entries[i]
	e.chrome.CancelDrag()
	e.chrome.Detach()
	h.entries = append(h.entries[:i:i], h.entries[i+1:]...)

	h.logger.Info("window removed", "name", w.Name())
	h.Removed.Emit(w)
	return nil
}

// Windows returns the registered windows in the order they were added.
func (h *Hub) Windows() []Window {
	out := make([]Window, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, e.window)
	}
	return out
}

// Chrome returns the frame built for w.
func (h *Hub) Chrome(w Window) (*chrome.Chrome, error) {
	i := h.indexOf(w)
	if i < 0 {
		return nil, fmt.Errorf("chrome %q: %w", w.Name(), ErrNotRegistered)
	}
	return h.entries[i].chrome, nil
}

// WindowByName returns the window called name. Registration is keyed by
// identity, so two windows may share a name; the one added first wins.
func (h *Hub) WindowByName(name string) (Window, error) {
	for _, e := range h.entries {
		if e.window.Name() == name {
			return e.window, nil
		}
	}
	return nil, fmt.Errorf("window %q: %w", name, ErrNotRegistered)
}

// IsVisible reports whether the overlay is open.
func (h *Hub) IsVisible() bool { return h.visible }

// SetVisible opens or closes the overlay. Opening saves the host's enabled
// behaviors, restricts them to the retained set and registers a menu proxy;
// closing restores the saved set and drops the proxy.
func (h *Hub) SetVisible(v bool) {
	if v == h.visible {
		return
	}
	h.visible = v
	h.overlay.SetVisible(v)

	if v {
		if h.behaviors != nil {
			h.saved = h.behaviors.Enabled()
			h.hasSaved = true
			h.behaviors.SetEnabled(h.retained, true)
		}
		if h.menus != nil {
			h.proxy = &menuProxy{hub: h}
			h.menus.TrackMenu(h.proxy)
		}
	} else {
		for _, e := range h.entries {
			e.chrome.CancelDrag()
			e.chrome.ResetCursor()
		}
		if h.hasSaved {
			h.behaviors.SetEnabled(h.saved, false)
			h.hasSaved = false
		}
		if h.proxy != nil {
			h.menus.UntrackMenu(h.proxy)
			h.proxy = nil
		}
	}

	h.logger.Debug("hub visibility changed", "visible", v)
	h.VisibilityChanged.Emit(v)
}

// ToggleVisibility flips the overlay unless CanToggle refuses. It reports
// whether the toggle happened.
func (h *Hub) ToggleVisibility() bool {
	if h.canToggle != nil && !h.canToggle() {
		h.logger.Debug("hub toggle refused")
		return false
	}
	h.SetVisible(!h.visible)
	return true
}
