// Package hotkeys grabs global X11 key sequences for the hub.
package hotkeys

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/stellarhub/internal/x11"
)

// Handler registers global shortcuts on the root window. Callbacks run on
// the X event loop goroutine.
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
}

var ignoreModsOnce sync.Once

// NewHandler returns a handler bound to conn.
func NewHandler(conn *x11.Connection, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	ignoreModsOnce.Do(func() {
		xevent.IgnoreMods = ignoreMasks(
			modMaskForKeysym(conn.XUtil, "Num_Lock"),
			modMaskForKeysym(conn.XUtil, "Scroll_Lock"),
		)
	})
	return &Handler{xu: conn.XUtil, root: conn.Root, logger: logger}
}

// RegisterToggle grabs keySequence (xgbutil syntax, e.g. "Mod4-Mod1-h") and
// runs toggle on each press.
func (h *Handler) RegisterToggle(keySequence string, toggle func()) error {
	if err := h.RegisterFunc(keySequence, func() {
		h.logger.Debug("global hotkey pressed", "keys", keySequence)
		toggle()
	}); err != nil {
		return fmt.Errorf("failed to register hub hotkey %q: %w", keySequence, err)
	}
	h.logger.Info("global hotkey registered", "keys", keySequence)
	return nil
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// ignoreMasks returns every combination of CapsLock and the given lock
// modifiers, so a grab fires whichever locks are on. Zero and duplicate
// masks are skipped.
func ignoreMasks(locks ...uint16) []uint16 {
	base := []uint16{uint16(xproto.ModMaskLock)}
	for _, m := range locks {
		dup := m == 0
		for _, b := range base {
			if b == m {
				dup = true
			}
		}
		if !dup {
			base = append(base, m)
		}
	}

	out := make([]uint16, 0, 1<<len(base))
	for subset := 0; subset < 1<<len(base); subset++ {
		var mask uint16
		for bit, m := range base {
			if subset&(1<<bit) != 0 {
				mask |= m
			}
		}
		out = append(out, mask)
	}
	return out
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
