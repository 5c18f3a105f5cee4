package x11

import (
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/stellarhub/internal/chrome"
)

// defaultCursorName is used when a hint carries no X11 name.
const defaultCursorName = "left_ptr"

var cursorFont = map[string]uint16{
	"left_ptr":            xcursor.LeftPtr,
	"fleur":               xcursor.Fleur,
	"sb_h_double_arrow":   xcursor.SBHDoubleArrow,
	"sb_v_double_arrow":   xcursor.SBVDoubleArrow,
	"top_left_corner":     xcursor.TopLeftCorner,
	"top_right_corner":    xcursor.TopRightCorner,
	"bottom_left_corner":  xcursor.BottomLeftCorner,
	"bottom_right_corner": xcursor.BottomRightCorner,
}

// CursorGlyph maps an X cursor-font name to its glyph index.
func CursorGlyph(name string) (uint16, bool) {
	if name == "" {
		name = defaultCursorName
	}
	g, ok := cursorFont[name]
	return g, ok
}

// CursorSetter shows frame cursor hints as native cursors on one window.
type CursorSetter struct {
	conn   *Connection
	target xproto.Window
	logger *slog.Logger

	mu      sync.Mutex
	created map[uint16]xproto.Cursor
}

// NewCursorSetter returns a chrome.CursorSink that changes target's cursor.
func NewCursorSetter(conn *Connection, target xproto.Window, logger *slog.Logger) *CursorSetter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CursorSetter{
		conn:    conn,
		target:  target,
		logger:  logger,
		created: make(map[uint16]xproto.Cursor),
	}
}

// SetCursor implements chrome.CursorSink.
func (s *CursorSetter) SetCursor(h chrome.CursorHint) {
	glyph, ok := CursorGlyph(h.X11)
	if !ok {
		s.logger.Warn("unknown x11 cursor", "name", h.X11)
		glyph = xcursor.LeftPtr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.created[glyph]
	if !ok {
		var err error
		cur, err = xcursor.CreateCursor(s.conn.XUtil, glyph)
		if err != nil {
			s.logger.Warn("create x11 cursor failed", "name", h.X11, "err", err)
			return
		}
		s.created[glyph] = cur
	}
	xwindow.New(s.conn.XUtil, s.target).Change(xproto.CwCursor, uint32(cur))
}

// Reset restores the default pointer on the target window.
func (s *CursorSetter) Reset() {
	s.SetCursor(chrome.CursorHint{})
}
