package chrome

import (
	"log/slog"

	"github.com/1broseidon/stellarhub/internal/assets"
	"github.com/1broseidon/stellarhub/internal/surface"
)

// Cursor is the pointer shape a frame asks for.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorResizeHorizontal
	CursorResizeVertical
	CursorResizeDiagonalUp
	CursorResizeDiagonalDown
)

func (c Cursor) String() string {
	switch c {
	case CursorResizeHorizontal:
		return "resize-horizontal"
	case CursorResizeVertical:
		return "resize-vertical"
	case CursorResizeDiagonalUp:
		return "resize-diagonal-up"
	case CursorResizeDiagonalDown:
		return "resize-diagonal-down"
	default:
		return "default"
	}
}

// AssetName returns the theme entry for the cursor, or "" for the default.
func (c Cursor) AssetName() string {
	switch c {
	case CursorResizeHorizontal:
		return assets.ResizeHorizontalCursor
	case CursorResizeVertical:
		return assets.ResizeVerticalCursor
	case CursorResizeDiagonalUp:
		return assets.ResizeDiagonalUpCursor
	case CursorResizeDiagonalDown:
		return assets.ResizeDiagonalDownCursor
	default:
		return ""
	}
}

// CursorFor maps a drag mode to a cursor.
func CursorFor(m surface.Mode) Cursor {
	switch m {
	case surface.Left, surface.Right:
		return CursorResizeHorizontal
	case surface.Top, surface.Bottom:
		return CursorResizeVertical
	case surface.TopLeft, surface.BottomRight:
		return CursorResizeDiagonalDown
	case surface.TopRight, surface.BottomLeft:
		return CursorResizeDiagonalUp
	default:
		return CursorDefault
	}
}

// CursorHint is what a frame sends to its sink.
type CursorHint struct {
	Cursor Cursor
	// Glyph is a terminal rendering of the cursor; empty for the default.
	Glyph string
	// X11 is the X cursor-font name; empty for the default.
	X11 string
}

// CursorSink receives cursor changes.
type CursorSink interface {
	SetCursor(CursorHint)
}

var fallbackGlyphs = map[Cursor]string{
	CursorResizeHorizontal:   "<>",
	CursorResizeVertical:     "^v",
	CursorResizeDiagonalUp:   "/",
	CursorResizeDiagonalDown: "\\",
}

// ResolveCursor builds the hint for c from the theme. A missing theme entry
// is logged and replaced by a plain ASCII glyph.
func ResolveCursor(p assets.Provider, c Cursor, logger *slog.Logger) CursorHint {
	if logger == nil {
		logger = slog.Default()
	}
	hint := CursorHint{Cursor: c}
	name := c.AssetName()
	if name == "" {
		return hint
	}
	a, err := assets.Require(p, name)
	if err != nil {
		logger.Warn("cursor fallback", "cursor", c.String(), "err", err)
		hint.Glyph = fallbackGlyphs[c]
		return hint
	}
	hint.Glyph, hint.X11 = a.Glyph, a.X11
	return hint
}
