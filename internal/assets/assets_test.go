package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinThemeHasChromeAssets(t *testing.T) {
	l := Builtin()

	for _, name := range []string{
		CrossSmall,
		ResizeHorizontalCursor,
		ResizeVerticalCursor,
		ResizeDiagonalUpCursor,
		ResizeDiagonalDownCursor,
		WindowsStyleSheet,
		ToolbarStyleSheet,
	} {
		_, ok := l.Get(name)
		assert.True(t, ok, name)
	}

	cursor, _ := l.Get(ResizeHorizontalCursor)
	assert.Equal(t, KindCursor, cursor.Kind)
	assert.Equal(t, "sb_h_double_arrow", cursor.X11)
}

func TestRequireWrapsMissingResource(t *testing.T) {
	_, err := Require(Builtin(), "no-such-thing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingResource))
	assert.Contains(t, err.Error(), "no-such-thing")

	_, err = Require(nil, CrossSmall)
	assert.True(t, errors.Is(err, ErrMissingResource))
}

func TestOverrideDirMergesStyleClasses(t *testing.T) {
	dir := t.TempDir()
	theme := `
glyphs:
  cross-small: "x"
style_sheets:
  windows-style-sheet:
    hub-window:
      foreground: "1"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ThemeFileName), []byte(theme), 0o644))

	l, err := Load(dir)
	require.NoError(t, err)

	cross, _ := l.Get(CrossSmall)
	assert.Equal(t, "x", cross.Glyph)

	sheet, _ := l.Get(WindowsStyleSheet)
	assert.Equal(t, "1", sheet.Sheet["hub-window"].Foreground)
	assert.Contains(t, sheet.Sheet, "hub-window-titlebar", "builtin classes kept")
	assert.Equal(t, []string{filepath.Join(dir, ThemeFileName)}, l.Files())
}

func TestOverrideRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ThemeFileName), []byte("colours: {}\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestMissingOverrideFileIsFine(t *testing.T) {
	l, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, l.Files())
}
