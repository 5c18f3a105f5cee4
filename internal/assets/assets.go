// Package assets resolves named glyphs, cursors and style sheets from the
// embedded theme and an optional override directory.
package assets

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Names used by the window chrome and toolbar.
const (
	CrossSmall               = "cross-small"
	ToggleChecked            = "toggle-checked"
	ToggleUnchecked          = "toggle-unchecked"
	ResizeHorizontalCursor   = "resize-horizontal-cursor"
	ResizeVerticalCursor     = "resize-vertical-cursor"
	ResizeDiagonalUpCursor   = "resize-diagonal-up-cursor"
	ResizeDiagonalDownCursor = "resize-diagonal-down-cursor"
	WindowsStyleSheet        = "windows-style-sheet"
	ToolbarStyleSheet        = "stellar-hub-toolbar-style-sheet"
	MiscellaneousStyleSheet  = "miscellaneous-style-sheet"
)

// ThemeFileName is the manifest looked up in an override directory.
const ThemeFileName = "theme.yaml"

// ErrMissingResource is returned by Require when a name is not in the theme.
var ErrMissingResource = errors.New("missing resource")

//go:embed theme.yaml
var builtinTheme []byte

// Kind tells which field of an Asset is populated.
type Kind int

const (
	KindGlyph Kind = iota
	KindCursor
	KindStyleSheet
)

// Style is a terminal style for one class.
type Style struct {
	Foreground       string `yaml:"foreground"`
	Background       string `yaml:"background"`
	Bold             bool   `yaml:"bold"`
	Underline        bool   `yaml:"underline"`
	Reverse          bool   `yaml:"reverse"`
	Border           string `yaml:"border"`
	BorderForeground string `yaml:"border_foreground"`
}

// StyleSheet maps class names to styles.
type StyleSheet map[string]Style

// Asset is one resolved theme entry.
type Asset struct {
	Name  string
	Kind  Kind
	Glyph string
	// X11 is the X cursor-font name for cursor assets.
	X11   string
	Sheet StyleSheet
}

// Provider looks up assets by name.
type Provider interface {
	Get(name string) (Asset, bool)
}

// Require returns the named asset or an error wrapping ErrMissingResource.
func Require(p Provider, name string) (Asset, error) {
	if p != nil {
		if a, ok := p.Get(name); ok {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("%w: %s", ErrMissingResource, name)
}

type cursorSpec struct {
	Glyph string `yaml:"glyph"`
	X11   string `yaml:"x11"`
}

type manifest struct {
	Glyphs      map[string]string     `yaml:"glyphs"`
	Cursors     map[string]cursorSpec `yaml:"cursors"`
	StyleSheets map[string]StyleSheet `yaml:"style_sheets"`
}

// Loader is a Provider backed by theme manifests.
type Loader struct {
	assets map[string]Asset
	files  []string
}

// Load parses the built-in theme and, when dir is non-empty and contains a
// theme.yaml, merges it on top. Style sheets merge per class.
func Load(dir string) (*Loader, error) {
	l := &Loader{assets: make(map[string]Asset)}
	if err := l.merge(builtinTheme, "builtin"); err != nil {
		return nil, err
	}
	if dir == "" {
		return l, nil
	}

	path := filepath.Join(dir, ThemeFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}
	if err := l.merge(data, path); err != nil {
		return nil, err
	}
	l.files = append(l.files, path)
	return l, nil
}

// Builtin returns a loader with only the embedded theme.
func Builtin() *Loader {
	l, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("builtin theme: %v", err))
	}
	return l
}

func (l *Loader) merge(data []byte, source string) error {
	var m manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to parse theme: %w", source, err)
	}

	for name, glyph := range m.Glyphs {
		l.assets[name] = Asset{Name: name, Kind: KindGlyph, Glyph: glyph}
	}
	for name, c := range m.Cursors {
		l.assets[name] = Asset{Name: name, Kind: KindCursor, Glyph: c.Glyph, X11: c.X11}
	}
	for name, sheet := range m.StyleSheets {
		merged := StyleSheet{}
		if prev, ok := l.assets[name]; ok && prev.Kind == KindStyleSheet {
			for class, st := range prev.Sheet {
				merged[class] = st
			}
		}
		for class, st := range sheet {
			merged[class] = st
		}
		l.assets[name] = Asset{Name: name, Kind: KindStyleSheet, Sheet: merged}
	}
	return nil
}

// Get implements Provider.
func (l *Loader) Get(name string) (Asset, bool) {
	a, ok := l.assets[name]
	return a, ok
}

// Names lists every asset name, sorted.
func (l *Loader) Names() []string {
	names := make([]string, 0, len(l.assets))
	for name := range l.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Files returns the override files that were merged.
func (l *Loader) Files() []string {
	return append([]string(nil), l.files...)
}
