package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/1broseidon/stellarhub/internal/assets"
	"github.com/1broseidon/stellarhub/internal/chrome"
	"github.com/1broseidon/stellarhub/internal/geometry"
	"github.com/1broseidon/stellarhub/internal/scene"
)

// cellStyle is the comparable form of a terminal style.
type cellStyle struct {
	fg, bg    string
	bold      bool
	underline bool
	reverse   bool
}

type cell struct {
	text  string // empty for the trailing half of a wide rune
	style cellStyle
}

type canvas struct {
	width, height int
	cells         []cell
}

func newCanvas(size geometry.Size) *canvas {
	c := &canvas{width: max(size.Width, 0), height: max(size.Height, 0)}
	c.cells = make([]cell, c.width*c.height)
	for i := range c.cells {
		c.cells[i].text = " "
	}
	return c
}

func (c *canvas) bounds() geometry.Rect {
	return geometry.Rect{Width: c.width, Height: c.height}
}

func (c *canvas) at(x, y int) *cell {
	return &c.cells[y*c.width+x]
}

func (c *canvas) fill(r geometry.Rect, st cellStyle) {
	r = r.Intersect(c.bounds())
	for y := r.Top(); y < r.Bottom(); y++ {
		for x := r.Left(); x < r.Right(); x++ {
			*c.at(x, y) = cell{text: " ", style: st}
		}
	}
}

// put writes s starting at (x, y), clipped to clip. It returns the number
// of columns written.
func (c *canvas) put(x, y int, s string, clip geometry.Rect, st cellStyle) int {
	clip = clip.Intersect(c.bounds())
	if y < clip.Top() || y >= clip.Bottom() {
		return 0
	}
	start := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= clip.Right() {
			break
		}
		if x >= clip.Left() && x+w <= clip.Right() {
			*c.at(x, y) = cell{text: string(r), style: st}
			if w == 2 {
				*c.at(x+1, y) = cell{style: st}
			}
		}
		x += w
	}
	return x - start
}

// Renderer draws a scene into a string of styled terminal rows using the
// theme's style sheets.
type Renderer struct {
	classes map[string]assets.Style
	cache   map[cellStyle]lipgloss.Style
}

// NewRenderer collects the window, toolbar and miscellaneous style sheets
// from p. Missing sheets leave their classes unstyled.
func NewRenderer(p assets.Provider) *Renderer {
	r := &Renderer{
		classes: make(map[string]assets.Style),
		cache:   make(map[cellStyle]lipgloss.Style),
	}
	for _, name := range []string{assets.MiscellaneousStyleSheet, assets.WindowsStyleSheet, assets.ToolbarStyleSheet} {
		a, err := assets.Require(p, name)
		if err != nil {
			continue
		}
		for class, st := range a.Sheet {
			r.classes[class] = st
		}
	}
	return r
}

// resolve merges n's class styles over the inherited colors. Later classes
// win.
func (r *Renderer) resolve(n *scene.Node, parent cellStyle) (cellStyle, assets.Style, bool) {
	st := cellStyle{fg: parent.fg, bg: parent.bg}
	var merged assets.Style
	styled := false
	for _, class := range n.Classes() {
		cs, ok := r.classes[class]
		if !ok {
			continue
		}
		styled = true
		if cs.Foreground != "" {
			merged.Foreground = cs.Foreground
		}
		if cs.Background != "" {
			merged.Background = cs.Background
		}
		if cs.Border != "" {
			merged.Border = cs.Border
		}
		if cs.BorderForeground != "" {
			merged.BorderForeground = cs.BorderForeground
		}
		merged.Bold = merged.Bold || cs.Bold
		merged.Underline = merged.Underline || cs.Underline
		merged.Reverse = merged.Reverse || cs.Reverse
	}
	if merged.Foreground != "" {
		st.fg = merged.Foreground
	}
	if merged.Background != "" {
		st.bg = merged.Background
	}
	st.bold, st.underline, st.reverse = merged.Bold, merged.Underline, merged.Reverse
	return st, merged, styled
}

// Pointer is the terminal stand-in for the mouse cursor.
type Pointer struct {
	Position geometry.Point
	Hint     chrome.CursorHint
	Inside   bool
}

// Render draws every displayed node of s, back to front, and overlays the
// pointer glyph when the hint has one.
func (r *Renderer) Render(s *scene.Scene, ptr Pointer) string {
	c := newCanvas(s.Size())
	r.draw(c, s.Root(), geometry.Point{}, c.bounds(), cellStyle{})

	if ptr.Inside && ptr.Hint.Glyph != "" {
		p := ptr.Position
		if c.bounds().Contains(p) {
			st := c.at(p.X, p.Y).style
			st.reverse = !st.reverse
			c.put(p.X, p.Y, ptr.Hint.Glyph, c.bounds(), st)
		}
	}
	return r.flush(c)
}

func (r *Renderer) draw(c *canvas, n *scene.Node, origin geometry.Point, clip geometry.Rect, parent cellStyle) {
	if !n.Visible() {
		return
	}
	world := n.Rect().Translate(origin)
	visible := world.Intersect(clip)
	if visible.Empty() {
		return
	}

	st, decl, styled := r.resolve(n, parent)
	if styled {
		c.fill(visible, st)
	}
	if decl.Border != "" {
		r.drawBorder(c, world, visible, decl, st)
	}
	if n.Kind != scene.Box {
		inner := world.Inset(n.Padding)
		for i, line := range strings.Split(n.Text, "\n") {
			c.put(inner.X, inner.Y+i, line, inner.Intersect(visible), st)
		}
	}

	for _, child := range n.Children() {
		r.draw(c, child, world.Min(), visible, st)
	}
}

func borderByName(name string) (lipgloss.Border, bool) {
	switch name {
	case "normal":
		return lipgloss.NormalBorder(), true
	case "rounded":
		return lipgloss.RoundedBorder(), true
	case "thick":
		return lipgloss.ThickBorder(), true
	case "double":
		return lipgloss.DoubleBorder(), true
	default:
		return lipgloss.Border{}, false
	}
}

func (r *Renderer) drawBorder(c *canvas, rect, clip geometry.Rect, decl assets.Style, base cellStyle) {
	b, ok := borderByName(decl.Border)
	if !ok || rect.Width < 2 || rect.Height < 2 {
		return
	}
	st := base
	if decl.BorderForeground != "" {
		st.fg = decl.BorderForeground
	}
	left, top := rect.Left(), rect.Top()
	right, bottom := rect.Right()-1, rect.Bottom()-1
	for x := left + 1; x < right; x++ {
		c.put(x, top, b.Top, clip, st)
		c.put(x, bottom, b.Bottom, clip, st)
	}
	for y := top + 1; y < bottom; y++ {
		c.put(left, y, b.Left, clip, st)
		c.put(right, y, b.Right, clip, st)
	}
	c.put(left, top, b.TopLeft, clip, st)
	c.put(right, top, b.TopRight, clip, st)
	c.put(left, bottom, b.BottomLeft, clip, st)
	c.put(right, bottom, b.BottomRight, clip, st)
}

func (r *Renderer) style(st cellStyle) lipgloss.Style {
	if ls, ok := r.cache[st]; ok {
		return ls
	}
	ls := lipgloss.NewStyle().Bold(st.bold).Underline(st.underline).Reverse(st.reverse)
	if st.fg != "" {
		ls = ls.Foreground(lipgloss.Color(st.fg))
	}
	if st.bg != "" {
		ls = ls.Background(lipgloss.Color(st.bg))
	}
	r.cache[st] = ls
	return ls
}

// flush renders each row as runs of equally styled cells.
func (r *Renderer) flush(c *canvas) string {
	rows := make([]string, 0, c.height)
	var run strings.Builder
	for y := 0; y < c.height; y++ {
		if c.width == 0 {
			rows = append(rows, "")
			continue
		}
		var row strings.Builder
		cur := c.at(0, y).style
		run.Reset()
		for x := 0; x < c.width; x++ {
			cl := c.at(x, y)
			if cl.style != cur {
				row.WriteString(r.style(cur).Render(run.String()))
				run.Reset()
				cur = cl.style
			}
			run.WriteString(cl.text)
		}
		row.WriteString(r.style(cur).Render(run.String()))
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}
