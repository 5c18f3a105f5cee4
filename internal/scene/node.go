// Package scene is a small retained-mode element tree. It assigns rectangles
// to nodes, keeps their stacking order and routes pointer events to them.
package scene

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/1broseidon/stellarhub/internal/event"
	"github.com/1broseidon/stellarhub/internal/geometry"
)

// Kind selects how a node is drawn and measured.
type Kind int

const (
	Box Kind = iota
	Label
	Button
)

func (k Kind) String() string {
	switch k {
	case Box:
		return "box"
	case Label:
		return "label"
	case Button:
		return "button"
	default:
		return "unknown"
	}
}

// Flow is the direction in which a node stacks its in-flow children.
type Flow int

const (
	Column Flow = iota
	Row
)

// Node is one element of the tree.
//
// A node's rect is relative to its parent's rect origin, so a parent's
// ContentRect and its children's rects share a coordinate space.
type Node struct {
	Name    string
	Kind    Kind
	Text    string
	Padding geometry.Insets
	Flow    Flow

	// Width and Height fix the node's extent along the parent's flow. Zero
	// means the node grows to fill what is left.
	Width  int
	Height int

	// Absolute nodes are taken out of the parent's flow. Until SetRect is
	// called they are placed at Anchors (margins from the parent content).
	Absolute bool
	Anchors  geometry.Insets

	// PickIgnore excludes the node itself from hit testing; its children
	// can still be hit.
	PickIgnore bool

	// OnPointer receives pointer events targeted at the node or bubbling
	// through it. Returning true claims the event.
	OnPointer func(PointerEvent) bool

	// OnClick fires on a primary-button press over the node.
	OnClick func()

	// GeometryChanged fires whenever the node's rect changes.
	GeometryChanged event.Event[geometry.Rect]

	rect     geometry.Rect
	placed   bool
	hidden   bool
	parent   *Node
	children []*Node
	classes  []string
	scene    *Scene
}

// NewBox returns an empty container.
func NewBox(name string) *Node {
	return &Node{Name: name, Kind: Box}
}

// NewLabel returns a text node.
func NewLabel(name, text string) *Node {
	return &Node{Name: name, Kind: Label, Text: text}
}

// NewButton returns a clickable text node.
func NewButton(name, text string, onClick func()) *Node {
	return &Node{Name: name, Kind: Button, Text: text, OnClick: onClick}
}

// Rect returns the node's rect relative to its parent.
func (n *Node) Rect() geometry.Rect { return n.rect }

// SetRect assigns the node's rect. For absolute nodes this also ends anchor
// placement: later layout passes keep the rect as set.
func (n *Node) SetRect(r geometry.Rect) {
	n.placed = true
	if s := n.owner(); s != nil && n.rect != r {
		s.Invalidate()
	}
	n.assign(r)
}

func (n *Node) assign(r geometry.Rect) {
	if n.rect == r {
		return
	}
	n.rect = r
	n.GeometryChanged.Emit(r)
}

// ContentRect returns the node's rect shrunk by its padding, in the same
// space as its children's rects.
func (n *Node) ContentRect() geometry.Rect {
	return geometry.Rect{Width: n.rect.Width, Height: n.rect.Height}.Inset(n.Padding)
}

// ParentContentRect returns the content rect of the parent, or an empty rect
// for a detached node.
func (n *Node) ParentContentRect() geometry.Rect {
	if n.parent == nil {
		return geometry.Rect{}
	}
	return n.parent.ContentRect()
}

// WorldRect returns the node's rect in scene coordinates.
func (n *Node) WorldRect() geometry.Rect {
	r := n.rect
	for p := n.parent; p != nil; p = p.parent {
		r = r.Translate(p.rect.Min())
	}
	return r
}

// Visible reports whether the node is shown. Hidden nodes are skipped by
// layout, drawing and hit testing along with their subtree.
func (n *Node) Visible() bool { return !n.hidden }

// SetVisible shows or hides the node.
func (n *Node) SetVisible(v bool) { n.hidden = !v }

// Displayed reports whether the node and all of its ancestors are visible.
func (n *Node) Displayed() bool {
	for p := n; p != nil; p = p.parent {
		if p.hidden {
			return false
		}
	}
	return true
}

// Parent returns the node's parent.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children, back to front.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Add appends child as the front-most child of n, detaching it from any
// previous parent.
func (n *Node) Add(child *Node) {
	child.RemoveFromParent()
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveFromParent detaches n. Pointer capture held by n or its subtree is
// dropped on the next dispatch.
func (n *Node) RemoveFromParent() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Clear removes every child.
func (n *Node) Clear() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// BringToFront moves n to the end of its parent's children so it is drawn
// and hit-tested above its siblings.
func (n *Node) BringToFront() {
	p := n.parent
	if p == nil || p.children[len(p.children)-1] == n {
		return
	}
	p.Add(n)
}

// CapturePointer routes every event for pointerID to n until released.
func (n *Node) CapturePointer(pointerID int) {
	if s := n.owner(); s != nil {
		s.capture(n, pointerID)
	}
}

// ReleasePointer ends a capture held by n.
func (n *Node) ReleasePointer(pointerID int) {
	if s := n.owner(); s != nil {
		s.release(n, pointerID)
	}
}

// HasPointerCapture reports whether n holds the capture for pointerID.
func (n *Node) HasPointerCapture(pointerID int) bool {
	s := n.owner()
	return s != nil && s.captures[pointerID] == n
}

func (n *Node) owner() *Scene {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root.scene
}

// AddClass tags the node with a style class.
func (n *Node) AddClass(class string) {
	if !n.HasClass(class) {
		n.classes = append(n.classes, class)
	}
}

// RemoveClass drops a style class.
func (n *Node) RemoveClass(class string) {
	for i, c := range n.classes {
		if c == class {
			n.classes = append(n.classes[:i:i], n.classes[i+1:]...)
			return
		}
	}
}

// HasClass reports whether the node carries class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Classes returns the node's style classes in the order they were added.
func (n *Node) Classes() []string {
	return append([]string(nil), n.classes...)
}

// Find returns the first node in the subtree with the given name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// intrinsic returns the natural extent of a text node along flow.
func (n *Node) intrinsic(flow Flow) (int, bool) {
	if n.Kind == Box {
		return 0, false
	}
	lines := strings.Split(n.Text, "\n")
	if flow == Column {
		return len(lines) + n.Padding.Vertical(), true
	}
	w := 0
	for _, l := range lines {
		w = max(w, runewidth.StringWidth(l))
	}
	return w + n.Padding.Horizontal(), true
}

func (n *Node) mainSize(flow Flow) (int, bool) {
	fixed := n.Height
	if flow == Row {
		fixed = n.Width
	}
	if fixed > 0 {
		return fixed, true
	}
	return n.intrinsic(flow)
}

func (n *Node) crossSize(flow Flow, avail int) int {
	fixed := n.Width
	if flow == Row {
		fixed = n.Height
	}
	if fixed > 0 {
		return min(fixed, avail)
	}
	return avail
}

func (n *Node) layout() {
	content := n.ContentRect()

	var flow []*Node
	for _, c := range n.children {
		if c.hidden {
			continue
		}
		if c.Absolute {
			if !c.placed {
				c.assign(content.Inset(c.Anchors))
			}
			c.layout()
			continue
		}
		flow = append(flow, c)
	}

	avail := content.Height
	if n.Flow == Row {
		avail = content.Width
	}
	fixed, grow := 0, 0
	for _, c := range flow {
		if s, ok := c.mainSize(n.Flow); ok {
			fixed += s
		} else {
			grow++
		}
	}
	share, extra := 0, 0
	if grow > 0 {
		remaining := max(0, avail-fixed)
		share, extra = remaining/grow, remaining%grow
	}

	pos := 0
	for _, c := range flow {
		size, ok := c.mainSize(n.Flow)
		if !ok {
			size = share
			if extra > 0 {
				size++
				extra--
			}
		}
		var r geometry.Rect
		if n.Flow == Column {
			r = geometry.Rect{X: content.X, Y: content.Y + pos, Width: c.crossSize(Column, content.Width), Height: size}
		} else {
			r = geometry.Rect{X: content.X + pos, Y: content.Y, Width: size, Height: c.crossSize(Row, content.Height)}
		}
		pos += size
		c.assign(r)
		c.layout()
	}
}
