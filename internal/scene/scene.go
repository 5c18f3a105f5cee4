package scene

import "github.com/1broseidon/stellarhub/internal/geometry"

// PointerKind classifies a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// MouseButton identifies the button behind a pointer event.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// PointerEvent is delivered to OnPointer handlers.
type PointerEvent struct {
	Kind PointerKind
	// Position is in scene coordinates.
	Position geometry.Point
	// Local is Position relative to the receiving node's rect origin.
	Local geometry.Point
	// Delta is the pointer movement since the previous event.
	Delta     geometry.Point
	Button    MouseButton
	PointerID int
	// Target is the node that was hit, or the capturing node.
	Target *Node
}

// Scene owns a root node and routes pointer events into the tree.
type Scene struct {
	root     *Node
	captures map[int]*Node
	size     geometry.Size
	dirty    bool
}

// maxLayoutPasses bounds how often Layout reruns when GeometryChanged
// handlers reposition nodes.
const maxLayoutPasses = 4

// New returns a scene with an empty root box.
func New() *Scene {
	s := &Scene{captures: make(map[int]*Node)}
	s.root = NewBox("root")
	s.root.scene = s
	return s
}

// Root returns the root node.
func (s *Scene) Root() *Node { return s.root }

// Size returns the size passed to the last Layout.
func (s *Scene) Size() geometry.Size { return s.size }

// Layout sizes the root to size and lays out the whole tree. If a handler
// calls SetRect during the pass, the tree is laid out again.
func (s *Scene) Layout(size geometry.Size) {
	s.size = size
	for i := 0; i < maxLayoutPasses; i++ {
		s.dirty = false
		s.root.assign(geometry.Rect{Width: size.Width, Height: size.Height})
		s.root.layout()
		if !s.dirty {
			return
		}
	}
}

// Invalidate marks the tree for another layout pass.
func (s *Scene) Invalidate() { s.dirty = true }

func (s *Scene) capture(n *Node, pointerID int) {
	s.captures[pointerID] = n
}

func (s *Scene) release(n *Node, pointerID int) {
	if s.captures[pointerID] == n {
		delete(s.captures, pointerID)
	}
}

// Captured returns the node holding the capture for pointerID.
func (s *Scene) Captured(pointerID int) *Node {
	return s.captures[pointerID]
}

// HitTest returns the front-most displayed, pickable node under p.
func (s *Scene) HitTest(p geometry.Point) *Node {
	return hit(s.root, p, geometry.Point{})
}

func hit(n *Node, p geometry.Point, origin geometry.Point) *Node {
	if n.hidden {
		return nil
	}
	world := n.rect.Translate(origin)
	if !world.Contains(p) {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if found := hit(n.children[i], p, world.Min()); found != nil {
			return found
		}
	}
	if n.PickIgnore {
		return nil
	}
	return n
}

// Dispatch routes ev. A captured pointer goes straight to the capturing node;
// otherwise the event starts at the hit node and bubbles to the root until a
// handler claims it. Dispatch reports whether any node claimed the event.
func (s *Scene) Dispatch(ev PointerEvent) bool {
	if n, ok := s.captures[ev.PointerID]; ok {
		if n.owner() == s && n.Displayed() {
			ev.Target = n
			deliver(n, ev)
			return true
		}
		delete(s.captures, ev.PointerID)
	}

	target := s.HitTest(ev.Position)
	if target == nil {
		return false
	}
	ev.Target = target
	for n := target; n != nil; n = n.parent {
		if deliver(n, ev) {
			return true
		}
	}
	return false
}

func deliver(n *Node, ev PointerEvent) bool {
	ev.Local = ev.Position.Sub(n.WorldRect().Min())
	if n.OnClick != nil && ev.Kind == PointerDown && ev.Button == ButtonPrimary {
		n.OnClick()
		return true
	}
	if n.OnPointer != nil {
		return n.OnPointer(ev)
	}
	return false
}

// Walk visits every displayed node back to front, parents before children,
// passing each node's scene-space rect. Returning false skips the subtree.
func (s *Scene) Walk(fn func(n *Node, world geometry.Rect) bool) {
	walk(s.root, geometry.Point{}, fn)
}

func walk(n *Node, origin geometry.Point, fn func(*Node, geometry.Rect) bool) {
	if n.hidden {
		return
	}
	world := n.rect.Translate(origin)
	if !fn(n, world) {
		return
	}
	for _, c := range n.Children() {
		walk(c, world.Min(), fn)
	}
}
