// Package surface implements the pointer-driven move/resize state machine
// behind every window frame.
package surface

import (
	"github.com/1broseidon/stellarhub/internal/geometry"
	"github.com/1broseidon/stellarhub/internal/scene"
)

// DefaultHandleWidth is the width of the grab margin along each edge.
const DefaultHandleWidth = 15

// Host is the element a Surface drives. Rect and ParentContentRect share a
// coordinate space.
type Host interface {
	Rect() geometry.Rect
	SetRect(geometry.Rect)
	ParentContentRect() geometry.Rect
	BringToFront()
	CapturePointer(pointerID int)
	ReleasePointer(pointerID int)
}

// Surface is idle until a primary pointer-down lands on an edge margin or the
// move handle, then active in that mode until pointer-up.
type Surface struct {
	host        Host
	handleWidth int
	constraints geometry.Constraints
	moveHandle  func() geometry.Rect

	mode         Mode
	active       bool
	pointerID    int
	startRect    geometry.Rect
	startPointer geometry.Point

	// OnModeChanged is called whenever the active mode changes, including
	// the reset to None on pointer-up.
	OnModeChanged func(Mode)
}

// New returns an idle surface driving host with no size limits.
func New(host Host, handleWidth int) *Surface {
	return &Surface{
		host:        host,
		handleWidth: max(0, handleWidth),
		constraints: geometry.NoConstraints(),
	}
}

// HandleWidth returns the edge grab margin.
func (s *Surface) HandleWidth() int { return s.handleWidth }

// SetHandleWidth changes the edge grab margin.
func (s *Surface) SetHandleWidth(w int) { s.handleWidth = max(0, w) }

// SetMoveHandle sets the region, in the host's local space, that starts a
// move when no edge is hit.
func (s *Surface) SetMoveHandle(region func() geometry.Rect) { s.moveHandle = region }

// Constraints returns the current size bounds.
func (s *Surface) Constraints() geometry.Constraints { return s.constraints }

// SetConstraints replaces the size bounds. Invalid bounds are rejected with a
// *geometry.ConfigurationError and leave the previous bounds in place.
func (s *Surface) SetConstraints(c geometry.Constraints) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.constraints = c
	return nil
}

// Mode returns the mode of the drag in progress, or None.
func (s *Surface) Mode() Mode { return s.mode }

// Active reports whether a drag is in progress.
func (s *Surface) Active() bool { return s.active }

// HitTest classifies a point in the host's local space. A point outside the
// bounds inset by the handle width is on that edge; the margin is exactly
// HandleWidth units on every side. Edges take precedence over the move handle.
func (s *Surface) HitTest(p geometry.Point) Mode {
	r := s.host.Rect()
	inset := geometry.Rect{Width: r.Width, Height: r.Height}.Inset(geometry.Uniform(s.handleWidth))

	m := None
	if p.X < inset.Left() {
		m = m.with(edgeLeft)
	} else if p.X >= inset.Right() {
		m = m.with(edgeRight)
	}
	if p.Y < inset.Top() {
		m = m.with(edgeTop)
	} else if p.Y >= inset.Bottom() {
		m = m.with(edgeBottom)
	}
	if m.IsNone() && s.moveHandle != nil && s.moveHandle().Contains(p) {
		return Move
	}
	return m
}

// HoverMode returns the active mode while dragging, else the mode a press at
// p would start.
func (s *Surface) HoverMode(p geometry.Point) Mode {
	if s.active {
		return s.mode
	}
	return s.HitTest(p)
}

// HandlePointer feeds a pointer event into the state machine and reports
// whether the surface claimed it.
func (s *Surface) HandlePointer(ev scene.PointerEvent) bool {
	switch ev.Kind {
	case scene.PointerDown:
		return s.down(ev)
	case scene.PointerMove:
		return s.move(ev)
	case scene.PointerUp:
		return s.up(ev)
	}
	return false
}

func (s *Surface) down(ev scene.PointerEvent) bool {
	if s.active || ev.Button != scene.ButtonPrimary {
		return false
	}
	mode := s.HitTest(ev.Local)
	if mode.IsNone() {
		return false
	}

	s.host.CapturePointer(ev.PointerID)
	s.pointerID = ev.PointerID
	s.startRect = s.host.Rect()
	s.startPointer = ev.Position
	s.host.BringToFront()
	s.active = true
	s.setMode(mode)
	return true
}

func (s *Surface) move(ev scene.PointerEvent) bool {
	if !s.active || ev.PointerID != s.pointerID {
		return false
	}
	if s.mode.IsMove() {
		s.UpdateRect(s.host.Rect().Translate(ev.Delta))
	} else {
		s.UpdateRect(s.resize(ev.Position.Sub(s.startPointer)))
	}
	return true
}

func (s *Surface) up(ev scene.PointerEvent) bool {
	if !s.active || ev.PointerID != s.pointerID {
		return false
	}
	s.host.ReleasePointer(s.pointerID)
	s.active = false
	s.setMode(None)
	return true
}

// Cancel abandons a drag in progress, keeping the rect as it is.
func (s *Surface) Cancel() {
	if !s.active {
		return
	}
	s.host.ReleasePointer(s.pointerID)
	s.active = false
	s.setMode(None)
}

// resize applies d to the edges of the drag start rect. Each dragged edge is
// clamped so the size stays within bounds, pivoting on the opposite edge.
func (s *Surface) resize(d geometry.Point) geometry.Rect {
	start := s.startRect
	lo, hi := s.constraints.Min, s.constraints.Max
	left, top, right, bottom := start.Left(), start.Top(), start.Right(), start.Bottom()

	if s.mode.Has(Left) {
		left = geometry.Clamp(start.Left()+d.X, start.Right()-hi.Width, start.Right()-lo.Width)
	}
	if s.mode.Has(Right) {
		right = geometry.Clamp(start.Right()+d.X, start.Left()+lo.Width, start.Left()+hi.Width)
	}
	if s.mode.Has(Top) {
		top = geometry.Clamp(start.Top()+d.Y, start.Bottom()-hi.Height, start.Bottom()-lo.Height)
	}
	if s.mode.Has(Bottom) {
		bottom = geometry.Clamp(start.Bottom()+d.Y, start.Top()+lo.Height, start.Top()+hi.Height)
	}
	return geometry.RectFromEdges(left, top, right, bottom)
}

// UpdateRect assigns r to the host, keeping it inside the parent content
// rect. During a move the position is clamped first so the size is kept.
func (s *Surface) UpdateRect(r geometry.Rect) {
	parent := s.host.ParentContentRect()
	if s.mode.IsMove() {
		r.X = geometry.Clamp(r.X, parent.Left(), parent.Right()-r.Width)
		r.Y = geometry.Clamp(r.Y, parent.Top(), parent.Bottom()-r.Height)
	}
	s.host.SetRect(geometry.RectFromEdges(
		max(r.Left(), parent.Left()),
		max(r.Top(), parent.Top()),
		min(r.Right(), parent.Right()),
		min(r.Bottom(), parent.Bottom()),
	))
}

// Fit clamps the host's current size to the constraints, slides it back
// inside the parent content rect and trims whatever still overhangs.
func (s *Surface) Fit() {
	r := s.host.Rect()
	size := s.constraints.ClampSize(r.Size())
	r.Width, r.Height = size.Width, size.Height

	parent := s.host.ParentContentRect()
	r.X = geometry.Clamp(r.X, parent.Left(), parent.Right()-r.Width)
	r.Y = geometry.Clamp(r.Y, parent.Top(), parent.Bottom()-r.Height)
	s.UpdateRect(r)
}

func (s *Surface) setMode(m Mode) {
	if s.mode == m {
		return
	}
	s.mode = m
	if s.OnModeChanged != nil {
		s.OnModeChanged(m)
	}
}
