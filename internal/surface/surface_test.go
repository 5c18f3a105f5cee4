package surface

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/stellarhub/internal/geometry"
	"github.com/1broseidon/stellarhub/internal/scene"
)

type fakeHost struct {
	rect     geometry.Rect
	parent   geometry.Rect
	captured map[int]bool
	fronted  int
}

func newFakeHost(rect, parent geometry.Rect) *fakeHost {
	return &fakeHost{rect: rect, parent: parent, captured: map[int]bool{}}
}

func (h *fakeHost) Rect() geometry.Rect              { return h.rect }
func (h *fakeHost) SetRect(r geometry.Rect)          { h.rect = r }
func (h *fakeHost) ParentContentRect() geometry.Rect { return h.parent }
func (h *fakeHost) BringToFront()                    { h.fronted++ }
func (h *fakeHost) CapturePointer(id int)            { h.captured[id] = true }
func (h *fakeHost) ReleasePointer(id int)            { delete(h.captured, id) }

func bounded(t *testing.T, s *Surface) {
	t.Helper()
	require.NoError(t, s.SetConstraints(geometry.Constraints{
		Min: geometry.Size{Width: 100, Height: 50},
		Max: geometry.Size{Width: 400, Height: 300},
	}))
}

func press(s *Surface, host *fakeHost, local geometry.Point) bool {
	return s.HandlePointer(scene.PointerEvent{
		Kind:     scene.PointerDown,
		Local:    local,
		Position: host.rect.Min().Add(local),
		Button:   scene.ButtonPrimary,
	})
}

func drag(s *Surface, from, to geometry.Point) bool {
	return s.HandlePointer(scene.PointerEvent{
		Kind:     scene.PointerMove,
		Position: to,
		Delta:    to.Sub(from),
	})
}

func release(s *Surface) bool {
	return s.HandlePointer(scene.PointerEvent{Kind: scene.PointerUp})
}

var screen = geometry.Rect{Width: 2000, Height: 2000}

func TestBottomRightDragClampsToMaximum(t *testing.T) {
	host := newFakeHost(geometry.Rect{Width: 200, Height: 100}, screen)
	s := New(host, DefaultHandleWidth)
	bounded(t, s)

	start := geometry.Point{X: 199, Y: 99}
	require.True(t, press(s, host, start))
	assert.Equal(t, BottomRight, s.Mode())

	drag(s, start, start.Add(geometry.Point{X: 1000, Y: 1000}))

	assert.Equal(t, geometry.Size{Width: 400, Height: 300}, host.rect.Size())
	assert.Equal(t, geometry.Point{}, host.rect.Min())
}

func TestRightDragWidthStaysWithinBounds(t *testing.T) {
	tests := []struct {
		name  string
		dx    int
		width int
	}{
		{"shrink past minimum", -1000, 100},
		{"within bounds", 50, 250},
		{"grow past maximum", 5000, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost(geometry.Rect{X: 10, Y: 10, Width: 200, Height: 100}, screen)
			s := New(host, DefaultHandleWidth)
			bounded(t, s)

			local := geometry.Point{X: 195, Y: 50}
			require.True(t, press(s, host, local))
			require.Equal(t, Right, s.Mode())

			from := host.rect.Min().Add(local)
			drag(s, from, from.Add(geometry.Point{X: tt.dx, Y: 37}))

			assert.Equal(t, tt.width, host.rect.Width)
			assert.Equal(t, 100, host.rect.Height)
			assert.Equal(t, 10, host.rect.X)
		})
	}
}

func TestLeftDragPivotsOnRightEdge(t *testing.T) {
	host := newFakeHost(geometry.Rect{X: 100, Width: 200, Height: 100}, screen)
	s := New(host, DefaultHandleWidth)
	bounded(t, s)

	local := geometry.Point{X: 2, Y: 50}
	require.True(t, press(s, host, local))
	from := host.rect.Min().Add(local)
	drag(s, from, from.Add(geometry.Point{X: 500}))

	assert.Equal(t, geometry.Rect{X: 200, Width: 100, Height: 100}, host.rect)
}

func TestMoveStaysInsideParent(t *testing.T) {
	parent := geometry.Rect{X: 10, Y: 5, Width: 100, Height: 50}
	deltas := []geometry.Point{
		{X: -1000, Y: -1000},
		{X: 1000, Y: 1000},
		{X: 3, Y: -2},
		{X: -1000, Y: 1000},
		{X: 1000, Y: -1000},
	}

	host := newFakeHost(geometry.Rect{X: 20, Y: 10, Width: 30, Height: 20}, parent)
	s := New(host, 2)
	s.SetMoveHandle(func() geometry.Rect { return geometry.Rect{Width: 30, Height: 5} })

	local := geometry.Point{X: 10, Y: 3}
	require.True(t, press(s, host, local))
	require.Equal(t, Move, s.Mode())

	pos := host.rect.Min().Add(local)
	for _, d := range deltas {
		next := pos.Add(d)
		drag(s, pos, next)
		pos = next

		assert.True(t, parent.ContainsRect(host.rect), "rect %s escaped %s", host.rect, parent)
		assert.Equal(t, geometry.Size{Width: 30, Height: 20}, host.rect.Size())
	}
}

func TestHitTestHandleWidth(t *testing.T) {
	host := newFakeHost(geometry.Rect{Width: 200, Height: 100}, screen)
	p := geometry.Point{X: 5, Y: 50}

	s := New(host, 15)
	assert.True(t, s.HitTest(p).Has(Left))

	s.SetHandleWidth(3)
	assert.Equal(t, None, s.HitTest(p))

	s.SetMoveHandle(func() geometry.Rect { return geometry.Rect{Width: 200, Height: 100} })
	assert.Equal(t, Move, s.HitTest(p))

	s.SetHandleWidth(15)
	assert.Equal(t, Left, s.HitTest(p), "edges take precedence over the move handle")
}

func TestHitTestCorners(t *testing.T) {
	host := newFakeHost(geometry.Rect{Width: 100, Height: 50}, screen)
	s := New(host, 10)

	tests := []struct {
		p    geometry.Point
		want Mode
	}{
		{geometry.Point{X: 0, Y: 0}, TopLeft},
		{geometry.Point{X: 99, Y: 0}, TopRight},
		{geometry.Point{X: 0, Y: 49}, BottomLeft},
		{geometry.Point{X: 99, Y: 49}, BottomRight},
		{geometry.Point{X: 50, Y: 0}, Top},
		{geometry.Point{X: 50, Y: 49}, Bottom},
		{geometry.Point{X: 99, Y: 25}, Right},
		{geometry.Point{X: 50, Y: 25}, None},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, s.HitTest(tt.p))
		})
	}
}

func TestStateMachineTransitions(t *testing.T) {
	host := newFakeHost(geometry.Rect{Width: 200, Height: 100}, screen)
	s := New(host, DefaultHandleWidth)

	var modes []Mode
	s.OnModeChanged = func(m Mode) { modes = append(modes, m) }

	assert.False(t, drag(s, geometry.Point{}, geometry.Point{X: 5}), "move while idle")
	assert.False(t, release(s), "up without down")
	assert.False(t, press(s, host, geometry.Point{X: 100, Y: 50}), "press outside every handle")
	assert.False(t, s.Active())
	assert.Empty(t, host.captured)

	secondary := scene.PointerEvent{Kind: scene.PointerDown, Local: geometry.Point{X: 1, Y: 1}, Button: scene.ButtonSecondary}
	assert.False(t, s.HandlePointer(secondary))

	require.True(t, press(s, host, geometry.Point{X: 1, Y: 1}))
	assert.True(t, s.Active())
	assert.True(t, host.captured[0])
	assert.Equal(t, 1, host.fronted)
	assert.False(t, press(s, host, geometry.Point{X: 199, Y: 99}), "second press while active")
	assert.Equal(t, TopLeft, s.Mode())

	assert.True(t, release(s))
	assert.False(t, s.Active())
	assert.Equal(t, None, s.Mode())
	assert.Empty(t, host.captured)
	assert.Equal(t, []Mode{TopLeft, None}, modes)
}

func TestSetConstraintsRejectsInvalidBounds(t *testing.T) {
	s := New(newFakeHost(geometry.Rect{}, screen), 0)
	bounded(t, s)

	err := s.SetConstraints(geometry.Constraints{
		Min: geometry.Size{Width: 500, Height: 10},
		Max: geometry.Size{Width: 100, Height: 10},
	})
	var cfgErr *geometry.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, 400, s.Constraints().Max.Width, "previous bounds kept")
}

func TestFitClampsSizeAndParent(t *testing.T) {
	host := newFakeHost(geometry.Rect{X: 50, Y: 50, Width: 1000, Height: 10}, geometry.Rect{Width: 300, Height: 300})
	s := New(host, 0)
	bounded(t, s)

	s.Fit()

	assert.Equal(t, geometry.Rect{X: 0, Y: 50, Width: 300, Height: 50}, host.rect)
}

func TestFitSlidesIntoShrunkParent(t *testing.T) {
	host := newFakeHost(geometry.Rect{X: 150, Y: 100, Width: 200, Height: 120}, geometry.Rect{Width: 300, Height: 200})
	s := New(host, 0)
	bounded(t, s)

	s.Fit()

	assert.Equal(t, geometry.Rect{X: 100, Y: 80, Width: 200, Height: 120}, host.rect)
	assert.True(t, host.parent.ContainsRect(host.rect))
}

func TestCornerOf(t *testing.T) {
	assert.Equal(t, "top-left", CornerOf(Top, Left).String())
	assert.True(t, BottomRight.IsCorner())
	assert.True(t, BottomRight.Has(Bottom))
	assert.False(t, BottomRight.Has(Left))
	assert.Equal(t, None, CornerOf(Left, Top))
	assert.Equal(t, None, CornerOf(Move, Left))
	assert.False(t, Move.IsResize())
}
