package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/stellarhub/internal/geometry"
)

func TestColumnLayoutSplitsRemainingSpace(t *testing.T) {
	s := New()
	root := s.Root()
	root.Padding = geometry.Uniform(1)

	title := NewLabel("title", "hello")
	body := NewBox("body")
	footer := NewBox("footer")
	footer.Height = 2
	root.Add(title)
	root.Add(body)
	root.Add(footer)

	s.Layout(geometry.Size{Width: 20, Height: 12})

	assert.Equal(t, geometry.Rect{X: 1, Y: 1, Width: 18, Height: 1}, title.Rect())
	assert.Equal(t, geometry.Rect{X: 1, Y: 2, Width: 18, Height: 7}, body.Rect())
	assert.Equal(t, geometry.Rect{X: 1, Y: 9, Width: 18, Height: 2}, footer.Rect())
}

func TestRowLayoutMeasuresText(t *testing.T) {
	s := New()
	root := s.Root()
	root.Flow = Row

	a := NewButton("a", "Keys", nil)
	a.Padding = geometry.Insets{Left: 1, Right: 1}
	b := NewBox("rest")
	root.Add(a)
	root.Add(b)

	s.Layout(geometry.Size{Width: 30, Height: 1})

	assert.Equal(t, geometry.Rect{X: 0, Y: 0, Width: 6, Height: 1}, a.Rect())
	assert.Equal(t, geometry.Rect{X: 6, Y: 0, Width: 24, Height: 1}, b.Rect())
}

func TestAbsoluteNodeUsesAnchorsUntilPlaced(t *testing.T) {
	s := New()
	win := NewBox("win")
	win.Absolute = true
	win.Anchors = geometry.Insets{Top: 2, Bottom: 3, Left: 4, Right: 5}
	s.Root().Add(win)

	var changes []geometry.Rect
	win.GeometryChanged.Subscribe(func(r geometry.Rect) { changes = append(changes, r) })

	s.Layout(geometry.Size{Width: 40, Height: 20})
	assert.Equal(t, geometry.Rect{X: 4, Y: 2, Width: 31, Height: 15}, win.Rect())

	win.SetRect(geometry.Rect{X: 1, Y: 1, Width: 10, Height: 5})
	s.Layout(geometry.Size{Width: 60, Height: 30})
	assert.Equal(t, geometry.Rect{X: 1, Y: 1, Width: 10, Height: 5}, win.Rect())
	assert.Len(t, changes, 2)
}

func TestHitTestPrefersFrontMostChild(t *testing.T) {
	s := New()
	back := NewBox("back")
	back.Absolute = true
	front := NewBox("front")
	front.Absolute = true
	s.Root().Add(back)
	s.Root().Add(front)
	s.Layout(geometry.Size{Width: 10, Height: 10})

	p := geometry.Point{X: 3, Y: 3}
	assert.Same(t, front, s.HitTest(p))

	back.BringToFront()
	assert.Same(t, back, s.HitTest(p))

	back.PickIgnore = true
	assert.Same(t, front, s.HitTest(p))

	front.SetVisible(false)
	assert.Same(t, s.Root(), s.HitTest(p))
}

func TestDispatchBubblesUntilClaimed(t *testing.T) {
	s := New()
	outer := NewBox("outer")
	inner := NewBox("inner")
	inner.Padding = geometry.Uniform(0)
	outer.Padding = geometry.Uniform(2)
	outer.Add(inner)
	s.Root().Add(outer)
	s.Layout(geometry.Size{Width: 10, Height: 10})

	var seen []string
	var outerLocal geometry.Point
	outer.OnPointer = func(ev PointerEvent) bool {
		seen = append(seen, "outer")
		outerLocal = ev.Local
		assert.Same(t, inner, ev.Target)
		return true
	}
	s.Root().OnPointer = func(PointerEvent) bool {
		seen = append(seen, "root")
		return true
	}

	claimed := s.Dispatch(PointerEvent{Kind: PointerDown, Position: geometry.Point{X: 4, Y: 5}, Button: ButtonPrimary})
	require.True(t, claimed)
	assert.Equal(t, []string{"outer"}, seen)
	assert.Equal(t, geometry.Point{X: 4, Y: 5}, outerLocal)
}

func TestCaptureRoutesEventsToCapturingNode(t *testing.T) {
	s := New()
	a := NewBox("a")
	a.Width = 5
	b := NewBox("b")
	s.Root().Flow = Row
	s.Root().Add(a)
	s.Root().Add(b)
	s.Layout(geometry.Size{Width: 10, Height: 4})

	var got []PointerKind
	a.OnPointer = func(ev PointerEvent) bool {
		got = append(got, ev.Kind)
		if ev.Kind == PointerDown {
			a.CapturePointer(ev.PointerID)
		}
		if ev.Kind == PointerUp {
			a.ReleasePointer(ev.PointerID)
		}
		return true
	}

	s.Dispatch(PointerEvent{Kind: PointerDown, Position: geometry.Point{X: 1, Y: 1}, Button: ButtonPrimary})
	assert.True(t, a.HasPointerCapture(0))
	s.Dispatch(PointerEvent{Kind: PointerMove, Position: geometry.Point{X: 8, Y: 1}})
	s.Dispatch(PointerEvent{Kind: PointerUp, Position: geometry.Point{X: 8, Y: 1}})
	assert.Nil(t, s.Captured(0))

	claimed := s.Dispatch(PointerEvent{Kind: PointerMove, Position: geometry.Point{X: 8, Y: 1}})
	assert.False(t, claimed)
	assert.Equal(t, []PointerKind{PointerDown, PointerMove, PointerUp}, got)
}

func TestCaptureDroppedWhenNodeDetached(t *testing.T) {
	s := New()
	a := NewBox("a")
	s.Root().Add(a)
	s.Layout(geometry.Size{Width: 4, Height: 4})

	a.CapturePointer(0)
	a.RemoveFromParent()

	claimed := s.Dispatch(PointerEvent{Kind: PointerMove, Position: geometry.Point{X: 1, Y: 1}})
	assert.False(t, claimed)
	assert.Nil(t, s.Captured(0))
}

func TestButtonClickFiresOnPrimaryDown(t *testing.T) {
	s := New()
	clicks := 0
	btn := NewButton("btn", "x", func() { clicks++ })
	s.Root().Add(btn)
	s.Layout(geometry.Size{Width: 4, Height: 4})

	s.Dispatch(PointerEvent{Kind: PointerDown, Position: geometry.Point{}, Button: ButtonSecondary})
	s.Dispatch(PointerEvent{Kind: PointerDown, Position: geometry.Point{}, Button: ButtonPrimary})

	assert.Equal(t, 1, clicks)
}

func TestClasses(t *testing.T) {
	n := NewBox("n")
	n.AddClass("checked")
	n.AddClass("checked")
	assert.Equal(t, []string{"checked"}, n.Classes())
	n.RemoveClass("checked")
	assert.False(t, n.HasClass("checked"))
}
