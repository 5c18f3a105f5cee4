package surface

import "strings"

type edges uint8

const (
	edgeLeft edges = 1 << iota
	edgeRight
	edgeTop
	edgeBottom
)

// Mode classifies a drag: no-op, move, a single edge or a corner.
// Move and edges never combine.
type Mode struct {
	move  bool
	edges edges
}

var (
	None   = Mode{}
	Move   = Mode{move: true}
	Left   = Mode{edges: edgeLeft}
	Right  = Mode{edges: edgeRight}
	Top    = Mode{edges: edgeTop}
	Bottom = Mode{edges: edgeBottom}

	TopLeft     = CornerOf(Top, Left)
	TopRight    = CornerOf(Top, Right)
	BottomLeft  = CornerOf(Bottom, Left)
	BottomRight = CornerOf(Bottom, Right)
)

// CornerOf combines a vertical edge (Top or Bottom) with a horizontal edge
// (Left or Right). Any other argument yields None.
func CornerOf(vertical, horizontal Mode) Mode {
	if vertical != Top && vertical != Bottom {
		return None
	}
	if horizontal != Left && horizontal != Right {
		return None
	}
	return Mode{edges: vertical.edges | horizontal.edges}
}

// IsNone reports whether the mode does nothing.
func (m Mode) IsNone() bool { return !m.move && m.edges == 0 }

// IsMove reports whether the mode translates the surface.
func (m Mode) IsMove() bool { return m.move }

// IsResize reports whether the mode drags at least one edge.
func (m Mode) IsResize() bool { return m.edges != 0 }

// IsCorner reports whether the mode drags two edges.
func (m Mode) IsCorner() bool {
	return m.edges&(edgeLeft|edgeRight) != 0 && m.edges&(edgeTop|edgeBottom) != 0
}

// Has reports whether every edge of edge is part of m. Has(Move) reports
// whether m is Move.
func (m Mode) Has(edge Mode) bool {
	if edge.move {
		return m.move
	}
	return edge.edges != 0 && m.edges&edge.edges == edge.edges
}

func (m Mode) with(e edges) Mode {
	return Mode{edges: m.edges | e}
}

func (m Mode) String() string {
	switch {
	case m.move:
		return "move"
	case m.edges == 0:
		return "none"
	}
	var parts []string
	if m.edges&edgeTop != 0 {
		parts = append(parts, "top")
	}
	if m.edges&edgeBottom != 0 {
		parts = append(parts, "bottom")
	}
	if m.edges&edgeLeft != 0 {
		parts = append(parts, "left")
	}
	if m.edges&edgeRight != 0 {
		parts = append(parts, "right")
	}
	return strings.Join(parts, "-")
}
