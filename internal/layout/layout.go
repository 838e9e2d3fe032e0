// Package layout implements the recursive split tree that arranges panels
// inside a page, plus the geometry that turns a tree and a container rect
// into one rect per leaf.
//
// All tree operations are pure: they return a rebuilt tree and never mutate
// their input, so a caller can swap its root atomically on success and keep
// the old tree untouched on failure.
package layout

import (
	"fmt"
	"strings"
)

// Axis is the primary axis of a split.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// ParseAxis parses an axis name as persisted in snapshots.
func ParseAxis(raw string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "horizontal":
		return AxisHorizontal, nil
	case "vertical":
		return AxisVertical, nil
	default:
		return AxisHorizontal, fmt.Errorf("layout: invalid axis %q", raw)
	}
}

// Edge identifies the side of a panel a new or moved panel is attached to.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeLeft
	EdgeBottom
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeLeft:
		return "left"
	case EdgeBottom:
		return "bottom"
	case EdgeRight:
		return "right"
	default:
		return "unknown"
	}
}

// Axis returns the split axis an edge attaches along.
func (e Edge) Axis() Axis {
	switch e {
	case EdgeLeft, EdgeRight:
		return AxisHorizontal
	default:
		return AxisVertical
	}
}

// Leading reports whether a panel attached at this edge becomes the First
// child of the resulting split. Top and left lead; bottom and right trail.
func (e Edge) Leading() bool {
	return e == EdgeTop || e == EdgeLeft
}

// Rect is an axis-aligned rectangle in the host's coordinate space
// (origin top-left, y growing downward).
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
