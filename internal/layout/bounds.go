package layout

import (
	"github.com/google/uuid"
)

// DefaultDividerThickness is the gap reserved between split children when the
// geometry host does not supply one.
const DefaultDividerThickness = 1.0

// Bounds computes one rectangle per leaf for a tree laid out inside container,
// reserving divider points between split children. It is pure; writing the
// rects back into panels is the caller's job.
//
// Convention, on which snapshot round-trips depend: horizontal splits place
// First on the left and Second on the right; vertical splits place Second on
// top and First below. The vertical case is intentionally asymmetric — it
// mirrors hosts whose y axis grows upward, where First keeps the lower origin.
func Bounds(tree *Node, container Rect, divider float64) map[uuid.UUID]Rect {
	out := make(map[uuid.UUID]Rect)
	if divider < 0 {
		divider = 0
	}
	boundsForNode(tree, container, divider, out)
	return out
}

func boundsForNode(node *Node, rect Rect, divider float64, out map[uuid.UUID]Rect) {
	if node == nil {
		return
	}
	if node.IsLeaf() {
		out[node.PanelID] = rect
		return
	}

	half := divider / 2
	if node.Axis == AxisHorizontal {
		firstW := clampExtent(rect.W*node.Ratio - half)
		secondW := clampExtent(rect.W*(1-node.Ratio) - half)
		boundsForNode(node.First, Rect{X: rect.X, Y: rect.Y, W: firstW, H: rect.H}, divider, out)
		boundsForNode(node.Second, Rect{X: rect.X + firstW + divider, Y: rect.Y, W: secondW, H: rect.H}, divider, out)
		return
	}

	firstH := clampExtent(rect.H*node.Ratio - half)
	secondH := clampExtent(rect.H*(1-node.Ratio) - half)
	boundsForNode(node.Second, Rect{X: rect.X, Y: rect.Y, W: rect.W, H: secondH}, divider, out)
	boundsForNode(node.First, Rect{X: rect.X, Y: rect.Y + secondH + divider, W: rect.W, H: firstH}, divider, out)
}

func clampExtent(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
