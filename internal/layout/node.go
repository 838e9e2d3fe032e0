package layout

import (
	"github.com/google/uuid"
)

// DefaultRatio is the ratio assigned to a freshly created split.
const DefaultRatio = 0.5

// Node is one node of a layout tree: either a leaf referencing a panel or a
// binary split. A split always has both children; removal that would leave a
// single child collapses the split into that child.
type Node struct {
	// Leaf fields.
	PanelID uuid.UUID

	// Split fields.
	Axis   Axis
	Ratio  float64
	First  *Node
	Second *Node
}

// Leaf builds a leaf node for a panel.
func Leaf(panelID uuid.UUID) *Node {
	return &Node{PanelID: panelID}
}

// Split builds a split node over two subtrees.
func Split(axis Axis, first, second *Node, ratio float64) *Node {
	return &Node{Axis: axis, Ratio: ratio, First: first, Second: second}
}

func (n *Node) IsLeaf() bool {
	return n != nil && n.First == nil && n.Second == nil
}

// Contains reports whether panelID appears as a leaf anywhere under n.
func (n *Node) Contains(panelID uuid.UUID) bool {
	if n == nil {
		return false
	}
	if n.IsLeaf() {
		return n.PanelID == panelID
	}
	return n.First.Contains(panelID) || n.Second.Contains(panelID)
}

// Leaves returns the panel ids of all leaves in tree order (First before
// Second). Tree order is a structural order, not a visual one.
func (n *Node) Leaves() []uuid.UUID {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return []uuid.UUID{n.PanelID}
	}
	out := n.First.Leaves()
	return append(out, n.Second.Leaves()...)
}

// LeafCount returns the number of leaves under n.
func (n *Node) LeafCount() int {
	if n == nil {
		return 0
	}
	if n.IsLeaf() {
		return 1
	}
	return n.First.LeafCount() + n.Second.LeafCount()
}

// Clone deep-copies the tree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return Leaf(n.PanelID)
	}
	return Split(n.Axis, n.First.Clone(), n.Second.Clone(), n.Ratio)
}

// Equal compares two trees structurally, including ratios.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.IsLeaf() != other.IsLeaf() {
		return false
	}
	if n.IsLeaf() {
		return n.PanelID == other.PanelID
	}
	if n.Axis != other.Axis || n.Ratio != other.Ratio {
		return false
	}
	return n.First.Equal(other.First) && n.Second.Equal(other.Second)
}
