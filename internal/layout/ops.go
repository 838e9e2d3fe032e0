package layout

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrLastLeaf is returned by Remove when the target is the tree's only leaf.
var ErrLastLeaf = errors.New("layout: cannot remove the only leaf")

// SplitAt replaces the target leaf with a split holding the target and a new
// panel. The existing panel stays First and the new panel becomes Second.
func SplitAt(tree *Node, target, newPanel uuid.UUID, axis Axis) (*Node, error) {
	edge := EdgeRight
	if axis == AxisVertical {
		edge = EdgeBottom
	}
	return SplitAtEdge(tree, target, newPanel, edge)
}

// SplitAtEdge replaces the target leaf with a split whose child order follows
// the edge: top and left place the new panel First, bottom and right place it
// Second. The new split starts at DefaultRatio.
func SplitAtEdge(tree *Node, target, newPanel uuid.UUID, edge Edge) (*Node, error) {
	if tree == nil {
		return nil, errors.New("layout: tree is nil")
	}
	if tree.Contains(newPanel) {
		return nil, fmt.Errorf("layout: panel %q already in tree", newPanel)
	}
	out, ok := splitLeaf(tree, target, newPanel, edge)
	if !ok {
		return nil, fmt.Errorf("layout: panel %q not found", target)
	}
	return out, nil
}

func splitLeaf(node *Node, target, newPanel uuid.UUID, edge Edge) (*Node, bool) {
	if node == nil {
		return nil, false
	}
	if node.IsLeaf() {
		if node.PanelID != target {
			return node, false
		}
		existing := Leaf(target)
		added := Leaf(newPanel)
		if edge.Leading() {
			return Split(edge.Axis(), added, existing, DefaultRatio), true
		}
		return Split(edge.Axis(), existing, added, DefaultRatio), true
	}
	if first, ok := splitLeaf(node.First, target, newPanel, edge); ok {
		return Split(node.Axis, first, node.Second.Clone(), node.Ratio), true
	}
	if second, ok := splitLeaf(node.Second, target, newPanel, edge); ok {
		return Split(node.Axis, node.First.Clone(), second, node.Ratio), true
	}
	return node, false
}

// Remove deletes the leaf for panel and collapses the orphaned split into its
// surviving child. Removing the only leaf fails with ErrLastLeaf.
func Remove(tree *Node, panel uuid.UUID) (*Node, error) {
	if tree == nil {
		return nil, errors.New("layout: tree is nil")
	}
	if !tree.Contains(panel) {
		return nil, fmt.Errorf("layout: panel %q not found", panel)
	}
	out := removeLeaf(tree, panel)
	if out == nil {
		return nil, ErrLastLeaf
	}
	return out, nil
}

func removeLeaf(node *Node, panel uuid.UUID) *Node {
	if node == nil {
		return nil
	}
	if node.IsLeaf() {
		if node.PanelID == panel {
			return nil
		}
		return Leaf(node.PanelID)
	}
	first := removeLeaf(node.First, panel)
	second := removeLeaf(node.Second, panel)
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}
	return Split(node.Axis, first, second, node.Ratio)
}

// Move detaches panel from its current position and re-attaches it at the
// given edge of target. The move is rejected when either panel is absent or
// when panel and target are the same leaf.
func Move(tree *Node, panel, target uuid.UUID, edge Edge) (*Node, error) {
	if tree == nil {
		return nil, errors.New("layout: tree is nil")
	}
	if panel == target {
		return nil, errors.New("layout: cannot move a panel relative to itself")
	}
	if !tree.Contains(panel) {
		return nil, fmt.Errorf("layout: panel %q not found", panel)
	}
	if !tree.Contains(target) {
		return nil, fmt.Errorf("layout: panel %q not found", target)
	}
	detached, err := Remove(tree, panel)
	if err != nil {
		return nil, err
	}
	out, ok := splitLeaf(detached, target, panel, edge)
	if !ok {
		return nil, fmt.Errorf("layout: panel %q not found after detach", target)
	}
	return out, nil
}

// SetRatio rewrites the ratio of the split reached by walking path from the
// root (0 selects First, 1 selects Second). Paths that run past a leaf or use
// an invalid selector are a deliberate no-op: ratio updates race against tree
// mutations in the host UI and a stale path must not fail the drag.
func SetRatio(tree *Node, path []int, ratio float64) *Node {
	if tree == nil {
		return nil
	}
	if ratio <= 0 || ratio >= 1 {
		return tree
	}
	out, ok := setRatioAt(tree, path, ratio)
	if !ok {
		return tree
	}
	return out
}

func setRatioAt(node *Node, path []int, ratio float64) (*Node, bool) {
	if node == nil || node.IsLeaf() {
		return node, false
	}
	if len(path) == 0 {
		return Split(node.Axis, node.First.Clone(), node.Second.Clone(), ratio), true
	}
	switch path[0] {
	case 0:
		first, ok := setRatioAt(node.First, path[1:], ratio)
		if !ok {
			return node, false
		}
		return Split(node.Axis, first, node.Second.Clone(), node.Ratio), true
	case 1:
		second, ok := setRatioAt(node.Second, path[1:], ratio)
		if !ok {
			return node, false
		}
		return Split(node.Axis, node.First.Clone(), second, node.Ratio), true
	default:
		return node, false
	}
}

// Validate checks tree well-formedness: every split has both children, every
// ratio stays in (0,1), and no panel id appears in more than one leaf.
func Validate(tree *Node) error {
	if tree == nil {
		return errors.New("layout: tree is nil")
	}
	seen := make(map[uuid.UUID]struct{})
	return validateNode(tree, seen)
}

func validateNode(node *Node, seen map[uuid.UUID]struct{}) error {
	if node == nil {
		return errors.New("layout: split child is nil")
	}
	if node.IsLeaf() {
		if node.PanelID == uuid.Nil {
			return errors.New("layout: leaf without panel id")
		}
		if _, dup := seen[node.PanelID]; dup {
			return fmt.Errorf("layout: panel %q appears twice", node.PanelID)
		}
		seen[node.PanelID] = struct{}{}
		return nil
	}
	if node.First == nil || node.Second == nil {
		return errors.New("layout: split child is nil")
	}
	if node.Ratio <= 0 || node.Ratio >= 1 {
		return fmt.Errorf("layout: split ratio %v out of range", node.Ratio)
	}
	if err := validateNode(node.First, seen); err != nil {
		return err
	}
	return validateNode(node.Second, seen)
}
