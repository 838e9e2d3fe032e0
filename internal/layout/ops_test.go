package layout

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func mustUUIDs(t *testing.T, n int) []uuid.UUID {
	t.Helper()
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestSplitAtBuildsBinarySplit(t *testing.T) {
	ids := mustUUIDs(t, 2)
	tree := Leaf(ids[0])

	got, err := SplitAt(tree, ids[0], ids[1], AxisHorizontal)
	if err != nil {
		t.Fatalf("SplitAt() error: %v", err)
	}
	if got.IsLeaf() || got.Axis != AxisHorizontal || got.Ratio != DefaultRatio {
		t.Fatalf("unexpected root: %+v", got)
	}
	if !got.First.IsLeaf() || got.First.PanelID != ids[0] {
		t.Fatalf("existing panel should stay First, got %+v", got.First)
	}
	if !got.Second.IsLeaf() || got.Second.PanelID != ids[1] {
		t.Fatalf("new panel should become Second, got %+v", got.Second)
	}
	if !tree.IsLeaf() {
		t.Fatalf("input tree was mutated")
	}
}

func TestSplitAtEdgeOrdering(t *testing.T) {
	tests := []struct {
		edge       Edge
		axis       Axis
		newIsFirst bool
	}{
		{EdgeTop, AxisVertical, true},
		{EdgeLeft, AxisHorizontal, true},
		{EdgeBottom, AxisVertical, false},
		{EdgeRight, AxisHorizontal, false},
	}
	for _, tc := range tests {
		ids := mustUUIDs(t, 2)
		got, err := SplitAtEdge(Leaf(ids[0]), ids[0], ids[1], tc.edge)
		if err != nil {
			t.Fatalf("SplitAtEdge(%v) error: %v", tc.edge, err)
		}
		if got.Axis != tc.axis {
			t.Fatalf("edge %v: axis = %v, want %v", tc.edge, got.Axis, tc.axis)
		}
		first := got.First.PanelID
		if tc.newIsFirst && first != ids[1] {
			t.Fatalf("edge %v: new panel should be First", tc.edge)
		}
		if !tc.newIsFirst && first != ids[0] {
			t.Fatalf("edge %v: existing panel should be First", tc.edge)
		}
	}
}

func TestSplitAtFailures(t *testing.T) {
	ids := mustUUIDs(t, 3)
	tree := Leaf(ids[0])
	if _, err := SplitAt(tree, ids[1], ids[2], AxisHorizontal); err == nil {
		t.Fatalf("expected error for missing target")
	}
	if _, err := SplitAt(tree, ids[0], ids[0], AxisHorizontal); err == nil {
		t.Fatalf("expected error for duplicate panel id")
	}
}

func TestRemoveCollapsesSplit(t *testing.T) {
	ids := mustUUIDs(t, 2)
	tree, err := SplitAt(Leaf(ids[0]), ids[0], ids[1], AxisHorizontal)
	if err != nil {
		t.Fatalf("SplitAt() error: %v", err)
	}

	got, err := Remove(tree, ids[0])
	if err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if !got.IsLeaf() || got.PanelID != ids[1] {
		t.Fatalf("expected collapsed leaf %q, got %+v", ids[1], got)
	}
}

func TestRemoveLastLeafFails(t *testing.T) {
	id := uuid.New()
	if _, err := Remove(Leaf(id), id); !errors.Is(err, ErrLastLeaf) {
		t.Fatalf("Remove() error = %v, want ErrLastLeaf", err)
	}
}

func TestSplitRemoveInverse(t *testing.T) {
	ids := mustUUIDs(t, 4)
	tree, err := SplitAt(Leaf(ids[0]), ids[0], ids[1], AxisHorizontal)
	if err != nil {
		t.Fatalf("SplitAt() error: %v", err)
	}
	tree, err = SplitAtEdge(tree, ids[1], ids[2], EdgeTop)
	if err != nil {
		t.Fatalf("SplitAtEdge() error: %v", err)
	}

	split, err := SplitAt(tree, ids[0], ids[3], AxisVertical)
	if err != nil {
		t.Fatalf("SplitAt() error: %v", err)
	}
	got, err := Remove(split, ids[3])
	if err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if !got.Equal(tree) {
		t.Fatalf("remove(split(tree)) != tree: %+v vs %+v", got, tree)
	}
}

func TestMoveReattachesLeaf(t *testing.T) {
	ids := mustUUIDs(t, 3)
	tree, err := SplitAt(Leaf(ids[0]), ids[0], ids[1], AxisHorizontal)
	if err != nil {
		t.Fatalf("SplitAt() error: %v", err)
	}
	tree, err = SplitAt(tree, ids[1], ids[2], AxisVertical)
	if err != nil {
		t.Fatalf("SplitAt() error: %v", err)
	}

	got, err := Move(tree, ids[0], ids[2], EdgeRight)
	if err != nil {
		t.Fatalf("Move() error: %v", err)
	}
	if got.LeafCount() != 3 {
		t.Fatalf("leaf count = %d, want 3", got.LeafCount())
	}
	if err := Validate(got); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !got.Contains(ids[0]) {
		t.Fatalf("moved panel missing from tree")
	}
}

func TestMoveFailures(t *testing.T) {
	ids := mustUUIDs(t, 3)
	tree, err := SplitAt(Leaf(ids[0]), ids[0], ids[1], AxisHorizontal)
	if err != nil {
		t.Fatalf("SplitAt() error: %v", err)
	}
	if _, err := Move(tree, ids[0], ids[0], EdgeLeft); err == nil {
		t.Fatalf("expected error moving a panel onto itself")
	}
	if _, err := Move(tree, ids[2], ids[0], EdgeLeft); err == nil {
		t.Fatalf("expected error for absent panel")
	}
	if _, err := Move(tree, ids[0], ids[2], EdgeLeft); err == nil {
		t.Fatalf("expected error for absent target")
	}
}

func TestSetRatio(t *testing.T) {
	ids := mustUUIDs(t, 3)
	tree, err := SplitAt(Leaf(ids[0]), ids[0], ids[1], AxisHorizontal)
	if err != nil {
		t.Fatalf("SplitAt() error: %v", err)
	}
	tree, err = SplitAt(tree, ids[1], ids[2], AxisVertical)
	if err != nil {
		t.Fatalf("SplitAt() error: %v", err)
	}

	got := SetRatio(tree, []int{1}, 0.25)
	if got.Second.Ratio != 0.25 {
		t.Fatalf("nested ratio = %v, want 0.25", got.Second.Ratio)
	}
	if got.Ratio != DefaultRatio {
		t.Fatalf("root ratio changed: %v", got.Ratio)
	}

	// Applying the same update twice matches applying it once.
	again := SetRatio(got, []int{1}, 0.25)
	if !again.Equal(got) {
		t.Fatalf("ratio update is not idempotent")
	}
}

func TestSetRatioLenientNoOps(t *testing.T) {
	ids := mustUUIDs(t, 2)
	leaf := Leaf(ids[0])
	if got := SetRatio(leaf, nil, 0.3); got != leaf {
		t.Fatalf("empty path on leaf should be a no-op")
	}

	tree, err := SplitAt(leaf, ids[0], ids[1], AxisHorizontal)
	if err != nil {
		t.Fatalf("SplitAt() error: %v", err)
	}
	if got := SetRatio(tree, []int{0, 0, 1}, 0.3); got != tree {
		t.Fatalf("out-of-range path should be a no-op")
	}
	if got := SetRatio(tree, []int{2}, 0.3); got != tree {
		t.Fatalf("invalid selector should be a no-op")
	}
	if got := SetRatio(tree, nil, 1.5); got != tree {
		t.Fatalf("out-of-range ratio should be a no-op")
	}
}

func TestValidateRejectsMalformedTrees(t *testing.T) {
	ids := mustUUIDs(t, 2)
	if err := Validate(&Node{Axis: AxisHorizontal, Ratio: 0.5, First: Leaf(ids[0])}); err == nil {
		t.Fatalf("expected error for split with one child")
	}
	if err := Validate(Split(AxisVertical, Leaf(ids[0]), Leaf(ids[0]), 0.5)); err == nil {
		t.Fatalf("expected error for duplicate leaf ids")
	}
	if err := Validate(Split(AxisVertical, Leaf(ids[0]), Leaf(ids[1]), 1.2)); err == nil {
		t.Fatalf("expected error for out-of-range ratio")
	}
	if err := Validate(Split(AxisVertical, Leaf(ids[0]), Leaf(ids[1]), 0.5)); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}
