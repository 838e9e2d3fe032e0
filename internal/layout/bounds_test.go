package layout

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBoundsSingleLeaf(t *testing.T) {
	id := uuid.New()
	container := Rect{X: 10, Y: 20, W: 800, H: 600}
	rects := Bounds(Leaf(id), container, 2)
	if len(rects) != 1 {
		t.Fatalf("rect count = %d, want 1", len(rects))
	}
	if rects[id] != container {
		t.Fatalf("leaf rect = %+v, want container", rects[id])
	}
}

func TestBoundsHorizontalSplit(t *testing.T) {
	ids := mustUUIDs(t, 2)
	tree := Split(AxisHorizontal, Leaf(ids[0]), Leaf(ids[1]), 0.5)
	rects := Bounds(tree, Rect{W: 1000, H: 500}, 10)

	first := rects[ids[0]]
	second := rects[ids[1]]
	if !almostEqual(first.W, 495) || !almostEqual(second.W, 495) {
		t.Fatalf("widths = %v/%v, want 495/495", first.W, second.W)
	}
	if !almostEqual(first.X, 0) {
		t.Fatalf("first.X = %v, want 0", first.X)
	}
	if !almostEqual(second.X, 505) {
		t.Fatalf("second.X = %v, want first width + divider", second.X)
	}
	if !almostEqual(first.H, 500) || !almostEqual(second.H, 500) {
		t.Fatalf("heights should span the container: %v/%v", first.H, second.H)
	}
}

func TestBoundsVerticalSplitSecondOnTop(t *testing.T) {
	ids := mustUUIDs(t, 2)
	tree := Split(AxisVertical, Leaf(ids[0]), Leaf(ids[1]), 0.25)
	rects := Bounds(tree, Rect{W: 400, H: 1000}, 4)

	first := rects[ids[0]]
	second := rects[ids[1]]
	// ratio applies to First: H*0.25 - d/2.
	if !almostEqual(first.H, 248) {
		t.Fatalf("first.H = %v, want 248", first.H)
	}
	if !almostEqual(second.H, 748) {
		t.Fatalf("second.H = %v, want 748", second.H)
	}
	if !almostEqual(second.Y, 0) {
		t.Fatalf("second should occupy the top, Y = %v", second.Y)
	}
	if !almostEqual(first.Y, 752) {
		t.Fatalf("first should sit below second and divider, Y = %v", first.Y)
	}
}

func TestBoundsNestedCoversEveryLeaf(t *testing.T) {
	ids := mustUUIDs(t, 4)
	tree := Split(AxisHorizontal,
		Split(AxisVertical, Leaf(ids[0]), Leaf(ids[1]), 0.5),
		Split(AxisHorizontal, Leaf(ids[2]), Leaf(ids[3]), 0.3),
		0.6,
	)
	rects := Bounds(tree, Rect{W: 1200, H: 900}, DefaultDividerThickness)
	if len(rects) != 4 {
		t.Fatalf("rect count = %d, want 4", len(rects))
	}
	for _, id := range ids {
		if rects[id].Empty() {
			t.Fatalf("panel %q received an empty rect", id)
		}
	}
}

func TestBoundsTinyContainerClampsToZero(t *testing.T) {
	ids := mustUUIDs(t, 2)
	tree := Split(AxisHorizontal, Leaf(ids[0]), Leaf(ids[1]), 0.5)
	rects := Bounds(tree, Rect{W: 1, H: 1}, 4)
	if len(rects) != 2 {
		t.Fatalf("rect count = %d, want 2 even when degenerate", len(rects))
	}
	for _, id := range ids {
		if rects[id].W < 0 {
			t.Fatalf("negative extent for %q: %+v", id, rects[id])
		}
	}
}
