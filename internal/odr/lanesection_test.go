package odr

import (
	"math"
	"testing"
)

func constantWidthLane(id int, width float64) Lane {
	return Lane{
		ID:    id,
		Type:  "driving",
		Width: []LaneWidth{{SOffset: 0, A: width}},
	}
}

func TestInnerOffsetWithDescendingLaneIDs(t *testing.T) {
	// Lanes stored outermost-first: the sum must follow IDs, not positions.
	section := LaneSection{
		S: 0,
		Left: []Lane{
			constantWidthLane(4, 4),
			constantWidthLane(3, 3),
			constantWidthLane(2, 2),
			constantWidthLane(1, 1),
		},
		Right: []Lane{
			constantWidthLane(-1, 1),
			constantWidthLane(-2, 2),
			constantWidthLane(-3, 3),
			constantWidthLane(-4, 4),
		},
		Center: Lane{ID: 0},
	}

	wantLeft := map[int]float64{1: 0, 2: 1, 3: 3, 4: 6}
	for id, want := range wantLeft {
		if got := section.InnerOffset(id, 5); math.Abs(got-want) > 1e-6 {
			t.Errorf("lane %d: expected inner offset %v, got %v", id, want, got)
		}
	}
	wantRight := map[int]float64{-1: 0, -2: -1, -3: -3, -4: -6}
	for id, want := range wantRight {
		if got := section.InnerOffset(id, 5); math.Abs(got-want) > 1e-6 {
			t.Errorf("lane %d: expected inner offset %v, got %v", id, want, got)
		}
	}
}

func TestInnerOffsetIndependentOfStorageOrder(t *testing.T) {
	ascending := LaneSection{
		S: 0,
		Left: []Lane{
			constantWidthLane(1, 1),
			constantWidthLane(2, 2),
			constantWidthLane(3, 3),
		},
		Center: Lane{ID: 0},
	}
	shuffled := LaneSection{
		S: 0,
		Left: []Lane{
			constantWidthLane(2, 2),
			constantWidthLane(3, 3),
			constantWidthLane(1, 1),
		},
		Center: Lane{ID: 0},
	}

	for id := 1; id <= 3; id++ {
		a := ascending.InnerOffset(id, 10)
		b := shuffled.InnerOffset(id, 10)
		if a != b {
			t.Errorf("lane %d: storage order changed inner offset (%v vs %v)", id, a, b)
		}
	}
}

func TestOuterOffsetAddsOwnWidth(t *testing.T) {
	section := LaneSection{
		S: 0,
		Left: []Lane{
			constantWidthLane(1, 3.5),
			constantWidthLane(2, 3),
		},
		Right: []Lane{
			constantWidthLane(-1, 3.5),
		},
		Center: Lane{ID: 0},
	}

	if got := section.OuterOffset(1, 0); math.Abs(got-3.5) > 1e-12 {
		t.Errorf("lane 1: expected outer 3.5, got %v", got)
	}
	if got := section.OuterOffset(2, 0); math.Abs(got-6.5) > 1e-12 {
		t.Errorf("lane 2: expected outer 6.5, got %v", got)
	}
	if got := section.OuterOffset(-1, 0); math.Abs(got+3.5) > 1e-12 {
		t.Errorf("lane -1: expected outer -3.5, got %v", got)
	}
	// The centre lane has no width.
	if got := section.OuterOffset(0, 0); got != 0 {
		t.Errorf("centre lane: expected outer 0, got %v", got)
	}
}

func TestInnerOffsetUsesSectionLocalDs(t *testing.T) {
	// Width grows linearly; the section starts at s=10 so ds = s-10.
	section := LaneSection{
		S: 10,
		Left: []Lane{
			{ID: 1, Width: []LaneWidth{{SOffset: 0, A: 2, B: 0.1}}},
			constantWidthLane(2, 1),
		},
		Center: Lane{ID: 0},
	}

	// At s=20, lane 1 width = 2 + 0.1*10 = 3.
	if got := section.InnerOffset(2, 20); math.Abs(got-3) > 1e-12 {
		t.Errorf("expected inner offset 3, got %v", got)
	}
}

func TestEvalLaneWidthsMultipleSegments(t *testing.T) {
	widths := []LaneWidth{
		{SOffset: 0, A: 3.5},
		{SOffset: 10, A: 4},
		{SOffset: 20, A: 3, B: 0.1},
	}

	cases := []struct{ ds, want float64 }{
		{5, 3.5},
		{15, 4},
		{25, 3.5}, // 3 + 0.1*5
	}
	for _, c := range cases {
		if got := EvalLaneWidths(widths, c.ds); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("ds=%v: expected %v, got %v", c.ds, c.want, got)
		}
	}
}

func TestEvalLaneWidthsEmpty(t *testing.T) {
	if got := EvalLaneWidths(nil, 5); got != 0 {
		t.Errorf("expected 0 for empty widths, got %v", got)
	}
}

func TestEvalLaneHeights(t *testing.T) {
	heights := []LaneHeight{
		{SOffset: 0, Inner: 0.1, Outer: 0.2},
		{SOffset: 10, Inner: 0.3, Outer: 0.4},
	}

	inner, outer := EvalLaneHeights(heights, 5)
	if inner != 0.1 || outer != 0.2 {
		t.Errorf("ds=5: expected (0.1,0.2), got (%v,%v)", inner, outer)
	}
	inner, outer = EvalLaneHeights(heights, 15)
	if inner != 0.3 || outer != 0.4 {
		t.Errorf("ds=15: expected (0.3,0.4), got (%v,%v)", inner, outer)
	}
	inner, outer = EvalLaneHeights(nil, 5)
	if inner != 0 || outer != 0 {
		t.Errorf("empty heights: expected zero lift, got (%v,%v)", inner, outer)
	}
}

func TestLaneByID(t *testing.T) {
	section := LaneSection{
		Left:   []Lane{constantWidthLane(2, 3), constantWidthLane(1, 3)},
		Right:  []Lane{constantWidthLane(-1, 3)},
		Center: Lane{ID: 0},
	}

	if lane := section.LaneByID(2); lane == nil || lane.ID != 2 {
		t.Error("lane 2 not found")
	}
	if lane := section.LaneByID(-1); lane == nil || lane.ID != -1 {
		t.Error("lane -1 not found")
	}
	if lane := section.LaneByID(0); lane == nil || lane.ID != 0 {
		t.Error("centre lane not found")
	}
	if lane := section.LaneByID(7); lane != nil {
		t.Error("expected nil for unknown lane ID")
	}
}
