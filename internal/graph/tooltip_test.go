package graph

import (
	"testing"
	"time"
)

func tooltipFixture() (map[string]Circle, Rect) {
	nodes := map[string]Circle{
		"a": {Center: Point{X: 100, Y: 100}, Radius: 24},
	}
	// Panel floats just right of the node with a small gap.
	panel := Rect{MinX: 140, MinY: 80, MaxX: 300, MaxY: 160}
	return nodes, panel
}

func TestTooltipShowsOnHover(t *testing.T) {
	nodes, panel := tooltipFixture()
	tip := NewTooltip(300 * time.Millisecond)
	now := time.Unix(0, 0)

	if !tip.PointerMoved(Point{X: 100, Y: 100}, nodes, panel, now) {
		t.Fatalf("tooltip should show over the node")
	}
	if tip.NodeID() != "a" {
		t.Fatalf("NodeID=%q, want a", tip.NodeID())
	}
}

func TestTooltipSurvivesGapCrossing(t *testing.T) {
	nodes, panel := tooltipFixture()
	tip := NewTooltip(300 * time.Millisecond)
	now := time.Unix(0, 0)

	tip.PointerMoved(Point{X: 100, Y: 100}, nodes, panel, now)
	// Pointer in the gap between node and panel.
	now = now.Add(50 * time.Millisecond)
	tip.PointerMoved(Point{X: 132, Y: 100}, nodes, panel, now)
	if !tip.Advance(now) {
		t.Fatalf("tooltip hid inside the grace window")
	}
	// Pointer reaches the panel before the timer fires; hide cancelled.
	now = now.Add(100 * time.Millisecond)
	tip.PointerMoved(Point{X: 150, Y: 100}, nodes, panel, now)
	now = now.Add(time.Second)
	if !tip.Advance(now) {
		t.Fatalf("tooltip should stay up while the pointer is on the panel")
	}
}

func TestTooltipHidesAfterGrace(t *testing.T) {
	nodes, panel := tooltipFixture()
	tip := NewTooltip(300 * time.Millisecond)
	now := time.Unix(0, 0)

	tip.PointerMoved(Point{X: 100, Y: 100}, nodes, panel, now)
	tip.PointerMoved(Point{X: 500, Y: 500}, nodes, panel, now)
	if !tip.Advance(now.Add(100 * time.Millisecond)) {
		t.Fatalf("tooltip hid before the grace elapsed")
	}
	if tip.Advance(now.Add(400 * time.Millisecond)) {
		t.Fatalf("tooltip still visible after the grace elapsed")
	}
	if tip.NodeID() != "" {
		t.Fatalf("NodeID should clear on hide")
	}
}

func TestReenteringNodeCancelsHide(t *testing.T) {
	nodes, panel := tooltipFixture()
	tip := NewTooltip(300 * time.Millisecond)
	now := time.Unix(0, 0)

	tip.PointerMoved(Point{X: 100, Y: 100}, nodes, panel, now)
	tip.PointerMoved(Point{X: 500, Y: 500}, nodes, panel, now)
	now = now.Add(200 * time.Millisecond)
	tip.PointerMoved(Point{X: 100, Y: 100}, nodes, panel, now)

	// Well past the original deadline, still visible.
	if !tip.Advance(now.Add(time.Second)) {
		t.Fatalf("re-entering the node should cancel the pending hide")
	}
}
