package graph

import (
	"math"
	"testing"
)

const tol = 1e-9

func TestMultiEdgeOffsetsAreDistinctAndStable(t *testing.T) {
	nodes := []Node{
		{ID: "a", X: 100, Y: 100},
		{ID: "b", X: 400, Y: 100},
	}
	edges := []Edge{
		{ID: "r1", SourceID: "a", TargetID: "b", Type: "protects"},
		{ID: "r2", SourceID: "b", TargetID: "a", Type: "triggered by"},
	}

	curves := ComputeEdgeGeometry(nodes, edges, 24, 33)
	if len(curves) != 2 {
		t.Fatalf("got %d curves, want 2", len(curves))
	}
	if !curves[0].Curved || !curves[1].Curved {
		t.Fatalf("multi-edge pair should render curved")
	}
	// The chord lies on Y=100, so the control Y tells which side each
	// curve bends; the two must bend away from each other.
	sideA := curves[0].Control.Y - 100
	sideB := curves[1].Control.Y - 100
	if sideA*sideB >= 0 {
		t.Fatalf("curves bend to the same side: control Ys %v and %v", curves[0].Control.Y, curves[1].Control.Y)
	}

	// Re-running with the edge list reversed must reproduce the same
	// offset per edge id.
	reversed := []Edge{edges[1], edges[0]}
	again := ComputeEdgeGeometry(nodes, reversed, 24, 33)
	byID := map[string]float64{}
	for _, c := range again {
		byID[c.EdgeID] = c.Offset
	}
	for _, c := range curves {
		if byID[c.EdgeID] != c.Offset {
			t.Fatalf("offset for %s changed across runs: %v vs %v", c.EdgeID, c.Offset, byID[c.EdgeID])
		}
	}
}

func TestEndpointsSitOnNodeBoundary(t *testing.T) {
	nodes := []Node{
		{ID: "a", X: 100, Y: 100},
		{ID: "b", X: 400, Y: 250},
	}
	cases := []struct {
		name  string
		edges []Edge
	}{
		{
			name:  "straight_single_edge",
			edges: []Edge{{ID: "r1", SourceID: "a", TargetID: "b", Type: "protects"}},
		},
		{
			name: "curved_pair",
			edges: []Edge{
				{ID: "r1", SourceID: "a", TargetID: "b", Type: "protects"},
				{ID: "r2", SourceID: "a", TargetID: "b", Type: "supports"},
			},
		},
	}

	const radius = 24.0
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			curves := ComputeEdgeGeometry(nodes, tc.edges, radius, 33)
			if len(curves) != len(tc.edges) {
				t.Fatalf("got %d curves, want %d", len(curves), len(tc.edges))
			}
			for _, c := range curves {
				dStart := math.Hypot(c.Start.X-100, c.Start.Y-100)
				if math.Abs(dStart-radius) > tol {
					t.Fatalf("%s start distance %v, want %v", c.EdgeID, dStart, radius)
				}
				dEnd := math.Hypot(c.End.X-400, c.End.Y-250)
				if math.Abs(dEnd-radius) > tol {
					t.Fatalf("%s end distance %v, want %v", c.EdgeID, dEnd, radius)
				}
			}
		})
	}
}

func TestOffsetOrientationFollowsLexicalOrder(t *testing.T) {
	nodes := []Node{
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 300, Y: 0},
	}
	// Same two relationships, but the direction of each is swapped
	// between runs; the bend side per edge id must not change because
	// orientation is defined by the lexical order of the endpoints.
	forward := []Edge{
		{ID: "r1", SourceID: "a", TargetID: "b", Type: "protects"},
		{ID: "r2", SourceID: "a", TargetID: "b", Type: "supports"},
	}
	swapped := []Edge{
		{ID: "r1", SourceID: "b", TargetID: "a", Type: "protects"},
		{ID: "r2", SourceID: "b", TargetID: "a", Type: "supports"},
	}

	cf := ComputeEdgeGeometry(nodes, forward, 24, 33)
	cs := ComputeEdgeGeometry(nodes, swapped, 24, 33)

	sideOf := func(curves []EdgeCurve, id string) float64 {
		for _, c := range curves {
			if c.EdgeID == id {
				// All segment Ys are 0, so the control Y sign is the
				// bend side.
				if c.Control.Y > 0 {
					return 1
				}
				return -1
			}
		}
		t.Fatalf("edge %s missing", id)
		return 0
	}
	for _, id := range []string{"r1", "r2"} {
		if sideOf(cf, id) != sideOf(cs, id) {
			t.Fatalf("bend side for %s flipped when edge direction reversed", id)
		}
	}
}

func TestStaleEndpointExcludedOthersRender(t *testing.T) {
	nodes := []Node{
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 300, Y: 0},
	}
	edges := []Edge{
		{ID: "ok", SourceID: "a", TargetID: "b", Type: "protects"},
		{ID: "stale", SourceID: "a", TargetID: "ghost", Type: "supports"},
	}
	curves := ComputeEdgeGeometry(nodes, edges, 24, 33)
	if len(curves) != 1 || curves[0].EdgeID != "ok" {
		t.Fatalf("curves=%v, want only the resolvable edge", curves)
	}
}

func TestSingleEdgeRendersStraight(t *testing.T) {
	nodes := []Node{
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 300, Y: 0},
	}
	curves := ComputeEdgeGeometry(nodes, []Edge{{ID: "r1", SourceID: "a", TargetID: "b", Type: "protects"}}, 24, 33)
	if len(curves) != 1 {
		t.Fatalf("got %d curves, want 1", len(curves))
	}
	if curves[0].Curved || curves[0].Offset != 0 {
		t.Fatalf("single edge should be straight, got %+v", curves[0])
	}
}
