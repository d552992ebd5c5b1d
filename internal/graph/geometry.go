package graph

import (
	"math"
	"sort"
)

// DefaultCurveOffset is the perpendicular offset applied when several
// relationships connect the same pair of nodes.
const DefaultCurveOffset = 33.0

// EdgeCurve is the rendered geometry for one edge. Start and End sit
// exactly on the endpoint node boundary circles. A straight edge has
// Curved=false and a Control equal to the segment midpoint.
type EdgeCurve struct {
	EdgeID   string  `json:"edge_id"`
	SourceID string  `json:"source_id"`
	TargetID string  `json:"target_id"`
	Type     string  `json:"type"`
	Start    Point   `json:"start"`
	End      Point   `json:"end"`
	Control  Point   `json:"control"`
	Curved   bool    `json:"curved"`
	Offset   float64 `json:"offset"`
}

// ComputeEdgeGeometry lays out curves for every edge whose endpoints are
// present. Edges referencing unknown nodes, and self-loops, are silently
// excluded. Within a multi-edge group, offsets alternate sign and grow in
// magnitude per tier; the orientation is flipped when the lexically
// smaller endpoint id is the target, so the assignment is stable no
// matter which relationship was created first.
func ComputeEdgeGeometry(nodes []Node, edges []Edge, nodeRadius, curveOffset float64) []EdgeCurve {
	if curveOffset <= 0 {
		curveOffset = DefaultCurveOffset
	}
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	groups := make(map[[2]string][]Edge)
	var order [][2]string
	for _, e := range edges {
		if _, ok := byID[e.SourceID]; !ok {
			continue
		}
		if _, ok := byID[e.TargetID]; !ok {
			continue
		}
		if e.SourceID == e.TargetID {
			continue
		}
		key := pairKey(e.SourceID, e.TargetID)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], e)
	}

	var out []EdgeCurve
	for _, key := range order {
		group := groups[key]
		// Sort by edge id so offset assignment is reproducible.
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })
		for i, e := range group {
			offset := 0.0
			if len(group) > 1 {
				tier := float64(i/2 + 1)
				offset = curveOffset * tier
				if i%2 == 1 {
					offset = -offset
				}
				// Offsets are defined relative to the lexically ordered
				// pair; flip when this edge runs the other way so the
				// curve bends the same side regardless of direction.
				if e.SourceID > e.TargetID {
					offset = -offset
				}
			}
			out = append(out, buildCurve(e, byID[e.SourceID], byID[e.TargetID], nodeRadius, offset))
		}
	}
	return out
}

func pairKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

func buildCurve(e Edge, src, dst Node, radius, offset float64) EdgeCurve {
	s := Point{X: src.X, Y: src.Y}
	d := Point{X: dst.X, Y: dst.Y}
	mid := Point{X: (s.X + d.X) / 2, Y: (s.Y + d.Y) / 2}

	curve := EdgeCurve{
		EdgeID:   e.ID,
		SourceID: e.SourceID,
		TargetID: e.TargetID,
		Type:     e.Type,
		Offset:   offset,
	}

	if offset == 0 {
		curve.Start = pointOnCircleToward(s, d, radius)
		curve.End = pointOnCircleToward(d, s, radius)
		curve.Control = mid
		return curve
	}

	dx := d.X - s.X
	dy := d.Y - s.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		length = 1e-6
	}
	// Perpendicular unit vector; control point sits offset units off the
	// straight midpoint.
	px := -dy / length
	py := dx / length
	control := Point{X: mid.X + px*offset, Y: mid.Y + py*offset}

	curve.Curved = true
	curve.Control = control
	// The curve leaves each node toward the control point, so the
	// boundary intersection is along that direction.
	curve.Start = pointOnCircleToward(s, control, radius)
	curve.End = pointOnCircleToward(d, control, radius)
	return curve
}

// pointOnCircleToward returns the point on the circle of the given radius
// around center, in the direction of toward. Distance from center is
// exactly radius.
func pointOnCircleToward(center, toward Point, radius float64) Point {
	dx := toward.X - center.X
	dy := toward.Y - center.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return Point{X: center.X + radius, Y: center.Y}
	}
	return Point{
		X: center.X + dx/dist*radius,
		Y: center.Y + dy/dist*radius,
	}
}

// QuadraticPoint evaluates the curve at t in [0,1]; used by renderers for
// arrowhead placement.
func (c EdgeCurve) QuadraticPoint(t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*c.Start.X + 2*u*t*c.Control.X + t*t*c.End.X,
		Y: u*u*c.Start.Y + 2*u*t*c.Control.Y + t*t*c.End.Y,
	}
}
