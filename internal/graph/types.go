package graph

// Node is a part placed on the system map.
type Node struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Role string  `json:"role"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`

	// Pinned holds the node at its coordinates during a drag gesture.
	Pinned bool `json:"-"`
}

// Edge is a directed, typed relationship between two nodes. Several edges
// may share the same unordered endpoint pair.
type Edge struct {
	ID       string `json:"id"`
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
	Type     string `json:"type"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Circle struct {
	Center Point
	Radius float64
}

type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (c Circle) Contains(p Point) bool {
	dx := p.X - c.Center.X
	dy := p.Y - c.Center.Y
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}
