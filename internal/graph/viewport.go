package graph

// Transform is the zoom/pan state of the map view. Wheel and double-click
// are the only zoom gestures; drag is reserved for node repositioning.
type Transform struct {
	Scale float64 `json:"scale"`
	TX    float64 `json:"tx"`
	TY    float64 `json:"ty"`
}

const (
	minScale = 0.25
	maxScale = 8.0
)

func IdentityTransform() Transform {
	return Transform{Scale: 1}
}

// Wheel zooms around the pointer position so the point under the cursor
// stays fixed.
func (t Transform) Wheel(delta float64, at Point) Transform {
	factor := 1.0
	if delta > 0 {
		factor = 1.1
	} else if delta < 0 {
		factor = 1 / 1.1
	}
	scale := t.Scale * factor
	if scale < minScale {
		scale = minScale
	}
	if scale > maxScale {
		scale = maxScale
	}
	if scale == t.Scale {
		return t
	}
	ratio := scale / t.Scale
	return Transform{
		Scale: scale,
		TX:    at.X - ratio*(at.X-t.TX),
		TY:    at.Y - ratio*(at.Y-t.TY),
	}
}

// DoubleClick resets to the identity transform and re-centers.
func (t Transform) DoubleClick() Transform {
	return IdentityTransform()
}

// Apply maps a layout-space point to screen space.
func (t Transform) Apply(p Point) Point {
	return Point{X: p.X*t.Scale + t.TX, Y: p.Y*t.Scale + t.TY}
}

// Invert maps a screen-space point back to layout space.
func (t Transform) Invert(p Point) Point {
	return Point{X: (p.X - t.TX) / t.Scale, Y: (p.Y - t.TY) / t.Scale}
}
