package graph

import (
	"math"
	"testing"
)

func TestWheelZoomKeepsPointerFixed(t *testing.T) {
	tr := IdentityTransform()
	at := Point{X: 300, Y: 200}
	layoutPoint := tr.Invert(at)

	tr = tr.Wheel(1, at)
	after := tr.Apply(layoutPoint)
	if math.Abs(after.X-at.X) > 1e-9 || math.Abs(after.Y-at.Y) > 1e-9 {
		t.Fatalf("point under cursor moved: %v -> %v", at, after)
	}
	if tr.Scale <= 1 {
		t.Fatalf("wheel up should zoom in, scale=%v", tr.Scale)
	}
}

func TestZoomClamped(t *testing.T) {
	tr := IdentityTransform()
	for i := 0; i < 100; i++ {
		tr = tr.Wheel(1, Point{})
	}
	if tr.Scale > maxScale {
		t.Fatalf("scale %v exceeds max %v", tr.Scale, maxScale)
	}
	for i := 0; i < 200; i++ {
		tr = tr.Wheel(-1, Point{})
	}
	if tr.Scale < minScale {
		t.Fatalf("scale %v below min %v", tr.Scale, minScale)
	}
}

func TestDoubleClickResets(t *testing.T) {
	tr := IdentityTransform().Wheel(1, Point{X: 100, Y: 100})
	tr = tr.DoubleClick()
	if tr != IdentityTransform() {
		t.Fatalf("double click should reset to identity, got %+v", tr)
	}
}

func TestApplyInvertRoundTrip(t *testing.T) {
	tr := IdentityTransform().Wheel(1, Point{X: 50, Y: 70}).Wheel(1, Point{X: 10, Y: 10})
	p := Point{X: 123.4, Y: 567.8}
	rt := tr.Invert(tr.Apply(p))
	if math.Abs(rt.X-p.X) > 1e-9 || math.Abs(rt.Y-p.Y) > 1e-9 {
		t.Fatalf("round trip drifted: %v -> %v", p, rt)
	}
}
