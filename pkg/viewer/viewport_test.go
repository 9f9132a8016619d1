package viewer

import (
	"math"
	"testing"

	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

func near(a, b geometry.Point) bool {
	return math.Abs(a.X-b.X) < 1e-10 && math.Abs(a.Y-b.Y) < 1e-10
}

func TestFit(t *testing.T) {
	tests := []struct {
		name       string
		imgW, imgH float64
		viewW      float64
		viewH      float64
		wantZoom   float64
		wantOffset geometry.Point
	}{
		{"wide image", 1000, 500, 500, 500, 0.5, geometry.NewPoint(0, 125)},
		{"tall image", 200, 400, 400, 400, 1, geometry.NewPoint(100, 0)},
		{"small image", 10, 10, 100, 50, 5, geometry.NewPoint(25, 0)},
		{"empty view", 100, 100, 0, 0, 1, geometry.Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport()
			v.Fit(tt.imgW, tt.imgH, tt.viewW, tt.viewH)
			if math.Abs(v.Zoom-tt.wantZoom) > 1e-10 {
				t.Errorf("expected zoom %v, got %v", tt.wantZoom, v.Zoom)
			}
			if !near(v.Offset, tt.wantOffset) {
				t.Errorf("expected offset %v, got %v", tt.wantOffset, v.Offset)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	v := &Viewport{Zoom: 2.5, Offset: geometry.NewPoint(-30, 12)}
	p := geometry.NewPoint(123.5, 77)

	if got := v.ToImage(v.ToScreen(p)); !near(got, p) {
		t.Errorf("expected %v, got %v", p, got)
	}
	if got := v.ToScreen(geometry.NewPoint(10, 10)); !near(got, geometry.NewPoint(-5, 37)) {
		t.Errorf("unexpected screen position %v", got)
	}
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	v := NewViewport()
	anchor := geometry.NewPoint(80, 60)
	before := v.ToImage(anchor)

	v.ZoomAt(anchor, 3)
	if math.Abs(v.Zoom-3) > 1e-10 {
		t.Errorf("expected zoom 3, got %v", v.Zoom)
	}
	if after := v.ToImage(anchor); !near(after, before) {
		t.Errorf("anchor moved from %v to %v", before, after)
	}

	v.ZoomAt(anchor, 1000)
	if v.Zoom != MaxZoom {
		t.Errorf("expected zoom clamped to %v, got %v", MaxZoom, v.Zoom)
	}
	v.ZoomAt(anchor, 0)
	if v.Zoom != MaxZoom {
		t.Errorf("non-positive factor must be ignored, got %v", v.Zoom)
	}
}

func TestPan(t *testing.T) {
	v := NewViewport()
	v.Pan(10, -5)
	if got := v.ToImage(geometry.NewPoint(10, -5)); !near(got, geometry.Point{}) {
		t.Errorf("expected origin, got %v", got)
	}
}
