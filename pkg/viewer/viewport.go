package viewer

import (
	"math"

	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

const (
	MinZoom = 0.05
	MaxZoom = 40.0
)

// Viewport maps plan image pixels to screen positions:
// screen = image*Zoom + Offset
type Viewport struct {
	Zoom   float64
	Offset geometry.Point
}

// NewViewport returns an identity viewport
func NewViewport() *Viewport {
	return &Viewport{Zoom: 1}
}

// Fit scales and centers an image of the given size inside the view
func (v *Viewport) Fit(imageW, imageH, viewW, viewH float64) {
	if imageW <= 0 || imageH <= 0 || viewW <= 0 || viewH <= 0 {
		v.Zoom, v.Offset = 1, geometry.Point{}
		return
	}
	v.Zoom = clampZoom(math.Min(viewW/imageW, viewH/imageH))
	v.Offset = geometry.NewPoint((viewW-imageW*v.Zoom)/2, (viewH-imageH*v.Zoom)/2)
}

// ToImage converts a screen position to image pixels
func (v *Viewport) ToImage(screen geometry.Point) geometry.Point {
	return screen.Sub(v.Offset).Mul(1 / v.Zoom)
}

// ToScreen converts image pixels to a screen position
func (v *Viewport) ToScreen(img geometry.Point) geometry.Point {
	return img.Mul(v.Zoom).Add(v.Offset)
}

// ZoomAt multiplies the zoom by factor keeping the image point under
// the screen position anchor in place
func (v *Viewport) ZoomAt(anchor geometry.Point, factor float64) {
	if factor <= 0 {
		return
	}
	fixed := v.ToImage(anchor)
	v.Zoom = clampZoom(v.Zoom * factor)
	v.Offset = anchor.Sub(fixed.Mul(v.Zoom))
}

// Pan moves the view by a screen delta
func (v *Viewport) Pan(dx, dy float64) {
	v.Offset = v.Offset.Add(geometry.NewPoint(dx, dy))
}

func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}
