package drawing

import (
	"math"

	"github.com/Mecusp/odecamtakeoff/internal/catalog"
	"github.com/Mecusp/odecamtakeoff/internal/project"
	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

// hitTest finds the topmost visible shape on the active sheet under p
func (m *Machine) hitTest(p geometry.Point) (string, bool) {
	shapes := m.project.Active().Shapes()
	for i := len(shapes) - 1; i >= 0; i-- {
		s := shapes[i]
		if s.Hidden {
			continue
		}
		if hits(s, p, m.snapper.Threshold) {
			return s.ID, true
		}
	}
	return "", false
}

func hits(s project.Shape, p geometry.Point, tolerance float64) bool {
	switch s.Kind {
	case catalog.KindPoint:
		return geometry.Distance(p, s.Points[0]) < tolerance
	case catalog.KindArea:
		if geometry.PointInPolygon(p, s.Points) {
			return true
		}
		return edgeDistance(p, s.Points, true) < tolerance
	}
	return edgeDistance(p, s.Points, false) < tolerance
}

func edgeDistance(p geometry.Point, points []geometry.Point, closed bool) float64 {
	n := len(points)
	if n == 1 {
		return geometry.Distance(p, points[0])
	}
	segments := n - 1
	if closed {
		segments = n
	}

	best := math.Inf(1)
	for i := 0; i < segments; i++ {
		best = min(best, geometry.SegmentDistance(p, points[i], points[(i+1)%n]))
	}
	return best
}
