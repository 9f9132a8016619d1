package drawing

import (
	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

// DefaultSnapThreshold is the snap radius in image pixels
const DefaultSnapThreshold = 6.0

// Snapper finds the vertex a raw pointer position should attach to
type Snapper struct {
	Threshold float64
}

// Nearest returns the candidate strictly closer than the threshold with
// the smallest distance to raw. Ties keep the earliest candidate.
func (s Snapper) Nearest(raw geometry.Point, candidates []geometry.Point) (geometry.Point, bool) {
	best := s.Threshold
	var nearest geometry.Point
	found := false

	for _, c := range candidates {
		if d := geometry.Distance(raw, c); d < best {
			best = d
			nearest = c
			found = true
		}
	}
	return nearest, found
}

// Within reports whether a and b are closer than the threshold
func (s Snapper) Within(a, b geometry.Point) bool {
	return geometry.Distance(a, b) < s.Threshold
}
