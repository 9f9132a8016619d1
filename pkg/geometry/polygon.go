package geometry

import "math"

// Distance returns the Euclidean distance between a and b
func Distance(a, b Point) float64 {
	return a.Distance(b)
}

// PolylineLength returns the summed length of consecutive segments.
// Fewer than two points yield 0.
func PolylineLength(points []Point) float64 {
	length := 0.0
	for i := 0; i+1 < len(points); i++ {
		length += points[i].Distance(points[i+1])
	}
	return length
}

// PolygonArea returns the area enclosed by points using the shoelace
// formula. The polygon is closed implicitly, so the last point connects
// back to the first. The result is non-negative for either winding and 0
// for fewer than three points.
func PolygonArea(points []Point) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}

	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += points[i].X * points[j].Y
		area -= points[j].X * points[i].Y
	}

	return math.Abs(area) / 2
}

// SegmentDistance returns the distance from p to the segment a-b
func SegmentDistance(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Distance(a)
	}

	// Project p onto the segment and clamp to its ends
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Add(ab.Mul(t)))
}

// PointInPolygon reports whether p lies inside the polygon using the
// even-odd rule
func PointInPolygon(p Point, polygon []Point) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := polygon[i], polygon[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			crossX := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < crossX {
				inside = !inside
			}
		}
	}
	return inside
}

// Centroid returns the mean of the given points, or the zero point when
// there are none
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sum Point
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}

// Bounds returns the minimum and maximum corners of the points
func Bounds(points []Point) (Point, Point) {
	if len(points) == 0 {
		return Point{}, Point{}
	}
	minP, maxP := points[0], points[0]
	for _, p := range points[1:] {
		minP.X = math.Min(minP.X, p.X)
		minP.Y = math.Min(minP.Y, p.Y)
		maxP.X = math.Max(maxP.X, p.X)
		maxP.Y = math.Max(maxP.Y, p.Y)
	}
	return minP, maxP
}
