package geometry

import "math"

// Point represents a position in image pixel space
type Point struct {
	X, Y float64
}

// NewPoint creates a new point
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points
func (p Point) Add(other Point) Point {
	return Point{
		X: p.X + other.X,
		Y: p.Y + other.Y,
	}
}

// Sub returns the difference between two points
func (p Point) Sub(other Point) Point {
	return Point{
		X: p.X - other.X,
		Y: p.Y - other.Y,
	}
}

// Mul multiplies the point by a scalar
func (p Point) Mul(scalar float64) Point {
	return Point{
		X: p.X * scalar,
		Y: p.Y * scalar,
	}
}

// Dot returns the dot product of two points taken as vectors
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Length returns the magnitude of the point taken as a vector
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Length()
}

// Midpoint returns the point halfway between p and other
func (p Point) Midpoint(other Point) Point {
	return Point{
		X: (p.X + other.X) / 2,
		Y: (p.Y + other.Y) / 2,
	}
}
