package geometry

import (
	"math"
	"testing"
)

func TestPointAdd(t *testing.T) {
	p1 := NewPoint(1, 2)
	p2 := NewPoint(4, 5)
	result := p1.Add(p2)

	expected := NewPoint(5, 7)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestPointSub(t *testing.T) {
	p1 := NewPoint(5, 7)
	p2 := NewPoint(1, 2)
	result := p1.Sub(p2)

	expected := NewPoint(4, 5)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestPointLength(t *testing.T) {
	p := NewPoint(3, 4)
	length := p.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestPointDistance(t *testing.T) {
	p1 := NewPoint(0, 0)
	p2 := NewPoint(3, 4)

	expected := 5.0
	if d := p1.Distance(p2); math.Abs(d-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, d)
	}
	if d := Distance(p2, p1); math.Abs(d-expected) > 1e-10 {
		t.Errorf("Distance is not symmetric: expected %v, got %v", expected, d)
	}
}

func TestPointMidpoint(t *testing.T) {
	mid := NewPoint(0, 0).Midpoint(NewPoint(10, 4))

	expected := NewPoint(5, 2)
	if mid != expected {
		t.Errorf("Midpoint failed: expected %v, got %v", expected, mid)
	}
}
