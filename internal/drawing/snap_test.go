package drawing

import (
	"testing"

	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

func TestSnapperNearest(t *testing.T) {
	s := Snapper{Threshold: 6}
	candidates := []geometry.Point{pt(10, 0), pt(3, 0), pt(0, 6)}

	tests := []struct {
		name  string
		raw   geometry.Point
		want  geometry.Point
		found bool
	}{
		{"nearest wins", pt(5, 0), pt(3, 0), true},
		{"exactly at threshold is rejected", pt(0, 12), geometry.Point{}, false},
		{"nothing close", pt(100, 100), geometry.Point{}, false},
		{"exact vertex", pt(10, 0), pt(10, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Nearest(tt.raw, candidates)
			if ok != tt.found || got != tt.want {
				t.Errorf("Nearest(%v) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestSnapperWithin(t *testing.T) {
	s := Snapper{Threshold: 6}
	if !s.Within(pt(0, 0), pt(3, 4)) {
		t.Error("distance 5 should be within 6")
	}
	if s.Within(pt(0, 0), pt(6, 0)) {
		t.Error("distance 6 must not be within 6")
	}
}
