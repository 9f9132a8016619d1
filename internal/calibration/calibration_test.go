package calibration

import (
	"errors"
	"math"
	"testing"

	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

func TestCalibrationRoundTrip(t *testing.T) {
	var c Calibration

	px := Capture(geometry.NewPoint(0, 0), geometry.NewPoint(100, 0))
	ppm, err := c.Finalize(px, 5)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if math.Abs(ppm-20) > 1e-10 {
		t.Fatalf("expected 20 px/m, got %v", ppm)
	}

	length, ok := c.Length(geometry.PolylineLength([]geometry.Point{{X: 0, Y: 0}, {X: 200, Y: 0}}))
	if !ok {
		t.Fatal("expected length conversion to be available")
	}
	if math.Abs(length-10) > 1e-10 {
		t.Errorf("expected 10 m, got %v", length)
	}

	area, _ := c.Area(400)
	if math.Abs(area-1) > 1e-10 {
		t.Errorf("expected 1 m², got %v", area)
	}
}

func TestFinalizeInputLocale(t *testing.T) {
	var comma, point Calibration

	a, err := comma.FinalizeInput(70, "3,50")
	if err != nil {
		t.Fatalf("comma input: %v", err)
	}
	b, err := point.FinalizeInput(70, "3.50")
	if err != nil {
		t.Fatalf("point input: %v", err)
	}
	if a != b || math.Abs(a-20) > 1e-10 {
		t.Errorf("expected identical 20 px/m, got %v and %v", a, b)
	}
}

func TestFinalizeRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"zero", "0"},
		{"negative", "-1"},
		{"text", "three"},
		{"empty", ""},
		{"infinite", "Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Calibration
			if _, err := c.Finalize(10, 2); err != nil {
				t.Fatal(err)
			}

			_, err := c.FinalizeInput(100, tt.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}

			// The previous scale must survive a rejected input
			ppm, ok := c.PixelsPerMeter()
			if !ok || ppm != 5 {
				t.Errorf("calibration changed on failure: %v %v", ppm, ok)
			}
		})
	}
}

func TestFinalizeRejectsDegenerateCapture(t *testing.T) {
	var c Calibration
	px := Capture(geometry.NewPoint(4, 4), geometry.NewPoint(4, 4))
	if _, err := c.Finalize(px, 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if c.IsSet() {
		t.Error("calibration must stay absent")
	}
}

func TestConversionsUnavailableWhileAbsent(t *testing.T) {
	var c Calibration

	if _, ok := c.Length(10); ok {
		t.Error("Length must be unavailable")
	}
	if _, ok := c.Area(10); ok {
		t.Error("Area must be unavailable")
	}
	if _, ok := c.Pixels(1); ok {
		t.Error("Pixels must be unavailable")
	}

	if _, err := c.Finalize(50, 2); err != nil {
		t.Fatal(err)
	}
	c.Reset()
	if c.IsSet() {
		t.Error("Reset must clear the scale")
	}
}
