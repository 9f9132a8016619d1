// Package calibration holds the pixels-per-meter scale of the base image.
package calibration

import (
	"errors"
	"fmt"
	"math"

	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
	"github.com/Mecusp/odecamtakeoff/pkg/units"
)

// ErrInvalidInput is returned when a calibration length is not a finite
// number greater than zero
var ErrInvalidInput = errors.New("invalid calibration length")

// Calibration stores the scale factor. The zero value is uncalibrated.
type Calibration struct {
	pixelsPerMeter float64
	set            bool
}

// Capture returns the pixel distance between the two reference points
func Capture(a, b geometry.Point) float64 {
	return geometry.Distance(a, b)
}

// Finalize derives pixels per meter from a captured pixel distance and the
// real length it represents. On error the calibration is left unchanged.
func (c *Calibration) Finalize(pixelDistance, realMeters float64) (float64, error) {
	if !positiveFinite(realMeters) {
		return 0, fmt.Errorf("%w: real length %v must be greater than zero", ErrInvalidInput, realMeters)
	}
	if !positiveFinite(pixelDistance) {
		return 0, fmt.Errorf("%w: reference segment has no length", ErrInvalidInput)
	}

	c.pixelsPerMeter = pixelDistance / realMeters
	c.set = true
	return c.pixelsPerMeter, nil
}

// FinalizeInput parses user input (decimal comma or point) and finalizes
func (c *Calibration) FinalizeInput(pixelDistance float64, input string) (float64, error) {
	meters, err := units.ParseDecimal(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return c.Finalize(pixelDistance, meters)
}

// PixelsPerMeter returns the scale and whether it has been set
func (c *Calibration) PixelsPerMeter() (float64, bool) {
	return c.pixelsPerMeter, c.set
}

// IsSet reports whether a scale is available
func (c *Calibration) IsSet() bool {
	return c.set
}

// Reset discards the scale
func (c *Calibration) Reset() {
	c.pixelsPerMeter = 0
	c.set = false
}

// Length converts a pixel length to meters
func (c *Calibration) Length(pixels float64) (float64, bool) {
	if !c.set {
		return 0, false
	}
	return pixels / c.pixelsPerMeter, true
}

// Area converts a pixel area to square meters
func (c *Calibration) Area(squarePixels float64) (float64, bool) {
	if !c.set {
		return 0, false
	}
	return squarePixels / (c.pixelsPerMeter * c.pixelsPerMeter), true
}

// Pixels converts meters back to pixels, used to size strokes drawn with a
// real-world width
func (c *Calibration) Pixels(meters float64) (float64, bool) {
	if !c.set {
		return 0, false
	}
	return meters * c.pixelsPerMeter, true
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
