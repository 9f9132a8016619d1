package drawing

import (
	"github.com/Mecusp/odecamtakeoff/internal/calibration"
	"github.com/Mecusp/odecamtakeoff/internal/catalog"
	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
	"github.com/Mecusp/odecamtakeoff/pkg/units"
)

// Labels shown in place of a measured value
const (
	UnscaledLabel = "sem escala"
	PendingLabel  = "..."
	ClosingLabel  = "FECHAR"
)

func newTempMeasurement(mat catalog.Material, points []geometry.Point, calib *calibration.Calibration, f *units.Formatter) *TempMeasurement {
	t := &TempMeasurement{
		MaterialID: mat.ID,
		Kind:       mat.Kind,
		Points:     points,
	}

	switch mat.Kind {
	case catalog.KindArea:
		t.Pixels = geometry.PolygonArea(points)
		if t.Value, t.Scaled = calib.Area(t.Pixels); t.Scaled {
			t.Label = f.SquareMeters(t.Value)
		}
	case catalog.KindLinear:
		t.Pixels = geometry.PolylineLength(points)
		if t.Value, t.Scaled = calib.Length(t.Pixels); t.Scaled {
			t.Label = f.Meters(t.Value)
		}
	default:
		t.Value, t.Scaled = float64(len(points)), true
		t.Label = f.Count(len(points))
	}

	if !t.Scaled {
		t.Label = UnscaledLabel
	}
	return t
}

// LabelPosition returns where the label of the measurement is anchored
func (t *TempMeasurement) LabelPosition() geometry.Point {
	if t.Kind == catalog.KindArea {
		return geometry.Centroid(t.Points)
	}
	return t.Points[len(t.Points)-1]
}
