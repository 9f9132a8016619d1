package drawing

import (
	"fmt"
	"strings"

	"github.com/Mecusp/odecamtakeoff/internal/catalog"
	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

// Mode is the top-level tool selected by the user
type Mode int

const (
	ModeSelect Mode = iota
	ModeCalibrate
	ModeDraw
)

func (m Mode) String() string {
	switch m {
	case ModeCalibrate:
		return "calibrate"
	case ModeDraw:
		return "draw"
	}
	return "select"
}

// ParseMode accepts select, calibrate or draw
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "select":
		return ModeSelect, nil
	case "calibrate":
		return ModeCalibrate, nil
	case "draw":
		return ModeDraw, nil
	}
	return ModeSelect, fmt.Errorf("unknown mode %q", s)
}

// Phase tags what the pending points are being collected for
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLinear
	PhaseArea
	PhaseCalibration
)

func (p Phase) String() string {
	return [...]string{"idle", "linear", "area", "calibration"}[p]
}

// Modifiers carries the keyboard state of a pointer event
type Modifiers struct {
	SnapToggle bool // inverts the global snap setting while held
}

// OutcomeKind says what an event did
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomePointAdded
	OutcomeShapeCommitted
	OutcomeMeasured
	OutcomeCalibrationCaptured
	OutcomeSelected
	OutcomeDeselected
	OutcomeCleared
	OutcomeDeleted
)

var outcomeNames = [...]string{
	"none",
	"point-added",
	"shape-committed",
	"measured",
	"calibration-captured",
	"selected",
	"deselected",
	"cleared",
	"deleted",
}

func (k OutcomeKind) String() string {
	return outcomeNames[k]
}

// Outcome reports the effect of a single event. Only the fields relevant
// to Kind are set.
type Outcome struct {
	Kind    OutcomeKind
	Point   geometry.Point   // effective point of a click
	ShapeID string           // committed, selected or deleted shape
	SheetID string           // sheet of a selected shape
	Temp    *TempMeasurement // measured
	Pixels  float64          // calibration capture distance
}

// Preview describes the rubber band drawn while the pointer moves
type Preview struct {
	Position geometry.Point // snapped position if any, else raw
	Snapped  bool
	// Anchor is the last pending point; HasAnchor is false with nothing pending
	Anchor    geometry.Point
	HasAnchor bool
	Pixels    float64 // anchor to position
	Meters    float64
	Scaled    bool
	Closing   bool // the next click would close the area
	Label     string
}

// TempMeasurement is the result of a measure-category capture. It is
// never stored in the project and never aggregated.
type TempMeasurement struct {
	MaterialID string
	Kind       catalog.GeometryKind
	Points     []geometry.Point
	Pixels     float64 // px for linear, px² for area
	Value      float64 // m or m², valid when Scaled
	Scaled     bool
	Label      string
}
