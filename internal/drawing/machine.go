// Package drawing turns pointer and key events into committed shapes,
// temporary measurements, calibration captures and selections.
package drawing

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Mecusp/odecamtakeoff/internal/calibration"
	"github.com/Mecusp/odecamtakeoff/internal/catalog"
	"github.com/Mecusp/odecamtakeoff/internal/project"
	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
	"github.com/Mecusp/odecamtakeoff/pkg/units"
)

// ErrNoScale is returned when a drawing material is selected before the
// plan has been calibrated
var ErrNoScale = errors.New("plan is not calibrated")

// Options tunes the machine
type Options struct {
	SnapThreshold float64 // image pixels
	SnapEnabled   bool
	RequireScale  bool // refuse non-measure materials until calibrated
}

// DefaultOptions returns the settings used by the desktop front end
func DefaultOptions() Options {
	return Options{
		SnapThreshold: DefaultSnapThreshold,
		SnapEnabled:   true,
		RequireScale:  true,
	}
}

// Machine is the drawing state machine. It is not safe for concurrent use;
// events are expected from a single input stream.
type Machine struct {
	project *project.Project
	calib   *calibration.Calibration
	format  *units.Formatter
	opts    Options
	snapper Snapper

	mode     Mode
	material string
	phase    Phase
	pending  []geometry.Point
	temp     *TempMeasurement
	selected string
}

// New creates a machine in SELECT mode
func New(p *project.Project, calib *calibration.Calibration, format *units.Formatter, opts Options) *Machine {
	if opts.SnapThreshold <= 0 {
		opts.SnapThreshold = DefaultSnapThreshold
	}
	return &Machine{
		project: p,
		calib:   calib,
		format:  format,
		opts:    opts,
		snapper: Snapper{Threshold: opts.SnapThreshold},
	}
}

// Mode returns the current mode
func (m *Machine) Mode() Mode {
	return m.mode
}

// Phase returns what the pending points are collected for
func (m *Machine) Phase() Phase {
	return m.phase
}

// Material returns the selected drawing material
func (m *Machine) Material() (catalog.Material, bool) {
	if m.material == "" {
		return catalog.Material{}, false
	}
	return m.project.Catalog().Find(m.material)
}

// Pending returns a copy of the in-progress points
func (m *Machine) Pending() []geometry.Point {
	return slices.Clone(m.pending)
}

// Temp returns the showing temporary measurement, or nil
func (m *Machine) Temp() *TempMeasurement {
	if m.temp == nil {
		return nil
	}
	t := *m.temp
	t.Points = slices.Clone(t.Points)
	return &t
}

// Selected returns the selected shape id. A selection whose shape has
// since been removed is reported as empty.
func (m *Machine) Selected() (string, bool) {
	if m.selected == "" {
		return "", false
	}
	if _, _, ok := m.project.FindShape(m.selected); !ok {
		m.selected = ""
		return "", false
	}
	return m.selected, true
}

// SnapEnabled reports the global snap setting
func (m *Machine) SnapEnabled() bool {
	return m.opts.SnapEnabled
}

// SetSnapEnabled changes the global snap setting
func (m *Machine) SetSnapEnabled(enabled bool) {
	m.opts.SnapEnabled = enabled
}

// Threshold returns the snap radius in image pixels
func (m *Machine) Threshold() float64 {
	return m.snapper.Threshold
}

// Reset drops all transient state and the selected material, returning
// to SELECT mode. Used when a new plan is loaded.
func (m *Machine) Reset() {
	m.clearPending()
	m.temp = nil
	m.selected = ""
	m.material = ""
	m.mode = ModeSelect
}

// SetMode switches tools. Pending points and a showing temp measurement
// are discarded; entering DRAW or CALIBRATE also drops the selection.
func (m *Machine) SetMode(mode Mode) Outcome {
	discarded := m.discardTransient()
	m.mode = mode
	if mode != ModeSelect && m.selected != "" {
		m.selected = ""
		discarded = true
	}
	if discarded {
		return Outcome{Kind: OutcomeCleared}
	}
	return Outcome{}
}

// SelectMaterial picks the drawing material and switches to DRAW mode
func (m *Machine) SelectMaterial(id string) error {
	mat, ok := m.project.Catalog().Find(id)
	if !ok {
		return fmt.Errorf("%w %q", catalog.ErrUnknownMaterial, id)
	}
	if m.opts.RequireScale && !mat.IsMeasure() && !m.calib.IsSet() {
		return fmt.Errorf("%w: calibrate before drawing %q", ErrNoScale, mat.ID)
	}

	m.SetMode(ModeDraw)
	m.material = mat.ID
	return nil
}

// SelectShape selects a shape on any sheet. When it lives on another sheet
// that sheet becomes active; the mode is forced to SELECT.
func (m *Machine) SelectShape(id string) Outcome {
	_, sheetID, ok := m.project.FindShape(id)
	if !ok {
		return Outcome{}
	}
	if sheetID != m.project.ActiveID() {
		// the sheet exists: FindShape just returned it
		_ = m.project.SetActive(sheetID)
	}

	m.discardTransient()
	m.mode = ModeSelect
	m.selected = id
	return Outcome{Kind: OutcomeSelected, ShapeID: id, SheetID: sheetID}
}

// Click handles a primary pointer click at a raw image position
func (m *Machine) Click(raw geometry.Point, mods Modifiers) (Outcome, error) {
	switch m.mode {
	case ModeSelect:
		return m.selectAt(raw), nil
	case ModeCalibrate:
		return m.calibrationClick(raw, mods), nil
	}
	return m.drawClick(raw, mods)
}

// DoubleClick finishes a linear shape with at least two pending points.
// Anywhere else it behaves like a click.
func (m *Machine) DoubleClick(raw geometry.Point, mods Modifiers) (Outcome, error) {
	if m.mode == ModeDraw && m.phase == PhaseLinear {
		return m.finishLinear()
	}
	return m.Click(raw, mods)
}

// Confirm finishes a linear shape with at least two pending points
func (m *Machine) Confirm() (Outcome, error) {
	if m.mode != ModeDraw || m.phase != PhaseLinear {
		return Outcome{}, nil
	}
	return m.finishLinear()
}

// Cancel clears, in order of priority, the pending points, the showing
// temp measurement or the selection. Only the first that applies fires.
func (m *Machine) Cancel() Outcome {
	switch {
	case len(m.pending) > 0:
		m.clearPending()
		return Outcome{Kind: OutcomeCleared}
	case m.temp != nil:
		m.temp = nil
		return Outcome{Kind: OutcomeCleared}
	case m.selected != "":
		m.selected = ""
		return Outcome{Kind: OutcomeDeselected}
	}
	return Outcome{}
}

// Delete removes the selected shape
func (m *Machine) Delete() Outcome {
	id, ok := m.Selected()
	if !ok {
		return Outcome{}
	}
	m.selected = ""
	if !m.project.RemoveOne(id) {
		return Outcome{}
	}
	return Outcome{Kind: OutcomeDeleted, ShapeID: id}
}

// Move computes the live preview for a pointer position
func (m *Machine) Move(raw geometry.Point, mods Modifiers) Preview {
	if m.mode == ModeSelect {
		return Preview{Position: raw}
	}

	pos, snapped := m.resolve(raw, mods)
	pv := Preview{Position: pos, Snapped: snapped}

	n := len(m.pending)
	if n == 0 {
		return pv
	}

	pv.Anchor = m.pending[n-1]
	pv.HasAnchor = true
	pv.Pixels = geometry.Distance(pv.Anchor, pos)
	pv.Meters, pv.Scaled = m.calib.Length(pv.Pixels)
	pv.Closing = m.phase == PhaseArea && n >= 3 && m.snapper.Within(pos, m.pending[0])

	switch {
	case pv.Closing:
		pv.Label = ClosingLabel
	case pv.Scaled:
		pv.Label = m.format.Meters(pv.Meters)
	default:
		pv.Label = PendingLabel
	}
	return pv
}

func (m *Machine) drawClick(raw geometry.Point, mods Modifiers) (Outcome, error) {
	mat, ok := m.Material()
	if !ok {
		return Outcome{}, nil
	}
	// a new click always starts a new capture
	m.temp = nil

	p, _ := m.resolve(raw, mods)
	n := len(m.pending)

	switch mat.Kind {
	case catalog.KindPoint:
		return m.finish(mat, []geometry.Point{p})

	case catalog.KindLinear:
		if n > 0 && m.snapper.Within(p, m.pending[n-1]) {
			return m.finishLinear()
		}
		m.push(p, PhaseLinear)

	case catalog.KindArea:
		if n >= 3 && m.snapper.Within(p, m.pending[0]) {
			return m.finish(mat, m.pending)
		}
		if n > 0 && m.snapper.Within(p, m.pending[n-1]) {
			return Outcome{}, nil
		}
		m.push(p, PhaseArea)
	}

	return Outcome{Kind: OutcomePointAdded, Point: p}, nil
}

func (m *Machine) finishLinear() (Outcome, error) {
	if len(m.pending) < 2 {
		return Outcome{}, nil
	}
	mat, ok := m.Material()
	if !ok {
		return Outcome{}, nil
	}
	return m.finish(mat, m.pending)
}

func (m *Machine) finish(mat catalog.Material, points []geometry.Point) (Outcome, error) {
	points = slices.Clone(points)
	m.clearPending()

	if mat.IsMeasure() {
		m.temp = newTempMeasurement(mat, points, m.calib, m.format)
		return Outcome{Kind: OutcomeMeasured, Point: points[len(points)-1], Temp: m.Temp()}, nil
	}

	shape, err := m.project.Add(project.Shape{
		MaterialID: mat.ID,
		Kind:       mat.Kind,
		Points:     points,
	})
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Kind: OutcomeShapeCommitted, Point: points[len(points)-1], ShapeID: shape.ID}, nil
}

func (m *Machine) calibrationClick(raw geometry.Point, mods Modifiers) Outcome {
	p, _ := m.resolve(raw, mods)

	if m.phase != PhaseCalibration {
		m.pending = []geometry.Point{p}
		m.phase = PhaseCalibration
		return Outcome{Kind: OutcomePointAdded, Point: p}
	}

	pixels := calibration.Capture(m.pending[0], p)
	if pixels == 0 {
		return Outcome{}
	}
	m.clearPending()
	return Outcome{Kind: OutcomeCalibrationCaptured, Point: p, Pixels: pixels}
}

func (m *Machine) selectAt(raw geometry.Point) Outcome {
	if id, ok := m.hitTest(raw); ok {
		m.selected = id
		return Outcome{Kind: OutcomeSelected, ShapeID: id, SheetID: m.project.ActiveID()}
	}
	if m.selected != "" {
		m.selected = ""
		return Outcome{Kind: OutcomeDeselected}
	}
	return Outcome{}
}

// resolve returns the effective point for a raw position and whether it
// was snapped
func (m *Machine) resolve(raw geometry.Point, mods Modifiers) (geometry.Point, bool) {
	if m.opts.SnapEnabled == mods.SnapToggle {
		return raw, false
	}
	if p, ok := m.snapper.Nearest(raw, m.snapCandidates()); ok {
		return p, true
	}
	return raw, false
}

func (m *Machine) snapCandidates() []geometry.Point {
	var candidates []geometry.Point
	if m.phase == PhaseArea && len(m.pending) >= 3 {
		candidates = append(candidates, m.pending[0])
	}
	for _, s := range m.project.Active().Shapes() {
		if s.Hidden {
			continue
		}
		candidates = append(candidates, s.Points...)
	}
	return candidates
}

func (m *Machine) push(p geometry.Point, phase Phase) {
	m.pending = append(m.pending, p)
	m.phase = phase
}

func (m *Machine) clearPending() {
	m.pending = nil
	m.phase = PhaseIdle
}

// discardTransient drops pending points and the temp measurement and
// reports whether anything was dropped
func (m *Machine) discardTransient() bool {
	discarded := len(m.pending) > 0 || m.temp != nil
	m.clearPending()
	m.temp = nil
	return discarded
}
