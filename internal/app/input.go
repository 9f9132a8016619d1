package app

import (
	"github.com/Mecusp/odecamtakeoff/internal/drawing"
	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

// SetMode switches tools. Leaving CALIBRATE closes an open prompt.
func (app *App) SetMode(mode drawing.Mode) drawing.Outcome {
	if mode != drawing.ModeCalibrate {
		app.Prompt.calibration = nil
	}
	return app.observe(app.Machine.SetMode(mode), nil)
}

// SelectMaterial picks the drawing material
func (app *App) SelectMaterial(id string) error {
	if err := app.Machine.SelectMaterial(id); err != nil {
		app.log.Printf("material %s: %v", id, err)
		return err
	}
	app.Prompt.calibration = nil
	app.log.Printf("material %s selected", id)
	return nil
}

// SelectShape selects a shape by id, switching sheets if needed
func (app *App) SelectShape(id string) drawing.Outcome {
	return app.observe(app.Machine.SelectShape(id), nil)
}

// Click forwards a primary click
func (app *App) Click(p geometry.Point, mods drawing.Modifiers) (drawing.Outcome, error) {
	return app.observeErr(app.Machine.Click(p, mods))
}

// DoubleClick forwards a double click
func (app *App) DoubleClick(p geometry.Point, mods drawing.Modifiers) (drawing.Outcome, error) {
	return app.observeErr(app.Machine.DoubleClick(p, mods))
}

// Move returns the live preview for a pointer position
func (app *App) Move(p geometry.Point, mods drawing.Modifiers) drawing.Preview {
	return app.Machine.Move(p, mods)
}

// Enter finishes a linear shape
func (app *App) Enter() (drawing.Outcome, error) {
	return app.observeErr(app.Machine.Confirm())
}

// Escape cancels the most specific transient state
func (app *App) Escape() drawing.Outcome {
	return app.observe(app.Machine.Cancel(), nil)
}

// Delete removes the selected shape
func (app *App) Delete() drawing.Outcome {
	return app.observe(app.Machine.Delete(), nil)
}

func (app *App) observeErr(out drawing.Outcome, err error) (drawing.Outcome, error) {
	return app.observe(out, err), err
}

// observe reacts to machine outcomes: captures open the calibration
// prompt and commits are recorded for script references
func (app *App) observe(out drawing.Outcome, err error) drawing.Outcome {
	if err != nil {
		app.log.Printf("input rejected: %v", err)
		return out
	}

	switch out.Kind {
	case drawing.OutcomeCalibrationCaptured:
		app.Prompt.calibration = &CalibrationPrompt{Pixels: out.Pixels}
		app.log.Printf("calibration segment captured: %s px", app.Format.Number(out.Pixels))
	case drawing.OutcomeShapeCommitted:
		app.History.committed = append(app.History.committed, out.ShapeID)
		app.log.Printf("shape %s committed", out.ShapeID)
	case drawing.OutcomeMeasured:
		app.log.Printf("measured %s", out.Temp.Label)
	case drawing.OutcomeDeleted:
		app.log.Printf("shape %s deleted", out.ShapeID)
	case drawing.OutcomeNone:
	default:
		app.log.Printf("%s", out.Kind)
	}
	return out
}
