package app

import (
	"github.com/Mecusp/odecamtakeoff/internal/drawing"
	"github.com/Mecusp/odecamtakeoff/pkg/plan"
)

// LoadImage replaces the plan. The previous image is released, the scale
// and every sheet are reset and the session enters CALIBRATE mode.
func (app *App) LoadImage(p *plan.Plan) {
	if old := app.Plan.plan; old != nil && old != p {
		old.Release()
	}
	app.Plan.plan = p

	app.Calibration.Reset()
	app.Project.Reset()
	app.Machine.Reset()
	app.Machine.SetMode(drawing.ModeCalibrate)
	app.Prompt.calibration = nil
	app.History.committed = nil

	app.log.Printf("plan %s loaded (%dx%d)", p.Path, p.Width, p.Height)
}

// LoadImageFile decodes a plan image from disk and loads it
func (app *App) LoadImageFile(path string) error {
	p, err := plan.Load(path)
	if err != nil {
		return err
	}
	app.LoadImage(p)
	return nil
}

// CurrentPlan returns the loaded plan
func (app *App) CurrentPlan() (*plan.Plan, bool) {
	return app.Plan.plan, app.Plan.plan != nil
}
