// Package app ties the catalog, project, calibration and drawing machine
// into one takeoff session driven by a single input stream.
package app

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/Mecusp/odecamtakeoff/internal/calibration"
	"github.com/Mecusp/odecamtakeoff/internal/catalog"
	"github.com/Mecusp/odecamtakeoff/internal/config"
	"github.com/Mecusp/odecamtakeoff/internal/drawing"
	"github.com/Mecusp/odecamtakeoff/internal/project"
	"github.com/Mecusp/odecamtakeoff/internal/quantity"
	"github.com/Mecusp/odecamtakeoff/pkg/units"
)

var (
	// ErrNoPrompt is returned when answering without an open calibration prompt
	ErrNoPrompt = errors.New("no calibration prompt open")
	// ErrDeclined is passed to completion callbacks when the user says no
	ErrDeclined = errors.New("operation declined")
	// ErrNoPlan is returned by operations that need a loaded plan image
	ErrNoPlan = errors.New("no plan loaded")
)

// Options configures a session
type Options struct {
	Catalog   *catalog.Catalog
	Formatter *units.Formatter
	Drawing   drawing.Options
	Confirmer Confirmer
	Logger    *log.Logger
}

// App is one takeoff session
type App struct {
	Catalog     *catalog.Catalog
	Project     *project.Project
	Calibration *calibration.Calibration
	Machine     *drawing.Machine
	Format      *units.Formatter
	Confirmer   Confirmer

	Plan    PlanState
	Prompt  PromptState
	History HistoryState

	log *log.Logger
}

// New creates a session. Zero options fall back to the default catalog,
// pt-BR formatting, a yes-to-everything confirmer and a silent logger.
func New(opts Options) *App {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Formatter == nil {
		opts.Formatter = units.ParseLocale("pt-BR")
	}
	if opts.Confirmer == nil {
		opts.Confirmer = AlwaysConfirm
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	p := project.New(opts.Catalog)
	calib := &calibration.Calibration{}

	return &App{
		Catalog:     opts.Catalog,
		Project:     p,
		Calibration: calib,
		Machine:     drawing.New(p, calib, opts.Formatter, opts.Drawing),
		Format:      opts.Formatter,
		Confirmer:   opts.Confirmer,
		log:         opts.Logger,
	}
}

// FromConfig creates a session from loaded configuration. Log output goes
// to w when verbose is set.
func FromConfig(cfg config.Config, confirmer Confirmer, w io.Writer) (*App, error) {
	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		var err error
		if cat, err = catalog.LoadFile(cfg.CatalogFile); err != nil {
			return nil, err
		}
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Verbose {
		logger = log.New(w, "odecam: ", log.Ltime)
	}

	return New(Options{
		Catalog:   cat,
		Formatter: units.ParseLocale(cfg.Locale),
		Drawing: drawing.Options{
			SnapThreshold: cfg.SnapThreshold,
			SnapEnabled:   cfg.SnapEnabled,
			RequireScale:  cfg.RequireScale,
		},
		Confirmer: confirmer,
		Logger:    logger,
	}), nil
}

// Logf writes to the session log
func (app *App) Logf(format string, a ...any) {
	app.log.Printf(format, a...)
}

// PendingCalibration returns the open calibration prompt
func (app *App) PendingCalibration() (CalibrationPrompt, bool) {
	if app.Prompt.calibration == nil {
		return CalibrationPrompt{}, false
	}
	return *app.Prompt.calibration, true
}

// AnswerCalibration finalizes the scale from the user's answer. On invalid
// input the prompt stays open; on success the session returns to SELECT.
func (app *App) AnswerCalibration(input string) (float64, error) {
	prompt := app.Prompt.calibration
	if prompt == nil {
		return 0, ErrNoPrompt
	}

	ppm, err := app.Calibration.FinalizeInput(prompt.Pixels, input)
	if err != nil {
		return 0, err
	}

	app.Prompt.calibration = nil
	app.Machine.SetMode(drawing.ModeSelect)
	app.log.Printf("calibrated: %s px/m", app.Format.Number(ppm))
	return ppm, nil
}

// DismissCalibration closes the prompt without changing the scale
func (app *App) DismissCalibration() {
	if app.Prompt.calibration != nil {
		app.log.Printf("calibration dismissed")
	}
	app.Prompt.calibration = nil
}

// SetHeight edits a linear material's height. Quantities pick it up on the
// next aggregation.
func (app *App) SetHeight(materialID string, height float64) error {
	mat, ok := app.Catalog.Find(materialID)
	if !ok {
		return fmt.Errorf("%w %q", catalog.ErrUnknownMaterial, materialID)
	}
	if mat.Kind != catalog.KindLinear {
		return fmt.Errorf("material %q is not linear", materialID)
	}
	if height < 0 {
		return fmt.Errorf("height must not be negative, got %v", height)
	}
	app.Catalog.UpdateHeight(materialID, height)
	app.log.Printf("height of %s set to %s m", materialID, app.Format.Number(height))
	return nil
}

// ToggleShape flips a shape's visibility
func (app *App) ToggleShape(id string) bool {
	hidden, ok := app.Project.ToggleVisibility(id)
	if ok {
		app.log.Printf("shape %s hidden=%v", id, hidden)
	}
	return ok
}

// ToggleMaterial flips visibility of every shape drawn with a material
func (app *App) ToggleMaterial(materialID string) int {
	hidden, n := app.Project.ToggleVisibilityForMaterial(materialID)
	app.log.Printf("%d shape(s) of %s hidden=%v", n, materialID, hidden)
	return n
}

// Undo removes the most recently committed shape on the active sheet
func (app *App) Undo() (project.Shape, bool) {
	s, ok := app.Project.RemoveLast()
	if ok {
		app.log.Printf("undo: removed %s", s.ID)
	}
	return s, ok
}

// RemoveMaterial asks for confirmation, then removes every shape of a
// material on every sheet. done receives the number removed.
func (app *App) RemoveMaterial(materialID string, done func(int, error)) {
	mat, ok := app.Catalog.Find(materialID)
	if !ok {
		finish(done, 0, fmt.Errorf("%w %q", catalog.ErrUnknownMaterial, materialID))
		return
	}

	app.Confirmer.Confirm(fmt.Sprintf("Remover todas as medições de %q?", mat.Name), func(yes bool) {
		if !yes {
			finish(done, 0, ErrDeclined)
			return
		}
		n := app.Project.RemoveByMaterial(materialID)
		app.log.Printf("removed %d shape(s) of %s", n, materialID)
		finish(done, n, nil)
	})
}

// Groups aggregates quantities for a scope
func (app *App) Groups(scope project.Scope) ([]quantity.Group, error) {
	return quantity.Aggregate(app.Project.Entries(scope), app.Catalog, app.Calibration)
}

// Report returns the formatted quantities table for a scope
func (app *App) Report(scope project.Scope) ([]quantity.Row, quantity.Totals, error) {
	groups, err := app.Groups(scope)
	if err != nil {
		return nil, quantity.Totals{}, err
	}
	return quantity.Report(groups, app.Format), quantity.Sum(groups), nil
}

func finish(done func(int, error), n int, err error) {
	if done != nil {
		done(n, err)
	}
}
