package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Mecusp/odecamtakeoff/internal/calibration"
	"github.com/Mecusp/odecamtakeoff/internal/catalog"
	"github.com/Mecusp/odecamtakeoff/internal/drawing"
	"github.com/Mecusp/odecamtakeoff/internal/project"
	"github.com/Mecusp/odecamtakeoff/pkg/script"
)

// ReplayError ties a failure to the script line that caused it
type ReplayError struct {
	Line int
	Op   script.Op
	Err  error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Op, e.Err)
}

func (e *ReplayError) Unwrap() error {
	return e.Err
}

// recoverable errors are the ones a user sees in the UI and carries on
// after; replay logs them and continues
func recoverable(err error) bool {
	return errors.Is(err, calibration.ErrInvalidInput) ||
		errors.Is(err, drawing.ErrNoScale) ||
		errors.Is(err, project.ErrLastSheet) ||
		errors.Is(err, ErrDeclined)
}

// Replay feeds script events through the session in order. Relative image
// paths are resolved against baseDir. Recoverable failures are returned as
// warnings; any other failure stops the replay.
func (app *App) Replay(events []script.Event, baseDir string) ([]error, error) {
	confirmer := &DeferredConfirmer{}
	saved := app.Confirmer
	app.Confirmer = confirmer
	defer func() { app.Confirmer = saved }()

	var warnings []error
	var fatal error
	report := func(ev script.Event, err error) {
		if err == nil {
			return
		}
		wrapped := &ReplayError{Line: ev.Line, Op: ev.Op, Err: err}
		if recoverable(err) {
			app.log.Printf("%v", wrapped)
			warnings = append(warnings, wrapped)
			return
		}
		if fatal == nil {
			fatal = wrapped
		}
	}

	for _, ev := range events {
		report(ev, app.apply(ev, baseDir, confirmer, report))
		if fatal != nil {
			return warnings, fatal
		}
	}
	return warnings, nil
}

func (app *App) apply(ev script.Event, baseDir string, confirmer *DeferredConfirmer, report func(script.Event, error)) error {
	mods := drawing.Modifiers{SnapToggle: ev.Toggle}
	later := func(_ int, err error) { report(ev, err) }

	switch ev.Op {
	case script.OpImage:
		path := ev.Text
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		return app.LoadImageFile(path)

	case script.OpMode:
		mode, err := drawing.ParseMode(ev.Text)
		if err != nil {
			return err
		}
		app.SetMode(mode)

	case script.OpMaterial:
		return app.SelectMaterial(ev.Text)

	case script.OpClick:
		_, err := app.Click(ev.Point, mods)
		return err

	case script.OpDoubleClick:
		_, err := app.DoubleClick(ev.Point, mods)
		return err

	case script.OpMove:
		pv := app.Move(ev.Point, mods)
		if pv.Label != "" {
			app.log.Printf("preview %s", pv.Label)
		}

	case script.OpEnter:
		_, err := app.Enter()
		return err

	case script.OpEscape:
		app.Escape()

	case script.OpDelete:
		app.Delete()

	case script.OpUndo:
		app.Undo()

	case script.OpAnswer:
		_, err := app.AnswerCalibration(ev.Text)
		return err

	case script.OpDismiss:
		app.DismissCalibration()

	case script.OpConfirm:
		return confirmer.Resolve(ev.Flag)

	case script.OpSnap:
		app.Machine.SetSnapEnabled(ev.Flag)

	case script.OpHeight:
		return app.SetHeight(ev.Text, ev.Value)

	case script.OpHide:
		id, err := app.shapeRef(ev.Text)
		if err != nil {
			return err
		}
		app.ToggleShape(id)

	case script.OpHideMaterial:
		if _, ok := app.Catalog.Find(ev.Text); !ok {
			return fmt.Errorf("%w %q", catalog.ErrUnknownMaterial, ev.Text)
		}
		app.ToggleMaterial(ev.Text)

	case script.OpRemoveMaterial:
		app.RemoveMaterial(ev.Text, later)

	case script.OpSelect:
		id, err := app.shapeRef(ev.Text)
		if err != nil {
			return err
		}
		app.SelectShape(id)

	case script.OpSheet:
		return app.applySheet(ev, later)

	default:
		return fmt.Errorf("unsupported event %q", ev.Op)
	}
	return nil
}

func (app *App) applySheet(ev script.Event, later func(int, error)) error {
	switch ev.Sub {
	case script.SheetNew:
		app.CreateSheet(ev.Name)
		return nil
	case script.SheetClear:
		app.ClearSheet(later)
		return nil
	}

	id, err := app.sheetRef(ev.Text)
	if err != nil {
		return err
	}

	switch ev.Sub {
	case script.SheetRename:
		return app.RenameSheet(id, ev.Name)
	case script.SheetUse:
		return app.UseSheet(id)
	case script.SheetDelete:
		app.DeleteSheet(id, func(err error) { later(0, err) })
		return nil
	}
	return fmt.Errorf("unsupported sheet subcommand %q", ev.Sub)
}

// shapeRef resolves "last", "@N" (the Nth committed shape) or a shape id
func (app *App) shapeRef(ref string) (string, error) {
	committed := app.History.committed

	switch {
	case ref == "last":
		for i := len(committed) - 1; i >= 0; i-- {
			if _, _, ok := app.Project.FindShape(committed[i]); ok {
				return committed[i], nil
			}
		}
		return "", errors.New("no committed shape to refer to")

	case strings.HasPrefix(ref, "@"):
		n, err := strconv.Atoi(ref[1:])
		if err != nil || n < 1 || n > len(committed) {
			return "", fmt.Errorf("invalid shape reference %q", ref)
		}
		id := committed[n-1]
		if _, _, ok := app.Project.FindShape(id); !ok {
			return "", fmt.Errorf("shape %s no longer exists", ref)
		}
		return id, nil
	}

	if _, _, ok := app.Project.FindShape(ref); !ok {
		return "", fmt.Errorf("unknown shape %q", ref)
	}
	return ref, nil
}

// sheetRef resolves a 1-based sheet position, a sheet name or a sheet id
func (app *App) sheetRef(ref string) (string, error) {
	sheets := app.Project.Sheets()

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(sheets) {
			return "", fmt.Errorf("%w: no sheet at position %d", project.ErrUnknownSheet, n)
		}
		return sheets[n-1].ID, nil
	}
	for _, s := range sheets {
		if s.Name == ref || s.ID == ref {
			return s.ID, nil
		}
	}
	return "", fmt.Errorf("%w %q", project.ErrUnknownSheet, ref)
}
