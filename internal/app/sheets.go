package app

import (
	"fmt"

	"github.com/Mecusp/odecamtakeoff/internal/project"
)

// CreateSheet adds a sheet and makes it active. In-progress points belong
// to the previous sheet and are dropped.
func (app *App) CreateSheet(name string) *project.Sheet {
	app.dropTransient()
	s := app.Project.CreateSheet(name)
	app.log.Printf("sheet %q created", s.Name)
	return s
}

// UseSheet activates a sheet
func (app *App) UseSheet(id string) error {
	if err := app.Project.SetActive(id); err != nil {
		return err
	}
	app.dropTransient()
	return nil
}

// RenameSheet renames a sheet; blank names are ignored
func (app *App) RenameSheet(id, name string) error {
	if app.Project.Sheet(id) == nil {
		return fmt.Errorf("%w %q", project.ErrUnknownSheet, id)
	}
	app.Project.RenameSheet(id, name)
	return nil
}

// DeleteSheet asks for confirmation, then deletes a sheet and its shapes.
// Deleting the last sheet fails without asking.
func (app *App) DeleteSheet(id string, done func(error)) {
	s := app.Project.Sheet(id)
	switch {
	case s == nil:
		finishErr(done, fmt.Errorf("%w %q", project.ErrUnknownSheet, id))
		return
	case len(app.Project.Sheets()) == 1:
		finishErr(done, project.ErrLastSheet)
		return
	}

	prompt := fmt.Sprintf("Excluir a folha %q e suas %d medições?", s.Name, s.Len())
	app.Confirmer.Confirm(prompt, func(yes bool) {
		if !yes {
			finishErr(done, ErrDeclined)
			return
		}
		wasActive := id == app.Project.ActiveID()
		if err := app.Project.DeleteSheet(id); err != nil {
			finishErr(done, err)
			return
		}
		if wasActive {
			app.dropTransient()
		}
		app.log.Printf("sheet %q deleted", s.Name)
		finishErr(done, nil)
	})
}

// ClearSheet asks for confirmation, then removes every shape on the active
// sheet. done receives the number removed.
func (app *App) ClearSheet(done func(int, error)) {
	s := app.Project.Active()
	app.Confirmer.Confirm(fmt.Sprintf("Limpar todas as medições da folha %q?", s.Name), func(yes bool) {
		if !yes {
			finish(done, 0, ErrDeclined)
			return
		}
		n := app.Project.ClearSheet()
		app.log.Printf("cleared %d shape(s) from %q", n, s.Name)
		finish(done, n, nil)
	})
}

// dropTransient discards pending points and temp measurements, keeping
// the current mode
func (app *App) dropTransient() {
	app.Machine.SetMode(app.Machine.Mode())
}

func finishErr(done func(error), err error) {
	if done != nil {
		done(err)
	}
}
