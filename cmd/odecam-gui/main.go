package main

import (
	"errors"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/Mecusp/odecamtakeoff/internal/app"
	"github.com/Mecusp/odecamtakeoff/internal/config"
	"github.com/Mecusp/odecamtakeoff/internal/drawing"
	"github.com/Mecusp/odecamtakeoff/internal/project"
	"github.com/Mecusp/odecamtakeoff/internal/quantity"
	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
	"github.com/Mecusp/odecamtakeoff/pkg/viewer"
)

var modeLabels = []string{"Selecionar", "Calibrar", "Desenhar"}

var modeByLabel = map[string]drawing.Mode{
	"Selecionar": drawing.ModeSelect,
	"Calibrar":   drawing.ModeCalibrate,
	"Desenhar":   drawing.ModeDraw,
}

type GUI struct {
	window  fyne.Window
	session *app.App
	scope   project.Scope

	view      *viewer.PlanView
	modes     *widget.RadioGroup
	materials *widget.Select
	sheets    *widget.Select
	heightBox *widget.Entry
	status    *widget.Label
	quantity  *QuantityPanel

	materialIDs map[string]string // display name to id
	syncing     bool
}

// dialogConfirmer asks yes/no questions with a fyne dialog
type dialogConfirmer struct {
	window fyne.Window
}

func (d dialogConfirmer) Confirm(prompt string, answer func(bool)) {
	dialog.ShowConfirm("Confirmar", prompt, answer, d.window)
}

func main() {
	a := fyneapp.NewWithID("br.com.odecam.takeoff")
	w := a.NewWindow("ODECAM - Levantamento de Quantitativos")

	if err := config.ReadIn(""); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	scope, err := project.ParseScope(cfg.Scope)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	session, err := app.FromConfig(cfg, dialogConfirmer{window: w}, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	g := &GUI{window: w, session: session, scope: scope}
	g.setupMainUI()

	if len(os.Args) > 1 {
		g.loadFile(os.Args[1])
	}

	w.Resize(fyne.NewSize(1400, 900))
	w.ShowAndRun()
}

func (g *GUI) setupMainUI() {
	g.view = viewer.NewPlanView()
	g.view.OnTapped = func(p geometry.Point, toggle bool) {
		g.after(g.session.Click(p, drawing.Modifiers{SnapToggle: toggle}))
	}
	g.view.OnDoubleTapped = func(p geometry.Point, toggle bool) {
		g.after(g.session.DoubleClick(p, drawing.Modifiers{SnapToggle: toggle}))
	}
	g.view.OnMoved = func(p geometry.Point, toggle bool) {
		pv := g.session.Move(p, drawing.Modifiers{SnapToggle: toggle})
		g.view.SetRubber(viewer.Rubber{From: pv.Anchor, To: pv.Position, Label: pv.Label, Visible: pv.HasAnchor})
	}

	g.modes = widget.NewRadioGroup(modeLabels, func(label string) {
		if g.syncing || label == "" {
			return
		}
		g.session.SetMode(modeByLabel[label])
		g.refresh()
	})
	g.modes.Horizontal = true

	g.materialIDs = make(map[string]string)
	var names []string
	for _, m := range g.session.Catalog.List() {
		g.materialIDs[m.Name] = m.ID
		names = append(names, m.Name)
	}
	g.materials = widget.NewSelect(names, func(name string) {
		if g.syncing {
			return
		}
		if err := g.session.SelectMaterial(g.materialIDs[name]); err != nil {
			g.showError(err)
		}
		g.refresh()
	})
	g.materials.PlaceHolder = "Material"

	snap := widget.NewCheck("Snap", func(on bool) {
		g.session.Machine.SetSnapEnabled(on)
	})
	snap.SetChecked(g.session.Machine.SnapEnabled())

	g.heightBox = widget.NewEntry()
	g.heightBox.SetPlaceHolder("Altura (m)")
	heightButton := widget.NewButton("Aplicar altura", g.applyHeight)

	hideMaterial := widget.NewButton("Ocultar/mostrar material", func() {
		if id, ok := g.currentMaterial(); ok {
			g.session.ToggleMaterial(id)
			g.refresh()
		}
	})
	removeMaterial := widget.NewButton("Remover material", func() {
		id, ok := g.currentMaterial()
		if !ok {
			return
		}
		g.session.RemoveMaterial(id, func(_ int, err error) {
			g.report(err)
		})
	})

	g.sheets = widget.NewSelect(nil, func(name string) {
		if g.syncing {
			return
		}
		for _, s := range g.session.Project.Sheets() {
			if s.Name == name {
				g.report(g.session.UseSheet(s.ID))
				return
			}
		}
	})

	scopeSelect := widget.NewSelect([]string{"project", "active"}, func(s string) {
		if scope, err := project.ParseScope(s); err == nil {
			g.scope = scope
			g.refresh()
		}
	})
	scopeSelect.Selected = g.scope.String()

	g.status = widget.NewLabel("")
	g.status.Wrapping = fyne.TextWrapWord
	g.quantity = NewQuantityPanel()

	toolbar := container.NewHBox(
		widget.NewButton("Abrir planta", g.showFileDialog),
		widget.NewSeparator(),
		g.modes,
		widget.NewSeparator(),
		snap,
		layout.NewSpacer(),
		widget.NewButton("Desfazer", g.undo),
	)

	sidePanel := container.NewVBox(
		widget.NewLabel("Material:"),
		g.materials,
		container.NewGridWithColumns(2, g.heightBox, heightButton),
		hideMaterial,
		removeMaterial,
		widget.NewSeparator(),
		widget.NewLabel("Folhas:"),
		g.sheets,
		container.NewGridWithColumns(2,
			widget.NewButton("Nova", g.newSheet),
			widget.NewButton("Renomear", g.renameSheet),
			widget.NewButton("Excluir", g.deleteSheet),
			widget.NewButton("Limpar", g.clearSheet),
		),
		widget.NewSeparator(),
		widget.NewLabel("Quantitativos:"),
		scopeSelect,
	)

	right := container.NewBorder(sidePanel, g.status, nil, nil, g.quantity.Table())
	split := container.NewHSplit(g.view, right)
	split.Offset = 0.72

	g.window.SetContent(container.NewBorder(toolbar, nil, nil, nil, split))
	g.setupKeys()
	g.refresh()
}

func (g *GUI) setupKeys() {
	c := g.window.Canvas()
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			g.session.Escape()
		case fyne.KeyReturn, fyne.KeyEnter:
			g.after(g.session.Enter())
			return
		case fyne.KeyDelete, fyne.KeyBackspace:
			g.session.Delete()
		default:
			return
		}
		g.refresh()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		g.undo()
	})
}

func (g *GUI) showFileDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			g.showError(err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		g.loadFile(reader.URI().Path())
	}, g.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}))
	d.Show()
}

func (g *GUI) loadFile(filename string) {
	if err := g.session.LoadImageFile(filename); err != nil {
		g.showError(fmt.Errorf("failed to load plan: %w", err))
		return
	}
	if img, err := g.session.RenderOverlay(); err == nil {
		g.view.SetImage(img, true)
	}
	g.window.SetTitle("ODECAM - " + filename)
	g.refresh()
}

// after reacts to a pointer or key event: errors are shown and a captured
// calibration segment opens the scale dialog
func (g *GUI) after(_ drawing.Outcome, err error) {
	if err != nil {
		g.showError(err)
	}
	if _, ok := g.session.PendingCalibration(); ok {
		g.askCalibration()
	}
	g.refresh()
}

func (g *GUI) askCalibration() {
	prompt, ok := g.session.PendingCalibration()
	if !ok {
		return
	}

	entry := widget.NewEntry()
	entry.SetPlaceHolder("ex.: 3,50")
	items := []*widget.FormItem{widget.NewFormItem("Medida real (m)", entry)}
	items[0].HintText = prompt.Message(g.session.Format)

	dialog.ShowForm("Calibração", "OK", "Cancelar", items, func(ok bool) {
		if !ok {
			g.session.DismissCalibration()
			g.refresh()
			return
		}
		if _, err := g.session.AnswerCalibration(entry.Text); err != nil {
			// the prompt stays open until a valid answer or cancel
			dialog.ShowError(err, g.window)
			g.askCalibration()
			return
		}
		g.refresh()
	}, g.window)
}

func (g *GUI) applyHeight() {
	id, ok := g.currentMaterial()
	if !ok {
		return
	}
	h, err := parseHeight(g.heightBox.Text)
	if err == nil {
		err = g.session.SetHeight(id, h)
	}
	g.report(err)
}

func (g *GUI) undo() {
	g.session.Undo()
	g.refresh()
}

func (g *GUI) newSheet() {
	g.session.CreateSheet("")
	g.refresh()
}

func (g *GUI) renameSheet() {
	active := g.session.Project.Active()
	entry := widget.NewEntry()
	entry.SetText(active.Name)
	dialog.ShowForm("Renomear folha", "OK", "Cancelar", []*widget.FormItem{widget.NewFormItem("Nome", entry)}, func(ok bool) {
		if ok {
			g.report(g.session.RenameSheet(active.ID, entry.Text))
		}
	}, g.window)
}

func (g *GUI) deleteSheet() {
	g.session.DeleteSheet(g.session.Project.ActiveID(), g.report)
}

func (g *GUI) clearSheet() {
	g.session.ClearSheet(func(_ int, err error) {
		g.report(err)
	})
}

func (g *GUI) currentMaterial() (string, bool) {
	id, ok := g.materialIDs[g.materials.Selected]
	return id, ok
}

// report shows err unless the user simply declined, then refreshes
func (g *GUI) report(err error) {
	if err != nil && !errors.Is(err, app.ErrDeclined) {
		g.showError(err)
	}
	g.refresh()
}

func (g *GUI) showError(err error) {
	dialog.ShowError(err, g.window)
}

// refresh brings every widget in line with the session
func (g *GUI) refresh() {
	g.syncing = true
	defer func() { g.syncing = false }()

	if img, err := g.session.RenderOverlay(); err == nil {
		g.view.SetImage(img, false)
	}

	mode := g.session.Machine.Mode()
	g.modes.SetSelected(modeLabels[mode])

	if m, ok := g.session.Machine.Material(); ok {
		g.materials.SetSelected(m.Name)
	} else {
		g.materials.ClearSelected()
	}

	var names []string
	for _, s := range g.session.Project.Sheets() {
		names = append(names, s.Name)
	}
	g.sheets.Options = names
	g.sheets.SetSelected(g.session.Project.Active().Name)

	groups, err := g.session.Groups(g.scope)
	switch {
	case errors.Is(err, quantity.ErrNotCalibrated):
		g.quantity.SetRows(nil)
		g.status.SetText("Calibre a planta para ver os quantitativos.")
	case err != nil:
		g.status.SetText(err.Error())
	default:
		g.quantity.SetRows(quantity.Report(groups, g.session.Format))
		g.status.SetText(g.statusText(mode))
	}
}

func (g *GUI) statusText(mode drawing.Mode) string {
	text := fmt.Sprintf("Modo: %s", modeLabels[mode])
	if id, ok := g.session.Machine.Selected(); ok {
		if s, _, found := g.session.Project.FindShape(id); found {
			text += fmt.Sprintf(" | Selecionado: %s", s.MaterialID)
		}
	}
	if t := g.session.Machine.Temp(); t != nil {
		text += " | Medida: " + t.Label
	}
	return text
}
