package app

import (
	"image"
	"image/color"

	"github.com/Mecusp/odecamtakeoff/internal/catalog"
	"github.com/Mecusp/odecamtakeoff/internal/project"
	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
	"github.com/Mecusp/odecamtakeoff/pkg/overlay"
)

const defaultStrokePixels = 3.0

var (
	pendingColor = color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 255}
	tempColor    = color.NRGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 255}
)

// OverlayItems lists what is drawn over the plan: visible shapes of the
// active sheet, then the pending capture, then the temp measurement
func (app *App) OverlayItems() []overlay.Item {
	selected, _ := app.Machine.Selected()
	var items []overlay.Item

	for _, s := range app.Project.Active().Shapes() {
		if s.Hidden {
			continue
		}
		mat, ok := app.Catalog.Find(s.MaterialID)
		if !ok {
			continue
		}

		it := overlay.Item{
			Kind:      overlayKind(s.Kind),
			Points:    s.Points,
			Stroke:    mat.RGBA(255),
			Width:     app.strokeWidth(mat),
			Highlight: s.ID == selected,
		}
		if s.Kind == catalog.KindArea {
			it.Fill = mat.RGBA(mat.FillAlpha())
		}
		it.Label, it.LabelAt = app.shapeLabel(s)
		items = append(items, it)
	}

	if pending := app.Machine.Pending(); len(pending) > 0 {
		items = append(items, overlay.Item{
			Kind:      overlay.KindLine,
			Points:    pending,
			Stroke:    pendingColor,
			Width:     2,
			Highlight: true,
		})
	}

	if t := app.Machine.Temp(); t != nil {
		it := overlay.Item{
			Kind:    overlayKind(t.Kind),
			Points:  t.Points,
			Stroke:  tempColor,
			Width:   2,
			Label:   t.Label,
			LabelAt: t.LabelPosition(),
		}
		if t.Kind == catalog.KindArea {
			it.Fill = color.NRGBA{R: tempColor.R, G: tempColor.G, B: tempColor.B, A: 50}
		}
		items = append(items, it)
	}

	return items
}

// RenderOverlay draws OverlayItems over the loaded plan
func (app *App) RenderOverlay() (*image.RGBA, error) {
	p, ok := app.CurrentPlan()
	if !ok || p.Released() {
		return nil, ErrNoPlan
	}
	return overlay.Render(p.Image, app.OverlayItems()), nil
}

// strokeWidth converts the material's real line width to image pixels.
// Points use it as the marker diameter.
func (app *App) strokeWidth(mat catalog.Material) float64 {
	if mat.LineWidth == nil {
		return defaultStrokePixels
	}
	px, ok := app.Calibration.Pixels(*mat.LineWidth)
	if !ok {
		return defaultStrokePixels
	}
	if mat.Kind == catalog.KindPoint {
		return px / 2
	}
	return px
}

// shapeLabel returns the measured value of a shape and where to show it.
// Points and uncalibrated plans get no label.
func (app *App) shapeLabel(s project.Shape) (string, geometry.Point) {
	switch s.Kind {
	case catalog.KindArea:
		if m2, ok := app.Calibration.Area(s.PixelArea()); ok {
			return app.Format.SquareMeters(m2), geometry.Centroid(s.Points)
		}
	case catalog.KindLinear:
		if m, ok := app.Calibration.Length(s.PixelLength()); ok {
			mid := len(s.Points) / 2
			return app.Format.Meters(m), s.Points[mid-1].Midpoint(s.Points[mid])
		}
	}
	return "", geometry.Point{}
}

func overlayKind(k catalog.GeometryKind) overlay.Kind {
	switch k {
	case catalog.KindArea:
		return overlay.KindArea
	case catalog.KindLinear:
		return overlay.KindLine
	}
	return overlay.KindPoint
}
