// Package viewer provides a pan and zoom fyne widget that shows a plan
// image and reports pointer events in image pixel coordinates.
package viewer

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

// PointerFunc receives an image position and whether the snap toggle
// modifier (shift) was held
type PointerFunc func(p geometry.Point, toggle bool)

// Rubber is the live segment from the last placed point to the pointer
type Rubber struct {
	From, To geometry.Point
	Label    string
	Visible  bool
}

var (
	rubberColor     = color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 255}
	backgroundColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
)

// PlanView shows a plan image with the takeoff overlay baked in
type PlanView struct {
	widget.BaseWidget

	OnTapped       PointerFunc
	OnDoubleTapped PointerFunc
	OnMoved        PointerFunc

	viewport *Viewport
	img      image.Image
	rubber   Rubber
	needsFit bool
	toggle   bool
	size     fyne.Size
}

// NewPlanView creates an empty plan view
func NewPlanView() *PlanView {
	v := &PlanView{viewport: NewViewport()}
	v.ExtendBaseWidget(v)
	return v
}

// Viewport returns the current screen transform
func (v *PlanView) Viewport() *Viewport {
	return v.viewport
}

// SetImage replaces the displayed image. refit recenters the view, used
// when a new plan is loaded rather than the overlay redrawn.
func (v *PlanView) SetImage(img image.Image, refit bool) {
	v.img = img
	if refit {
		v.needsFit = true
	}
	v.Refresh()
}

// SetRubber updates the live segment
func (v *PlanView) SetRubber(r Rubber) {
	v.rubber = r
	v.Refresh()
}

// CreateRenderer creates the renderer for the widget
func (v *PlanView) CreateRenderer() fyne.WidgetRenderer {
	r := &planViewRenderer{
		view:       v,
		background: canvas.NewRectangle(backgroundColor),
		image:      canvas.NewImageFromImage(nil),
		line:       canvas.NewLine(rubberColor),
		label:      canvas.NewText("", color.White),
		labelBox:   canvas.NewRectangle(color.NRGBA{R: 20, G: 20, B: 20, A: 220}),
	}
	r.image.FillMode = canvas.ImageFillStretch
	r.image.ScaleMode = canvas.ImageScalePixels
	r.line.StrokeWidth = 2
	r.label.TextSize = 12
	return r
}

// Tapped reports a click
func (v *PlanView) Tapped(event *fyne.PointEvent) {
	v.emit(v.OnTapped, event.Position)
}

// DoubleTapped reports a double click
func (v *PlanView) DoubleTapped(event *fyne.PointEvent) {
	v.emit(v.OnDoubleTapped, event.Position)
}

// MouseIn implements desktop.Hoverable
func (v *PlanView) MouseIn(event *desktop.MouseEvent) {
	v.MouseMoved(event)
}

// MouseMoved reports the pointer position
func (v *PlanView) MouseMoved(event *desktop.MouseEvent) {
	v.toggle = event.Modifier&fyne.KeyModifierShift != 0
	v.emit(v.OnMoved, event.Position)
}

// MouseOut hides the live segment
func (v *PlanView) MouseOut() {
	v.rubber.Visible = false
	v.Refresh()
}

// MouseDown records the modifier state for the following tap
func (v *PlanView) MouseDown(event *desktop.MouseEvent) {
	v.toggle = event.Modifier&fyne.KeyModifierShift != 0
}

// MouseUp implements desktop.Mouseable
func (v *PlanView) MouseUp(*desktop.MouseEvent) {}

// Dragged pans the view
func (v *PlanView) Dragged(event *fyne.DragEvent) {
	v.viewport.Pan(float64(event.Dragged.DX), float64(event.Dragged.DY))
	v.Refresh()
}

// DragEnd implements fyne.Draggable
func (v *PlanView) DragEnd() {}

// Scrolled zooms around the pointer
func (v *PlanView) Scrolled(event *fyne.ScrollEvent) {
	factor := math.Pow(1.0015, float64(event.Scrolled.DY))
	v.viewport.ZoomAt(screenPoint(event.Position), factor)
	v.Refresh()
}

func (v *PlanView) emit(fn PointerFunc, pos fyne.Position) {
	if fn == nil || v.img == nil {
		return
	}
	fn(v.viewport.ToImage(screenPoint(pos)), v.toggle)
}

func screenPoint(pos fyne.Position) geometry.Point {
	return geometry.NewPoint(float64(pos.X), float64(pos.Y))
}

func fynePos(p geometry.Point) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

// planViewRenderer implements fyne.WidgetRenderer
type planViewRenderer struct {
	view       *PlanView
	background *canvas.Rectangle
	image      *canvas.Image
	line       *canvas.Line
	label      *canvas.Text
	labelBox   *canvas.Rectangle
}

func (r *planViewRenderer) Layout(size fyne.Size) {
	v := r.view
	v.size = size
	r.background.Resize(size)

	if v.img != nil && v.needsFit && size.Width > 0 {
		b := v.img.Bounds()
		v.viewport.Fit(float64(b.Dx()), float64(b.Dy()), float64(size.Width), float64(size.Height))
		v.needsFit = false
	}
	r.place()
}

func (r *planViewRenderer) place() {
	v := r.view

	if v.img != nil {
		b := v.img.Bounds()
		r.image.Move(fynePos(v.viewport.ToScreen(geometry.Point{})))
		r.image.Resize(fyne.NewSize(float32(float64(b.Dx())*v.viewport.Zoom), float32(float64(b.Dy())*v.viewport.Zoom)))
	}

	rb := v.rubber
	r.line.Hidden = !rb.Visible
	r.label.Hidden = !rb.Visible || rb.Label == ""
	r.labelBox.Hidden = r.label.Hidden
	if !rb.Visible {
		return
	}

	from, to := v.viewport.ToScreen(rb.From), v.viewport.ToScreen(rb.To)
	r.line.Position1, r.line.Position2 = fynePos(from), fynePos(to)

	r.label.Text = rb.Label
	textSize := r.label.MinSize()
	at := fynePos(to).Add(fyne.NewPos(12, -textSize.Height-8))
	r.label.Move(at)
	r.labelBox.Move(at.Subtract(fyne.NewPos(4, 2)))
	r.labelBox.Resize(textSize.Add(fyne.NewSize(8, 4)))
}

func (r *planViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *planViewRenderer) Refresh() {
	if r.image.Image != r.view.img {
		r.image.Image = r.view.img
	}
	if r.view.needsFit {
		r.Layout(r.view.size)
	} else {
		r.place()
	}
	for _, o := range r.Objects() {
		canvas.Refresh(o)
	}
}

func (r *planViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.image, r.line, r.labelBox, r.label}
}

func (r *planViewRenderer) Destroy() {}
