// Package overlay rasterizes takeoff shapes on top of a plan image.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

// Kind selects how an item is drawn
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindArea
)

// Item is one shape to draw, in image pixel coordinates
type Item struct {
	Kind      Kind
	Points    []geometry.Point
	Stroke    color.NRGBA
	Fill      color.NRGBA // areas only; zero alpha skips the fill
	Width     float64     // stroke width or marker radius in pixels
	Label     string
	LabelAt   geometry.Point
	Highlight bool // draw vertex handles
}

const (
	minWidth    = 1.5
	minRadius   = 4.0
	handleSize  = 3.0
	discSides   = 16
	labelPadX   = 4
	labelHeight = 17
)

var (
	labelBackground = color.NRGBA{R: 20, G: 20, B: 20, A: 220}
	labelText       = color.White
	handleColor     = color.NRGBA{R: 255, G: 255, B: 0, A: 255}
)

// Render draws items over a copy of base in order
func Render(base image.Image, items []Item) *image.RGBA {
	b := base.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, base, b, draw.Src, nil)

	r := &renderer{
		dst:    dst,
		raster: vector.NewRasterizer(b.Dx(), b.Dy()),
	}

	for _, it := range items {
		r.item(it)
	}
	// labels go last so shapes never cover them
	for _, it := range items {
		if it.Label != "" {
			r.label(it.Label, it.LabelAt)
		}
	}
	return dst
}

// WritePNG encodes an image as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode overlay: %w", err)
	}
	return nil
}

// SavePNG writes an image to a PNG file
func SavePNG(filename string, img image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type renderer struct {
	dst    *image.RGBA
	raster *vector.Rasterizer
}

func (r *renderer) item(it Item) {
	if len(it.Points) == 0 {
		return
	}
	width := math.Max(it.Width, minWidth)

	switch it.Kind {
	case KindPoint:
		r.disc(it.Points[0], math.Max(it.Width, minRadius), it.Stroke)
	case KindArea:
		if it.Fill.A > 0 {
			r.polygon(it.Points, it.Fill)
		}
		r.polyline(it.Points, true, width, it.Stroke)
	default:
		r.polyline(it.Points, false, width, it.Stroke)
	}

	if it.Highlight {
		for _, p := range it.Points {
			r.square(p, handleSize, handleColor)
		}
	}
}

func (r *renderer) fill(c color.Color) {
	r.raster.Draw(r.dst, r.dst.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *renderer) reset() {
	b := r.dst.Bounds()
	r.raster.Reset(b.Dx(), b.Dy())
}

func (r *renderer) polygon(points []geometry.Point, c color.Color) {
	r.reset()
	r.raster.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		r.raster.LineTo(float32(p.X), float32(p.Y))
	}
	r.raster.ClosePath()
	r.fill(c)
}

// polyline strokes each segment as a quad and rounds the joints
func (r *renderer) polyline(points []geometry.Point, closed bool, width float64, c color.Color) {
	n := len(points)
	segments := n - 1
	if closed && n > 2 {
		segments = n
	}

	for i := 0; i < segments; i++ {
		r.segment(points[i], points[(i+1)%n], width, c)
	}
	if n > 2 || closed {
		for _, p := range points {
			r.disc(p, width/2, c)
		}
	}
}

func (r *renderer) segment(a, b geometry.Point, width float64, c color.Color) {
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		return
	}
	// unit normal scaled to half the width
	n := geometry.NewPoint(-d.Y, d.X).Mul(width / 2 / length)

	r.polygon([]geometry.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, c)
}

func (r *renderer) disc(center geometry.Point, radius float64, c color.Color) {
	points := make([]geometry.Point, discSides)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / discSides
		points[i] = center.Add(geometry.NewPoint(math.Cos(angle), math.Sin(angle)).Mul(radius))
	}
	r.polygon(points, c)
}

func (r *renderer) square(center geometry.Point, half float64, c color.Color) {
	r.polygon([]geometry.Point{
		center.Add(geometry.NewPoint(-half, -half)),
		center.Add(geometry.NewPoint(half, -half)),
		center.Add(geometry.NewPoint(half, half)),
		center.Add(geometry.NewPoint(-half, half)),
	}, c)
}

// label draws text centered above at inside a dark box
func (r *renderer) label(text string, at geometry.Point) {
	d := &font.Drawer{Dst: r.dst, Src: image.NewUniform(labelText), Face: basicfont.Face7x13}
	width := d.MeasureString(text).Ceil()

	x := int(at.X) - width/2
	y := int(at.Y) - labelHeight - 4
	box := image.Rect(x-labelPadX, y, x+width+labelPadX, y+labelHeight)
	draw.Draw(r.dst, box, image.NewUniform(labelBackground), image.Point{}, draw.Over)

	d.Dot = fixed.P(x, y+13)
	d.DrawString(text)
}
