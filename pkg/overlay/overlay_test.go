package overlay

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/Mecusp/odecamtakeoff/pkg/geometry"
)

func whitePlan(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func pt(x, y float64) geometry.Point {
	return geometry.NewPoint(x, y)
}

func TestRenderLine(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	out := Render(whitePlan(100, 100), []Item{{
		Kind:   KindLine,
		Points: []geometry.Point{pt(10, 50), pt(90, 50)},
		Stroke: red,
		Width:  4,
	}})

	if got := out.RGBAAt(50, 50); got.R < 250 || got.G > 5 || got.B > 5 {
		t.Errorf("expected red on the stroke, got %v", got)
	}
	if got := out.RGBAAt(50, 80); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("expected untouched background, got %v", got)
	}
}

func TestRenderAreaFill(t *testing.T) {
	out := Render(whitePlan(100, 100), []Item{{
		Kind:   KindArea,
		Points: []geometry.Point{pt(20, 20), pt(80, 20), pt(80, 80), pt(20, 80)},
		Stroke: color.NRGBA{B: 255, A: 255},
		Fill:   color.NRGBA{B: 255, A: 64},
		Width:  2,
	}})

	c := out.RGBAAt(50, 50)
	if c.B < 250 || c.R < 150 || c.R > 220 {
		t.Errorf("expected translucent blue fill, got %v", c)
	}
	if edge := out.RGBAAt(50, 20); edge.R > 10 || edge.B < 250 {
		t.Errorf("expected opaque blue edge, got %v", edge)
	}
}

func TestRenderPointAndHighlight(t *testing.T) {
	green := color.NRGBA{G: 200, A: 255}
	out := Render(whitePlan(50, 50), []Item{{
		Kind:      KindPoint,
		Points:    []geometry.Point{pt(25, 25)},
		Stroke:    green,
		Width:     8,
		Highlight: true,
	}})

	if got := out.RGBAAt(25, 25); got.R < 250 || got.G < 250 || got.B > 5 {
		t.Errorf("expected yellow handle over the marker, got %v", got)
	}
	if got := out.RGBAAt(25, 31); got.G < 195 || got.G > 205 || got.R > 5 {
		t.Errorf("expected marker color around the handle, got %v", got)
	}
}

func TestRenderDoesNotModifyBase(t *testing.T) {
	base := whitePlan(30, 30)
	Render(base, []Item{{Kind: KindLine, Points: []geometry.Point{pt(0, 15), pt(30, 15)}, Stroke: color.NRGBA{A: 255}, Label: "3,00 m", LabelAt: pt(15, 15)}})

	if got := base.RGBAAt(15, 15); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("base image was modified: %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	out := Render(whitePlan(60, 40), []Item{{
		Kind:    KindLine,
		Points:  []geometry.Point{pt(5, 30), pt(55, 30)},
		Stroke:  color.NRGBA{R: 255, A: 255},
		Label:   "12,50 m²",
		LabelAt: pt(30, 30),
	}})

	var buf bytes.Buffer
	if err := WritePNG(&buf, out); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 40 {
		t.Errorf("unexpected size %v", img.Bounds())
	}
}
