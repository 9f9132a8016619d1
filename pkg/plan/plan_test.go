package plan

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return img
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(40, 30)); err != nil {
		t.Fatal(err)
	}

	p, err := Decode(&buf, "planta.png")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if p.Width != 40 || p.Height != 30 || p.Format != "png" {
		t.Errorf("unexpected plan %+v", p)
	}
}

func TestLoadBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planta.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, testImage(12, 8)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Width != 12 || p.Height != 8 || p.Format != "bmp" {
		t.Errorf("unexpected plan %+v", p)
	}
}

func TestLoadRejectsUnsupported(t *testing.T) {
	for _, name := range []string{"planta.pdf", "planta.dwg", "planta"} {
		if _, err := Load(filepath.Join(t.TempDir(), name)); !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s: expected ErrUnsupported, got %v", name, err)
		}
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image")), "x.png"); err == nil {
		t.Error("expected decode error")
	}
}

func TestRelease(t *testing.T) {
	p := New("mem", testImage(5, 5))
	if p.Released() {
		t.Fatal("fresh plan must not be released")
	}
	p.Release()
	if !p.Released() || p.Width != 5 {
		t.Errorf("release must drop pixels but keep dimensions: %+v", p)
	}

	var none *Plan
	none.Release()
}
