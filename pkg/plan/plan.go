// Package plan decodes the base image a takeoff is drawn on.
package plan

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupported is returned for files that cannot be used as a plan
var ErrUnsupported = errors.New("unsupported plan format")

var extensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Plan is a decoded base image. Release it when another plan replaces it.
type Plan struct {
	Path   string
	Format string
	Image  image.Image
	Width  int
	Height int
}

// New wraps an already decoded image
func New(name string, img image.Image) *Plan {
	b := img.Bounds()
	return &Plan{
		Path:   name,
		Format: "memory",
		Image:  img,
		Width:  b.Dx(),
		Height: b.Dy(),
	}
}

// Load opens and decodes a plan image from disk
func Load(path string) (*Plan, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".pdf" {
		return nil, fmt.Errorf("%w: export the PDF page to PNG first (%s)", ErrUnsupported, path)
	}
	if !extensions[ext] {
		return nil, fmt.Errorf("%w: %s (expected png, jpeg, gif, bmp, tiff or webp)", ErrUnsupported, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan: %w", err)
	}
	defer f.Close()

	return Decode(f, path)
}

// Decode reads an image in any registered format
func Decode(r io.Reader, name string) (*Plan, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	p := New(name, img)
	p.Format = format
	if p.Width == 0 || p.Height == 0 {
		return nil, fmt.Errorf("%w: %s has no pixels", ErrUnsupported, name)
	}
	return p, nil
}

// Release drops the decoded pixels. The plan keeps its dimensions.
func (p *Plan) Release() {
	if p == nil {
		return
	}
	p.Image = nil
}

// Released reports whether Release has been called
func (p *Plan) Released() bool {
	return p.Image == nil
}
