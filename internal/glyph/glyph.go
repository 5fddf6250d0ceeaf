// Package glyph rasterises single lines of text with OpenType fonts.
package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the pixel size used when none is configured.
const DefaultSize = 14

// ErrNoPixels is returned for text that has no advance width.
var ErrNoPixels = errors.New("text renders no pixels")

// Face is a sized font face. It is safe for concurrent use.
type Face struct {
	mu   sync.Mutex
	face font.Face
	size float64
}

// Load opens the font at path at the given pixel size. An empty path loads
// the built-in Go Regular font.
func Load(path string, size float64) (*Face, error) {
	if size <= 0 {
		size = DefaultSize
	}
	data := goregular.TTF
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("expand font path: %w", err)
		}
		if data, err = os.ReadFile(expanded); err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
	}
	return Parse(data, size)
}

// Parse builds a face from TrueType or OpenType data.
func Parse(data []byte, size float64) (*Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return &Face{face: face, size: size}, nil
}

// Size returns the pixel size of the face.
func (f *Face) Size() float64 { return f.size }

// Measure returns the advance width of s in whole pixels.
func (f *Face) Measure(s string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return font.MeasureString(f.face, s).Ceil()
}

// Render draws s in col on a transparent image exactly as wide as the text
// and height pixels tall, with the line box centred vertically.
func (f *Face) Render(s string, col color.Color, height uint16) (*image.RGBA, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	width := font.MeasureString(f.face, s).Ceil()
	if width <= 0 || height == 0 {
		return nil, ErrNoPixels
	}

	m := f.face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	baseline := (int(height)-(ascent+descent))/2 + ascent

	img := image.NewRGBA(image.Rect(0, 0, width, int(height)))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: f.face,
		Dot:  fixed.P(0, baseline),
	}
	d.DrawString(s)
	return img, nil
}

// Close releases the face.
func (f *Face) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.Close()
}
