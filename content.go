package strut

import (
	"errors"
	"fmt"
	"image"

	"github.com/five82/strut/internal/component"
	"github.com/five82/strut/internal/glyph"
	"github.com/five82/strut/internal/picture"
	"github.com/five82/strut/internal/surface"
)

// Font is a sized font face used to render Text.
type Font struct {
	face *glyph.Face
}

// LoadFont opens a TrueType or OpenType font at size pixels. An empty path
// uses the built-in Go Regular face.
func LoadFont(path string, size float64) (*Font, error) {
	face, err := glyph.Load(path, size)
	if err != nil {
		return nil, err
	}
	return &Font{face: face}, nil
}

// Measure returns the width s would render at.
func (f *Font) Measure(s string) int { return f.face.Measure(s) }

// Close releases the font.
func (f *Font) Close() error { return f.face.Close() }

type textOptions struct {
	font  *Font
	color *Color
}

// TextOption customises Bar.Text.
type TextOption func(*textOptions)

// WithFont renders text with f instead of the bar font.
func WithFont(f *Font) TextOption {
	return func(o *textOptions) { o.font = f }
}

// WithColor renders text in c instead of the bar foreground colour.
func WithColor(c Color) TextOption {
	return func(o *textOptions) { o.color = &c }
}

// Text renders content as bar-height text. The result can be shown by any
// number of components and is released once no longer referenced.
func (b *Bar) Text(content string, opts ...TextOption) (*Text, error) {
	if content == "" {
		return nil, ErrEmptyText
	}
	o := textOptions{font: b.face, color: &b.fg}
	for _, opt := range opts {
		opt(&o)
	}

	img, err := o.font.face.Render(content, o.color.NRGBA(), b.Height())
	if err != nil {
		if errors.Is(err, glyph.ErrNoPixels) {
			return nil, fmt.Errorf("text %q: %w", content, err)
		}
		return nil, err
	}
	s, err := b.upload(img)
	if err != nil {
		return nil, fmt.Errorf("upload text: %w", err)
	}
	return component.NewText(content, s)
}

// Image uploads img for use in component backgrounds.
func (b *Bar) Image(img image.Image) (*Image, error) {
	s, err := b.upload(img)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return component.NewImage(s), nil
}

// LoadImage decodes the file at path and uploads it. When fit is true the
// image is scaled to the bar height.
func (b *Bar) LoadImage(path string, fit bool) (*Image, error) {
	img, err := picture.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	if fit {
		img = picture.FitHeight(img, int(b.Height()))
	}
	return b.Image(img)
}

func (b *Bar) upload(img image.Image) (*surface.Surface, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 || bounds.Dx() > 0xffff || bounds.Dy() > 0xffff {
		return nil, fmt.Errorf("image size %dx%d out of range", bounds.Dx(), bounds.Dy())
	}
	id, err := b.win.UploadPicture(img)
	if err != nil {
		return nil, err
	}
	return surface.New(b.win, id, uint16(bounds.Dx()), uint16(bounds.Dy())), nil
}
