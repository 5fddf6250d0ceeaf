package component

import (
	"errors"
	"runtime"

	"github.com/five82/strut/internal/surface"
)

// ErrEmptyText is returned when text is created without any content.
var ErrEmptyText = errors.New("text content is empty")

// Text is rendered text living on the display server. It is immutable; to
// change what a component shows, create a new Text. The server picture is
// released once the Text is no longer referenced and every surface built
// from it has been released.
type Text struct {
	content string
	surface *surface.Surface
}

// NewText takes ownership of s. s must already contain the rendered content.
func NewText(content string, s *surface.Surface) (*Text, error) {
	if content == "" {
		return nil, ErrEmptyText
	}
	t := &Text{content: content, surface: s}
	runtime.AddCleanup(t, (*surface.Surface).Release, s)
	return t, nil
}

// Content returns the string the text was rendered from.
func (t *Text) Content() string { return t.content }

// Surface returns the rendered picture.
func (t *Text) Surface() *surface.Surface { return t.surface }

// Width returns the rendered width in pixels.
func (t *Text) Width() uint16 { return t.surface.Width() }

// Height returns the rendered height in pixels.
func (t *Text) Height() uint16 { return t.surface.Height() }

// Image is a decoded image living on the display server.
type Image struct {
	surface *surface.Surface
}

// NewImage takes ownership of s.
func NewImage(s *surface.Surface) *Image {
	img := &Image{surface: s}
	runtime.AddCleanup(img, (*surface.Surface).Release, s)
	return img
}

// Surface returns the uploaded picture.
func (i *Image) Surface() *surface.Surface { return i.surface }

// Width returns the image width in pixels.
func (i *Image) Width() uint16 { return i.surface.Width() }

// Height returns the image height in pixels.
func (i *Image) Height() uint16 { return i.surface.Height() }
