package display

import (
	"image"
	"image/color"

	"github.com/five82/strut/internal/geometry"
)

// Picture identifies a composited image owned by the display server.
type Picture uint32

// None is the zero picture; no server resource has this id.
const None Picture = 0

// Op is a compositing operator.
type Op uint8

const (
	// OpSrc replaces destination pixels.
	OpSrc Op = iota
	// OpOver blends the source over the destination using source alpha.
	OpOver
)

// Server is the request/reply surface the compositor draws through. Every
// method is a synchronous protocol request; errors are *ProtocolError.
type Server interface {
	// NewPicture allocates a transparent 32-bit ARGB picture.
	NewPicture(width, height uint16) (Picture, error)
	// UploadPicture copies img into a new 32-bit ARGB picture.
	UploadPicture(img image.Image) (Picture, error)
	// FillRect floods r of dst with c using OpSrc.
	FillRect(dst Picture, c color.RGBA, r geometry.Geometry) error
	// Composite draws a width×height block of src at (srcX, srcY) onto dst at (dstX, dstY).
	Composite(op Op, src, dst Picture, srcX, srcY, dstX, dstY int16, width, height uint16) error
	// FreePicture releases a picture. It never fails from the caller's view.
	FreePicture(p Picture)
	// Flush pushes pending writes to the server.
	Flush() error
}

// Window is a Server bound to the bar window.
type Window interface {
	Server
	// Picture is the window's own picture, the target of every blit.
	Picture() Picture
	// Geometry is the window's placement on the screen.
	Geometry() geometry.Geometry
	// NextEvent blocks until the server delivers an event. It returns
	// io.EOF once the window has been closed.
	NextEvent() (Event, error)
	// Close tears the connection down and unblocks NextEvent.
	Close() error
}
