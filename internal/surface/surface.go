// Package surface manages the lifetime of server-side pictures.
//
// A Surface starts with one owner. Each additional owner calls Acquire and
// every owner calls Release exactly once; the picture is freed on the server
// when the last owner lets go.
package surface

import (
	"sync/atomic"

	"github.com/five82/strut/internal/display"
)

// Freer releases server pictures.
type Freer interface {
	FreePicture(p display.Picture)
}

// Surface is a reference-counted picture with known pixel dimensions.
type Surface struct {
	srv    Freer
	id     display.Picture
	width  uint16
	height uint16
	refs   atomic.Int32
}

// New wraps an already allocated picture. The caller owns the only reference.
func New(srv Freer, id display.Picture, width, height uint16) *Surface {
	s := &Surface{srv: srv, id: id, width: width, height: height}
	s.refs.Store(1)
	return s
}

// Allocate creates a transparent picture on srv and wraps it.
func Allocate(srv interface {
	Freer
	NewPicture(width, height uint16) (display.Picture, error)
}, width, height uint16) (*Surface, error) {
	id, err := srv.NewPicture(width, height)
	if err != nil {
		return nil, err
	}
	return New(srv, id, width, height), nil
}

// ID returns the server picture id.
func (s *Surface) ID() display.Picture { return s.id }

// Width returns the picture width in pixels.
func (s *Surface) Width() uint16 { return s.width }

// Height returns the picture height in pixels.
func (s *Surface) Height() uint16 { return s.height }

// Acquire adds an owner and returns s for chaining.
func (s *Surface) Acquire() *Surface {
	if s.refs.Add(1) <= 1 {
		panic("surface: acquire after final release")
	}
	return s
}

// Release drops one owner. The picture is freed when no owners remain.
// Release on a nil Surface is a no-op.
func (s *Surface) Release() {
	if s == nil {
		return
	}
	switch n := s.refs.Add(-1); {
	case n == 0:
		s.srv.FreePicture(s.id)
	case n < 0:
		panic("surface: released more times than acquired")
	}
}

// Live reports whether the picture has not been freed yet.
func (s *Surface) Live() bool {
	return s != nil && s.refs.Load() > 0
}
