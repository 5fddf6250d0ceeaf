// Package memdisplay is an in-process display server. Pictures are plain
// RGBA images composited with golang.org/x/image/draw, which makes it the
// backend for the terminal preview and for tests that need to inspect the
// exact pixels and protocol traffic a redraw produces.
package memdisplay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"golang.org/x/image/draw"

	"github.com/five82/strut/internal/display"
	"github.com/five82/strut/internal/geometry"
)

const eventBuffer = 64

// Stats counts requests made against the display.
type Stats struct {
	Allocs           int
	Uploads          int
	Frees            int
	Fills            int
	Composites       int
	WindowComposites int
	Flushes          int
}

// Display is an in-memory display.Window.
type Display struct {
	mu      sync.Mutex
	width   uint16
	height  uint16
	next    display.Picture
	window  display.Picture
	pics    map[display.Picture]*image.RGBA
	stats   Stats
	failure error

	events    chan display.Event
	done      chan struct{}
	closeOnce sync.Once
}

var _ display.Window = (*Display)(nil)

// New returns a window of the given size, initially transparent black.
func New(width, height uint16) *Display {
	d := &Display{
		width:  width,
		height: height,
		pics:   make(map[display.Picture]*image.RGBA),
		events: make(chan display.Event, eventBuffer),
		done:   make(chan struct{}),
	}
	d.window = d.alloc(image.NewRGBA(image.Rect(0, 0, int(width), int(height))))
	return d
}

func (d *Display) alloc(img *image.RGBA) display.Picture {
	d.next++
	d.pics[d.next] = img
	return d.next
}

// Picture returns the window's own picture.
func (d *Display) Picture() display.Picture { return d.window }

// Geometry returns the window rectangle.
func (d *Display) Geometry() geometry.Geometry {
	return geometry.New(0, 0, d.width, d.height)
}

// NewPicture allocates a transparent picture.
func (d *Display) NewPicture(width, height uint16) (display.Picture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("create picture"); err != nil {
		return display.None, err
	}
	d.stats.Allocs++
	return d.alloc(image.NewRGBA(image.Rect(0, 0, int(width), int(height)))), nil
}

// UploadPicture copies img into a new picture whose origin is img's top-left.
func (d *Display) UploadPicture(img image.Image) (display.Picture, error) {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("upload picture"); err != nil {
		return display.None, err
	}
	d.stats.Allocs++
	d.stats.Uploads++
	return d.alloc(dst), nil
}

// FillRect replaces the pixels of r with c.
func (d *Display) FillRect(dst display.Picture, c color.RGBA, r geometry.Geometry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("fill rectangles"); err != nil {
		return err
	}
	img, err := d.lookup(dst)
	if err != nil {
		return display.Errorf("fill rectangles", err)
	}
	d.stats.Fills++
	rect := image.Rect(int(r.X), int(r.Y), r.End(), int(r.Y)+int(r.Height))
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
	return nil
}

// Composite draws a width×height block of src at (srcX, srcY) onto dst at
// (dstX, dstY).
func (d *Display) Composite(op display.Op, src, dst display.Picture, srcX, srcY, dstX, dstY int16, width, height uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("composite"); err != nil {
		return err
	}
	s, err := d.lookup(src)
	if err != nil {
		return display.Errorf("composite", err)
	}
	t, err := d.lookup(dst)
	if err != nil {
		return display.Errorf("composite", err)
	}
	d.stats.Composites++
	if dst == d.window {
		d.stats.WindowComposites++
	}

	drawOp := draw.Over
	if op == display.OpSrc {
		drawOp = draw.Src
	}
	rect := image.Rect(int(dstX), int(dstY), int(dstX)+int(width), int(dstY)+int(height))
	draw.Draw(t, rect, s, image.Pt(int(srcX), int(srcY)), drawOp)
	return nil
}

// FreePicture forgets p. Freeing an unknown picture is ignored.
func (d *Display) FreePicture(p display.Picture) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.pics[p]; !ok || p == d.window {
		return
	}
	delete(d.pics, p)
	d.stats.Frees++
}

// Flush counts flushes; drawing is already complete.
func (d *Display) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats.Flushes++
	return nil
}

// NextEvent blocks until an injected event is available or the display is
// closed, in which case it returns io.EOF.
func (d *Display) NextEvent() (display.Event, error) {
	select {
	case ev := <-d.events:
		return ev, nil
	case <-d.done:
		return display.Event{}, io.EOF
	}
}

// Inject queues ev for NextEvent. It reports false when the queue is full or
// the display is closed.
func (d *Display) Inject(ev display.Event) bool {
	select {
	case <-d.done:
		return false
	default:
	}
	select {
	case d.events <- ev:
		return true
	default:
		return false
	}
}

// Close unblocks NextEvent. Pictures stay readable for inspection.
func (d *Display) Close() error {
	d.closeOnce.Do(func() { close(d.done) })
	return nil
}

// SetFailure makes every following request fail with err until it is
// called again with nil.
func (d *Display) SetFailure(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failure = err
}

// Stats returns the request counters.
func (d *Display) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// ResetStats zeroes the request counters.
func (d *Display) ResetStats() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats = Stats{}
}

// Live returns the number of allocated pictures, excluding the window.
func (d *Display) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pics) - 1
}

// Snapshot returns a copy of the window contents.
func (d *Display) Snapshot() *image.RGBA {
	img, _ := d.Image(d.window)
	return img
}

// Image returns a copy of picture p.
func (d *Display) Image(p display.Picture) (*image.RGBA, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	src, err := d.lookup(p)
	if err != nil {
		return nil, err
	}
	dup := image.NewRGBA(src.Rect)
	copy(dup.Pix, src.Pix)
	return dup, nil
}

func (d *Display) lookup(p display.Picture) (*image.RGBA, error) {
	img, ok := d.pics[p]
	if !ok {
		return nil, fmt.Errorf("bad picture %d", p)
	}
	return img, nil
}

func (d *Display) fail(op string) error {
	if d.failure == nil {
		return nil
	}
	return display.Errorf(op, d.failure)
}

// ErrInjected is a convenience failure for SetFailure.
var ErrInjected = errors.New("injected failure")
