package strut

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"

	"github.com/five82/strut/internal/display"
	"github.com/five82/strut/internal/geometry"
	"github.com/five82/strut/internal/registry"
	"github.com/five82/strut/internal/render"
	"github.com/five82/strut/internal/scheduler"
	"github.com/five82/strut/internal/surface"
	"github.com/five82/strut/internal/xconn"
)

// DefaultHeight is the bar height used when Options.Height is zero.
const DefaultHeight = 30

// ErrDisconnected is returned by Run when the display connection is lost.
var ErrDisconnected = errors.New("display connection closed")

// Options configure a Bar.
type Options struct {
	// Name is the window title.
	Name string
	// Display is the X display to connect to; empty uses $DISPLAY.
	Display string
	// Output is the RandR output to use; empty uses the primary output.
	Output string
	// Height in pixels; zero uses DefaultHeight.
	Height uint16
	// FontPath is a TrueType or OpenType file; empty uses Go Regular.
	FontPath string
	// FontSize in pixels; zero uses a 14px font.
	FontSize float64
	// Background is painted wherever no component draws. The zero value is
	// transparent black.
	Background Color
	// BackgroundImage is drawn over Background from the left edge.
	BackgroundImage image.Image
	// Foreground is the default text colour; the zero value is white.
	Foreground *Color
	// TextYOffset moves all text down by this many pixels.
	TextYOffset int16
	// Logger receives diagnostics; nil uses slog.Default.
	Logger *slog.Logger
}

func (o Options) height() uint16 {
	if o.Height == 0 {
		return DefaultHeight
	}
	return o.Height
}

// Bar is a status bar window and its components.
type Bar struct {
	win  display.Window
	reg  *registry.Registry
	comp *render.Compositor
	bg   *surface.Surface
	face *Font
	fg   Color
	log  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// Open creates a bar window on an X11 server.
func Open(opts Options) (*Bar, error) {
	bg := opts.Background
	win, err := xconn.Open(xconn.Options{
		Display:   opts.Display,
		Output:    opts.Output,
		Name:      opts.Name,
		Height:    opts.height(),
		BackPixel: uint32(bg.R)<<16 | uint32(bg.G)<<8 | uint32(bg.B),
	})
	if err != nil {
		return nil, err
	}
	b, err := Attach(win, opts)
	if err != nil {
		_ = win.Close()
		return nil, err
	}
	return b, nil
}

// Attach builds a bar on an already open window. The bar takes ownership of
// win and closes it in Close.
func Attach(win display.Window, opts Options) (*Bar, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	fg := RGB(0xff, 0xff, 0xff)
	if opts.Foreground != nil {
		fg = *opts.Foreground
	}

	face, err := LoadFont(opts.FontPath, opts.FontSize)
	if err != nil {
		return nil, err
	}

	g := win.Geometry()
	bg, err := newBackground(win, g.Width, g.Height, opts.Background, opts.BackgroundImage)
	if err != nil {
		_ = face.Close()
		return nil, fmt.Errorf("create background: %w", err)
	}

	reg := registry.New()
	ctx, cancel := context.WithCancel(context.Background())
	b := &Bar{
		win:  win,
		reg:  reg,
		bg:   bg,
		face: face,
		fg:   fg,
		log:  log,
		comp: render.New(win, reg, render.Bar{
			Width:       g.Width,
			Height:      g.Height,
			TextYOffset: opts.TextYOffset,
			Background:  bg.ID(),
		}, log),
		ctx:    ctx,
		cancel: cancel,
	}
	if err := b.comp.Expose(); err != nil {
		log.Warn("initial paint failed", "error", err)
	}
	log.Info("bar ready", "x", g.X, "y", g.Y, "width", g.Width, "height", g.Height)
	return b, nil
}

// newBackground paints the bar background picture: colour, then image.
func newBackground(srv display.Server, w, h uint16, c Color, img image.Image) (*surface.Surface, error) {
	s, err := surface.Allocate(srv, w, h)
	if err != nil {
		return nil, err
	}
	if err := srv.FillRect(s.ID(), c.Premultiplied(), geometry.New(0, 0, w, h)); err != nil {
		s.Release()
		return nil, err
	}
	if img == nil {
		return s, nil
	}

	up, err := srv.UploadPicture(img)
	if err != nil {
		s.Release()
		return nil, err
	}
	defer srv.FreePicture(up)
	b := img.Bounds()
	iw, ih := min(w, uint16(min(b.Dx(), 0xffff))), min(h, uint16(min(b.Dy(), 0xffff)))
	if err := srv.Composite(display.OpOver, up, s.ID(), 0, 0, 0, 0, iw, ih); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

// Width returns the bar width in pixels.
func (b *Bar) Width() uint16 { return b.win.Geometry().Width }

// Height returns the bar height in pixels.
func (b *Bar) Height() uint16 { return b.win.Geometry().Height }

// Add places c on the bar and starts its control loop. The component is
// drawn for the first time immediately.
func (b *Bar) Add(c Component) ID {
	id := b.reg.Register(c.Alignment().Bucket())

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return id
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		scheduler.Run(b.ctx, c, id, b.reg, b.comp, b.log)
	}()
	b.log.Debug("component added", "id", uint32(id), "alignment", c.Alignment())
	return id
}

// Placements returns the current position of every component.
func (b *Bar) Placements() []Placement {
	return b.reg.Snapshot()
}

// Run dispatches display events until ctx is cancelled or the display goes
// away. Cancelling ctx closes the bar.
func (b *Bar) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = b.Close() })
	defer stop()

	for {
		ev, err := b.win.NextEvent()
		if errors.Is(err, io.EOF) {
			if ctx.Err() != nil || b.isClosed() {
				return nil
			}
			return ErrDisconnected
		}
		if err != nil {
			b.log.Warn("display error", "error", err)
			continue
		}
		b.handle(ev)
	}
}

func (b *Bar) handle(ev display.Event) {
	switch ev.Kind {
	case display.EventExpose:
		if err := b.comp.Expose(); err != nil && !errors.Is(err, registry.ErrClosed) {
			b.log.Error("expose failed", "error", err)
		}
	case display.EventMotion, display.EventButtonPress, display.EventButtonRelease:
		delivered := b.reg.Dispatch(ev)
		b.log.Debug("pointer event", "kind", ev.Kind, "x", ev.X, "button", ev.Button, "delivered", delivered)
	}
}

func (b *Bar) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Close stops every component, releases all server resources and closes the
// window. It is safe to call more than once.
func (b *Bar) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	b.wg.Wait()
	b.reg.Close()
	b.bg.Release()
	_ = b.face.Close()
	return b.win.Close()
}
