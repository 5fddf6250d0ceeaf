package xconn

import (
	"errors"
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/five82/strut/internal/display"
	"github.com/five82/strut/internal/geometry"
)

// Options configures the bar window.
type Options struct {
	// Display is the X display name; empty uses $DISPLAY.
	Display string
	// Output is the RandR output to place the bar on; empty uses the
	// primary output.
	Output string
	// Name is set as the window title.
	Name string
	// Height of the bar in pixels.
	Height uint16
	// BackPixel is the 0xAARRGGBB colour the server clears the window to
	// before the first expose.
	BackPixel uint32
}

// Conn is an open bar window.
type Conn struct {
	xc     *xgb.Conn
	setup  *xproto.SetupInfo
	screen *xproto.ScreenInfo

	win      xproto.Window
	gc       xproto.Gcontext
	winPict  render.Picture
	format24 render.Pictformat
	format32 render.Pictformat
	geo      geometry.Geometry

	// mu guards closed; requests hold it shared so Close never races a
	// request onto a closed connection.
	mu     sync.RWMutex
	closed bool
}

var _ display.Window = (*Conn)(nil)

// Open connects to the X server and maps the bar window.
func Open(opts Options) (*Conn, error) {
	if opts.Height == 0 {
		return nil, errors.New("bar height must be positive")
	}

	xc, err := xgb.NewConnDisplay(opts.Display)
	if err != nil {
		return nil, &display.SetupError{Kind: display.ConnectionRefused, Err: err}
	}
	c := &Conn{xc: xc}
	if err := c.init(opts); err != nil {
		xc.Close()
		return nil, err
	}
	return c, nil
}

func (c *Conn) init(opts Options) error {
	if err := render.Init(c.xc); err != nil {
		return &display.SetupError{Kind: display.MissingFormat, Err: fmt.Errorf("render extension: %w", err)}
	}
	if err := randr.Init(c.xc); err != nil {
		return &display.SetupError{Kind: display.NoPrimaryOutput, Err: fmt.Errorf("randr extension: %w", err)}
	}
	c.setup = xproto.Setup(c.xc)
	c.screen = c.setup.DefaultScreen(c.xc)

	crtc, err := findOutput(c.xc, c.screen.Root, opts.Output)
	if err != nil {
		return err
	}
	c.geo = geometry.New(crtc.X, crtc.Y, crtc.Width, opts.Height)

	if c.format24, c.format32, err = c.formats(); err != nil {
		return err
	}
	if err := c.createWindow(opts); err != nil {
		return err
	}
	if err := c.createGC(); err != nil {
		return err
	}

	winFormat := c.format24
	if c.screen.RootDepth == 32 {
		winFormat = c.format32
	}
	if c.winPict, err = render.NewPictureId(c.xc); err != nil {
		return display.Errorf("create window picture", err)
	}
	if err := render.CreatePictureChecked(c.xc, c.winPict, xproto.Drawable(c.win), winFormat, 0, nil).Check(); err != nil {
		return display.Errorf("create window picture", err)
	}
	return nil
}

// formats finds the ARGB32 and RGB24 direct picture formats.
func (c *Conn) formats() (f24, f32 render.Pictformat, err error) {
	reply, err := render.QueryPictFormats(c.xc).Reply()
	if err != nil {
		return 0, 0, &display.SetupError{Kind: display.MissingFormat, Err: err}
	}
	f24, f32, ok := pickFormats(reply.Formats)
	if !ok {
		return 0, 0, &display.SetupError{Kind: display.MissingFormat, Err: errors.New("no 24 and 32 bit direct formats")}
	}
	return f24, f32, nil
}

func pickFormats(formats []render.Pictforminfo) (f24, f32 render.Pictformat, ok bool) {
	var have24, have32 bool
	for _, f := range formats {
		if f.Type != render.PictTypeDirect {
			continue
		}
		d := f.Direct
		switch {
		case !have32 && f.Depth == 32 && d.AlphaShift == 24 && d.RedShift == 16 && d.GreenShift == 8 && d.BlueShift == 0:
			f32, have32 = f.Id, true
		case !have24 && f.Depth == 24 && d.RedShift == 16 && d.GreenShift == 8 && d.BlueShift == 0:
			f24, have24 = f.Id, true
		}
		if have24 && have32 {
			return f24, f32, true
		}
	}
	return f24, f32, false
}

// createGC makes a graphics context usable on depth 32 pixmaps.
func (c *Conn) createGC() error {
	pix, err := xproto.NewPixmapId(c.xc)
	if err != nil {
		return display.Errorf("create gc", err)
	}
	if err := xproto.CreatePixmapChecked(c.xc, 32, pix, xproto.Drawable(c.win), 1, 1).Check(); err != nil {
		return display.Errorf("create gc pixmap", err)
	}
	defer xproto.FreePixmap(c.xc, pix)

	if c.gc, err = xproto.NewGcontextId(c.xc); err != nil {
		return display.Errorf("create gc", err)
	}
	if err := xproto.CreateGCChecked(c.xc, c.gc, xproto.Drawable(pix), 0, nil).Check(); err != nil {
		return display.Errorf("create gc", err)
	}
	return nil
}

// Picture returns the window picture.
func (c *Conn) Picture() display.Picture { return display.Picture(c.winPict) }

// Geometry returns the window's placement on the root window.
func (c *Conn) Geometry() geometry.Geometry { return c.geo }

// Flush waits for the server to process outstanding requests. This is flow
// control rather than a buffer flush; xgb writes requests immediately.
func (c *Conn) Flush() error {
	if !c.acquire() {
		return display.Errorf("flush", errClosed)
	}
	defer c.release()
	c.xc.Sync()
	return nil
}

// Close destroys the window and closes the connection. Pending NextEvent
// calls return io.EOF and later requests fail.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	render.FreePicture(c.xc, c.winPict)
	xproto.FreeGC(c.xc, c.gc)
	xproto.DestroyWindow(c.xc, c.win)
	c.xc.Close()
	return nil
}

func (c *Conn) acquire() bool {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return false
	}
	return true
}

func (c *Conn) release() { c.mu.RUnlock() }
