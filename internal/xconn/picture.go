package xconn

import (
	"image"
	"image/color"

	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/xproto"
	"golang.org/x/image/draw"

	"github.com/five82/strut/internal/display"
	"github.com/five82/strut/internal/geometry"
)

// putImageHeader is the fixed size of a PutImage request in bytes.
const putImageHeader = 24

// NewPicture allocates a transparent ARGB32 picture.
func (c *Conn) NewPicture(width, height uint16) (display.Picture, error) {
	if !c.acquire() {
		return display.None, display.Errorf("create picture", errClosed)
	}
	defer c.release()

	pict, err := c.newPicture(width, height, nil)
	if err != nil {
		return display.None, err
	}
	transparent := render.Color{}
	rect := []xproto.Rectangle{{Width: width, Height: height}}
	if err := render.FillRectanglesChecked(c.xc, render.PictOpSrc, pict, transparent, rect).Check(); err != nil {
		render.FreePicture(c.xc, pict)
		return display.None, display.Errorf("clear picture", err)
	}
	return display.Picture(pict), nil
}

// UploadPicture copies img to the server.
func (c *Conn) UploadPicture(img image.Image) (display.Picture, error) {
	if !c.acquire() {
		return display.None, display.Errorf("upload picture", errClosed)
	}
	defer c.release()

	b := img.Bounds()
	pict, err := c.newPicture(uint16(b.Dx()), uint16(b.Dy()), img)
	if err != nil {
		return display.None, err
	}
	return display.Picture(pict), nil
}

// newPicture creates a depth 32 pixmap, optionally fills it with img, and
// wraps it in a picture. The pixmap is freed; the picture keeps it alive.
func (c *Conn) newPicture(width, height uint16, img image.Image) (render.Picture, error) {
	if width == 0 || height == 0 {
		return 0, display.Errorf("create picture", errZeroSize)
	}
	pix, err := xproto.NewPixmapId(c.xc)
	if err != nil {
		return 0, display.Errorf("create pixmap", err)
	}
	if err := xproto.CreatePixmapChecked(c.xc, 32, pix, xproto.Drawable(c.win), width, height).Check(); err != nil {
		return 0, display.Errorf("create pixmap", err)
	}
	defer xproto.FreePixmap(c.xc, pix)

	if img != nil {
		if err := c.putImage(pix, img); err != nil {
			return 0, err
		}
	}

	pict, err := render.NewPictureId(c.xc)
	if err != nil {
		return 0, display.Errorf("create picture", err)
	}
	if err := render.CreatePictureChecked(c.xc, pict, xproto.Drawable(pix), c.format32, 0, nil).Check(); err != nil {
		return 0, display.Errorf("create picture", err)
	}
	return pict, nil
}

// putImage uploads img in row bands that fit the server's request limit.
func (c *Conn) putImage(pix xproto.Pixmap, img image.Image) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := bgra(img)
	stride := w * 4

	rows := rowsPerRequest(int(c.setup.MaximumRequestLength)*4, stride)
	if rows == 0 {
		return display.Errorf("put image", errTooWide)
	}
	for y := 0; y < h; y += rows {
		n := min(rows, h-y)
		chunk := data[y*stride : (y+n)*stride]
		err := xproto.PutImageChecked(c.xc, xproto.ImageFormatZPixmap, xproto.Drawable(pix), c.gc,
			uint16(w), uint16(n), 0, int16(y), 0, 32, chunk).Check()
		if err != nil {
			return display.Errorf("put image", err)
		}
	}
	return nil
}

func rowsPerRequest(maxBytes, stride int) int {
	if stride <= 0 {
		return 0
	}
	return max(0, (maxBytes-putImageHeader)/stride)
}

// bgra converts img to premultiplied little-endian ARGB32, the byte order of
// a depth 32 ZPixmap.
func bgra(img image.Image) []byte {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	px := rgba.Pix
	for i := 0; i+3 < len(px); i += 4 {
		px[i], px[i+2] = px[i+2], px[i]
	}
	return px
}

// FillRect replaces the pixels of r with col.
func (c *Conn) FillRect(dst display.Picture, col color.RGBA, r geometry.Geometry) error {
	if !c.acquire() {
		return display.Errorf("fill rectangles", errClosed)
	}
	defer c.release()

	rect := []xproto.Rectangle{{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}}
	err := render.FillRectanglesChecked(c.xc, render.PictOpSrc, render.Picture(dst), renderColor(col), rect).Check()
	return display.Errorf("fill rectangles", err)
}

func renderColor(col color.RGBA) render.Color {
	widen := func(v uint8) uint16 { return uint16(v)<<8 | uint16(v) }
	return render.Color{Red: widen(col.R), Green: widen(col.G), Blue: widen(col.B), Alpha: widen(col.A)}
}

// Composite draws a block of src onto dst with op.
func (c *Conn) Composite(op display.Op, src, dst display.Picture, srcX, srcY, dstX, dstY int16, width, height uint16) error {
	if !c.acquire() {
		return display.Errorf("composite", errClosed)
	}
	defer c.release()

	xop := byte(render.PictOpOver)
	if op == display.OpSrc {
		xop = render.PictOpSrc
	}
	err := render.CompositeChecked(c.xc, xop, render.Picture(src), 0, render.Picture(dst),
		srcX, srcY, 0, 0, dstX, dstY, width, height).Check()
	return display.Errorf("composite", err)
}

// FreePicture releases p on the server. It is a no-op once the connection
// is closed, since the server frees everything with the connection.
func (c *Conn) FreePicture(p display.Picture) {
	if !c.acquire() {
		return
	}
	defer c.release()
	render.FreePicture(c.xc, render.Picture(p))
}
