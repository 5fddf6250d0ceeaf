package xconn

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/five82/strut/internal/display"
	"github.com/five82/strut/internal/geometry"
)

func (c *Conn) createWindow(opts Options) error {
	win, err := xproto.NewWindowId(c.xc)
	if err != nil {
		return display.Errorf("create window", err)
	}
	c.win = win

	mask := uint32(xproto.CwBackPixel | xproto.CwOverrideRedirect | xproto.CwEventMask)
	values := []uint32{
		opts.BackPixel,
		0,
		xproto.EventMaskExposure | xproto.EventMaskPointerMotion |
			xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease,
	}
	err = xproto.CreateWindowChecked(c.xc, xproto.WindowClassCopyFromParent, win, c.screen.Root,
		c.geo.X, c.geo.Y, c.geo.Width, c.geo.Height, 0,
		xproto.WindowClassInputOutput, c.screen.RootVisual, mask, values).Check()
	if err != nil {
		return display.Errorf("create window", err)
	}

	if err := c.setDockProperties(opts.Name); err != nil {
		return err
	}
	if err := xproto.MapWindowChecked(c.xc, win).Check(); err != nil {
		return display.Errorf("map window", err)
	}
	return nil
}

func (c *Conn) setDockProperties(name string) error {
	strut := struts(c.geo)
	dock, err := c.atom("_NET_WM_WINDOW_TYPE_DOCK")
	if err != nil {
		return err
	}
	sticky, err := c.atom("_NET_WM_STATE_STICKY")
	if err != nil {
		return err
	}
	utf8, err := c.atom("UTF8_STRING")
	if err != nil {
		return err
	}

	props := []struct {
		name   string
		typ    xproto.Atom
		format byte
		data   []byte
		n      int
	}{
		{"_NET_WM_STRUT", xproto.AtomCardinal, 32, put32(strut[:4]...), 4},
		{"_NET_WM_STRUT_PARTIAL", xproto.AtomCardinal, 32, put32(strut[:]...), len(strut)},
		{"_NET_WM_WINDOW_TYPE", xproto.AtomAtom, 32, put32(uint32(dock)), 1},
		{"_NET_WM_STATE", xproto.AtomAtom, 32, put32(uint32(sticky)), 1},
		{"_NET_WM_DESKTOP", xproto.AtomCardinal, 32, put32(0xffffffff), 1},
		{"_NET_WM_NAME", utf8, 8, []byte(name), len(name)},
		{"WM_NAME", xproto.AtomString, 8, []byte(name), len(name)},
	}
	for _, p := range props {
		prop, err := c.atom(p.name)
		if err != nil {
			return err
		}
		err = xproto.ChangePropertyChecked(c.xc, xproto.PropModeReplace, c.win, prop, p.typ, p.format, uint32(p.n), p.data).Check()
		if err != nil {
			return display.Errorf("set "+p.name, err)
		}
	}
	return nil
}

func (c *Conn) atom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.xc, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, display.Errorf("intern "+name, err)
	}
	return reply.Atom, nil
}

// struts reserves g's height along the top edge, limited to g's span.
func struts(g geometry.Geometry) [12]uint32 {
	top := uint32(int32(g.Y)) + uint32(g.Height)
	startX := uint32(int32(g.X))
	endX := startX + uint32(g.Width) - 1
	return [12]uint32{0, 0, top, 0, 0, 0, 0, 0, startX, endX, 0, 0}
}

func put32(vals ...uint32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		xgb.Put32(buf[i*4:], v)
	}
	return buf
}
