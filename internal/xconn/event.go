package xconn

import (
	"errors"
	"io"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/five82/strut/internal/display"
)

var (
	errZeroSize = errors.New("zero sized picture")
	errTooWide  = errors.New("image row exceeds the maximum request length")
	errClosed   = errors.New("connection closed")
)

// NextEvent blocks for the next event the bar cares about. Asynchronous
// protocol errors are returned as display.ProtocolError; io.EOF means the
// connection is gone.
func (c *Conn) NextEvent() (display.Event, error) {
	for {
		ev, xerr := c.xc.WaitForEvent()
		if ev == nil && xerr == nil {
			return display.Event{}, io.EOF
		}
		if xerr != nil {
			return display.Event{}, display.Errorf("event", xerr)
		}
		if out, ok := translate(ev); ok {
			return out, nil
		}
	}
}

func translate(ev any) (display.Event, bool) {
	switch e := ev.(type) {
	case xproto.ExposeEvent:
		// Only the last expose of a series triggers a repaint.
		return display.Event{Kind: display.EventExpose}, e.Count == 0
	case xproto.MotionNotifyEvent:
		return display.Event{Kind: display.EventMotion, X: e.EventX, Y: e.EventY}, true
	case xproto.ButtonPressEvent:
		return display.Event{Kind: display.EventButtonPress, X: e.EventX, Y: e.EventY, Button: uint8(e.Detail)}, true
	case xproto.ButtonReleaseEvent:
		return display.Event{Kind: display.EventButtonRelease, X: e.EventX, Y: e.EventY, Button: uint8(e.Detail)}, true
	default:
		return display.Event{}, false
	}
}
