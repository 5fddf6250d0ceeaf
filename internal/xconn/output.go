package xconn

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/five82/strut/internal/display"
)

// findOutput returns the CRTC showing the named output, or the primary
// output when name is empty.
func findOutput(xc *xgb.Conn, root xproto.Window, name string) (*randr.GetCrtcInfoReply, error) {
	if name == "" {
		return primaryOutput(xc, root)
	}

	res, err := randr.GetScreenResources(xc, root).Reply()
	if err != nil {
		return nil, &display.SetupError{Kind: display.OutputNotFound, Err: err}
	}
	for _, crtc := range res.Crtcs {
		info, err := randr.GetCrtcInfo(xc, crtc, 0).Reply()
		if err != nil {
			continue
		}
		for _, out := range info.Outputs {
			oi, err := randr.GetOutputInfo(xc, out, 0).Reply()
			if err != nil {
				continue
			}
			if string(oi.Name) == name {
				return info, nil
			}
		}
	}
	return nil, &display.SetupError{Kind: display.OutputNotFound, Err: fmt.Errorf("output %q is not active", name)}
}

func primaryOutput(xc *xgb.Conn, root xproto.Window) (*randr.GetCrtcInfoReply, error) {
	primary, err := randr.GetOutputPrimary(xc, root).Reply()
	if err != nil {
		return nil, &display.SetupError{Kind: display.NoPrimaryOutput, Err: err}
	}
	if primary.Output == 0 {
		return nil, &display.SetupError{Kind: display.NoPrimaryOutput, Err: fmt.Errorf("no primary output set")}
	}
	oi, err := randr.GetOutputInfo(xc, primary.Output, 0).Reply()
	if err != nil {
		return nil, &display.SetupError{Kind: display.NoPrimaryOutput, Err: err}
	}
	if oi.Crtc == 0 {
		return nil, &display.SetupError{Kind: display.NoPrimaryOutput, Err: fmt.Errorf("primary output %q is disabled", oi.Name)}
	}
	info, err := randr.GetCrtcInfo(xc, oi.Crtc, 0).Reply()
	if err != nil {
		return nil, &display.SetupError{Kind: display.NoPrimaryOutput, Err: err}
	}
	return info, nil
}
