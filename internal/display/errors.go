package display

import (
	"errors"
	"fmt"
)

// SetupErrorKind classifies fatal errors raised while opening the bar.
type SetupErrorKind int

const (
	// ConnectionRefused means the display server could not be reached.
	ConnectionRefused SetupErrorKind = iota + 1
	// NoPrimaryOutput means no output was requested and none is primary.
	// Set one with `xrandr --output <OUTPUT> --primary` or name it in the config.
	NoPrimaryOutput
	// OutputNotFound means the requested output name does not exist.
	OutputNotFound
	// MissingFormat means the server lacks a 24-bit or 32-bit picture format.
	MissingFormat
)

func (k SetupErrorKind) String() string {
	switch k {
	case ConnectionRefused:
		return "unable to connect to the display server"
	case NoPrimaryOutput:
		return "unable to find primary output"
	case OutputNotFound:
		return "unable to find specified output"
	case MissingFormat:
		return "unable to find 24 or 32 bit picture formats"
	default:
		return "unknown setup error"
	}
}

// SetupError is returned when the bar window cannot be created.
type SetupError struct {
	Kind SetupErrorKind
	Err  error
}

func (e *SetupError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// ProtocolError wraps a failed request during a redraw. It is recoverable:
// the caller keeps whatever was drawn before.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// Errorf wraps err as a ProtocolError for op, or returns nil.
func Errorf(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ProtocolError{Op: op, Err: err}
}

// IsProtocol reports whether err is a recoverable protocol failure.
func IsProtocol(err error) bool {
	var perr *ProtocolError
	return errors.As(err, &perr)
}
