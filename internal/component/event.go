package component

import "fmt"

// EventKind distinguishes clicks from pointer motion.
type EventKind uint8

const (
	EventClick EventKind = iota + 1
	EventMotion
)

func (k EventKind) String() string {
	switch k {
	case EventClick:
		return "click"
	case EventMotion:
		return "motion"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// MouseButton identifies the button of a click.
type MouseButton uint8

const (
	ButtonLeft MouseButton = iota + 1
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
)

// ButtonFromDetail maps an X11 button number to a MouseButton. Unknown
// numbers are reported as ButtonLeft.
func ButtonFromDetail(detail uint8) MouseButton {
	switch detail {
	case 2:
		return ButtonMiddle
	case 3:
		return ButtonRight
	case 4:
		return ButtonWheelUp
	case 5:
		return ButtonWheelDown
	default:
		return ButtonLeft
	}
}

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonWheelUp:
		return "wheel-up"
	case ButtonWheelDown:
		return "wheel-down"
	default:
		return fmt.Sprintf("MouseButton(%d)", uint8(b))
	}
}

// Event is a user interaction inside a component. X and Y are relative to
// the component's top-left corner. Button and Released are only meaningful
// for clicks.
type Event struct {
	Kind     EventKind
	Button   MouseButton
	Released bool
	X, Y     int16
}
