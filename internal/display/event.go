package display

// EventKind discriminates raw display events.
type EventKind int

const (
	EventNone EventKind = iota
	EventExpose
	EventMotion
	EventButtonPress
	EventButtonRelease
)

func (k EventKind) String() string {
	switch k {
	case EventExpose:
		return "expose"
	case EventMotion:
		return "motion"
	case EventButtonPress:
		return "button-press"
	case EventButtonRelease:
		return "button-release"
	default:
		return "none"
	}
}

// Event is a raw notification from the display server. X and Y are window
// coordinates; Button is the protocol button number (1-5).
type Event struct {
	Kind   EventKind
	X, Y   int16
	Button uint8
}
