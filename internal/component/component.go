package component

// Component is anything that can live on the bar.
//
// Update is called at the start of every redraw cycle and reports whether the
// component wants to be redrawn. Background, Foreground, Alignment and Width
// are only consulted after Update returned true. Alignment is read once, when
// the component is added. Event is called for each interaction and reports
// whether a redraw should follow. RedrawTimer returns the channel driving
// periodic redraws; nil draws once, a closed channel ends the component's
// loop.
type Component interface {
	Update() bool
	Background() Background
	Foreground() Foreground
	Alignment() Alignment
	Width() Width
	Event(Event) bool
	RedrawTimer() <-chan struct{}
}

// Base provides the default behaviour of every Component method. Embed it
// and override what differs.
type Base struct{}

func (Base) Update() bool                 { return true }
func (Base) Background() Background       { return Background{} }
func (Base) Foreground() Foreground       { return Foreground{} }
func (Base) Alignment() Alignment         { return AlignCenter }
func (Base) Width() Width                 { return Width{} }
func (Base) Event(Event) bool             { return false }
func (Base) RedrawTimer() <-chan struct{} { return nil }
