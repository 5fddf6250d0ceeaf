package component

// Foreground is the text drawn on top of a component's background. A nil
// Text draws nothing.
type Foreground struct {
	Text      *Text
	Alignment Alignment
	// YOffset overrides the bar's default vertical text offset when set.
	YOffset *int16
}

// TextForeground returns a centred foreground showing t.
func TextForeground(t *Text) Foreground {
	return Foreground{Text: t}
}

// WithAlignment returns a copy of f aligned by a.
func (f Foreground) WithAlignment(a Alignment) Foreground {
	f.Alignment = a
	return f
}

// WithYOffset returns a copy of f drawn y pixels below the top of the bar.
func (f Foreground) WithYOffset(y int16) Foreground {
	f.YOffset = &y
	return f
}

// Width returns the rendered width of the text, or zero.
func (f Foreground) Width() uint16 {
	if f.Text == nil {
		return 0
	}
	return f.Text.Width()
}
