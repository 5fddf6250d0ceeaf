package component

// Width is a component's sizing policy. The zero value sizes the component to
// fit its background and foreground with no further bounds.
type Width struct {
	fixed    uint16
	hasFixed bool
	min      uint16
	max      uint16
	ignoreBg bool
	ignoreFg bool
}

// FixedWidth returns a policy with an exact width.
func FixedWidth(w uint16) Width {
	return Width{}.WithFixed(w)
}

// WithFixed pins the width, ignoring content size and min/max bounds.
func (w Width) WithFixed(px uint16) Width {
	w.fixed, w.hasFixed = px, true
	return w
}

// WithMin sets the lower bound.
func (w Width) WithMin(px uint16) Width {
	w.min = px
	return w
}

// WithMax sets the upper bound. Zero means unbounded.
func (w Width) WithMax(px uint16) Width {
	w.max = px
	return w
}

// IgnoreBackground excludes the background's natural width from sizing.
func (w Width) IgnoreBackground() Width {
	w.ignoreBg = true
	return w
}

// IgnoreForeground excludes the text width from sizing.
func (w Width) IgnoreForeground() Width {
	w.ignoreFg = true
	return w
}

// Fixed returns the pinned width, if any.
func (w Width) Fixed() (uint16, bool) { return w.fixed, w.hasFixed }

// Min returns the lower bound.
func (w Width) Min() uint16 { return w.min }

// Max returns the upper bound, zero when unbounded.
func (w Width) Max() uint16 { return w.max }

// IgnoresBackground reports whether background width is excluded.
func (w Width) IgnoresBackground() bool { return w.ignoreBg }

// IgnoresForeground reports whether text width is excluded.
func (w Width) IgnoresForeground() bool { return w.ignoreFg }
