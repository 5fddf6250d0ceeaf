package component

import "slices"

// Fingerprint captures everything that determines a component's pixels.
// Two equal fingerprints with equal sizes always produce identical surfaces,
// so an unchanged fingerprint lets the compositor skip the rebuild.
//
// Text and Image are compared by identity: they are immutable once created.
type Fingerprint struct {
	valid bool

	color    Color
	hasColor bool
	layers   []Layer

	text       *Text
	textAlign  Alignment
	yoffset    int16
	hasYOffset bool

	width Width
}

// NewFingerprint records the given snapshot.
func NewFingerprint(bg Background, fg Foreground, w Width) Fingerprint {
	f := Fingerprint{
		valid:     true,
		layers:    slices.Clone(bg.Layers),
		text:      fg.Text,
		textAlign: fg.Alignment,
		width:     w,
	}
	if bg.Color != nil {
		f.color, f.hasColor = *bg.Color, true
	}
	if fg.YOffset != nil {
		f.yoffset, f.hasYOffset = *fg.YOffset, true
	}
	return f
}

// Equal reports whether both fingerprints describe the same content. The
// zero Fingerprint equals nothing, not even itself.
func (f Fingerprint) Equal(o Fingerprint) bool {
	if !f.valid || !o.valid {
		return false
	}
	return f.hasColor == o.hasColor &&
		(!f.hasColor || f.color == o.color) &&
		slices.Equal(f.layers, o.layers) &&
		f.text == o.text &&
		f.textAlign == o.textAlign &&
		f.hasYOffset == o.hasYOffset &&
		(!f.hasYOffset || f.yoffset == o.yoffset) &&
		f.width == o.width
}
