package component

// Layer is one image drawn on a component's background at its natural size,
// positioned horizontally by Alignment.
type Layer struct {
	Image     *Image
	Alignment Alignment
}

// Background is painted below the foreground: an optional flood colour, then
// each layer in declared order. The zero value draws nothing.
type Background struct {
	Color  *Color
	Layers []Layer
}

// ColorBackground returns a background filled with c.
func ColorBackground(c Color) Background {
	return Background{Color: &c}
}

// ImageBackground returns a background consisting of a single image layer.
func ImageBackground(img *Image, align Alignment) Background {
	return Background{Layers: []Layer{{Image: img, Alignment: align}}}
}

// WithColor returns a copy of b with the flood colour set.
func (b Background) WithColor(c Color) Background {
	b.Color = &c
	return b
}

// WithLayer returns a copy of b with one more image layer on top.
func (b Background) WithLayer(img *Image, align Alignment) Background {
	layers := make([]Layer, len(b.Layers), len(b.Layers)+1)
	copy(layers, b.Layers)
	b.Layers = append(layers, Layer{Image: img, Alignment: align})
	return b
}

// Width returns the widest layer. A plain colour has no natural width.
func (b Background) Width() uint16 {
	var w uint16
	for _, l := range b.Layers {
		if l.Image != nil && l.Image.Width() > w {
			w = l.Image.Width()
		}
	}
	return w
}

// Empty reports whether the background paints nothing.
func (b Background) Empty() bool {
	if b.Color != nil {
		return false
	}
	for _, l := range b.Layers {
		if l.Image != nil {
			return false
		}
	}
	return true
}
