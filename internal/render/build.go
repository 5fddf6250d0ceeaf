package render

import (
	"github.com/five82/strut/internal/component"
	"github.com/five82/strut/internal/display"
	"github.com/five82/strut/internal/geometry"
	"github.com/five82/strut/internal/layout"
	"github.com/five82/strut/internal/surface"
)

// build paints a fresh w×h surface: flood colour, image layers in order,
// then the foreground text.
func (c *Compositor) build(bg component.Background, fg component.Foreground, w, h uint16) (*surface.Surface, error) {
	s, err := surface.Allocate(c.win, w, h)
	if err != nil {
		return nil, err
	}
	if err := c.paint(s.ID(), bg, fg, w); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

func (c *Compositor) paint(dst display.Picture, bg component.Background, fg component.Foreground, w uint16) error {
	if bg.Color != nil {
		if err := c.win.FillRect(dst, bg.Color.Premultiplied(), geometry.New(0, 0, w, c.bar.Height)); err != nil {
			return err
		}
	}

	for _, l := range bg.Layers {
		if l.Image == nil {
			continue
		}
		src := l.Image.Surface()
		x := layout.Align(l.Alignment, w, src.Width())
		if err := c.win.Composite(display.OpOver, src.ID(), dst, 0, 0, x, 0, src.Width(), src.Height()); err != nil {
			return err
		}
	}

	if fg.Text != nil {
		src := fg.Text.Surface()
		y := c.bar.TextYOffset
		if fg.YOffset != nil {
			y = *fg.YOffset
		}
		x := layout.Align(fg.Alignment, w, src.Width())
		if err := c.win.Composite(display.OpOver, src.ID(), dst, 0, 0, x, y, src.Width(), src.Height()); err != nil {
			return err
		}
	}
	return nil
}
