// Package render turns component snapshots into server-side surfaces and
// keeps the bar window in sync with the registry.
//
// A redraw holds the registry lock for its whole duration: it builds the
// component's new surface when its fingerprint or size changed, re-packs the
// component's bucket, repaints the part of the old bucket span that is no
// longer covered and blits every component whose pixels or position changed.
// Protocol writes are flushed once, after the lock is released.
package render

import (
	"fmt"
	"log/slog"

	"github.com/five82/strut/internal/component"
	"github.com/five82/strut/internal/display"
	"github.com/five82/strut/internal/geometry"
	"github.com/five82/strut/internal/layout"
	"github.com/five82/strut/internal/registry"
	"github.com/five82/strut/internal/surface"
)

// Bar describes the window components are drawn on.
type Bar struct {
	Width  uint16
	Height uint16
	// TextYOffset is the default vertical offset of foreground text.
	TextYOffset int16
	// Background is a Width×Height picture repainted wherever no component
	// is drawn.
	Background display.Picture
}

// Compositor draws components onto a window.
type Compositor struct {
	win display.Window
	reg *registry.Registry
	bar Bar
	log *slog.Logger

	// damaged holds, per bucket, the span a failed relayout may have left
	// half painted. Only touched inside registry updates.
	damaged map[int]span
}

type span struct{ from, to int }

func (s span) empty() bool { return s.to <= s.from }

func (s span) union(o span) span {
	switch {
	case s.empty():
		return o
	case o.empty():
		return s
	}
	return span{min(s.from, o.from), max(s.to, o.to)}
}

// New returns a compositor drawing onto win.
func New(win display.Window, reg *registry.Registry, bar Bar, log *slog.Logger) *Compositor {
	if log == nil {
		log = slog.Default()
	}
	return &Compositor{win: win, reg: reg, bar: bar, log: log, damaged: make(map[int]span)}
}

// Bar returns the bar description the compositor draws with.
func (c *Compositor) Bar() Bar { return c.bar }

// Redraw snapshots comp and updates the window. On a build error the entry
// keeps its previous surface. When drawing onto the window fails the entry is
// left unfingerprinted, so the next Redraw rebuilds it and repaints its whole
// bucket.
func (c *Compositor) Redraw(comp component.Component, id registry.ID) error {
	bg := comp.Background()
	fg := comp.Foreground()
	policy := comp.Width()

	w := layout.WidthFor(policy, bg.Width(), fg.Width(), c.bar.Width)
	h := c.bar.Height
	fp := component.NewFingerprint(bg, fg, policy)

	var drew bool
	err := c.reg.Update(func(tx *registry.Tx) error {
		e := tx.Entry(id)
		if e == nil {
			return fmt.Errorf("redraw component %d: not registered", id)
		}

		rebuilt := false
		if !e.Fingerprint.Equal(fp) || e.Geometry.Width != w || e.Geometry.Height != h {
			var s *surface.Surface
			if w > 0 && h > 0 {
				var err error
				if s, err = c.build(bg, fg, w, h); err != nil {
					return fmt.Errorf("build component %d: %w", id, err)
				}
			}
			old := e.Surface
			e.Surface = s
			e.Fingerprint = fp
			old.Release()
			rebuilt = true
		}
		if !rebuilt {
			return nil
		}

		drew = true
		if err := c.relayout(tx, e, w, h); err != nil {
			e.Fingerprint = component.Fingerprint{}
			return err
		}
		return nil
	})
	if err != nil {
		if drew {
			c.flush()
		}
		return err
	}
	if drew {
		c.log.Debug("component redrawn", "id", id, "width", w)
		return c.flush()
	}
	return nil
}

// relayout packs e's bucket with e at its new width, clears what the bucket
// no longer covers and blits everything that changed. A bucket damaged by an
// earlier failure is cleared and blitted in full.
func (c *Compositor) relayout(tx *registry.Tx, e *registry.Entry, w, h uint16) (err error) {
	bucket := e.ID.Bucket()
	siblings := tx.Bucket(bucket)

	oldFrom, oldTo := occupied(siblings)
	damage, repaint := c.damaged[bucket]
	if repaint {
		u := damage.union(span{oldFrom, oldTo})
		oldFrom, oldTo = u.from, u.to
	}

	widths := make([]uint16, len(siblings))
	for i, s := range siblings {
		widths[i] = s.Geometry.Width
		if s == e {
			widths[i] = w
		}
	}
	offsets := layout.Place(bucket, widths, c.bar.Width)
	newFrom, newTo := layout.Span(bucket, widths, c.bar.Width)

	moved := make([]bool, len(siblings))
	for i, s := range siblings {
		g := geometry.New(offsets[i], 0, widths[i], h)
		moved[i] = s != e && g.X != s.Geometry.X
		s.Geometry = g
	}

	defer func() {
		if err != nil {
			c.damaged[bucket] = span{oldFrom, oldTo}.union(span{newFrom, newTo})
			return
		}
		delete(c.damaged, bucket)
	}()

	if err := c.clearStale(oldFrom, oldTo, newFrom, newTo); err != nil {
		return err
	}

	for i, s := range siblings {
		if (repaint || s == e || moved[i]) && s.Visible() {
			if err := c.blit(s); err != nil {
				return fmt.Errorf("blit component %d: %w", s.ID, err)
			}
		}
	}
	return nil
}

// occupied returns the extent currently covered by visible siblings.
func occupied(siblings []*registry.Entry) (from, to int) {
	first := true
	for _, s := range siblings {
		if s.Geometry.Width == 0 {
			continue
		}
		x, end := int(s.Geometry.X), s.Geometry.End()
		if first {
			from, to, first = x, end, false
			continue
		}
		from, to = min(from, x), max(to, end)
	}
	return from, to
}

// clearStale repaints [oldFrom, oldTo) minus [newFrom, newTo) from the bar
// background.
func (c *Compositor) clearStale(oldFrom, oldTo, newFrom, newTo int) error {
	if oldTo <= oldFrom {
		return nil
	}
	if newTo <= newFrom {
		return c.clear(oldFrom, oldTo)
	}
	if err := c.clear(oldFrom, min(oldTo, newFrom)); err != nil {
		return err
	}
	return c.clear(max(oldFrom, newTo), oldTo)
}

func (c *Compositor) clear(from, to int) error {
	from, to = max(from, 0), min(to, int(c.bar.Width))
	if to <= from {
		return nil
	}
	x := int16(from)
	return c.win.Composite(display.OpSrc, c.bar.Background, c.win.Picture(), x, 0, x, 0, uint16(to-from), c.bar.Height)
}

// blit draws e over the bar background at its current geometry.
func (c *Compositor) blit(e *registry.Entry) error {
	g := e.Geometry
	tmp, err := c.win.NewPicture(g.Width, g.Height)
	if err != nil {
		return err
	}
	defer c.win.FreePicture(tmp)

	if err := c.win.Composite(display.OpSrc, c.bar.Background, tmp, g.X, 0, 0, 0, g.Width, g.Height); err != nil {
		return err
	}
	if err := c.win.Composite(display.OpOver, e.Surface.ID(), tmp, 0, 0, 0, 0, g.Width, g.Height); err != nil {
		return err
	}
	return c.win.Composite(display.OpOver, tmp, c.win.Picture(), 0, 0, g.X, g.Y, g.Width, g.Height)
}

// Expose repaints the whole window from the registry.
func (c *Compositor) Expose() error {
	err := c.reg.Update(func(tx *registry.Tx) error {
		if err := c.clear(0, int(c.bar.Width)); err != nil {
			return err
		}
		for _, e := range tx.All() {
			if !e.Visible() {
				continue
			}
			if err := c.blit(e); err != nil {
				return fmt.Errorf("blit component %d: %w", e.ID, err)
			}
		}
		clear(c.damaged)
		return nil
	})
	if err != nil {
		return err
	}
	return c.flush()
}

func (c *Compositor) flush() error {
	if err := c.win.Flush(); err != nil {
		return display.Errorf("flush", err)
	}
	return nil
}
