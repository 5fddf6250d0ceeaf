// Package scheduler runs the control loop of a single component.
//
// Each component gets its own goroutine. The loop draws once, then sleeps
// until its redraw timer fires or an interaction event arrives. Redraws of
// one component never overlap; different components run concurrently and
// serialise on the registry.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/five82/strut/internal/component"
	"github.com/five82/strut/internal/registry"
)

// Redrawer draws a component.
type Redrawer interface {
	Redraw(c component.Component, id registry.ID) error
}

// Interrupts hands out a component's event queue.
type Interrupts interface {
	ReplaceInterrupt(id registry.ID, size int) <-chan component.Event
}

// Run drives c until ctx is cancelled or its redraw timer is closed. Redraw
// errors are logged and the loop carries on with the previous picture; the
// next wake-up redraws again even if c reports no change.
func Run(ctx context.Context, c component.Component, id registry.ID, irq Interrupts, r Redrawer, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", uint32(id))
	timer := c.RedrawTimer()

	var events <-chan component.Event
	redraw := true
	failed := false
	for {
		if redraw {
			if c.Update() || failed {
				err := r.Redraw(c, id)
				failed = err != nil
				if failed {
					log.Error("redraw failed", "error", err)
				}
			}
			events = irq.ReplaceInterrupt(id, registry.InterruptBuffer)
		}

		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			log.Debug("event", "kind", ev.Kind, "x", ev.X, "y", ev.Y)
			redraw = c.Event(ev)
		case _, ok := <-timer:
			if !ok {
				log.Debug("redraw timer closed, stopping")
				return
			}
			redraw = true
		}
	}
}
