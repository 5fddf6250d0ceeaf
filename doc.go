// Package strut builds desktop status bars out of independently updating
// components.
//
// A Bar is a thin dock window along the top of one monitor. Components are
// added to one of three buckets (left, center, right) and each runs its own
// control loop: it is drawn once when added and again whenever its redraw
// timer fires or a mouse event handled by the component asks for it. Only the
// pixels that actually change are sent to the display server.
//
//	bar, err := strut.Open(strut.Options{Name: "bar", Height: 24})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer bar.Close()
//
//	bar.Add(&Clock{bar: bar})
//	if err := bar.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// A component embeds Base and overrides what it needs:
//
//	type Clock struct {
//		strut.Base
//		bar *strut.Bar
//	}
//
//	func (c *Clock) Foreground() strut.Foreground {
//		text, err := c.bar.Text(time.Now().Format("15:04"))
//		if err != nil {
//			return strut.Foreground{}
//		}
//		return strut.TextForeground(text)
//	}
//
//	func (c *Clock) RedrawTimer() <-chan struct{} {
//		return strut.Aligned(context.Background(), time.Minute)
//	}
package strut
