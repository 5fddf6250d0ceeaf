package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/strut"
	"github.com/five82/strut/internal/config"
	"github.com/five82/strut/internal/logtail"
	"github.com/five82/strut/internal/prefs"
)

// texter renders text for a component. *strut.Bar implements it.
type texter interface {
	Text(content string, opts ...strut.TextOption) (*strut.Text, error)
}

// textCache keeps the last rendered text and re-renders only on change.
// Empty content clears it, which hides the component.
type textCache struct {
	bar   texter
	text  *strut.Text
	color *strut.Color
}

// set reports whether the shown text changed.
func (c *textCache) set(content string, color *strut.Color) (bool, error) {
	if content == "" {
		changed := c.text != nil
		c.text, c.color = nil, nil
		return changed, nil
	}
	if c.text != nil && c.text.Content() == content && sameColor(c.color, color) {
		return false, nil
	}

	var opts []strut.TextOption
	if color != nil {
		opts = append(opts, strut.WithColor(*color))
	}
	t, err := c.bar.Text(content, opts...)
	if err != nil {
		return false, err
	}
	c.text, c.color = t, color
	return true, nil
}

func (c *textCache) foreground() strut.Foreground {
	return strut.TextForeground(c.text)
}

func sameColor(a, b *strut.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// label shows a fixed string and never redraws.
type label struct {
	strut.Base
	align strut.Alignment
	text  textCache
	log   *slog.Logger
}

func newLabel(bar texter, content string, align strut.Alignment, log *slog.Logger) *label {
	l := &label{align: align, text: textCache{bar: bar}, log: log}
	if _, err := l.text.set(content, nil); err != nil {
		log.Warn("label text failed", "error", err)
	}
	return l
}

func (l *label) Alignment() strut.Alignment   { return l.align }
func (l *label) Foreground() strut.Foreground { return l.text.foreground() }

// clock shows the time. A left click switches between the two formats and
// remembers the choice in the prefs file.
type clock struct {
	strut.Base
	cfg       config.Clock
	alt       bool
	text      textCache
	timer     <-chan struct{}
	now       func() time.Time
	prefsPath string
	log       *slog.Logger
}

func newClock(ctx context.Context, bar texter, cfg config.Clock, p prefs.Prefs, prefsPath string, log *slog.Logger) *clock {
	return &clock{
		cfg:       cfg,
		alt:       p.ClockAltFormat,
		text:      textCache{bar: bar},
		timer:     strut.Aligned(ctx, cfg.Interval),
		now:       time.Now,
		prefsPath: prefsPath,
		log:       log,
	}
}

func (c *clock) format() string {
	if c.alt {
		return c.cfg.AltFormat
	}
	return c.cfg.Format
}

func (c *clock) Update() bool {
	changed, err := c.text.set(c.now().Format(c.format()), nil)
	if err != nil {
		c.log.Warn("clock text failed", "error", err)
		return false
	}
	return changed
}

func (c *clock) Event(ev strut.Event) bool {
	if ev.Kind != strut.EventClick || ev.Button != strut.ButtonLeft || ev.Released {
		return false
	}
	c.alt = !c.alt
	if err := prefs.Save(c.prefsPath, prefs.Prefs{ClockAltFormat: c.alt}); err != nil {
		c.log.Warn("save prefs failed", "error", err)
	}
	return true
}

func (c *clock) Alignment() strut.Alignment   { return c.cfg.Align }
func (c *clock) Foreground() strut.Foreground { return c.text.foreground() }
func (c *clock) RedrawTimer() <-chan struct{} { return c.timer }

// tail shows the last line of a file and redraws when the file changes.
type tail struct {
	strut.Base
	path  string
	align strut.Alignment
	text  textCache
	timer <-chan struct{}
	log   *slog.Logger
}

func newTail(ctx context.Context, bar texter, cfg config.Tail, log *slog.Logger) (*tail, error) {
	timer, err := strut.Watch(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", cfg.Path, err)
	}
	return &tail{
		path:  cfg.Path,
		align: cfg.Align,
		text:  textCache{bar: bar},
		timer: timer,
		log:   log,
	}, nil
}

func (t *tail) Update() bool {
	line, err := logtail.LastLine(t.path)
	if err != nil {
		t.log.Warn("tail read failed", "path", t.path, "error", err)
		return false
	}
	changed, err := t.text.set(line, nil)
	if err != nil {
		t.log.Warn("tail text failed", "error", err)
		return false
	}
	return changed
}

func (t *tail) Alignment() strut.Alignment   { return t.align }
func (t *tail) Foreground() strut.Foreground { return t.text.foreground() }
func (t *tail) RedrawTimer() <-chan struct{} { return t.timer }

// feedView shows the latest status published by a poller.
type feedView struct {
	strut.Base
	source *Poller
	align  strut.Alignment
	fg     strut.Color
	text   textCache
	log    *slog.Logger
}

func newFeedView(bar texter, source *Poller, cfg config.Feed, fg strut.Color, log *slog.Logger) *feedView {
	return &feedView{
		source: source,
		align:  cfg.Align,
		fg:     fg,
		text:   textCache{bar: bar},
		log:    log,
	}
}

func (f *feedView) Update() bool {
	status := f.source.Latest()
	color, err := status.ColorOr(f.fg)
	if err != nil {
		f.log.Warn("feed colour ignored", "error", err)
	}
	changed, err := f.text.set(status.Text, &color)
	if err != nil {
		f.log.Warn("feed text failed", "error", err)
		return false
	}
	return changed
}

// Event refreshes the feed on a middle click.
func (f *feedView) Event(ev strut.Event) bool {
	if ev.Kind == strut.EventClick && ev.Button == strut.ButtonMiddle && !ev.Released {
		f.source.Refresh()
	}
	return false
}

func (f *feedView) Alignment() strut.Alignment   { return f.align }
func (f *feedView) Foreground() strut.Foreground { return f.text.foreground() }
func (f *feedView) RedrawTimer() <-chan struct{} { return f.source.Updates() }

// picture shows a static image.
type picture struct {
	strut.Base
	align strut.Alignment
	img   *strut.Image
}

func (p *picture) Alignment() strut.Alignment { return p.align }
func (p *picture) Background() strut.Background {
	return strut.ImageBackground(p.img, strut.AlignCenter)
}
