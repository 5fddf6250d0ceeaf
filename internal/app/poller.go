package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/strut/internal/feed"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 10 * time.Minute
)

// calculateBackoff doubles the interval for each consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

// Poller fetches a feed in the background and keeps the latest good status.
// Failed fetches are logged and keep the previous status on screen.
type Poller struct {
	fetcher  feed.Fetcher
	interval time.Duration
	log      *slog.Logger

	mu     sync.Mutex
	latest feed.Status

	updates chan struct{}
	refresh chan struct{}
}

// NewPoller returns a poller; call Start to begin fetching.
func NewPoller(fetcher feed.Fetcher, interval time.Duration, log *slog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Poller{
		fetcher:  fetcher,
		interval: interval,
		log:      log,
		updates:  make(chan struct{}, 1),
		refresh:  make(chan struct{}, 1),
	}
}

// Start launches the background goroutine and returns immediately. Updates
// is closed once ctx is done.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		defer close(p.updates)
		failures := 0
		for {
			if p.poll(ctx) {
				failures = 0
			} else {
				failures++
			}

			wait := time.NewTimer(calculateBackoff(failures, p.interval))
			select {
			case <-ctx.Done():
				wait.Stop()
				return
			case <-p.refresh:
				wait.Stop()
			case <-wait.C:
			}
		}
	}()
}

func (p *Poller) poll(ctx context.Context) bool {
	status, err := p.fetcher.Fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn("feed poll failed", "error", err)
		}
		return false
	}

	p.mu.Lock()
	changed := status != p.latest
	p.latest = status
	p.mu.Unlock()

	if changed {
		signal(p.updates)
	}
	return true
}

// Latest returns the most recent successfully fetched status.
func (p *Poller) Latest() feed.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest
}

// Updates ticks whenever the status changes.
func (p *Poller) Updates() <-chan struct{} {
	return p.updates
}

// Refresh asks for an immediate fetch.
func (p *Poller) Refresh() {
	signal(p.refresh)
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
