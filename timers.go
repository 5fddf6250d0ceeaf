package strut

import (
	"context"
	"time"

	"github.com/five82/strut/internal/timer"
)

// Every returns a redraw timer ticking every d until ctx is done.
func Every(ctx context.Context, d time.Duration) <-chan struct{} {
	return timer.Every(ctx, d)
}

// Aligned returns a redraw timer ticking on wall clock multiples of d.
func Aligned(ctx context.Context, d time.Duration) <-chan struct{} {
	return timer.Aligned(ctx, d)
}

// Watch returns a redraw timer ticking whenever one of paths changes.
func Watch(ctx context.Context, paths ...string) (<-chan struct{}, error) {
	return timer.Watch(ctx, nil, paths...)
}
