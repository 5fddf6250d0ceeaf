package scheduler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/strut/internal/component"
	"github.com/five82/strut/internal/display"
	"github.com/five82/strut/internal/geometry"
	"github.com/five82/strut/internal/registry"
	"github.com/five82/strut/internal/surface"
)

const waitTimeout = 2 * time.Second

type nopFreer struct{}

func (nopFreer) FreePicture(display.Picture) {}

type recorder struct {
	component.Base
	timer  <-chan struct{}
	update atomic.Bool
	want   bool
	seen   chan component.Event
}

func newRecorder(timer <-chan struct{}, wantRedraw bool) *recorder {
	r := &recorder{timer: timer, want: wantRedraw, seen: make(chan component.Event, 16)}
	r.update.Store(true)
	return r
}

func (r *recorder) Update() bool                 { return r.update.Load() }
func (r *recorder) RedrawTimer() <-chan struct{} { return r.timer }
func (r *recorder) Event(ev component.Event) bool {
	r.seen <- ev
	return r.want
}

type fakeRedrawer struct {
	n       atomic.Int32
	started chan int
	blockOn int
	release chan struct{}
	err     error
	// redraws numbered up to failUntil return errFailed
	failUntil int
}

var errFailed = errors.New("window unavailable")

func newFakeRedrawer() *fakeRedrawer {
	return &fakeRedrawer{started: make(chan int, 32), release: make(chan struct{})}
}

func (f *fakeRedrawer) Redraw(component.Component, registry.ID) error {
	n := int(f.n.Add(1))
	f.started <- n
	if n == f.blockOn {
		<-f.release
	}
	if n <= f.failUntil {
		return errFailed
	}
	return f.err
}

func waitRedraw(t *testing.T, f *fakeRedrawer, want int) {
	t.Helper()
	select {
	case n := <-f.started:
		if n != want {
			t.Fatalf("redraw #%d started, want #%d", n, want)
		}
	case <-time.After(waitTimeout):
		t.Fatalf("redraw #%d never started", want)
	}
}

func waitEvent(t *testing.T, r *recorder) component.Event {
	t.Helper()
	select {
	case ev := <-r.seen:
		return ev
	case <-time.After(waitTimeout):
		t.Fatal("event never delivered")
		return component.Event{}
	}
}

func expectNoRedraw(t *testing.T, f *fakeRedrawer) {
	t.Helper()
	select {
	case n := <-f.started:
		t.Fatalf("unexpected redraw #%d", n)
	case <-time.After(30 * time.Millisecond):
	}
}

func visibleRegistry(t *testing.T) (*registry.Registry, registry.ID) {
	t.Helper()
	reg := registry.New()
	id := reg.Register(0)
	err := reg.Update(func(tx *registry.Tx) error {
		e := tx.Entry(id)
		e.Geometry = geometry.New(0, 0, 100, 20)
		e.Surface = surface.New(nopFreer{}, 1, 100, 20)
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	return reg, id
}

// dispatchEventually retries until the loop has installed its queue.
func dispatchEventually(t *testing.T, reg *registry.Registry, ev display.Event) {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for !reg.Dispatch(ev) {
		if time.Now().After(deadline) {
			t.Fatal("event never accepted")
		}
		time.Sleep(time.Millisecond)
	}
}

func start(t *testing.T, c component.Component, id registry.ID, reg *registry.Registry, r Redrawer, log *slog.Logger) (cancel func(), done <-chan struct{}) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		Run(ctx, c, id, reg, r, log)
	}()
	t.Cleanup(func() {
		stop()
		<-ch
	})
	return stop, ch
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_EventDuringRedrawIsNotDropped(t *testing.T) {
	reg, id := visibleRegistry(t)
	comp := newRecorder(nil, true)
	red := newFakeRedrawer()
	red.blockOn = 2
	start(t, comp, id, reg, red, quietLogger())

	waitRedraw(t, red, 1)
	dispatchEventually(t, reg, display.Event{Kind: display.EventButtonPress, X: 10, Button: 1})
	waitRedraw(t, red, 2)

	if !reg.Dispatch(display.Event{Kind: display.EventMotion, X: 20}) {
		t.Fatal("event during redraw rejected")
	}
	close(red.release)

	if ev := waitEvent(t, comp); ev.Kind != component.EventClick || ev.X != 10 {
		t.Fatalf("first event = %+v", ev)
	}
	if ev := waitEvent(t, comp); ev.Kind != component.EventMotion || ev.X != 20 {
		t.Fatalf("second event = %+v", ev)
	}
	waitRedraw(t, red, 3)
}

func TestRun_NilTimerDrawsOnceButHandlesEvents(t *testing.T) {
	reg, id := visibleRegistry(t)
	comp := newRecorder(nil, false)
	red := newFakeRedrawer()
	start(t, comp, id, reg, red, quietLogger())

	waitRedraw(t, red, 1)
	dispatchEventually(t, reg, display.Event{Kind: display.EventMotion, X: 5})
	waitEvent(t, comp)
	expectNoRedraw(t, red)
}

func TestRun_TimerTicksRedraw(t *testing.T) {
	reg, id := visibleRegistry(t)
	tick := make(chan struct{})
	comp := newRecorder(tick, false)
	red := newFakeRedrawer()
	start(t, comp, id, reg, red, quietLogger())

	waitRedraw(t, red, 1)
	tick <- struct{}{}
	waitRedraw(t, red, 2)
	tick <- struct{}{}
	waitRedraw(t, red, 3)
}

func TestRun_ClosedTimerTerminates(t *testing.T) {
	reg, id := visibleRegistry(t)
	tick := make(chan struct{})
	close(tick)
	red := newFakeRedrawer()
	_, done := start(t, newRecorder(tick, false), id, reg, red, quietLogger())

	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatal("loop did not stop after its timer closed")
	}
	if n := red.n.Load(); n != 1 {
		t.Fatalf("redraws = %d, want 1", n)
	}
}

func TestRun_UpdateFalseSkipsRedraw(t *testing.T) {
	reg, id := visibleRegistry(t)
	tick := make(chan struct{})
	comp := newRecorder(tick, false)
	comp.update.Store(false)
	red := newFakeRedrawer()
	start(t, comp, id, reg, red, quietLogger())

	tick <- struct{}{}
	expectNoRedraw(t, red)

	comp.update.Store(true)
	tick <- struct{}{}
	waitRedraw(t, red, 1)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRun_RedrawErrorIsLoggedAndLoopContinues(t *testing.T) {
	reg, id := visibleRegistry(t)
	tick := make(chan struct{})
	red := newFakeRedrawer()
	red.err = errors.New("boom")
	var out syncBuffer
	log := slog.New(slog.NewTextHandler(&out, nil))
	start(t, newRecorder(tick, false), id, reg, red, log)

	waitRedraw(t, red, 1)
	tick <- struct{}{}
	waitRedraw(t, red, 2)

	deadline := time.Now().Add(waitTimeout)
	for !strings.Contains(out.String(), "redraw failed") {
		if time.Now().After(deadline) {
			t.Fatalf("log output %q missing redraw failure", out.String())
		}
		time.Sleep(time.Millisecond)
	}
	if !strings.Contains(out.String(), "component=0") {
		t.Fatalf("log output %q missing component id", out.String())
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	reg, id := visibleRegistry(t)
	red := newFakeRedrawer()
	cancel, done := start(t, newRecorder(nil, false), id, reg, red, quietLogger())
	waitRedraw(t, red, 1)
	cancel()
	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatal("loop ignored cancellation")
	}
}

func TestRun_RetriesFailedRedrawWithoutChange(t *testing.T) {
	reg, id := visibleRegistry(t)
	tick := make(chan struct{})
	comp := newRecorder(tick, false)
	red := newFakeRedrawer()
	red.failUntil = 1
	start(t, comp, id, reg, red, quietLogger())

	waitRedraw(t, red, 1)
	comp.update.Store(false)

	tick <- struct{}{}
	waitRedraw(t, red, 2)

	tick <- struct{}{}
	expectNoRedraw(t, red)
}
