package registry

import (
	"errors"
	"slices"
	"sync"

	"github.com/five82/strut/internal/component"
	"github.com/five82/strut/internal/display"
	"github.com/five82/strut/internal/geometry"
	"github.com/five82/strut/internal/surface"
)

// ErrClosed is returned by Update once the registry has been closed.
var ErrClosed = errors.New("registry closed")

// InterruptBuffer is the default capacity of a component's event queue.
const InterruptBuffer = 16

// ID identifies a component: ordinal*3 + bucket.
type ID uint32

// Bucket returns the bucket index encoded in the id.
func (id ID) Bucket() int { return int(id % 3) }

// Entry is the registry's record of one component. Fields are only touched
// inside Update.
type Entry struct {
	ID          ID
	Geometry    geometry.Geometry
	Fingerprint component.Fingerprint
	Surface     *surface.Surface

	interrupt chan component.Event
}

// Visible reports whether the component currently occupies any pixels.
func (e *Entry) Visible() bool {
	return e.Surface != nil && !e.Geometry.Empty()
}

// Registry coordinates concurrent access to entries.
type Registry struct {
	mu      sync.Mutex
	next    [3]ID
	entries []*Entry
	closed  bool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{next: [3]ID{0, 1, 2}}
}

// Register allocates the next id in bucket and creates its entry with an
// empty event queue.
func (r *Registry) Register(bucket int) ID {
	if bucket < 0 || bucket > 2 {
		bucket = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.next[bucket]
	r.next[bucket] += 3

	e := &Entry{ID: id, interrupt: make(chan component.Event, InterruptBuffer)}
	i, _ := slices.BinarySearchFunc(r.entries, id, func(e *Entry, id ID) int {
		return cmpID(e.ID, id)
	})
	r.entries = slices.Insert(r.entries, i, e)
	return id
}

// Tx is the view of the registry handed to Update callbacks. It must not be
// retained after the callback returns.
type Tx struct {
	r *Registry
}

// Entry returns the entry for id, or nil.
func (tx *Tx) Entry(id ID) *Entry {
	i, ok := slices.BinarySearchFunc(tx.r.entries, id, func(e *Entry, id ID) int {
		return cmpID(e.ID, id)
	})
	if !ok {
		return nil
	}
	return tx.r.entries[i]
}

// Bucket returns the entries of bucket b in the order they were added.
func (tx *Tx) Bucket(b int) []*Entry {
	var out []*Entry
	for _, e := range tx.r.entries {
		if e.ID.Bucket() == b {
			out = append(out, e)
		}
	}
	return out
}

// All returns every entry sorted by id.
func (tx *Tx) All() []*Entry {
	return slices.Clone(tx.r.entries)
}

// Update runs fn with exclusive access to the registry.
func (r *Registry) Update(fn func(tx *Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	return fn(&Tx{r: r})
}

// ReplaceInterrupt installs a fresh interrupt channel for id and returns its
// receive side. Events still queued on the previous channel are moved over in
// order; the new channel grows to hold them if size is too small.
func (r *Registry) ReplaceInterrupt(id ID, size int) <-chan component.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := (&Tx{r: r}).Entry(id)
	if e == nil {
		return make(chan component.Event, size)
	}
	old := e.interrupt
	next := make(chan component.Event, max(size, len(old)))
	for n := len(old); n > 0; n-- {
		next <- <-old
	}
	e.interrupt = next
	return next
}

// Dispatch routes a pointer event to the visible component under its x
// coordinate. The event is translated to component-relative coordinates and
// offered without blocking; it reports whether a component accepted it.
func (r *Registry) Dispatch(ev display.Event) bool {
	cev, ok := translate(ev)
	if !ok {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	for _, e := range r.entries {
		if !e.Visible() || !e.Geometry.ContainsX(ev.X) {
			continue
		}
		if e.interrupt == nil {
			return false
		}
		cev.X = ev.X - e.Geometry.X
		select {
		case e.interrupt <- cev:
			return true
		default:
			return false
		}
	}
	return false
}

// Snapshot describes one entry for diagnostics.
type Snapshot struct {
	ID       ID
	Geometry geometry.Geometry
	Visible  bool
}

// Snapshot returns a copy of every entry's placement.
func (r *Registry) Snapshot() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Snapshot, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, Snapshot{ID: e.ID, Geometry: e.Geometry, Visible: e.Visible()})
	}
	return out
}

// Close releases every entry's surface. Later calls to Update fail with
// ErrClosed and Dispatch drops events.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	for _, e := range r.entries {
		e.Surface.Release()
		e.Surface = nil
	}
}

func translate(ev display.Event) (component.Event, bool) {
	switch ev.Kind {
	case display.EventMotion:
		return component.Event{Kind: component.EventMotion, Y: ev.Y}, true
	case display.EventButtonPress, display.EventButtonRelease:
		return component.Event{
			Kind:     component.EventClick,
			Button:   component.ButtonFromDetail(ev.Button),
			Released: ev.Kind == display.EventButtonRelease,
			Y:        ev.Y,
		}, true
	default:
		return component.Event{}, false
	}
}

func cmpID(a, b ID) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
