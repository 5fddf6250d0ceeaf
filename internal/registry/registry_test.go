package registry

import (
	"errors"
	"testing"

	"github.com/five82/strut/internal/component"
	"github.com/five82/strut/internal/display"
	"github.com/five82/strut/internal/geometry"
	"github.com/five82/strut/internal/surface"
)

type countingFreer struct{ freed int }

func (c *countingFreer) FreePicture(display.Picture) { c.freed++ }

func TestRegister_AssignsBucketedIDs(t *testing.T) {
	r := New()
	got := []ID{
		r.Register(0), r.Register(2), r.Register(0), r.Register(1), r.Register(1), r.Register(2),
	}
	want := []ID{0, 2, 3, 1, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Register ids = %v, want %v", got, want)
		}
	}

	err := r.Update(func(tx *Tx) error {
		all := tx.All()
		for i := 1; i < len(all); i++ {
			if all[i-1].ID >= all[i].ID {
				t.Fatalf("entries not sorted: %d before %d", all[i-1].ID, all[i].ID)
			}
		}
		left := tx.Bucket(0)
		if len(left) != 2 || left[0].ID != 0 || left[1].ID != 3 {
			t.Fatalf("left bucket = %+v", left)
		}
		if tx.Entry(4) == nil || tx.Entry(7) != nil {
			t.Fatal("Entry lookup mismatch")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
}

func place(t *testing.T, r *Registry, id ID, g geometry.Geometry) {
	t.Helper()
	err := r.Update(func(tx *Tx) error {
		e := tx.Entry(id)
		e.Geometry = g
		e.Surface = surface.New(&countingFreer{}, display.Picture(id+1), g.Width, g.Height)
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestDispatch_TranslatesToComponent(t *testing.T) {
	r := New()
	a := r.Register(0)
	b := r.Register(0)
	place(t, r, a, geometry.New(0, 0, 50, 20))
	place(t, r, b, geometry.New(50, 0, 30, 20))

	chA := r.ReplaceInterrupt(a, 4)
	chB := r.ReplaceInterrupt(b, 4)

	if !r.Dispatch(display.Event{Kind: display.EventButtonPress, X: 60, Y: 5, Button: 3}) {
		t.Fatal("Dispatch did not deliver")
	}
	select {
	case ev := <-chB:
		want := component.Event{Kind: component.EventClick, Button: component.ButtonRight, X: 10, Y: 5}
		if ev != want {
			t.Fatalf("event = %+v, want %+v", ev, want)
		}
	default:
		t.Fatal("component b received nothing")
	}
	if len(chA) != 0 {
		t.Fatal("component a received an event")
	}

	if !r.Dispatch(display.Event{Kind: display.EventButtonRelease, X: 49, Button: 1}) {
		t.Fatal("release not delivered")
	}
	if ev := <-chA; !ev.Released || ev.X != 49 {
		t.Fatalf("release event = %+v", ev)
	}

	if r.Dispatch(display.Event{Kind: display.EventMotion, X: 80}) {
		t.Fatal("event past the last component was delivered")
	}
	if r.Dispatch(display.Event{Kind: display.EventExpose}) {
		t.Fatal("expose routed to a component")
	}
}

func TestDispatch_SkipsInvisibleAndFullQueues(t *testing.T) {
	r := New()
	hidden := r.Register(1)
	shown := r.Register(1)
	place(t, r, shown, geometry.New(10, 0, 10, 20))
	_ = r.Update(func(tx *Tx) error {
		tx.Entry(hidden).Geometry = geometry.New(10, 0, 0, 20)
		return nil
	})
	r.ReplaceInterrupt(hidden, 1)
	ch := r.ReplaceInterrupt(shown, 1)

	ev := display.Event{Kind: display.EventMotion, X: 12}
	if !r.Dispatch(ev) {
		t.Fatal("first event dropped")
	}
	if r.Dispatch(ev) {
		t.Fatal("event delivered to a full queue")
	}
	if got := (<-ch).X; got != 2 {
		t.Fatalf("translated x = %d, want 2", got)
	}
}

func TestReplaceInterrupt_CarriesPendingEvents(t *testing.T) {
	r := New()
	id := r.Register(2)
	place(t, r, id, geometry.New(0, 0, 100, 20))
	r.ReplaceInterrupt(id, 4)

	for x := int16(1); x <= 3; x++ {
		r.Dispatch(display.Event{Kind: display.EventMotion, X: x})
	}

	ch := r.ReplaceInterrupt(id, 4)
	for want := int16(1); want <= 3; want++ {
		select {
		case ev := <-ch:
			if ev.X != want {
				t.Fatalf("event x = %d, want %d", ev.X, want)
			}
		default:
			t.Fatalf("event %d lost across replacement", want)
		}
	}
}

func TestReplaceInterrupt_SmallerQueueKeepsPendingEvents(t *testing.T) {
	r := New()
	id := r.Register(0)
	place(t, r, id, geometry.New(0, 0, 100, 20))
	r.ReplaceInterrupt(id, 4)

	for x := int16(1); x <= 4; x++ {
		if !r.Dispatch(display.Event{Kind: display.EventMotion, X: x}) {
			t.Fatalf("event %d not accepted", x)
		}
	}

	ch := r.ReplaceInterrupt(id, 1)
	if cap(ch) != 4 {
		t.Fatalf("queue capacity = %d, want 4", cap(ch))
	}
	for want := int16(1); want <= 4; want++ {
		select {
		case ev := <-ch:
			if ev.X != want {
				t.Fatalf("event x = %d, want %d", ev.X, want)
			}
		default:
			t.Fatalf("event %d lost across replacement", want)
		}
	}
}

func TestClose_ReleasesSurfaces(t *testing.T) {
	r := New()
	id := r.Register(0)
	freer := &countingFreer{}
	_ = r.Update(func(tx *Tx) error {
		e := tx.Entry(id)
		e.Geometry = geometry.New(0, 0, 5, 5)
		e.Surface = surface.New(freer, 9, 5, 5)
		return nil
	})

	r.Close()
	r.Close()
	if freer.freed != 1 {
		t.Fatalf("freed %d surfaces, want 1", freer.freed)
	}
	if err := r.Update(func(*Tx) error { return nil }); !errors.Is(err, ErrClosed) {
		t.Fatalf("Update after Close = %v, want ErrClosed", err)
	}
}

func TestSnapshot(t *testing.T) {
	r := New()
	id := r.Register(0)
	r.Register(1)
	place(t, r, id, geometry.New(0, 0, 5, 5))

	snap := r.Snapshot()
	if len(snap) != 2 || !snap[0].Visible || snap[1].Visible {
		t.Fatalf("Snapshot() = %+v", snap)
	}
}
