package component

import (
	"errors"
	"testing"

	"github.com/five82/strut/internal/display"
	"github.com/five82/strut/internal/surface"
)

type nopFreer struct{}

func (nopFreer) FreePicture(display.Picture) {}

func newTestText(t *testing.T, content string, width uint16) *Text {
	t.Helper()
	txt, err := NewText(content, surface.New(nopFreer{}, 1, width, 10))
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	return txt
}

func TestBaseDefaults(t *testing.T) {
	var c Component = struct{ Base }{}
	if !c.Update() {
		t.Error("Update() = false, want true")
	}
	if !c.Background().Empty() {
		t.Error("Background() not empty")
	}
	if c.Foreground().Text != nil {
		t.Error("Foreground() has text")
	}
	if c.Alignment() != AlignCenter {
		t.Errorf("Alignment() = %v, want center", c.Alignment())
	}
	if c.Width() != (Width{}) {
		t.Errorf("Width() = %+v, want zero", c.Width())
	}
	if c.Event(Event{Kind: EventClick}) {
		t.Error("Event() = true, want false")
	}
	if c.RedrawTimer() != nil {
		t.Error("RedrawTimer() != nil")
	}
}

func TestNewText_RejectsEmpty(t *testing.T) {
	_, err := NewText("", surface.New(nopFreer{}, 1, 1, 1))
	if !errors.Is(err, ErrEmptyText) {
		t.Fatalf("NewText(\"\") error = %v, want ErrEmptyText", err)
	}
}

func TestAlignmentBucket(t *testing.T) {
	tests := []struct {
		a    Alignment
		want int
	}{
		{AlignLeft, 0},
		{AlignCenter, 1},
		{AlignRight, 2},
	}
	for _, tt := range tests {
		if got := tt.a.Bucket(); got != tt.want {
			t.Errorf("%v.Bucket() = %d, want %d", tt.a, got, tt.want)
		}
	}
}

func TestParseAlignment(t *testing.T) {
	for in, want := range map[string]Alignment{"": AlignCenter, "Left": AlignLeft, "right": AlignRight, "centre": AlignCenter} {
		got, err := ParseAlignment(in)
		if err != nil || got != want {
			t.Errorf("ParseAlignment(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseAlignment("top"); err == nil {
		t.Error("ParseAlignment(\"top\") returned nil error")
	}
}

func TestButtonFromDetail(t *testing.T) {
	want := []MouseButton{ButtonLeft, ButtonLeft, ButtonMiddle, ButtonRight, ButtonWheelUp, ButtonWheelDown, ButtonLeft}
	for detail, w := range want {
		if got := ButtonFromDetail(uint8(detail)); got != w {
			t.Errorf("ButtonFromDetail(%d) = %v, want %v", detail, got, w)
		}
	}
}

func TestBackgroundWidth(t *testing.T) {
	narrow := NewImage(surface.New(nopFreer{}, 1, 10, 5))
	wide := NewImage(surface.New(nopFreer{}, 2, 40, 5))

	bg := ColorBackground(RGB(1, 2, 3))
	if bg.Width() != 0 || bg.Empty() {
		t.Fatalf("colour background: width %d empty %v", bg.Width(), bg.Empty())
	}
	bg = bg.WithLayer(narrow, AlignLeft).WithLayer(wide, AlignRight)
	if bg.Width() != 40 {
		t.Fatalf("Width() = %d, want 40", bg.Width())
	}
	if len(bg.Layers) != 2 || bg.Layers[0].Image != narrow {
		t.Fatalf("layers out of order: %+v", bg.Layers)
	}
}

func TestWithLayer_DoesNotAlias(t *testing.T) {
	img := NewImage(surface.New(nopFreer{}, 1, 10, 5))
	base := Background{Layers: make([]Layer, 1, 4)}
	a := base.WithLayer(img, AlignLeft)
	b := base.WithLayer(img, AlignRight)
	if a.Layers[1].Alignment != AlignLeft || b.Layers[1].Alignment != AlignRight {
		t.Fatal("WithLayer copies share a backing array")
	}
}

func TestFingerprintEqual(t *testing.T) {
	txt := newTestText(t, "a", 10)
	other := newTestText(t, "a", 10)
	red := RGB(0xff, 0, 0)

	base := NewFingerprint(ColorBackground(red), TextForeground(txt), Width{})

	tests := []struct {
		name string
		fp   Fingerprint
		want bool
	}{
		{"identical", NewFingerprint(ColorBackground(red), TextForeground(txt), Width{}), true},
		{"other text handle", NewFingerprint(ColorBackground(red), TextForeground(other), Width{}), false},
		{"other colour", NewFingerprint(ColorBackground(RGB(0, 0, 0)), TextForeground(txt), Width{}), false},
		{"no colour", NewFingerprint(Background{}, TextForeground(txt), Width{}), false},
		{"alignment", NewFingerprint(ColorBackground(red), TextForeground(txt).WithAlignment(AlignLeft), Width{}), false},
		{"yoffset", NewFingerprint(ColorBackground(red), TextForeground(txt).WithYOffset(2), Width{}), false},
		{"width", NewFingerprint(ColorBackground(red), TextForeground(txt), FixedWidth(5)), false},
		{"zero", Fingerprint{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.fp); got != tt.want {
				t.Fatalf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}

	if (Fingerprint{}).Equal(Fingerprint{}) {
		t.Fatal("zero fingerprints compared equal")
	}
}

func TestWidthBuilder(t *testing.T) {
	w := Width{}.WithMin(10).WithMax(50).IgnoreForeground()
	if w.Min() != 10 || w.Max() != 50 || !w.IgnoresForeground() || w.IgnoresBackground() {
		t.Fatalf("unexpected policy %+v", w)
	}
	if _, ok := w.Fixed(); ok {
		t.Fatal("Fixed() reported a pinned width")
	}
	if px, ok := FixedWidth(300).Fixed(); !ok || px != 300 {
		t.Fatalf("FixedWidth(300).Fixed() = %d, %v", px, ok)
	}
}
