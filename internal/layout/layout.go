// Package layout computes component widths and horizontal placement.
//
// The bar has exactly three buckets. Left components are packed from x=0,
// right components are packed flush against the right edge and the center
// group is anchored on the bar's midpoint. Within a bucket components keep
// the order they were added in.
package layout

import "github.com/five82/strut/internal/component"

// Bucket indexes.
const (
	Left   = 0
	Center = 1
	Right  = 2
)

// WidthFor resolves a width policy against the natural background and text
// widths. The result never exceeds barWidth. A maximum below the minimum is
// raised to the minimum.
func WidthFor(policy component.Width, bgWidth, fgWidth, barWidth uint16) uint16 {
	if fixed, ok := policy.Fixed(); ok {
		return min(fixed, barWidth)
	}

	w := policy.Min()
	if !policy.IgnoresBackground() {
		w = max(w, bgWidth)
	}
	if !policy.IgnoresForeground() {
		w = max(w, fgWidth)
	}
	if m := policy.Max(); m != 0 {
		w = min(w, max(m, policy.Min()))
	}
	return min(w, barWidth)
}

// XOffset returns the x coordinate of a component of width own given the
// widths of the bucket members before and after it.
func XOffset(bucket int, preceding, following []uint16, own, barWidth uint16) int16 {
	before := sum(preceding)
	total := before + int(own) + sum(following)
	return int16(start(bucket, total, barWidth) + before)
}

// Place returns the x offset of every bucket member, in order.
func Place(bucket int, widths []uint16, barWidth uint16) []int16 {
	out := make([]int16, len(widths))
	x := start(bucket, sum(widths), barWidth)
	for i, w := range widths {
		out[i] = int16(x)
		x += int(w)
	}
	return out
}

// Span returns the horizontal extent [from, to) covered by a bucket whose
// members have the given widths.
func Span(bucket int, widths []uint16, barWidth uint16) (from, to int) {
	total := sum(widths)
	from = start(bucket, total, barWidth)
	return from, from + total
}

// Align returns the offset of content inside a container of the given width.
// Content wider than its container yields a negative offset for center and
// right alignment.
func Align(a component.Alignment, container, content uint16) int16 {
	switch a {
	case component.AlignLeft:
		return 0
	case component.AlignRight:
		return int16(int(container) - int(content))
	default:
		return int16(float64(container)/2 - float64(content)/2)
	}
}

func start(bucket, total int, barWidth uint16) int {
	switch bucket {
	case Left:
		return 0
	case Right:
		return int(barWidth) - total
	default:
		return int(float64(barWidth)/2 - float64(total)/2)
	}
}

func sum(ws []uint16) int {
	n := 0
	for _, w := range ws {
		n += int(w)
	}
	return n
}
