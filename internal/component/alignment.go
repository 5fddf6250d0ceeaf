package component

import (
	"fmt"
	"strings"
)

// Alignment places a component in one of the bar's three buckets, or places
// a layer inside a component. The zero value is AlignCenter.
type Alignment uint8

const (
	AlignCenter Alignment = iota
	AlignLeft
	AlignRight
)

// Bucket returns the bucket index used in component ids: left 0, center 1,
// right 2.
func (a Alignment) Bucket() int {
	switch a {
	case AlignLeft:
		return 0
	case AlignRight:
		return 2
	default:
		return 1
	}
}

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "center"
	}
}

// ParseAlignment accepts "left", "center"/"centre" or "right". An empty
// string yields AlignCenter.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "center", "centre":
		return AlignCenter, nil
	case "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	default:
		return AlignCenter, fmt.Errorf("unknown alignment %q", s)
	}
}

// UnmarshalText lets alignments be decoded directly from configuration.
func (a *Alignment) UnmarshalText(b []byte) error {
	v, err := ParseAlignment(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
