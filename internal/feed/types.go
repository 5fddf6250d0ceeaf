package feed

import (
	"fmt"

	"github.com/five82/strut/internal/component"
)

// Status is the payload served by a feed endpoint:
//
//	{"text": "3 unread", "color": "#ff8800"}
type Status struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

// Empty reports whether there is nothing to show.
func (s Status) Empty() bool {
	return s.Text == ""
}

// ColorOr parses Color, falling back to def when it is unset.
func (s Status) ColorOr(def component.Color) (component.Color, error) {
	if s.Color == "" {
		return def, nil
	}
	c, err := component.ParseColor(s.Color)
	if err != nil {
		return def, fmt.Errorf("feed color: %w", err)
	}
	return c, nil
}
