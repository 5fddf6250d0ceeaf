package strut

import (
	"github.com/five82/strut/internal/component"
	"github.com/five82/strut/internal/display"
	"github.com/five82/strut/internal/registry"
)

// Component is anything that can be added to a Bar. Embed Base for defaults.
type Component = component.Component

// Base supplies default implementations of every Component method: always
// update, draw nothing, center alignment, fit to content, ignore events and
// draw only once.
type Base = component.Base

// Background is the colour and image layers painted under a component.
type Background = component.Background

// Layer is one image of a Background.
type Layer = component.Layer

// Foreground is the text of a component.
type Foreground = component.Foreground

// Width is a component's sizing policy.
type Width = component.Width

// Alignment selects a bucket on the bar, or a position inside a component.
type Alignment = component.Alignment

const (
	AlignCenter = component.AlignCenter
	AlignLeft   = component.AlignLeft
	AlignRight  = component.AlignRight
)

// Color is an 8-bit straight alpha colour.
type Color = component.Color

// Event is a mouse interaction relative to a component.
type Event = component.Event

// EventKind distinguishes clicks from motion.
type EventKind = component.EventKind

const (
	EventClick  = component.EventClick
	EventMotion = component.EventMotion
)

// MouseButton identifies the button of a click.
type MouseButton = component.MouseButton

const (
	ButtonLeft      = component.ButtonLeft
	ButtonMiddle    = component.ButtonMiddle
	ButtonRight     = component.ButtonRight
	ButtonWheelUp   = component.ButtonWheelUp
	ButtonWheelDown = component.ButtonWheelDown
)

// Text is immutable rendered text.
type Text = component.Text

// Image is an immutable uploaded image.
type Image = component.Image

// ID identifies a component on its bar.
type ID = registry.ID

// Placement reports where a component currently sits.
type Placement = registry.Snapshot

// SetupError is returned when a bar cannot be created.
type SetupError = display.SetupError

// SetupErrorKind classifies setup failures.
type SetupErrorKind = display.SetupErrorKind

const (
	ConnectionRefused = display.ConnectionRefused
	NoPrimaryOutput   = display.NoPrimaryOutput
	OutputNotFound    = display.OutputNotFound
	MissingFormat     = display.MissingFormat
)

// ProtocolError is a recoverable failure talking to the display server.
type ProtocolError = display.ProtocolError

// ErrEmptyText is returned by Bar.Text for empty content.
var ErrEmptyText = component.ErrEmptyText

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color { return component.RGB(r, g, b) }

// RGBA returns a colour with alpha.
func RGBA(r, g, b, a uint8) Color { return component.RGBA(r, g, b, a) }

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) { return component.ParseColor(s) }

// ColorBackground returns a background filled with c.
func ColorBackground(c Color) Background { return component.ColorBackground(c) }

// ImageBackground returns a background showing img.
func ImageBackground(img *Image, align Alignment) Background {
	return component.ImageBackground(img, align)
}

// TextForeground returns a centred foreground showing t.
func TextForeground(t *Text) Foreground { return component.TextForeground(t) }

// FixedWidth returns a sizing policy with an exact width.
func FixedWidth(px uint16) Width { return component.FixedWidth(px) }
