// Package config loads the bar configuration file.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/strut/config.toml
//  3. If the file doesn't exist, use Default()
//  4. If the file exists but fields are missing or empty, use their defaults
//
// Paths in the file may start with ~ and are expanded with go-homedir.
// Colours are "#rrggbb" or "#rrggbbaa"; intervals use time.ParseDuration
// syntax.
//
// # TOML Format
//
//	name = "strut"
//	output = ""              # RandR output, empty for the primary output
//	height = 30
//	font = ""                # ttf/otf path, empty for Go Regular
//	font_size = 14
//	background = "#000000"
//	foreground = "#ffffff"
//	background_image = ""
//	text_yoffset = 0
//
//	[clock]
//	enabled = true
//	format = "15:04"
//	alt_format = "03:04 PM"
//	align = "right"
//	interval = "1s"
//
//	[tail]
//	path = "~/.cache/status"  # last line is shown, redrawn on change
//	align = "left"
//
//	[feed]
//	url = "http://127.0.0.1:8080/status"
//	interval = "30s"
//	align = "center"
//
//	[image]
//	path = "~/.config/strut/logo.png"
//	align = "left"
//	fit = true
//
// # Error Handling
//
// A missing file is not an error. Unreadable files, malformed TOML and
// invalid values (unknown alignments, bad colours, non-positive intervals)
// are returned as errors so the bar never starts half-configured.
package config
