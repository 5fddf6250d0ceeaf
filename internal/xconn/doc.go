// Package xconn implements display.Window on an X11 server through
// github.com/BurntSushi/xgb.
//
// Open connects, picks a RandR output, creates a dock window along the top
// edge of that output and negotiates the 24 and 32 bit picture formats.
// Every picture handed out is a 32 bit ARGB render picture; the window
// itself uses the format matching the root visual.
package xconn
