// Package display defines the contract between the bar engine and the
// display server.
//
// # Overview
//
// The engine never talks to X11 directly. It allocates pictures, fills and
// composites them, and reads input events through the Server and Window
// interfaces declared here. Two implementations exist:
//
//   - internal/xconn: the X11 connection (RandR + Render) used by the real bar
//   - internal/memdisplay: an in-memory framebuffer used by tests and the
//     terminal preview
//
// # Pictures
//
// A Picture is an opaque server-side id. Every picture the engine creates is
// 32-bit ARGB with premultiplied alpha, matching the format of the
// graphics context created at setup; the window picture itself uses the
// 24-bit format. Compositing with OpOver onto the window blends partially
// transparent content against what is already there.
//
// # Errors
//
// Setup failures are *SetupError and are fatal. Failures while drawing are
// *ProtocolError; callers log them and carry on with the previous frame.
package display
