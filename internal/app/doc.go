// Package app is the composition root of the strut command.
//
// # Overview
//
// Run loads the configuration and preferences, opens a bar (on X11, or on an
// in-memory display shown in the terminal when previewing), adds the
// configured components and blocks until the context is cancelled.
//
// # Components
//
//   - app.go: Run, bar options and the component set
//   - components.go: label, clock, file tail, feed and image components
//   - poller.go: background feed poller with exponential backoff
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read bar config
//	       ├─────> prefs.Load()         Read runtime toggles
//	       ├─────> strut.Open/Attach()  Create the bar
//	       ├─────> populate()           Add components, start pollers
//	       └─────> bar.Run()            Dispatch events (blocks)
//	               preview.Run()        ...or show the terminal preview
//
// Component order within a bucket follows the order components are added:
// image, name label, tail, feed, clock.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - invalid configuration
//   - display setup failures (no server, unknown output, missing formats)
//   - unreadable image files named in the configuration
//
// Recoverable errors (logged, the component keeps its previous content):
//   - feed fetch failures, retried with backoff up to ten minutes
//   - unreadable tail files
//   - text rendering failures
//   - failure to save preferences
package app
