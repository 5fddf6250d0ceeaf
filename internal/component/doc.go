// Package component defines the capability interface every bar component
// implements together with the value types it hands to the compositor:
// backgrounds, foregrounds, width policies, colours and interaction events.
//
// Components are queried from their own control loop. Every value they return
// is treated as a snapshot; the compositor compares successive snapshots with
// a Fingerprint and skips rebuilding the component when nothing changed.
package component
