// Package registry holds the shared, lock-protected table of bar components.
//
// Every component owns one Entry, created when it is added and released when
// the bar closes. Entries are kept sorted by ID, which groups them by bucket
// and then by the order they were added. All reads and writes go through
// Update or Dispatch so redraws of different components never interleave.
package registry
