// Package logtail reads the tail end of text files for the file tail
// component.
//
// LastLine is what the bar shows: the most recent non-blank line, trimmed.
// It scans only the last 64 KiB of the file and falls back to a full scan
// when that window holds no complete non-blank line. At most one line is kept
// in memory.
//
// Missing files are not errors; they read as empty so a status file that
// has not been written yet simply hides the component. Other I/O errors are
// returned wrapped.
//
// Watching for changes is not done here; see the timer package.
package logtail
