package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	maxLineBytes   = 1024 * 1024
	lastLineWindow = 64 * 1024
)

// LastLine returns the last non-blank line of the file, trimmed. A missing
// or blank file yields "". Only the final lastLineWindow bytes are scanned
// unless they hold no complete non-blank line.
func LastLine(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("open tail: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat tail: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("read tail: %s is a directory", path)
	}

	offset := max(info.Size()-lastLineWindow, 0)
	line, err := lastNonBlank(file, offset)
	if err != nil || line != "" || offset == 0 {
		return line, err
	}
	return lastNonBlank(file, 0)
}

// lastNonBlank scans f from offset. A scan starting mid-file skips the first,
// possibly partial, line.
func lastNonBlank(f *os.File, offset int64) (string, error) {
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek tail: %w", err)
	}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var last string
	partial := offset > 0
	for scanner.Scan() {
		if partial {
			partial = false
			continue
		}
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			last = line
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read tail: %w", err)
	}
	return last, nil
}
