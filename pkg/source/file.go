// Package source holds the raw text of a unit under analysis together with
// derived views of it: the physical line sequence and the position-sorted
// index of tokens and comments used for neighbor navigation.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File represents one source unit.
type File struct {
	Name    string // display name, usually the base name
	Path    string // full path, empty for in-memory sources
	Content string

	linesOnce sync.Once
	lines     []string
}

// NewFile creates an in-memory file.
func NewFile(name, content string) *File {
	return &File{Name: name, Content: content}
}

// ReadFile loads a file from disk.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // linting user-supplied paths is the point
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &File{
		Name:    filepath.Base(path),
		Path:    path,
		Content: string(data),
	}, nil
}

// Lines returns the physical lines of the file, 1-based when indexed by
// line number (Lines()[n-1]). The split preserves text verbatim; a file
// ending in a newline yields a final empty entry, which callers that count
// lines are expected to ignore.
func (f *File) Lines() []string {
	f.linesOnce.Do(func() {
		f.lines = strings.Split(f.Content, "\n")
	})
	return f.lines
}

// LineCount returns the number of physical lines. A single trailing empty
// entry produced by a terminal newline is not counted as a line, and an
// empty file has zero lines.
func (f *File) LineCount() int {
	if f.Content == "" {
		return 0
	}
	lines := f.Lines()
	n := len(lines)
	if n > 1 && lines[n-1] == "" {
		n--
	}
	return n
}

// Line returns the text of the 1-based line number, or "" if out of range.
func (f *File) Line(n int) string {
	lines := f.Lines()
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}
