// Package textpatch implements ordered-list insertion into line-oriented
// source artifacts. An artifact is read whole, mutated in memory, and
// rewritten whole; nothing here does partial in-place edits.
package textpatch

import (
	"os"
	"strings"
)

// Artifact is the full verbatim content of one on-disk file, line-delimited.
// The trailing newline is implicit: Lines never carries a final empty element
// and Content always ends with a newline when any line is present.
type Artifact struct {
	Path  string
	Lines []string
}

// Load reads the file at path into an Artifact.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	// Splitting on the separator leaves one trailing empty element when the
	// file ends in a newline. Drop it.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return &Artifact{Path: path, Lines: lines}, nil
}

// InsertAt splices line into the artifact at index i. i may equal
// len(Lines), which appends.
func (a *Artifact) InsertAt(i int, line string) {
	a.Lines = append(a.Lines, "")
	copy(a.Lines[i+1:], a.Lines[i:])
	a.Lines[i] = line
}

// Content renders the artifact back to file form.
func (a *Artifact) Content() string {
	if len(a.Lines) == 0 {
		return ""
	}
	return strings.Join(a.Lines, "\n") + "\n"
}
