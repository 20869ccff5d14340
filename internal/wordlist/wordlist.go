// Package wordlist streams seed entries from dictionary files.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

// maxLineSize bounds a single dictionary line.
const maxLineSize = 1 << 20

// ErrNotFound is returned when the dictionary path does not exist.
var ErrNotFound = errors.New("dictionary not found")

// ReadError reports a failure while reading an opened dictionary.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read dictionary %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Source is a single-pass reader of trimmed, non-empty dictionary lines.
// Reading again requires opening a new Source.
type Source struct {
	path    string
	r       io.ReadCloser
	filters []FilterFunc
	used    bool
	err     error
}

// Open opens the dictionary at path. Seeds rejected by any filter are skipped.
func Open(path string, filters ...FilterFunc) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, &ReadError{Path: path, Err: err}
	}
	return &Source{path: path, r: file, filters: filters}, nil
}

// FromReader wraps an already opened reader.
func FromReader(name string, r io.Reader, filters ...FilterFunc) *Source {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}
	return &Source{path: name, r: rc, filters: filters}
}

// Path returns the dictionary path the source was opened with.
func (s *Source) Path() string {
	return s.path
}

// Seeds yields each trimmed non-empty line. Invalid UTF-8 bytes are dropped.
// A read failure stops the sequence and is reported by Err.
func (s *Source) Seeds() iter.Seq[string] {
	return func(yield func(string) bool) {
		if s.used {
			return
		}
		s.used = true
		scanner := bufio.NewScanner(s.r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := strings.TrimSpace(strings.ToValidUTF8(scanner.Text(), ""))
			if line == "" || !s.keep(line) {
				continue
			}
			if !yield(line) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			s.err = &ReadError{Path: s.path, Err: err}
		}
	}
}

// Err returns the read error that ended Seeds early, if any.
func (s *Source) Err() error {
	return s.err
}

// Close releases the underlying file.
func (s *Source) Close() error {
	return s.r.Close()
}

func (s *Source) keep(line string) bool {
	for _, f := range s.filters {
		if !f(line) {
			return false
		}
	}
	return true
}
