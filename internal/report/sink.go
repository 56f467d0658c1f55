// Package report accumulates and emits sweep results.
//
// Every check writes through a Sink. ConsoleSink prints each line as it is
// produced; FileSink buffers the whole run and writes it in one atomic step
// when Flush is called.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Separator is the rule printed under every section heading.
const Separator = "=========================================================="

// TimestampLayout formats the run header, e.g. "2026-Oct-19 14:03:27".
const TimestampLayout = "2006-Jan-02 15:04:05"

// Sink receives report lines in the order they are produced.
type Sink interface {
	// Line appends one formatted line. A trailing newline is added.
	Line(format string, args ...any)

	// Detailed reports whether per-item listings that would flood a
	// terminal (e.g. every unused snapshot ID) should be written.
	Detailed() bool

	// Flush emits anything still buffered and returns the first error
	// seen by the sink.
	Flush() error
}

// ---------------------------------------------------------------------------
// ConsoleSink
// ---------------------------------------------------------------------------

// ConsoleSink writes each line to w immediately.
type ConsoleSink struct {
	w   io.Writer
	err error
}

// NewConsoleSink returns a sink that writes to w.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (s *ConsoleSink) Line(format string, args ...any) {
	if s.err != nil {
		return
	}
	if _, err := fmt.Fprintf(s.w, format+"\n", args...); err != nil {
		s.err = fmt.Errorf("write report line: %w", err)
	}
}

func (s *ConsoleSink) Detailed() bool { return false }

// Flush returns the first write error, if any. Nothing is buffered.
func (s *ConsoleSink) Flush() error { return s.err }

// ---------------------------------------------------------------------------
// FileSink
// ---------------------------------------------------------------------------

// FileSink buffers every line in memory and writes the report to path on
// Flush. The destination is replaced atomically: readers see either the
// previous report or the complete new one, never a partial write.
type FileSink struct {
	path string
	buf  strings.Builder
}

// NewFileSink returns a sink that will write to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the destination file.
func (s *FileSink) Path() string { return s.path }

func (s *FileSink) Line(format string, args ...any) {
	fmt.Fprintf(&s.buf, format, args...)
	s.buf.WriteByte('\n')
}

func (s *FileSink) Detailed() bool { return true }

// String returns everything buffered so far.
func (s *FileSink) String() string { return s.buf.String() }

// Flush writes the buffered report to a temp file next to the destination
// and renames it into place, overwriting any existing report.
func (s *FileSink) Flush() error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp report in %q: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(s.buf.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write report %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close report %q: %w", tmpName, err)
	}
	// CreateTemp uses 0600; match what os.WriteFile would have produced.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod report %q: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write report file %q: %w", s.path, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Run framing
// ---------------------------------------------------------------------------

// Begin writes the run header stamped with now.
func Begin(s Sink, now time.Time) {
	s.Line("Current Time %s", now.Format(TimestampLayout))
}

// End writes the run footer. It must precede Flush so a file report
// carries it too.
func End(s Sink) {
	s.Line("********************")
	s.Line("Sweeper is complete!")
}
