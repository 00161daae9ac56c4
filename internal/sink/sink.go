// Package sink appends stripped log lines to time-bucketed files, keeping
// only the severities in its allow-set.
package sink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/crimson-sun/tinsel/internal/ansi"
	"github.com/crimson-sun/tinsel/internal/model"
	"github.com/crimson-sun/tinsel/internal/rotation"
	"github.com/crimson-sun/tinsel/internal/theme"
)

const (
	// Ext is the suffix of every bucket file.
	Ext = ".log"

	// maxBackups bounds the numbered copies kept by size rotation.
	maxBackups = 9
)

// Option configures a Sink.
type Option func(*Sink)

// WithClock sets the time source used to pick the bucket. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Sink) { s.clock.Now = now }
}

// WithSymbols sets the glyphs Log uses to detect severity.
// Default: theme.DefaultSymbols().
func WithSymbols(y theme.Symbols) Option {
	return func(s *Sink) { s.symbols = y }
}

// WithBuffer keeps one handle open behind a bufio.Writer of the given size
// instead of opening the file for every write. Lines reach disk on Flush,
// Close, bucket change or when the buffer fills. 0 (default) disables
// buffering.
func WithBuffer(size int) Option {
	return func(s *Sink) { s.bufSize = size }
}

// WithMaxSize caps a bucket file at the given size in bytes. A write that
// would exceed it first moves the file to <bucket>.log.1, shifting older
// copies up to .9. 0 (default) disables size rotation.
func WithMaxSize(bytes int64) Option {
	return func(s *Sink) { s.maxSize = bytes }
}

// Sink writes to <dir>/<bucket>.log. The allow-set may be changed while
// other goroutines log.
type Sink struct {
	dir     string
	clock   *rotation.Clock
	symbols theme.Symbols
	allowed atomic.Uint32
	bufSize int
	maxSize int64

	// guards the handle in buffered mode and size rotation in both modes
	mu      sync.Mutex
	f       *os.File
	w       *bufio.Writer
	bucket  string
	written int64
}

// New creates dir if needed and returns a Sink rotating on interval with
// every level allowed.
func New(dir string, interval rotation.Interval, opts ...Option) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sink: create %s: %w", dir, err)
	}
	s := &Sink{
		dir:     dir,
		clock:   rotation.NewClock(interval),
		symbols: theme.DefaultSymbols(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.AllowAll()
	return s, nil
}

// Dir is the directory bucket files are written to.
func (s *Sink) Dir() string { return s.dir }

// Interval is the rotation window.
func (s *Sink) Interval() rotation.Interval { return s.clock.Interval }

// Path is the file the next write would go to.
func (s *Sink) Path() string {
	return filepath.Join(s.dir, s.clock.Bucket()+Ext)
}

// Log writes message under the severity whose symbol it carries. A message
// with no known symbol is dropped without error.
func (s *Sink) Log(message string) error {
	level, ok := s.symbols.Sniff(message)
	if !ok {
		return nil
	}
	return s.Append(level, message)
}

// Append writes message as one line under level. Escape sequences are
// stripped. Levels outside the allow-set are dropped without error.
func (s *Sink) Append(level model.Level, message string) error {
	if !s.Allowed(level) {
		return nil
	}
	line := []byte(ansi.Strip(message) + "\n")
	if s.bufSize > 0 {
		return s.appendBuffered(line)
	}
	return s.appendDirect(line)
}

// appendDirect opens, writes and closes the bucket file. O_APPEND keeps
// each line whole when several processes share a file.
func (s *Sink) appendDirect(line []byte) error {
	if s.maxSize > 0 {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	path := s.Path()
	f, err := openAppend(path)
	if err != nil {
		return err
	}
	if s.maxSize > 0 {
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return fmt.Errorf("sink: stat %s: %w", path, err)
		}
		if info.Size() > 0 && info.Size()+int64(len(line)) > s.maxSize {
			f.Close()
			if err := shift(path); err != nil {
				return fmt.Errorf("sink: rotate %s: %w", path, err)
			}
			if f, err = openAppend(path); err != nil {
				return err
			}
		}
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("sink: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("sink: close %s: %w", path, err)
	}
	return nil
}

func (s *Sink) appendBuffered(line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.clock.Bucket()
	if s.f == nil || bucket != s.bucket {
		if err := s.closeLocked(); err != nil {
			return err
		}
		if err := s.openLocked(bucket); err != nil {
			return err
		}
	}
	if s.maxSize > 0 && s.written > 0 && s.written+int64(len(line)) > s.maxSize {
		if err := s.closeLocked(); err != nil {
			return err
		}
		path := s.pathFor(bucket)
		if err := shift(path); err != nil {
			return fmt.Errorf("sink: rotate %s: %w", path, err)
		}
		if err := s.openLocked(bucket); err != nil {
			return err
		}
	}

	n, err := s.w.Write(line)
	s.written += int64(n)
	if err != nil {
		return fmt.Errorf("sink: write %s: %w", s.f.Name(), err)
	}
	return nil
}

// Flush pushes buffered lines to disk. It is a no-op in direct mode.
func (s *Sink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return nil
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("sink: flush %s: %w", s.f.Name(), err)
	}
	return nil
}

// Close flushes and releases the open handle, if any. The sink stays
// usable: the next buffered write reopens the file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Sink) pathFor(bucket string) string {
	return filepath.Join(s.dir, bucket+Ext)
}

func (s *Sink) openLocked(bucket string) error {
	path := s.pathFor(bucket)
	f, err := openAppend(path)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("sink: stat %s: %w", path, err)
	}
	s.f = f
	s.w = bufio.NewWriterSize(f, s.bufSize)
	s.bucket = bucket
	s.written = info.Size()
	return nil
}

func (s *Sink) closeLocked() error {
	if s.f == nil {
		return nil
	}
	f, w := s.f, s.w
	s.f, s.w = nil, nil
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("sink: flush %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("sink: close %s: %w", f.Name(), err)
	}
	return nil
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("sink: open %s: %w", path, err)
	}
	return f, nil
}

// shift renames path to path.1, moving existing copies one number up and
// dropping the oldest.
func shift(path string) error {
	for i := maxBackups - 1; i >= 1; i-- {
		from := fmt.Sprintf("%s.%d", path, i)
		to := fmt.Sprintf("%s.%d", path, i+1)
		os.Rename(from, to) // missing copies are expected
	}
	return os.Rename(path, path+".1")
}
