package sink

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/crimson-sun/tinsel/internal/model"
	"github.com/crimson-sun/tinsel/internal/rotation"
	"github.com/crimson-sun/tinsel/internal/theme"
)

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 14, hour, minute, 0, 0, time.UTC)
}

func newSink(t *testing.T, interval rotation.Interval, clock *fakeClock, opts ...Option) *Sink {
	t.Helper()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	s, err := New(t.TempDir(), interval, opts...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func logFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*"+Ext))
	if err != nil {
		t.Fatal(err)
	}
	for i, m := range matches {
		matches[i] = filepath.Base(m)
	}
	return matches
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	if _, err := New(dir, rotation.OneHour); err != nil {
		t.Fatalf("New error: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestNewFailsOnFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(filepath.Join(blocker, "logs"), rotation.OneHour); err == nil {
		t.Fatal("expected error when dir is under a regular file")
	}
}

func TestAppendStripsAndWritesOneLine(t *testing.T) {
	clock := &fakeClock{t: at(10, 15)}
	s := newSink(t, rotation.OneHour, clock)

	if err := s.Append(model.Error, "\x1b[91m✖\x1b[0m \x1b[1mDatabase\x1b[0m failed"); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	path := filepath.Join(s.Dir(), "2026-03-14-10h-11h.log")
	if s.Path() != path {
		t.Errorf("Path = %q, want %q", s.Path(), path)
	}
	got := readLines(t, path)
	if !reflect.DeepEqual(got, []string{"✖ Database failed"}) {
		t.Errorf("file = %q", got)
	}
}

func TestLogSniffsSeverity(t *testing.T) {
	tests := []struct {
		name    string
		message string
		deny    []model.Level
		want    int
	}{
		{"error allowed", "✖ Database failed", nil, 1},
		{"error denied", "✖ Database failed", []model.Level{model.Error}, 0},
		{"no symbol", "plain text", nil, 0},
		{"info with error denied", "ℹ Server up", []model.Level{model.Error}, 1},
		{"debug glyph", "⁂ Processing", nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSink(t, rotation.OneHour, &fakeClock{t: at(9, 0)})
			s.Deny(tt.deny...)
			if err := s.Log(tt.message); err != nil {
				t.Fatalf("Log error: %v", err)
			}
			files := logFiles(t, s.Dir())
			if tt.want == 0 {
				if len(files) != 0 {
					t.Errorf("expected no file, got %v", files)
				}
				return
			}
			if got := readLines(t, s.Path()); len(got) != tt.want || got[0] != tt.message {
				t.Errorf("file = %q", got)
			}
		})
	}
}

func TestLogUsesConfiguredSymbols(t *testing.T) {
	syms := theme.DefaultSymbols().Merge(theme.Symbols{Error: "E!"})
	s := newSink(t, rotation.OneHour, &fakeClock{t: at(9, 0)}, WithSymbols(syms))
	s.SetLevels(model.Error)

	s.Log("E! custom error")
	s.Log("✖ default glyph no longer an error")
	got := readLines(t, s.Path())
	if !reflect.DeepEqual(got, []string{"E! custom error"}) {
		t.Errorf("file = %q", got)
	}
}

func TestBucketBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		interval rotation.Interval
		first    time.Time
		second   time.Time
		same     bool
	}{
		{"one hour same window", rotation.OneHour, at(10, 0), at(10, 59), true},
		{"one hour across boundary", rotation.OneHour, at(10, 59), at(11, 0), false},
		{"three hour shares 0-2", rotation.ThreeHour, at(0, 0), at(2, 59), true},
		{"three hour splits at 3", rotation.ThreeHour, at(2, 59), at(3, 0), false},
		{"one day", rotation.OneDay, at(0, 0), at(23, 59), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: tt.first}
			s := newSink(t, tt.interval, clock)
			s.Append(model.Info, "first")
			clock.Set(tt.second)
			s.Append(model.Info, "second")

			files := logFiles(t, s.Dir())
			want := 2
			if tt.same {
				want = 1
			}
			if len(files) != want {
				t.Errorf("got files %v, want %d", files, want)
			}
		})
	}
}

func TestAllowSet(t *testing.T) {
	s := newSink(t, rotation.OneHour, &fakeClock{t: at(9, 0)})
	if !reflect.DeepEqual(s.Levels(), model.Levels) {
		t.Fatalf("default levels = %v", s.Levels())
	}

	s.Clear()
	if len(s.Levels()) != 0 {
		t.Fatalf("after Clear: %v", s.Levels())
	}
	s.Allow(model.Warn, model.Error)
	if !s.Allowed(model.Warn) || s.Allowed(model.Info) {
		t.Errorf("after Allow: %v", s.Levels())
	}
	s.Deny(model.Warn)
	if !reflect.DeepEqual(s.Levels(), []model.Level{model.Error}) {
		t.Errorf("after Deny: %v", s.Levels())
	}
	s.SetLevels(model.Debug, model.Success)
	if !reflect.DeepEqual(s.Levels(), []model.Level{model.Debug, model.Success}) {
		t.Errorf("after SetLevels: %v", s.Levels())
	}
	s.AllowAll()
	if len(s.Levels()) != len(model.Levels) {
		t.Errorf("after AllowAll: %v", s.Levels())
	}
	if s.Allowed(model.Level(42)) {
		t.Error("unknown level must never be allowed")
	}
}

func TestAppendUnknownLevelIsNoop(t *testing.T) {
	s := newSink(t, rotation.OneHour, &fakeClock{t: at(9, 0)})
	if err := s.Append(model.Level(9), "ignored"); err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if files := logFiles(t, s.Dir()); len(files) != 0 {
		t.Errorf("unexpected files %v", files)
	}
}

func TestConcurrentAppendAndReconfigure(t *testing.T) {
	s := newSink(t, rotation.OneDay, &fakeClock{t: at(12, 0)})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Append(model.Info, "line")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Deny(model.Debug)
				s.Allow(model.Debug)
			}
		}()
	}
	wg.Wait()
	for i, l := range readLines(t, s.Path()) {
		if l != "line" {
			t.Fatalf("line %d torn: %q", i, l)
		}
	}
}

func TestBufferedMode(t *testing.T) {
	clock := &fakeClock{t: at(10, 0)}
	s := newSink(t, rotation.OneHour, clock, WithBuffer(4096))

	s.Append(model.Info, "one")
	s.Append(model.Info, "two")
	first := s.Path()
	if data, _ := os.ReadFile(first); len(data) != 0 {
		t.Errorf("buffered lines reached disk before flush: %q", data)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush error: %v", err)
	}
	if got := readLines(t, first); !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Errorf("after flush = %q", got)
	}

	clock.Set(at(11, 0))
	s.Append(model.Info, "three")
	if got := readLines(t, first); len(got) != 2 {
		t.Errorf("old bucket changed: %q", got)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if got := readLines(t, s.Path()); !reflect.DeepEqual(got, []string{"three"}) {
		t.Errorf("new bucket = %q", got)
	}
}

func TestSizeRotation(t *testing.T) {
	for _, buffered := range []bool{false, true} {
		clock := &fakeClock{t: at(10, 0)}
		opts := []Option{WithMaxSize(20)}
		if buffered {
			opts = append(opts, WithBuffer(1024))
		}
		s := newSink(t, rotation.OneHour, clock, opts...)
		for i := 0; i < 5; i++ {
			s.Append(model.Info, "0123456789") // 11 bytes with newline
		}
		s.Close()

		path := s.Path()
		for _, p := range []string{path, path + ".1", path + ".2"} {
			if _, err := os.Stat(p); err != nil {
				t.Errorf("buffered=%v: expected %s: %v", buffered, filepath.Base(p), err)
			}
		}
		if got := readLines(t, path); len(got) != 1 {
			t.Errorf("buffered=%v: current file has %d lines, want 1", buffered, len(got))
		}
	}
}
