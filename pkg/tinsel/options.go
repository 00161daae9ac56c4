package tinsel

import (
	"io"
	"time"
)

type options struct {
	logDir   string
	interval Interval
	levels   []Level // nil means every level
	bufSize  int
	maxSize  int64

	colors  *Colors
	noColor bool
	symbols *Symbols
	borders *Borders
	styling *bool
	debug   *bool
	width   int

	stdout  io.Writer
	stderr  io.Writer
	console bool

	now     func() time.Time
	onError func(error)
}

// Option configures a Logger.
type Option func(*options)

// WithLogDir mirrors messages into dir, one file per interval window.
// Without it nothing is written to disk.
func WithLogDir(dir string, interval Interval) Option {
	return func(o *options) {
		o.logDir = dir
		o.interval = interval
	}
}

// WithLevels limits the file mirror to the given levels. The console is
// unaffected. Default: every level.
func WithLevels(levels ...Level) Option {
	return func(o *options) {
		o.levels = append([]Level{}, levels...)
	}
}

// WithBuffer keeps the log file open behind a buffer of size bytes instead
// of opening it for every message. Close flushes it.
func WithBuffer(size int) Option {
	return func(o *options) { o.bufSize = size }
}

// WithMaxSize rotates a log file to numbered copies once it would exceed
// bytes. Default: no size limit.
func WithMaxSize(bytes int64) Option {
	return func(o *options) { o.maxSize = bytes }
}

// WithColors overrides palette slots. Empty fields keep the default.
func WithColors(c Colors) Option {
	return func(o *options) { o.colors = &c }
}

// WithoutColor uses an empty palette. Combined with WithStyling(false) the
// console output carries no escape codes at all.
func WithoutColor() Option {
	return func(o *options) { o.noColor = true }
}

// WithSymbols overrides level glyphs. Empty fields keep the default.
func WithSymbols(s Symbols) Option {
	return func(o *options) { o.symbols = &s }
}

// WithBorders overrides box glyphs. Empty fields keep the default.
func WithBorders(b Borders) Option {
	return func(o *options) { o.borders = &b }
}

// WithStyling turns markup translation on or off. When off, markers are
// still removed but no style codes are emitted. Default: on.
func WithStyling(on bool) Option {
	return func(o *options) { o.styling = &on }
}

// WithDebug shows or hides debug messages on the console. Hidden debug
// messages are still written to the log file. Default: shown.
func WithDebug(on bool) Option {
	return func(o *options) { o.debug = &on }
}

// WithWidth sets the width of boxes drawn by the *Box methods.
// Default: 75. Narrower widths are raised to fit the title.
func WithWidth(n int) Option {
	return func(o *options) { o.width = n }
}

// WithStdout sets the console writer for non-error messages.
// Default: os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(o *options) { o.stdout = w }
}

// WithStderr sets the console writer for error messages. Default: os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(o *options) { o.stderr = w }
}

// WithoutConsole disables terminal output, leaving only the file mirror.
func WithoutConsole() Option {
	return func(o *options) { o.console = false }
}

// WithClock sets the time source for timestamps and file buckets.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithErrorHandler sets the callback for output failures, such as an
// unwritable log file. Default: a slog warning.
func WithErrorHandler(f func(error)) Option {
	return func(o *options) { o.onError = f }
}

func defaultOptions() options {
	return options{
		interval: OneHour,
		console:  true,
		now:      time.Now,
	}
}
