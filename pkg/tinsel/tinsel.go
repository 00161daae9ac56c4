package tinsel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crimson-sun/tinsel/internal/layout"
	"github.com/crimson-sun/tinsel/internal/model"
	"github.com/crimson-sun/tinsel/internal/output"
	"github.com/crimson-sun/tinsel/internal/output/console"
	"github.com/crimson-sun/tinsel/internal/output/file"
	"github.com/crimson-sun/tinsel/internal/pipeline"
	"github.com/crimson-sun/tinsel/internal/sink"
	"github.com/crimson-sun/tinsel/internal/theme"
)

// DefaultWidth is the box width used unless WithWidth says otherwise.
const DefaultWidth = layout.DefaultWidth

// Logger writes messages to the console and, when configured, to log
// files. Safe for concurrent use.
type Logger struct {
	store    *theme.Store
	renderer *layout.Renderer
	console  *console.Output
	sink     *sink.Sink
	pipe     *pipeline.Pipeline
	width    int
	onError  func(error)
}

// New builds a Logger. It fails only when the log directory cannot be
// created.
func New(opts ...Option) (*Logger, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	store := theme.NewStore()
	switch {
	case o.noColor:
		store.SetColors(theme.NoColors())
	case o.colors != nil:
		store.SetColors(theme.DefaultColors().Merge(*o.colors))
	}
	if o.symbols != nil {
		store.SetSymbols(theme.DefaultSymbols().Merge(*o.symbols))
	}
	if o.borders != nil {
		store.SetBorders(theme.DefaultBorders().Merge(*o.borders))
	}
	if o.styling != nil {
		store.SetStyling(*o.styling)
	}
	if o.debug != nil {
		store.SetDebug(*o.debug)
	}

	l := &Logger{
		store:    store,
		renderer: layout.New(store, layout.WithClock(o.now)),
		width:    o.width,
		onError:  o.onError,
	}
	if l.width <= 0 {
		l.width = DefaultWidth
	}
	if l.onError == nil {
		l.onError = func(err error) { slog.Warn("tinsel: file log failed", "error", err) }
	}

	var outputs []output.Output
	if o.console {
		var copts []console.Option
		if o.stdout != nil {
			copts = append(copts, console.WithStdout(o.stdout))
		}
		if o.stderr != nil {
			copts = append(copts, console.WithStderr(o.stderr))
		}
		l.console = console.New(l.renderer, copts...)
		outputs = append(outputs, l.console)
	}
	if o.logDir != "" {
		s, err := sink.New(o.logDir, o.interval,
			sink.WithClock(o.now),
			sink.WithSymbols(store.Symbols()),
			sink.WithBuffer(o.bufSize),
			sink.WithMaxSize(o.maxSize),
		)
		if err != nil {
			return nil, fmt.Errorf("tinsel: %w", err)
		}
		if o.levels != nil {
			s.SetLevels(o.levels...)
		}
		l.sink = s
		outputs = append(outputs, file.New(s, l.renderer))
	}
	l.pipe = pipeline.New(outputs, pipeline.WithClock(o.now))
	return l, nil
}

// Log writes a single-line message at level. Unknown levels are ignored.
func (l *Logger) Log(level Level, title, message string) {
	l.emit(model.Message{Level: level, Title: title, Body: message})
}

// LogBox draws message in a box of the given width at level. A width of
// zero or less uses the Logger's width.
func (l *Logger) LogBox(level Level, title, message string, width int) {
	if width <= 0 {
		width = l.width
	}
	l.emit(model.Message{Level: level, Title: title, Body: message, Boxed: true, Width: width})
}

func (l *Logger) emit(msg model.Message) {
	if err := l.pipe.Emit(context.Background(), msg); err != nil {
		l.onError(err)
	}
}

func (l *Logger) Info(title, message string)    { l.Log(Info, title, message) }
func (l *Logger) Warn(title, message string)    { l.Log(Warn, title, message) }
func (l *Logger) Error(title, message string)   { l.Log(Error, title, message) }
func (l *Logger) Success(title, message string) { l.Log(Success, title, message) }
func (l *Logger) Debug(title, message string)   { l.Log(Debug, title, message) }

func (l *Logger) Infof(title, format string, args ...any) {
	l.Log(Info, title, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(title, format string, args ...any) {
	l.Log(Warn, title, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(title, format string, args ...any) {
	l.Log(Error, title, fmt.Sprintf(format, args...))
}

func (l *Logger) Successf(title, format string, args ...any) {
	l.Log(Success, title, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(title, format string, args ...any) {
	l.Log(Debug, title, fmt.Sprintf(format, args...))
}

func (l *Logger) InfoBox(title, message string)    { l.LogBox(Info, title, message, 0) }
func (l *Logger) WarnBox(title, message string)    { l.LogBox(Warn, title, message, 0) }
func (l *Logger) ErrorBox(title, message string)   { l.LogBox(Error, title, message, 0) }
func (l *Logger) SuccessBox(title, message string) { l.LogBox(Success, title, message, 0) }
func (l *Logger) DebugBox(title, message string)   { l.LogBox(Debug, title, message, 0) }

// Render returns what the console would print for message at level,
// without writing it anywhere.
func (l *Logger) Render(level Level, title, message string, boxed bool) string {
	msg := model.Message{Level: level, Title: title, Body: message, Boxed: boxed, Width: l.width}
	if l.console == nil {
		return console.New(l.renderer).Render(msg)
	}
	return l.console.Render(msg)
}

// AllowLevels adds levels to the set written to log files.
func (l *Logger) AllowLevels(levels ...Level) {
	if l.sink != nil {
		l.sink.Allow(levels...)
	}
}

// DenyLevels removes levels from the set written to log files.
func (l *Logger) DenyLevels(levels ...Level) {
	if l.sink != nil {
		l.sink.Deny(levels...)
	}
}

// ClearLevels stops all file output until levels are allowed again.
func (l *Logger) ClearLevels() {
	if l.sink != nil {
		l.sink.Clear()
	}
}

// SetLevels replaces the set of levels written to log files.
func (l *Logger) SetLevels(levels ...Level) {
	if l.sink != nil {
		l.sink.SetLevels(levels...)
	}
}

// Levels reports the levels written to log files, or nil without a log
// directory.
func (l *Logger) Levels() []Level {
	if l.sink == nil {
		return nil
	}
	return l.sink.Levels()
}

// LogPath is the file the next message would be written to, or "" without
// a log directory.
func (l *Logger) LogPath() string {
	if l.sink == nil {
		return ""
	}
	return l.sink.Path()
}

// Flush writes buffered file output to disk.
func (l *Logger) Flush() error {
	if l.sink == nil {
		return nil
	}
	return l.sink.Flush()
}

// Close flushes and releases file handles.
func (l *Logger) Close() error {
	return l.pipe.Close()
}
