// Package console writes rendered messages to the terminal: errors to
// stderr, everything else to stdout.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/crimson-sun/tinsel/internal/layout"
	"github.com/crimson-sun/tinsel/internal/model"
)

// Option configures a console Output.
type Option func(*Output)

// WithStdout sets the writer for non-error messages. Default: os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(o *Output) { o.stdout = w }
}

// WithStderr sets the writer for error messages. Default: os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(o *Output) { o.stderr = w }
}

// Output renders messages with a layout.Renderer. Debug messages are
// skipped while the theme's debug flag is off.
type Output struct {
	r      *layout.Renderer
	stdout io.Writer
	stderr io.Writer
	mu     sync.Mutex
}

// New creates a console output drawing with r.
func New(r *layout.Renderer, opts ...Option) *Output {
	o := &Output{r: r, stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Write renders msg as a box or a single line and writes it whole.
func (o *Output) Write(_ context.Context, msg model.Message) error {
	store := o.r.Theme()
	if msg.Level == model.Debug && !store.Debug() {
		return nil
	}
	text := o.Render(msg)

	w := o.stdout
	if msg.Level == model.Error {
		w = o.stderr
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("console output: %w", err)
	}
	return nil
}

// Render returns exactly what Write would print for msg, trailing newline
// included.
func (o *Output) Render(msg model.Message) string {
	store := o.r.Theme()
	accent, text := store.Colors().For(msg.Level)
	symbol := store.Symbols().For(msg.Level)
	ts := msg.Timestamp
	if ts.IsZero() {
		ts = o.r.Now()
	}
	if msg.Boxed {
		width := msg.Width
		if width <= 0 {
			width = layout.DefaultWidth
		}
		return o.r.BoxAt(ts, layout.BoxSpec{
			BoxColor:  accent,
			TextColor: text,
			Symbol:    symbol,
			Title:     msg.Title,
			Width:     width,
		}, msg.Body)
	}
	return o.r.LineAt(ts, accent, text, symbol, msg.Title, msg.Body) + "\n"
}

func (o *Output) Close() error {
	return nil
}
