// Package file mirrors messages into a sink as stripped single lines.
package file

import (
	"context"

	"github.com/crimson-sun/tinsel/internal/layout"
	"github.com/crimson-sun/tinsel/internal/model"
	"github.com/crimson-sun/tinsel/internal/sink"
)

// Output renders every message, boxed or not, in the single-line form and
// appends it to a sink under the message's level.
type Output struct {
	sink *sink.Sink
	r    *layout.Renderer
}

// New creates a file output writing to s with lines drawn by r.
func New(s *sink.Sink, r *layout.Renderer) *Output {
	return &Output{sink: s, r: r}
}

// Sink is the underlying sink, for allow-set changes.
func (o *Output) Sink() *sink.Sink { return o.sink }

// Write appends msg. Levels outside the sink's allow-set are dropped.
func (o *Output) Write(_ context.Context, msg model.Message) error {
	if !o.sink.Allowed(msg.Level) {
		return nil
	}
	store := o.r.Theme()
	accent, text := store.Colors().For(msg.Level)
	ts := msg.Timestamp
	if ts.IsZero() {
		ts = o.r.Now()
	}
	line := o.r.LineAt(ts, accent, text, store.Symbols().For(msg.Level), msg.Title, msg.Body)
	return o.sink.Append(msg.Level, line)
}

// Close flushes and closes the sink's handle.
func (o *Output) Close() error {
	return o.sink.Close()
}
