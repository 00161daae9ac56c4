// Package pipeline stamps messages and dispatches them to outputs.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/crimson-sun/tinsel/internal/model"
	"github.com/crimson-sun/tinsel/internal/output"
	"github.com/crimson-sun/tinsel/internal/output/multi"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the time source used to stamp messages. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// Pipeline sends every message to each of its outputs. A message is
// stamped once so all outputs agree on its time.
type Pipeline struct {
	output *multi.Multi
	now    func() time.Time
}

// New creates a Pipeline over the given outputs. Nil outputs are skipped.
func New(outputs []output.Output, opts ...Option) *Pipeline {
	p := &Pipeline{
		output: multi.New(outputs...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit stamps msg if it has no timestamp and writes it to every output.
// Messages with an unknown level, or sent to a pipeline with no outputs,
// are dropped. Output failures do not stop
// delivery to the remaining outputs; they are returned joined.
func (p *Pipeline) Emit(ctx context.Context, msg model.Message) error {
	if !msg.Level.Valid() || p.output.Len() == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = p.now()
	}
	if err := p.output.Write(ctx, msg); err != nil {
		return fmt.Errorf("pipeline output: %w", err)
	}
	return nil
}

// Close shuts down every output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
