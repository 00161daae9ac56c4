package multi

import (
	"context"
	"errors"

	"github.com/crimson-sun/tinsel/internal/model"
	"github.com/crimson-sun/tinsel/internal/output"
)

// Multi fans out messages to multiple output.Output implementations.
// Each Write call delivers the message to every wrapped output sequentially.
// If one output fails, the remaining outputs still receive the message.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi that fans out to the given outputs. Nil outputs are
// skipped.
func New(outputs ...output.Output) *Multi {
	m := &Multi{}
	for _, o := range outputs {
		if o != nil {
			m.outputs = append(m.outputs, o)
		}
	}
	return m
}

// Len is the number of wrapped outputs.
func (m *Multi) Len() int { return len(m.outputs) }

// Write delivers the message to every wrapped output. Errors are collected
// but do not prevent delivery to subsequent outputs.
func (m *Multi) Write(ctx context.Context, msg model.Message) error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Write(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close calls Close on every wrapped output, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
