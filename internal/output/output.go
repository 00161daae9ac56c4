package output

import (
	"context"

	"github.com/crimson-sun/tinsel/internal/model"
)

// Output defines the interface for message destinations.
type Output interface {
	Write(ctx context.Context, msg model.Message) error
	Close() error
}
