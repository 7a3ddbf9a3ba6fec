package worker

import (
	"context"
)

// Worker is a long-running background task managed by the Manager.
type Worker interface {
	// Start runs the worker loop until Stop is called or the context
	// is cancelled.
	Start(ctx context.Context) error

	// Stop signals the worker to shut down.
	Stop() error

	// Name identifies the worker in logs.
	Name() string
}
