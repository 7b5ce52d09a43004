// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that starts
// and stops several workers as one.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run must not block: implementations spawn their own goroutines and keep
// working until ctx is cancelled or Stop is called. Stop blocks until the
// worker has fully exited and is safe to call on an idle worker.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
