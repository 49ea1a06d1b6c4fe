// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns at once; the worker keeps going in its
// own goroutine until ctx is cancelled. Wait blocks until the worker has
// finished its shutdown work.
//
// Example implementation:
//
//	type MyWorker struct{ done chan struct{} }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    go func() {
//	        defer close(w.done)
//	        <-ctx.Done()
//	    }()
//	}
//
//	func (w *MyWorker) Wait() { <-w.done }
type Worker interface {
	Run(ctx context.Context)
	Wait()
}
