package server

import "context"

// Server defines the lifecycle contract for transport servers managed by
// this package.
type Server interface {
	// RunServer starts serving requests and blocks until ctx is cancelled
	// and the server has shut down, or until it fails to serve.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server, waiting for active requests
	// until ctx expires.
	Shutdown(ctx context.Context) error
}
