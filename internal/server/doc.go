// Package server runs the HTTP transport: startup, signal-driven graceful
// shutdown and connection timeouts.
package server
