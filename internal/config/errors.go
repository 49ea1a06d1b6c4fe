package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid database or object storage
	// settings (for example, empty DSN or unknown driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates an empty listen address or a
	// non-positive request timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidGateConfigs indicates an enabled contact gate without a window.
	ErrInvalidGateConfigs = errors.New("invalid gate configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero revalidation debounce).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
