// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// portfolio CMS server. It aggregates all sub-configurations and is
// populated by merging defaults, a .env file, environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters,
	// the bootstrap administrator and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database and the
	// object storage used for uploaded files.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and CORS settings for the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Gate holds the contact form rate limiting and auto-block settings.
	Gate Gate `envPrefix:"GATE_"`

	// Adapter holds configuration for outbound integrations.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// DotEnvPath is the .env file loaded into the process environment
	// before environment variables are parsed. Missing files are ignored.
	DotEnvPath string `env:"DOTENV"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Objects holds the object storage settings for uploaded files.
	Objects Objects `envPrefix:"OBJECTS_"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// AdminEmail and AdminPassword describe the administrator account
	// created on startup when it does not exist yet.
	// Env: APP_ADMIN_EMAIL, APP_ADMIN_PASSWORD
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Version is the semantic version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AllowedOrigins lists the origins allowed by CORS.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// TrustProxyHeaders takes the client address from X-Real-IP,
	// True-Client-IP or X-Forwarded-For. Enable it only behind a proxy that
	// overwrites those headers; otherwise the connection address is used.
	// Env: SERVER_TRUST_PROXY_HEADERS
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver by scheme: "postgres://" or "postgresql://"
	// use pgx, "sqlite://" and "file:" use go-sqlite3.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Objects holds object storage settings.
type Objects struct {
	// Driver is "s3" for any S3-compatible service or "local" for a
	// directory on disk served by the HTTP server under /files/.
	Driver string `env:"DRIVER"`

	Endpoint     string `env:"ENDPOINT"`
	Region       string `env:"REGION"`
	AccessKey    string `env:"ACCESS_KEY"`
	SecretKey    string `env:"SECRET_KEY"`
	UsePathStyle bool   `env:"USE_PATH_STYLE"`

	// PublicBaseURL prefixes every returned object URL
	// ("<PublicBaseURL>/<bucket>/<key>").
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// LocalDir is the root directory of the local driver.
	LocalDir string `env:"LOCAL_DIR"`

	// MaxRetries is the total number of upload attempts.
	MaxRetries int `env:"MAX_RETRIES"`

	// RetryBaseDelay is the first backoff delay; it doubles on every
	// attempt and is capped at five seconds.
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY"`
}

// Gate holds the contact form protection settings.
type Gate struct {
	// Window is the period over which contact messages per IP are counted.
	Window time.Duration `env:"WINDOW"`

	// MaxMessages is the number of messages an IP may send per Window.
	// A negative value disables the rate check.
	MaxMessages int `env:"MAX_MESSAGES"`

	// AutoBlockAfter is the number of rejected attempts within Window
	// after which the IP is added to the block list.
	// A negative value disables auto-blocking.
	AutoBlockAfter int `env:"AUTO_BLOCK_AFTER"`
}

// Adapter holds configuration for outbound integrations.
type Adapter struct {
	// RevalidationURL is the front-end endpoint notified after content
	// changes. Empty disables revalidation.
	// Env: ADAPTER_REVALIDATION_URL
	RevalidationURL string `env:"REVALIDATION_URL"`

	// RevalidationSecret is sent with every revalidation request.
	// Env: ADAPTER_REVALIDATION_SECRET
	RevalidationSecret string `env:"REVALIDATION_SECRET"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RevalidationDebounce groups content change signals arriving within
	// this interval into a single revalidation request.
	RevalidationDebounce time.Duration `env:"REVALIDATION_DEBOUNCE"`
}

// RateLimitEnabled reports whether the per-IP message limit is active.
func (g Gate) RateLimitEnabled() bool {
	return g.MaxMessages > 0
}

// AutoBlockEnabled reports whether repeated offenders are blocked.
func (g Gate) AutoBlockEnabled() bool {
	return g.AutoBlockAfter > 0
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources override non-zero fields of earlier ones):
//  0. Built-in defaults
//  1. .env file (loaded into the environment, existing variables win)
//  2. Environment variables
//  3. Command-line flags (args, usually os.Args[1:])
//  4. JSON file (path resolved from sources 2 and 3)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
