// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default values applied before any other source.
const (
	DefaultHTTPAddress          = "localhost:8080"
	DefaultRequestTimeout       = 30 * time.Second
	DefaultTokenIssuer          = "portfolio-cms"
	DefaultTokenDuration        = 24 * time.Hour
	DefaultLogLevel             = "debug"
	DefaultObjectsDriver        = DriverLocal
	DefaultLocalDir             = "./data/files"
	DefaultPublicBaseURL        = "http://localhost:8080/files"
	DefaultRegion               = "us-east-1"
	DefaultMaxRetries           = 3
	DefaultRetryBaseDelay       = 500 * time.Millisecond
	DefaultGateWindow           = time.Hour
	DefaultGateMaxMessages      = 3
	DefaultAutoBlockAfter       = 10
	DefaultAdapterTimeout       = 5 * time.Second
	DefaultRevalidationDebounce = 2 * time.Second
	DefaultDotEnvPath           = ".env"
)

// Object storage drivers.
const (
	DriverS3    = "s3"
	DriverLocal = "local"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			LogLevel:      DefaultLogLevel,
		},
		Storage: Storage{
			Objects: Objects{
				Driver:         DefaultObjectsDriver,
				Region:         DefaultRegion,
				LocalDir:       DefaultLocalDir,
				PublicBaseURL:  DefaultPublicBaseURL,
				MaxRetries:     DefaultMaxRetries,
				RetryBaseDelay: DefaultRetryBaseDelay,
			},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Gate: Gate{
			Window:         DefaultGateWindow,
			MaxMessages:    DefaultGateMaxMessages,
			AutoBlockAfter: DefaultAutoBlockAfter,
		},
		Adapter: Adapter{
			RequestTimeout: DefaultAdapterTimeout,
		},
		Workers: Workers{
			RevalidationDebounce: DefaultRevalidationDebounce,
		},
		DotEnvPath: DefaultDotEnvPath,
	}
}
