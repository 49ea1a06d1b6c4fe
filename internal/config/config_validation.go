// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. Negative gate
// thresholds are normalised to zero (disabled).
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs)
	}

	switch cfg.Storage.Objects.Driver {
	case DriverLocal:
		if cfg.Storage.Objects.LocalDir == "" {
			return fmt.Errorf("%w: empty local objects dir", ErrInvalidStorageConfigs)
		}
	case DriverS3:
		if cfg.Storage.Objects.Region == "" {
			return fmt.Errorf("%w: empty S3 region", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown objects driver %q", ErrInvalidStorageConfigs, cfg.Storage.Objects.Driver)
	}

	if cfg.Storage.Objects.MaxRetries < 1 || cfg.Storage.Objects.RetryBaseDelay <= 0 {
		return fmt.Errorf("%w: retries must be positive", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token sign key and duration are required", ErrInvalidAppConfigs)
	}

	if (cfg.App.AdminEmail == "") != (cfg.App.AdminPassword == "") {
		return fmt.Errorf("%w: admin email and password must be set together", ErrInvalidAppConfigs)
	}

	if strings.TrimSpace(cfg.Server.HTTPAddress) == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Gate.MaxMessages < 0 {
		cfg.Gate.MaxMessages = 0
	}
	if cfg.Gate.AutoBlockAfter < 0 {
		cfg.Gate.AutoBlockAfter = 0
	}
	if (cfg.Gate.RateLimitEnabled() || cfg.Gate.AutoBlockEnabled()) && cfg.Gate.Window <= 0 {
		return ErrInvalidGateConfigs
	}

	if cfg.Adapter.RevalidationURL != "" && (cfg.Workers.RevalidationDebounce <= 0 || cfg.Adapter.RequestTimeout <= 0) {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
