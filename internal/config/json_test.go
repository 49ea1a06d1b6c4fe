// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRawJSON(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJSON_Success(t *testing.T) {
	path := writeRawJSON(t, `{
		"app": {"token_sign_key": "k", "token_duration": "90m", "version": "0.9.0"},
		"storage": {
			"db": {"dsn": "sqlite://cms.db"},
			"objects": {"driver": "s3", "endpoint": "http://minio:9000", "use_path_style": true, "max_retries": 5, "retry_base_delay": "1s"}
		},
		"server": {"http_address": ":8080", "request_timeout": "15s", "allowed_origins": ["https://site.dev"], "trust_proxy_headers": true},
		"gate": {"window": "1h", "max_messages": 4, "auto_block_after": 8},
		"adapter": {"revalidation_url": "http://front/revalidate", "revalidation_secret": "s", "request_timeout": "3s"},
		"workers": {"revalidation_debounce": "500ms"}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "k", cfg.App.TokenSignKey)
	assert.Equal(t, 90*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, "sqlite://cms.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "http://minio:9000", cfg.Storage.Objects.Endpoint)
	assert.True(t, cfg.Storage.Objects.UsePathStyle)
	assert.Equal(t, 5, cfg.Storage.Objects.MaxRetries)
	assert.Equal(t, time.Second, cfg.Storage.Objects.RetryBaseDelay)
	assert.Equal(t, []string{"https://site.dev"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Server.TrustProxyHeaders)
	assert.Equal(t, 4, cfg.Gate.MaxMessages)
	assert.Equal(t, 8, cfg.Gate.AutoBlockAfter)
	assert.Equal(t, "s", cfg.Adapter.RevalidationSecret)
	assert.Equal(t, 500*time.Millisecond, cfg.Workers.RevalidationDebounce)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	_, err := parseJSON(writeRawJSON(t, `{"app": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	_, err := parseJSON(writeRawJSON(t, `{"gate": {"window": "sometimes"}}`))
	require.Error(t, err)
}

func TestParseJSON_NumericDuration(t *testing.T) {
	cfg, err := parseJSON(writeRawJSON(t, `{"server": {"request_timeout": 1000000000}}`))
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout)
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(2 * time.Minute).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2m0s"`, string(b))
}
