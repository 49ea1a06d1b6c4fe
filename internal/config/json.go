package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON shape of [StructuredConfig].
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		AdminEmail    string   `json:"admin_email"`
		AdminPassword string   `json:"admin_password"`
		Version       string   `json:"version"`
		LogLevel      string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Objects struct {
			Driver         string   `json:"driver"`
			Endpoint       string   `json:"endpoint"`
			Region         string   `json:"region"`
			AccessKey      string   `json:"access_key"`
			SecretKey      string   `json:"secret_key"`
			UsePathStyle   bool     `json:"use_path_style"`
			PublicBaseURL  string   `json:"public_base_url"`
			LocalDir       string   `json:"local_dir"`
			MaxRetries     int      `json:"max_retries"`
			RetryBaseDelay Duration `json:"retry_base_delay"`
		} `json:"objects,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress       string   `json:"http_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		AllowedOrigins    []string `json:"allowed_origins"`
		TrustProxyHeaders bool     `json:"trust_proxy_headers"`
	} `json:"server,omitempty"`

	Gate struct {
		Window         Duration `json:"window"`
		MaxMessages    int      `json:"max_messages"`
		AutoBlockAfter int      `json:"auto_block_after"`
	} `json:"gate,omitempty"`

	Adapter struct {
		RevalidationURL    string   `json:"revalidation_url"`
		RevalidationSecret string   `json:"revalidation_secret"`
		RequestTimeout     Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		RevalidationDebounce Duration `json:"revalidation_debounce"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	objects := jsonCfg.Storage.Objects
	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			AdminEmail:    jsonCfg.App.AdminEmail,
			AdminPassword: jsonCfg.App.AdminPassword,
			Version:       jsonCfg.App.Version,
			LogLevel:      jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Objects: Objects{
				Driver:         objects.Driver,
				Endpoint:       objects.Endpoint,
				Region:         objects.Region,
				AccessKey:      objects.AccessKey,
				SecretKey:      objects.SecretKey,
				UsePathStyle:   objects.UsePathStyle,
				PublicBaseURL:  objects.PublicBaseURL,
				LocalDir:       objects.LocalDir,
				MaxRetries:     objects.MaxRetries,
				RetryBaseDelay: time.Duration(objects.RetryBaseDelay),
			},
		},
		Server: Server{
			HTTPAddress:       jsonCfg.Server.HTTPAddress,
			RequestTimeout:    time.Duration(jsonCfg.Server.RequestTimeout),
			AllowedOrigins:    jsonCfg.Server.AllowedOrigins,
			TrustProxyHeaders: jsonCfg.Server.TrustProxyHeaders,
		},
		Gate: Gate{
			Window:         time.Duration(jsonCfg.Gate.Window),
			MaxMessages:    jsonCfg.Gate.MaxMessages,
			AutoBlockAfter: jsonCfg.Gate.AutoBlockAfter,
		},
		Adapter: Adapter{
			RevalidationURL:    jsonCfg.Adapter.RevalidationURL,
			RevalidationSecret: jsonCfg.Adapter.RevalidationSecret,
			RequestTimeout:     time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			RevalidationDebounce: time.Duration(jsonCfg.Workers.RevalidationDebounce),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
