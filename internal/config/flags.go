package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-cors-origins comma separated allowed origins
//	-trust-proxy-headers take the client address from proxy headers
//	-objects-driver object storage driver (s3, local)
//	-objects-dir local object storage directory
//	-objects-endpoint S3 endpoint
//	-public-base-url public URL prefix for stored files
//	-gate-window contact rate window
//	-gate-max-messages contact messages allowed per window
//	-revalidation-url front-end revalidation endpoint
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("portfolio-cms", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var corsOrigins string
	var trustProxyHeaders bool
	var objectsDriver, objectsDir, objectsEndpoint, publicBaseURL string
	var gateWindow time.Duration
	var gateMaxMessages int
	var revalidationURL string
	var logLevel string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&corsOrigins, "cors-origins", "", "Comma separated CORS origins")
	fs.BoolVar(&trustProxyHeaders, "trust-proxy-headers", false, "Take the client address from proxy headers")
	fs.StringVar(&objectsDriver, "objects-driver", "", "Object storage driver (s3, local)")
	fs.StringVar(&objectsDir, "objects-dir", "", "Local object storage directory")
	fs.StringVar(&objectsEndpoint, "objects-endpoint", "", "S3 endpoint")
	fs.StringVar(&publicBaseURL, "public-base-url", "", "Public URL prefix for stored files")
	fs.DurationVar(&gateWindow, "gate-window", 0, "Contact rate window")
	fs.IntVar(&gateMaxMessages, "gate-max-messages", 0, "Contact messages per window")
	fs.StringVar(&revalidationURL, "revalidation-url", "", "Front-end revalidation URL")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	var origins []string
	for _, o := range strings.Split(corsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			LogLevel:      logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Objects: Objects{
				Driver:        objectsDriver,
				LocalDir:      objectsDir,
				Endpoint:      objectsEndpoint,
				PublicBaseURL: publicBaseURL,
			},
		},
		Server: Server{
			HTTPAddress:       serverAddress.String(),
			RequestTimeout:    requestTimeout,
			AllowedOrigins:    origins,
			TrustProxyHeaders: trustProxyHeaders,
		},
		Gate: Gate{
			Window:      gateWindow,
			MaxMessages: gateMaxMessages,
		},
		Adapter: Adapter{
			RevalidationURL: revalidationURL,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host listens on all interfaces.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
