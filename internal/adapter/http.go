package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/utils"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body keyed
// with the revalidation secret.
const SignatureHeader = "X-Signature"

type revalidateRequest struct {
	Secret string   `json:"secret"`
	Tags   []string `json:"tags"`
}

type httpFrontendAdapter struct {
	client *utils.HTTPClient

	webhookURL string
	secret     string

	logger *logger.Logger
}

// NewHTTPFrontendAdapter constructs an HTTP implementation of [FrontendAdapter].
// It normalises and validates cfg.RevalidationURL and configures the
// underlying HTTP client with the request timeout.
//
// Returns an error if cfg.RevalidationURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPFrontendAdapter(cfg config.Adapter, logger *logger.Logger) (FrontendAdapter, error) {
	webhookURL, err := normalizeURL(cfg.RevalidationURL)
	if err != nil {
		return nil, fmt.Errorf("invalid revalidation url: %w", err)
	}

	return &httpFrontendAdapter{
		client:     utils.NewHTTPClient(cfg.RequestTimeout),
		webhookURL: webhookURL,
		secret:     cfg.RevalidationSecret,
		logger:     logger,
	}, nil
}

func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Revalidate implements [FrontendAdapter]. It POSTs {"secret", "tags"} to
// the webhook and signs the body with [SignatureHeader].
func (h *httpFrontendAdapter) Revalidate(ctx context.Context, tags []string) error {
	if len(tags) == 0 {
		return nil
	}

	body, err := json.Marshal(revalidateRequest{Secret: h.secret, Tags: tags})
	if err != nil {
		return fmt.Errorf("encode revalidate request: %w", err)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(SignatureHeader, utils.HashString(string(body), h.secret)).
		SetBody(body).
		Post(h.webhookURL)
	if err != nil {
		return fmt.Errorf("%w: revalidate request: %w", ErrRequestFailed, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*httpFrontendAdapter.Revalidate").
		Strs("tags", tags).
		Msg("front-end revalidated")
	return nil
}
