// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides outbound integrations of the content backend.
//
// The primary abstraction is [FrontendAdapter], which tells the public site
// that cached pages for some collections are stale. The package ships an
// HTTP implementation ([NewHTTPFrontendAdapter]) that calls the site's
// revalidation webhook.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401).
package adapter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// FrontendAdapter notifies the public site about changed content.
type FrontendAdapter interface {
	// Revalidate asks the site to rebuild every page tagged with one of tags.
	// Returns an error if the request fails or the site responds with a
	// non-2xx status.
	Revalidate(ctx context.Context, tags []string) error
}
