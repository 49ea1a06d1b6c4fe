// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// Messages shown to callers for errors whose detail stays in the logs.
const (
	msgInvalidJSON      = "Invalid JSON was passed"
	msgInternalError    = "Internal server error"
	msgNotFound         = "Not found"
	msgUnauthorized     = "Unauthorized"
	msgBlocked          = "Your IP address has been blocked from sending messages."
	msgRateLimited      = "Too many messages. Please try again later."
	msgUploadFailed     = "Failed to upload file"
	msgBodyTooLarge     = "Request body too large"
	msgMissingFile      = "Missing file field"
	msgAlreadyExists    = "Record already exists"
	msgMethodNotAllowed = "Method not allowed"
)
