// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// password hashing, HTTP response writing, client IP extraction,
// HTTP client initialization and JWT token generation and validation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AdminIDCtxKey is the key used to store the authenticated administrator
// identifier in the context.
//
//	ctx := context.WithValue(ctx, utils.AdminIDCtxKey, "0190...")
var AdminIDCtxKey = contextKey("adminID")

// GetAdminIDFromContext retrieves the administrator identifier from the context.
//
// Returns the identifier and an ok flag:
//   - ok == true: value is found, is a string and is not empty
//   - ok == false: value is missing or has an unexpected type
func GetAdminIDFromContext(ctx context.Context) (string, bool) {
	adminID, ok := ctx.Value(AdminIDCtxKey).(string)
	return adminID, ok && adminID != ""
}
