package models

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
//
// AdminID is a cached copy of the "sub" (subject) claim.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// AdminID is the administrator identifier extracted from the "sub" claim.
	AdminID string `json:"-"`
}

// GetAdminID extracts the administrator identifier from the "sub" claim.
//
// Returns an error if the subject claim is missing or empty.
func (t *Token) GetAdminID() (string, error) {
	adminID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting AdminID from token: %w", err)
	}
	if adminID == "" {
		return "", errors.New("empty subject in token")
	}

	return adminID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
