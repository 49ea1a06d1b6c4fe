package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/store"
	"github.com/MKhiriev/portfolio-cms/internal/utils"
	"github.com/MKhiriev/portfolio-cms/internal/validators"
	"github.com/MKhiriev/portfolio-cms/models"
)

// authService is the concrete implementation of AuthService.
// It bootstraps the administrator account, verifies bcrypt password hashes
// and manages the JWT token lifecycle.
type authService struct {
	// adminRepository is the data-access layer used to create and look up
	// the administrator.
	adminRepository store.AdminRepository

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// AdminRepository and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(adminRepository store.AdminRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		adminRepository: adminRepository,
		validator:       validators.NewContentValidator(),
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		tokenDuration:   cfg.TokenDuration,
		logger:          logger,
	}
}

// EnsureAdmin creates the administrator account with a bcrypt hash of
// password unless an account with email exists. An empty email is a no-op.
func (a *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	log := logger.FromContext(ctx)

	if email == "" {
		return nil
	}

	_, err := a.adminRepository.FindAdminByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("admin search by email failed: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	_, err = a.adminRepository.CreateAdmin(ctx, models.Admin{Email: email, PasswordHash: hash})
	if err != nil && !errors.Is(err, store.ErrAlreadyExists) {
		log.Err(err).Str("email", email).Msg("admin creation ended with error")
		return fmt.Errorf("admin creation ended with error: %w", err)
	}

	log.Info().Str("email", email).Msg("admin account created")
	return nil
}

// Login authenticates the administrator and issues a signed JWT.
//
// Returns the token or:
//   - a validation error if Email or Password is empty.
//   - ErrWrongCredentials if no account matches or the password is wrong.
//   - ErrTokenCreationFailed if signing fails.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.LoginResponse{}, err
	}

	admin, err := a.adminRepository.FindAdminByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		log.Info().Str("email", req.Email).Msg("login for unknown email")
		return models.LoginResponse{}, ErrWrongCredentials
	}
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("admin search by email failed")
		return models.LoginResponse{}, fmt.Errorf("admin search by email failed: %w", err)
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		log.Info().Str("id", admin.ID).Msg("wrong password")
		return models.LoginResponse{}, ErrWrongCredentials
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, admin.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.LoginResponse{
		Token:     token.SignedString,
		ExpiresAt: token.ExpiresAt.Time,
	}, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
