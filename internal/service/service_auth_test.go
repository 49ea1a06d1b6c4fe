package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/mock"
	"github.com/MKhiriev/portfolio-cms/internal/store"
	"github.com/MKhiriev/portfolio-cms/internal/utils"
	"github.com/MKhiriev/portfolio-cms/internal/validators"
	"github.com/MKhiriev/portfolio-cms/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const adminEmail = "admin@example.com"

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "portfolio-cms",
		TokenDuration: time.Hour,
		Version:       "1.0.0",
	}
}

func newAuthFixture(t *testing.T) (*mock.MockAdminRepository, AuthService) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockAdminRepository(ctrl)
	return repo, NewAuthService(repo, testAppConfig(), logger.Nop())
}

func storedAdmin(t *testing.T, password string) models.Admin {
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return models.Admin{ID: "0190b6a0-aaaa-7000-8000-000000000001", Email: adminEmail, PasswordHash: hash}
}

// ─────────────────────────────────────────────
// EnsureAdmin
// ─────────────────────────────────────────────

func TestAuthService_EnsureAdmin_CreatesMissingAdmin(t *testing.T) {
	repo, svc := newAuthFixture(t)

	repo.EXPECT().FindAdminByEmail(gomock.Any(), adminEmail).Return(models.Admin{}, store.ErrNotFound)
	repo.EXPECT().CreateAdmin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a models.Admin) (models.Admin, error) {
			assert.Equal(t, adminEmail, a.Email)
			assert.True(t, utils.CheckPassword(a.PasswordHash, "s3cret"))
			return a, nil
		})

	require.NoError(t, svc.EnsureAdmin(context.Background(), adminEmail, "s3cret"))
}

func TestAuthService_EnsureAdmin_ExistingAdminUntouched(t *testing.T) {
	repo, svc := newAuthFixture(t)

	repo.EXPECT().FindAdminByEmail(gomock.Any(), adminEmail).Return(models.Admin{Email: adminEmail}, nil)

	require.NoError(t, svc.EnsureAdmin(context.Background(), adminEmail, "other"))
}

func TestAuthService_EnsureAdmin_EmptyEmailIsNoop(t *testing.T) {
	_, svc := newAuthFixture(t)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "", ""))
}

func TestAuthService_EnsureAdmin_RaceIsIgnored(t *testing.T) {
	repo, svc := newAuthFixture(t)

	repo.EXPECT().FindAdminByEmail(gomock.Any(), adminEmail).Return(models.Admin{}, store.ErrNotFound)
	repo.EXPECT().CreateAdmin(gomock.Any(), gomock.Any()).Return(models.Admin{}, store.ErrAlreadyExists)

	require.NoError(t, svc.EnsureAdmin(context.Background(), adminEmail, "s3cret"))
}

func TestAuthService_EnsureAdmin_LookupFailure(t *testing.T) {
	repo, svc := newAuthFixture(t)
	dbErr := errors.New("db down")

	repo.EXPECT().FindAdminByEmail(gomock.Any(), adminEmail).Return(models.Admin{}, dbErr)

	assert.ErrorIs(t, svc.EnsureAdmin(context.Background(), adminEmail, "s3cret"), dbErr)
}

// ─────────────────────────────────────────────
// Login / ParseToken
// ─────────────────────────────────────────────

func TestAuthService_Login_IssuesParsableToken(t *testing.T) {
	repo, svc := newAuthFixture(t)
	admin := storedAdmin(t, "s3cret")

	repo.EXPECT().FindAdminByEmail(gomock.Any(), adminEmail).Return(admin, nil)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: adminEmail, Password: "s3cret"})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	token, err := svc.ParseToken(context.Background(), resp.Token)
	require.NoError(t, err)
	adminID, err := token.GetAdminID()
	require.NoError(t, err)
	assert.Equal(t, admin.ID, adminID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo, svc := newAuthFixture(t)

	repo.EXPECT().FindAdminByEmail(gomock.Any(), adminEmail).Return(storedAdmin(t, "s3cret"), nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: adminEmail, Password: "guess"})

	assert.ErrorIs(t, err, ErrWrongCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo, svc := newAuthFixture(t)

	repo.EXPECT().FindAdminByEmail(gomock.Any(), "who@example.com").Return(models.Admin{}, store.ErrNotFound)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "who@example.com", Password: "x"})

	assert.ErrorIs(t, err, ErrWrongCredentials)
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: adminEmail})

	assert.ErrorIs(t, err, validators.ErrInvalidInput)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	_, svc := newAuthFixture(t)

	_, err := svc.ParseToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	foreign, err := utils.GenerateJWTToken("someone-else", "a", time.Hour, "test-sign-key")
	require.NoError(t, err)
	_, err = svc.ParseToken(context.Background(), foreign.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
