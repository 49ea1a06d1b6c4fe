package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/utils"
	"github.com/MKhiriev/portfolio-cms/models"
	sq "github.com/Masterminds/squirrel"
)

// adminRepository stores the administrator account in the "admins" table.
type adminRepository struct {
	*DB
	ids *utils.UUIDGenerator
}

// NewAdminRepository constructs an [AdminRepository] backed by the provided
// database connection.
func NewAdminRepository(db *DB) AdminRepository {
	return &adminRepository{
		DB:  db,
		ids: utils.NewUUIDGenerator(),
	}
}

// CreateAdmin persists a new administrator and returns it with the
// server-assigned ID and CreatedAt.
//
// Error handling:
//   - unique violation on email → [ErrAlreadyExists].
//   - any other driver-level error → wrapped with [ErrExecutingStatement].
func (r *adminRepository) CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error) {
	log := logger.FromContext(ctx)

	admin.ID = r.ids.Generate()
	admin.CreatedAt = utcNow()

	query, args, err := r.builder.Insert("admins").
		Columns("id", "email", "password_hash", "created_at").
		Values(admin.ID, admin.Email, admin.PasswordHash, admin.CreatedAt).
		ToSql()
	if err != nil {
		return models.Admin{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*adminRepository.CreateAdmin").Msg("error creating admin")
		return models.Admin{}, r.translate(err, ErrExecutingStatement)
	}

	return admin, nil
}

// FindAdminByEmail returns the administrator with the given email or
// [ErrNotFound].
func (r *adminRepository) FindAdminByEmail(ctx context.Context, email string) (models.Admin, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Select("id", "email", "password_hash", "created_at").
		From("admins").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return models.Admin{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var admin models.Admin
	err = r.withRetry(ctx, func(ctx context.Context) error {
		return r.QueryRowContext(ctx, query, args...).
			Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*adminRepository.FindAdminByEmail").Msg("error: scanning error")
		return models.Admin{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return admin, nil
}
