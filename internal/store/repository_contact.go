package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/models"
	sq "github.com/Masterminds/squirrel"
)

// contactMessageRepository adds the rate-gate and inbox queries to the
// generic repository of the contact_messages table.
type contactMessageRepository struct {
	*contentRepository[models.ContactMessage]
}

// NewContactMessageRepository constructs a [ContactMessageRepository].
func NewContactMessageRepository(db *DB) ContactMessageRepository {
	return &contactMessageRepository{
		contentRepository: newContentRepository(db, contactMessagesTable),
	}
}

// RecentByIP returns creation times of the messages sent from ip at or
// after since, oldest first.
func (r *contactMessageRepository) RecentByIP(ctx context.Context, ip string, since time.Time) ([]time.Time, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Select("created_at").
		From(contactMessagesTable.name).
		Where(sq.Eq{"ip": ip}).
		Where(sq.GtOrEq{"created_at": since.UTC()}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "contactMessageRepository.RecentByIP").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var times []time.Time
	err = r.withRetry(ctx, func(ctx context.Context) error {
		times = times[:0]

		rows, err := r.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var t time.Time
			if err := rows.Scan(&t); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			times = append(times, t.UTC())
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).
			Str("func", "contactMessageRepository.RecentByIP").
			Str("ip", ip).
			Msg("failed to query recent messages")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return times, nil
}

func (r *contactMessageRepository) CountUnread(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Select("COUNT(*)").
		From(contactMessagesTable.name).
		Where(sq.Eq{"status": string(models.MessageUnread)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	err = r.withRetry(ctx, func(ctx context.Context) error {
		return r.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		log.Err(err).Str("func", "contactMessageRepository.CountUnread").Msg("failed to count unread messages")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *contactMessageRepository) UpdateStatus(ctx context.Context, id string, status models.MessageStatus) (models.ContactMessage, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Update(contactMessagesTable.name).
		Set("status", string(status)).
		Set("updated_at", r.now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.ContactMessage{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.withRetry(ctx, func(ctx context.Context) error {
		res, err := r.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "contactMessageRepository.UpdateStatus").
			Str("id", id).
			Msg("failed to update message status")
		return models.ContactMessage{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.ContactMessage{}, ErrNotFound
	}

	return r.Get(ctx, id)
}

// blockedIPRepository adds exact-address lookups to the generic repository
// of the blocked_ips table.
type blockedIPRepository struct {
	*contentRepository[models.BlockedIP]
}

// NewBlockedIPRepository constructs a [BlockedIPRepository].
func NewBlockedIPRepository(db *DB) BlockedIPRepository {
	return &blockedIPRepository{
		contentRepository: newContentRepository(db, blockedIPsTable),
	}
}

// FindByIP returns the block entry for ip, or [ErrNotFound].
func (r *blockedIPRepository) FindByIP(ctx context.Context, ip string) (models.BlockedIP, error) {
	log := logger.FromContext(ctx)
	var rec models.BlockedIP

	query, args, err := r.builder.Select(blockedIPsTable.selectColumns()...).
		From(blockedIPsTable.name).
		Where(sq.Eq{"ip": ip}).
		ToSql()
	if err != nil {
		return rec, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		return r.QueryRowContext(ctx, query, args...).Scan(blockedIPsTable.scanDest(&rec)...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "blockedIPRepository.FindByIP").Str("ip", ip).Msg("failed to look up blocked ip")
		return rec, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return rec, nil
}

func (r *blockedIPRepository) DeleteByIP(ctx context.Context, ip string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Delete(blockedIPsTable.name).Where(sq.Eq{"ip": ip}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.withRetry(ctx, func(ctx context.Context) error {
		res, err := r.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "blockedIPRepository.DeleteByIP").Str("ip", ip).Msg("failed to unblock ip")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
