package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/utils"
	"github.com/MKhiriev/portfolio-cms/models"
	sq "github.com/Masterminds/squirrel"
)

// contentRepository is the table-driven implementation of
// [ContentRepository]. One instance serves one entity type; the SQL comes
// from the entity's [table] descriptor.
type contentRepository[T any] struct {
	*DB
	table table[T]
	ids   *utils.UUIDGenerator
	now   func() time.Time
}

func newContentRepository[T any](db *DB, t table[T]) *contentRepository[T] {
	return &contentRepository[T]{
		DB:    db,
		table: t,
		ids:   utils.NewUUIDGenerator(),
		now:   utcNow,
	}
}

// utcNow truncates to microseconds, the precision PostgreSQL keeps.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (r *contentRepository[T]) funcName(method string) string {
	return r.table.name + "Repository." + method
}

func (r *contentRepository[T]) List(ctx context.Context, opts models.ListOptions) ([]T, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListQuery(r.builder, r.table, opts)
	if err != nil {
		log.Err(err).Str("func", r.funcName("List")).Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	records := make([]T, 0, 16)
	err = r.withRetry(ctx, func(ctx context.Context) error {
		records = records[:0]

		rows, err := r.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var rec T
			if err := rows.Scan(r.table.scanDest(&rec)...); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			records = append(records, rec)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", r.funcName("List")).Msg("failed to list records")
		if errors.Is(err, ErrScanningRow) {
			return nil, err
		}
		return nil, r.translate(err, ErrExecutingQuery)
	}

	return records, nil
}

func (r *contentRepository[T]) Get(ctx context.Context, id string) (T, error) {
	log := logger.FromContext(ctx)
	var rec T

	query, args, err := buildGetQuery(r.builder, r.table, id)
	if err != nil {
		log.Err(err).Str("func", r.funcName("Get")).Msg("failed to create query")
		return rec, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		return r.QueryRowContext(ctx, query, args...).Scan(r.table.scanDest(&rec)...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return rec, ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("func", r.funcName("Get")).Str("id", id).Msg("failed to get record")
		return rec, r.translate(err, ErrScanningRow)
	}

	return rec, nil
}

// Create assigns a new id and timestamps; any id on rec is discarded.
func (r *contentRepository[T]) Create(ctx context.Context, rec T) (T, error) {
	log := logger.FromContext(ctx)

	meta := models.MetaOf(&rec)
	meta.ID = r.ids.Generate()
	meta.CreatedAt = r.now()
	meta.UpdatedAt = meta.CreatedAt

	query, args, err := buildInsertQuery(r.builder, r.table, &rec)
	if err != nil {
		log.Err(err).Str("func", r.funcName("Create")).Msg("failed to create query")
		return rec, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", r.funcName("Create")).Msg("failed to insert record")
		return rec, r.translate(err, ErrExecutingStatement)
	}

	log.Debug().Str("func", r.funcName("Create")).Str("id", meta.ID).Msg("record created")
	return rec, nil
}

// Update overwrites all entity columns of record id and returns the stored
// record. The id and created_at of rec are ignored.
func (r *contentRepository[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	log := logger.FromContext(ctx)

	models.MetaOf(&rec).UpdatedAt = r.now()

	query, args, err := buildUpdateQuery(r.builder, r.table, id, &rec)
	if err != nil {
		log.Err(err).Str("func", r.funcName("Update")).Msg("failed to create query")
		return rec, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
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
		log.Err(err).Str("func", r.funcName("Update")).Str("id", id).Msg("failed to update record")
		return rec, r.translate(err, ErrExecutingStatement)
	}
	if affected == 0 {
		return rec, ErrNotFound
	}

	return r.Get(ctx, id)
}

func (r *contentRepository[T]) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteQuery(r.builder, r.table, id)
	if err != nil {
		log.Err(err).Str("func", r.funcName("Delete")).Msg("failed to create query")
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
		log.Err(err).Str("func", r.funcName("Delete")).Str("id", id).Msg("failed to delete record")
		return r.translate(err, ErrExecutingStatement)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Reorder sets sort_order to the position of each id in ids inside one
// transaction. An unknown id rolls back the whole reorder with [ErrNotFound].
func (r *contentRepository[T]) Reorder(ctx context.Context, ids []string) error {
	log := logger.FromContext(ctx)

	if !r.table.sortable {
		return ErrNotSortable
	}

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", r.funcName("Reorder")).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	now := r.now()
	for idx, id := range ids {
		query, args, err := r.builder.Update(r.table.name).
			Set("sort_order", idx).
			Set("updated_at", now).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).
				Str("func", r.funcName("Reorder")).
				Int("iteration", idx+1).
				Int("total", len(ids)).
				Msg("failed to update sort order")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", r.funcName("Reorder")).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}
