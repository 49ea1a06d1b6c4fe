package store

import (
	"github.com/MKhiriev/portfolio-cms/models"
	sq "github.com/Masterminds/squirrel"
)

// Query builders shared by every table-backed repository. Placeholders come
// from the connection's builder: $N for PostgreSQL, ? for SQLite.

func buildListQuery[T any](b sq.StatementBuilderType, t table[T], opts models.ListOptions) (string, []any, error) {
	q := b.Select(t.selectColumns()...).From(t.name)
	if t.filter != nil {
		q = t.filter(q, opts)
	}
	q = q.OrderBy(t.orderBy...)
	if opts.Limit > 0 {
		q = q.Limit(uint64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Offset(uint64(opts.Offset))
	}
	return q.ToSql()
}

func buildGetQuery[T any](b sq.StatementBuilderType, t table[T], id string) (string, []any, error) {
	return b.Select(t.selectColumns()...).
		From(t.name).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildInsertQuery[T any](b sq.StatementBuilderType, t table[T], rec *T) (string, []any, error) {
	meta := models.MetaOf(rec)

	values := make([]any, 0, len(t.columns)+3)
	values = append(values, meta.ID)
	values = append(values, t.values(rec)...)
	values = append(values, meta.CreatedAt, meta.UpdatedAt)

	return b.Insert(t.name).
		Columns(t.selectColumns()...).
		Values(values...).
		ToSql()
}

// buildUpdateQuery sets every entity column plus updated_at. id and
// created_at are never written.
func buildUpdateQuery[T any](b sq.StatementBuilderType, t table[T], id string, rec *T) (string, []any, error) {
	q := b.Update(t.name)
	for i, v := range t.values(rec) {
		q = q.Set(t.columns[i], v)
	}
	return q.Set("updated_at", models.MetaOf(rec).UpdatedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteQuery[T any](b sq.StatementBuilderType, t table[T], id string) (string, []any, error) {
	return b.Delete(t.name).Where(sq.Eq{"id": id}).ToSql()
}
