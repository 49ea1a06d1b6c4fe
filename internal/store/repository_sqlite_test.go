package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	ctx := context.Background()
	db, err := NewConnect(ctx, config.DB{DSN: "sqlite://:memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())
	return NewStorages(db, nil)
}

func TestSQLite_ProjectLifecycle(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	created, err := s.Projects.Create(ctx, models.Project{
		Title:        "CMS",
		Description:  "Portfolio backend",
		Technologies: models.StringList{"go", "sqlite"},
		Featured:     true,
		Status:       models.ProjectCompleted,
		Type:         models.ProjectWeb,
	})
	require.NoError(t, err)

	_, err = s.Projects.Create(ctx, models.Project{
		Title:       "Other",
		Description: "Not featured",
		Status:      models.ProjectPlanned,
		Type:        models.ProjectLibrary,
		SortOrder:   1,
	})
	require.NoError(t, err)

	featured := true
	list, err := s.Projects.List(ctx, models.ListOptions{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, models.StringList{"go", "sqlite"}, list[0].Technologies)
	assert.True(t, list[0].Featured)

	got, err := s.Projects.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))

	got.Title = "CMS v2"
	got.ID = "attempted-change"
	updated, err := s.Projects.Update(ctx, created.ID, got)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "CMS v2", updated.Title)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	require.NoError(t, s.Projects.Delete(ctx, created.ID))
	_, err = s.Projects.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_Reorder(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	a, err := s.Skills.Create(ctx, models.Skill{Name: "A", Category: "c", Level: models.SkillAdvanced})
	require.NoError(t, err)
	b, err := s.Skills.Create(ctx, models.Skill{Name: "B", Category: "c", Level: models.SkillAdvanced, SortOrder: 5})
	require.NoError(t, err)

	require.NoError(t, s.Skills.Reorder(ctx, []string{b.ID, a.ID}))

	list, err := s.Skills.List(ctx, models.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Name)
	assert.Equal(t, 0, list[0].SortOrder)
	assert.Equal(t, 1, list[1].SortOrder)

	assert.ErrorIs(t, s.Skills.Reorder(ctx, []string{a.ID, "missing"}), ErrNotFound)
	list, err = s.Skills.List(ctx, models.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, "B", list[0].Name)
}

func TestSQLite_BlogPostSlugIsUnique(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	published := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	_, err := s.BlogPosts.Create(ctx, models.BlogPost{
		Title: "Hello", Slug: "hello", Content: "c", Published: true, PublishedAt: &published,
		Tags: models.StringList{"go"},
	})
	require.NoError(t, err)

	_, err = s.BlogPosts.Create(ctx, models.BlogPost{Title: "Again", Slug: "hello", Content: "c"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	posts, err := s.BlogPosts.List(ctx, models.ListOptions{Slug: "hello"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].PublishedAt)
	assert.True(t, posts[0].PublishedAt.Equal(published))
}

func TestSQLite_SeededTestimonials(t *testing.T) {
	s := newSQLiteStorages(t)

	list, err := s.Testimonials.List(context.Background(), models.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestSQLite_ContactMessages(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	since := time.Now().UTC().Add(-time.Minute)
	for i := 0; i < 2; i++ {
		_, err := s.ContactMessages.Create(ctx, models.ContactMessage{
			Name: "V", Email: "v@example.com", Subject: "s", Message: "m",
			Status: models.MessageUnread, IP: "198.51.100.7",
		})
		require.NoError(t, err)
	}
	other, err := s.ContactMessages.Create(ctx, models.ContactMessage{
		Name: "W", Email: "w@example.com", Subject: "s", Message: "m",
		Status: models.MessageUnread, IP: "198.51.100.8",
	})
	require.NoError(t, err)

	times, err := s.ContactMessages.RecentByIP(ctx, "198.51.100.7", since)
	require.NoError(t, err)
	require.Len(t, times, 2)
	assert.False(t, times[1].Before(times[0]))

	times, err = s.ContactMessages.RecentByIP(ctx, "198.51.100.7", time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, times)

	read, err := s.ContactMessages.UpdateStatus(ctx, other.ID, models.MessageRead)
	require.NoError(t, err)
	assert.Equal(t, models.MessageRead, read.Status)

	unread, err := s.ContactMessages.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	list, err := s.ContactMessages.List(ctx, models.ListOptions{Status: "read"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, other.ID, list[0].ID)

	_, err = s.ContactMessages.UpdateStatus(ctx, "missing", models.MessageRead)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_BlockedIPs(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	blocked, err := s.BlockedIPs.Create(ctx, models.BlockedIP{
		IP: "203.0.113.5", Reason: "spam", BlockedBy: "admin", BlockedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	found, err := s.BlockedIPs.FindByIP(ctx, "203.0.113.5")
	require.NoError(t, err)
	assert.Equal(t, blocked.ID, found.ID)

	_, err = s.BlockedIPs.FindByIP(ctx, "203.0.113.50")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.BlockedIPs.Create(ctx, models.BlockedIP{IP: "203.0.113.5", BlockedAt: time.Now().UTC()})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	require.NoError(t, s.BlockedIPs.DeleteByIP(ctx, "203.0.113.5"))
	assert.ErrorIs(t, s.BlockedIPs.DeleteByIP(ctx, "203.0.113.5"), ErrNotFound)
}

func TestSQLite_Admins(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	admin, err := s.Admins.CreateAdmin(ctx, models.Admin{Email: "admin@example.com", PasswordHash: "hash"})
	require.NoError(t, err)

	found, err := s.Admins.FindAdminByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	_, err = s.Admins.FindAdminByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Admins.CreateAdmin(ctx, models.Admin{Email: "admin@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestNewConnectSQLite_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cms.db")

	db, err := NewConnect(context.Background(), config.DB{DSN: "sqlite://" + path}, logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)
	assert.Equal(t, "sqlite3", db.Dialect())
}

func TestNewConnect_UnsupportedDSN(t *testing.T) {
	_, err := NewConnect(context.Background(), config.DB{DSN: "mysql://x"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDSN)
}
