// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/portfolio-cms/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dollar = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func Test_buildListQuery_ProjectsFiltersAndOrder(t *testing.T) {
	featured := true

	query, args, err := buildListQuery(dollar, projectsTable, models.ListOptions{
		Featured: &featured,
		Status:   "completed",
		Limit:    10,
		Offset:   20,
	})
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.True(t, strings.HasPrefix(q, "select id, title, description"))
	assert.Contains(t, q, "from projects")
	assert.Contains(t, q, "featured = $1")
	assert.Contains(t, q, "status = $2")
	assert.Contains(t, q, "order by sort_order asc, created_at desc")
	assert.Contains(t, q, "limit 10")
	assert.Contains(t, q, "offset 20")
	assert.Equal(t, []any{true, "completed"}, args)
}

func Test_buildListQuery_IgnoresUnsupportedFilters(t *testing.T) {
	published := true

	query, args, err := buildListQuery(dollar, testimonialsTable, models.ListOptions{Published: &published, Status: "x"})
	require.NoError(t, err)

	assert.NotContains(t, strings.ToLower(query), "where")
	assert.Empty(t, args)
}

func Test_buildListQuery_BlogPostsBySlug(t *testing.T) {
	query, args, err := buildListQuery(dollar, blogPostsTable, models.ListOptions{Slug: "hello-world"})
	require.NoError(t, err)

	assert.Contains(t, query, "slug = $1")
	assert.Equal(t, []any{"hello-world"}, args)
}

func Test_buildGetQuery_SelectsAllColumns(t *testing.T) {
	query, args, err := buildGetQuery(dollar, skillsTable, "abc")
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, name, category, level, icon, sort_order, created_at, updated_at FROM skills WHERE id = $1",
		query)
	assert.Equal(t, []any{"abc"}, args)
}

func Test_buildInsertQuery_ColumnsMatchValues(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := models.Testimonial{
		Meta:    models.Meta{ID: "id-1", CreatedAt: now, UpdatedAt: now},
		Name:    "Ann",
		Content: "Great work",
		Rating:  4,
	}

	query, args, err := buildInsertQuery(dollar, testimonialsTable, &rec)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO testimonials (id,name,position,company,content,rating,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)",
		query)
	assert.Equal(t, []any{"id-1", "Ann", "", "", "Great work", 4, now, now}, args)
}

func Test_buildUpdateQuery_NeverTouchesIDOrCreatedAt(t *testing.T) {
	rec := models.Skill{Name: "Go", Category: "backend", Level: models.SkillExpert}

	query, args, err := buildUpdateQuery(dollar, skillsTable, "id-9", &rec)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "update skills set name = $1")
	assert.Contains(t, q, "updated_at = $6")
	assert.Contains(t, q, "where id = $7")
	assert.NotContains(t, q, "created_at")
	assert.Equal(t, "id-9", args[len(args)-1])
}

func Test_buildDeleteQuery(t *testing.T) {
	query, args, err := buildDeleteQuery(sq.StatementBuilder, blockedIPsTable, "x")
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM blocked_ips WHERE id = ?", query)
	assert.Equal(t, []any{"x"}, args)
}

func Test_tables_ValuesMatchColumns(t *testing.T) {
	check := func(name string, columns, values, scan int) {
		t.Helper()
		assert.Equal(t, columns, values, "%s values", name)
		assert.Equal(t, columns, scan, "%s scan", name)
	}

	check("projects", len(projectsTable.columns), len(projectsTable.values(&models.Project{})), len(projectsTable.scan(&models.Project{})))
	check("skills", len(skillsTable.columns), len(skillsTable.values(&models.Skill{})), len(skillsTable.scan(&models.Skill{})))
	check("experience", len(experienceTable.columns), len(experienceTable.values(&models.Experience{})), len(experienceTable.scan(&models.Experience{})))
	check("education", len(educationTable.columns), len(educationTable.values(&models.Education{})), len(educationTable.scan(&models.Education{})))
	check("certifications", len(certificationsTable.columns), len(certificationsTable.values(&models.Certification{})), len(certificationsTable.scan(&models.Certification{})))
	check("testimonials", len(testimonialsTable.columns), len(testimonialsTable.values(&models.Testimonial{})), len(testimonialsTable.scan(&models.Testimonial{})))
	check("blog_posts", len(blogPostsTable.columns), len(blogPostsTable.values(&models.BlogPost{})), len(blogPostsTable.scan(&models.BlogPost{})))
	check("contact_messages", len(contactMessagesTable.columns), len(contactMessagesTable.values(&models.ContactMessage{})), len(contactMessagesTable.scan(&models.ContactMessage{})))
	check("blocked_ips", len(blockedIPsTable.columns), len(blockedIPsTable.values(&models.BlockedIP{})), len(blockedIPsTable.scan(&models.BlockedIP{})))
}
