package store

import (
	"github.com/MKhiriev/portfolio-cms/models"
	sq "github.com/Masterminds/squirrel"
)

// table describes how a record type maps onto its SQL table.
// columns lists the entity columns between id and the timestamps; values
// and scan must return arguments and destinations in the same order.
type table[T any] struct {
	name     string
	columns  []string
	values   func(rec *T) []any
	scan     func(rec *T) []any
	orderBy  []string
	filter   func(q sq.SelectBuilder, opts models.ListOptions) sq.SelectBuilder
	sortable bool
}

func (t table[T]) selectColumns() []string {
	cols := make([]string, 0, len(t.columns)+3)
	cols = append(cols, "id")
	cols = append(cols, t.columns...)
	return append(cols, "created_at", "updated_at")
}

func (t table[T]) scanDest(rec *T) []any {
	meta := models.MetaOf(rec)
	dest := make([]any, 0, len(t.columns)+3)
	dest = append(dest, &meta.ID)
	dest = append(dest, t.scan(rec)...)
	return append(dest, &meta.CreatedAt, &meta.UpdatedAt)
}

func filterFeaturedStatus(q sq.SelectBuilder, opts models.ListOptions) sq.SelectBuilder {
	if opts.Featured != nil {
		q = q.Where(sq.Eq{"featured": *opts.Featured})
	}
	if opts.Status != "" {
		q = q.Where(sq.Eq{"status": opts.Status})
	}
	return q
}

func filterStatus(q sq.SelectBuilder, opts models.ListOptions) sq.SelectBuilder {
	if opts.Status != "" {
		q = q.Where(sq.Eq{"status": opts.Status})
	}
	return q
}

func filterCategory(q sq.SelectBuilder, opts models.ListOptions) sq.SelectBuilder {
	if opts.Category != "" {
		q = q.Where(sq.Eq{"category": opts.Category})
	}
	return q
}

func filterPublishedSlug(q sq.SelectBuilder, opts models.ListOptions) sq.SelectBuilder {
	if opts.Published != nil {
		q = q.Where(sq.Eq{"published": *opts.Published})
	}
	if opts.Slug != "" {
		q = q.Where(sq.Eq{"slug": opts.Slug})
	}
	return q
}

var projectsTable = table[models.Project]{
	name: "projects",
	columns: []string{"title", "description", "image_url", "technologies", "github_url",
		"live_url", "featured", "status", "type", "sort_order"},
	values: func(p *models.Project) []any {
		return []any{p.Title, p.Description, p.ImageURL, p.Technologies, p.GithubURL,
			p.LiveURL, p.Featured, string(p.Status), string(p.Type), p.SortOrder}
	},
	scan: func(p *models.Project) []any {
		return []any{&p.Title, &p.Description, &p.ImageURL, &p.Technologies, &p.GithubURL,
			&p.LiveURL, &p.Featured, &p.Status, &p.Type, &p.SortOrder}
	},
	orderBy:  []string{"sort_order ASC", "created_at DESC"},
	filter:   filterFeaturedStatus,
	sortable: true,
}

var skillsTable = table[models.Skill]{
	name:    "skills",
	columns: []string{"name", "category", "level", "icon", "sort_order"},
	values: func(s *models.Skill) []any {
		return []any{s.Name, s.Category, string(s.Level), s.Icon, s.SortOrder}
	},
	scan: func(s *models.Skill) []any {
		return []any{&s.Name, &s.Category, &s.Level, &s.Icon, &s.SortOrder}
	},
	orderBy:  []string{"sort_order ASC", "created_at DESC"},
	filter:   filterCategory,
	sortable: true,
}

var experienceTable = table[models.Experience]{
	name: "experience",
	columns: []string{"company", "position", "location", "start_date", "end_date",
		"description", "technologies", "sort_order"},
	values: func(e *models.Experience) []any {
		return []any{e.Company, e.Position, e.Location, e.StartDate, e.EndDate,
			e.Description, e.Technologies, e.SortOrder}
	},
	scan: func(e *models.Experience) []any {
		return []any{&e.Company, &e.Position, &e.Location, &e.StartDate, &e.EndDate,
			&e.Description, &e.Technologies, &e.SortOrder}
	},
	orderBy:  []string{"sort_order ASC", "start_date DESC"},
	sortable: true,
}

var educationTable = table[models.Education]{
	name: "education",
	columns: []string{"institution", "degree", "field", "start_date", "end_date",
		"description", "grade", "icon_url", "sort_order"},
	values: func(e *models.Education) []any {
		return []any{e.Institution, e.Degree, e.Field, e.StartDate, e.EndDate,
			e.Description, e.Grade, e.IconURL, e.SortOrder}
	},
	scan: func(e *models.Education) []any {
		return []any{&e.Institution, &e.Degree, &e.Field, &e.StartDate, &e.EndDate,
			&e.Description, &e.Grade, &e.IconURL, &e.SortOrder}
	},
	orderBy:  []string{"sort_order ASC", "start_date DESC"},
	sortable: true,
}

var certificationsTable = table[models.Certification]{
	name: "certifications",
	columns: []string{"title", "issuer", "date", "category", "credential_id", "url",
		"image_url", "certificate_file_url"},
	values: func(c *models.Certification) []any {
		return []any{c.Title, c.Issuer, c.Date, string(c.Category), c.CredentialID, c.URL,
			c.ImageURL, c.CertificateFileURL}
	},
	scan: func(c *models.Certification) []any {
		return []any{&c.Title, &c.Issuer, &c.Date, &c.Category, &c.CredentialID, &c.URL,
			&c.ImageURL, &c.CertificateFileURL}
	},
	orderBy: []string{"date DESC", "created_at DESC"},
	filter:  filterCategory,
}

var testimonialsTable = table[models.Testimonial]{
	name:    "testimonials",
	columns: []string{"name", "position", "company", "content", "rating"},
	values: func(t *models.Testimonial) []any {
		return []any{t.Name, t.Position, t.Company, t.Content, t.Rating}
	},
	scan: func(t *models.Testimonial) []any {
		return []any{&t.Name, &t.Position, &t.Company, &t.Content, &t.Rating}
	},
	orderBy: []string{"created_at DESC"},
}

var blogPostsTable = table[models.BlogPost]{
	name: "blog_posts",
	columns: []string{"title", "slug", "excerpt", "content", "cover_image_url", "tags",
		"published", "published_at"},
	values: func(b *models.BlogPost) []any {
		return []any{b.Title, b.Slug, b.Excerpt, b.Content, b.CoverImageURL, b.Tags,
			b.Published, b.PublishedAt}
	},
	scan: func(b *models.BlogPost) []any {
		return []any{&b.Title, &b.Slug, &b.Excerpt, &b.Content, &b.CoverImageURL, &b.Tags,
			&b.Published, &b.PublishedAt}
	},
	orderBy: []string{"created_at DESC"},
	filter:  filterPublishedSlug,
}

var contactMessagesTable = table[models.ContactMessage]{
	name:    "contact_messages",
	columns: []string{"name", "email", "subject", "message", "status", "ip"},
	values: func(m *models.ContactMessage) []any {
		return []any{m.Name, m.Email, m.Subject, m.Message, string(m.Status), m.IP}
	},
	scan: func(m *models.ContactMessage) []any {
		return []any{&m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.IP}
	},
	orderBy: []string{"created_at DESC"},
	filter:  filterStatus,
}

var blockedIPsTable = table[models.BlockedIP]{
	name:    "blocked_ips",
	columns: []string{"ip", "reason", "blocked_by", "blocked_at"},
	values: func(b *models.BlockedIP) []any {
		return []any{b.IP, b.Reason, b.BlockedBy, b.BlockedAt}
	},
	scan: func(b *models.BlockedIP) []any {
		return []any{&b.IP, &b.Reason, &b.BlockedBy, &b.BlockedAt}
	},
	orderBy: []string{"blocked_at DESC"},
}
