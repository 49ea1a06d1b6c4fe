// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ProjectStatus is the lifecycle stage of a portfolio project.
type ProjectStatus string

const (
	ProjectCompleted  ProjectStatus = "completed"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectPlanned    ProjectStatus = "planned"
)

// ProjectType is the kind of software a project represents.
type ProjectType string

const (
	ProjectWeb     ProjectType = "web"
	ProjectMobile  ProjectType = "mobile"
	ProjectDesktop ProjectType = "desktop"
	ProjectLibrary ProjectType = "library"
	ProjectOther   ProjectType = "other"
)

// SkillLevel is the self-assessed proficiency for a skill.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// CertificationCategory distinguishes finished courses from competition results.
type CertificationCategory string

const (
	CertificationCourse      CertificationCategory = "course"
	CertificationCompetition CertificationCategory = "competition"
)

// Project is a showcased piece of work.
// ImageURL is filled only with URLs returned by the object storage.
type Project struct {
	Meta

	Title        string        `json:"title"`
	Description  string        `json:"description"`
	ImageURL     string        `json:"image_url"`
	Technologies StringList    `json:"technologies"`
	GithubURL    string        `json:"github_url"`
	LiveURL      string        `json:"live_url"`
	Featured     bool          `json:"featured"`
	Status       ProjectStatus `json:"status"`
	Type         ProjectType   `json:"type"`
	SortOrder    int           `json:"sort_order"`
}

// ApplyDefaults fills optional enum fields left empty by the admin form.
func (p *Project) ApplyDefaults() {
	if p.Status == "" {
		p.Status = ProjectCompleted
	}
	if p.Type == "" {
		p.Type = ProjectWeb
	}
	if p.Technologies == nil {
		p.Technologies = StringList{}
	}
}

// Skill is a single technology or competence shown on the skills section.
// Icon is either an uploaded icon URL or a short glyph (emoji, icon class).
type Skill struct {
	Meta

	Name      string     `json:"name"`
	Category  string     `json:"category"`
	Level     SkillLevel `json:"level"`
	Icon      string     `json:"icon"`
	SortOrder int        `json:"sort_order"`
}

func (s *Skill) ApplyDefaults() {
	if s.Level == "" {
		s.Level = SkillIntermediate
	}
}

// Experience is a past or current position.
// Dates are kept as entered ("2024-03" or "2024-03-15"); an empty EndDate
// means the position is current.
type Experience struct {
	Meta

	Company      string     `json:"company"`
	Position     string     `json:"position"`
	Location     string     `json:"location"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	Description  string     `json:"description"`
	Technologies StringList `json:"technologies"`
	SortOrder    int        `json:"sort_order"`
}

func (e *Experience) ApplyDefaults() {
	if e.Technologies == nil {
		e.Technologies = StringList{}
	}
}

// Education is a degree or programme.
type Education struct {
	Meta

	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	Grade       string `json:"grade"`
	IconURL     string `json:"icon_url"`
	SortOrder   int    `json:"sort_order"`
}

// Certification is a course certificate or competition award.
// Up to two files are attached: a preview image and the certificate document.
type Certification struct {
	Meta

	Title              string                `json:"title"`
	Issuer             string                `json:"issuer"`
	Date               string                `json:"date"`
	Category           CertificationCategory `json:"category"`
	CredentialID       string                `json:"credential_id"`
	URL                string                `json:"url"`
	ImageURL           string                `json:"image_url"`
	CertificateFileURL string                `json:"certificate_file_url"`
}

func (c *Certification) ApplyDefaults() {
	if c.Category == "" {
		c.Category = CertificationCourse
	}
}

// Testimonial is a quote from a colleague or client.
type Testimonial struct {
	Meta

	Name     string `json:"name"`
	Position string `json:"position"`
	Company  string `json:"company"`
	Content  string `json:"content"`
	Rating   int    `json:"rating"`
}

func (t *Testimonial) ApplyDefaults() {
	if t.Rating == 0 {
		t.Rating = 5
	}
}

// BlogPost is an article published on the site.
// PublishedAt is stamped the first time Published becomes true.
type BlogPost struct {
	Meta

	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	Content       string     `json:"content"`
	CoverImageURL string     `json:"cover_image_url"`
	Tags          StringList `json:"tags"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at"`
}

func (b *BlogPost) ApplyDefaults() {
	if b.Tags == nil {
		b.Tags = StringList{}
	}
	if b.Published && b.PublishedAt == nil {
		now := time.Now().UTC()
		b.PublishedAt = &now
	}
}

// Defaulter is implemented by entities that fill optional fields before
// validation.
type Defaulter interface {
	ApplyDefaults()
}
