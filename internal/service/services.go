package service

import (
	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/store"
	"github.com/MKhiriev/portfolio-cms/models"
)

// Revalidation tags, one per public collection.
const (
	TagProjects       = "projects"
	TagSkills         = "skills"
	TagExperience     = "experience"
	TagEducation      = "education"
	TagCertifications = "certifications"
	TagTestimonials   = "testimonials"
	TagBlogPosts      = "blog-posts"
)

type Services struct {
	AuthService    AuthService
	AppInfoService AppInfoService
	UploadService  UploadService

	Projects       ContentService[models.Project]
	Skills         ContentService[models.Skill]
	Experience     ContentService[models.Experience]
	Education      ContentService[models.Education]
	Certifications ContentService[models.Certification]
	Testimonials   ContentService[models.Testimonial]
	BlogPosts      ContentService[models.BlogPost]

	ContactService   ContactService
	BlockedIPService BlockedIPService
}

func NewServices(storages *store.Storages, revalidator Revalidator, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, storages.DB, logger)
	if err != nil {
		return nil, err
	}

	uploads := NewUploadService(storages.Objects, cfg.Storage.Objects, logger)

	return &Services{
		AuthService:    NewAuthService(storages.Admins, cfg.App, logger),
		AppInfoService: appInfo,
		UploadService:  uploads,

		Projects: NewContentService(storages.Projects, uploads, revalidator, ContentOptions[models.Project]{
			Name: TagProjects,
			Slots: map[string]FileSlot[models.Project]{
				"image": {Bucket: models.BucketProjectImages, URL: func(p *models.Project) *string { return &p.ImageURL }},
			},
		}, logger),
		Skills: NewContentService(storages.Skills, uploads, revalidator, ContentOptions[models.Skill]{
			Name: TagSkills,
			Slots: map[string]FileSlot[models.Skill]{
				"icon": {Bucket: models.BucketSkillIcons, URL: func(s *models.Skill) *string { return &s.Icon }},
			},
		}, logger),
		Experience: NewContentService(storages.Experience, uploads, revalidator, ContentOptions[models.Experience]{
			Name: TagExperience,
		}, logger),
		Education: NewContentService(storages.Education, uploads, revalidator, ContentOptions[models.Education]{
			Name: TagEducation,
			Slots: map[string]FileSlot[models.Education]{
				"icon": {Bucket: models.BucketEducationIcons, URL: func(e *models.Education) *string { return &e.IconURL }},
			},
		}, logger),
		Certifications: NewContentService(storages.Certifications, uploads, revalidator, ContentOptions[models.Certification]{
			Name: TagCertifications,
			Slots: map[string]FileSlot[models.Certification]{
				"image":       {Bucket: models.BucketCertificates, URL: func(c *models.Certification) *string { return &c.ImageURL }},
				"certificate": {Bucket: models.BucketCertificates, URL: func(c *models.Certification) *string { return &c.CertificateFileURL }},
			},
		}, logger),
		Testimonials: NewContentService(storages.Testimonials, uploads, revalidator, ContentOptions[models.Testimonial]{
			Name: TagTestimonials,
		}, logger),
		BlogPosts: NewContentService(storages.BlogPosts, uploads, revalidator, ContentOptions[models.BlogPost]{
			Name: TagBlogPosts,
			Slots: map[string]FileSlot[models.BlogPost]{
				"cover": {Bucket: models.BucketProjectImages, URL: func(b *models.BlogPost) *string { return &b.CoverImageURL }},
			},
			BeforeUpdate: keepPublishedAt,
		}, logger),

		ContactService:   NewContactService(storages.ContactMessages, storages.BlockedIPs, cfg.Gate, logger),
		BlockedIPService: NewBlockedIPService(storages.BlockedIPs, logger),
	}, nil
}
