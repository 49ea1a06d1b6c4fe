package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/models"
)

// Storages groups every repository and the object storage so services can
// be wired from a single value.
type Storages struct {
	Projects       ContentRepository[models.Project]
	Skills         ContentRepository[models.Skill]
	Experience     ContentRepository[models.Experience]
	Education      ContentRepository[models.Education]
	Certifications ContentRepository[models.Certification]
	Testimonials   ContentRepository[models.Testimonial]
	BlogPosts      ContentRepository[models.BlogPost]

	ContactMessages ContactMessageRepository
	BlockedIPs      BlockedIPRepository
	Admins          AdminRepository

	Objects ObjectStorage
	DB      Pinger
}

func NewStorages(db *DB, objects ObjectStorage) *Storages {
	db.logger.Debug().Msg("creating repositories")

	return &Storages{
		Projects:        newContentRepository(db, projectsTable),
		Skills:          newContentRepository(db, skillsTable),
		Experience:      newContentRepository(db, experienceTable),
		Education:       newContentRepository(db, educationTable),
		Certifications:  newContentRepository(db, certificationsTable),
		Testimonials:    newContentRepository(db, testimonialsTable),
		BlogPosts:       newContentRepository(db, blogPostsTable),
		ContactMessages: NewContactMessageRepository(db),
		BlockedIPs:      NewBlockedIPRepository(db),
		Admins:          NewAdminRepository(db),
		Objects:         objects,
		DB:              db,
	}
}

// NewObjectStorage creates the object storage selected by cfg.Driver.
func NewObjectStorage(ctx context.Context, cfg config.Objects, log *logger.Logger) (ObjectStorage, error) {
	switch cfg.Driver {
	case config.DriverS3:
		return NewS3Storage(ctx, cfg, log)
	case config.DriverLocal:
		return NewLocalStorage(cfg.LocalDir, cfg.PublicBaseURL, log)
	default:
		return nil, fmt.Errorf("unknown object storage driver %q", cfg.Driver)
	}
}
