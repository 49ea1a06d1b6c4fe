package store

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/MKhiriev/portfolio-cms/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ContentRepository is the CRUD surface shared by every stored entity.
type ContentRepository[T any] interface {
	List(ctx context.Context, opts models.ListOptions) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id string, rec T) (T, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
}

type ContactMessageRepository interface {
	ContentRepository[models.ContactMessage]
	RecentByIP(ctx context.Context, ip string, since time.Time) ([]time.Time, error)
	CountUnread(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, id string, status models.MessageStatus) (models.ContactMessage, error)
}

type BlockedIPRepository interface {
	ContentRepository[models.BlockedIP]
	FindByIP(ctx context.Context, ip string) (models.BlockedIP, error)
	DeleteByIP(ctx context.Context, ip string) error
}

type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin models.Admin) (models.Admin, error)
	FindAdminByEmail(ctx context.Context, email string) (models.Admin, error)
}

// ObjectStorage stores uploaded files in named buckets and maps object keys
// to public URLs. Errors are reported as [*ObjectError].
type ObjectStorage interface {
	EnsureBucket(ctx context.Context, bucket string) error
	Put(ctx context.Context, bucket, key, contentType string, size int64, body io.Reader) error
	Delete(ctx context.Context, bucket, key string) error
	PublicURL(bucket, key string) string
	// KeyFromURL reverses PublicURL. ok is false for URLs that do not
	// point into this storage.
	KeyFromURL(url string) (bucket, key string, ok bool)
}

// FileServer is implemented by object storages that serve their files
// over HTTP themselves.
type FileServer interface {
	Handler() http.Handler
}

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}
