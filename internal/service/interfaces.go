package service

import (
	"context"

	"github.com/MKhiriev/portfolio-cms/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=Revalidator

type AuthService interface {
	// EnsureAdmin creates the administrator account unless it exists.
	EnsureAdmin(ctx context.Context, email, password string) error
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Health(ctx context.Context) error
}

// ContentService is the admin-editable collection of one record type.
// Writes invalidate the cached reads and trigger front-end revalidation.
type ContentService[T any] interface {
	List(ctx context.Context, opts models.ListOptions) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id string, rec T) (T, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error

	// Attach uploads file into the bucket of slot and stores its URL on
	// record id. The file previously held by the slot is deleted.
	Attach(ctx context.Context, id, slot string, file models.FileUpload) (T, error)
	// Detach clears slot on record id and deletes its file.
	Detach(ctx context.Context, id, slot string) (T, error)
	// Slots lists the file slot names of the record type.
	Slots() []string
}

// UploadService validates files and stores them in object storage,
// retrying transient storage failures.
type UploadService interface {
	Upload(ctx context.Context, file models.FileUpload) (models.UploadResult, error)
	// Replace uploads file and then deletes oldURL best-effort.
	Replace(ctx context.Context, file models.FileUpload, oldURL string) (models.UploadResult, error)
	// DeleteByURL deletes the object behind url. URLs that do not point
	// into the storage are ignored.
	DeleteByURL(ctx context.Context, url string) error
	EnsureBuckets(ctx context.Context) error
}

type ContactService interface {
	// Submit accepts a contact form message from ip after the block list
	// and rate limit checks.
	Submit(ctx context.Context, ip string, req models.ContactRequest) (models.ContactMessage, error)
	List(ctx context.Context, opts models.ListOptions) ([]models.ContactMessage, error)
	Get(ctx context.Context, id string) (models.ContactMessage, error)
	UpdateStatus(ctx context.Context, id string, req models.StatusUpdateRequest) (models.ContactMessage, error)
	Delete(ctx context.Context, id string) error
	UnreadCount(ctx context.Context) (int, error)
}

type BlockedIPService interface {
	List(ctx context.Context) ([]models.BlockedIP, error)
	// Block adds req.IP to the block list. created is false when the address
	// was already blocked; the existing entry is returned then.
	Block(ctx context.Context, req models.BlockIPRequest, blockedBy string) (blocked models.BlockedIP, created bool, err error)
	Unblock(ctx context.Context, id string) error
	UnblockByIP(ctx context.Context, ip string) error
	IsBlocked(ctx context.Context, ip string) (bool, error)
}

// Revalidator receives cache tags of changed content.
type Revalidator interface {
	Notify(tags ...string)
}
