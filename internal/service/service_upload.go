package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/store"
	"github.com/MKhiriev/portfolio-cms/internal/utils"
	"github.com/MKhiriev/portfolio-cms/internal/validators"
	"github.com/MKhiriev/portfolio-cms/models"
	"github.com/sethvargo/go-retry"
)

// maxRetryDelay caps the exponential backoff between upload attempts.
const maxRetryDelay = 5 * time.Second

const (
	defaultUploadAttempts = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
)

// uploadService stores validated files in object storage. Only failures
// classified as transient are retried; every other storage error ends the
// upload at once.
type uploadService struct {
	objects   store.ObjectStorage
	validator validators.Validator
	ids       *utils.UUIDGenerator

	// maxAttempts is the total number of Put calls per upload.
	maxAttempts int
	baseDelay   time.Duration

	logger *logger.Logger
}

func NewUploadService(objects store.ObjectStorage, cfg config.Objects, logger *logger.Logger) UploadService {
	attempts := cfg.MaxRetries
	if attempts <= 0 {
		attempts = defaultUploadAttempts
	}
	baseDelay := cfg.RetryBaseDelay
	if baseDelay <= 0 {
		baseDelay = defaultRetryBaseDelay
	}

	return &uploadService{
		objects:     objects,
		validator:   validators.NewContentValidator(),
		ids:         utils.NewUUIDGenerator(),
		maxAttempts: attempts,
		baseDelay:   baseDelay,
		logger:      logger,
	}
}

func (s *uploadService) backoff() retry.Backoff {
	b := retry.NewExponential(s.baseDelay)
	b = retry.WithCappedDuration(maxRetryDelay, b)
	return retry.WithMaxRetries(uint64(s.maxAttempts-1), b)
}

// Upload validates file against its bucket policy and stores it under a
// fresh "<uuid><ext>" key. Validation failures never reach the storage.
func (s *uploadService) Upload(ctx context.Context, file models.FileUpload) (models.UploadResult, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, file); err != nil {
		log.Debug().Err(err).Str("func", "*uploadService.Upload").Str("bucket", file.Bucket).Msg("file rejected")
		return models.UploadResult{}, err
	}
	if file.Body == nil {
		return models.UploadResult{}, ErrInvalidDataProvided
	}

	key := s.ids.Generate() + models.ExtensionForType[file.ContentType]

	attempt := 0
	err := retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		attempt++

		if _, err := file.Body.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("error rewinding file: %w", err)
		}

		err := s.objects.Put(ctx, file.Bucket, key, file.ContentType, file.Size, file.Body)
		if err == nil {
			return nil
		}
		if store.IsTransient(err) {
			log.Warn().Err(err).
				Str("func", "*uploadService.Upload").
				Str("bucket", file.Bucket).
				Int("attempt", attempt).
				Int("max_attempts", s.maxAttempts).
				Msg("transient storage failure, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "*uploadService.Upload").
			Str("bucket", file.Bucket).
			Str("file_name", file.FileName).
			Int("attempts", attempt).
			Msg("upload failed")
		return models.UploadResult{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	log.Info().
		Str("func", "*uploadService.Upload").
		Str("bucket", file.Bucket).
		Str("key", key).
		Int("attempts", attempt).
		Msg("file uploaded")

	return models.UploadResult{
		URL:    s.objects.PublicURL(file.Bucket, key),
		Key:    key,
		Bucket: file.Bucket,
	}, nil
}

func (s *uploadService) Replace(ctx context.Context, file models.FileUpload, oldURL string) (models.UploadResult, error) {
	res, err := s.Upload(ctx, file)
	if err != nil {
		return res, err
	}

	if oldURL != "" && oldURL != res.URL {
		if err := s.DeleteByURL(ctx, oldURL); err != nil {
			logger.FromContext(ctx).Warn().Err(err).
				Str("func", "*uploadService.Replace").
				Str("url", oldURL).
				Msg("failed to delete replaced file")
		}
	}

	return res, nil
}

func (s *uploadService) DeleteByURL(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}

	bucket, key, ok := s.objects.KeyFromURL(url)
	if !ok {
		logger.FromContext(ctx).Debug().Str("func", "*uploadService.DeleteByURL").Str("url", url).Msg("not a stored object, skipping")
		return nil
	}

	err := s.objects.Delete(ctx, bucket, key)
	if errors.Is(err, store.ErrObjectNotFound) {
		return nil
	}
	return err
}

// EnsureBuckets creates every known bucket that does not exist yet.
func (s *uploadService) EnsureBuckets(ctx context.Context) error {
	buckets := make([]string, 0, len(models.BucketPolicies))
	for bucket := range models.BucketPolicies {
		buckets = append(buckets, bucket)
	}
	slices.Sort(buckets)

	var errs []error
	for _, bucket := range buckets {
		if err := s.objects.EnsureBucket(ctx, bucket); err != nil {
			s.logger.Err(err).Str("func", "*uploadService.EnsureBuckets").Str("bucket", bucket).Msg("failed to ensure bucket")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
