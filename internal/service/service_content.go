package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/store"
	"github.com/MKhiriev/portfolio-cms/internal/validators"
	"github.com/MKhiriev/portfolio-cms/models"
	"github.com/patrickmn/go-cache"
)

const (
	contentCacheTTL     = 5 * time.Minute
	contentCacheCleanup = 10 * time.Minute
)

// FileSlot binds a named file attribute of T to the bucket its files are
// stored in.
type FileSlot[T any] struct {
	Bucket string
	URL    func(rec *T) *string
}

// ContentOptions configures a [ContentService].
type ContentOptions[T any] struct {
	// Name identifies the collection in logs and is the revalidation tag.
	Name  string
	Slots map[string]FileSlot[T]
	// BeforeUpdate may carry fields over from the stored record.
	BeforeUpdate func(stored, incoming *T)
}

type contentService[T any] struct {
	name         string
	repo         store.ContentRepository[T]
	validator    validators.Validator
	uploads      UploadService
	revalidator  Revalidator
	slots        map[string]FileSlot[T]
	beforeUpdate func(stored, incoming *T)
	cache        *cache.Cache

	// generation counts writes; reads started before a write never fill
	// the cache after it.
	mu         sync.Mutex
	generation uint64

	logger *logger.Logger
}

func NewContentService[T any](repo store.ContentRepository[T], uploads UploadService, revalidator Revalidator, opts ContentOptions[T], logger *logger.Logger) ContentService[T] {
	if revalidator == nil {
		revalidator = noopRevalidator{}
	}

	return &contentService[T]{
		name:         opts.Name,
		repo:         repo,
		validator:    validators.NewContentValidator(),
		uploads:      uploads,
		revalidator:  revalidator,
		slots:        opts.Slots,
		beforeUpdate: opts.BeforeUpdate,
		cache:        cache.New(contentCacheTTL, contentCacheCleanup),
		logger:       logger,
	}
}

func (s *contentService[T]) funcName(method string) string {
	return s.name + "Service." + method
}

func (s *contentService[T]) List(ctx context.Context, opts models.ListOptions) ([]T, error) {
	key := opts.CacheKey()
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]T), nil
	}

	gen := s.currentGeneration()
	records, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", s.name, err)
	}

	s.cacheIfCurrent(gen, key, records)
	return records, nil
}

func (s *contentService[T]) Get(ctx context.Context, id string) (T, error) {
	key := "id:" + id
	if cached, ok := s.cache.Get(key); ok {
		return cached.(T), nil
	}

	gen := s.currentGeneration()
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return rec, fmt.Errorf("error getting %s %s: %w", s.name, id, err)
	}

	s.cacheIfCurrent(gen, key, rec)
	return rec, nil
}

func (s *contentService[T]) Create(ctx context.Context, rec T) (T, error) {
	applyDefaults(&rec)

	if err := s.validator.Validate(ctx, &rec); err != nil {
		return rec, err
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", s.funcName("Create")).Msg("error creating record")
		return created, fmt.Errorf("error creating %s: %w", s.name, err)
	}

	s.changed()
	return created, nil
}

// Update replaces record id with rec. Files referenced by the stored record
// but not by rec are deleted afterwards.
func (s *contentService[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return rec, fmt.Errorf("error getting %s %s: %w", s.name, id, err)
	}

	if s.beforeUpdate != nil {
		s.beforeUpdate(&stored, &rec)
	}
	applyDefaults(&rec)

	if err := s.validator.Validate(ctx, &rec); err != nil {
		return rec, err
	}

	updated, err := s.repo.Update(ctx, id, rec)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", s.funcName("Update")).Str("id", id).Msg("error updating record")
		return updated, fmt.Errorf("error updating %s %s: %w", s.name, id, err)
	}

	for _, slot := range s.slots {
		if old := *slot.URL(&stored); old != "" && old != *slot.URL(&updated) {
			s.deleteFile(ctx, old)
		}
	}

	s.changed()
	return updated, nil
}

// Delete removes record id and then its files. File deletion failures are
// logged and do not fail the call.
func (s *contentService[T]) Delete(ctx context.Context, id string) error {
	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("error getting %s %s: %w", s.name, id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", s.funcName("Delete")).Str("id", id).Msg("error deleting record")
		return fmt.Errorf("error deleting %s %s: %w", s.name, id, err)
	}

	for _, slot := range s.slots {
		if url := *slot.URL(&stored); url != "" {
			s.deleteFile(ctx, url)
		}
	}

	s.changed()
	return nil
}

func (s *contentService[T]) Reorder(ctx context.Context, ids []string) error {
	if err := s.validator.Validate(ctx, models.ReorderRequest{IDs: ids}); err != nil {
		return err
	}

	if err := s.repo.Reorder(ctx, ids); err != nil {
		return fmt.Errorf("error reordering %s: %w", s.name, err)
	}

	s.changed()
	return nil
}

func (s *contentService[T]) Attach(ctx context.Context, id, slotName string, file models.FileUpload) (T, error) {
	log := logger.FromContext(ctx)

	slot, ok := s.slots[slotName]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrUnknownSlot, slotName)
	}

	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return stored, fmt.Errorf("error getting %s %s: %w", s.name, id, err)
	}

	file.Bucket = slot.Bucket
	res, err := s.uploads.Upload(ctx, file)
	if err != nil {
		return stored, err
	}

	old := *slot.URL(&stored)
	*slot.URL(&stored) = res.URL

	updated, err := s.repo.Update(ctx, id, stored)
	if err != nil {
		log.Err(err).Str("func", s.funcName("Attach")).Str("id", id).Msg("error saving file url, removing upload")
		s.deleteFile(ctx, res.URL)
		return updated, fmt.Errorf("error updating %s %s: %w", s.name, id, err)
	}

	if old != "" && old != res.URL {
		s.deleteFile(ctx, old)
	}

	s.changed()
	return updated, nil
}

func (s *contentService[T]) Detach(ctx context.Context, id, slotName string) (T, error) {
	slot, ok := s.slots[slotName]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrUnknownSlot, slotName)
	}

	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return stored, fmt.Errorf("error getting %s %s: %w", s.name, id, err)
	}

	old := *slot.URL(&stored)
	if old == "" {
		return stored, nil
	}
	*slot.URL(&stored) = ""

	updated, err := s.repo.Update(ctx, id, stored)
	if err != nil {
		return updated, fmt.Errorf("error updating %s %s: %w", s.name, id, err)
	}

	s.deleteFile(ctx, old)
	s.changed()
	return updated, nil
}

func (s *contentService[T]) Slots() []string {
	names := make([]string, 0, len(s.slots))
	for name := range s.slots {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// deleteFile removes a file no record refers to anymore. Failures only
// leave an orphaned object behind, so they are logged.
func (s *contentService[T]) deleteFile(ctx context.Context, url string) {
	if s.uploads == nil {
		return
	}
	if err := s.uploads.DeleteByURL(ctx, url); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", s.funcName("deleteFile")).
			Str("url", url).
			Msg("failed to delete file")
	}
}

func (s *contentService[T]) changed() {
	s.mu.Lock()
	s.generation++
	s.cache.Flush()
	s.mu.Unlock()

	s.revalidator.Notify(s.name)
}

func (s *contentService[T]) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// cacheIfCurrent stores value unless a write happened since gen was read.
func (s *contentService[T]) cacheIfCurrent(gen uint64, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation == gen {
		s.cache.SetDefault(key, value)
	}
}

func applyDefaults[T any](rec *T) {
	if d, ok := any(rec).(models.Defaulter); ok {
		d.ApplyDefaults()
	}
}

// keepPublishedAt preserves the first publication time of a post across
// updates that omit it.
func keepPublishedAt(stored, incoming *models.BlogPost) {
	if incoming.Published && incoming.PublishedAt == nil {
		incoming.PublishedAt = stored.PublishedAt
	}
}

type noopRevalidator struct{}

func (noopRevalidator) Notify(...string) {}
