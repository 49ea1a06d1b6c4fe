package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/config"
	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/store"
	"github.com/MKhiriev/portfolio-cms/internal/validators"
	"github.com/MKhiriev/portfolio-cms/models"
	"github.com/patrickmn/go-cache"
)

// AutoGate is recorded as BlockedBy on addresses blocked automatically.
const AutoGate = "auto-gate"

const autoBlockReason = "Exceeded contact form rate limit repeatedly"

// contactService runs the contact form gate:
//
//	block list lookup → validate → rate check → persist as unread
//
// The rate check counts the messages stored for the address within the
// window, so concurrent submissions may both pass a stale count.
type contactService struct {
	messages  store.ContactMessageRepository
	blocked   store.BlockedIPRepository
	validator validators.Validator
	gate      config.Gate

	// rejections counts rate-limited attempts per IP for auto-blocking.
	rejections *cache.Cache

	now    func() time.Time
	logger *logger.Logger
}

func NewContactService(messages store.ContactMessageRepository, blocked store.BlockedIPRepository, gate config.Gate, logger *logger.Logger) ContactService {
	return &contactService{
		messages:   messages,
		blocked:    blocked,
		validator:  validators.NewContentValidator(),
		gate:       gate,
		rejections: cache.New(gate.Window, gate.Window),
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

func (s *contactService) Submit(ctx context.Context, ip string, req models.ContactRequest) (models.ContactMessage, error) {
	log := logger.FromContext(ctx)

	// blocked callers get 403 whatever they send
	_, err := s.blocked.FindByIP(ctx, ip)
	switch {
	case err == nil:
		log.Info().Str("func", "*contactService.Submit").Str("ip", ip).Msg("message from blocked ip rejected")
		return models.ContactMessage{}, ErrIPBlocked
	case !errors.Is(err, store.ErrNotFound):
		return models.ContactMessage{}, fmt.Errorf("error checking block list: %w", err)
	}

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.ContactMessage{}, err
	}

	if s.gate.RateLimitEnabled() {
		if err := s.checkRate(ctx, ip); err != nil {
			return models.ContactMessage{}, err
		}
	}

	msg := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.MessageUnread,
		IP:      ip,
	}

	saved, err := s.messages.Create(ctx, msg)
	if err != nil {
		log.Err(err).Str("func", "*contactService.Submit").Msg("error saving contact message")
		return models.ContactMessage{}, fmt.Errorf("error saving contact message: %w", err)
	}

	return saved, nil
}

// checkRate returns a [*RateLimitError] when ip already sent MaxMessages
// messages within the window.
func (s *contactService) checkRate(ctx context.Context, ip string) error {
	now := s.now()

	recent, err := s.messages.RecentByIP(ctx, ip, now.Add(-s.gate.Window))
	if err != nil {
		return fmt.Errorf("error checking message rate: %w", err)
	}
	if len(recent) < s.gate.MaxMessages {
		return nil
	}

	// recent is oldest first; the oldest message leaving the window frees a slot
	retryAfter := recent[0].Add(s.gate.Window).Sub(now)

	logger.FromContext(ctx).Info().
		Str("func", "*contactService.checkRate").
		Str("ip", ip).
		Int("recent", len(recent)).
		Dur("retry_after", retryAfter).
		Msg("contact rate limit hit")

	s.countRejection(ctx, ip)
	return &RateLimitError{RetryAfter: retryAfter}
}

// countRejection blocks ip once it was rate-limited AutoBlockAfter times
// within the window.
func (s *contactService) countRejection(ctx context.Context, ip string) {
	if !s.gate.AutoBlockEnabled() {
		return
	}
	log := logger.FromContext(ctx)

	count := 1
	if err := s.rejections.Add(ip, count, cache.DefaultExpiration); err != nil {
		count, err = s.rejections.IncrementInt(ip, 1)
		if err != nil {
			log.Warn().Err(err).Str("func", "*contactService.countRejection").Msg("error counting rejection")
			return
		}
	}
	if count < s.gate.AutoBlockAfter {
		return
	}

	_, err := s.blocked.Create(ctx, models.BlockedIP{
		IP:        ip,
		Reason:    autoBlockReason,
		BlockedBy: AutoGate,
		BlockedAt: s.now(),
	})
	if err != nil && !errors.Is(err, store.ErrAlreadyExists) {
		log.Warn().Err(err).Str("func", "*contactService.countRejection").Str("ip", ip).Msg("error auto-blocking ip")
		return
	}

	s.rejections.Delete(ip)
	log.Warn().Str("func", "*contactService.countRejection").Str("ip", ip).Int("rejections", count).Msg("ip auto-blocked")
}

func (s *contactService) List(ctx context.Context, opts models.ListOptions) ([]models.ContactMessage, error) {
	if opts.Status != "" {
		if err := s.validator.Validate(ctx, models.StatusUpdateRequest{Status: models.MessageStatus(opts.Status)}); err != nil {
			return nil, err
		}
	}
	return s.messages.List(ctx, opts)
}

func (s *contactService) Get(ctx context.Context, id string) (models.ContactMessage, error) {
	return s.messages.Get(ctx, id)
}

func (s *contactService) UpdateStatus(ctx context.Context, id string, req models.StatusUpdateRequest) (models.ContactMessage, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.ContactMessage{}, err
	}
	return s.messages.UpdateStatus(ctx, id, req.Status)
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	return s.messages.Delete(ctx, id)
}

func (s *contactService) UnreadCount(ctx context.Context) (int, error) {
	return s.messages.CountUnread(ctx)
}
