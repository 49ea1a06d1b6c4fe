package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/portfolio-cms/internal/logger"
	"github.com/MKhiriev/portfolio-cms/internal/store"
	"github.com/MKhiriev/portfolio-cms/internal/validators"
	"github.com/MKhiriev/portfolio-cms/models"
)

type blockedIPService struct {
	repo      store.BlockedIPRepository
	validator validators.Validator
	logger    *logger.Logger
}

func NewBlockedIPService(repo store.BlockedIPRepository, logger *logger.Logger) BlockedIPService {
	return &blockedIPService{
		repo:      repo,
		validator: validators.NewContentValidator(),
		logger:    logger,
	}
}

func (s *blockedIPService) List(ctx context.Context) ([]models.BlockedIP, error) {
	return s.repo.List(ctx, models.ListOptions{})
}

func (s *blockedIPService) Block(ctx context.Context, req models.BlockIPRequest, blockedBy string) (models.BlockedIP, bool, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.BlockedIP{}, false, err
	}

	existing, err := s.repo.FindByIP(ctx, req.IP)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.BlockedIP{}, false, fmt.Errorf("error looking up ip: %w", err)
	}

	blocked, err := s.repo.Create(ctx, models.BlockedIP{
		IP:        req.IP,
		Reason:    req.Reason,
		BlockedBy: blockedBy,
		BlockedAt: time.Now().UTC(),
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// blocked concurrently
		existing, err := s.repo.FindByIP(ctx, req.IP)
		return existing, false, err
	}
	if err != nil {
		return models.BlockedIP{}, false, fmt.Errorf("error blocking ip: %w", err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "*blockedIPService.Block").
		Str("ip", req.IP).
		Str("blocked_by", blockedBy).
		Msg("ip blocked")

	return blocked, true, nil
}

func (s *blockedIPService) Unblock(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *blockedIPService) UnblockByIP(ctx context.Context, ip string) error {
	if !validators.IsDottedQuad(ip) {
		return s.validator.Validate(ctx, models.BlockIPRequest{IP: ip})
	}
	return s.repo.DeleteByIP(ctx, ip)
}

func (s *blockedIPService) IsBlocked(ctx context.Context, ip string) (bool, error) {
	_, err := s.repo.FindByIP(ctx, ip)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
