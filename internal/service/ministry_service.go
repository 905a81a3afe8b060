package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

const (
	ministryCacheKey = "ministries:active"
	ministryCacheTTL = 60 * time.Second
)

// MinistryService manages ministries and the public ministry listing.
type MinistryService struct {
	ministries repository.MinistryRepository
	cache      *redis.Client
	logger     *zap.Logger
}

// NewMinistryService constructs the service. cache may be nil.
func NewMinistryService(ministries repository.MinistryRepository, cache *redis.Client, logger *zap.Logger) *MinistryService {
	return &MinistryService{ministries: ministries, cache: cache, logger: logger}
}

// MinistryInput describes create/update payloads.
type MinistryInput struct {
	Name        string
	Description string
	Icon        string
	Color       string
	IsActive    *bool
}

// ListActive returns active ministries, served from cache when warm.
func (s *MinistryService) ListActive(ctx context.Context) ([]domain.Ministry, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, ministryCacheKey).Bytes(); err == nil {
			var cached []domain.Ministry
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	ministries, err := s.ministries.List(ctx, true)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(ministries); err == nil {
			if err := s.cache.Set(ctx, ministryCacheKey, raw, ministryCacheTTL).Err(); err != nil {
				s.logger.Warn("ministry cache write failed", zap.Error(err))
			}
		}
	}
	return ministries, nil
}

// ListAll returns every ministry, for the admin table.
func (s *MinistryService) ListAll(ctx context.Context) ([]domain.Ministry, error) {
	ministries, err := s.ministries.List(ctx, false)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ministries, nil
}

// Get returns one ministry.
func (s *MinistryService) Get(ctx context.Context, id string) (*domain.Ministry, error) {
	ministry, err := s.ministries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ministry", map[string]any{"ministry_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ministry, nil
}

// Create registers a ministry.
func (s *MinistryService) Create(ctx context.Context, input MinistryInput) (*domain.Ministry, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	ministry := &domain.Ministry{
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
		IsActive:    true,
	}
	if input.IsActive != nil {
		ministry.IsActive = *input.IsActive
	}
	if err := s.ministries.Create(ctx, ministry); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("ministry name already exists", map[string]any{"name": input.Name})
		}
		return nil, apperrors.MapError(err)
	}
	s.invalidateCache(ctx)
	return ministry, nil
}

// Update modifies a ministry.
func (s *MinistryService) Update(ctx context.Context, id string, input MinistryInput) (*domain.Ministry, error) {
	ministry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		ministry.Name = input.Name
	}
	if input.Description != "" {
		ministry.Description = input.Description
	}
	if input.Icon != "" {
		ministry.Icon = input.Icon
	}
	if input.Color != "" {
		ministry.Color = input.Color
	}
	if input.IsActive != nil {
		ministry.IsActive = *input.IsActive
	}
	if err := s.ministries.Update(ctx, ministry); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("ministry name already exists", map[string]any{"name": input.Name})
		}
		return nil, apperrors.MapError(err)
	}
	s.invalidateCache(ctx)
	return ministry, nil
}

// Delete removes a ministry.
func (s *MinistryService) Delete(ctx context.Context, id string) error {
	if err := s.ministries.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ministry", map[string]any{"ministry_id": id})
		}
		return apperrors.MapError(err)
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *MinistryService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, ministryCacheKey).Err(); err != nil {
		s.logger.Warn("ministry cache invalidation failed", zap.Error(err))
	}
}
