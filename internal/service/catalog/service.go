package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/parlorhq/parlor-api/internal/model"
	"github.com/parlorhq/parlor-api/internal/repository"
	apperrors "github.com/parlorhq/parlor-api/pkg/errors"
)

const (
	cacheTTL      = 5 * time.Minute
	cacheSweep    = 10 * time.Minute
	listCacheKey  = "services:all"
	itemKeyPrefix = "service:"
)

// Service is the service catalog with a read-through cache. The booking
// engine resolves every price and duration through it, so catalog writes
// must invalidate eagerly.
type Service struct {
	repo  repository.ServiceRepository
	cache *cache.Cache
}

func NewService(repo repository.ServiceRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, cacheSweep),
	}
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	key := itemKeyPrefix + id.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.Service), nil
	}

	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("service")
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	s.cache.Set(key, svc, cache.DefaultExpiration)
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached.([]*model.Service), nil
	}

	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	s.cache.Set(listCacheKey, services, cache.DefaultExpiration)
	return services, nil
}

func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	if err := validateServiceFields(req.Name, req.Price, req.Duration); err != nil {
		return nil, err
	}

	svc := &model.Service{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Duration:    req.Duration,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.cache.Delete(listCacheKey)
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = req.Description
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Duration != nil {
		svc.Duration = *req.Duration
	}
	if req.ImageURL != nil {
		svc.ImageURL = req.ImageURL
	}
	if err := validateServiceFields(svc.Name, svc.Price, svc.Duration); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("service")
		}
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	s.invalidate(id)
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("service")
		}
		return fmt.Errorf("failed to delete service: %w", err)
	}

	s.invalidate(id)
	return nil
}

func (s *Service) invalidate(id uuid.UUID) {
	s.cache.Delete(itemKeyPrefix + id.String())
	s.cache.Delete(listCacheKey)
}

func validateServiceFields(name string, price float64, duration int) error {
	if name == "" {
		return apperrors.Validation("service name is required")
	}
	if price < 0 {
		return apperrors.Validation("service price cannot be negative")
	}
	if duration <= 0 {
		return apperrors.Validation("service duration must be positive")
	}
	return nil
}
