package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/parlorhq/parlor-api/internal/model"
	"github.com/parlorhq/parlor-api/internal/repository"
	apperrors "github.com/parlorhq/parlor-api/pkg/errors"
	"github.com/parlorhq/parlor-api/pkg/logger"
)

type Service struct {
	repo   repository.StaffRepository
	logger *logger.Logger
}

func NewService(repo repository.StaffRepository, l *logger.Logger) *Service {
	return &Service{repo: repo, logger: l}
}

func (s *Service) CreateStaff(ctx context.Context, req *model.CreateStaffRequest) (*model.Staff, error) {
	staff := &model.Staff{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		Bio:             req.Bio,
		Active:          true,
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to create staff: %w", err)
	}
	return staff, nil
}

func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	staff, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("stylist")
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}

	hours, err := s.repo.WorkingHours(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load working hours: %w", err)
	}
	staff.WorkingHours = hours
	return staff, nil
}

func (s *Service) ListStaff(ctx context.Context) ([]*model.Staff, error) {
	staff, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (s *Service) UpdateStaff(ctx context.Context, id uuid.UUID, req *model.UpdateStaffRequest) (*model.Staff, error) {
	staff, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("stylist")
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Phone != nil {
		staff.Phone = req.Phone
	}
	if req.Specialization != nil {
		staff.Specialization = req.Specialization
	}
	if req.ExperienceYears != nil {
		staff.ExperienceYears = *req.ExperienceYears
	}
	if req.Bio != nil {
		staff.Bio = req.Bio
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}

	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to update staff: %w", err)
	}
	return staff, nil
}

func (s *Service) DeactivateStaff(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("stylist")
		}
		return fmt.Errorf("failed to deactivate staff: %w", err)
	}
	return nil
}

// SetWorkingHours replaces a stylist's weekly schedule wholesale.
func (s *Service) SetWorkingHours(ctx context.Context, staffID uuid.UUID, hours []*model.WorkingHour) ([]*model.WorkingHour, error) {
	ok, err := s.repo.Exists(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to check staff: %w", err)
	}
	if !ok {
		return nil, apperrors.NotFound("stylist")
	}

	for _, h := range hours {
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			return nil, apperrors.Validation("day_of_week must be between 0 and 6")
		}
		if h.StartTime >= h.EndTime {
			return nil, apperrors.Validation("start_time must be before end_time")
		}
	}

	if err := s.repo.SetWorkingHours(ctx, staffID, hours); err != nil {
		return nil, fmt.Errorf("failed to set working hours: %w", err)
	}
	return s.repo.WorkingHours(ctx, staffID)
}
