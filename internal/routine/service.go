package routine

import (
	"context"
	"strings"
	"time"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/routine/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/routine/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/utilities"
)

// Service implements the routine CRUD use-cases.
type Service struct {
	repo *repo.RoutineRepo
}

func NewService(r *repo.RoutineRepo) *Service { return &Service{repo: r} }

func validateWeekdays(days []int64) error {
	for _, d := range days {
		if d < 0 || d > 6 {
			return apperror.Validation("weekdays must be between 0 (Sunday) and 6 (Saturday)")
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, userID int64, title, description string, weekdays []int64) (*entity.Routine, error) {
	title = strings.TrimSpace(title)
	if userID <= 0 {
		return nil, apperror.Validation("user id is required")
	}
	if title == "" {
		return nil, apperror.Validation("title is required")
	}
	if err := validateWeekdays(weekdays); err != nil {
		return nil, err
	}
	rt := &entity.Routine{
		ID:          utilities.NewRowID(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Weekdays:    weekdays,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	rt.UpdatedAt = rt.CreatedAt
	if err := s.repo.Create(ctx, rt); err != nil {
		return nil, apperror.Internalize(err)
	}
	return rt, nil
}

func (s *Service) Get(ctx context.Context, userID int64, id string) (*entity.Routine, error) {
	if id == "" {
		return nil, apperror.Validation("routine id is required")
	}
	rt, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if rt == nil {
		return nil, apperror.NotFound("routine not found")
	}
	return rt, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]entity.Routine, error) {
	if userID <= 0 {
		return nil, apperror.Validation("user id is required")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	return rows, nil
}

func (s *Service) Update(ctx context.Context, userID int64, id, title, description string, weekdays []int64, active *bool) (*entity.Routine, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if title = strings.TrimSpace(title); title != "" {
		existing.Title = title
	}
	if description != "" {
		existing.Description = strings.TrimSpace(description)
	}
	if weekdays != nil {
		if err := validateWeekdays(weekdays); err != nil {
			return nil, err
		}
		existing.Weekdays = weekdays
	}
	if active != nil {
		existing.Active = *active
	}
	now := time.Now()
	ok, err := s.repo.Update(ctx, existing, now)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if !ok {
		return nil, apperror.NotFound("routine not found")
	}
	existing.UpdatedAt = now
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	if id == "" {
		return apperror.Validation("routine id is required")
	}
	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return apperror.Internalize(err)
	}
	if !ok {
		return apperror.NotFound("routine not found")
	}
	return nil
}
