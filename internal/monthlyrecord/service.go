package monthlyrecord

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	categoryrepo "github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/category/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/monthlyrecord/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/monthlyrecord/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/utilities"
)

// Service implements the monthly-record CRUD use-cases.
type Service struct {
	repo       *repo.MonthlyRecordRepo
	categories *categoryrepo.CategoryRepo
}

func NewService(r *repo.MonthlyRecordRepo, categories *categoryrepo.CategoryRepo) *Service {
	return &Service{repo: r, categories: categories}
}

func (s *Service) Create(ctx context.Context, userID int64, categoryID string, month, year int, goal decimal.Decimal) (*entity.MonthlyRecord, error) {
	if userID <= 0 {
		return nil, apperror.Validation("user id is required")
	}
	if categoryID == "" {
		return nil, apperror.Validation("category id is required")
	}
	if month < 1 || month > 12 {
		return nil, apperror.Validation("month must be between 1 and 12")
	}
	if year < 1 {
		return nil, apperror.Validation("year is required")
	}
	if goal.IsNegative() {
		return nil, apperror.Validation("goal cannot be negative")
	}

	category, err := s.categories.GetForUser(ctx, categoryID, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if category == nil {
		return nil, apperror.NotFound("category not found")
	}

	taken, err := s.repo.ExistsForPeriod(ctx, userID, categoryID, month, year)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if taken {
		return nil, apperror.BusinessRule("a record already exists for this category and month")
	}

	m := &entity.MonthlyRecord{
		ID:         utilities.NewRowID(),
		UserID:     userID,
		CategoryID: categoryID,
		Month:      month,
		Year:       year,
		Goal:       goal,
		CreatedAt:  time.Now(),
	}
	m.UpdatedAt = m.CreatedAt
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, apperror.Internalize(err)
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, userID int64, id string) (*entity.MonthlyRecord, error) {
	if id == "" {
		return nil, apperror.Validation("record id is required")
	}
	m, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if m == nil {
		return nil, apperror.NotFound("monthly record not found")
	}
	return m, nil
}

func (s *Service) ListPeriod(ctx context.Context, userID int64, month, year int) ([]entity.MonthlyRecord, error) {
	if month < 1 || month > 12 {
		return nil, apperror.Validation("month must be between 1 and 12")
	}
	if year < 1 {
		return nil, apperror.Validation("year is required")
	}
	rows, err := s.repo.ListByUserPeriod(ctx, userID, month, year)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	return rows, nil
}

func (s *Service) UpdateGoal(ctx context.Context, userID int64, id string, goal decimal.Decimal) (*entity.MonthlyRecord, error) {
	if goal.IsNegative() {
		return nil, apperror.Validation("goal cannot be negative")
	}
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	existing.Goal = goal
	now := time.Now()
	ok, err := s.repo.UpdateGoal(ctx, existing, now)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if !ok {
		return nil, apperror.NotFound("monthly record not found")
	}
	existing.UpdatedAt = now
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	if id == "" {
		return apperror.Validation("record id is required")
	}
	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return apperror.Internalize(err)
	}
	if !ok {
		return apperror.NotFound("monthly record not found")
	}
	return nil
}
