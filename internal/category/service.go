package category

import (
	"context"
	"strings"
	"time"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/category/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/utilities"
)

var validKinds = map[string]struct{}{
	"income":  {},
	"expense": {},
	"general": {},
}

// CategoryStore is the persistence contract for categories.
type CategoryStore interface {
	Create(ctx context.Context, c *entity.Category) error
	GetForUser(ctx context.Context, id string, userID int64) (*entity.Category, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.Category, error)
	Update(ctx context.Context, c *entity.Category, now time.Time) (bool, error)
	Delete(ctx context.Context, id string, userID int64) (bool, error)
}

// Service implements the category CRUD use-cases.
type Service struct {
	store CategoryStore
}

func NewService(store CategoryStore) *Service { return &Service{store: store} }

func (s *Service) Create(ctx context.Context, userID int64, name, kind, description string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if userID <= 0 {
		return nil, apperror.Validation("user id is required")
	}
	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	if kind == "" {
		kind = "general"
	}
	if _, ok := validKinds[kind]; !ok {
		return nil, apperror.Validation("kind must be income, expense or general")
	}
	c := &entity.Category{
		ID:          utilities.NewRowID(),
		UserID:      userID,
		Name:        name,
		Kind:        kind,
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now(),
	}
	c.UpdatedAt = c.CreatedAt
	if err := s.store.Create(ctx, c); err != nil {
		return nil, apperror.Internalize(err)
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, userID int64, id string) (*entity.Category, error) {
	if id == "" {
		return nil, apperror.Validation("category id is required")
	}
	c, err := s.store.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if c == nil {
		return nil, apperror.NotFound("category not found")
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]entity.Category, error) {
	if userID <= 0 {
		return nil, apperror.Validation("user id is required")
	}
	rows, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	return rows, nil
}

func (s *Service) Update(ctx context.Context, userID int64, id, name, kind, description string) (*entity.Category, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		existing.Name = name
	}
	if kind != "" {
		if _, ok := validKinds[kind]; !ok {
			return nil, apperror.Validation("kind must be income, expense or general")
		}
		existing.Kind = kind
	}
	if description != "" {
		existing.Description = strings.TrimSpace(description)
	}
	now := time.Now()
	ok, err := s.store.Update(ctx, existing, now)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if !ok {
		return nil, apperror.NotFound("category not found")
	}
	existing.UpdatedAt = now
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	if id == "" {
		return apperror.Validation("category id is required")
	}
	ok, err := s.store.Delete(ctx, id, userID)
	if err != nil {
		return apperror.Internalize(err)
	}
	if !ok {
		return apperror.NotFound("category not found")
	}
	return nil
}
