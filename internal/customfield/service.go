package customfield

import (
	"context"
	"strings"
	"time"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/customfield/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/customfield/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/utilities"
)

var validDataTypes = map[string]struct{}{
	"text":   {},
	"number": {},
	"date":   {},
	"bool":   {},
}

// Service implements the custom-field CRUD use-cases with optimistic
// locking on updates.
type Service struct {
	repo *repo.CustomFieldRepo
}

func NewService(r *repo.CustomFieldRepo) *Service { return &Service{repo: r} }

func (s *Service) Create(ctx context.Context, userID int64, name, dataType string, required bool) (*entity.CustomField, error) {
	name = strings.TrimSpace(name)
	if userID <= 0 {
		return nil, apperror.Validation("user id is required")
	}
	if name == "" {
		return nil, apperror.Validation("name is required")
	}
	if dataType == "" {
		dataType = "text"
	}
	if _, ok := validDataTypes[dataType]; !ok {
		return nil, apperror.Validation("dataType must be text, number, date or bool")
	}
	f := &entity.CustomField{
		ID:        utilities.NewRowID(),
		UserID:    userID,
		Name:      name,
		DataType:  dataType,
		Required:  required,
		Version:   1,
		CreatedAt: time.Now(),
	}
	f.UpdatedAt = f.CreatedAt
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, apperror.Internalize(err)
	}
	return f, nil
}

func (s *Service) Get(ctx context.Context, userID int64, id string) (*entity.CustomField, error) {
	if id == "" {
		return nil, apperror.Validation("field id is required")
	}
	f, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if f == nil {
		return nil, apperror.NotFound("custom field not found")
	}
	return f, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]entity.CustomField, error) {
	if userID <= 0 {
		return nil, apperror.Validation("user id is required")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	return rows, nil
}

// Update applies changes with optimistic locking: the load supplies the
// expected version, and zero affected rows after a successful load means a
// concurrent writer got there first.
func (s *Service) Update(ctx context.Context, userID int64, id, name, dataType string, required *bool) (*entity.CustomField, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		existing.Name = name
	}
	if dataType != "" {
		if _, ok := validDataTypes[dataType]; !ok {
			return nil, apperror.Validation("dataType must be text, number, date or bool")
		}
		existing.DataType = dataType
	}
	if required != nil {
		existing.Required = *required
	}

	expected := existing.Version
	existing.Version = expected + 1
	now := time.Now()
	rows, err := s.repo.Update(ctx, existing, expected, now)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if rows == 0 {
		return nil, apperror.BusinessRule("custom field was modified concurrently")
	}
	existing.UpdatedAt = now
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	if id == "" {
		return apperror.Validation("field id is required")
	}
	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return apperror.Internalize(err)
	}
	if !ok {
		return apperror.NotFound("custom field not found")
	}
	return nil
}
