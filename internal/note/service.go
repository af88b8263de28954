package note

import (
	"context"
	"strings"
	"time"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/note/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/note/repo"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/utilities"
)

// Service implements the note CRUD use-cases.
type Service struct {
	repo *repo.NoteRepo
}

func NewService(r *repo.NoteRepo) *Service { return &Service{repo: r} }

func (s *Service) Create(ctx context.Context, userID int64, categoryID *string, title, body string) (*entity.Note, error) {
	title = strings.TrimSpace(title)
	if userID <= 0 {
		return nil, apperror.Validation("user id is required")
	}
	if title == "" {
		return nil, apperror.Validation("title is required")
	}
	n := &entity.Note{
		ID:         utilities.NewRowID(),
		UserID:     userID,
		CategoryID: categoryID,
		Title:      title,
		Body:       body,
		CreatedAt:  time.Now(),
	}
	n.UpdatedAt = n.CreatedAt
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, apperror.Internalize(err)
	}
	return n, nil
}

func (s *Service) Get(ctx context.Context, userID int64, id string) (*entity.Note, error) {
	if id == "" {
		return nil, apperror.Validation("note id is required")
	}
	n, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if n == nil {
		return nil, apperror.NotFound("note not found")
	}
	return n, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]entity.Note, error) {
	if userID <= 0 {
		return nil, apperror.Validation("user id is required")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	return rows, nil
}

func (s *Service) Update(ctx context.Context, userID int64, id string, categoryID *string, title, body string) (*entity.Note, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if title = strings.TrimSpace(title); title != "" {
		existing.Title = title
	}
	if body != "" {
		existing.Body = body
	}
	if categoryID != nil {
		existing.CategoryID = categoryID
	}
	now := time.Now()
	ok, err := s.repo.Update(ctx, existing, now)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if !ok {
		return nil, apperror.NotFound("note not found")
	}
	existing.UpdatedAt = now
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	if id == "" {
		return apperror.Validation("note id is required")
	}
	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return apperror.Internalize(err)
	}
	if !ok {
		return apperror.NotFound("note not found")
	}
	return nil
}
