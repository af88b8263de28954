package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/transaction/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/utilities"
)

// TransactionStore is what the service needs from persistence.
type TransactionStore interface {
	RecordBelongsToUser(ctx context.Context, recordID string, userID int64) (bool, error)
	Create(ctx context.Context, t *entity.Transaction) error
	GetForUser(ctx context.Context, id string, userID int64) (*entity.Transaction, error)
	ListByRecord(ctx context.Context, recordID string, userID int64) ([]entity.Transaction, error)
	SummarizeRecord(ctx context.Context, recordID string, userID int64) (*entity.Summary, error)
	Update(ctx context.Context, t *entity.Transaction, now time.Time) (bool, error)
	Delete(ctx context.Context, id string, userID int64) (bool, error)
}

type Service struct {
	store TransactionStore
	now   func() time.Time
	newID func() string
}

func NewService(store TransactionStore) *Service {
	return &Service{store: store, now: time.Now, newID: utilities.NewRowID}
}

// CreateInput carries the fields accepted when registering a transaction.
type CreateInput struct {
	MonthlyRecordID string
	Kind            string
	Title           string
	Description     string
	Amount          decimal.Decimal
	OccurredAt      time.Time
}

func (s *Service) Create(ctx context.Context, userID int64, in CreateInput) (*entity.Transaction, error) {
	if err := validateFields(in.Kind, in.Title, in.Amount); err != nil {
		return nil, err
	}
	if in.MonthlyRecordID == "" {
		return nil, apperror.Validation("monthly record id is required")
	}
	owned, err := s.store.RecordBelongsToUser(ctx, in.MonthlyRecordID, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if !owned {
		return nil, apperror.NotFound("monthly record not found")
	}

	now := s.now()
	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = now
	}
	t := &entity.Transaction{
		ID:              s.newID(),
		UserID:          userID,
		MonthlyRecordID: in.MonthlyRecordID,
		Kind:            in.Kind,
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		Amount:          in.Amount,
		OccurredAt:      occurred,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, apperror.Internalize(err)
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, userID int64, id string) (*entity.Transaction, error) {
	if id == "" {
		return nil, apperror.Validation("transaction id is required")
	}
	t, err := s.store.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if t == nil {
		return nil, apperror.NotFound("transaction not found")
	}
	return t, nil
}

func (s *Service) ListByRecord(ctx context.Context, userID int64, recordID string) ([]entity.Transaction, error) {
	if recordID == "" {
		return nil, apperror.Validation("monthly record id is required")
	}
	owned, err := s.store.RecordBelongsToUser(ctx, recordID, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if !owned {
		return nil, apperror.NotFound("monthly record not found")
	}
	rows, err := s.store.ListByRecord(ctx, recordID, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	return rows, nil
}

func (s *Service) Summarize(ctx context.Context, userID int64, recordID string) (*entity.Summary, error) {
	if recordID == "" {
		return nil, apperror.Validation("monthly record id is required")
	}
	owned, err := s.store.RecordBelongsToUser(ctx, recordID, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if !owned {
		return nil, apperror.NotFound("monthly record not found")
	}
	sum, err := s.store.SummarizeRecord(ctx, recordID, userID)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	return sum, nil
}

// UpdateInput carries the mutable fields of a transaction. Nil pointers
// leave the stored value untouched.
type UpdateInput struct {
	Kind        *string
	Title       *string
	Description *string
	Amount      *decimal.Decimal
	OccurredAt  *time.Time
}

func (s *Service) Update(ctx context.Context, userID int64, id string, in UpdateInput) (*entity.Transaction, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Kind != nil {
		existing.Kind = *in.Kind
	}
	if in.Title != nil {
		existing.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		existing.Description = *in.Description
	}
	if in.Amount != nil {
		existing.Amount = *in.Amount
	}
	if in.OccurredAt != nil {
		existing.OccurredAt = *in.OccurredAt
	}
	if err := validateFields(existing.Kind, existing.Title, existing.Amount); err != nil {
		return nil, err
	}
	now := s.now()
	ok, err := s.store.Update(ctx, existing, now)
	if err != nil {
		return nil, apperror.Internalize(err)
	}
	if !ok {
		return nil, apperror.NotFound("transaction not found")
	}
	existing.UpdatedAt = now
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, id string) error {
	if id == "" {
		return apperror.Validation("transaction id is required")
	}
	ok, err := s.store.Delete(ctx, id, userID)
	if err != nil {
		return apperror.Internalize(err)
	}
	if !ok {
		return apperror.NotFound("transaction not found")
	}
	return nil
}

func validateFields(kind, title string, amount decimal.Decimal) error {
	if kind != entity.KindIncome && kind != entity.KindExpense {
		return apperror.Validation("kind must be income or expense")
	}
	if strings.TrimSpace(title) == "" {
		return apperror.Validation("title is required")
	}
	if !amount.IsPositive() {
		return apperror.Validation("amount must be greater than zero")
	}
	return nil
}
