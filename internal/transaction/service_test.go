package transaction

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/transaction/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
)

type fakeStore struct {
	records map[string]int64 // record id -> owner
	rows    map[string]*entity.Transaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]int64{}, rows: map[string]*entity.Transaction{}}
}

func (f *fakeStore) RecordBelongsToUser(_ context.Context, recordID string, userID int64) (bool, error) {
	owner, ok := f.records[recordID]
	return ok && owner == userID, nil
}

func (f *fakeStore) Create(_ context.Context, t *entity.Transaction) error {
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeStore) GetForUser(_ context.Context, id string, userID int64) (*entity.Transaction, error) {
	t, ok := f.rows[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) ListByRecord(_ context.Context, recordID string, userID int64) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, t := range f.rows {
		if t.MonthlyRecordID == recordID && t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeStore) SummarizeRecord(_ context.Context, recordID string, userID int64) (*entity.Summary, error) {
	s := &entity.Summary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range f.rows {
		if t.MonthlyRecordID != recordID || t.UserID != userID {
			continue
		}
		if t.Kind == entity.KindIncome {
			s.Income = s.Income.Add(t.Amount)
		} else {
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	s.Balance = s.Income.Sub(s.Expense)
	return s, nil
}

func (f *fakeStore) Update(_ context.Context, t *entity.Transaction, now time.Time) (bool, error) {
	existing, ok := f.rows[t.ID]
	if !ok || existing.UserID != t.UserID {
		return false, nil
	}
	cp := *t
	cp.UpdatedAt = now
	f.rows[t.ID] = &cp
	return true, nil
}

func (f *fakeStore) Delete(_ context.Context, id string, userID int64) (bool, error) {
	t, ok := f.rows[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

func newTestService(store *fakeStore) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local) }
	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("tx-%d", seq)
	}
	return svc
}

func TestCreateRequiresOwnedRecord(t *testing.T) {
	store := newFakeStore()
	store.records["rec-1"] = 1
	svc := newTestService(store)

	in := CreateInput{
		MonthlyRecordID: "rec-1",
		Kind:            entity.KindExpense,
		Title:           "Groceries",
		Amount:          decimal.NewFromFloat(120.50),
	}
	tx, err := svc.Create(context.Background(), 1, in)
	require.NoError(t, err)
	assert.Equal(t, "rec-1", tx.MonthlyRecordID)
	assert.False(t, tx.OccurredAt.IsZero(), "missing occurredAt defaults to now")

	// another user cannot attach transactions to the same record
	_, err = svc.Create(context.Background(), 2, in)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestCreateValidation(t *testing.T) {
	store := newFakeStore()
	store.records["rec-1"] = 1
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), 1, CreateInput{
		MonthlyRecordID: "rec-1", Kind: "transfer", Title: "x", Amount: decimal.NewFromInt(1),
	})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.Create(context.Background(), 1, CreateInput{
		MonthlyRecordID: "rec-1", Kind: entity.KindIncome, Title: "  ", Amount: decimal.NewFromInt(1),
	})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.Create(context.Background(), 1, CreateInput{
		MonthlyRecordID: "rec-1", Kind: entity.KindIncome, Title: "Salary", Amount: decimal.Zero,
	})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestSummarize(t *testing.T) {
	store := newFakeStore()
	store.records["rec-1"] = 1
	svc := newTestService(store)

	for _, in := range []CreateInput{
		{MonthlyRecordID: "rec-1", Kind: entity.KindIncome, Title: "Salary", Amount: decimal.NewFromInt(3000)},
		{MonthlyRecordID: "rec-1", Kind: entity.KindExpense, Title: "Rent", Amount: decimal.NewFromInt(1200)},
		{MonthlyRecordID: "rec-1", Kind: entity.KindExpense, Title: "Groceries", Amount: decimal.NewFromFloat(350.75)},
	} {
		_, err := svc.Create(context.Background(), 1, in)
		require.NoError(t, err)
	}

	sum, err := svc.Summarize(context.Background(), 1, "rec-1")
	require.NoError(t, err)
	assert.True(t, sum.Income.Equal(decimal.NewFromInt(3000)))
	assert.True(t, sum.Expense.Equal(decimal.NewFromFloat(1550.75)))
	assert.True(t, sum.Balance.Equal(decimal.NewFromFloat(1449.25)))
}

func TestUpdatePartialFields(t *testing.T) {
	store := newFakeStore()
	store.records["rec-1"] = 1
	svc := newTestService(store)

	tx, err := svc.Create(context.Background(), 1, CreateInput{
		MonthlyRecordID: "rec-1", Kind: entity.KindExpense, Title: "Rent", Amount: decimal.NewFromInt(1200),
	})
	require.NoError(t, err)

	newAmount := decimal.NewFromInt(1250)
	updated, err := svc.Update(context.Background(), 1, tx.ID, UpdateInput{Amount: &newAmount})
	require.NoError(t, err)
	assert.Equal(t, "Rent", updated.Title)
	assert.True(t, updated.Amount.Equal(newAmount))

	badKind := "transfer"
	_, err = svc.Update(context.Background(), 1, tx.ID, UpdateInput{Kind: &badKind})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestDeleteUnknownTransaction(t *testing.T) {
	svc := newTestService(newFakeStore())

	err := svc.Delete(context.Background(), 1, "missing")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
