package category

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/category/entity"
	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/pkg/apperror"
)

type fakeStore struct {
	rows map[string]*entity.Category
}

func newFakeStore() *fakeStore { return &fakeStore{rows: map[string]*entity.Category{}} }

func (f *fakeStore) Create(_ context.Context, c *entity.Category) error {
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeStore) GetForUser(_ context.Context, id string, userID int64) (*entity.Category, error) {
	c, ok := f.rows[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID int64) ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range f.rows {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, c *entity.Category, now time.Time) (bool, error) {
	existing, ok := f.rows[c.ID]
	if !ok || existing.UserID != c.UserID {
		return false, nil
	}
	cp := *c
	cp.UpdatedAt = now
	f.rows[c.ID] = &cp
	return true, nil
}

func (f *fakeStore) Delete(_ context.Context, id string, userID int64) (bool, error) {
	c, ok := f.rows[id]
	if !ok || c.UserID != userID {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

func TestCreateDefaultsToGeneralKind(t *testing.T) {
	svc := NewService(newFakeStore())

	c, err := svc.Create(context.Background(), 1, "  Groceries  ", "", "weekly shopping")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", c.Name)
	assert.Equal(t, "general", c.Kind)
	assert.NotEmpty(t, c.ID)
}

func TestCreateRejectsUnknownKind(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Create(context.Background(), 1, "Groceries", "savings", "")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestGetEnforcesOwnership(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	c, err := svc.Create(context.Background(), 1, "Groceries", "expense", "")
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), 1, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = svc.Get(context.Background(), 2, c.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	c, err := svc.Create(context.Background(), 1, "Groceries", "expense", "weekly")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), 1, c.ID, "Food", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Food", updated.Name)
	assert.Equal(t, "expense", updated.Kind)
	assert.Equal(t, "weekly", updated.Description)
}

func TestDeleteMissing(t *testing.T) {
	svc := NewService(newFakeStore())

	err := svc.Delete(context.Background(), 1, "does-not-exist")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
