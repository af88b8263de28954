package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryKind(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("nope")))
	assert.Equal(t, KindBusinessRule, KindOf(BusinessRule("conflict")))
	assert.Equal(t, KindInternal, KindOf(Internal("boom", errors.New("db down"))))
}

func TestInternalizePassesTypedThrough(t *testing.T) {
	typed := Validation("bad input")
	assert.Same(t, typed, Internalize(typed))

	wrapped := fmt.Errorf("outer: %w", NotFound("gone"))
	assert.Equal(t, KindNotFound, KindOf(Internalize(wrapped)))
}

func TestInternalizeWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internalize(cause)

	require.Error(t, err)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestInternalizeNil(t *testing.T) {
	assert.NoError(t, Internalize(nil))
}

func TestIs(t *testing.T) {
	assert.True(t, Is(Validation("x"), KindValidation))
	assert.False(t, Is(Validation("x"), KindNotFound))
	assert.False(t, Is(nil, KindInternal))
	assert.True(t, Is(errors.New("untyped"), KindInternal))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "not_found: user not found", NotFound("user not found").Error())
	assert.Equal(t, "internal: boom: db down", Internal("boom", errors.New("db down")).Error())
}
