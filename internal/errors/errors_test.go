package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := Wrap(cause, ErrCodeInternal, "operation failed")
	require.NotNil(t, err)
	assert.Equal(t, "operation failed: boom", err.Error())
	require.ErrorIs(t, err, cause)

	plain := NotFound("account not found")
	assert.Equal(t, "account not found", plain.Error())
	assert.Nil(t, plain.Unwrap())
}

func TestWrap_NilError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Wrap(nil, ErrCodeInternal, "whatever"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "whatever %d", 1))
}

func TestCodePredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		check func(error) bool
		code  ErrorCode
	}{
		{"not found", NotFound("x"), IsNotFound, ErrCodeNotFound},
		{"conflict", Conflict("x"), IsConflict, ErrCodeConflict},
		{"validation", Validation("x"), IsValidation, ErrCodeValidation},
		{"foreign key", ForeignKey("x"), IsForeignKey, ErrCodeForeignKey},
		{"internal", Internal("x"), IsInternal, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, tt.check(tt.err))
			assert.Equal(t, tt.code, GetCode(tt.err))

			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, tt.check(wrapped), "predicate should see through wrapping")
		})
	}
}

func TestPredicates_NonAppError(t *testing.T) {
	t.Parallel()

	err := errors.New("plain")
	assert.False(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
	assert.Equal(t, ErrorCode(""), GetCode(err))
	assert.Equal(t, "", GetField(err))
}

func TestValidationField(t *testing.T) {
	t.Parallel()

	err := ValidationField("username", "username cannot be empty")
	assert.True(t, IsValidation(err))
	assert.Equal(t, "username", GetField(err))
}
