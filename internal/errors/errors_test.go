package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("should format the message with and without a cause", func(t *testing.T) {
		bare := NewAppError(TypeVCS, "something broke", nil)
		assert.Equal(t, "VCS: something broke", bare.Error())

		wrapped := NewAppError(TypeVCS, "something broke", errors.New("boom"))
		assert.Equal(t, "VCS: something broke (boom)", wrapped.Error())
	})

	t.Run("should unwrap to the underlying error", func(t *testing.T) {
		cause := errors.New("boom")
		appErr := NewAppError(TypeAI, "generation failed", cause)

		assert.ErrorIs(t, appErr, cause)
	})

	t.Run("WithContext should not mutate the original", func(t *testing.T) {
		derived := ErrRepositoryNotFound.
			WithContext("repo", "octo-org/widgets").
			WithContext("pr_number", 42)

		assert.Empty(t, ErrRepositoryNotFound.Context)
		assert.Equal(t, "octo-org/widgets", derived.Context["repo"])
		assert.Equal(t, 42, derived.Context["pr_number"])
		assert.Equal(t, ErrRepositoryNotFound.Message, derived.Message)
	})

	t.Run("WithError should keep type and suggestion", func(t *testing.T) {
		cause := errors.New("429 too many requests")
		derived := ErrQuotaExceeded.WithError(cause)

		require.NotNil(t, derived)
		assert.Equal(t, TypeAI, derived.Type)
		assert.Equal(t, ErrQuotaExceeded.Suggestion, derived.Suggestion)
		assert.ErrorIs(t, derived, cause)
	})
}
