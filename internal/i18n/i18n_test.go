package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslations(t *testing.T) {
	t.Run("should resolve embedded english messages", func(t *testing.T) {
		trans, err := NewTranslations("en")
		require.NoError(t, err)

		msg := trans.GetMessage("result.review_empty", 0, nil)
		assert.Equal(t, "Review completed, but no results were returned.", msg)
	})

	t.Run("should interpolate template data", func(t *testing.T) {
		trans, err := NewTranslations("en")
		require.NoError(t, err)

		msg := trans.GetMessage("error.review_failed", 0, map[string]interface{}{
			"Error": "boom",
		})
		assert.Equal(t, "Error reviewing PR: boom", msg)
	})

	t.Run("should flag missing message IDs", func(t *testing.T) {
		trans, err := NewTranslations("en")
		require.NoError(t, err)

		msg := trans.GetMessage("does.not.exist", 0, nil)
		assert.Contains(t, msg, "Translation missing")
	})

	t.Run("should reject switching to an unknown language", func(t *testing.T) {
		trans, err := NewTranslations("en")
		require.NoError(t, err)

		assert.Error(t, trans.SetLanguage("fr"))
	})
}
