package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	t.Run("should extract JSON from a markdown block", func(t *testing.T) {
		text := "Here you go:\n```json\n{\"title\": \"hi\"}\n```\nEnjoy!"

		assert.JSONEq(t, `{"title": "hi"}`, ExtractJSON(text))
	})

	t.Run("should extract a bare JSON object surrounded by prose", func(t *testing.T) {
		text := "Sure! {\"title\": \"hi\", \"labels\": [\"fix\"]} hope that helps"

		assert.JSONEq(t, `{"title": "hi", "labels": ["fix"]}`, ExtractJSON(text))
	})

	t.Run("should ignore braces inside string literals", func(t *testing.T) {
		text := `{"body": "use {} literals"}`

		assert.JSONEq(t, `{"body": "use {} literals"}`, ExtractJSON(text))
	})

	t.Run("should prefer the largest valid block", func(t *testing.T) {
		text := `{"a":1} and then {"title":"hi","body":"longer block"}`

		assert.JSONEq(t, `{"title":"hi","body":"longer block"}`, ExtractJSON(text))
	})
}

func TestSanitizeJSON(t *testing.T) {
	t.Run("should escape raw newlines inside string literals", func(t *testing.T) {
		raw := "{\"body\": \"line one\nline two\"}"

		sanitized := SanitizeJSON(raw)

		assert.JSONEq(t, `{"body": "line one\nline two"}`, sanitized)
	})
}

func TestCleanLabels(t *testing.T) {
	t.Run("should normalize, filter and deduplicate", func(t *testing.T) {
		labels := []string{"  Fix ", "FEATURE", "fix", "made-up-label", ""}

		assert.Equal(t, []string{"fix", "feature"}, CleanLabels(labels))
	})

	t.Run("should return an empty slice for no valid labels", func(t *testing.T) {
		assert.Empty(t, CleanLabels([]string{"nope", " "}))
	})
}
