package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuggestions(t *testing.T) {
	t.Run("json array", func(t *testing.T) {
		got, err := parseSuggestions(`["I design products.", "I build teams."]`)
		require.NoError(t, err)
		assert.Equal(t, []string{"I design products.", "I build teams."}, got)
	})

	t.Run("fenced json", func(t *testing.T) {
		got, err := parseSuggestions("```json\n[\"One.\", \"Two.\"]\n```")
		require.NoError(t, err)
		assert.Equal(t, []string{"One.", "Two."}, got)
	})

	t.Run("plain lines", func(t *testing.T) {
		got, err := parseSuggestions("1. First bio.\n\n- Second bio.\n")
		require.NoError(t, err)
		assert.Equal(t, []string{"First bio.", "Second bio."}, got)
	})

	t.Run("capped", func(t *testing.T) {
		got, err := parseSuggestions(`["a", "b", "c", "d"]`)
		require.NoError(t, err)
		assert.Len(t, got, maxBios)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := parseSuggestions("   ")
		assert.Error(t, err)
	})
}
