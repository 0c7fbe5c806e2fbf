package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	state := map[string]any{
		"search": map[string]any{"Query": "quantum computing"},
		"empty":  "",
	}

	t.Run("plain text passes through", func(t *testing.T) {
		out, err := RenderTemplate("no markers here", state)
		require.NoError(t, err)
		assert.Equal(t, "no markers here", out)
	})

	t.Run("substitution", func(t *testing.T) {
		out, err := RenderTemplate("Summarize {{.search.Query}}", state)
		require.NoError(t, err)
		assert.Equal(t, "Summarize quantum computing", out)
	})

	t.Run("upper and lower", func(t *testing.T) {
		out, err := RenderTemplate(`{{upper .search.Query}} / {{lower "LOUD"}}`, state)
		require.NoError(t, err)
		assert.Equal(t, "QUANTUM COMPUTING / loud", out)
	})

	t.Run("default for empty values", func(t *testing.T) {
		out, err := RenderTemplate(`{{default "fallback" .empty}}`, state)
		require.NoError(t, err)
		assert.Equal(t, "fallback", out)
	})

	t.Run("join", func(t *testing.T) {
		out, err := RenderTemplate(`{{join ", " .items}}`, map[string]any{
			"items": []any{"a", "b", 3},
		})
		require.NoError(t, err)
		assert.Equal(t, "a, b, 3", out)
	})

	t.Run("malformed template", func(t *testing.T) {
		_, err := RenderTemplate("{{.search.Query", state)
		assert.Error(t, err)
	})
}

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
