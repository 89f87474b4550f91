package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider_GetData(t *testing.T) {
	t.Parallel()

	t.Run("returns configured bindings", func(t *testing.T) {
		t.Parallel()
		p := NewStaticProvider(map[string]any{"x": 5, "name": "test"})

		got, err := p.GetData(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"x": 5, "name": "test"}, got)
	})

	t.Run("nil map becomes empty", func(t *testing.T) {
		t.Parallel()
		p := NewStaticProvider(nil)

		got, err := p.GetData(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("callers cannot mutate the source map", func(t *testing.T) {
		t.Parallel()
		p := NewStaticProvider(map[string]any{"x": 1})

		first, err := p.GetData(context.Background())
		require.NoError(t, err)
		first["x"] = 99
		first["y"] = "added"

		second, err := p.GetData(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"x": 1}, second)
	})
}
