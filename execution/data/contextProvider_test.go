package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextProvider_GetData(t *testing.T) {
	t.Parallel()

	const key ContextKey = "eval_data"

	t.Run("returns stored bindings", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider(key)
		ctx := context.WithValue(context.Background(), key, map[string]any{"x": 5})

		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"x": 5}, got)
	})

	t.Run("missing value yields empty bindings", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider(key)

		got, err := p.GetData(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("wrong value type fails", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider(key)
		ctx := context.WithValue(context.Background(), key, "not a map")

		_, err := p.GetData(ctx)
		assert.Error(t, err)
	})

	t.Run("empty key fails", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider("")
		_, err := p.GetData(context.Background())
		assert.Error(t, err)
	})
}

func TestContextProvider_AddDataToContext(t *testing.T) {
	t.Parallel()

	const key ContextKey = "eval_data"

	t.Run("stores bindings", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider(key)

		ctx, err := p.AddDataToContext(context.Background(), map[string]any{"x": 5})
		require.NoError(t, err)

		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"x": 5}, got)
	})

	t.Run("later maps override earlier", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider(key)

		ctx, err := p.AddDataToContext(context.Background(),
			map[string]any{"x": 1, "y": 2},
			map[string]any{"x": 10},
		)
		require.NoError(t, err)

		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"x": 10, "y": 2}, got)
	})

	t.Run("existing bindings preserved across calls", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider(key)

		ctx, err := p.AddDataToContext(context.Background(), map[string]any{"a": 1})
		require.NoError(t, err)
		ctx, err = p.AddDataToContext(ctx, map[string]any{"b": 2})
		require.NoError(t, err)

		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": 1, "b": 2}, got)
	})

	t.Run("nil maps skipped", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider(key)

		ctx, err := p.AddDataToContext(context.Background(), nil, map[string]any{"x": 1})
		require.NoError(t, err)

		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"x": 1}, got)
	})

	t.Run("empty key fails", func(t *testing.T) {
		t.Parallel()
		p := NewContextProvider("")
		_, err := p.AddDataToContext(context.Background(), map[string]any{"x": 1})
		assert.Error(t, err)
	})
}
