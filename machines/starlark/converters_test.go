package starlark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	starlarkLib "go.starlark.net/starlark"
)

func TestConvertToStarlarkValue(t *testing.T) {
	t.Parallel()

	t.Run("scalars", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name  string
			input any
			want  starlarkLib.Value
		}{
			{"nil", nil, starlarkLib.None},
			{"bool", true, starlarkLib.Bool(true)},
			{"int", 5, starlarkLib.MakeInt(5)},
			{"int64", int64(5), starlarkLib.MakeInt64(5)},
			{"float64", 1.5, starlarkLib.Float(1.5)},
			{"string", "str", starlarkLib.String("str")},
		}
		for _, tt := range tests {
			got, err := convertToStarlarkValue(tt.input)
			require.NoError(t, err, tt.name)
			assert.Equal(t, tt.want, got, tt.name)
		}
	})

	t.Run("list", func(t *testing.T) {
		t.Parallel()
		got, err := convertToStarlarkValue([]any{1, "two"})
		require.NoError(t, err)
		list, ok := got.(*starlarkLib.List)
		require.True(t, ok)
		assert.Equal(t, 2, list.Len())
	})

	t.Run("map", func(t *testing.T) {
		t.Parallel()
		got, err := convertToStarlarkValue(map[string]any{"price": 10.0})
		require.NoError(t, err)
		dict, ok := got.(*starlarkLib.Dict)
		require.True(t, ok)

		v, found, err := dict.Get(starlarkLib.String("price"))
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, starlarkLib.Float(10.0), v)
	})

	t.Run("unsupported type fails", func(t *testing.T) {
		t.Parallel()
		_, err := convertToStarlarkValue(struct{}{})
		assert.Error(t, err)
	})
}

func TestConvertStarlarkValueToInterface(t *testing.T) {
	t.Parallel()

	t.Run("scalars", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name  string
			input starlarkLib.Value
			want  any
		}{
			{"none", starlarkLib.None, nil},
			{"bool", starlarkLib.Bool(true), true},
			{"int", starlarkLib.MakeInt(5), int64(5)},
			{"float", starlarkLib.Float(1.5), 1.5},
			{"string", starlarkLib.String("str"), "str"},
		}
		for _, tt := range tests {
			got, err := convertStarlarkValueToInterface(tt.input)
			require.NoError(t, err, tt.name)
			assert.Equal(t, tt.want, got, tt.name)
		}
	})

	t.Run("round trip of nested structures", func(t *testing.T) {
		t.Parallel()
		original := map[string]any{
			"name":   "doc",
			"price":  10.5,
			"tags":   []any{"a", "b"},
			"nested": map[string]any{"ok": true},
		}

		sv, err := convertToStarlarkValue(original)
		require.NoError(t, err)

		back, err := convertStarlarkValueToInterface(sv)
		require.NoError(t, err)
		assert.Equal(t, original, back)
	})
}

func TestConvertBindings(t *testing.T) {
	t.Parallel()

	t.Run("bindings visible under both names and ctx", func(t *testing.T) {
		t.Parallel()
		dict, err := convertBindings("ctx", map[string]any{"x": 5, "y": "str"})
		require.NoError(t, err)

		assert.Equal(t, starlarkLib.MakeInt(5), dict["x"])
		assert.Equal(t, starlarkLib.String("str"), dict["y"])

		ctxDict, ok := dict["ctx"].(*starlarkLib.Dict)
		require.True(t, ok)
		v, found, err := ctxDict.Get(starlarkLib.String("x"))
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, starlarkLib.MakeInt(5), v)
	})

	t.Run("unconvertible binding fails", func(t *testing.T) {
		t.Parallel()
		_, err := convertBindings("ctx", map[string]any{"bad": make(chan int)})
		assert.Error(t, err)
	})

	t.Run("empty bindings produce just the ctx dict", func(t *testing.T) {
		t.Parallel()
		dict, err := convertBindings("ctx", nil)
		require.NoError(t, err)
		assert.Len(t, dict, 1)
		assert.Contains(t, dict, "ctx")
	})
}
