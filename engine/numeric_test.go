package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDouble(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"float64", 1.5, 1.5},
		{"float32", float32(2.5), 2.5},
		{"int", 3, 3.0},
		{"int32", int32(4), 4.0},
		{"int64", int64(5), 5.0},
		{"uint", uint(6), 6.0},
		{"uint64", uint64(7), 7.0},
		{"negative", -8, -8.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ToDouble(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("non-numeric fails", func(t *testing.T) {
		t.Parallel()
		_, err := ToDouble("nope")
		assert.ErrorIs(t, err, ErrNotNumeric)

		_, err = ToDouble(nil)
		assert.ErrorIs(t, err, ErrNotNumeric)
	})
}

func TestToFloat(t *testing.T) {
	t.Parallel()

	got, err := ToFloat(1.5)
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), got)

	got, err = ToFloat(int64(2))
	require.NoError(t, err)
	assert.Equal(t, float32(2), got)

	_, err = ToFloat([]int{1})
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestToLong(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		want  int64
	}{
		{"int64", int64(5), 5},
		{"int", 6, 6},
		{"truncates positive float", 1.9, 1},
		{"truncates negative float", -1.9, -1},
		{"float32", float32(3.5), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ToLong(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("non-numeric fails", func(t *testing.T) {
		t.Parallel()
		_, err := ToLong(map[string]any{})
		assert.ErrorIs(t, err, ErrNotNumeric)
	})
}
