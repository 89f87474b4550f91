package data

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		want  Types
	}{
		{"nil", nil, NONE},
		{"bool", true, BOOL},
		{"int", 1, INT},
		{"int64", int64(1), INT},
		{"uint", uint(1), INT},
		{"float64", 1.5, FLOAT},
		{"float32", float32(1.5), FLOAT},
		{"string", "str", STRING},
		{"map", map[string]any{"a": 1}, MAP},
		{"list", []any{1, 2}, LIST},
		{"error", errors.New("boom"), ERROR},
		{"unclassified struct", struct{}{}, NONE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TypeOf(tt.input))
		})
	}
}
