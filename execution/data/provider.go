package data

import (
	"context"
)

// Provider is an interface for retrieving variable bindings for script evaluation.
type Provider interface {
	// GetData retrieves the binding map from the given context.
	// Returns a map of variable names to arbitrary values that will be visible
	// to the script during evaluation. If an error occurs during data
	// retrieval, it will be returned.
	GetData(ctx context.Context) (map[string]any, error)
}
