package data

import (
	"context"
	"fmt"
	"maps"
)

// ContextKey is the type used for storing binding maps in a context.Context.
type ContextKey string

// ContextProvider retrieves and stores variable bindings in the context using
// a specified key. It allows the host to attach per-request bindings to the
// context it already threads through query execution.
type ContextProvider struct {
	contextKey ContextKey
}

// NewContextProvider creates a new ContextProvider with the given context key.
func NewContextProvider(contextKey ContextKey) *ContextProvider {
	return &ContextProvider{
		contextKey: contextKey,
	}
}

// GetData extracts a map[string]any from the context using the configured key.
// A missing value is not an error; scripts then run with an empty binding set.
func (p *ContextProvider) GetData(ctx context.Context) (map[string]any, error) {
	if p.contextKey == "" {
		return nil, fmt.Errorf("context key is empty")
	}

	value := ctx.Value(p.contextKey)
	if value == nil {
		return make(map[string]any), nil
	}

	bindings, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid binding data type: expected map[string]any, got %T", value)
	}

	return bindings, nil
}

// AddDataToContext stores variable bindings in the context for script
// execution. Multiple maps are merged in order, later maps overriding earlier
// ones for duplicate keys. Bindings already present under the key are
// preserved unless overridden.
//
// Example:
//
//	provider := NewContextProvider(constants.EvalData)
//	ctx, err := provider.AddDataToContext(ctx, map[string]any{"x": 5})
func (p *ContextProvider) AddDataToContext(
	ctx context.Context,
	data ...map[string]any,
) (context.Context, error) {
	if p.contextKey == "" {
		return ctx, fmt.Errorf("context key is empty")
	}

	toStore := make(map[string]any)

	// Start from any bindings already stored under the key
	if existing, ok := ctx.Value(p.contextKey).(map[string]any); ok {
		maps.Copy(toStore, existing)
	}

	for _, item := range data {
		if item == nil {
			continue
		}
		maps.Copy(toStore, item)
	}

	return context.WithValue(ctx, p.contextKey, toStore), nil
}
