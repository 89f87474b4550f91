package data

import (
	"context"
	"maps"
)

// StaticProvider is a simple provider that returns a predefined map of
// variable bindings. It's useful for testing and for cases where the bindings
// are known in advance and don't need to be retrieved from the context or
// external sources.
type StaticProvider struct {
	// data is the static map of bindings returned by GetData
	data map[string]any
}

// NewStaticProvider creates a new StaticProvider with the provided binding map.
func NewStaticProvider(data map[string]any) *StaticProvider {
	if data == nil {
		data = make(map[string]any)
	}
	return &StaticProvider{
		data: data,
	}
}

// GetData implements Provider.GetData. It returns the static binding map
// regardless of the context.
func (p *StaticProvider) GetData(_ context.Context) (map[string]any, error) {
	// Return a clone of the data to prevent modification of the original
	return maps.Clone(p.data), nil
}
