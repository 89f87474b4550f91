// Package options configures the top-level evaluator constructors.
package options

import (
	"fmt"
	"log/slog"

	"github.com/scriptforge/searchscript/execution/data"
	"github.com/scriptforge/searchscript/execution/script/loader"
	"github.com/scriptforge/searchscript/machines/types"
)

// Config holds all configuration for creating a script evaluator.
type Config struct {
	// handler receives log records from the engine and its components
	handler slog.Handler
	// machineType selects the script machine (expr, cel, risor, starlark)
	machineType types.Type
	// dataProvider supplies variable bindings at evaluation time
	dataProvider data.Provider
	// loader supplies the script content
	loader loader.Loader
	// staticData is merged into the binding set at the lowest precedence
	staticData map[string]any
}

// Option is a function that modifies Config.
type Option func(*Config) error

// DefaultConfig returns a Config initialized for the given machine type.
func DefaultConfig(machineType types.Type) *Config {
	return &Config{
		machineType: machineType,
	}
}

// WithLogger sets the log handler for the evaluator and its components.
func WithLogger(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler != nil {
			c.handler = handler
		}
		return nil
	}
}

// WithDataProvider sets the runtime binding provider.
func WithDataProvider(provider data.Provider) Option {
	return func(c *Config) error {
		if provider != nil {
			c.dataProvider = provider
		}
		return nil
	}
}

// WithLoader sets the script loader.
func WithLoader(l loader.Loader) Option {
	return func(c *Config) error {
		if l != nil {
			c.loader = l
		}
		return nil
	}
}

// WithStaticData sets compile-time bindings, merged below runtime bindings.
func WithStaticData(staticData map[string]any) Option {
	return func(c *Config) error {
		c.staticData = staticData
		return nil
	}
}

// Validate performs basic validation on the configuration.
func (c *Config) Validate() error {
	if c.loader == nil {
		return fmt.Errorf("no loader specified")
	}
	if c.machineType == "" {
		return fmt.Errorf("no machine type specified")
	}
	return c.machineType.Validate()
}

// GetHandler returns the configured log handler.
func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

// GetMachineType returns the configured machine type.
func (c *Config) GetMachineType() types.Type {
	return c.machineType
}

// GetDataProvider returns the configured data provider.
func (c *Config) GetDataProvider() data.Provider {
	return c.dataProvider
}

// GetLoader returns the configured loader.
func (c *Config) GetLoader() loader.Loader {
	return c.loader
}

// GetStaticData returns the configured compile-time bindings.
func (c *Config) GetStaticData() map[string]any {
	return c.staticData
}
