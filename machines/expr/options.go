package expr

import (
	"fmt"
	"log/slog"
)

// CompilerOption configures a Compiler instance.
type CompilerOption func(*Compiler) error

// WithCompilerLogHandler sets the log handler for the expr compiler. This is
// the preferred option for logging configuration as it provides more
// flexibility through the slog.Handler interface.
func WithCompilerLogHandler(handler slog.Handler) CompilerOption {
	return func(c *Compiler) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.logHandler = handler
		c.logger = nil
		return nil
	}
}

// WithCompilerLogger sets a specific logger for the expr compiler. This is
// less flexible than WithCompilerLogHandler but allows users to customize
// their logging group configuration.
func WithCompilerLogger(logger *slog.Logger) CompilerOption {
	return func(c *Compiler) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		c.logHandler = nil
		return nil
	}
}

// EngineOption configures an Engine instance.
type EngineOption func(*Engine) error

// WithLogHandler sets the log handler for the expr engine.
func WithLogHandler(handler slog.Handler) EngineOption {
	return func(e *Engine) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		e.logHandler = handler
		e.logger = nil
		return nil
	}
}

// WithLogger sets a specific logger for the expr engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		e.logger = logger
		e.logHandler = nil
		return nil
	}
}

// WithBuiltins merges extra name-to-function bindings into the engine's builtin
// table at construction. The table is immutable after the engine is built.
func WithBuiltins(extra map[string]any) EngineOption {
	return func(e *Engine) error {
		for k, v := range extra {
			if v == nil {
				return fmt.Errorf("builtin %q is nil", k)
			}
			e.builtins[k] = v
		}
		return nil
	}
}
