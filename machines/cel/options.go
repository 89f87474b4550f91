package cel

import (
	"fmt"
	"log/slog"
)

// CompilerOption configures a Compiler instance.
type CompilerOption func(*Compiler) error

// WithCompilerLogHandler sets the log handler for the CEL compiler.
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

// WithCompilerLogger sets a specific logger for the CEL compiler.
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

// WithCostLimit sets the runtime cost limit for CEL program evaluation.
// Programs that exceed this cost during evaluation return an error.
func WithCostLimit(limit uint64) CompilerOption {
	return func(c *Compiler) error {
		if limit == 0 {
			return fmt.Errorf("cost limit cannot be zero")
		}
		c.costLimit = limit
		return nil
	}
}

// EngineOption configures an Engine instance.
type EngineOption func(*Engine) error

// WithLogHandler sets the log handler for the CEL engine.
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

// WithLogger sets a specific logger for the CEL engine.
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

// WithEngineCostLimit sets the evaluation cost limit used by the engine's compiler.
func WithEngineCostLimit(limit uint64) EngineOption {
	return func(e *Engine) error {
		if limit == 0 {
			return fmt.Errorf("cost limit cannot be zero")
		}
		e.costLimit = limit
		return nil
	}
}
