package starlark

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/scriptforge/searchscript/execution/constants"
)

// defaultGlobalNames returns the binding-set variable names predeclared at
// compile time. Variables bound with other names remain reachable through the
// ctx dict.
func defaultGlobalNames() []string {
	return []string{
		constants.Ctx,
		constants.DocVar,
		constants.SourceVar,
		constants.ScoreVar,
	}
}

// CompilerOption configures a Compiler instance.
type CompilerOption func(*Compiler) error

// WithGlobals sets the predeclared global names for Starlark scripts,
// replacing the defaults.
func WithGlobals(globals []string) CompilerOption {
	return func(c *Compiler) error {
		c.globals = globals
		return nil
	}
}

// WithCtxGlobal is a convenience option ensuring the ctx global is predeclared.
func WithCtxGlobal() CompilerOption {
	return func(c *Compiler) error {
		if !slices.Contains(c.globals, constants.Ctx) {
			c.globals = append(c.globals, constants.Ctx)
		}
		return nil
	}
}

// WithCompilerLogHandler sets the log handler for the Starlark compiler.
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

// WithCompilerLogger sets a specific logger for the Starlark compiler.
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

// WithLogHandler sets the log handler for the Starlark engine.
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

// WithLogger sets a specific logger for the Starlark engine.
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

// WithEngineGlobals sets extra predeclared global names for scripts compiled
// by the engine, in addition to the defaults.
func WithEngineGlobals(globals []string) EngineOption {
	return func(e *Engine) error {
		e.globals = append(defaultGlobalNames(), globals...)
		return nil
	}
}
