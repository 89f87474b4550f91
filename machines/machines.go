// Package machines creates script engines by machine type.
package machines

import (
	"fmt"
	"log/slog"

	"github.com/scriptforge/searchscript/engine"
	celMachine "github.com/scriptforge/searchscript/machines/cel"
	exprMachine "github.com/scriptforge/searchscript/machines/expr"
	risorMachine "github.com/scriptforge/searchscript/machines/risor"
	starlarkMachine "github.com/scriptforge/searchscript/machines/starlark"
	"github.com/scriptforge/searchscript/machines/types"
)

// NewEngine creates a script engine for the given machine type. A nil handler
// falls back to the default logging configuration.
func NewEngine(t types.Type, handler slog.Handler) (engine.ScriptEngine, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	switch t {
	case types.Expr:
		if handler == nil {
			return exprMachine.NewEngine()
		}
		return exprMachine.NewEngine(exprMachine.WithLogHandler(handler))
	case types.CEL:
		if handler == nil {
			return celMachine.NewEngine()
		}
		return celMachine.NewEngine(celMachine.WithLogHandler(handler))
	case types.Risor:
		if handler == nil {
			return risorMachine.NewEngine()
		}
		return risorMachine.NewEngine(risorMachine.WithLogHandler(handler))
	case types.Starlark:
		if handler == nil {
			return starlarkMachine.NewEngine()
		}
		return starlarkMachine.NewEngine(starlarkMachine.WithLogHandler(handler))
	default:
		return nil, fmt.Errorf("unsupported machine type: %q", t)
	}
}

// NewRegistry creates a registry with every supported machine registered,
// giving the host a complete script-language dispatch table.
func NewRegistry(handler slog.Handler) (*engine.Registry, error) {
	registry := engine.NewRegistry()

	for _, t := range []types.Type{types.Expr, types.CEL, types.Risor, types.Starlark} {
		eng, err := NewEngine(t, handler)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s engine: %w", t, err)
		}
		if err := registry.Register(eng); err != nil {
			return nil, err
		}
	}

	return registry, nil
}
