// Package risor adapts the Risor script language to the search host's
// script-engine contract. Binding-set variables are injected as Risor globals
// under their own names when declared at compile time, and always under the
// ctx global.
package risor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"

	risorLib "github.com/deepnoodle-ai/risor/v2"
	risorBytecode "github.com/deepnoodle-ai/risor/v2/pkg/bytecode"

	"github.com/scriptforge/searchscript/engine"
	"github.com/scriptforge/searchscript/execution/constants"
	"github.com/scriptforge/searchscript/execution/lookup"
	"github.com/scriptforge/searchscript/execution/script"
	"github.com/scriptforge/searchscript/internal/helpers"
	"github.com/scriptforge/searchscript/machines/internal/machine"
)

var _ engine.ScriptEngine = (*Engine)(nil)

// Engine is the Risor script engine.
type Engine struct {
	compiler *Compiler
	globals  []string

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewEngine creates a new Risor engine.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	e := &Engine{}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("error applying engine option: %w", err)
		}
	}

	if e.globals == nil {
		e.globals = defaultGlobalNames()
	}

	if e.logger != nil {
		e.logHandler = e.logger.Handler()
	} else {
		e.logHandler, e.logger = helpers.SetupLogger(e.logHandler, "risor", "Engine")
	}

	compiler, err := NewCompiler(
		WithCompilerLogHandler(e.logHandler),
		WithGlobals(e.globals),
	)
	if err != nil {
		return nil, err
	}
	e.compiler = compiler

	return e, nil
}

func (e *Engine) String() string {
	return "risor.Engine"
}

// Name implements engine.ScriptEngine.
func (e *Engine) Name() string {
	return "risor"
}

// Extensions implements engine.ScriptEngine.
func (e *Engine) Extensions() []string {
	return []string{"risor", "rsr"}
}

// Compile implements engine.ScriptEngine.
func (e *Engine) Compile(scriptReader io.ReadCloser) (script.ExecutableContent, error) {
	return e.compiler.Compile(scriptReader)
}

// Executable implements engine.ScriptEngine.
func (e *Engine) Executable(
	content script.ExecutableContent,
	vars map[string]any,
) (engine.ExecutableScript, error) {
	bytecode, err := e.byteCode(content)
	if err != nil {
		return nil, err
	}

	return machine.NewExecutable(runFunc(bytecode, e.globals), cloneVars(vars)), nil
}

// Search implements engine.ScriptEngine.
func (e *Engine) Search(
	content script.ExecutableContent,
	lk lookup.SearchLookup,
	vars map[string]any,
) (engine.SearchScript, error) {
	bytecode, err := e.byteCode(content)
	if err != nil {
		return nil, err
	}

	return machine.NewSearch(runFunc(bytecode, e.globals), lk, func() map[string]any {
		return cloneVars(vars)
	})
}

// Execute implements engine.ScriptEngine.
func (e *Engine) Execute(
	ctx context.Context,
	content script.ExecutableContent,
	vars map[string]any,
) (any, error) {
	bytecode, err := e.byteCode(content)
	if err != nil {
		return nil, err
	}

	return runFunc(bytecode, e.globals)(ctx, cloneVars(vars))
}

// Unwrap implements engine.ScriptEngine. Run results are already converted to
// native Go values.
func (e *Engine) Unwrap(value any) any {
	return value
}

// Close implements engine.ScriptEngine.
func (e *Engine) Close() error {
	return nil
}

// ScriptRemoved implements engine.ScriptEngine.
func (e *Engine) ScriptRemoved(script.ExecutableContent) {}

func (e *Engine) byteCode(content script.ExecutableContent) (*risorBytecode.Code, error) {
	if content == nil {
		return nil, engine.ErrContentNil
	}

	bytecode, ok := content.GetByteCode().(*risorBytecode.Code)
	if !ok {
		return nil, fmt.Errorf("%w: expected *bytecode.Code, got %T",
			engine.ErrBytecodeMismatch, content.GetByteCode())
	}
	return bytecode, nil
}

// runFunc builds the machine.RunFunc evaluating the bytecode on the Risor VM.
// The run environment rebuilds the compile environment key for key, since the
// bytecode binds globals by index: declared names resolve to their binding-set
// value or nil, and the full binding set is wrapped under the ctx global.
func runFunc(bytecode *risorBytecode.Code, globals []string) machine.RunFunc {
	return func(ctx context.Context, bindings map[string]any) (any, error) {
		env := compileEnv(globals)
		for name, value := range bindings {
			if _, declared := env[name]; declared {
				env[name] = value
			}
		}
		if _, declared := env[constants.Ctx]; declared {
			env[constants.Ctx] = bindings
		}

		result, err := risorLib.Run(ctx, bytecode, risorLib.WithEnv(env))
		if err != nil {
			return nil, fmt.Errorf("risor execution error: %w", err)
		}
		return result, nil
	}
}

func cloneVars(vars map[string]any) map[string]any {
	bindings := make(map[string]any, len(vars))
	maps.Copy(bindings, vars)
	return bindings
}
