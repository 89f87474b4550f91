// Package cel adapts the Common Expression Language to the search host's
// script-engine contract. CEL programs are parse-only compiled so variables
// bind at execution time, matching the other machines' dynamic model.
package cel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"

	celLib "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types/ref"

	"github.com/scriptforge/searchscript/engine"
	"github.com/scriptforge/searchscript/execution/lookup"
	"github.com/scriptforge/searchscript/execution/script"
	"github.com/scriptforge/searchscript/internal/helpers"
	"github.com/scriptforge/searchscript/machines/internal/machine"
)

var _ engine.ScriptEngine = (*Engine)(nil)

// Engine is the CEL script engine.
type Engine struct {
	compiler  *Compiler
	costLimit uint64

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewEngine creates a new CEL engine.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		costLimit: DefaultCostLimit,
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("error applying engine option: %w", err)
		}
	}

	if e.logger != nil {
		e.logHandler = e.logger.Handler()
	} else {
		e.logHandler, e.logger = helpers.SetupLogger(e.logHandler, "cel", "Engine")
	}

	compiler, err := NewCompiler(
		WithCompilerLogHandler(e.logHandler),
		WithCostLimit(e.costLimit),
	)
	if err != nil {
		return nil, err
	}
	e.compiler = compiler

	return e, nil
}

func (e *Engine) String() string {
	return "cel.Engine"
}

// Name implements engine.ScriptEngine.
func (e *Engine) Name() string {
	return "cel"
}

// Extensions implements engine.ScriptEngine.
func (e *Engine) Extensions() []string {
	return []string{"cel"}
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
	program, err := e.program(content)
	if err != nil {
		return nil, err
	}

	return machine.NewExecutable(runFunc(program), cloneVars(vars)), nil
}

// Search implements engine.ScriptEngine.
func (e *Engine) Search(
	content script.ExecutableContent,
	lk lookup.SearchLookup,
	vars map[string]any,
) (engine.SearchScript, error) {
	program, err := e.program(content)
	if err != nil {
		return nil, err
	}

	return machine.NewSearch(runFunc(program), lk, func() map[string]any {
		return cloneVars(vars)
	})
}

// Execute implements engine.ScriptEngine.
func (e *Engine) Execute(
	ctx context.Context,
	content script.ExecutableContent,
	vars map[string]any,
) (any, error) {
	program, err := e.program(content)
	if err != nil {
		return nil, err
	}

	return runFunc(program)(ctx, cloneVars(vars))
}

// Unwrap implements engine.ScriptEngine. Raw CEL values are translated to
// native Go values; everything else passes through.
func (e *Engine) Unwrap(value any) any {
	if rv, ok := value.(ref.Val); ok {
		return rv.Value()
	}
	return value
}

// Close implements engine.ScriptEngine.
func (e *Engine) Close() error {
	return nil
}

// ScriptRemoved implements engine.ScriptEngine.
func (e *Engine) ScriptRemoved(script.ExecutableContent) {}

func (e *Engine) program(content script.ExecutableContent) (celLib.Program, error) {
	if content == nil {
		return nil, engine.ErrContentNil
	}

	program, ok := content.GetByteCode().(celLib.Program)
	if !ok {
		return nil, fmt.Errorf("%w: expected cel.Program, got %T",
			engine.ErrBytecodeMismatch, content.GetByteCode())
	}
	return program, nil
}

// runFunc builds the machine.RunFunc evaluating the program with a map
// activation and converting the CEL result to a native Go value.
func runFunc(program celLib.Program) machine.RunFunc {
	return func(ctx context.Context, bindings map[string]any) (any, error) {
		out, _, err := program.ContextEval(ctx, bindings)
		if err != nil {
			return nil, fmt.Errorf("cel evaluation error: %w", err)
		}
		return out.Value(), nil
	}
}

func cloneVars(vars map[string]any) map[string]any {
	bindings := make(map[string]any, len(vars))
	maps.Copy(bindings, vars)
	return bindings
}
