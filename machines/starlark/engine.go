// Package starlark adapts the Starlark configuration language to the search
// host's script-engine contract. Binding-set variables are injected as
// predeclared globals under their own names when declared at compile time,
// and always under the ctx dict.
package starlark

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"

	starlarkLib "go.starlark.net/starlark"

	"github.com/scriptforge/searchscript/engine"
	"github.com/scriptforge/searchscript/execution/constants"
	"github.com/scriptforge/searchscript/execution/lookup"
	"github.com/scriptforge/searchscript/execution/script"
	"github.com/scriptforge/searchscript/internal/helpers"
	"github.com/scriptforge/searchscript/machines/internal/machine"
)

var _ engine.ScriptEngine = (*Engine)(nil)

// Engine is the Starlark script engine.
type Engine struct {
	compiler *Compiler
	globals  []string
	universe starlarkLib.StringDict

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewEngine creates a new Starlark engine.
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
	e.universe = standardModules()

	if e.logger != nil {
		e.logHandler = e.logger.Handler()
	} else {
		e.logHandler, e.logger = helpers.SetupLogger(e.logHandler, "starlark", "Engine")
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
	return "starlark.Engine"
}

// Name implements engine.ScriptEngine.
func (e *Engine) Name() string {
	return "starlark"
}

// Extensions implements engine.ScriptEngine.
func (e *Engine) Extensions() []string {
	return []string{"star", "bzl"}
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
	prog, err := e.program(content)
	if err != nil {
		return nil, err
	}

	return machine.NewExecutable(e.runFunc(prog), cloneVars(vars)), nil
}

// Search implements engine.ScriptEngine.
func (e *Engine) Search(
	content script.ExecutableContent,
	lk lookup.SearchLookup,
	vars map[string]any,
) (engine.SearchScript, error) {
	prog, err := e.program(content)
	if err != nil {
		return nil, err
	}

	return machine.NewSearch(e.runFunc(prog), lk, func() map[string]any {
		return cloneVars(vars)
	})
}

// Execute implements engine.ScriptEngine.
func (e *Engine) Execute(
	ctx context.Context,
	content script.ExecutableContent,
	vars map[string]any,
) (any, error) {
	prog, err := e.program(content)
	if err != nil {
		return nil, err
	}

	return e.runFunc(prog)(ctx, cloneVars(vars))
}

// Unwrap implements engine.ScriptEngine. Starlark values are translated to
// native Go values; everything else passes through.
func (e *Engine) Unwrap(value any) any {
	if sv, ok := value.(starlarkLib.Value); ok {
		if native, err := convertStarlarkValueToInterface(sv); err == nil {
			return native
		}
	}
	return value
}

// Close implements engine.ScriptEngine.
func (e *Engine) Close() error {
	return nil
}

// ScriptRemoved implements engine.ScriptEngine.
func (e *Engine) ScriptRemoved(script.ExecutableContent) {}

func (e *Engine) program(content script.ExecutableContent) (*starlarkLib.Program, error) {
	if content == nil {
		return nil, engine.ErrContentNil
	}

	prog, ok := content.GetByteCode().(*starlarkLib.Program)
	if !ok {
		return nil, fmt.Errorf("%w: expected *starlark.Program, got %T",
			engine.ErrBytecodeMismatch, content.GetByteCode())
	}
	return prog, nil
}

// runFunc builds the machine.RunFunc executing the program on a fresh thread.
// The result is the "_" convention value (the last expression evaluated), or
// the "result" global when "_" is None.
func (e *Engine) runFunc(prog *starlarkLib.Program) machine.RunFunc {
	logger := e.logger.WithGroup("exec")

	return func(ctx context.Context, bindings map[string]any) (any, error) {
		inputGlobals, err := convertBindings(constants.Ctx, bindings)
		if err != nil {
			return nil, err
		}

		// Names compiled as predeclared must all be resolvable at Init time.
		// Declared names absent from the binding set default to None.
		predeclared := make(starlarkLib.StringDict, len(e.universe)+len(e.globals))
		maps.Copy(predeclared, e.universe)
		for _, name := range e.globals {
			if _, ok := predeclared[name]; !ok {
				predeclared[name] = starlarkLib.None
			}
		}
		maps.Copy(predeclared, inputGlobals)

		thread := &starlarkLib.Thread{
			Name: "eval",
			Print: func(thread *starlarkLib.Thread, msg string) {
				logger.InfoContext(ctx, msg, "starlark-thread", thread.Name)
			},
		}

		// Propagate context cancellation to the running thread
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				thread.Cancel(ctx.Err().Error())
			case <-done:
			}
		}()

		finalGlobals, err := prog.Init(thread, predeclared)
		if err != nil {
			return nil, fmt.Errorf("starlark execution error: %w", err)
		}

		mainVal := finalGlobals["_"]
		if mainVal == nil || mainVal == starlarkLib.None {
			if resultVal, ok := finalGlobals["result"]; ok {
				mainVal = resultVal
			}
		}
		if mainVal == nil {
			return nil, nil
		}

		return convertStarlarkValueToInterface(mainVal)
	}
}

func cloneVars(vars map[string]any) map[string]any {
	bindings := make(map[string]any, len(vars))
	maps.Copy(bindings, vars)
	return bindings
}
