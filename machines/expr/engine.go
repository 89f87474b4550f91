package expr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"

	exprLib "github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/scriptforge/searchscript/engine"
	"github.com/scriptforge/searchscript/execution/lookup"
	"github.com/scriptforge/searchscript/execution/script"
	"github.com/scriptforge/searchscript/internal/helpers"
	"github.com/scriptforge/searchscript/machines/internal/machine"
)

var _ engine.ScriptEngine = (*Engine)(nil)

// Engine is the expr script engine. It delegates parsing and evaluation to
// the expr-lang library and carries a fixed builtin table (math functions and
// the time alias) that every executor sees at the lowest binding precedence.
//
// A compiled program is stateless and safely shared across concurrent
// evaluation contexts; each executor owns a private binding map.
type Engine struct {
	compiler *Compiler
	builtins map[string]any

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewEngine creates a new expr engine. The builtin table is built here, once,
// and treated as immutable afterward.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		builtins: builtins(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("error applying engine option: %w", err)
		}
	}

	if e.logger != nil {
		e.logHandler = e.logger.Handler()
	} else {
		e.logHandler, e.logger = helpers.SetupLogger(e.logHandler, "expr", "Engine")
	}

	compiler, err := NewCompiler(WithCompilerLogHandler(e.logHandler))
	if err != nil {
		return nil, err
	}
	e.compiler = compiler

	return e, nil
}

func (e *Engine) String() string {
	return "expr.Engine"
}

// Name implements engine.ScriptEngine.
func (e *Engine) Name() string {
	return "expr"
}

// Extensions implements engine.ScriptEngine.
func (e *Engine) Extensions() []string {
	return []string{"expr"}
}

// Compile implements engine.ScriptEngine. Parse errors from the expr library
// propagate to the caller; there is no local validation.
func (e *Engine) Compile(scriptReader io.ReadCloser) (script.ExecutableContent, error) {
	return e.compiler.Compile(scriptReader)
}

// Executable implements engine.ScriptEngine, returning a standalone executor
// with a fresh binding set seeded from the builtin table and vars.
func (e *Engine) Executable(
	content script.ExecutableContent,
	vars map[string]any,
) (engine.ExecutableScript, error) {
	program, err := e.program(content)
	if err != nil {
		return nil, err
	}

	return machine.NewExecutable(runFunc(program), e.newBindings(vars)), nil
}

// Search implements engine.ScriptEngine, returning a per-segment factory
// bound to the given document lookup source.
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
		return e.newBindings(vars)
	})
}

// Execute implements engine.ScriptEngine: a direct one-shot run without the
// executor lifecycle.
func (e *Engine) Execute(
	ctx context.Context,
	content script.ExecutableContent,
	vars map[string]any,
) (any, error) {
	program, err := e.program(content)
	if err != nil {
		return nil, err
	}

	return runFunc(program)(ctx, e.newBindings(vars))
}

// Unwrap implements engine.ScriptEngine. Expr results are already native Go
// values, so this is the identity.
func (e *Engine) Unwrap(value any) any {
	return value
}

// Close implements engine.ScriptEngine. The expr engine holds no resources.
func (e *Engine) Close() error {
	return nil
}

// ScriptRemoved implements engine.ScriptEngine. The expr engine keeps no
// per-script state outside the compiled handle the host owns.
func (e *Engine) ScriptRemoved(script.ExecutableContent) {}

// program asserts the compiled handle's bytecode into an expr program.
func (e *Engine) program(content script.ExecutableContent) (*vm.Program, error) {
	if content == nil {
		return nil, engine.ErrContentNil
	}

	program, ok := content.GetByteCode().(*vm.Program)
	if !ok {
		return nil, fmt.Errorf("%w: expected *vm.Program, got %T",
			engine.ErrBytecodeMismatch, content.GetByteCode())
	}
	return program, nil
}

// newBindings builds a fresh binding map: builtins at the lowest precedence,
// then the caller's vars. A nil vars map is treated as empty.
func (e *Engine) newBindings(vars map[string]any) map[string]any {
	bindings := maps.Clone(e.builtins)
	maps.Copy(bindings, vars)
	return bindings
}

// runFunc builds the machine.RunFunc evaluating the program. The context is
// accepted for interface symmetry; bounding execution time is the host's
// responsibility.
func runFunc(program *vm.Program) machine.RunFunc {
	return func(_ context.Context, bindings map[string]any) (any, error) {
		return exprLib.Run(program, bindings)
	}
}
