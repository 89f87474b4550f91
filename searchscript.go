// Package searchscript lets a search host execute user-supplied expressions
// as scoring and filtering scripts. Script machines implement a single
// host-facing contract (compile, bind variables, execute per document or
// standalone); this top-level package assembles them into "compile once, run
// many times" evaluators.
package searchscript

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scriptforge/searchscript/engine"
	"github.com/scriptforge/searchscript/execution/script"
	"github.com/scriptforge/searchscript/execution/script/loader"
	"github.com/scriptforge/searchscript/machines"
	"github.com/scriptforge/searchscript/machines/types"
	"github.com/scriptforge/searchscript/options"
)

var _ engine.Evaluator = (*Evaluator)(nil)

// Evaluator binds a script engine to a compiled executable unit, resolving
// variable bindings from the unit's data provider on every Eval call.
type Evaluator struct {
	engine   engine.ScriptEngine
	execUnit *script.ExecutableUnit
}

// NewEvaluator creates an evaluator over a compiled unit.
func NewEvaluator(eng engine.ScriptEngine, execUnit *script.ExecutableUnit) *Evaluator {
	return &Evaluator{
		engine:   eng,
		execUnit: execUnit,
	}
}

// Eval implements the engine.Evaluator interface.
func (e *Evaluator) Eval(ctx context.Context) (engine.EvaluatorResponse, error) {
	if e.execUnit == nil {
		return nil, fmt.Errorf("executable unit is nil")
	}

	bindings, err := e.execUnit.GetBindings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bindings: %w", err)
	}

	startTime := time.Now()
	raw, err := e.engine.Execute(ctx, e.execUnit.GetContent(), bindings)
	execTime := time.Since(startTime)
	if err != nil {
		return nil, err
	}

	return engine.NewResult(raw, execTime, e.execUnit.GetID()), nil
}

// GetExecutableUnit returns the stored ExecutableUnit.
func (e *Evaluator) GetExecutableUnit() *script.ExecutableUnit {
	return e.execUnit
}

// GetEngine returns the script engine backing this evaluator.
func (e *Evaluator) GetEngine() engine.ScriptEngine {
	return e.engine
}

// WithExecutableUnit returns a new evaluator with the specified
// ExecutableUnit. This is useful for creating evaluator variants with
// different data providers.
func (e *Evaluator) WithExecutableUnit(execUnit *script.ExecutableUnit) *Evaluator {
	return &Evaluator{
		engine:   e.engine,
		execUnit: execUnit,
	}
}

// NewExprEvaluator creates a new evaluator for expr scoring expressions.
func NewExprEvaluator(opts ...options.Option) (*Evaluator, error) {
	return newEvaluator(types.Expr, opts...)
}

// NewCELEvaluator creates a new evaluator for CEL expressions.
func NewCELEvaluator(opts ...options.Option) (*Evaluator, error) {
	return newEvaluator(types.CEL, opts...)
}

// NewRisorEvaluator creates a new evaluator for Risor scripts.
func NewRisorEvaluator(opts ...options.Option) (*Evaluator, error) {
	return newEvaluator(types.Risor, opts...)
}

// NewStarlarkEvaluator creates a new evaluator for Starlark scripts.
func NewStarlarkEvaluator(opts ...options.Option) (*Evaluator, error) {
	return newEvaluator(types.Starlark, opts...)
}

func newEvaluator(machineType types.Type, opts ...options.Option) (*Evaluator, error) {
	cfg := options.DefaultConfig(machineType)

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	// Apply defaults as the final step to fill in any missing values
	if err := options.WithDefaults()(cfg); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return createEvaluator(cfg)
}

func createEvaluator(cfg *options.Config) (*Evaluator, error) {
	eng, err := machines.NewEngine(cfg.GetMachineType(), cfg.GetHandler())
	if err != nil {
		return nil, err
	}

	// Derive the executable unit ID from the source URL
	execUnitID := ""
	if sourceURL := cfg.GetLoader().GetSourceURL(); sourceURL != nil {
		execUnitID = sourceURL.String()
	}

	// The engine doubles as the unit's compiler; compilation happens here
	execUnit, err := script.NewExecutableUnit(
		cfg.GetHandler(),
		execUnitID,
		cfg.GetLoader(),
		eng,
		cfg.GetDataProvider(),
		cfg.GetStaticData(),
	)
	if err != nil {
		return nil, err
	}

	return NewEvaluator(eng, execUnit), nil
}

// FromExprString creates an expr evaluator from an expression string.
func FromExprString(content string, opts ...options.Option) (*Evaluator, error) {
	return fromString(types.Expr, content, opts...)
}

// FromCELString creates a CEL evaluator from an expression string.
func FromCELString(content string, opts ...options.Option) (*Evaluator, error) {
	return fromString(types.CEL, content, opts...)
}

// FromRisorString creates a Risor evaluator from a script string.
func FromRisorString(content string, opts ...options.Option) (*Evaluator, error) {
	return fromString(types.Risor, content, opts...)
}

// FromStarlarkString creates a Starlark evaluator from a script string.
func FromStarlarkString(content string, opts ...options.Option) (*Evaluator, error) {
	return fromString(types.Starlark, content, opts...)
}

func fromString(machineType types.Type, content string, opts ...options.Option) (*Evaluator, error) {
	l, err := loader.NewFromString(content)
	if err != nil {
		return nil, err
	}

	allOpts := append([]options.Option{options.WithLoader(l)}, opts...)
	return newEvaluator(machineType, allOpts...)
}

// FromExprFile creates an expr evaluator from an expression file on disk.
func FromExprFile(filePath string, opts ...options.Option) (*Evaluator, error) {
	l, err := loader.NewFromDisk(filePath)
	if err != nil {
		return nil, err
	}

	allOpts := append([]options.Option{options.WithLoader(l)}, opts...)
	return newEvaluator(types.Expr, allOpts...)
}

// NewRegistry returns a registry with every supported script machine
// registered, for hosts that dispatch scripts by language name or extension.
func NewRegistry(handler slog.Handler) (*engine.Registry, error) {
	return machines.NewRegistry(handler)
}
