package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/scriptforge/searchscript/execution/data"
)

// Evaluator is the interface for the generic "compile once, run many times"
// evaluator returned by the top-level constructors.
type Evaluator interface {
	// Eval executes the compiled script with bindings resolved from the
	// evaluator's data provider and returns the result.
	Eval(ctx context.Context) (EvaluatorResponse, error)
}

// EvaluatorResponse wraps a raw script result with execution metadata.
type EvaluatorResponse interface {
	// Type of the result value.
	Type() data.Types

	// Inspect returns a string representation of the result.
	Inspect() string

	// Interface converts the result to a native Go value.
	Interface() any

	// GetScriptExeID returns the ID of the script that produced the result.
	GetScriptExeID() string

	// GetExecTime returns the time it took to execute the script.
	GetExecTime() string
}

// Result is the standard EvaluatorResponse implementation for engines whose
// raw results are native Go values.
type Result struct {
	value       any
	execTime    time.Duration
	scriptExeID string
}

// NewResult wraps a raw script result with execution metadata.
func NewResult(value any, execTime time.Duration, scriptExeID string) *Result {
	return &Result{
		value:       value,
		execTime:    execTime,
		scriptExeID: scriptExeID,
	}
}

func (r *Result) String() string {
	return fmt.Sprintf(
		"Result{Type: %s, Value: %v, ExecTime: %s, ScriptExeID: %s}",
		r.Type(), r.value, r.GetExecTime(), r.GetScriptExeID())
}

func (r *Result) Type() data.Types {
	return data.TypeOf(r.value)
}

func (r *Result) Inspect() string {
	return fmt.Sprintf("%v", r.value)
}

func (r *Result) Interface() any {
	return r.value
}

func (r *Result) GetScriptExeID() string {
	return r.scriptExeID
}

func (r *Result) GetExecTime() string {
	return r.execTime.String()
}
