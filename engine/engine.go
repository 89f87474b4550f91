// Package engine defines the contract between a search host and a script
// machine: compile a script source into an opaque handle, bind variables, and
// execute per document or standalone.
package engine

import (
	"context"
	"io"

	"github.com/scriptforge/searchscript/execution/lookup"
	"github.com/scriptforge/searchscript/execution/script"
)

// ScriptEngine is the host-facing plugin contract implemented by each script
// machine. A compiled handle returned by Compile is stateless and may be
// executed concurrently by multiple evaluation contexts; each executor created
// from it owns a private binding set.
type ScriptEngine interface {
	// Name returns the type name used for script-language dispatch.
	Name() string

	// Extensions returns the file extensions handled by this engine.
	Extensions() []string

	// Compile parses the script source and returns the compiled handle. Parse
	// errors from the underlying expression library propagate unmodified.
	Compile(scriptReader io.ReadCloser) (script.ExecutableContent, error)

	// Executable builds a standalone executor over the compiled handle with
	// the given variable bindings. A nil vars map is treated as empty.
	Executable(content script.ExecutableContent, vars map[string]any) (ExecutableScript, error)

	// Search builds a per-segment executor factory bound to the given
	// document lookup source.
	Search(content script.ExecutableContent, lk lookup.SearchLookup, vars map[string]any) (SearchScript, error)

	// Execute runs the compiled handle once with the given bindings and
	// returns the raw result, without the executor lifecycle.
	Execute(ctx context.Context, content script.ExecutableContent, vars map[string]any) (any, error)

	// Unwrap translates a machine value to a host value. Engines whose raw
	// results are already native Go values return the value unchanged.
	Unwrap(value any) any

	// Close releases any engine-held resources.
	Close() error

	// ScriptRemoved notifies the engine that the host evicted a compiled
	// script from its cache. Engines without per-script state ignore it.
	ScriptRemoved(content script.ExecutableContent)
}

// ExecutableScript is a standalone executor: a compiled script plus a private
// binding set, executed outside any document scan.
type ExecutableScript interface {
	// SetNextVar binds a variable for subsequent runs.
	SetNextVar(name string, value any)

	// Run executes the script against the current bindings and returns the
	// raw result.
	Run(ctx context.Context) (any, error)
}

// SearchScript produces a fresh per-document executor for each segment of a
// scan. Every call returns a new DocScript instance with no mutable state
// shared across instances; the segment's leaf lookup is resolved from the
// lookup source the factory was built with.
type SearchScript interface {
	ForSegment(segment int) (DocScript, error)
}

// DocScript is an executor bound to a moving document cursor, re-evaluated
// once per document during a scan.
type DocScript interface {
	// SetDocument advances to a new document, re-binding the field lookups
	// without recompiling.
	SetDocument(docID int)

	// SetScorer attaches the relevance-score accessor. When set, the score is
	// bound under the _score variable before each run.
	SetScorer(scorer lookup.Scorer)

	// SetNextVar binds a variable for subsequent runs.
	SetNextVar(name string, value any)

	// SetSource injects a replacement source document.
	SetSource(source map[string]any)

	// Run executes the script for the current document and returns the raw result.
	Run(ctx context.Context) (any, error)

	// RunAsFloat runs the script and coerces the result to float32.
	RunAsFloat(ctx context.Context) (float32, error)

	// RunAsLong runs the script and coerces the result to int64.
	RunAsLong(ctx context.Context) (int64, error)

	// RunAsDouble runs the script and coerces the result to float64.
	RunAsDouble(ctx context.Context) (float64, error)
}
