// Package machine provides the shared executor lifecycle used by the script
// machines: a standalone executor, a per-segment factory, and a per-document
// executor. Machines supply only their run function; binding-set ownership,
// score binding, and numeric coercion live here so every machine honors the
// same contract.
package machine

import (
	"context"
	"fmt"
	"maps"

	"github.com/scriptforge/searchscript/engine"
	"github.com/scriptforge/searchscript/execution/constants"
	"github.com/scriptforge/searchscript/execution/lookup"
)

var (
	_ engine.ExecutableScript = (*ExecutableScript)(nil)
	_ engine.SearchScript     = (*SearchScript)(nil)
	_ engine.DocScript        = (*DocScript)(nil)
)

// RunFunc executes a machine's compiled program against the given bindings
// and returns the raw result as a native Go value.
type RunFunc func(ctx context.Context, bindings map[string]any) (any, error)

// ExecutableScript is a standalone executor: a run function plus a private
// binding set, executed outside any document scan.
type ExecutableScript struct {
	run      RunFunc
	bindings map[string]any
}

// NewExecutable creates a standalone executor. The bindings map becomes owned
// by the executor; callers pass a fresh map per executor.
func NewExecutable(run RunFunc, bindings map[string]any) *ExecutableScript {
	if bindings == nil {
		bindings = make(map[string]any)
	}
	return &ExecutableScript{
		run:      run,
		bindings: bindings,
	}
}

func (s *ExecutableScript) SetNextVar(name string, value any) {
	s.bindings[name] = value
}

func (s *ExecutableScript) Run(ctx context.Context) (any, error) {
	return s.run(ctx, s.bindings)
}

// SearchScript is the explicit per-segment factory. Each ForSegment call
// builds a new DocScript with its own binding map; no mutable state is shared
// across instances.
type SearchScript struct {
	run         RunFunc
	lookup      lookup.SearchLookup
	newBindings func() map[string]any
}

// NewSearch creates a per-segment factory. newBindings must return a fresh
// base binding map on every call (machine builtins plus bound variables).
func NewSearch(
	run RunFunc,
	lk lookup.SearchLookup,
	newBindings func() map[string]any,
) (*SearchScript, error) {
	if lk == nil {
		return nil, fmt.Errorf("search lookup is nil")
	}
	if newBindings == nil {
		newBindings = func() map[string]any { return make(map[string]any) }
	}
	return &SearchScript{
		run:         run,
		lookup:      lk,
		newBindings: newBindings,
	}, nil
}

func (s *SearchScript) ForSegment(segment int) (engine.DocScript, error) {
	leaf, err := s.lookup.Leaf(segment)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaf lookup for segment %d: %w", segment, err)
	}

	bindings := s.newBindings()
	// Bind the field lookups for the initial cursor position
	maps.Copy(bindings, leaf.AsMap())

	return &DocScript{
		run:      s.run,
		leaf:     leaf,
		bindings: bindings,
	}, nil
}

// DocScript executes a compiled program once per document during a scan.
type DocScript struct {
	run      RunFunc
	leaf     lookup.LeafLookup
	bindings map[string]any
	scorer   lookup.Scorer
}

// SetDocument advances the cursor and re-binds the field lookups without
// recompiling.
func (s *DocScript) SetDocument(docID int) {
	s.leaf.SetDocument(docID)
	maps.Copy(s.bindings, s.leaf.AsMap())
}

func (s *DocScript) SetScorer(scorer lookup.Scorer) {
	s.scorer = scorer
}

func (s *DocScript) SetNextVar(name string, value any) {
	s.bindings[name] = value
}

// SetSource injects a replacement source document and refreshes the _source
// binding.
func (s *DocScript) SetSource(source map[string]any) {
	s.leaf.SetSource(source)
	maps.Copy(s.bindings, s.leaf.AsMap())
}

// Run binds the relevance score when a scorer is attached, then evaluates.
// A score-access failure is fatal and aborts the run.
func (s *DocScript) Run(ctx context.Context) (any, error) {
	if s.scorer != nil {
		score, err := s.scorer.Score()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", engine.ErrScoreUnavailable, err)
		}
		s.bindings[constants.ScoreVar] = score
	}
	return s.run(ctx, s.bindings)
}

func (s *DocScript) RunAsFloat(ctx context.Context) (float32, error) {
	v, err := s.Run(ctx)
	if err != nil {
		return 0, err
	}
	return engine.ToFloat(v)
}

func (s *DocScript) RunAsLong(ctx context.Context) (int64, error) {
	v, err := s.Run(ctx)
	if err != nil {
		return 0, err
	}
	return engine.ToLong(v)
}

func (s *DocScript) RunAsDouble(ctx context.Context) (float64, error) {
	v, err := s.Run(ctx)
	if err != nil {
		return 0, err
	}
	return engine.ToDouble(v)
}
