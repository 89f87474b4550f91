// Package lookup defines how scoring scripts access the fields of the
// document currently under evaluation. The host owns the document store and
// provides an implementation; scripts see the lookup as ordinary variables in
// their binding set.
package lookup

// SearchLookup produces per-segment leaf lookups. The host calls Leaf once
// for each segment it scans; each returned LeafLookup is owned by a single
// evaluation context and is not shared.
type SearchLookup interface {
	// Leaf returns a lookup bound to the given segment.
	Leaf(segment int) (LeafLookup, error)
}

// LeafLookup is a document cursor within one segment. SetDocument advances
// the cursor; AsMap exposes the field-access variables for the current
// document. The maps returned by AsMap are only valid until the next
// SetDocument call.
type LeafLookup interface {
	// SetDocument advances the cursor to the document with the given id.
	SetDocument(docID int)

	// AsMap returns the variable bindings exposing the current document's
	// fields, keyed by the well-known variable names (doc, _source).
	AsMap() map[string]any

	// SetSource replaces the source document visible under the _source
	// variable for the current document.
	SetSource(source map[string]any)
}

// Scorer provides the relevance score of the current document. The host
// attaches one to a DocScript when a scoring context is active.
type Scorer interface {
	// Score returns the relevance score for the current document. An error
	// here is treated as fatal by the executor.
	Score() (float64, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func() (float64, error)

func (f ScorerFunc) Score() (float64, error) {
	return f()
}
