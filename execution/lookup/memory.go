package lookup

import (
	"fmt"

	"github.com/scriptforge/searchscript/execution/constants"
)

// MemoryLookup is a SearchLookup over an in-memory slice of documents. Hosts
// with a single flat document store (and tests) use it directly; segmented
// stores implement SearchLookup themselves.
type MemoryLookup struct {
	// segments holds one document slice per segment
	segments [][]map[string]any
}

// NewMemoryLookup creates a single-segment lookup over the given documents.
func NewMemoryLookup(docs []map[string]any) *MemoryLookup {
	return &MemoryLookup{
		segments: [][]map[string]any{docs},
	}
}

// NewSegmentedMemoryLookup creates a lookup with one entry per segment.
func NewSegmentedMemoryLookup(segments [][]map[string]any) *MemoryLookup {
	return &MemoryLookup{
		segments: segments,
	}
}

func (l *MemoryLookup) String() string {
	return fmt.Sprintf("lookup.MemoryLookup{Segments: %d}", len(l.segments))
}

// Leaf implements SearchLookup. Each call returns a fresh cursor so multiple
// evaluation contexts never share state.
func (l *MemoryLookup) Leaf(segment int) (LeafLookup, error) {
	if segment < 0 || segment >= len(l.segments) {
		return nil, fmt.Errorf("segment %d out of range [0, %d)", segment, len(l.segments))
	}
	return &MemoryLeaf{
		docs: l.segments[segment],
	}, nil
}

// MemoryLeaf is the document cursor produced by MemoryLookup. The zero value
// points before the first document; SetDocument must be called before AsMap
// returns useful field bindings.
type MemoryLeaf struct {
	docs   []map[string]any
	cur    int
	source map[string]any
}

// SetDocument implements LeafLookup. An out-of-range id leaves the cursor on
// an empty document rather than panicking; the host controls iteration bounds.
func (l *MemoryLeaf) SetDocument(docID int) {
	l.cur = docID
	l.source = nil
}

// AsMap implements LeafLookup, exposing the current document under the doc
// variable and the (possibly replaced) source document under _source.
func (l *MemoryLeaf) AsMap() map[string]any {
	doc := l.currentDoc()
	source := l.source
	if source == nil {
		source = doc
	}
	return map[string]any{
		constants.DocVar:    doc,
		constants.SourceVar: source,
	}
}

// SetSource implements LeafLookup. The replacement is dropped when the cursor
// advances to the next document.
func (l *MemoryLeaf) SetSource(source map[string]any) {
	l.source = source
}

func (l *MemoryLeaf) currentDoc() map[string]any {
	if l.cur < 0 || l.cur >= len(l.docs) {
		return map[string]any{}
	}
	return l.docs[l.cur]
}
