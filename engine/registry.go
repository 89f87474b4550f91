package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/scriptforge/searchscript/execution/script"
)

// Registry dispatches scripts to engines by type name or file extension. It
// is the host's view of the installed script languages and is safe for
// concurrent use.
type Registry struct {
	mu           sync.RWMutex
	byName       map[string]ScriptEngine
	byExtension  map[string]ScriptEngine
	orderedNames []string
}

// NewRegistry creates an empty engine registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:      make(map[string]ScriptEngine),
		byExtension: make(map[string]ScriptEngine),
	}
}

// Register adds an engine under its name and extensions. Registering a second
// engine with the same name is an error.
func (r *Registry) Register(eng ScriptEngine) error {
	if eng == nil {
		return errors.New("engine is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := eng.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("script engine %q already registered", name)
	}

	r.byName[name] = eng
	r.orderedNames = append(r.orderedNames, name)
	for _, ext := range eng.Extensions() {
		r.byExtension[ext] = eng
	}
	return nil
}

// Engine returns the engine registered under the given type name.
func (r *Registry) Engine(name string) (ScriptEngine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	eng, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: name %q", ErrEngineNotFound, name)
	}
	return eng, nil
}

// ForExtension returns the engine handling the given file extension.
func (r *Registry) ForExtension(ext string) (ScriptEngine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	eng, ok := r.byExtension[ext]
	if !ok {
		return nil, fmt.Errorf("%w: extension %q", ErrEngineNotFound, ext)
	}
	return eng, nil
}

// Names returns the registered engine names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.orderedNames))
	copy(names, r.orderedNames)
	return names
}

// ScriptRemoved fans the host's cache-eviction notification out to every engine.
func (r *Registry) ScriptRemoved(content script.ExecutableContent) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.orderedNames {
		r.byName[name].ScriptRemoved(content)
	}
}

// Close shuts down every registered engine, joining any errors.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errz []error
	for _, name := range r.orderedNames {
		if err := r.byName[name].Close(); err != nil {
			errz = append(errz, fmt.Errorf("closing engine %q: %w", name, err))
		}
	}
	return errors.Join(errz...)
}
