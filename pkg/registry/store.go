package registry

import (
	"fmt"
	"reflect"
	"sync"
)

// entry pairs a registered definition with its memoized instance.
type entry[T Def] struct {
	def      Definition[T]
	resolved T
	done     bool
}

// Store holds named definitions of one kind ("type", "query", "mutation",
// "subscription"). Registration under an existing name silently overwrites
// and drops any cached instance; factory-backed definitions are resolved at
// most once per registration.
type Store[T Def] struct {
	kind string

	mu      sync.RWMutex
	entries map[string]*entry[T]
	order   []string
}

// NewStore creates an empty store. kind appears in error messages.
func NewStore[T Def](kind string) *Store[T] {
	return &Store[T]{
		kind:    kind,
		entries: make(map[string]*entry[T]),
	}
}

// Register adds a definition under name, overwriting any previous
// registration. The name must be non-empty and the definition non-zero.
func (s *Store[T]) Register(name string, def Definition[T]) error {
	if name == "" {
		return fmt.Errorf("%w: empty %s name", ErrDefinition, s.kind)
	}
	if def.IsZero() {
		return fmt.Errorf("%w: %s %q has neither a value nor a factory", ErrDefinition, s.kind, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(name, def)
	return nil
}

// RegisterMany registers each definition in argument order under its own
// declared name (the explicit factory name, or the concrete value's name).
// A definition whose name cannot be derived fails with ErrDefinition;
// definitions before it stay registered.
func (s *Store[T]) RegisterMany(defs ...Definition[T]) error {
	for i, def := range defs {
		name := def.declaredName()
		if name == "" {
			return fmt.Errorf("%w: %s definition %d has no derivable name", ErrDefinition, s.kind, i)
		}
		if err := s.Register(name, def); err != nil {
			return err
		}
	}
	return nil
}

// put records a definition under the writer lock, keeping first-seen
// registration order for Names.
func (s *Store[T]) put(name string, def Definition[T]) {
	if _, exists := s.entries[name]; !exists {
		s.order = append(s.order, name)
	}
	// A fresh entry forgets any instance resolved from the old definition.
	s.entries[name] = &entry[T]{def: def}
}

// Resolve returns the instance registered under name, invoking and caching
// a factory-backed definition on first access. Unregistered names fail with
// ErrUnknownName; a failing factory fails with ErrResolution and is retried
// on the next call.
func (s *Store[T]) Resolve(name string) (T, error) {
	var zero T

	s.mu.RLock()
	e, ok := s.entries[name]
	if ok && e.done {
		v := e.resolved
		s.mu.RUnlock()
		return v, nil
	}
	s.mu.RUnlock()

	if !ok {
		return zero, fmt.Errorf("%w: %s %q", ErrUnknownName, s.kind, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the writer lock: the entry may have been resolved or
	// overwritten since the read above.
	e, ok = s.entries[name]
	if !ok {
		return zero, fmt.Errorf("%w: %s %q", ErrUnknownName, s.kind, name)
	}
	if e.done {
		return e.resolved, nil
	}

	v, err := e.resolve()
	if err != nil {
		return zero, fmt.Errorf("%w: %s %q: %w", ErrResolution, s.kind, name, err)
	}
	e.resolved = v
	e.done = true
	return v, nil
}

// resolve produces the entry's instance from its definition.
func (e *entry[T]) resolve() (T, error) {
	var zero T
	if e.def.hasConcrete {
		return e.def.concrete, nil
	}
	v, err := e.def.factory()
	if err != nil {
		return zero, err
	}
	if isNilDef(v) {
		return zero, fmt.Errorf("factory returned nil")
	}
	return v, nil
}

// isNilDef reports whether a resolved instance is a nil pointer behind the
// Def interface.
func isNilDef(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// Has reports whether a name is registered.
func (s *Store[T]) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[name]
	return ok
}

// Names returns all registered names in registration order.
func (s *Store[T]) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Len returns the number of registered definitions.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
