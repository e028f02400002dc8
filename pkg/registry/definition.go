package registry

// Def is implemented by definition payloads that can declare their own
// name (graphql.TypeDef and graphql.FieldDef).
type Def interface {
	DefinitionName() string
}

// Definition is a tagged variant holding either a concrete instance or a
// factory invoked on first resolution. The zero Definition is empty; inside
// a SchemaSpec it refers to an already-registered field of the same name.
type Definition[T Def] struct {
	concrete    T
	hasConcrete bool
	factory     func() (T, error)
	name        string
}

// Concrete wraps an already-constructed definition.
func Concrete[T Def](v T) Definition[T] {
	return Definition[T]{concrete: v, hasConcrete: true}
}

// Factory wraps a constructor invoked on first resolution. The declared
// name lets RegisterMany derive the registration name without invoking the
// factory; it may be empty when the definition is registered under an
// explicit name.
func Factory[T Def](name string, fn func() (T, error)) Definition[T] {
	return Definition[T]{factory: fn, name: name}
}

// IsZero reports whether the definition carries neither a concrete value
// nor a factory.
func (d Definition[T]) IsZero() bool {
	return !d.hasConcrete && d.factory == nil
}

// declaredName returns the name the definition can derive for itself:
// the explicit factory name, else the concrete value's own declared name.
func (d Definition[T]) declaredName() string {
	if d.name != "" {
		return d.name
	}
	if d.hasConcrete {
		return d.concrete.DefinitionName()
	}
	return ""
}
