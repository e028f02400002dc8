package graphql

// TypeDef is a named GraphQL type definition given as SDL. The SDL must
// declare exactly the named type (object, interface, union, enum, input,
// or scalar); it is spliced verbatim into every schema built from the
// registry that holds it.
type TypeDef struct {
	// Name is the GraphQL type name, e.g. "User".
	Name string `json:"name" yaml:"name"`
	// SDL is the full type definition, e.g. "type User { id: ID! }".
	SDL string `json:"sdl" yaml:"sdl"`
}

// DefinitionName returns the declared type name.
func (d *TypeDef) DefinitionName() string {
	if d == nil {
		return ""
	}
	return d.Name
}

// FieldDef is a single root-operation field (a query, mutation, or
// subscription entry point). The SDL is the field line as it would appear
// inside the root type, e.g. "user(id: ID!): User".
type FieldDef struct {
	// Name is the field name, e.g. "user".
	Name string `json:"name" yaml:"name"`
	// SDL is the field definition line, e.g. "user(id: ID!): User".
	SDL string `json:"sdl" yaml:"sdl"`
	// Description is an optional docstring emitted above the field.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// DefinitionName returns the declared field name.
func (d *FieldDef) DefinitionName() string {
	if d == nil {
		return ""
	}
	return d.Name
}
