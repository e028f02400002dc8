package graphql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// Schema is a named, parsed GraphQL schema with convenient accessors for
// types, queries, mutations, and subscriptions.
type Schema struct {
	name          string
	ast           *ast.Schema
	source        string
	types         map[string]*ast.Definition
	queries       map[string]*ast.FieldDefinition
	mutations     map[string]*ast.FieldDefinition
	subscriptions map[string]*ast.FieldDefinition
}

// ParseSchema parses a complete GraphQL SDL document into a named Schema.
func ParseSchema(name, sdl string) (*Schema, error) {
	source := &ast.Source{
		Name:  name,
		Input: sdl,
	}

	schema, err := gqlparser.LoadSchema(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %q: %w", name, err)
	}

	return newSchema(name, schema, sdl), nil
}

// BuildSchema assembles a schema from type definitions and root-operation
// fields, then parses the result. Field order is preserved in the emitted
// SDL. A schema without at least one query field is rejected (the GraphQL
// spec requires a Query type).
func BuildSchema(name string, types []*TypeDef, query, mutation, subscription []*FieldDef) (*Schema, error) {
	if len(query) == 0 {
		return nil, fmt.Errorf("schema %q must define at least one query field", name)
	}

	sdl := AssembleSDL(types, query, mutation, subscription)
	return ParseSchema(name, sdl)
}

// AssembleSDL renders the SDL document BuildSchema parses: the root
// operation types followed by every named type definition, in order.
func AssembleSDL(types []*TypeDef, query, mutation, subscription []*FieldDef) string {
	var b strings.Builder

	writeRootType(&b, "Query", query)
	writeRootType(&b, "Mutation", mutation)
	writeRootType(&b, "Subscription", subscription)

	for _, t := range types {
		b.WriteString(strings.TrimSpace(t.SDL))
		b.WriteString("\n\n")
	}

	return b.String()
}

// writeRootType emits one root operation type; skipped when it has no fields.
func writeRootType(b *strings.Builder, rootName string, fields []*FieldDef) {
	if len(fields) == 0 {
		return
	}

	b.WriteString("type ")
	b.WriteString(rootName)
	b.WriteString(" {\n")
	for _, f := range fields {
		if f.Description != "" {
			fmt.Fprintf(b, "  %q\n", f.Description)
		}
		b.WriteString("  ")
		b.WriteString(strings.TrimSpace(f.SDL))
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

// newSchema creates a Schema from a parsed ast.Schema and indexes its
// contents.
func newSchema(name string, schema *ast.Schema, source string) *Schema {
	s := &Schema{
		name:          name,
		ast:           schema,
		source:        source,
		types:         make(map[string]*ast.Definition),
		queries:       make(map[string]*ast.FieldDefinition),
		mutations:     make(map[string]*ast.FieldDefinition),
		subscriptions: make(map[string]*ast.FieldDefinition),
	}

	for typeName, def := range schema.Types {
		s.types[typeName] = def
	}

	// Introspection meta-fields are not part of the registered surface.
	if schema.Query != nil {
		for _, field := range schema.Query.Fields {
			if !isIntrospectionField(field.Name) {
				s.queries[field.Name] = field
			}
		}
	}

	if schema.Mutation != nil {
		for _, field := range schema.Mutation.Fields {
			s.mutations[field.Name] = field
		}
	}

	if schema.Subscription != nil {
		for _, field := range schema.Subscription.Fields {
			s.subscriptions[field.Name] = field
		}
	}

	return s
}

// isIntrospectionField returns true if the field name is a built-in introspection field.
func isIntrospectionField(name string) bool {
	return len(name) >= 2 && name[0] == '_' && name[1] == '_'
}

// Name returns the schema's registry name.
func (s *Schema) Name() string {
	return s.name
}

// AST returns the underlying gqlparser AST schema.
func (s *Schema) AST() *ast.Schema {
	return s.ast
}

// Source returns the SDL the schema was parsed from.
func (s *Schema) Source() string {
	return s.source
}

// GetType returns a type definition by name, or nil if not found.
func (s *Schema) GetType(name string) *ast.Definition {
	return s.types[name]
}

// GetQueryField returns a query field definition by name, or nil if not found.
func (s *Schema) GetQueryField(name string) *ast.FieldDefinition {
	return s.queries[name]
}

// GetMutationField returns a mutation field definition by name, or nil if not found.
func (s *Schema) GetMutationField(name string) *ast.FieldDefinition {
	return s.mutations[name]
}

// GetSubscriptionField returns a subscription field definition by name, or nil if not found.
func (s *Schema) GetSubscriptionField(name string) *ast.FieldDefinition {
	return s.subscriptions[name]
}

// ListQueries returns all query field names in sorted order.
func (s *Schema) ListQueries() []string {
	return sortedKeys(s.queries)
}

// ListMutations returns all mutation field names in sorted order.
func (s *Schema) ListMutations() []string {
	return sortedKeys(s.mutations)
}

// ListSubscriptions returns all subscription field names in sorted order.
func (s *Schema) ListSubscriptions() []string {
	return sortedKeys(s.subscriptions)
}

// ListTypes returns all type names in sorted order, optionally filtering by
// kind. If kinds is empty, all types are returned.
func (s *Schema) ListTypes(kinds ...ast.DefinitionKind) []string {
	kindSet := make(map[ast.DefinitionKind]bool)
	for _, k := range kinds {
		kindSet[k] = true
	}

	names := make([]string, 0)
	for name, def := range s.types {
		if len(kindSet) == 0 || kindSet[def.Kind] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// HasQuery returns true if the schema has a query type with fields.
func (s *Schema) HasQuery() bool {
	return s.ast.Query != nil && len(s.ast.Query.Fields) > 0
}

// HasMutation returns true if the schema has a mutation type with fields.
func (s *Schema) HasMutation() bool {
	return s.ast.Mutation != nil && len(s.ast.Mutation.Fields) > 0
}

// HasSubscription returns true if the schema has a subscription type with fields.
func (s *Schema) HasSubscription() bool {
	return s.ast.Subscription != nil && len(s.ast.Subscription.Fields) > 0
}

// GetField returns a field definition by type and field name.
func (s *Schema) GetField(typeName, fieldName string) *ast.FieldDefinition {
	def := s.GetType(typeName)
	if def == nil {
		return nil
	}

	for _, field := range def.Fields {
		if field.Name == fieldName {
			return field
		}
	}
	return nil
}

func sortedKeys(m map[string]*ast.FieldDefinition) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
