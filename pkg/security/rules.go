package security

import (
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/graphreg/graphreg/pkg/graphql"
)

// Rules holds the validation-time query safety limits. The zero value has
// no limits and introspection enabled.
type Rules struct {
	maxComplexity         int
	maxDepth              int
	introspectionDisabled bool
}

// NewRules returns rules with no limits set.
func NewRules() *Rules {
	return &Rules{}
}

// SetMaxComplexity limits the estimated cost of requested fields. Values
// <= 0 remove the limit. Re-applying the same value is a no-op.
func (r *Rules) SetMaxComplexity(limit int) {
	if limit < 0 {
		limit = 0
	}
	r.maxComplexity = limit
}

// MaxComplexity returns the configured limit, 0 when unset.
func (r *Rules) MaxComplexity() int {
	return r.maxComplexity
}

// SetMaxDepth limits nested-selection depth. Values <= 0 remove the limit.
func (r *Rules) SetMaxDepth(limit int) {
	if limit < 0 {
		limit = 0
	}
	r.maxDepth = limit
}

// MaxDepth returns the configured limit, 0 when unset.
func (r *Rules) MaxDepth() int {
	return r.maxDepth
}

// SetIntrospectionDisabled toggles whether introspection queries
// (__schema, __type) are permitted. __typename is always allowed.
func (r *Rules) SetIntrospectionDisabled(disabled bool) {
	r.introspectionDisabled = disabled
}

// IntrospectionDisabled reports the current policy.
func (r *Rules) IntrospectionDisabled() bool {
	return r.introspectionDisabled
}

// ValidateQuery parses and validates query against the schema, then applies
// the configured rules. On success the parsed document is returned for the
// execution engine.
func (r *Rules) ValidateQuery(schema *graphql.Schema, query string) (*ast.QueryDocument, gqlerror.List) {
	doc, errs := gqlparser.LoadQuery(schema.AST(), query)
	if len(errs) > 0 {
		return nil, errs
	}
	if errs := r.Validate(schema, doc); len(errs) > 0 {
		return nil, errs
	}
	return doc, nil
}

// Validate applies the configured rules to an already-parsed document and
// returns any violations as GraphQL validation errors.
func (r *Rules) Validate(schema *graphql.Schema, doc *ast.QueryDocument) gqlerror.List {
	var errs gqlerror.List

	for _, op := range doc.Operations {
		opName := op.Name
		if opName == "" {
			opName = "(anonymous)"
		}

		if r.maxDepth > 0 {
			if depth := selectionDepth(doc, op.SelectionSet, map[string]bool{}); depth > r.maxDepth {
				errs = append(errs, gqlerror.Errorf(
					"operation %s exceeds maximum query depth %d (depth %d)", opName, r.maxDepth, depth))
			}
		}

		if r.maxComplexity > 0 {
			if cost := selectionComplexity(doc, op.SelectionSet, map[string]bool{}); cost > r.maxComplexity {
				errs = append(errs, gqlerror.Errorf(
					"operation %s exceeds maximum query complexity %d (complexity %d)", opName, r.maxComplexity, cost))
			}
		}

		if r.introspectionDisabled {
			if field := findIntrospectionField(doc, op.SelectionSet, map[string]bool{}); field != "" {
				errs = append(errs, gqlerror.Errorf(
					"introspection is disabled: cannot query %q", field))
			}
		}
	}

	return errs
}

// selectionDepth returns the deepest field nesting in a selection set.
// Fragments contribute the depth of their contents at the spread point;
// visited guards against fragment cycles.
func selectionDepth(doc *ast.QueryDocument, selections ast.SelectionSet, visited map[string]bool) int {
	deepest := 0
	for _, sel := range selections {
		d := 0
		switch s := sel.(type) {
		case *ast.Field:
			d = 1 + selectionDepth(doc, s.SelectionSet, visited)
		case *ast.InlineFragment:
			d = selectionDepth(doc, s.SelectionSet, visited)
		case *ast.FragmentSpread:
			if visited[s.Name] {
				continue
			}
			visited[s.Name] = true
			if frag := doc.Fragments.ForName(s.Name); frag != nil {
				d = selectionDepth(doc, frag.SelectionSet, visited)
			}
			delete(visited, s.Name)
		}
		if d > deepest {
			deepest = d
		}
	}
	return deepest
}

// selectionComplexity estimates the cost of a selection set: every field
// costs 1 plus the cost of its children.
func selectionComplexity(doc *ast.QueryDocument, selections ast.SelectionSet, visited map[string]bool) int {
	total := 0
	for _, sel := range selections {
		switch s := sel.(type) {
		case *ast.Field:
			total += 1 + selectionComplexity(doc, s.SelectionSet, visited)
		case *ast.InlineFragment:
			total += selectionComplexity(doc, s.SelectionSet, visited)
		case *ast.FragmentSpread:
			if visited[s.Name] {
				continue
			}
			visited[s.Name] = true
			if frag := doc.Fragments.ForName(s.Name); frag != nil {
				total += selectionComplexity(doc, frag.SelectionSet, visited)
			}
			delete(visited, s.Name)
		}
	}
	return total
}

// findIntrospectionField returns the first introspection meta-field
// referenced anywhere in the selection set, or "". __typename is exempt.
func findIntrospectionField(doc *ast.QueryDocument, selections ast.SelectionSet, visited map[string]bool) string {
	for _, sel := range selections {
		switch s := sel.(type) {
		case *ast.Field:
			if isIntrospection(s.Name) {
				return s.Name
			}
			if found := findIntrospectionField(doc, s.SelectionSet, visited); found != "" {
				return found
			}
		case *ast.InlineFragment:
			if found := findIntrospectionField(doc, s.SelectionSet, visited); found != "" {
				return found
			}
		case *ast.FragmentSpread:
			if visited[s.Name] {
				continue
			}
			visited[s.Name] = true
			if frag := doc.Fragments.ForName(s.Name); frag != nil {
				if found := findIntrospectionField(doc, frag.SelectionSet, visited); found != "" {
					return found
				}
			}
		}
	}
	return ""
}

func isIntrospection(name string) bool {
	return len(name) >= 2 && name[0] == '_' && name[1] == '_' && name != "__typename"
}
