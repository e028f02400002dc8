package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphreg/graphreg/pkg/graphql"
)

const nestedSchema = `
type Query {
	user(id: ID!): User
	users: [User!]!
}

type User {
	id: ID!
	name: String!
	posts: [Post!]!
}

type Post {
	id: ID!
	title: String!
	author: User!
}
`

func testSchema(t *testing.T) *graphql.Schema {
	t.Helper()
	schema, err := graphql.ParseSchema("test", nestedSchema)
	require.NoError(t, err)
	return schema
}

func TestMaxDepthBoundary(t *testing.T) {
	schema := testSchema(t)
	rules := NewRules()
	rules.SetMaxDepth(3)

	// depth 3: user -> posts -> title
	_, errs := rules.ValidateQuery(schema, `{ user(id: "1") { posts { title } } }`)
	assert.Empty(t, errs)

	// depth 4: user -> posts -> author -> id
	_, errs = rules.ValidateQuery(schema, `{ user(id: "1") { posts { author { id } } } }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "maximum query depth 3")
}

func TestMaxDepthCountsFragments(t *testing.T) {
	schema := testSchema(t)
	rules := NewRules()
	rules.SetMaxDepth(3)

	query := `
query Deep {
	user(id: "1") {
		posts {
			...postFields
		}
	}
}
fragment postFields on Post {
	author { id }
}
`
	_, errs := rules.ValidateQuery(schema, query)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "maximum query depth")
}

func TestMaxDepthUnsetAllowsAnything(t *testing.T) {
	schema := testSchema(t)
	rules := NewRules()

	_, errs := rules.ValidateQuery(schema, `{ user(id: "1") { posts { author { posts { author { id } } } } } }`)
	assert.Empty(t, errs)
}

func TestMaxComplexity(t *testing.T) {
	schema := testSchema(t)
	rules := NewRules()
	rules.SetMaxComplexity(3)

	// cost 3: user + id + name
	_, errs := rules.ValidateQuery(schema, `{ user(id: "1") { id name } }`)
	assert.Empty(t, errs)

	// cost 5: user + id + name + posts + title
	_, errs = rules.ValidateQuery(schema, `{ user(id: "1") { id name posts { title } } }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "maximum query complexity 3")
}

func TestIntrospectionPolicy(t *testing.T) {
	schema := testSchema(t)
	query := `{ __schema { queryType { name } } }`

	// Enabled by default: structural validation passes.
	rules := NewRules()
	_, errs := rules.ValidateQuery(schema, query)
	assert.Empty(t, errs)

	rules.SetIntrospectionDisabled(true)
	_, errs = rules.ValidateQuery(schema, query)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "introspection is disabled")

	// __type is covered too.
	_, errs = rules.ValidateQuery(schema, `{ __type(name: "User") { name } }`)
	require.Len(t, errs, 1)

	// __typename stays allowed.
	_, errs = rules.ValidateQuery(schema, `{ users { __typename id } }`)
	assert.Empty(t, errs)
}

func TestValidateQueryParseErrors(t *testing.T) {
	schema := testSchema(t)
	rules := NewRules()

	_, errs := rules.ValidateQuery(schema, `{ nonexistentField }`)
	assert.NotEmpty(t, errs)

	_, errs = rules.ValidateQuery(schema, `{ user(id: `)
	assert.NotEmpty(t, errs)
}

func TestSettersIdempotentAndClamped(t *testing.T) {
	rules := NewRules()

	rules.SetMaxDepth(5)
	rules.SetMaxDepth(5)
	assert.Equal(t, 5, rules.MaxDepth())

	rules.SetMaxDepth(-1)
	assert.Equal(t, 0, rules.MaxDepth())

	rules.SetMaxComplexity(10)
	rules.SetMaxComplexity(10)
	assert.Equal(t, 10, rules.MaxComplexity())

	rules.SetIntrospectionDisabled(true)
	rules.SetIntrospectionDisabled(true)
	assert.True(t, rules.IntrospectionDisabled())
	rules.SetIntrospectionDisabled(false)
	assert.False(t, rules.IntrospectionDisabled())
}

func TestRulesOrderIndependent(t *testing.T) {
	schema := testSchema(t)
	query := `{ user(id: "1") { posts { author { id } } } }`

	a := NewRules()
	a.SetMaxDepth(3)
	a.SetMaxComplexity(100)

	b := NewRules()
	b.SetMaxComplexity(100)
	b.SetMaxDepth(3)

	_, errsA := a.ValidateQuery(schema, query)
	_, errsB := b.ValidateQuery(schema, query)
	assert.Equal(t, len(errsA), len(errsB))
}
