// Package graphql provides the schema objects the registry hands to an
// execution engine.
//
// A Schema is a named, parsed GraphQL schema with indexed access to its
// types, queries, mutations, and subscriptions. Schemas come from two
// places: ParseSchema loads a complete SDL document directly, and
// BuildSchema assembles one from registered type and root-field
// definitions (the lazy path used by registry.SchemaRegistry).
//
// Basic usage:
//
//	schema, err := graphql.BuildSchema("default",
//	    []*graphql.TypeDef{{Name: "User", SDL: `type User { id: ID! name: String! }`}},
//	    []*graphql.FieldDef{{Name: "user", SDL: `user(id: ID!): User`}},
//	    nil, nil,
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	schema.ListQueries() // ["user"]
//
// Parsing and validation are delegated to github.com/vektah/gqlparser/v2;
// this package never executes resolvers.
package graphql
