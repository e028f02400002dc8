// Package registry implements the multi-schema GraphQL registry.
//
// Named type and root-field definitions are registered either as concrete
// values or as factories resolved lazily on first access. Schemas compose
// registered definitions and are built on first resolution, then cached
// until the name is re-registered. A configurable default schema name lets
// callers resolve without naming a schema.
//
// All registry state lives in an explicit Registry value created with New;
// there are no package-level globals. Registration and resolution are safe
// for concurrent use.
//
//	reg := registry.New()
//	reg.Types.Register("User", registry.Concrete(&graphql.TypeDef{
//	    Name: "User",
//	    SDL:  `type User { id: ID! name: String! }`,
//	}))
//	reg.Schemas.RegisterSchema("default", registry.SchemaSpec{
//	    Query: map[string]registry.Definition[*graphql.FieldDef]{
//	        "user": registry.Concrete(&graphql.FieldDef{Name: "user", SDL: `user(id: ID!): User`}),
//	    },
//	})
//	schema, err := reg.Schemas.Resolve("") // resolves the default schema
//
// Routing collaborators can subscribe to schema registrations through
// SchemaRegistry.OnSchemaAdded, or use NamePattern to keep a URL-parameter
// constraint in sync with the registered schema names.
package registry
