package config

import (
	"sort"

	"github.com/graphreg/graphreg/pkg/graphql"
	"github.com/graphreg/graphreg/pkg/registry"
	"github.com/graphreg/graphreg/pkg/security"
)

// Apply populates the registry and security rules from the configuration:
// types first, then schemas (one batch, one notification), then the default
// schema name, then the security limits. Entries are applied in sorted name
// order so repeated startups produce identical registry state.
func (c *Config) Apply(reg *registry.Registry, rules *security.Rules) error {
	for _, name := range sortedNames(c.Types) {
		src := c.Types[name]
		if err := reg.Types.Register(name, typeFactory(name, src, c.baseDir)); err != nil {
			return err
		}
	}

	if len(c.Schemas) > 0 {
		specs := make(map[string]registry.SchemaSpec, len(c.Schemas))
		for name, schema := range c.Schemas {
			specs[name] = registry.SchemaSpec{
				Query:        fieldDefs(schema.Query, c.baseDir),
				Mutation:     fieldDefs(schema.Mutation, c.baseDir),
				Subscription: fieldDefs(schema.Subscription, c.baseDir),
			}
		}
		if err := reg.Schemas.RegisterSchemas(specs); err != nil {
			return err
		}
	}

	if c.DefaultSchema != "" {
		reg.Schemas.SetDefaultSchema(c.DefaultSchema)
	}

	if rules != nil {
		rules.SetMaxComplexity(c.Security.MaxComplexity)
		rules.SetMaxDepth(c.Security.MaxDepth)
		rules.SetIntrospectionDisabled(c.Security.DisableIntrospection)
	}

	return nil
}

// typeFactory defers SDL loading (and file reads) to first schema build.
func typeFactory(name string, src SDLSource, baseDir string) registry.Definition[*graphql.TypeDef] {
	return registry.Factory(name, func() (*graphql.TypeDef, error) {
		sdl, err := src.resolve(baseDir)
		if err != nil {
			return nil, err
		}
		return &graphql.TypeDef{Name: name, SDL: sdl}, nil
	})
}

func fieldDefs(fields map[string]SDLSource, baseDir string) map[string]registry.Definition[*graphql.FieldDef] {
	if len(fields) == 0 {
		return nil
	}

	defs := make(map[string]registry.Definition[*graphql.FieldDef], len(fields))
	for name, src := range fields {
		defs[name] = registry.Factory(name, func() (*graphql.FieldDef, error) {
			sdl, err := src.resolve(baseDir)
			if err != nil {
				return nil, err
			}
			return &graphql.FieldDef{Name: name, SDL: sdl}, nil
		})
	}
	return defs
}

func sortedNames(m map[string]SDLSource) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
