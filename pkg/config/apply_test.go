package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphreg/graphreg/pkg/registry"
	"github.com/graphreg/graphreg/pkg/security"
)

func TestApply(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	reg := registry.New()
	rules := security.NewRules()
	require.NoError(t, cfg.Apply(reg, rules))

	assert.Equal(t, []string{"User"}, reg.Types.Names())
	assert.Equal(t, "blog", reg.Schemas.DefaultSchema())
	assert.Equal(t, 100, rules.MaxComplexity())
	assert.Equal(t, 10, rules.MaxDepth())
	assert.True(t, rules.IntrospectionDisabled())

	schema, err := reg.Schemas.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, []string{"user"}, schema.ListQueries())
	assert.Equal(t, []string{"createUser"}, schema.ListMutations())
}

func TestApplyFileReference(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.graphql"),
		[]byte("type User { id: ID! }"), 0o644))

	configYAML := `
types:
  User:
    file: user.graphql
schemas:
  default:
    query:
      user:
        sdl: "user(id: ID!): User"
`
	path := filepath.Join(dir, "graphreg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	reg := registry.New()
	require.NoError(t, cfg.Apply(reg, nil))

	schema, err := reg.Schemas.Resolve("")
	require.NoError(t, err)
	assert.NotNil(t, schema.GetType("User"))
}

func TestApplyMissingFileSurfacesAtBuild(t *testing.T) {
	configYAML := `
types:
  User:
    file: missing.graphql
schemas:
  default:
    query:
      user:
        sdl: "user(id: ID!): User"
`
	dir := t.TempDir()
	path := filepath.Join(dir, "graphreg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Registration is lazy, so the missing file is fine until a schema
	// referencing it is built.
	reg := registry.New()
	require.NoError(t, cfg.Apply(reg, nil))

	_, err = reg.Schemas.Resolve("")
	require.ErrorIs(t, err, registry.ErrSchemaBuild)
	require.ErrorIs(t, err, registry.ErrResolution)
}

func TestApplySingleNotificationForAllSchemas(t *testing.T) {
	configYAML := `
types:
  User:
    sdl: "type User { id: ID! }"
schemas:
  blog:
    query:
      user:
        sdl: "user(id: ID!): User"
  shop:
    query:
      user:
        sdl: "user(id: ID!): User"
`
	cfg, err := Parse([]byte(configYAML))
	require.NoError(t, err)

	reg := registry.New()
	notifications := 0
	reg.Schemas.OnSchemaAdded(func([]string) { notifications++ })

	require.NoError(t, cfg.Apply(reg, nil))
	assert.Equal(t, 1, notifications)
	assert.Equal(t, []string{"blog", "shop"}, reg.Schemas.Names())
}
