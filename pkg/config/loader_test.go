package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
defaultSchema: blog
types:
  User:
    sdl: "type User { id: ID! name: String! }"
schemas:
  blog:
    query:
      user:
        sdl: "user(id: ID!): User"
    mutation:
      createUser:
        sdl: "createUser(name: String!): User"
security:
  maxComplexity: 100
  maxDepth: 10
  disableIntrospection: true
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(validConfig))
	require.NoError(t, err)

	assert.Equal(t, "blog", cfg.DefaultSchema)
	assert.Contains(t, cfg.Types, "User")
	require.Contains(t, cfg.Schemas, "blog")
	assert.Contains(t, cfg.Schemas["blog"].Query, "user")
	assert.Equal(t, 100, cfg.Security.MaxComplexity)
	assert.Equal(t, 10, cfg.Security.MaxDepth)
	assert.True(t, cfg.Security.DisableIntrospection)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse([]byte("  \n\t"))
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("schemas: [unclosed"))
	require.ErrorIs(t, err, ErrInvalidYAML)
}

func TestParseValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "type without sdl or file",
			yaml: "types:\n  User: {}\n",
			want: "needs sdl or file",
		},
		{
			name: "type with both sdl and file",
			yaml: "types:\n  User:\n    sdl: \"type User { id: ID! }\"\n    file: user.graphql\n",
			want: "mutually exclusive",
		},
		{
			name: "field without sdl or file",
			yaml: "schemas:\n  blog:\n    query:\n      user: {}\n",
			want: "needs sdl or file",
		},
		{
			name: "negative depth",
			yaml: "security:\n  maxDepth: -1\n",
			want: "maxDepth",
		},
		{
			name: "negative complexity",
			yaml: "security:\n  maxComplexity: -5\n",
			want: "maxComplexity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graphreg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "blog", cfg.DefaultSchema)
	assert.Equal(t, dir, cfg.baseDir)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}
