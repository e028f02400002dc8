package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the static startup structure consumed by Apply.
type Config struct {
	// DefaultSchema is the schema name resolved when a request names none.
	// Empty keeps the registry's built-in default ("default").
	DefaultSchema string `json:"defaultSchema,omitempty" yaml:"defaultSchema,omitempty"`

	// Types maps type names to their SDL sources. Types are shared by
	// every schema.
	Types map[string]SDLSource `json:"types,omitempty" yaml:"types,omitempty"`

	// Schemas maps schema names to their root-field mappings.
	Schemas map[string]SchemaConfig `json:"schemas,omitempty" yaml:"schemas,omitempty"`

	// Security holds the validation-time limits.
	Security SecurityConfig `json:"security,omitempty" yaml:"security,omitempty"`

	// baseDir resolves relative file references; set by Load.
	baseDir string
}

// SDLSource is one SDL payload: inline text or a file reference. Exactly
// one must be set.
type SDLSource struct {
	// SDL is the inline definition text.
	SDL string `json:"sdl,omitempty" yaml:"sdl,omitempty"`
	// File is a path to a file containing the definition, resolved
	// relative to the configuration file.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// SchemaConfig maps root-operation field names to their SDL sources.
type SchemaConfig struct {
	Query        map[string]SDLSource `json:"query,omitempty" yaml:"query,omitempty"`
	Mutation     map[string]SDLSource `json:"mutation,omitempty" yaml:"mutation,omitempty"`
	Subscription map[string]SDLSource `json:"subscription,omitempty" yaml:"subscription,omitempty"`
}

// SecurityConfig holds the query-safety limits. Zero values leave a limit
// unset.
type SecurityConfig struct {
	MaxComplexity        int  `json:"maxComplexity,omitempty" yaml:"maxComplexity,omitempty"`
	MaxDepth             int  `json:"maxDepth,omitempty" yaml:"maxDepth,omitempty"`
	DisableIntrospection bool `json:"disableIntrospection,omitempty" yaml:"disableIntrospection,omitempty"`
}

// Validate checks the configuration for structural problems: empty names,
// SDL sources with neither or both of sdl/file, and negative limits.
func (c *Config) Validate() error {
	for name, src := range c.Types {
		if name == "" {
			return fmt.Errorf("type with empty name")
		}
		if err := src.validate(); err != nil {
			return fmt.Errorf("type %q: %w", name, err)
		}
	}

	for name, schema := range c.Schemas {
		if name == "" {
			return fmt.Errorf("schema with empty name")
		}
		for _, root := range []struct {
			kind   string
			fields map[string]SDLSource
		}{
			{"query", schema.Query},
			{"mutation", schema.Mutation},
			{"subscription", schema.Subscription},
		} {
			for field, src := range root.fields {
				if field == "" {
					return fmt.Errorf("schema %q: %s field with empty name", name, root.kind)
				}
				if err := src.validate(); err != nil {
					return fmt.Errorf("schema %q: %s field %q: %w", name, root.kind, field, err)
				}
			}
		}
	}

	if c.Security.MaxComplexity < 0 {
		return fmt.Errorf("security.maxComplexity must not be negative")
	}
	if c.Security.MaxDepth < 0 {
		return fmt.Errorf("security.maxDepth must not be negative")
	}

	return nil
}

func (s SDLSource) validate() error {
	switch {
	case s.SDL == "" && s.File == "":
		return fmt.Errorf("needs sdl or file")
	case s.SDL != "" && s.File != "":
		return fmt.Errorf("sdl and file are mutually exclusive")
	}
	return nil
}

// resolve returns the SDL text, reading the referenced file if needed.
func (s SDLSource) resolve(baseDir string) (string, error) {
	if s.SDL != "" {
		return s.SDL, nil
	}

	path := s.File
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read SDL file: %w", err)
	}
	return string(data), nil
}
