package registry

import (
	"log/slog"

	"github.com/graphreg/graphreg/pkg/graphql"
	"github.com/graphreg/graphreg/pkg/logging"
)

// Registry is the process-wide registry context: one store per definition
// kind plus the schema registry composing them. Create it once at startup
// and inject it into collaborators; it lives for the process lifetime.
type Registry struct {
	// Types holds named type definitions shared by every schema.
	Types *Store[*graphql.TypeDef]
	// Queries, Mutations, and Subscriptions hold root-operation fields.
	Queries       *Store[*graphql.FieldDef]
	Mutations     *Store[*graphql.FieldDef]
	Subscriptions *Store[*graphql.FieldDef]
	// Schemas composes store entries into named, lazily built schemas.
	Schemas *SchemaRegistry
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report observer failures. Defaults to
// a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		Types:         NewStore[*graphql.TypeDef]("type"),
		Queries:       NewStore[*graphql.FieldDef]("query"),
		Mutations:     NewStore[*graphql.FieldDef]("mutation"),
		Subscriptions: NewStore[*graphql.FieldDef]("subscription"),
	}
	r.Schemas = newSchemaRegistry(r, o.logger)
	return r
}
