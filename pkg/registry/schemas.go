package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/graphreg/graphreg/pkg/graphql"
)

// DefaultSchemaName is the schema name resolved when no name is given and
// no other default was configured.
const DefaultSchemaName = "default"

// SchemaSpec describes one schema as maps of field name to definition per
// root operation. A zero Definition refers to a field already registered in
// the corresponding store under the same name; non-zero definitions are
// registered into the store (overwriting) when the schema is registered.
type SchemaSpec struct {
	Query        map[string]Definition[*graphql.FieldDef]
	Mutation     map[string]Definition[*graphql.FieldDef]
	Subscription map[string]Definition[*graphql.FieldDef]
}

// SchemaObserver receives the cumulative set of registered schema names, in
// registration order, after a schema is added.
type SchemaObserver func(names []string)

// schemaEntry tracks one registered schema. gen increments on every
// re-registration so an in-flight lazy build of a replaced spec can never
// populate the cache.
type schemaEntry struct {
	queryFields        []string
	mutationFields     []string
	subscriptionFields []string

	prebuilt *graphql.Schema
	built    *graphql.Schema
	gen      uint64
}

// SchemaRegistry stores named schema specs and builds them on first
// resolution. Built schemas are cached until their name is re-registered.
type SchemaRegistry struct {
	reg    *Registry
	logger *slog.Logger
	group  singleflight.Group

	mu          sync.RWMutex
	entries     map[string]*schemaEntry
	order       []string
	defaultName string
	observers   []SchemaObserver
}

func newSchemaRegistry(reg *Registry, logger *slog.Logger) *SchemaRegistry {
	return &SchemaRegistry{
		reg:         reg,
		logger:      logger,
		entries:     make(map[string]*schemaEntry),
		defaultName: DefaultSchemaName,
	}
}

// RegisterSchema stores a schema spec under name for lazy building. Field
// definitions carried by the spec are registered into the root-field stores
// first (last write wins there as well). Re-registering a name replaces the
// spec and invalidates any cached built schema. Observers are notified
// after the registry state reflects the new schema.
func (r *SchemaRegistry) RegisterSchema(name string, spec SchemaSpec) error {
	if name == "" {
		return fmt.Errorf("%w: empty schema name", ErrDefinition)
	}

	e := &schemaEntry{}
	var err error
	if e.queryFields, err = registerSpecFields(r.reg.Queries, spec.Query); err != nil {
		return err
	}
	if e.mutationFields, err = registerSpecFields(r.reg.Mutations, spec.Mutation); err != nil {
		return err
	}
	if e.subscriptionFields, err = registerSpecFields(r.reg.Subscriptions, spec.Subscription); err != nil {
		return err
	}

	r.notify(r.store(name, e))
	return nil
}

// RegisterPrebuilt stores an already-built schema under name, bypassing the
// lazy build path. Observers are notified like any other registration.
func (r *SchemaRegistry) RegisterPrebuilt(name string, schema *graphql.Schema) error {
	if name == "" {
		return fmt.Errorf("%w: empty schema name", ErrDefinition)
	}
	if schema == nil {
		return fmt.Errorf("%w: schema %q is nil", ErrDefinition, name)
	}

	r.notify(r.store(name, &schemaEntry{prebuilt: schema}))
	return nil
}

// RegisterSchemas registers every spec in the map, in sorted name order for
// determinism. Exactly one notification is emitted for the whole batch,
// carrying the final cumulative name set.
func (r *SchemaRegistry) RegisterSchemas(specs map[string]SchemaSpec) error {
	names := make([]string, 0, len(specs))
	for name := range specs {
		if name == "" {
			return fmt.Errorf("%w: empty schema name", ErrDefinition)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var snapshot []string
	for _, name := range names {
		spec := specs[name]
		e := &schemaEntry{}
		var err error
		if e.queryFields, err = registerSpecFields(r.reg.Queries, spec.Query); err != nil {
			return err
		}
		if e.mutationFields, err = registerSpecFields(r.reg.Mutations, spec.Mutation); err != nil {
			return err
		}
		if e.subscriptionFields, err = registerSpecFields(r.reg.Subscriptions, spec.Subscription); err != nil {
			return err
		}
		snapshot = r.store(name, e)
	}

	if len(names) > 0 {
		r.notify(snapshot)
	}
	return nil
}

// registerSpecFields registers a spec's non-zero field definitions into the
// store and returns the schema's field names for that root, sorted so the
// assembled SDL is deterministic.
func registerSpecFields(store *Store[*graphql.FieldDef], fields map[string]Definition[*graphql.FieldDef]) ([]string, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := fields[name]
		if def.IsZero() {
			// Reference to an existing registration; checked at build time.
			continue
		}
		if err := store.Register(name, def); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// store installs an entry and returns the cumulative name snapshot, both
// under the writer lock. Replacement bumps the generation so stale builds
// are discarded.
func (r *SchemaRegistry) store(name string, e *schemaEntry) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, exists := r.entries[name]; exists {
		e.gen = prev.gen + 1
	} else {
		r.order = append(r.order, name)
	}
	r.entries[name] = e

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// SetDefaultSchema sets the name substituted when Resolve is called with an
// empty name. The name is not required to be registered yet; validity is
// checked at resolution time.
func (r *SchemaRegistry) SetDefaultSchema(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultName = name
}

// DefaultSchema returns the current default schema name.
func (r *SchemaRegistry) DefaultSchema() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultName
}

// Resolve returns the schema registered under name, substituting the
// default name when name is empty. Lazily registered schemas are built on
// first resolution and cached; concurrent first resolutions share a single
// build. Unregistered names fail with ErrUnknownSchema; build failures fail
// with ErrSchemaBuild, are not cached, and are retried on the next call.
func (r *SchemaRegistry) Resolve(name string) (*graphql.Schema, error) {
	if name == "" {
		name = r.DefaultSchema()
	}

	r.mu.RLock()
	e, ok := r.entries[name]
	if !ok {
		r.mu.RUnlock()
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	if e.prebuilt != nil {
		s := e.prebuilt
		r.mu.RUnlock()
		return s, nil
	}
	if e.built != nil {
		s := e.built
		r.mu.RUnlock()
		return s, nil
	}
	gen := e.gen
	query := e.queryFields
	mutation := e.mutationFields
	subscription := e.subscriptionFields
	r.mu.RUnlock()

	// The generation in the flight key keeps a re-registered name from
	// being served a build of the replaced spec.
	key := fmt.Sprintf("%s@%d", name, gen)
	v, err, _ := r.group.Do(key, func() (any, error) {
		schema, err := r.build(name, query, mutation, subscription)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		if cur, ok := r.entries[name]; ok && cur.gen == gen && cur.prebuilt == nil {
			cur.built = schema
		}
		r.mu.Unlock()
		return schema, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: schema %q: %w", ErrSchemaBuild, name, err)
	}
	return v.(*graphql.Schema), nil
}

// build resolves every field entry from the root-field stores and every
// registered type, then assembles and parses the schema.
func (r *SchemaRegistry) build(name string, query, mutation, subscription []string) (*graphql.Schema, error) {
	queryDefs, err := resolveFields(r.reg.Queries, query)
	if err != nil {
		return nil, err
	}
	mutationDefs, err := resolveFields(r.reg.Mutations, mutation)
	if err != nil {
		return nil, err
	}
	subscriptionDefs, err := resolveFields(r.reg.Subscriptions, subscription)
	if err != nil {
		return nil, err
	}

	typeNames := r.reg.Types.Names()
	typeDefs := make([]*graphql.TypeDef, 0, len(typeNames))
	for _, tn := range typeNames {
		td, err := r.reg.Types.Resolve(tn)
		if err != nil {
			return nil, err
		}
		typeDefs = append(typeDefs, td)
	}

	return graphql.BuildSchema(name, typeDefs, queryDefs, mutationDefs, subscriptionDefs)
}

func resolveFields(store *Store[*graphql.FieldDef], names []string) ([]*graphql.FieldDef, error) {
	if len(names) == 0 {
		return nil, nil
	}
	defs := make([]*graphql.FieldDef, 0, len(names))
	for _, n := range names {
		fd, err := store.Resolve(n)
		if err != nil {
			return nil, err
		}
		defs = append(defs, fd)
	}
	return defs, nil
}

// Names returns all registered schema names in registration order.
func (r *SchemaRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Has reports whether a schema name is registered.
func (r *SchemaRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// OnSchemaAdded subscribes an observer to schema registrations. Observers
// run synchronously, in subscription order, after every successful
// registration; a panicking observer is logged and does not affect the
// registration or later observers.
func (r *SchemaRegistry) OnSchemaAdded(fn SchemaObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// notify dispatches the name snapshot to all observers. Dispatch happens
// outside the registry lock so observers may call back into the registry.
func (r *SchemaRegistry) notify(names []string) {
	r.mu.RLock()
	observers := make([]SchemaObserver, len(r.observers))
	copy(observers, r.observers)
	r.mu.RUnlock()

	for _, fn := range observers {
		r.dispatch(fn, names)
	}
}

func (r *SchemaRegistry) dispatch(fn SchemaObserver, names []string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("schema observer panicked", "panic", rec, "schemas", names)
		}
	}()
	fn(names)
}
