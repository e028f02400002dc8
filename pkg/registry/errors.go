package registry

import "errors"

// Common errors returned by the registry. All lookup and build failures
// wrap one of these so callers can classify them with errors.Is; the
// transport layer is expected to map them to structured error responses.
var (
	// ErrUnknownName is returned when resolving a type or field name that
	// was never registered.
	ErrUnknownName = errors.New("unknown name")

	// ErrUnknownSchema is returned when resolving a schema name that was
	// never registered.
	ErrUnknownSchema = errors.New("unknown schema")

	// ErrDefinition is returned for malformed registrations: an empty
	// name, a name that cannot be derived, or an empty definition.
	ErrDefinition = errors.New("invalid definition")

	// ErrResolution is returned when a factory-backed definition fails to
	// produce an instance. The factory's error is preserved in the chain.
	ErrResolution = errors.New("definition resolution failed")

	// ErrSchemaBuild is returned when assembling a schema fails. The
	// underlying resolution or parse error is preserved in the chain.
	ErrSchemaBuild = errors.New("schema build failed")
)
