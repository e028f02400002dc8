// Package config loads the static startup configuration for the registry.
//
// A configuration file declares named types, named schemas (query and
// mutation field mappings), the default schema name, and the security
// limits, all in YAML:
//
//	defaultSchema: default
//	types:
//	  User:
//	    sdl: "type User { id: ID! name: String! }"
//	schemas:
//	  default:
//	    query:
//	      user:
//	        sdl: "user(id: ID!): User"
//	security:
//	  maxComplexity: 100
//	  maxDepth: 10
//	  disableIntrospection: false
//
// SDL may be given inline (sdl) or by file reference (file, resolved
// relative to the configuration file). Apply populates a registry and a
// security.Rules from a loaded configuration, which is the whole startup
// flow: types, then schemas, then the default name, then security rules.
// File-referenced SDL is registered factory-backed, so files are read only
// when a schema is first built.
package config
