// Package security applies query-safety rules at validation time.
//
// Rules holds three independent, idempotent settings: a maximum query
// complexity, a maximum selection depth, and an introspection policy.
// They are applied once at startup, after the schema registry is
// populated and before any request is served; mutating them while
// requests are in flight is outside the contract.
//
//	rules := security.NewRules()
//	rules.SetMaxDepth(10)
//	rules.SetMaxComplexity(100)
//	rules.SetIntrospectionDisabled(true)
//
//	doc, errs := rules.ValidateQuery(schema, query)
//	if len(errs) > 0 {
//	    // reject before execution
//	}
//
// Violations are reported as ordinary GraphQL validation errors
// (gqlerror), never as panics or registry errors, so the transport layer
// can surface them in the standard errors array.
package security
