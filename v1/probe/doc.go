// Package probe ties the pipeline together: it accepts schema uploads,
// answers introspection queries and runs API tests by resolving a message
// type, generating or parsing its payload, encoding it and dispatching it.
//
// Test converts every failure into a structured TestResult, so callers
// never have to inspect error types to report an outcome.
package probe
