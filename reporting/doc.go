// Package reporting forwards handled errors to a side channel such as logs
// or the active trace span.
//
// Reporters are registered by name so configuration can select one with a
// plain string (EXCEPTION_REPORTING). Built-in names are "noop", "log" and
// "otel".
package reporting
