// Package datum wraps the backend's tagged value representation and converts
// between it and native Go types.
//
// A Datum carries the raw word-sized value, its declared type oid, and a null
// flag. Scalar conversions are direct bit reinterpretations; text and bytea
// round-trip through the host runtime because the backend owns (and later
// frees) variable-length results.
package datum
