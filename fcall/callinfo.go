package fcall

import "github.com/pgext-dev/pgext-sdk/pgsys"

// CallInfo is the read surface of the backend call context handed to an
// exported entry point. Its layout is dictated by the backend ABI; the
// adapter conforms to it, never the reverse. The postgres backend wraps a
// FunctionCallInfo pointer; tests use a fake.
type CallInfo interface {
	// NumArgs is the argument count the caller provided.
	NumArgs() int

	// Arg returns the raw value and null flag of argument slot i.
	Arg(i int) (raw uintptr, isNull bool)

	// ArgType is the declared type of argument i, or InvalidOid when the
	// caller did not attach expression type information.
	ArgType(i int) pgsys.Oid

	// ReturnType is the declared result type, or InvalidOid when unknown.
	ReturnType() pgsys.Oid
}

// Signature describes a wrapped function: the declared argument type tags,
// the return type tag, and whether any null argument short-circuits to a
// null result without invoking the body. Fixed at registration; immutable
// thereafter.
type Signature struct {
	Args   []pgsys.Oid
	Ret    pgsys.Oid
	Strict bool
}
