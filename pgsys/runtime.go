package pgsys

import (
	"fmt"
	"unsafe"
)

// Runtime is the set of host facilities the SDK needs from the backend. The
// postgres implementation forwards each method to the corresponding C entry
// point; tests install a pure-Go fake.
//
// The backend drives extension calls synchronously on a single thread, and
// its error/memory state is not safe to touch from any other thread. A
// Runtime is therefore never called concurrently and implementations need no
// locking.
type Runtime interface {
	// Report sends a message to the backend's error machinery. For
	// LevelError and above the backend performs a non-local jump back to
	// its main loop: the call does not return. Pure-Go implementations
	// model the jump by panicking with *ErrorJump.
	Report(level Level, msg string)

	// ContextAlloc allocates size bytes in the backend's currently active
	// memory context. The memory is owned by that context and is reclaimed
	// in bulk when the backend resets it; on failure the implementation
	// reports out-of-memory through Report (and so does not return).
	ContextAlloc(size uintptr) unsafe.Pointer

	// ContextFree returns a ContextAlloc'd chunk to its context early.
	ContextFree(ptr unsafe.Pointer)

	// MakeVarlena copies b into a freshly allocated variable-length value
	// in the active memory context and returns it as a raw datum. The host
	// owns and eventually frees the result.
	MakeVarlena(b []byte) uintptr

	// VarlenaBytes reads the payload of a variable-length datum.
	VarlenaBytes(raw uintptr) ([]byte, error)
}

// ErrorJump is the payload pure-Go runtimes panic with when Report is called
// at LevelError or above, standing in for the backend's longjmp. It must
// cross guard.Protect untouched; only the installer of the fake runtime may
// recover it.
type ErrorJump struct {
	Level   Level
	Message string
}

func (j *ErrorJump) Error() string {
	return fmt.Sprintf("%s: %s", j.Level, j.Message)
}

var current Runtime

// SetRuntime installs the process-wide runtime. The postgres backend calls
// this from its load hook; tests call it (via the fake host) before touching
// any datum or allocator API. Passing nil restores the unset state.
func SetRuntime(r Runtime) {
	current = r
}

// Current returns the installed runtime and panics if none is installed,
// which means either the module was built without a backend or a test forgot
// to install the fake host.
func Current() Runtime {
	if current == nil {
		panic("pgsys: no host runtime installed (build with the pgext_postgres tag or install a fake host)")
	}
	return current
}

// Installed reports whether a runtime is registered.
func Installed() bool {
	return current != nil
}
