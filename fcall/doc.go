// Package fcall adapts native Go functions to the backend's function call
// protocol: it decodes call-context arguments into the function's parameter
// types, applies strict-function null short-circuiting, runs the body under
// the unwind barrier, and encodes the result back into a tagged datum.
//
// An extension registers its functions at init time and routes each exported
// C entry point through Dispatch; see examples/ for the cgo glue shape.
package fcall
