// Package guard is the unwind barrier every exported entry point runs under.
//
// A Go panic must never unwind across the ABI edge into backend frames; the
// backend's stack state would be corrupted and the process left undefined.
// Protect intercepts the panic while still on the Go side, turns it into a
// backend error report, and lets the backend's own non-local jump take over.
package guard

import (
	"fmt"

	"github.com/pgext-dev/pgext-sdk/datum"
	"github.com/pgext-dev/pgext-sdk/pgsys"
)

// Protect executes fn. On normal return it is a no-op passthrough. If fn
// panics, the payload is classified before any frame beyond this one unwinds:
//
//   - *pgsys.ErrorJump is the host's own jump (raised by a fake runtime's
//     Report) and is re-panicked untouched;
//   - *datum.ConversionError is a recoverable marshaling failure, reported
//     at ERROR severity;
//   - anything else is a failed extension function, reported at FATAL
//     severity, matching the containment contract for abnormal termination.
//
// Report does not return for ERROR and above, so a report is the last thing
// that executes on this stack.
func Protect(fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if jump, ok := r.(*pgsys.ErrorJump); ok {
			panic(jump)
		}
		if cerr, ok := r.(*datum.ConversionError); ok {
			pgsys.Current().Report(pgsys.LevelError, cerr.Error())
			return
		}
		pgsys.Current().Report(pgsys.LevelFatal, message(r))
	}()
	fn()
}

// message formats a panic payload. A secondary failure while formatting is
// downgraded to a fixed generic message rather than escalated.
func message(r any) (msg string) {
	defer func() {
		if recover() != nil {
			msg = "panic in extension function (payload not printable)"
		}
	}()
	return fmt.Sprintf("panic in extension function: %v", r)
}
