// Package fakehost is an in-process stand-in for the backend used by the
// package tests: it implements pgsys.Runtime in pure Go, with bulk-reclaimed
// memory contexts, an allocation ledger, and error reports that model the
// backend's non-local jump by panicking with *pgsys.ErrorJump.
package fakehost

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/pgext-dev/pgext-sdk/pgsys"
)

// Report is one captured error report.
type Report struct {
	Level   pgsys.Level
	Message string
}

type allocation struct {
	buf  []byte
	size uintptr // requested size, preserved for pairing checks
}

// Context is a fake memory context: a named ledger of live allocations that
// can be reclaimed in bulk.
type Context struct {
	name   string
	allocs map[uintptr]allocation
	total  uintptr
}

func newContext(name string) *Context {
	return &Context{name: name, allocs: make(map[uintptr]allocation)}
}

// Name returns the context name.
func (c *Context) Name() string { return c.name }

// Live returns the number of live allocations in the context.
func (c *Context) Live() int { return len(c.allocs) }

// Host implements pgsys.Runtime. The backend is single threaded per
// connection, so Host carries no locking; tests must not share one across
// goroutines.
type Host struct {
	contexts   []*Context
	current    *Context
	reports    []Report
	allocLimit uintptr
}

// New creates a host with a single active context.
func New() *Host {
	top := newContext("TopMemoryContext")
	return &Host{
		contexts:   []*Context{top},
		current:    top,
		allocLimit: pgsys.MaxAllocSize,
	}
}

// Install creates a host, registers it as the process runtime, and restores
// the previous runtime when the test finishes.
func Install(t *testing.T) *Host {
	t.Helper()
	h := New()
	pgsys.SetRuntime(h)
	t.Cleanup(func() { pgsys.SetRuntime(nil) })
	return h
}

// NewContext creates an additional memory context.
func (h *Host) NewContext(name string) *Context {
	c := newContext(name)
	h.contexts = append(h.contexts, c)
	return c
}

// SwitchTo makes c the active context and returns the previous one,
// mirroring MemoryContextSwitchTo.
func (h *Host) SwitchTo(c *Context) *Context {
	prev := h.current
	h.current = c
	return prev
}

// Reset reclaims every allocation in c in bulk, as the backend does at
// statement and transaction boundaries.
func (h *Host) Reset(c *Context) {
	c.allocs = make(map[uintptr]allocation)
	c.total = 0
}

// SetAllocLimit lowers the single-allocation ceiling, for out-of-memory
// tests.
func (h *Host) SetAllocLimit(n uintptr) { h.allocLimit = n }

// LiveAllocations counts live allocations across all contexts.
func (h *Host) LiveAllocations() int {
	n := 0
	for _, c := range h.contexts {
		n += len(c.allocs)
	}
	return n
}

// Reports returns all captured reports in order.
func (h *Host) Reports() []Report { return h.reports }

// LastReport returns the most recent report.
func (h *Host) LastReport() (Report, bool) {
	if len(h.reports) == 0 {
		return Report{}, false
	}
	return h.reports[len(h.reports)-1], true
}

// ReportsAt returns the captured reports of the given level.
func (h *Host) ReportsAt(level pgsys.Level) []Report {
	var out []Report
	for _, r := range h.reports {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

// Report captures the message and, at ERROR or above, performs the host's
// non-local jump (modeled as a panic carrying *pgsys.ErrorJump).
func (h *Host) Report(level pgsys.Level, msg string) {
	h.reports = append(h.reports, Report{Level: level, Message: msg})
	if level >= pgsys.LevelError {
		panic(&pgsys.ErrorJump{Level: level, Message: msg})
	}
}

// ContextAlloc allocates in the active context. Requests above the limit
// report out-of-memory through the host error path and do not return.
func (h *Host) ContextAlloc(size uintptr) unsafe.Pointer {
	if size > h.allocLimit {
		h.Report(pgsys.LevelError, fmt.Sprintf("invalid memory alloc request size %d", size))
	}
	n := size
	if n == 0 {
		n = 1 // a zero-size request still yields a distinct chunk
	}
	buf := make([]byte, n)
	ptr := uintptr(unsafe.Pointer(&buf[0]))
	h.current.allocs[ptr] = allocation{buf: buf, size: size}
	h.current.total += size
	return unsafe.Pointer(ptr)
}

// ContextFree releases a chunk early. Freeing a pointer no context owns is a
// host-level error, like pfree on a foreign pointer.
func (h *Host) ContextFree(ptr unsafe.Pointer) {
	p := uintptr(ptr)
	for _, c := range h.contexts {
		if a, ok := c.allocs[p]; ok {
			delete(c.allocs, p)
			c.total -= a.size
			return
		}
	}
	h.Report(pgsys.LevelError, fmt.Sprintf("pfree called with invalid pointer %#x", p))
}

// MakeVarlena copies b into a fresh chunk of the active context and returns
// its address as the raw datum.
func (h *Host) MakeVarlena(b []byte) uintptr {
	ptr := h.ContextAlloc(uintptr(len(b)))
	if len(b) > 0 {
		copy(unsafe.Slice((*byte)(ptr), len(b)), b)
	}
	return uintptr(ptr)
}

// VarlenaBytes resolves a raw varlena datum against the ledger.
func (h *Host) VarlenaBytes(raw uintptr) ([]byte, error) {
	for _, c := range h.contexts {
		if a, ok := c.allocs[raw]; ok {
			out := make([]byte, a.size)
			copy(out, a.buf[:a.size])
			return out, nil
		}
	}
	return nil, fmt.Errorf("fakehost: %#x is not a live varlena datum", raw)
}

// CatchJump runs fn and returns the host jump it triggered, or nil when fn
// completed without aborting. Panics that are not host jumps propagate.
func CatchJump(fn func()) (jump *pgsys.ErrorJump) {
	defer func() {
		if r := recover(); r != nil {
			j, ok := r.(*pgsys.ErrorJump)
			if !ok {
				panic(r)
			}
			jump = j
		}
	}()
	fn()
	return nil
}
