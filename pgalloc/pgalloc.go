// Package pgalloc provides the allocation strategy for buffers extension
// code hands across the ABI edge.
//
// Two strategies are recognized. System pins ordinary Go heap memory so the
// collector cannot move or reclaim it while the backend may still look at
// it; buffers live until explicitly freed. HostContext delegates to the
// backend's currently active memory context, so buffers are reclaimed in
// bulk when the backend resets that context at statement or transaction
// boundaries, and a backend abort cannot leak them.
//
// The strategy is process-wide configuration, selected once at module
// initialization.
package pgalloc

import (
	"fmt"
	"unsafe"

	"github.com/pgext-dev/pgext-sdk/pgsys"
)

// Strategy selects how Alloc obtains memory.
type Strategy int

const (
	// System uses the Go heap with pinning; normal lifetime rules apply.
	System Strategy = iota
	// HostContext delegates to the backend's active memory context.
	HostContext
)

func (s Strategy) String() string {
	switch s {
	case System:
		return "system"
	case HostContext:
		return "host-context"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

var active = System

// Use selects the process-wide strategy.
func Use(s Strategy) { active = s }

// Active returns the current strategy.
func Active() Strategy { return active }

// MaxPinnedBytes caps the total memory the System strategy may pin, so a
// misbehaving extension cannot grow the pin ledger without bound.
const MaxPinnedBytes = 100 * 1024 * 1024

// Buf is one allocation. It remembers the strategy it was made under, so a
// later Use call cannot mispair its Free.
type Buf struct {
	ptr      unsafe.Pointer
	size     uintptr
	strategy Strategy
}

// Ptr returns the raw pointer, valid until Free (or, for HostContext
// buffers, until the backend resets the owning context).
func (b Buf) Ptr() unsafe.Pointer { return b.ptr }

// Size returns the allocation size in bytes.
func (b Buf) Size() int { return int(b.size) }

// Bytes returns a live view over the buffer.
func (b Buf) Bytes() []byte {
	if b.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(b.ptr), b.size)
}

// The System ledger: pointer -> pinned slice. Pinning is the same trick the
// SDK uses at every boundary: holding the slice in a reachable map keeps the
// collector away from memory the backend may still read.
var pinned = struct {
	ptrs  map[uintptr][]byte
	total uintptr
}{ptrs: make(map[uintptr][]byte)}

// Alloc returns an n-byte buffer obtained through the active strategy. A
// request above the backend's single-allocation ceiling, or one that would
// overflow the pin ledger, is reported out of memory through the host error
// path and does not return; requests are never silently downgraded to a
// different strategy.
func Alloc(n int) Buf {
	if n < 0 {
		pgsys.Current().Report(pgsys.LevelError,
			fmt.Sprintf("invalid memory alloc request size %d", n))
	}
	if n == 0 {
		return Buf{strategy: active}
	}
	size := uintptr(n)
	if size > pgsys.MaxAllocSize {
		pgsys.Current().Report(pgsys.LevelError,
			fmt.Sprintf("invalid memory alloc request size %d", n))
	}

	switch active {
	case HostContext:
		ptr := pgsys.Current().ContextAlloc(size)
		return Buf{ptr: ptr, size: size, strategy: HostContext}
	default:
		if pinned.total+size > MaxPinnedBytes {
			pgsys.Current().Report(pgsys.LevelError,
				fmt.Sprintf("out of memory: %d bytes requested, %d already pinned", n, pinned.total))
		}
		buf := make([]byte, size)
		ptr := uintptr(unsafe.Pointer(&buf[0]))
		pinned.ptrs[ptr] = buf
		pinned.total += size
		return Buf{ptr: unsafe.Pointer(ptr), size: size, strategy: System}
	}
}

// Free releases b through the allocator that produced it, preserving the
// size across the pair. Freeing the zero Buf is a no-op; freeing a System
// buffer twice is ignored, matching the ledger's idempotent unpinning.
func Free(b Buf) {
	if b.ptr == nil {
		return
	}
	switch b.strategy {
	case HostContext:
		pgsys.Current().ContextFree(b.ptr)
	default:
		p := uintptr(b.ptr)
		if stored, ok := pinned.ptrs[p]; ok {
			delete(pinned.ptrs, p)
			pinned.total -= uintptr(len(stored))
		}
	}
}

// PinnedBytes reports the total bytes currently pinned by the System
// strategy.
func PinnedBytes() int { return int(pinned.total) }
