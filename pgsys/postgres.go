//go:build pgext_postgres

package pgsys

/*
#include <stdlib.h>

#include "postgres.h"
#include "fmgr.h"
#include "miscadmin.h"
#include "utils/builtins.h"
#include "utils/memutils.h"

// Thin accessors over backend macros and struct fields, so the Go side never
// depends on struct layout directly.

static int pgext_nargs(FunctionCallInfo fcinfo) {
	return fcinfo->nargs;
}

static Datum pgext_arg(FunctionCallInfo fcinfo, int i) {
	return fcinfo->arg[i];
}

static bool pgext_argnull(FunctionCallInfo fcinfo, int i) {
	return fcinfo->argnull[i];
}

static Oid pgext_argtype(FunctionCallInfo fcinfo, int i) {
	return get_fn_expr_argtype(fcinfo->flinfo, i);
}

static Oid pgext_rettype(FunctionCallInfo fcinfo) {
	return get_fn_expr_rettype(fcinfo->flinfo);
}

static void pgext_set_isnull(FunctionCallInfo fcinfo, bool isnull) {
	fcinfo->isnull = isnull;
}

static void pgext_report(int level, const char *msg) {
	if (errstart(level, __FILE__, __LINE__, "pgext", TEXTDOMAIN))
		errfinish(errmsg("%s", msg));
}

static struct varlena *pgext_detoast(Datum d) {
	return pg_detoast_datum((struct varlena *) DatumGetPointer(d));
}

static const char *pgext_vardata(struct varlena *v) {
	return VARDATA_ANY(v);
}

static size_t pgext_varsize(struct varlena *v) {
	return VARSIZE_ANY_EXHDR(v);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// backendRuntime forwards every Runtime call to the surrounding backend. It
// is installed at module load; all calls happen on the backend's thread.
type backendRuntime struct{}

func init() {
	SetRuntime(backendRuntime{})
}

func (backendRuntime) Report(level Level, msg string) {
	cmsg := C.CString(msg)
	defer C.free(unsafe.Pointer(cmsg))
	// For LevelError and above errfinish longjmps into the backend and the
	// defer above never runs; the message was already copied by errmsg, and
	// the leaked C string is reclaimed with the error context.
	C.pgext_report(C.int(level), cmsg)
}

func (backendRuntime) ContextAlloc(size uintptr) unsafe.Pointer {
	if size > MaxAllocSize {
		backendRuntime{}.Report(LevelError, fmt.Sprintf("invalid memory alloc request size %d", size))
	}
	return unsafe.Pointer(C.palloc(C.Size(size)))
}

func (backendRuntime) ContextFree(ptr unsafe.Pointer) {
	C.pfree(ptr)
}

func (backendRuntime) MakeVarlena(b []byte) uintptr {
	var p *C.char
	if len(b) > 0 {
		p = (*C.char)(unsafe.Pointer(&b[0]))
	}
	t := C.cstring_to_text_with_len(p, C.int(len(b)))
	return uintptr(unsafe.Pointer(t))
}

func (backendRuntime) VarlenaBytes(raw uintptr) ([]byte, error) {
	if raw == 0 {
		return nil, fmt.Errorf("pgsys: nil varlena datum")
	}
	v := C.pgext_detoast(C.Datum(raw))
	size := C.pgext_varsize(v)
	out := C.GoBytes(unsafe.Pointer(C.pgext_vardata(v)), C.int(size))
	return out, nil
}

// CallContext wraps the backend's FunctionCallInfo for the duration of one
// call. It satisfies fcall.CallInfo structurally.
type CallContext struct {
	fcinfo C.FunctionCallInfo
}

// WrapCallInfo adapts a raw FunctionCallInfo pointer received by an exported
// entry point.
func WrapCallInfo(fcinfo unsafe.Pointer) *CallContext {
	return &CallContext{fcinfo: C.FunctionCallInfo(fcinfo)}
}

func (c *CallContext) NumArgs() int {
	return int(C.pgext_nargs(c.fcinfo))
}

func (c *CallContext) Arg(i int) (uintptr, bool) {
	return uintptr(C.pgext_arg(c.fcinfo, C.int(i))), bool(C.pgext_argnull(c.fcinfo, C.int(i)))
}

func (c *CallContext) ArgType(i int) Oid {
	return Oid(C.pgext_argtype(c.fcinfo, C.int(i)))
}

func (c *CallContext) ReturnType() Oid {
	return Oid(C.pgext_rettype(c.fcinfo))
}

// SetResultNull writes the result null flag back into the call context.
func (c *CallContext) SetResultNull(isNull bool) {
	C.pgext_set_isnull(c.fcinfo, C.bool(isNull))
}
