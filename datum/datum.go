package datum

import (
	"github.com/pgext-dev/pgext-sdk/pgsys"
)

// Datum is the null-capable wrapper around a backend value and its type oid.
// When null is set, raw is never interpreted.
type Datum struct {
	raw  uintptr
	oid  pgsys.Oid
	null bool
}

// FromRaw builds a Datum from the raw value and null flag of a call-context
// slot, tagged with the declared argument type.
func FromRaw(raw uintptr, isNull bool, oid pgsys.Oid) Datum {
	if isNull {
		return Datum{oid: oid, null: true}
	}
	return Datum{raw: raw, oid: oid}
}

// Null returns the null datum of the given type.
func Null(oid pgsys.Oid) Datum {
	return Datum{oid: oid, null: true}
}

// IsNull reports whether the datum is SQL NULL.
//
// Called on the hot path at the ABI edge; must not panic.
func (d Datum) IsNull() bool {
	return d.null
}

// TypeOid returns the declared type of the datum.
func (d Datum) TypeOid() pgsys.Oid {
	return d.oid
}

// Raw returns the raw word the backend expects in the return slot: the value
// itself, or zero for a null datum.
//
// Called on the hot path at the ABI edge; must not panic.
func (d Datum) Raw() uintptr {
	if d.null {
		return 0
	}
	return d.raw
}
