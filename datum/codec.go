package datum

import (
	"math"

	"github.com/pgext-dev/pgext-sdk/pgsys"
)

// Decoders. Each checks the type tag first, then the null flag: a null datum
// has no value for a non-optional native type (optional targets go through
// Decode with a pointer type instead).

// Int16 converts a smallint datum.
func (d Datum) Int16() (int16, error) {
	if d.oid != pgsys.OidInt2 {
		return 0, tagErr(d.oid, "int16", pgsys.OidInt2)
	}
	if d.null {
		return 0, nullErr(d.oid, "int16")
	}
	return int16(d.raw), nil
}

// Int32 converts an integer datum.
func (d Datum) Int32() (int32, error) {
	if d.oid != pgsys.OidInt4 {
		return 0, tagErr(d.oid, "int32", pgsys.OidInt4)
	}
	if d.null {
		return 0, nullErr(d.oid, "int32")
	}
	return int32(d.raw), nil
}

// Int64 converts a bigint datum. Datums are word sized, so the value is
// passed by value on 64-bit backends.
func (d Datum) Int64() (int64, error) {
	if d.oid != pgsys.OidInt8 {
		return 0, tagErr(d.oid, "int64", pgsys.OidInt8)
	}
	if d.null {
		return 0, nullErr(d.oid, "int64")
	}
	return int64(d.raw), nil
}

// Float32 converts a real datum (bit reinterpretation, no loss).
func (d Datum) Float32() (float32, error) {
	if d.oid != pgsys.OidFloat4 {
		return 0, tagErr(d.oid, "float32", pgsys.OidFloat4)
	}
	if d.null {
		return 0, nullErr(d.oid, "float32")
	}
	return math.Float32frombits(uint32(d.raw)), nil
}

// Float64 converts a double precision datum (bit reinterpretation, no loss).
func (d Datum) Float64() (float64, error) {
	if d.oid != pgsys.OidFloat8 {
		return 0, tagErr(d.oid, "float64", pgsys.OidFloat8)
	}
	if d.null {
		return 0, nullErr(d.oid, "float64")
	}
	return math.Float64frombits(uint64(d.raw)), nil
}

// Bool converts a boolean datum.
func (d Datum) Bool() (bool, error) {
	if d.oid != pgsys.OidBool {
		return false, tagErr(d.oid, "bool", pgsys.OidBool)
	}
	if d.null {
		return false, nullErr(d.oid, "bool")
	}
	return d.raw != 0, nil
}

// Text converts a text datum, reading the varlena payload through the host
// runtime.
func (d Datum) Text() (string, error) {
	if d.oid != pgsys.OidText {
		return "", tagErr(d.oid, "string", pgsys.OidText)
	}
	if d.null {
		return "", nullErr(d.oid, "string")
	}
	b, err := pgsys.Current().VarlenaBytes(d.raw)
	if err != nil {
		return "", convErr(d.oid, "string", err.Error())
	}
	return string(b), nil
}

// Bytes converts a bytea datum.
func (d Datum) Bytes() ([]byte, error) {
	if d.oid != pgsys.OidBytea {
		return nil, tagErr(d.oid, "[]byte", pgsys.OidBytea)
	}
	if d.null {
		return nil, nullErr(d.oid, "[]byte")
	}
	b, err := pgsys.Current().VarlenaBytes(d.raw)
	if err != nil {
		return nil, convErr(d.oid, "[]byte", err.Error())
	}
	return b, nil
}

// Encoders. Scalars are stored in the raw word directly; text and bytea are
// copied into host-owned memory because the backend frees results itself.

// Int16 encodes a smallint datum.
func Int16(v int16) Datum {
	return Datum{raw: uintptr(int64(v)), oid: pgsys.OidInt2}
}

// Int32 encodes an integer datum.
func Int32(v int32) Datum {
	return Datum{raw: uintptr(int64(v)), oid: pgsys.OidInt4}
}

// Int64 encodes a bigint datum.
func Int64(v int64) Datum {
	return Datum{raw: uintptr(v), oid: pgsys.OidInt8}
}

// Float32 encodes a real datum.
func Float32(v float32) Datum {
	return Datum{raw: uintptr(math.Float32bits(v)), oid: pgsys.OidFloat4}
}

// Float64 encodes a double precision datum.
func Float64(v float64) Datum {
	return Datum{raw: uintptr(math.Float64bits(v)), oid: pgsys.OidFloat8}
}

// Bool encodes a boolean datum.
func Bool(v bool) Datum {
	var raw uintptr
	if v {
		raw = 1
	}
	return Datum{raw: raw, oid: pgsys.OidBool}
}

// Text encodes a string as a text datum allocated through the active host
// allocation strategy.
func Text(s string) Datum {
	return Datum{raw: pgsys.Current().MakeVarlena([]byte(s)), oid: pgsys.OidText}
}

// Bytea encodes a byte slice as a bytea datum allocated through the active
// host allocation strategy.
func Bytea(b []byte) Datum {
	return Datum{raw: pgsys.Current().MakeVarlena(b), oid: pgsys.OidBytea}
}
