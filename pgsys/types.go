package pgsys

import "fmt"

// Oid identifies a type in the backend's catalog. The values below are the
// pg_type entries the codec recognizes; they are part of the published ABI
// and must not change.
type Oid uint32

const (
	InvalidOid Oid = 0

	OidBool    Oid = 16
	OidBytea   Oid = 17
	OidInt8    Oid = 20
	OidInt2    Oid = 21
	OidInt4    Oid = 23
	OidText    Oid = 25
	OidFloat4  Oid = 700
	OidFloat8  Oid = 701
	OidCString Oid = 2275
	OidVoid    Oid = 2278
)

var oidNames = map[Oid]string{
	OidBool:    "boolean",
	OidBytea:   "bytea",
	OidInt8:    "bigint",
	OidInt2:    "smallint",
	OidInt4:    "integer",
	OidText:    "text",
	OidFloat4:  "real",
	OidFloat8:  "double precision",
	OidCString: "cstring",
	OidVoid:    "void",
}

// String returns the SQL name of known oids, or the numeric form.
func (o Oid) String() string {
	if name, ok := oidNames[o]; ok {
		return name
	}
	return fmt.Sprintf("oid(%d)", uint32(o))
}

// SQLName reports the SQL type name for an oid, and whether the oid is part
// of the supported catalog.
func (o Oid) SQLName() (string, bool) {
	name, ok := oidNames[o]
	return name, ok
}

// OidOfSQL resolves a SQL type name to its oid. Only the supported catalog
// subset resolves; anything else returns InvalidOid, false.
func OidOfSQL(name string) (Oid, bool) {
	for oid, n := range oidNames {
		if n == name {
			return oid, true
		}
	}
	// Common aliases used in manifests.
	switch name {
	case "int2":
		return OidInt2, true
	case "int4", "int":
		return OidInt4, true
	case "int8":
		return OidInt8, true
	case "float4":
		return OidFloat4, true
	case "float8":
		return OidFloat8, true
	case "bool":
		return OidBool, true
	}
	return InvalidOid, false
}

// Level is a backend error-report severity (elog.h values).
type Level int

const (
	LevelDebug5  Level = 10
	LevelDebug4  Level = 11
	LevelDebug3  Level = 12
	LevelDebug2  Level = 13
	LevelDebug1  Level = 14
	LevelLog     Level = 15
	LevelInfo    Level = 17
	LevelNotice  Level = 18
	LevelWarning Level = 19

	// LevelError aborts the current query and transaction; the report call
	// does not return.
	LevelError Level = 20
	// LevelFatal additionally terminates the backend session.
	LevelFatal Level = 21
	// LevelPanic takes the whole cluster into recovery. Never raised by the
	// SDK itself.
	LevelPanic Level = 22
)

// String returns the elog spelling of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug5, LevelDebug4, LevelDebug3, LevelDebug2, LevelDebug1:
		return "DEBUG"
	case LevelLog:
		return "LOG"
	case LevelInfo:
		return "INFO"
	case LevelNotice:
		return "NOTICE"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	case LevelPanic:
		return "PANIC"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

const (
	// MaxAllocSize is the backend's ceiling for a single palloc request.
	MaxAllocSize = 0x3fffffff

	// FuncMaxArgs is the backend's maximum function arity.
	FuncMaxArgs = 100
)
