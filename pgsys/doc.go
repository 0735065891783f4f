// Package pgsys is the host ABI surface of the SDK: the type and error-level
// catalogs shared with the backend, and the Runtime interface through which
// every other package reaches host facilities (error reporting, memory-context
// allocation, varlena construction).
//
// Exactly one Runtime is active per process. In a loaded extension the
// postgres backend (built with the pgext_postgres tag) registers itself at
// module load; tests register an in-process fake instead.
package pgsys
