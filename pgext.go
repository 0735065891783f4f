// Package pgext is an SDK for writing PostgreSQL extension functions in Go.
//
// Go code built with -buildmode=c-shared becomes a loadable backend module;
// this SDK is the boundary layer: datum marshaling (package datum), the
// function-export adapter (package fcall), the unwind barrier every entry
// point runs under (package guard), allocation through the backend's memory
// contexts (package pgalloc), and logging into the backend's report channel
// (package pglog). Package pgsys carries the host ABI itself; the manifest
// and ddl packages plus cmd/pgextgen generate the install artifacts.
package pgext

// Version of the SDK.
const Version = "0.1.0"
