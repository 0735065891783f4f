package fakehost

import (
	"github.com/pgext-dev/pgext-sdk/datum"
	"github.com/pgext-dev/pgext-sdk/pgsys"
)

// Call is a fake backend call context. It satisfies fcall.CallInfo
// structurally, the same way the postgres CallContext does.
type Call struct {
	Args []datum.Datum
	Ret  pgsys.Oid
}

// NumArgs returns the provided argument count.
func (c *Call) NumArgs() int { return len(c.Args) }

// Arg returns the raw value and null flag of slot i.
func (c *Call) Arg(i int) (uintptr, bool) {
	d := c.Args[i]
	return d.Raw(), d.IsNull()
}

// ArgType returns the declared type of slot i.
func (c *Call) ArgType(i int) pgsys.Oid { return c.Args[i].TypeOid() }

// ReturnType returns the declared result type.
func (c *Call) ReturnType() pgsys.Oid { return c.Ret }
