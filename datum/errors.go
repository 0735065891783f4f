package datum

import (
	"fmt"

	"github.com/pgext-dev/pgext-sdk/pgsys"
)

// ConversionError reports that a datum could not be converted to or from the
// requested native type. It is recoverable at the call level: the adapter
// reports it at ERROR severity and the backend session continues.
type ConversionError struct {
	Oid    pgsys.Oid // the datum's declared type
	Target string    // the native type requested
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s datum to %s: %s", e.Oid, e.Target, e.Reason)
}

func convErr(oid pgsys.Oid, target, reason string) error {
	return &ConversionError{Oid: oid, Target: target, Reason: reason}
}

func nullErr(oid pgsys.Oid, target string) error {
	return convErr(oid, target, "value is null")
}

func tagErr(oid pgsys.Oid, target string, want pgsys.Oid) error {
	return convErr(oid, target, fmt.Sprintf("type tag mismatch, expected %s", want))
}
