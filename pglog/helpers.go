package pglog

import (
	"fmt"

	"github.com/pgext-dev/pgext-sdk/pgsys"
)

// Plain formatted helpers over the backend severity set.

// Debug logs at DEBUG1, hidden by default server configuration.
func Debug(format string, args ...any) {
	pgsys.Current().Report(pgsys.LevelDebug1, fmt.Sprintf(format, args...))
}

// Log logs an operational message, sent to the server log by default.
func Log(format string, args ...any) {
	pgsys.Current().Report(pgsys.LevelLog, fmt.Sprintf(format, args...))
}

// Info logs a message always sent to the client.
func Info(format string, args ...any) {
	pgsys.Current().Report(pgsys.LevelInfo, fmt.Sprintf(format, args...))
}

// Notice logs a helpful message about query operation.
func Notice(format string, args ...any) {
	pgsys.Current().Report(pgsys.LevelNotice, fmt.Sprintf(format, args...))
}

// Warning logs an unexpected-condition message.
func Warning(format string, args ...any) {
	pgsys.Current().Report(pgsys.LevelWarning, fmt.Sprintf(format, args...))
}

// Error reports a user error. The backend aborts the current statement and
// transaction; this call does not return.
func Error(format string, args ...any) {
	pgsys.Current().Report(pgsys.LevelError, fmt.Sprintf(format, args...))
}

// Fatal reports a fatal error. The backend terminates the session; this call
// does not return.
func Fatal(format string, args ...any) {
	pgsys.Current().Report(pgsys.LevelFatal, fmt.Sprintf(format, args...))
}
