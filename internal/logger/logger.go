// Package logger builds the process-wide zerolog logger. Services hold
// a child of it by value; request-scoped fields are added at the HTTP
// layer.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a JSON logger writing to stdout, tagged with the role of
// the process ("app", "worker").
func New(role string) zerolog.Logger {
	return zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Logger()
}
