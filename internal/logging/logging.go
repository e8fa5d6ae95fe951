// Package logging centralizes the log.Printf-style logging the teacher
// scatters through server/main.go behind one component-prefixed logger
// type. Each New call returns its own logger writing to stderr.
package logging

import (
	"log"
	"os"
)

// Logger is a thin wrapper around the standard logger that tags every
// line with a component name, e.g. "[game]" or "[transport]".
type Logger struct {
	component string
	std       *log.Logger
}

// New returns a Logger writing to stderr with the given component tag.
func New(component string) *Logger {
	return &Logger{
		component: component,
		std:       log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *Logger) Printf(format string, args ...any) {
	l.std.Printf("["+l.component+"] "+format, args...)
}

func (l *Logger) Println(args ...any) {
	all := append([]any{"[" + l.component + "]"}, args...)
	l.std.Println(all...)
}

// Fatalf logs and terminates the process. Reserved for genuinely
// unrecoverable startup errors (bad listener, corrupt map on boot) -
// never for per-game invariant violations, which must abort only the
// offending game actor.
func (l *Logger) Fatalf(format string, args ...any) {
	l.std.Fatalf("["+l.component+"] "+format, args...)
}
