// Package log defines the logging interface used throughout the core:
// components log through this interface rather than calling fmt directly,
// so a host application can redirect or silence emulator diagnostics.
package log

import "fmt"

// Logger is implemented by anything that can receive leveled, printf-style
// log lines from the emulator core.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct{}

// New returns a Logger that writes to stdout.
func New() Logger {
	return &logger{}
}

func (l *logger) Infof(format string, args ...interface{}) {
	fmt.Printf("[INFO]\t"+format+"\n", args...)
}

func (l *logger) Warnf(format string, args ...interface{}) {
	fmt.Printf("[WARN]\t"+format+"\n", args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	fmt.Printf("[ERROR]\t"+format+"\n", args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	fmt.Printf("[DEBUG]\t"+format+"\n", args...)
}
