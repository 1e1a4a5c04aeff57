// Package logger is a small leveled logger with named debug facilities.
// Debug output for a facility is off unless the facility is listed in the
// VBFTRACE environment variable ("all" for every facility) or switched on
// with SetDebug or Enable.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
)

const (
	defaultFlags = log.Ldate | log.Ltime
	debugFlags   = log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile
)

type Logger interface {
	Debugf(format string, vals ...any)
	Infof(format string, vals ...any)
	Warnf(format string, vals ...any)
	Warnln(vals ...any)
	ShouldDebug(facility string) bool
	SetDebug(facility string, enabled bool)
	Facilities() map[string]string
	NewFacility(facility, description string) Logger
}

// DefaultLogger writes to standard error.
var DefaultLogger Logger = newLogger(os.Stderr, os.Getenv("VBFTRACE"))

type logger struct {
	mut        sync.Mutex
	out        *log.Logger
	traced     []string
	facilities map[string]string
	debugging  map[string]bool
}

func newLogger(w io.Writer, trace string) *logger {
	traced := strings.FieldsFunc(trace, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	return &logger{
		out:        log.New(w, "", defaultFlags),
		traced:     traced,
		facilities: make(map[string]string),
		debugging:  make(map[string]bool),
	}
}

func (l *logger) write(prefix, msg string) {
	l.mut.Lock()
	defer l.mut.Unlock()
	// depth 3 attributes the line to the caller of Debugf/Infof/...
	_ = l.out.Output(3, prefix+msg)
}

func (l *logger) Debugf(format string, vals ...any) {
	l.write("DEBUG: ", fmt.Sprintf(format, vals...))
}

func (l *logger) Infof(format string, vals ...any) {
	l.write("INFO: ", fmt.Sprintf(format, vals...))
}

func (l *logger) Warnf(format string, vals ...any) {
	l.write("WARNING: ", fmt.Sprintf(format, vals...))
}

func (l *logger) Warnln(vals ...any) {
	l.write("WARNING: ", fmt.Sprintln(vals...))
}

func (l *logger) ShouldDebug(facility string) bool {
	l.mut.Lock()
	defer l.mut.Unlock()
	return l.debugging[facility]
}

// SetDebug switches debug output for a facility. Source locations are added
// to every line while any facility is debugging.
func (l *logger) SetDebug(facility string, enabled bool) {
	l.mut.Lock()
	defer l.mut.Unlock()
	if enabled {
		l.debugging[facility] = true
	} else {
		delete(l.debugging, facility)
	}
	if len(l.debugging) > 0 {
		l.out.SetFlags(debugFlags)
	} else {
		l.out.SetFlags(defaultFlags)
	}
}

// Facilities returns the registered facility names and descriptions.
func (l *logger) Facilities() map[string]string {
	l.mut.Lock()
	defer l.mut.Unlock()
	res := make(map[string]string, len(l.facilities))
	for name, descr := range l.facilities {
		res[name] = descr
	}
	return res
}

// NewFacility registers a facility and returns a logger whose Debugf is
// silent unless the facility is being debugged.
func (l *logger) NewFacility(facility, description string) Logger {
	l.mut.Lock()
	l.facilities[facility] = description
	l.mut.Unlock()
	if slices.Contains(l.traced, "all") || slices.Contains(l.traced, facility) {
		l.SetDebug(facility, true)
	}
	return &facilityLogger{logger: l, facility: facility}
}

type facilityLogger struct {
	*logger
	facility string
}

func (l *facilityLogger) Debugf(format string, vals ...any) {
	if !l.ShouldDebug(l.facility) {
		return
	}
	l.write("DEBUG: ", fmt.Sprintf(format, vals...))
}

// Enable turns on debugging for each named facility; "all" enables every
// facility registered so far.
func Enable(l Logger, facilities []string) {
	for _, f := range facilities {
		if f != "all" {
			l.SetDebug(f, true)
			continue
		}
		for name := range l.Facilities() {
			l.SetDebug(name, true)
		}
	}
}
