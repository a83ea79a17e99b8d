package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

var crashReset atomic.Pointer[func()]

// SetCrashReset registers a hook run before the crash report is printed,
// e.g. restoring the terminal after a full-screen replay
func SetCrashReset(fn func()) {
	crashReset.Store(&fn)
}

// HandleCrash runs the reset hook, prints the panic with stack trace and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn := crashReset.Load(); fn != nil {
		(*fn)()
	}

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery routed to HandleCrash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
