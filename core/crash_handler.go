package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

// Finalizer restores external state (terminal, audio device) before a crash exit
type Finalizer interface {
	Fini()
}

var (
	crashMu        sync.Mutex
	crashFinalizer Finalizer
	crashExit      = osExit
	osExit         = os.Exit
)

// SetCrashFinalizer registers the collaborator cleaned up on panic, nil clears it
func SetCrashFinalizer(f Finalizer) {
	crashMu.Lock()
	defer crashMu.Unlock()
	crashFinalizer = f
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	f := crashFinalizer
	crashMu.Unlock()
	if f != nil {
		f.Fini()
	}

	// \r\n keeps the trace readable if the terminal is still in raw mode
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	crashExit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
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
