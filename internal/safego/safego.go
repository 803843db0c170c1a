package safego

import (
	"runtime/debug"
	"sync/atomic"

	"github.com/andyrewlee/dragzone/internal/logging"
)

// PanicHandler receives panic details from recovered goroutines.
type PanicHandler func(name string, recovered any, stack []byte)

var panicHandler atomic.Pointer[PanicHandler]

// SetPanicHandler registers a global handler for recovered panics. Passing
// nil removes it.
func SetPanicHandler(handler PanicHandler) {
	if handler == nil {
		panicHandler.Store(nil)
		return
	}
	panicHandler.Store(&handler)
}

// Run executes fn and converts panics into logged errors.
// Runtime-fatal errors (e.g. concurrent map writes) are not recoverable.
func Run(name string, fn func()) {
	defer recoverPanic(name)
	fn()
}

// Go runs fn in a new goroutine with panic recovery.
func Go(name string, fn func()) {
	go Run(name, fn)
}

func recoverPanic(name string) {
	r := recover()
	if r == nil {
		return
	}
	name = label(name)
	stack := debug.Stack()
	logging.Error("panic in %s: %v\n%s", name, r, stack)
	if h := panicHandler.Load(); h != nil {
		func() {
			defer func() { _ = recover() }()
			(*h)(name, r, stack)
		}()
	}
}

func label(name string) string {
	if name == "" {
		return "goroutine"
	}
	return name
}
