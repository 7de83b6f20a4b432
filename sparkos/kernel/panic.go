package kernel

import (
	"sync"
	"sync/atomic"
)

// PanicInfo describes a panic recovered from a task.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// maxStackBytes bounds the stack captured for a panicking task.
const maxStackBytes = 4096

var (
	panicActive  atomic.Bool
	panicOnce    sync.Once
	panicHandler atomic.Pointer[func(PanicInfo)]
)

// InPanicMode reports whether any task has panicked.
func InPanicMode() bool {
	return panicActive.Load()
}

// SetPanicHandler installs the process-wide panic handler.
//
// The handler runs at most once, for the first panic, on the panicking task's goroutine.
// It must not panic.
func SetPanicHandler(fn func(PanicInfo)) {
	if fn == nil {
		panicHandler.Store(nil)
		return
	}
	panicHandler.Store(&fn)
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		panicActive.Store(true)
		info.Stack = captureStack()
		if fn := panicHandler.Load(); fn != nil && *fn != nil {
			(*fn)(info)
		}
	})
}
