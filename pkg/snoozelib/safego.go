package snoozelib

import (
	"log"
	"runtime/debug"
	"sync"
)

// SafeGo runs fn in a goroutine with panic recovery, so one record's
// failure during batch wake processing cannot take down its siblings.
// If wg is non-nil, it is decremented on completion (normal or panic).
// If l is non-nil, panics are logged with stack traces.
func SafeGo(l *log.Logger, wg *sync.WaitGroup, context string, fn func()) {
	go func() {
		if wg != nil {
			defer wg.Done()
		}
		defer func() {
			if r := recover(); r != nil {
				if l != nil {
					l.Printf("PANIC [%s]: %v\n%s", context, r, debug.Stack())
				}
			}
		}()
		fn()
	}()
}
