package pill

import (
	"sync"
	"time"
)

// Debounce returns a trailing-edge debounced wrapper around fn: rapid calls
// collapse into a single invocation delay after the last call.
func Debounce(delay time.Duration, fn func()) func() {
	var mu sync.Mutex
	var timer *time.Timer
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, fn)
	}
}

// DebounceValue is Debounce for callbacks taking an argument; the invocation
// that fires receives the argument of the last call in the burst.
func DebounceValue[T any](delay time.Duration, fn func(T)) func(T) {
	var mu sync.Mutex
	var timer *time.Timer
	return func(value T) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() { fn(value) })
	}
}
