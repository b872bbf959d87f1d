// Package goroutine runs fire-and-forget work off the request path.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"sezzlegate/internal/shared/logger"
)

// SafeGo runs fn in its own goroutine. keyvals describe the work (for example
// the order uuid) and are attached to the log line if fn panics. The returned
// channel is closed once fn has returned or its panic has been logged.
func SafeGo(log logger.Interface, name string, fn func(), keyvals ...any) <-chan struct{} {
	done := make(chan struct{})
	taskLog := log.With(append([]any{"goroutine", name}, keyvals...)...)

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				taskLog.Errorw("background task panicked",
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
	return done
}
