package app

import (
	"context"
	"os"
	"os/signal"
)

// WatchExitSignals calls onSignal once when the process is asked to stop.
// The watcher ends when ctx is cancelled.
func WatchExitSignals(ctx context.Context, onSignal func(os.Signal)) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, exitSignals()...)
	go func() {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			onSignal(sig)
		case <-ctx.Done():
		}
	}()
}
