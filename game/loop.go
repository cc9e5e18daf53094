package game

import (
	"time"
)

// Loop is a cancellable repeating task. It is not safe for concurrent use;
// the owner serializes Start and Stop, normally under the same lock the tick
// function takes. Ticks that fall due while fn is still running are dropped,
// not queued.
type Loop struct {
	period time.Duration
	stop   chan struct{}
}

func NewLoop(period time.Duration) *Loop {
	return &Loop{period: period}
}

// Start cancels any running task and starts a new one. fn receives the stop
// channel of its own task so it can tell, once it holds the owner's lock,
// whether it was cancelled while waiting.
func (l *Loop) Start(fn func(stop <-chan struct{})) {
	l.Stop()

	stop := make(chan struct{})
	l.stop = stop
	go l.run(stop, fn)
}

// Stop cancels the running task; it is a no-op when nothing runs
func (l *Loop) Stop() {
	if l.stop == nil {
		return
	}
	close(l.stop)
	l.stop = nil
}

func (l *Loop) Running() bool {
	return l.stop != nil
}

func (l *Loop) run(stop chan struct{}, fn func(stop <-chan struct{})) {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fn(stop)
		}
	}
}

// Stopped reports whether stop has been closed, without blocking
func Stopped(stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}
