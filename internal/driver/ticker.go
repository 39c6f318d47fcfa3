package driver

import (
	"sync"
	"time"
)

// Handle identifies one scheduled recurring callback.
type Handle int

// Scheduler is the abstract "recurring callback" capability spec §9 maps
// the host's dynamic method-table scheduler onto: schedule an interval
// closure, get back a Handle that cancels it. A real host (browser,
// game loop) would implement this over its own frame clock; Ticker below
// is the stdlib time.Ticker-backed implementation used outside of a real
// host (the `run` CLI command, tests).
type Scheduler interface {
	Schedule(interval time.Duration, fn func()) Handle
	Cancel(h Handle)
}

// Ticker schedules callbacks with stdlib time.Ticker, one goroutine per
// scheduled interval. It never calls fn concurrently with itself, but two
// different scheduled intervals do run on distinct goroutines — Driver is
// responsible for serializing the resulting calls onto the VM.
type Ticker struct {
	mu      sync.Mutex
	next    Handle
	cancels map[Handle]chan struct{}
}

// NewTicker returns a ready-to-use Ticker.
func NewTicker() *Ticker {
	return &Ticker{cancels: make(map[Handle]chan struct{})}
}

// Schedule runs fn every interval until the returned Handle is canceled.
func (t *Ticker) Schedule(interval time.Duration, fn func()) Handle {
	t.mu.Lock()
	t.next++
	h := t.next
	stop := make(chan struct{})
	t.cancels[h] = stop
	t.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return h
}

// Cancel stops the callback registered under h. Canceling an unknown or
// already-canceled handle is a no-op.
func (t *Ticker) Cancel(h Handle) {
	t.mu.Lock()
	stop, ok := t.cancels[h]
	if ok {
		delete(t.cancels, h)
	}
	t.mu.Unlock()
	if ok {
		close(stop)
	}
}
