package driver

import (
	"sync"

	"github.com/pebblescript/pebble/lang/vm"
)

type tick int

const (
	tickUpdate tick = iota
	tickDraw
)

// Driver owns one VM and drives it against wall-clock update/draw ticks
// (spec §5). The two tick sources run on their own goroutines (via
// Scheduler); Driver serializes the resulting VM calls onto a single pump
// goroutine so the VM — which is not safe for concurrent use — only ever
// sees one caller, matching spec's "VM itself remains synchronous".
type Driver struct {
	VM     *vm.VM
	Config Config

	sched        Scheduler
	updateHandle Handle
	drawHandle   Handle

	events   chan tick
	done     chan struct{}
	pumpOnce sync.Once
}

// New returns a Driver for v using cfg's tick intervals and batch size,
// scheduling with the stdlib-backed Ticker.
func New(v *vm.VM, cfg Config) *Driver {
	return NewWithScheduler(v, cfg, NewTicker())
}

// NewWithScheduler is New with an injected Scheduler, for tests and for a
// real host substituting its own frame clock.
func NewWithScheduler(v *vm.VM, cfg Config, sched Scheduler) *Driver {
	return &Driver{
		VM:     v,
		Config: cfg,
		sched:  sched,
		events: make(chan tick, 64),
		done:   make(chan struct{}),
	}
}

// Run starts the update/draw ticks and, the first time it's called,
// the serializing pump goroutine, then transitions the VM to Running. A
// Pause/Run cycle re-schedules ticks without starting a second pump, so
// the VM only ever has one caller across its whole lifetime. It returns
// immediately; the VM keeps executing on its own goroutine until Stop or
// Pause.
func (d *Driver) Run() {
	d.VM.Run()
	d.pumpOnce.Do(func() { go d.pump() })
	d.updateHandle = d.sched.Schedule(d.Config.UpdateInterval, func() {
		select {
		case d.events <- tickUpdate:
		case <-d.done:
		}
	})
	d.drawHandle = d.sched.Schedule(d.Config.DrawInterval, func() {
		select {
		case d.events <- tickDraw:
		case <-d.done:
		}
	})
}

func (d *Driver) pump() {
	for {
		select {
		case <-d.done:
			return
		case k := <-d.events:
			switch k {
			case tickUpdate:
				d.VM.SetNeedsUpdate()
				d.VM.MultiStep(d.Config.MultiStepBatch)
			case tickDraw:
				d.VM.SetNeedsDraw()
			}
		}
	}
}

// Pause cancels the scheduled ticks without resetting VM state, so Run
// can resume execution from exactly where it left off.
func (d *Driver) Pause() {
	d.sched.Cancel(d.updateHandle)
	d.sched.Cancel(d.drawHandle)
	d.VM.Pause()
}

// Stop cancels the scheduled ticks, stops the pump goroutine, and resets
// the VM (spec §5's stop() semantics).
func (d *Driver) Stop() {
	d.sched.Cancel(d.updateHandle)
	d.sched.Cancel(d.drawHandle)
	close(d.done)
	d.VM.Stop()
}
