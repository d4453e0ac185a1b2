package chordbind

import (
	"sync"
	"time"
)

// Sink receives the effects produced by a Driver once they are resolved.
// It is called with the driver's internal lock released, so a Sink may
// safely call back into the Driver, or into its Engine (e.g. to register
// new bindings).
type Sink[Payload any] func(Effect[Payload])

// Driver owns the flush timer that Engine itself deliberately does not
// (SPEC_FULL.md §5: the engine is single-threaded and starts no
// goroutines of its own). It wraps an *Engine, arming a timer whenever a
// KeyDown leaves input pending, and calling Flush when that timer fires
// without having been superseded by further input.
//
// This mirrors the timing behavior of the teacher's Input.Dispatch, but
// keeps the timer's goroutine outside of the matching engine so the core
// package stays synchronous and trivially testable.
type Driver[Payload, Context any] struct {
	mu      sync.Mutex
	engine  *Engine[Payload, Context]
	timeout time.Duration
	timer   *time.Timer
	sink    Sink[Payload]
}

// NewDriver wraps engine with a flush timer of the given timeout. Every
// effect produced, whether by direct KeyDown resolution or by a
// timer-triggered Flush, is delivered to sink.
func NewDriver[Payload, Context any](engine *Engine[Payload, Context], timeout time.Duration, sink Sink[Payload]) *Driver[Payload, Context] {
	return &Driver[Payload, Context]{engine: engine, timeout: timeout, sink: sink}
}

// NewDriverWithOptions wraps engine using opts.FlushTimeout, typically
// loaded via LoadEngineOptions alongside NewEngineWithOptions so a single
// config file tunes both the engine's remap depth and the driver's flush
// delay.
func NewDriverWithOptions[Payload, Context any](engine *Engine[Payload, Context], opts EngineOptions, sink Sink[Payload]) *Driver[Payload, Context] {
	timeout := opts.FlushTimeout
	if timeout <= 0 {
		timeout = DefaultEngineOptions().FlushTimeout
	}
	return NewDriver(engine, timeout, sink)
}

// KeyDown feeds key through the wrapped engine. If input remains pending
// afterward, a flush timer is (re)armed; otherwise any previously armed
// timer is canceled.
func (d *Driver[Payload, Context]) KeyDown(ctx Context, key KeyEvent) {
	d.mu.Lock()
	d.stopTimerLocked()
	effects := d.engine.KeyDown(ctx, key)
	d.rearmLocked(ctx)
	d.mu.Unlock()

	d.emit(effects)
}

// Flush forces immediate resolution, as KeyDown's armed timer would on
// expiry. Canceling any pending timer first.
func (d *Driver[Payload, Context]) Flush(ctx Context) {
	d.mu.Lock()
	d.stopTimerLocked()
	effects := d.engine.Flush(ctx)
	d.mu.Unlock()

	d.emit(effects)
}

// Stop cancels any armed timer without flushing. Useful on shutdown.
func (d *Driver[Payload, Context]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopTimerLocked()
}

func (d *Driver[Payload, Context]) stopTimerLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// rearmLocked starts a flush timer when the engine still has pending,
// unresolved keys buffered. It must be called with d.mu held.
func (d *Driver[Payload, Context]) rearmLocked(ctx Context) {
	if len(d.engine.Pending()) == 0 {
		return
	}
	d.timer = time.AfterFunc(d.timeout, func() {
		d.Flush(ctx)
	})
}

func (d *Driver[Payload, Context]) emit(effects []Effect[Payload]) {
	if d.sink == nil {
		return
	}
	for _, e := range effects {
		d.sink(e)
	}
}
