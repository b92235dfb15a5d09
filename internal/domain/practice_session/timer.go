package practicesession

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultPollInterval is how often a Timer checks the deadline.
const DefaultPollInterval = 250 * time.Millisecond

// Deadline is what a Timer watches.
type Deadline interface {
	TimeRemaining() time.Duration
	ForceFinish()
	Finished() bool
}

// Timer polls a Deadline and force-finishes it once time runs out. It stops
// on expiry, when the target finishes on its own, or on Stop/ctx cancel.
type Timer struct {
	target   Deadline
	interval time.Duration
	onTick   func(remaining time.Duration)
	onExpire func()

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
	expired atomic.Bool
}

type TimerOption func(*Timer)

// OnTick is called with the remaining time on every poll.
func OnTick(fn func(remaining time.Duration)) TimerOption {
	return func(t *Timer) { t.onTick = fn }
}

// OnExpire is called once, after the target was force-finished.
func OnExpire(fn func()) TimerOption {
	return func(t *Timer) { t.onExpire = fn }
}

func NewTimer(target Deadline, interval time.Duration, opts ...TimerOption) *Timer {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	t := &Timer{
		target:   target,
		interval: interval,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start polls once synchronously, so a target whose deadline already passed
// is finished before Start returns, then keeps polling in a background
// goroutine. Calling Start more than once, or after Stop, does nothing.
func (t *Timer) Start(ctx context.Context) {
	t.mu.Lock()
	if t.started || t.stopped {
		t.mu.Unlock()
		return
	}
	t.started = true
	ctx, t.cancel = context.WithCancel(ctx)
	cancel := t.cancel
	t.mu.Unlock()

	if t.poll() {
		cancel()
		close(t.done)
		return
	}
	go t.run(ctx)
}

func (t *Timer) run(ctx context.Context) {
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if t.poll() {
				return
			}
		}
	}
}

// poll reports whether polling should stop.
func (t *Timer) poll() bool {
	if t.target.Finished() {
		return true
	}
	remaining := t.target.TimeRemaining()
	if t.onTick != nil {
		t.onTick(remaining)
	}
	if remaining > 0 {
		return false
	}

	t.target.ForceFinish()
	t.expired.Store(true)
	if t.onExpire != nil {
		t.onExpire()
	}
	return true
}

// Stop cancels polling. Safe to call repeatedly and before Start.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started && !t.stopped {
		close(t.done)
	}
	t.stopped = true
	if t.cancel != nil {
		t.cancel()
	}
}

// Done is closed once the timer has stopped polling.
func (t *Timer) Done() <-chan struct{} {
	return t.done
}

// Expired reports whether the timer force-finished its target.
func (t *Timer) Expired() bool {
	return t.expired.Load()
}
