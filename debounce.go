package waterfall

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of calls into one trailing call to fn.
// A burst longer than maxWait still fires once every maxWait.
type debouncer struct {
	wait    time.Duration
	maxWait time.Duration
	fn      func()

	mu         sync.Mutex
	timer      *time.Timer
	burstStart time.Time
	seq        uint64
	stopped    bool
}

func newDebouncer(wait, maxWait time.Duration, fn func()) *debouncer {
	return &debouncer{wait: wait, maxWait: maxWait, fn: fn}
}

// Trigger records a call and (re)schedules the trailing fire.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	now := time.Now()
	if d.timer == nil {
		d.burstStart = now
	} else {
		d.timer.Stop()
	}

	delay := d.wait
	if d.maxWait > 0 {
		remaining := d.burstStart.Add(d.maxWait).Sub(now)
		delay = max(0, min(delay, remaining))
	}

	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(delay, func() { d.fire(seq) })
}

// fire runs fn unless a later Trigger superseded this timer.
func (d *debouncer) fire(seq uint64) {
	d.mu.Lock()
	if d.stopped || seq != d.seq {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Stop cancels any pending fire. Later Triggers are ignored.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
