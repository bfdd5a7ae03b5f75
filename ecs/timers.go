package ecs

// TimerID identifies a pending deferred callback.
type TimerID uint64

type timer struct {
	id        TimerID
	remaining float64
	fn        func()
}

// Timers is a queue of single-shot callbacks fired on a later step once
// their delay has elapsed. Callbacks armed while firing wait for the next
// Advance.
type Timers struct {
	next    TimerID
	pending []timer
}

// After arms fn to run once delay seconds have been advanced.
func (t *Timers) After(delay float64, fn func()) TimerID {
	if t == nil || fn == nil {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	t.next++
	t.pending = append(t.pending, timer{id: t.next, remaining: delay, fn: fn})
	return t.next
}

// Cancel drops a pending callback. It reports whether one was dropped.
func (t *Timers) Cancel(id TimerID) bool {
	if t == nil {
		return false
	}
	for i, p := range t.pending {
		if p.id == id {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Pending returns the number of armed callbacks.
func (t *Timers) Pending() int {
	if t == nil {
		return 0
	}
	return len(t.pending)
}

// Advance counts every timer down by dt and fires the expired ones in the
// order they were armed.
func (t *Timers) Advance(dt float64) {
	if t == nil || len(t.pending) == 0 {
		return
	}
	current := t.pending
	t.pending = nil
	var due []func()
	for _, p := range current {
		p.remaining -= dt
		if p.remaining <= 0 {
			due = append(due, p.fn)
			continue
		}
		t.pending = append(t.pending, p)
	}
	for _, fn := range due {
		fn()
	}
}
