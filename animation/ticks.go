package animation

import "time"

// TickFunc receives the time elapsed since the previous tick.
type TickFunc func(dt time.Duration)

// TickSource delivers elapsed-time deltas. OnTick subscribes fn and returns a
// function that unsubscribes it; after that function returns fn is never
// called again.
type TickSource interface {
	OnTick(fn TickFunc) (cancel func())
}

type tickSub struct {
	fn    TickFunc
	alive bool
}

// Ticks is a TickSource driven by its owner calling Tick, typically once per
// game update. Subscribers run on the caller's goroutine, in the order they
// subscribed.
type Ticks struct {
	subs []*tickSub
}

// NewTicks creates a tick source with no subscribers.
func NewTicks() *Ticks {
	return &Ticks{}
}

// OnTick implements TickSource.
func (t *Ticks) OnTick(fn TickFunc) func() {
	sub := &tickSub{fn: fn, alive: fn != nil}
	t.subs = append(t.subs, sub)
	return func() { sub.alive = false }
}

// Tick delivers dt to every live subscriber. Negative deltas are delivered as
// zero. Subscriptions added during dispatch first see the next tick.
func (t *Ticks) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	subs := t.subs
	for _, sub := range subs {
		if sub.alive {
			sub.fn(dt)
		}
	}
	t.compact()
}

// Len returns the number of live subscribers.
func (t *Ticks) Len() int {
	n := 0
	for _, sub := range t.subs {
		if sub.alive {
			n++
		}
	}
	return n
}

func (t *Ticks) compact() {
	live := t.subs[:0]
	for _, sub := range t.subs {
		if sub.alive {
			live = append(live, sub)
		}
	}
	for i := len(live); i < len(t.subs); i++ {
		t.subs[i] = nil
	}
	t.subs = live
}
