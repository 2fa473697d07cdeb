package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicksDispatchOrder(t *testing.T) {
	ticks := NewTicks()
	var order []string
	ticks.OnTick(func(time.Duration) { order = append(order, "a") })
	ticks.OnTick(func(time.Duration) { order = append(order, "b") })
	ticks.OnTick(nil)

	ticks.Tick(time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 2, ticks.Len())
}

func TestTicksClampNegative(t *testing.T) {
	ticks := NewTicks()
	var got []time.Duration
	ticks.OnTick(func(dt time.Duration) { got = append(got, dt) })

	ticks.Tick(-5 * time.Millisecond)
	ticks.Tick(5 * time.Millisecond)
	assert.Equal(t, []time.Duration{0, 5 * time.Millisecond}, got)
}

func TestTicksCancelDuringDispatch(t *testing.T) {
	ticks := NewTicks()
	var calls []string
	var cancelB func()
	ticks.OnTick(func(time.Duration) {
		calls = append(calls, "a")
		cancelB()
	})
	cancelB = ticks.OnTick(func(time.Duration) { calls = append(calls, "b") })

	ticks.Tick(time.Millisecond)
	ticks.Tick(time.Millisecond)
	assert.Equal(t, []string{"a", "a"}, calls)
	assert.Equal(t, 1, ticks.Len())
}

func TestTicksSubscribeDuringDispatch(t *testing.T) {
	ticks := NewTicks()
	late := 0
	subscribed := false
	ticks.OnTick(func(time.Duration) {
		if !subscribed {
			subscribed = true
			ticks.OnTick(func(time.Duration) { late++ })
		}
	})

	ticks.Tick(time.Millisecond)
	assert.Equal(t, 0, late)
	ticks.Tick(time.Millisecond)
	assert.Equal(t, 1, late)
}

func TestTicksCancelIsIdempotent(t *testing.T) {
	ticks := NewTicks()
	n := 0
	cancel := ticks.OnTick(func(time.Duration) { n++ })
	cancel()
	cancel()
	ticks.Tick(time.Millisecond)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, ticks.Len())
}
