package animation

import (
	"log"
	"time"
)

// DefaultMaxDelta caps a single tick so a long stall does not replay many
// frames at once.
const DefaultMaxDelta = 250 * time.Millisecond

// Point is a destination position on the drawing surface.
type Point struct {
	X, Y float64
}

// RenderFunc draws src of the atlas at dst. The core performs no drawing.
type RenderFunc func(src SourceRect, dst Point)

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithMaxDelta caps every delta delivered to the sequencer. Zero disables
// the cap.
func WithMaxDelta(d time.Duration) ClockOption {
	return func(c *Clock) { c.maxDelta = d }
}

// WithOrigin sets the destination passed to the render callback.
func WithOrigin(p Point) ClockOption {
	return func(c *Clock) { c.origin = p }
}

// WithErrorHandler receives geometry errors for frames that were skipped.
func WithErrorHandler(fn func(error)) ClockOption {
	return func(c *Clock) { c.onError = fn }
}

// WithEmitter fires the active definition's frame events through e.
func WithEmitter(e *EventEmitter) ClockOption {
	return func(c *Clock) { c.emitter = e }
}

// Clock feeds ticks from a TickSource into a Sequencer and calls the render
// callback whenever the displayed frame changes. It runs on the tick source's
// goroutine.
type Clock struct {
	seq      *Sequencer
	geom     AtlasGeometry
	render   RenderFunc
	origin   Point
	maxDelta time.Duration
	onError  func(error)
	emitter  *EventEmitter

	running bool
	cancel  func()

	drawn     bool
	drawnName string
	drawnAt   int
}

// NewClock creates a stopped clock for seq over an atlas of geometry geom.
func NewClock(seq *Sequencer, geom AtlasGeometry, render RenderFunc, opts ...ClockOption) *Clock {
	c := &Clock{
		seq:      seq,
		geom:     geom,
		render:   render,
		maxDelta: DefaultMaxDelta,
		onError: func(err error) {
			log.Printf("animation: skipped frame: %v", err)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start subscribes to src. Ticks flow until Cancel is called or the clock
// observes that the sequencer was stopped, in which case frame 0 is rendered
// once more and the clock detaches itself.
func (c *Clock) Start(src TickSource) error {
	if c.running {
		return ErrClockRunning
	}
	c.running = true
	c.drawn = false
	c.cancel = src.OnTick(c.tick)
	return nil
}

// Cancel stops delivery of ticks. It is safe to call more than once and from
// inside a render callback.
func (c *Clock) Cancel() {
	if !c.running {
		return
	}
	c.running = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Running reports whether the clock is subscribed to a tick source.
func (c *Clock) Running() bool { return c.running }

// SetOrigin moves the render destination; the next tick redraws.
func (c *Clock) SetOrigin(p Point) {
	c.origin = p
	c.drawn = false
}

// SetGeometry replaces the atlas geometry, e.g. after a reload; the next tick
// redraws.
func (c *Clock) SetGeometry(g AtlasGeometry) {
	c.geom = g
	c.drawn = false
}

func (c *Clock) tick(dt time.Duration) {
	if !c.running {
		return
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}

	if c.seq.Status() == Stopped {
		c.draw(false)
		c.Cancel()
		return
	}

	advanced := c.seq.Advance(dt)
	if advanced && c.emitter != nil {
		def, _ := c.seq.Definition()
		c.emitter.EmitFrames(def, c.seq.Entered())
	}
	c.draw(advanced)
}

// draw renders the current frame when it differs from the last one drawn, or
// unconditionally when force is set.
func (c *Clock) draw(force bool) {
	def, ok := c.seq.Definition()
	if !ok {
		return
	}
	frame := c.seq.Frame()
	if !force && c.drawn && c.drawnName == def.Name && c.drawnAt == frame {
		return
	}
	c.drawn, c.drawnName, c.drawnAt = true, def.Name, frame

	rect, err := c.geom.FrameRect(def, frame)
	if err != nil {
		if c.onError != nil {
			c.onError(err)
		}
		return
	}
	if c.render != nil {
		c.render(rect, c.origin)
	}
}
