package animation

import (
	"fmt"
	"sync"
	"time"
)

// DefaultFrameDuration is used when a definition omits its speed.
const DefaultFrameDuration = 200 * time.Millisecond

// AnimationDefinition describes one named animation within an atlas. Frames
// are packed row-major, left-to-right then top-to-bottom, without gutters.
type AnimationDefinition struct {
	Name          string
	FrameCount    int
	FrameWidth    int
	FrameHeight   int
	FrameDuration time.Duration
	DefaultLoop   bool
	// Events maps a frame index to the event names fired when it is entered.
	Events map[int][]string
}

// Validate checks that every field the sequencer relies on is positive.
func (d AnimationDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: empty animation name", ErrInvalidConfig)
	}
	if d.FrameCount <= 0 {
		return fmt.Errorf("%w: %q: frame count %d", ErrInvalidConfig, d.Name, d.FrameCount)
	}
	if d.FrameWidth <= 0 || d.FrameHeight <= 0 {
		return fmt.Errorf("%w: %q: frame size %dx%d", ErrInvalidConfig, d.Name, d.FrameWidth, d.FrameHeight)
	}
	if d.FrameDuration <= 0 {
		return fmt.Errorf("%w: %q: frame duration %s", ErrInvalidConfig, d.Name, d.FrameDuration)
	}
	for frame := range d.Events {
		if frame < 0 || frame >= d.FrameCount {
			return fmt.Errorf("%w: %q: event on frame %d outside [0,%d)", ErrInvalidConfig, d.Name, frame, d.FrameCount)
		}
	}
	return nil
}

// EventsAt returns the event names bound to frame.
func (d AnimationDefinition) EventsAt(frame int) []string {
	if d.Events == nil {
		return nil
	}
	return d.Events[frame]
}

func (d AnimationDefinition) clone() AnimationDefinition {
	if d.Events == nil {
		return d
	}
	events := make(map[int][]string, len(d.Events))
	for frame, names := range d.Events {
		events[frame] = append([]string(nil), names...)
	}
	d.Events = events
	return d
}

// Registry stores animation definitions by name and remembers the order in
// which they were registered. It may be shared by any number of sequencers.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]AnimationDefinition
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]AnimationDefinition)}
}

// Register replaces the whole table with defs. The table is validated first
// and left untouched if any definition is rejected.
func (r *Registry) Register(defs []AnimationDefinition) error {
	next := make(map[string]AnimationDefinition, len(defs))
	order := make([]string, 0, len(defs))
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return err
		}
		if _, dup := next[d.Name]; dup {
			return fmt.Errorf("%w: duplicate animation %q", ErrInvalidConfig, d.Name)
		}
		next[d.Name] = d.clone()
		order = append(order, d.Name)
	}

	r.mu.Lock()
	r.defs = next
	r.order = order
	r.mu.Unlock()
	return nil
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (AnimationDefinition, error) {
	r.mu.RLock()
	d, ok := r.defs[name]
	r.mu.RUnlock()
	if !ok {
		return AnimationDefinition{}, fmt.Errorf("%w: %q", ErrAnimationNotFound, name)
	}
	return d.clone(), nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// First returns the first registered name.
func (r *Registry) First() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return "", false
	}
	return r.order[0], true
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Next returns the name registered after name, wrapping to the first one.
// An unknown name yields the first registered name.
func (r *Registry) Next(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return "", false
	}
	for i, n := range r.order {
		if n == name {
			return r.order[(i+1)%len(r.order)], true
		}
	}
	return r.order[0], true
}
