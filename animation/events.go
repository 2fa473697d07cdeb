package animation

// Event is fired when an animation enters a frame that has events bound.
type Event struct {
	Animation string
	Frame     int
	Name      string
}

// EventHandler handles animation frame events.
type EventHandler func(evt Event)

// EventEmitter dispatches frame events to handlers.
type EventEmitter struct {
	Handlers []EventHandler
}

// Handle appends h to the emitter's handlers.
func (e *EventEmitter) Handle(h EventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends evt to all handlers.
func (e *EventEmitter) Emit(evt Event) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}

// EmitFrames fires the events def binds to each of frames, in order.
func (e *EventEmitter) EmitFrames(def AnimationDefinition, frames []int) {
	if e == nil || len(def.Events) == 0 {
		return
	}
	for _, f := range frames {
		for _, name := range def.EventsAt(f) {
			e.Emit(Event{Animation: def.Name, Frame: f, Name: name})
		}
	}
}
