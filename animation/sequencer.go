package animation

import (
	"fmt"
	"time"
)

// Status is the playback state of a Sequencer.
type Status int

const (
	Stopped Status = iota
	Playing
	Paused
	Finished
)

func (s Status) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Info is a snapshot of the active animation.
type Info struct {
	Name          string
	Frame         int
	FrameCount    int
	FrameDuration time.Duration
	Status        Status
	Loop          bool
}

// Sequencer decides which frame of which animation is current. It keeps a
// copy of the definition taken at Play, so re-registering the table never
// disturbs an animation already playing. A Sequencer belongs to one entity and
// is not safe for concurrent use.
type Sequencer struct {
	reg *Registry

	def     AnimationDefinition
	active  bool
	frame   int
	elapsed time.Duration
	status  Status
	loop    bool

	entered []int
}

// NewSequencer creates a stopped sequencer reading definitions from reg.
func NewSequencer(reg *Registry) *Sequencer {
	return &Sequencer{reg: reg}
}

// Play starts name from its first frame, looping as its definition says.
func (s *Sequencer) Play(name string) error {
	def, err := s.reg.Get(name)
	if err != nil {
		return err
	}
	s.start(def, def.DefaultLoop)
	return nil
}

// PlayLoop starts name from its first frame with an explicit loop override.
// On error the playback state is left as it was.
func (s *Sequencer) PlayLoop(name string, loop bool) error {
	def, err := s.reg.Get(name)
	if err != nil {
		return err
	}
	s.start(def, loop)
	return nil
}

func (s *Sequencer) start(def AnimationDefinition, loop bool) {
	s.def = def
	s.active = true
	s.frame = 0
	s.elapsed = 0
	s.loop = loop
	s.status = Playing
	s.entered = s.entered[:0]
}

// Pause suspends a playing animation. Other states are unaffected.
func (s *Sequencer) Pause() {
	if s.status == Playing {
		s.status = Paused
	}
}

// Resume continues a paused animation where it left off.
func (s *Sequencer) Resume() {
	if s.status == Paused {
		s.status = Playing
	}
}

// Stop rewinds to frame 0. The active animation is kept so it can still be
// rendered.
func (s *Sequencer) Stop() {
	s.status = Stopped
	s.frame = 0
	s.elapsed = 0
	s.entered = s.entered[:0]
}

// GotoFrame jumps to index, clamped into the active animation. Leaving the
// last frame of a finished animation pauses it, since finished always means
// resting on the last frame.
func (s *Sequencer) GotoFrame(index int) error {
	if !s.active {
		return ErrNoActiveAnimation
	}
	if index < 0 {
		index = 0
	}
	if last := s.def.FrameCount - 1; index > last {
		index = last
	}
	s.frame = index
	s.elapsed = 0
	if s.status == Finished && index != s.def.FrameCount-1 {
		s.status = Paused
	}
	return nil
}

// Advance moves the clock forward by dt and reports whether any new frame
// was entered. Every elapsed frame duration crosses one frame boundary. A
// looping animation wraps to frame 0 and keeps consuming time; a non-looping
// one rests on its last frame, becomes Finished and drops the remainder.
func (s *Sequencer) Advance(dt time.Duration) bool {
	s.entered = s.entered[:0]
	if s.status != Playing || dt <= 0 {
		return false
	}

	d := s.def.FrameDuration
	s.elapsed += dt
	for s.elapsed >= d {
		s.elapsed -= d
		next := s.frame + 1
		if next >= s.def.FrameCount {
			if !s.loop {
				s.frame = s.def.FrameCount - 1
				s.elapsed = 0
				s.status = Finished
				break
			}
			next = 0
		}
		s.frame = next
		s.entered = append(s.entered, next)
	}
	return len(s.entered) > 0
}

// Entered returns the frames entered by the last Advance, in order. The
// slice is reused by the next call.
func (s *Sequencer) Entered() []int {
	return s.entered
}

// Name returns the active animation name.
func (s *Sequencer) Name() (string, bool) {
	if !s.active {
		return "", false
	}
	return s.def.Name, true
}

// Definition returns the definition captured by the last Play.
func (s *Sequencer) Definition() (AnimationDefinition, bool) {
	return s.def, s.active
}

// Frame returns the current frame index, 0 when nothing is active.
func (s *Sequencer) Frame() int { return s.frame }

// FrameCount returns the frame count of the active animation, 0 when nothing
// is active.
func (s *Sequencer) FrameCount() int {
	if !s.active {
		return 0
	}
	return s.def.FrameCount
}

// Elapsed returns the time accumulated towards the next frame.
func (s *Sequencer) Elapsed() time.Duration { return s.elapsed }

// Status returns the playback state.
func (s *Sequencer) Status() Status { return s.status }

// Loop reports the loop override of the last Play.
func (s *Sequencer) Loop() bool { return s.loop }

// Info returns a snapshot of the active animation.
func (s *Sequencer) Info() (Info, error) {
	if !s.active {
		return Info{}, ErrNoActiveAnimation
	}
	return Info{
		Name:          s.def.Name,
		Frame:         s.frame,
		FrameCount:    s.def.FrameCount,
		FrameDuration: s.def.FrameDuration,
		Status:        s.status,
		Loop:          s.loop,
	}, nil
}
