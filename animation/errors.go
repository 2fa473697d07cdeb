package animation

import "errors"

var (
	// ErrInvalidConfig is returned when a definition table is rejected at
	// registration. Nothing from a rejected table is applied.
	ErrInvalidConfig = errors.New("animation: invalid config")

	// ErrAnimationNotFound is returned for names absent from the registry.
	ErrAnimationNotFound = errors.New("animation: not found")

	// ErrInvalidGeometry is returned when a frame cannot be located inside the
	// atlas, e.g. the atlas is narrower than one frame.
	ErrInvalidGeometry = errors.New("animation: invalid geometry")

	// ErrNoActiveAnimation is returned by queries made before any Play.
	ErrNoActiveAnimation = errors.New("animation: no active animation")

	// ErrClockRunning is returned by Clock.Start when already subscribed.
	ErrClockRunning = errors.New("animation: clock already running")
)
