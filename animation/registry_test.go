package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walkDef() AnimationDefinition {
	return AnimationDefinition{
		Name:          "walk",
		FrameCount:    4,
		FrameWidth:    32,
		FrameHeight:   32,
		FrameDuration: 100 * time.Millisecond,
		DefaultLoop:   true,
	}
}

func newWalkRegistry(t *testing.T, extra ...AnimationDefinition) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Register(append([]AnimationDefinition{walkDef()}, extra...)))
	return reg
}

func TestRegistryRejectsInvalidDefinitions(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(d *AnimationDefinition)
	}{
		{"empty_name", func(d *AnimationDefinition) { d.Name = "" }},
		{"zero_frames", func(d *AnimationDefinition) { d.FrameCount = 0 }},
		{"negative_frames", func(d *AnimationDefinition) { d.FrameCount = -2 }},
		{"zero_width", func(d *AnimationDefinition) { d.FrameWidth = 0 }},
		{"zero_height", func(d *AnimationDefinition) { d.FrameHeight = 0 }},
		{"zero_duration", func(d *AnimationDefinition) { d.FrameDuration = 0 }},
		{"negative_duration", func(d *AnimationDefinition) { d.FrameDuration = -time.Millisecond }},
		{"event_past_end", func(d *AnimationDefinition) { d.Events = map[int][]string{4: {"step"}} }},
		{"event_negative", func(d *AnimationDefinition) { d.Events = map[int][]string{-1: {"step"}} }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			reg := newWalkRegistry(t)
			bad := walkDef()
			bad.Name = "bad"
			c.mutate(&bad)

			err := reg.Register([]AnimationDefinition{walkDef(), bad})
			require.ErrorIs(t, err, ErrInvalidConfig)

			// the previous table survives a rejected registration
			assert.Equal(t, []string{"walk"}, reg.Names())
		})
	}
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register([]AnimationDefinition{walkDef(), walkDef()})
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryGet(t *testing.T) {
	reg := newWalkRegistry(t)

	def, err := reg.Get("walk")
	require.NoError(t, err)
	assert.Equal(t, walkDef(), def)

	for _, name := range []string{"Walk", "wal", "walk ", ""} {
		_, err := reg.Get(name)
		assert.ErrorIs(t, err, ErrAnimationNotFound, "name %q", name)
	}
}

func TestRegistryNamesKeepInsertionOrder(t *testing.T) {
	defs := []AnimationDefinition{walkDef(), walkDef(), walkDef()}
	defs[0].Name = "zeta"
	defs[1].Name = "alpha"
	defs[2].Name = "mid"

	reg := NewRegistry()
	require.NoError(t, reg.Register(defs))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, reg.Names())

	first, ok := reg.First()
	require.True(t, ok)
	assert.Equal(t, "zeta", first)

	next, _ := reg.Next("alpha")
	assert.Equal(t, "mid", next)
	next, _ = reg.Next("mid")
	assert.Equal(t, "zeta", next)
	next, _ = reg.Next("unknown")
	assert.Equal(t, "zeta", next)

	names := reg.Names()
	names[0] = "mutated"
	assert.Equal(t, "zeta", reg.Names()[0])
}

func TestRegistryReplacesWholeTable(t *testing.T) {
	reg := newWalkRegistry(t)

	run := walkDef()
	run.Name = "run"
	require.NoError(t, reg.Register([]AnimationDefinition{run}))

	assert.Equal(t, []string{"run"}, reg.Names())
	_, err := reg.Get("walk")
	assert.ErrorIs(t, err, ErrAnimationNotFound)
}

func TestRegistryDefinitionsAreImmutable(t *testing.T) {
	def := walkDef()
	def.Events = map[int][]string{1: {"step"}}
	reg := NewRegistry()
	require.NoError(t, reg.Register([]AnimationDefinition{def}))

	def.Events[1][0] = "changed"
	got, err := reg.Get("walk")
	require.NoError(t, err)
	assert.Equal(t, []string{"step"}, got.EventsAt(1))

	got.Events[1][0] = "changed again"
	again, _ := reg.Get("walk")
	assert.Equal(t, []string{"step"}, again.EventsAt(1))
}

func TestEmptyRegistry(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.First()
	assert.False(t, ok)
	_, ok = reg.Next("walk")
	assert.False(t, ok)
	assert.Empty(t, reg.Names())
}
