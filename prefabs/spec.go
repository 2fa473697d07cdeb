package prefabs

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/milk9111/spriteanim/animation"
	"gopkg.in/yaml.v3"
)

// DefaultSpeed is the per-frame time, in seconds, used when speed is omitted.
const DefaultSpeed = 0.2

// Config is an animation table as written on disk. JSON documents are read
// with the YAML decoder, which keeps the animations in document order.
type Config struct {
	SpriteSheet string         `yaml:"spriteSheet"`
	Animations  AnimationTable `yaml:"animations"`
}

// AnimationSpec is one entry of the "animations" object. Pointer fields are
// optional and fall back to their defaults.
type AnimationSpec struct {
	Name   string              `yaml:"-"`
	Frames int                 `yaml:"frames"`
	Width  int                 `yaml:"width"`
	Height int                 `yaml:"height"`
	Speed  *float64            `yaml:"speed"`
	Loop   *bool               `yaml:"loop"`
	Events map[string][]string `yaml:"events"`
}

// AnimationTable is the ordered content of the "animations" object.
type AnimationTable []AnimationSpec

func (t *AnimationTable) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("animations must be an object, line %d", value.Line)
	}

	seen := make(map[string]struct{}, len(value.Content)/2)
	out := make(AnimationTable, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, body := value.Content[i], value.Content[i+1]
		if _, dup := seen[key.Value]; dup {
			return fmt.Errorf("animation %q defined twice, line %d", key.Value, key.Line)
		}
		seen[key.Value] = struct{}{}

		var spec AnimationSpec
		if err := body.Decode(&spec); err != nil {
			return fmt.Errorf("animation %q: %w", key.Value, err)
		}
		spec.Name = key.Value
		out = append(out, spec)
	}
	*t = out
	return nil
}

// Definition converts the spec, applying defaults and the seconds to
// duration conversion.
func (s AnimationSpec) Definition() (animation.AnimationDefinition, error) {
	speed := DefaultSpeed
	if s.Speed != nil {
		speed = *s.Speed
	}
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return animation.AnimationDefinition{}, fmt.Errorf("%w: %q: speed %v", animation.ErrInvalidConfig, s.Name, speed)
	}
	loop := true
	if s.Loop != nil {
		loop = *s.Loop
	}

	def := animation.AnimationDefinition{
		Name:          s.Name,
		FrameCount:    s.Frames,
		FrameWidth:    s.Width,
		FrameHeight:   s.Height,
		FrameDuration: time.Duration(math.Round(speed * float64(time.Second))),
		DefaultLoop:   loop,
	}

	if len(s.Events) > 0 {
		def.Events = make(map[int][]string, len(s.Events))
		for key, names := range s.Events {
			frame, err := strconv.Atoi(key)
			if err != nil {
				return animation.AnimationDefinition{}, fmt.Errorf("%w: %q: event frame %q is not an integer", animation.ErrInvalidConfig, s.Name, key)
			}
			def.Events[frame] = append(def.Events[frame], names...)
		}
	}

	if err := def.Validate(); err != nil {
		return animation.AnimationDefinition{}, err
	}
	return def, nil
}

// Definitions converts every animation of c, in document order.
func (c *Config) Definitions() ([]animation.AnimationDefinition, error) {
	defs := make([]animation.AnimationDefinition, 0, len(c.Animations))
	for _, spec := range c.Animations {
		def, err := spec.Definition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Apply registers the animations of c, replacing the registry's table.
func (c *Config) Apply(reg *animation.Registry) error {
	defs, err := c.Definitions()
	if err != nil {
		return err
	}
	return reg.Register(defs)
}

// Decode parses a JSON (or YAML) animation table.
func Decode(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", animation.ErrInvalidConfig, err)
	}
	if len(cfg.Animations) == 0 {
		return nil, fmt.Errorf("%w: no animations", animation.ErrInvalidConfig)
	}
	return &cfg, nil
}

// LoadConfig loads and decodes the animation table stored in filename.
func LoadConfig(filename string) (*Config, error) {
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: decode %s: %w", filename, err)
	}
	return cfg, nil
}
