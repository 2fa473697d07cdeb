// Command spsa plays an animation table without a window and prints the
// frame and source rect chosen on every tick.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/milk9111/spriteanim/animation"
	"github.com/milk9111/spriteanim/prefabs"
	"github.com/milk9111/spriteanim/render"
)

type traceOptions struct {
	config   string
	atlas    string
	width    int
	height   int
	anim     string
	tick     time.Duration
	duration time.Duration
	once     bool
	all      bool
}

func main() {
	var opts traceOptions
	flag.StringVar(&opts.config, "config", prefabs.DefaultConfig, "animation table")
	flag.StringVar(&opts.atlas, "atlas", "", "atlas image to read the size from")
	flag.IntVar(&opts.width, "w", 0, "atlas width when no image is given")
	flag.IntVar(&opts.height, "h", 0, "atlas height when no image is given")
	flag.StringVar(&opts.anim, "anim", "", "animation to trace (default: first)")
	flag.DurationVar(&opts.tick, "tick", time.Second/60, "time per tick")
	flag.DurationVar(&opts.duration, "for", time.Second, "total time to trace")
	flag.BoolVar(&opts.once, "once", false, "play once instead of looping")
	flag.BoolVar(&opts.all, "all", false, "print every tick, not only frame changes")
	flag.Parse()

	if err := trace(os.Stdout, opts); err != nil {
		log.Fatal(err)
	}
}

func trace(out io.Writer, opts traceOptions) error {
	if opts.tick <= 0 {
		return fmt.Errorf("tick must be positive, got %s", opts.tick)
	}

	cfg, err := prefabs.LoadConfig(opts.config)
	if err != nil {
		return fmt.Errorf("%w (embedded tables: %v)", err, prefabs.Embedded())
	}
	reg := animation.NewRegistry()
	if err := cfg.Apply(reg); err != nil {
		return err
	}

	geom, err := atlasGeometry(opts, cfg, reg)
	if err != nil {
		return err
	}
	if err := geom.Validate(reg); err != nil {
		log.Printf("spsa: %v", err)
	}

	name := opts.anim
	if name == "" {
		name, _ = reg.First()
	}
	seq := animation.NewSequencer(reg)
	if opts.once {
		err = seq.PlayLoop(name, false)
	} else {
		err = seq.Play(name)
	}
	if err != nil {
		return fmt.Errorf("%w (have %v)", err, reg.Names())
	}

	var elapsed time.Duration
	events := &animation.EventEmitter{}
	events.Handle(func(evt animation.Event) {
		fmt.Fprintf(out, "%8s  event %s on frame %d\n", elapsed, evt.Name, evt.Frame)
	})

	ticks := animation.NewTicks()
	clock := animation.NewClock(seq, geom, func(src animation.SourceRect, _ animation.Point) {
		fmt.Fprintf(out, "%8s  %-10s frame %2d  rect {x:%d y:%d w:%d h:%d}  %s\n",
			elapsed, name, seq.Frame(), src.X, src.Y, src.Width, src.Height, seq.Status())
	}, animation.WithEmitter(events), animation.WithErrorHandler(func(err error) {
		fmt.Fprintf(out, "%8s  skipped: %v\n", elapsed, err)
	}))
	if err := clock.Start(ticks); err != nil {
		return err
	}
	defer clock.Cancel()

	for elapsed < opts.duration {
		elapsed += opts.tick
		ticks.Tick(opts.tick)
		if opts.all {
			fmt.Fprintf(out, "%8s  tick frame %d elapsed %s\n", elapsed, seq.Frame(), seq.Elapsed())
		}
		if seq.Status() == animation.Finished {
			fmt.Fprintf(out, "%8s  finished on frame %d\n", elapsed, seq.Frame())
			break
		}
	}
	return nil
}

// atlasGeometry picks the atlas size from -atlas, then -w/-h, then the
// table's spriteSheet, and finally a generated placeholder layout.
func atlasGeometry(opts traceOptions, cfg *prefabs.Config, reg *animation.Registry) (animation.AtlasGeometry, error) {
	if opts.atlas != "" {
		return render.LoadAtlasGeometry(opts.atlas)
	}
	if opts.width > 0 && opts.height > 0 {
		return animation.AtlasGeometry{Width: opts.width, Height: opts.height}, nil
	}
	if cfg.SpriteSheet != "" {
		if g, err := render.LoadAtlasGeometry(cfg.SpriteSheet); err == nil {
			return g, nil
		}
	}
	defs := make([]animation.AnimationDefinition, 0, reg.Len())
	for _, name := range reg.Names() {
		def, err := reg.Get(name)
		if err != nil {
			return animation.AtlasGeometry{}, err
		}
		defs = append(defs, def)
	}
	return render.PlaceholderGeometry(defs), nil
}
