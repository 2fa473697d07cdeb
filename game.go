package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spriteanim/animation"
	"github.com/milk9111/spriteanim/prefabs"
	"github.com/milk9111/spriteanim/render"
)

const (
	baseWidth  = 640
	baseHeight = 360
)

// placeholderKey prefixes generated atlases, which are never cached.
const placeholderKey = "placeholder:"

var background = color.RGBA{0x1a, 0x1a, 0x22, 0xff}

// Options are the preview settings taken from the command line.
type Options struct {
	Config string
	Atlas  string
	Anim   string
	Scale  float64
	FlipX  bool
	FlipY  bool
	Debug  bool
	Watch  bool
	Once   bool
}

type Game struct {
	opts Options

	reg    *animation.Registry
	seq    *animation.Sequencer
	ticks  *animation.Ticks
	clock  *animation.Clock
	events *animation.EventEmitter
	sprite *render.Sprite

	placeholder bool
	watcher     *prefabs.Watcher
	configAbs   string
	lastEvent   string
}

func NewGame(opts Options) (*Game, error) {
	g := &Game{
		opts:   opts,
		reg:    animation.NewRegistry(),
		ticks:  animation.NewTicks(),
		events: &animation.EventEmitter{},
	}
	g.seq = animation.NewSequencer(g.reg)
	g.events.Handle(func(evt animation.Event) {
		g.lastEvent = fmt.Sprintf("%s@%d: %s", evt.Animation, evt.Frame, evt.Name)
		if opts.Debug {
			log.Printf("event %s", g.lastEvent)
		}
	})

	cfg, err := prefabs.LoadConfig(opts.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(g.reg); err != nil {
		return nil, fmt.Errorf("register %s: %w", opts.Config, err)
	}

	atlas, err := g.loadAtlas(cfg)
	if err != nil {
		return nil, err
	}
	g.sprite = render.NewSprite(atlas)
	g.sprite.Scale = opts.Scale
	g.sprite.FlipX = opts.FlipX
	g.sprite.FlipY = opts.FlipY
	g.sprite.Debug = opts.Debug

	g.clock = animation.NewClock(g.seq, atlas.Geometry, g.sprite.Render, animation.WithEmitter(g.events))

	name := opts.Anim
	if name == "" {
		name, _ = g.reg.First()
	}
	if err := g.play(name); err != nil {
		return nil, err
	}

	if opts.Watch {
		g.startWatcher()
	}
	return g, nil
}

// loadAtlas resolves the atlas image: the -atlas flag, else the table's
// spriteSheet relative to the table file, else a generated placeholder.
func (g *Game) loadAtlas(cfg *prefabs.Config) (*render.Atlas, error) {
	if g.opts.Atlas != "" {
		a, err := render.LoadAtlas(g.opts.Atlas)
		if err != nil {
			return nil, err
		}
		g.placeholder = false
		g.checkGeometry(a.Geometry)
		return a, nil
	}

	if cfg.SpriteSheet != "" {
		path := cfg.SpriteSheet
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(g.opts.Config), path)
		}
		a, err := render.LoadAtlas(path)
		if err == nil {
			g.placeholder = false
			g.checkGeometry(a.Geometry)
			return a, nil
		}
		log.Printf("spritesheet %s unavailable, using placeholder: %v", path, err)
	}

	g.placeholder = true
	return g.placeholderAtlas(), nil
}

func (g *Game) placeholderAtlas() *render.Atlas {
	defs := make([]animation.AnimationDefinition, 0, g.reg.Len())
	for _, name := range g.reg.Names() {
		if def, err := g.reg.Get(name); err == nil {
			defs = append(defs, def)
		}
	}
	geom := render.PlaceholderGeometry(defs)

	current := defs[0]
	if def, ok := g.seq.Definition(); ok {
		current = def
	}
	return render.NewAtlas(placeholderKey+current.Name, render.Placeholder(current, geom))
}

// checkGeometry only logs: frames past the atlas are skipped at render time.
func (g *Game) checkGeometry(geom animation.AtlasGeometry) {
	if err := geom.Validate(g.reg); err != nil {
		log.Printf("atlas %dx%d: %v", geom.Width, geom.Height, err)
	}
}

func (g *Game) play(name string) error {
	var err error
	if g.opts.Once {
		err = g.seq.PlayLoop(name, false)
	} else {
		err = g.seq.Play(name)
	}
	if err != nil {
		return err
	}

	if g.placeholder {
		g.setAtlas(g.placeholderAtlas())
	}
	def, _ := g.seq.Definition()
	k := g.sprite.Scale
	if k <= 0 {
		k = 1
	}
	g.clock.SetOrigin(animation.Point{
		X: (baseWidth - float64(def.FrameWidth)*k) / 2,
		Y: (baseHeight - float64(def.FrameHeight)*k) / 2,
	})
	return g.ensureClock()
}

func (g *Game) setAtlas(a *render.Atlas) {
	if old := g.sprite.Atlas; old != nil && old != a && strings.HasPrefix(old.Key, placeholderKey) {
		old.Image.Deallocate()
	}
	g.sprite.Atlas = a
	g.sprite.Reset()
	g.clock.SetGeometry(a.Geometry)
}

// ensureClock reattaches the clock, which detaches itself after a stop.
func (g *Game) ensureClock() error {
	if g.clock.Running() {
		return nil
	}
	return g.clock.Start(g.ticks)
}

func (g *Game) startWatcher() {
	abs, err := filepath.Abs(g.opts.Config)
	if err != nil {
		log.Printf("watch %s: %v", g.opts.Config, err)
		return
	}
	if _, err := os.Stat(abs); err != nil {
		log.Printf("watch %s: not on disk, hot reload disabled", g.opts.Config)
		return
	}
	w, err := prefabs.NewWatcher(filepath.Dir(abs))
	if err != nil {
		log.Printf("watch %s: %v", g.opts.Config, err)
		return
	}
	g.watcher = w
	g.configAbs = abs
}

func (g *Game) reload() {
	cfg, err := prefabs.LoadConfig(g.opts.Config)
	if err == nil {
		err = cfg.Apply(g.reg)
	}
	if err != nil {
		log.Printf("reload %s: %v", g.opts.Config, err)
		return
	}
	if mod, ok := prefabs.ModTime(g.opts.Config); ok {
		log.Printf("reloaded %s (modified %s): %v", g.opts.Config, mod.Format(time.TimeOnly), g.reg.Names())
	} else {
		log.Printf("reloaded %s: %v", g.opts.Config, g.reg.Names())
	}

	if g.opts.Atlas == "" && cfg.SpriteSheet != "" && !g.placeholder {
		render.ForgetAtlas(g.sprite.Atlas.Key)
	}
	atlas, err := g.loadAtlas(cfg)
	if err != nil {
		log.Printf("reload atlas: %v", err)
		return
	}
	g.setAtlas(atlas)

	name, _ := g.seq.Name()
	if err := g.play(name); errors.Is(err, animation.ErrAnimationNotFound) {
		first, _ := g.reg.First()
		err = g.play(first)
	}
	if err != nil {
		log.Printf("reload: %v", err)
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	if err := g.watcher.PollError(); err != nil {
		log.Printf("watch: %v", err)
	}
	changed := false
	for {
		name, ok := g.watcher.Poll()
		if !ok {
			break
		}
		if abs, err := filepath.Abs(name); err == nil && abs == g.configAbs {
			changed = true
		}
	}
	if changed {
		g.reload()
	}
}

func (g *Game) handleInput() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		switch g.seq.Status() {
		case animation.Playing:
			g.seq.Pause()
		case animation.Paused:
			g.seq.Resume()
		default:
			name, _ := g.seq.Name()
			g.report(g.play(name))
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.seq.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.step(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.step(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		name, _ := g.seq.Name()
		next, _ := g.reg.Next(name)
		g.report(g.play(next))
	}
}

func (g *Game) step(delta int) {
	g.seq.Pause()
	g.report(g.seq.GotoFrame(g.seq.Frame() + delta))
	g.report(g.ensureClock())
}

func (g *Game) report(err error) {
	if err != nil {
		log.Printf("preview: %v", err)
	}
}

func (g *Game) Update() error {
	g.pollWatcher()
	g.handleInput()
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	g.ticks.Tick(time.Second / time.Duration(tps))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.sprite.Draw(screen)

	info, err := g.seq.Info()
	if err == nil {
		g.sprite.DrawDebug(screen, info)
	}

	help := "space: play/pause  s: stop  left/right: step  tab: next"
	status := render.DebugLabel(info)
	if err != nil {
		status = err.Error()
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\n%s\nlast event: %s\nFPS: %.2f", help, status, g.lastEvent, ebiten.ActualFPS()))
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close releases the file watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
