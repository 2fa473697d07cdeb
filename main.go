package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteanim/prefabs"
)

func main() {
	var opts Options
	flag.StringVar(&opts.Config, "config", prefabs.DefaultConfig, "animation table (json or yaml); embedded tables are used when not on disk")
	flag.StringVar(&opts.Atlas, "atlas", "", "atlas image, overrides the table's spriteSheet")
	flag.StringVar(&opts.Anim, "anim", "", "animation to play first (default: first in the table)")
	flag.Float64Var(&opts.Scale, "scale", 4, "draw scale")
	flag.BoolVar(&opts.FlipX, "flipx", false, "mirror horizontally")
	flag.BoolVar(&opts.FlipY, "flipy", false, "mirror vertically")
	flag.BoolVar(&opts.Debug, "debug", false, "outline the frame and log frame events")
	flag.BoolVar(&opts.Watch, "watch", false, "reload the table when it changes on disk")
	flag.BoolVar(&opts.Once, "once", false, "play animations once instead of looping")
	flag.Parse()

	game, err := NewGame(opts)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle("spriteanim")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
