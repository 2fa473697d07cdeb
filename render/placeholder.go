package render

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/milk9111/spriteanim/animation"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PlaceholderColumns is the column count of generated atlases.
const PlaceholderColumns = 8

var placeholderPalette = []color.RGBA{
	colornames.Steelblue,
	colornames.Indianred,
	colornames.Seagreen,
	colornames.Goldenrod,
	colornames.Mediumpurple,
	colornames.Darkcyan,
}

var (
	placeholderBorder = colornames.Lightgray
	placeholderText   = colornames.White
)

// PlaceholderGeometry returns an atlas size large enough for every
// definition, PlaceholderColumns frames of the widest definition across.
func PlaceholderGeometry(defs []animation.AnimationDefinition) animation.AtlasGeometry {
	maxW := 1
	for _, d := range defs {
		maxW = max(maxW, d.FrameWidth)
	}
	g := animation.AtlasGeometry{Width: maxW * PlaceholderColumns, Height: 1}
	for _, d := range defs {
		if d.FrameWidth <= 0 || d.FrameHeight <= 0 {
			continue
		}
		cols := g.Width / d.FrameWidth
		rows := (d.FrameCount + cols - 1) / cols
		g.Height = max(g.Height, rows*d.FrameHeight)
	}
	return g
}

// Placeholder paints a numbered grid in def's frame size over an atlas of
// geometry g, so a table can be previewed without art.
func Placeholder(def animation.AnimationDefinition, g animation.AtlasGeometry) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	if def.FrameWidth <= 0 || def.FrameHeight <= 0 {
		return img
	}

	cols := g.Width / def.FrameWidth
	rows := g.Height / def.FrameHeight
	face := basicfont.Face7x13
	for i := 0; i < cols*rows; i++ {
		r, err := animation.MapFrameToRect(i, def.FrameWidth, def.FrameHeight, g.Width)
		if err != nil {
			break
		}
		cell := r.Rectangle()
		fill := placeholderPalette[i%len(placeholderPalette)]
		if i >= def.FrameCount {
			fill = colornames.Dimgray
		}
		draw.Draw(img, cell, &image.Uniform{fill}, image.Point{}, draw.Src)
		strokeCell(img, cell, placeholderBorder)

		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(placeholderText),
			Face: face,
			Dot:  fixed.P(cell.Min.X+3, cell.Min.Y+face.Ascent+2),
		}
		d.DrawString(strconv.Itoa(i))
	}
	return img
}

func strokeCell(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}
