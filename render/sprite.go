package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/spriteanim/animation"
	"golang.org/x/image/colornames"
)

// DebugColor outlines the frame when debug drawing is on.
var DebugColor color.Color = colornames.Lime

// Sprite presents the frames chosen by an animation clock. Render is the
// clock's callback and only records the frame; Draw blits it every display
// frame.
type Sprite struct {
	Atlas *Atlas
	Scale float64
	FlipX bool
	FlipY bool
	Debug bool

	src animation.SourceRect
	dst animation.Point
	ok  bool
}

// NewSprite creates a sprite drawing from atlas at scale 1.
func NewSprite(atlas *Atlas) *Sprite {
	return &Sprite{Atlas: atlas, Scale: 1}
}

// Render implements animation.RenderFunc.
func (s *Sprite) Render(src animation.SourceRect, dst animation.Point) {
	s.src, s.dst, s.ok = src, dst, true
}

// Frame returns the last rendered source rect and destination.
func (s *Sprite) Frame() (animation.SourceRect, animation.Point, bool) {
	return s.src, s.dst, s.ok
}

// Reset forgets the last frame, e.g. when the atlas is replaced.
func (s *Sprite) Reset() {
	s.ok = false
}

func (s *Sprite) scale() float64 {
	if s.Scale <= 0 {
		return 1
	}
	return s.Scale
}

// Options returns the transform placing the current frame at its
// destination. A flip mirrors the frame in place rather than around the
// destination point.
func (s *Sprite) Options() *ebiten.DrawImageOptions {
	k := s.scale()
	sx, sy := k, k
	x, y := s.dst.X, s.dst.Y
	if s.FlipX {
		sx = -k
		x += float64(s.src.Width) * k
	}
	if s.FlipY {
		sy = -k
		y += float64(s.src.Height) * k
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterNearest
	return op
}

// Draw blits the current frame onto screen.
func (s *Sprite) Draw(screen *ebiten.Image) {
	if !s.ok || s.Atlas == nil || s.Atlas.Image == nil {
		return
	}
	sub := s.Atlas.Image.SubImage(s.src.Rectangle()).(*ebiten.Image)
	screen.DrawImage(sub, s.Options())
}

// DrawDebug outlines the frame and labels it with the playback position.
func (s *Sprite) DrawDebug(screen *ebiten.Image, info animation.Info) {
	if !s.Debug || !s.ok {
		return
	}
	k := s.scale()
	w, h := float64(s.src.Width)*k, float64(s.src.Height)*k
	vector.StrokeRect(screen, float32(s.dst.X), float32(s.dst.Y), float32(w), float32(h), 2, DebugColor, false)
	ebitenutil.DebugPrintAt(screen, DebugLabel(info), int(s.dst.X), int(s.dst.Y)-16)
}

// DebugLabel formats info as "name (frame/total) status".
func DebugLabel(info animation.Info) string {
	return fmt.Sprintf("%s (%d/%d) %s", info.Name, info.Frame+1, info.FrameCount, info.Status)
}
