package render

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/spriteanim/animation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writeImage(t *testing.T, name string, w, h int, encode func(*bytes.Buffer, image.Image) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestLoadAtlasGeometry(t *testing.T) {
	cases := []struct {
		name   string
		encode func(*bytes.Buffer, image.Image) error
	}{
		{"sheet.png", func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) }},
		{"sheet.bmp", func(b *bytes.Buffer, img image.Image) error { return bmp.Encode(b, img) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeImage(t, c.name, 128, 64, c.encode)
			g, err := LoadAtlasGeometry(path)
			require.NoError(t, err)
			assert.Equal(t, animation.AtlasGeometry{Width: 128, Height: 64}, g)
		})
	}
}

func TestLoadAtlasGeometryUnavailable(t *testing.T) {
	_, err := LoadAtlasGeometry(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrAssetUnavailable)

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = LoadAtlasGeometry(garbage)
	assert.ErrorIs(t, err, ErrAssetUnavailable)

	_, err = LoadAtlasGeometry("")
	assert.ErrorIs(t, err, ErrAssetUnavailable)

	_, err = LoadAtlas("")
	assert.ErrorIs(t, err, ErrAssetUnavailable)
}

func testDefs() []animation.AnimationDefinition {
	return []animation.AnimationDefinition{
		{Name: "idle", FrameCount: 4, FrameWidth: 32, FrameHeight: 32, FrameDuration: 100 * time.Millisecond},
		{Name: "big", FrameCount: 5, FrameWidth: 64, FrameHeight: 48, FrameDuration: 100 * time.Millisecond},
		{Name: "long", FrameCount: 30, FrameWidth: 16, FrameHeight: 16, FrameDuration: 100 * time.Millisecond},
	}
}

func TestPlaceholderGeometryFitsEveryDefinition(t *testing.T) {
	defs := testDefs()
	g := PlaceholderGeometry(defs)
	assert.Equal(t, 64*PlaceholderColumns, g.Width)

	reg := animation.NewRegistry()
	require.NoError(t, reg.Register(defs))
	assert.NoError(t, g.Validate(reg))

	for _, d := range defs {
		_, err := g.FrameRect(d, d.FrameCount-1)
		assert.NoError(t, err, d.Name)
	}
}

func TestPlaceholderImage(t *testing.T) {
	defs := testDefs()
	g := PlaceholderGeometry(defs)
	img := Placeholder(defs[0], g)
	assert.Equal(t, image.Rect(0, 0, g.Width, g.Height), img.Bounds())

	// the first cell is filled and bordered
	assert.Equal(t, placeholderBorder, img.RGBAAt(0, 0))
	assert.Equal(t, placeholderPalette[0], img.RGBAAt(30, 30))

	empty := Placeholder(animation.AnimationDefinition{}, g)
	assert.Equal(t, uint8(0), empty.RGBAAt(1, 1).A)
}

func TestSpriteOptions(t *testing.T) {
	cases := []struct {
		name         string
		scale        float64
		flipX, flipY bool
		// where the frame's top-left and bottom-right corners land
		topLeft, bottomRight [2]float64
	}{
		{"plain", 1, false, false, [2]float64{10, 20}, [2]float64{42, 52}},
		{"scaled", 2, false, false, [2]float64{10, 20}, [2]float64{74, 84}},
		{"zero_scale_is_one", 0, false, false, [2]float64{10, 20}, [2]float64{42, 52}},
		{"flip_x", 1, true, false, [2]float64{42, 20}, [2]float64{10, 52}},
		{"flip_y_scaled", 2, false, true, [2]float64{10, 84}, [2]float64{74, 20}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := &Sprite{Scale: c.scale, FlipX: c.flipX, FlipY: c.flipY}
			s.Render(animation.SourceRect{X: 64, Y: 0, Width: 32, Height: 32}, animation.Point{X: 10, Y: 20})

			op := s.Options()
			x, y := op.GeoM.Apply(0, 0)
			assert.InDelta(t, c.topLeft[0], x, 1e-9)
			assert.InDelta(t, c.topLeft[1], y, 1e-9)
			x, y = op.GeoM.Apply(32, 32)
			assert.InDelta(t, c.bottomRight[0], x, 1e-9)
			assert.InDelta(t, c.bottomRight[1], y, 1e-9)
		})
	}
}

func TestSpriteFrame(t *testing.T) {
	s := NewSprite(nil)
	_, _, ok := s.Frame()
	assert.False(t, ok)

	src := animation.SourceRect{X: 32, Width: 32, Height: 32}
	s.Render(src, animation.Point{X: 1, Y: 2})
	got, dst, ok := s.Frame()
	assert.True(t, ok)
	assert.Equal(t, src, got)
	assert.Equal(t, animation.Point{X: 1, Y: 2}, dst)

	s.Reset()
	_, _, ok = s.Frame()
	assert.False(t, ok)
}

func TestDebugLabel(t *testing.T) {
	label := DebugLabel(animation.Info{Name: "walk", Frame: 2, FrameCount: 4, Status: animation.Paused})
	assert.Equal(t, "walk (3/4) paused", label)
}
