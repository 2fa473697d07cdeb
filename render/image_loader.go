package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spriteanim/animation"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrAssetUnavailable is returned when an atlas image cannot be read or
// decoded.
var ErrAssetUnavailable = errors.New("render: asset unavailable")

// Atlas is a loaded atlas image together with its pixel size.
type Atlas struct {
	Key      string
	Image    *ebiten.Image
	Geometry animation.AtlasGeometry
}

// NewAtlas wraps an already decoded image.
func NewAtlas(key string, img image.Image) *Atlas {
	b := img.Bounds()
	return &Atlas{
		Key:      key,
		Image:    ebiten.NewImageFromImage(img),
		Geometry: animation.AtlasGeometry{Width: b.Dx(), Height: b.Dy()},
	}
}

// LoadAtlasGeometry reads only the header of the image at path.
func LoadAtlasGeometry(path string) (animation.AtlasGeometry, error) {
	b, err := readAsset(path)
	if err != nil {
		return animation.AtlasGeometry{}, err
	}
	g, err := DecodeAtlasGeometry(bytes.NewReader(b))
	if err != nil {
		return animation.AtlasGeometry{}, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// DecodeAtlasGeometry reads the pixel size from an encoded png, webp or bmp
// image.
func DecodeAtlasGeometry(r io.Reader) (animation.AtlasGeometry, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return animation.AtlasGeometry{}, fmt.Errorf("%w: %v", ErrAssetUnavailable, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return animation.AtlasGeometry{}, fmt.Errorf("%w: empty image %dx%d", ErrAssetUnavailable, cfg.Width, cfg.Height)
	}
	return animation.AtlasGeometry{Width: cfg.Width, Height: cfg.Height}, nil
}

// LoadAtlas loads an atlas from the filesystem and caches it by key.
func LoadAtlas(key string) (*Atlas, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty image key", ErrAssetUnavailable)
	}
	if a := GetAtlas(key); a != nil {
		return a, nil
	}
	b, err := readAsset(key)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrAssetUnavailable, key, err)
	}
	a := NewAtlas(key, img)
	RegisterAtlas(a)
	return a, nil
}

func readAsset(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrAssetUnavailable)
	}
	tried := []string{path, filepath.Join("assets", path), filepath.Base(path)}
	var firstErr error
	for _, p := range tried {
		b, err := os.ReadFile(p)
		if err == nil {
			return b, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrAssetUnavailable, firstErr)
}
