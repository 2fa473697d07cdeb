package animation

import (
	"fmt"
	"image"
)

// SourceRect is a region of the atlas in pixel coordinates.
type SourceRect struct {
	X, Y          int
	Width, Height int
}

// Rectangle converts r for use with SubImage.
func (r SourceRect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// AtlasGeometry is the pixel size of a resolved atlas image.
type AtlasGeometry struct {
	Width  int
	Height int
}

// MapFrameToRect locates frameIndex in an atlas of the given width, assuming
// frames are packed row-major with no gutters. The atlas height is not
// consulted, so an index past the last row yields a rect outside the atlas.
func MapFrameToRect(frameIndex, frameWidth, frameHeight, atlasWidth int) (SourceRect, error) {
	if frameWidth <= 0 || frameHeight <= 0 {
		return SourceRect{}, fmt.Errorf("%w: frame size %dx%d", ErrInvalidGeometry, frameWidth, frameHeight)
	}
	if frameIndex < 0 {
		return SourceRect{}, fmt.Errorf("%w: frame index %d", ErrInvalidGeometry, frameIndex)
	}
	cols := atlasWidth / frameWidth
	if cols <= 0 {
		return SourceRect{}, fmt.Errorf("%w: atlas width %d narrower than frame width %d", ErrInvalidGeometry, atlasWidth, frameWidth)
	}
	col := frameIndex % cols
	row := frameIndex / cols
	return SourceRect{
		X:      col * frameWidth,
		Y:      row * frameHeight,
		Width:  frameWidth,
		Height: frameHeight,
	}, nil
}

// FrameRect maps frame of def into g and rejects rects that fall below the
// bottom of the atlas.
func (g AtlasGeometry) FrameRect(def AnimationDefinition, frame int) (SourceRect, error) {
	r, err := MapFrameToRect(frame, def.FrameWidth, def.FrameHeight, g.Width)
	if err != nil {
		return SourceRect{}, fmt.Errorf("%q frame %d: %w", def.Name, frame, err)
	}
	if r.Y+r.Height > g.Height {
		return SourceRect{}, fmt.Errorf("%q frame %d: %w: row ends at y=%d, atlas height %d",
			def.Name, frame, ErrInvalidGeometry, r.Y+r.Height, g.Height)
	}
	return r, nil
}

// Capacity returns how many whole frames of the given size fit in g.
func (g AtlasGeometry) Capacity(frameWidth, frameHeight int) int {
	if frameWidth <= 0 || frameHeight <= 0 {
		return 0
	}
	return (g.Width / frameWidth) * (g.Height / frameHeight)
}

// Validate reports the first registered definition whose frames do not fit
// in g.
func (g AtlasGeometry) Validate(reg *Registry) error {
	for _, name := range reg.Names() {
		def, err := reg.Get(name)
		if err != nil {
			return err
		}
		if c := g.Capacity(def.FrameWidth, def.FrameHeight); def.FrameCount > c {
			return fmt.Errorf("%w: %q needs %d frames of %dx%d, atlas %dx%d holds %d",
				ErrInvalidGeometry, name, def.FrameCount, def.FrameWidth, def.FrameHeight, g.Width, g.Height, c)
		}
	}
	return nil
}
