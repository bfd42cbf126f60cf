package loaders

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// LoadTexture decodes a PNG or JPEG file into NRGBA pixels. With flipV the
// rows are reversed so row 0 is the bottom of the picture, as OpenGL expects.
func LoadTexture(path string, flipV bool) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", path, err)
	}
	if flipV {
		return imaging.FlipV(img), nil
	}
	return imaging.Clone(img), nil
}
