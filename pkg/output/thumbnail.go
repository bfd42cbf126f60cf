package output

import (
	"context"
	"image"

	"github.com/nfnt/resize"
)

// ThumbnailPrefix is prepended to the name of every thumbnail
const ThumbnailPrefix = "thumb_"

// ThumbnailSink writes each frame to Next and a downscaled copy named
// ThumbnailPrefix+name alongside it
type ThumbnailSink struct {
	Next     Sink
	MaxWidth uint
}

// NewThumbnailSink wraps next, producing thumbnails at most maxWidth pixels wide
func NewThumbnailSink(next Sink, maxWidth uint) *ThumbnailSink {
	return &ThumbnailSink{Next: next, MaxWidth: maxWidth}
}

// Thumbnail scales img down to MaxWidth keeping the aspect ratio.
// Images already narrower than MaxWidth are returned unchanged.
func (s *ThumbnailSink) Thumbnail(img image.Image) image.Image {
	if s.MaxWidth == 0 || uint(img.Bounds().Dx()) <= s.MaxWidth {
		return img
	}
	// A zero height lets resize preserve the aspect ratio
	return resize.Resize(s.MaxWidth, 0, img, resize.Bilinear)
}

// WriteFrame writes the full frame followed by its thumbnail
func (s *ThumbnailSink) WriteFrame(ctx context.Context, name string, img image.Image) error {
	if err := s.Next.WriteFrame(ctx, name, img); err != nil {
		return err
	}
	return s.Next.WriteFrame(ctx, ThumbnailPrefix+name, s.Thumbnail(img))
}
