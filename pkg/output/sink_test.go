package output

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// memorySink records every frame it receives
type memorySink struct {
	frames map[string]image.Image
	order  []string
	err    error
}

func newMemorySink() *memorySink {
	return &memorySink{frames: make(map[string]image.Image)}
}

func (m *memorySink) WriteFrame(ctx context.Context, name string, img image.Image) error {
	if m.err != nil {
		return m.err
	}
	m.frames[name] = img
	m.order = append(m.order, name)
	return nil
}

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	sink := NewFileSink(dir)

	if err := sink.WriteFrame(context.Background(), "frame0.png", testImage(4, 3)); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "frame0.png"))
	if err != nil {
		t.Fatalf("Expected frame0.png to exist: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode written PNG: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("Expected 4x3 image, got %v", img.Bounds())
	}
}

func TestFileSink_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := NewFileSink(t.TempDir())
	if err := sink.WriteFrame(ctx, "frame0.png", testImage(1, 1)); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestMultiSink(t *testing.T) {
	a, b := newMemorySink(), newMemorySink()
	multi := MultiSink{a, b}

	if err := multi.WriteFrame(context.Background(), "frame1.png", testImage(2, 2)); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if _, ok := a.frames["frame1.png"]; !ok {
		t.Error("Expected first sink to receive the frame")
	}
	if _, ok := b.frames["frame1.png"]; !ok {
		t.Error("Expected second sink to receive the frame")
	}

	failing := newMemorySink()
	failing.err = errors.New("disk full")
	after := newMemorySink()
	err := MultiSink{failing, after}.WriteFrame(context.Background(), "frame2.png", testImage(2, 2))
	if err == nil || err.Error() != "disk full" {
		t.Errorf("Expected first error to be returned, got %v", err)
	}
	if len(after.order) != 0 {
		t.Error("Expected sinks after a failure to be skipped")
	}
}

func TestThumbnailSink(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		maxWidth      uint
		wantW, wantH  int
	}{
		{"downscaled", 80, 60, 40, 40, 30},
		{"already small", 20, 10, 40, 20, 10},
		{"disabled", 80, 60, 0, 80, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := newMemorySink()
			sink := NewThumbnailSink(mem, tt.maxWidth)

			if err := sink.WriteFrame(context.Background(), "frame3.png", testImage(tt.width, tt.height)); err != nil {
				t.Fatalf("WriteFrame failed: %v", err)
			}
			if len(mem.order) != 2 || mem.order[0] != "frame3.png" || mem.order[1] != "thumb_frame3.png" {
				t.Fatalf("Expected frame then thumbnail, got %v", mem.order)
			}

			thumb := mem.frames["thumb_frame3.png"].Bounds()
			if thumb.Dx() != tt.wantW || thumb.Dy() != tt.wantH {
				t.Errorf("Expected %dx%d thumbnail, got %dx%d", tt.wantW, tt.wantH, thumb.Dx(), thumb.Dy())
			}
		})
	}
}
