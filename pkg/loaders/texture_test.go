package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.png")

	// Top row red, bottom row blue
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	img.Set(1, 1, color.RGBA{B: 255, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return path
}

func TestLoadTexture(t *testing.T) {
	path := writeTestPNG(t)

	tests := []struct {
		name    string
		flipV   bool
		wantTop color.NRGBA
	}{
		{"as stored", false, color.NRGBA{R: 255, A: 255}},
		{"flipped", true, color.NRGBA{B: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := LoadTexture(path, tt.flipV)
			if err != nil {
				t.Fatalf("LoadTexture failed: %v", err)
			}
			if tex.Bounds().Dx() != 2 || tex.Bounds().Dy() != 2 {
				t.Fatalf("Expected 2x2 texture, got %v", tex.Bounds())
			}
			if got := tex.NRGBAAt(0, 0); got != tt.wantTop {
				t.Errorf("Expected top-left %v, got %v", tt.wantTop, got)
			}
		})
	}
}

func TestLoadTexture_Missing(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png"), true); err == nil {
		t.Error("Expected error for missing texture")
	}
}
