package frames

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/animation"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
)

const bounceScene = `
8 6
0 4 12   0 4 0   0 1 0
45 1
0
1
sphereBounce 0 0 0 2   0.1 0.1 0.1   1 1 1   0 0 0   1
1
0 0 -1 0   0 0 0   1 1 1   0 0 0   1 0 0
`

type recordingSink struct {
	names  []string
	images []image.Image
	err    error
	cancel context.CancelFunc // called after the first frame when set
}

func (r *recordingSink) WriteFrame(ctx context.Context, name string, img image.Image) error {
	if r.err != nil {
		return r.err
	}
	r.names = append(r.names, name)
	r.images = append(r.images, img)
	if r.cancel != nil {
		r.cancel()
	}
	return nil
}

func loadBounceScene(t *testing.T) *loaders.SceneFile {
	t.Helper()
	sf, err := loaders.ParseSceneFile(strings.NewReader(bounceScene))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}
	return sf
}

func TestFrameName(t *testing.T) {
	if got := FrameName(12); got != "frame12.png" {
		t.Errorf("Expected frame12.png, got %s", got)
	}
}

func TestSequenceRun(t *testing.T) {
	sink := &recordingSink{}
	seq := &Sequence{
		Source: loadBounceScene(t),
		Frames: 3,
		Sink:   sink,
	}

	result, err := seq.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	expected := []string{"frame0.png", "frame1.png", "frame2.png"}
	if len(sink.names) != len(expected) {
		t.Fatalf("Expected %d frames, got %v", len(expected), sink.names)
	}
	for i, name := range expected {
		if sink.names[i] != name {
			t.Errorf("Frame %d: expected %s, got %s", i, name, sink.names[i])
		}
		if b := sink.images[i].Bounds(); b.Dx() != 8 || b.Dy() != 6 {
			t.Errorf("Frame %d: expected 8x6, got %v", i, b)
		}
	}

	if result.Frames != 3 {
		t.Errorf("Expected 3 frames in result, got %d", result.Frames)
	}
	if result.Stats.PrimaryRays != 3*8*6 {
		t.Errorf("Expected %d primary rays, got %d", 3*8*6, result.Stats.PrimaryRays)
	}
}

func TestSequenceFrameCount(t *testing.T) {
	seq := &Sequence{}
	if seq.FrameCount() != animation.DefaultFrameCount {
		t.Errorf("Expected %d frames by default, got %d", animation.DefaultFrameCount, seq.FrameCount())
	}
	seq.Frames = 4
	if seq.FrameCount() != 4 {
		t.Errorf("Expected 4 frames, got %d", seq.FrameCount())
	}
}

func TestSequenceRenderFrame_BounceMovesSphere(t *testing.T) {
	seq := &Sequence{Source: loadBounceScene(t)}

	// The camera looks at y=4; the sphere starts at y=8 and reaches y=4 on frame 4
	high, _, err := seq.RenderFrame(context.Background(), 0)
	if err != nil {
		t.Fatalf("RenderFrame(0) failed: %v", err)
	}
	centred, _, err := seq.RenderFrame(context.Background(), 4)
	if err != nil {
		t.Fatalf("RenderFrame(4) failed: %v", err)
	}

	if r, _, _ := high.At(3, 0); r == 0 {
		t.Error("frame 0: expected sphere in the top row")
	}
	for y := 3; y < 6; y++ {
		for x := 0; x < 8; x++ {
			if r, g, b := high.At(x, y); r != 0 || g != 0 || b != 0 {
				t.Errorf("frame 0: expected empty lower half, pixel (%d,%d) is (%d,%d,%d)", x, y, r, g, b)
			}
		}
	}

	if r, _, _ := centred.At(3, 3); r == 0 {
		t.Error("frame 4: expected sphere at the image centre")
	}
	if r, _, _ := centred.At(3, 0); r != 0 {
		t.Error("frame 4: expected top row to be empty")
	}
}

func TestSequenceRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sink := &recordingSink{cancel: cancel}
	seq := &Sequence{Source: loadBounceScene(t), Frames: 5, Sink: sink}

	result, err := seq.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if result.Frames != 1 || len(sink.names) != 1 {
		t.Errorf("Expected exactly one frame before cancellation, got %d", result.Frames)
	}
}

func TestSequenceRun_Errors(t *testing.T) {
	bad, err := loaders.ParseSceneFile(strings.NewReader("8 6 0 0 0"))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}

	tests := []struct {
		name    string
		seq     *Sequence
		wantErr error
	}{
		{"no source", &Sequence{Sink: &recordingSink{}}, nil},
		{"no sink", &Sequence{Source: loadBounceScene(t)}, nil},
		{"bad scene", &Sequence{Source: bad, Sink: &recordingSink{}}, loaders.ErrUnexpectedEnd},
		{"sink failure", &Sequence{Source: loadBounceScene(t), Sink: &recordingSink{err: errors.New("full")}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.seq.Run(context.Background())
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

const singleSphereScene = `
# Scene: Single Sphere
21 21
0 0 0   0 0 -1   0 1 0
45 1
0
1
sphere 0 0 -5 1   0 0 0   1 1 1   0 0 0   1
1
0 0 -1 0   0 0 0   1 1 1   0 0 0   1 0 0
`

func TestRenderFrame_SceneFileToPixels(t *testing.T) {
	sf, err := loaders.ParseSceneFile(strings.NewReader(singleSphereScene))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}

	sink := &recordingSink{}
	seq := &Sequence{Source: sf, Frames: 1, Sink: sink}
	if _, err := seq.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(sink.images) != 1 {
		t.Fatalf("Expected 1 frame, got %d", len(sink.images))
	}
	img := sink.images[0]

	if r, g, b, _ := img.At(10, 10).RGBA(); r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("Expected white centre pixel, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}

	corners := [][2]int{{0, 0}, {20, 0}, {0, 20}, {20, 20}}
	for _, c := range corners {
		if r, g, b, _ := img.At(c[0], c[1]).RGBA(); r != 0 || g != 0 || b != 0 {
			t.Errorf("Expected black corner (%d,%d), got (%d,%d,%d)", c[0], c[1], r>>8, g>>8, b>>8)
		}
	}
}

func TestRenderFrame_RejectsOversizedScene(t *testing.T) {
	oversized := strings.Replace(singleSphereScene, "21 21", "4611686018427387904 1", 1)
	sf, err := loaders.ParseSceneFile(strings.NewReader(oversized))
	if err != nil {
		t.Fatalf("ParseSceneFile failed: %v", err)
	}

	seq := &Sequence{Source: sf, Frames: 1, Sink: &recordingSink{}}
	img, _, err := seq.RenderFrame(context.Background(), 0)
	if err == nil {
		t.Fatal("Expected error for oversized image")
	}
	if img != nil {
		t.Error("Expected no image on error")
	}
}
