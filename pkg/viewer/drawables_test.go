package viewer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func findDrawable(t *testing.T, ds []Drawable, name string) Drawable {
	t.Helper()
	for _, d := range ds {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("Expected drawable %q", name)
	return Drawable{}
}

func TestDrawables_Inventory(t *testing.T) {
	ds := Drawables(0)
	tests := []struct {
		name    string
		r       DrawRange
		unit    int32
		visible bool
	}{
		{"room", RoomRange, RoomTextureUnit, false},
		{"table", CubeRange, StoneTextureUnit, true},
		{"bottom cube", CubeRange, StoneTextureUnit, true},
		{"top cube", CubeRange, StoneTextureUnit, true},
		{"octahedron", OctahedronRange, StoneTextureUnit, true},
		{"pyramid", PyramidRange, StoneTextureUnit, true},
		{"floor", FloorRange, RoomTextureUnit, true},
	}

	if len(ds) != len(tests) {
		t.Fatalf("Expected %d drawables, got %d", len(tests), len(ds))
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := findDrawable(t, ds, tt.name)
			if d.Range != tt.r {
				t.Errorf("Expected range %+v, got %+v", tt.r, d.Range)
			}
			if d.TextureUnit != tt.unit {
				t.Errorf("Expected texture unit %d, got %d", tt.unit, d.TextureUnit)
			}
			if d.Visible != tt.visible {
				t.Errorf("Expected visible=%v, got %v", tt.visible, d.Visible)
			}
		})
	}
}

func TestDrawables_Transforms(t *testing.T) {
	tests := []struct {
		name     string
		drawable string
		time     float32
		point    mgl32.Vec3
		expected mgl32.Vec3
	}{
		{"table corner", "table", 0, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{0.875, -1.125, -0.5}},
		{"top cube centre", "top cube", 0, mgl32.Vec3{}, mgl32.Vec3{0, -1.25, 1}},
		{"bottom cube is turned", "bottom cube", 0, mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{0.1767767, -1.75, 0.8232233}},
		{"octahedron centre at start", "octahedron", 0, mgl32.Vec3{}, mgl32.Vec3{0.75, 1, 1}},
		{"pyramid centre at start", "pyramid", 0, mgl32.Vec3{}, mgl32.Vec3{0, -0.75, -1}},
		{"floor corner", "floor", 0, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{12, -1.995, 12}},
		{"floor is static", "floor", 7, mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{12, -1.995, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := findDrawable(t, Drawables(tt.time), tt.drawable).Model
			got := model.Mul4x1(tt.point.Vec4(1)).Vec3()
			if !vecNear(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDrawables_PyramidBobs(t *testing.T) {
	centre := func(time float32) mgl32.Vec3 {
		return findDrawable(t, Drawables(time), "pyramid").Model.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	}

	top := centre(math.Pi / 2)
	if !vecNear(top, mgl32.Vec3{0, -0.5, -1}) {
		t.Errorf("Expected pyramid at its highest point, got %v", top)
	}
	bottom := centre(3 * math.Pi / 2)
	if !vecNear(bottom, mgl32.Vec3{0, -1, -1}) {
		t.Errorf("Expected pyramid at its lowest point, got %v", bottom)
	}
}

func TestLighting(t *testing.T) {
	cam := NewFlyCamera()
	cam.Position = mgl32.Vec3{1, 0, 2}
	l := Lighting(0, cam)

	if !vecNear(l.Point.Diffuse, mgl32.Vec3{0.2, 0.2, 1}) {
		t.Errorf("Expected point diffuse (0.2, 0.2, 1) at t=0, got %v", l.Point.Diffuse)
	}
	if !vecNear(l.Spot.Position, cam.Position) || !vecNear(l.CameraPosition, cam.Position) {
		t.Errorf("Expected spot light and camera position at %v, got %v and %v", cam.Position, l.Spot.Position, l.CameraPosition)
	}
	if !vecNear(l.Spot.Direction, cam.Direction()) {
		t.Errorf("Expected spot light along %v, got %v", cam.Direction(), l.Spot.Direction)
	}
	if l.Spot.CutOff <= l.Spot.OuterCutOff {
		t.Errorf("Expected inner cone cosine above outer, got %v <= %v", l.Spot.CutOff, l.Spot.OuterCutOff)
	}
	if math.Abs(float64(l.Spot.CutOff)-math.Cos(8*math.Pi/180)) > tolerance {
		t.Errorf("Expected cut off cos(8), got %v", l.Spot.CutOff)
	}
	if l.Material.Shininess != 16 {
		t.Errorf("Expected shininess 16, got %v", l.Material.Shininess)
	}

	later := Lighting(math.Pi, cam)
	if vecNear(later.Point.Diffuse, l.Point.Diffuse) {
		t.Errorf("Expected point light colour to change over time")
	}
}

func dirOnly(direction mgl32.Vec3, ambient, diffuse float32) Lights {
	return Lights{
		CameraPosition: mgl32.Vec3{0, 5, 0},
		Dir: DirLight{
			Direction: direction,
			Ambient:   mgl32.Vec3{ambient, ambient, ambient},
			Diffuse:   mgl32.Vec3{diffuse, diffuse, diffuse},
		},
		Point: PointLight{Constant: 1},
		Spot:  SpotLight{Direction: mgl32.Vec3{0, -1, 0}, CutOff: 0.9, OuterCutOff: 0.8, Constant: 1},
		Material: Material{
			Specular:  mgl32.Vec3{1, 1, 1},
			Shininess: 16,
		},
	}
}

func TestShade(t *testing.T) {
	up := mgl32.Vec3{0, 1, 0}
	grey := mgl32.Vec3{0.5, 0.5, 0.5}

	tests := []struct {
		name     string
		lights   Lights
		normal   mgl32.Vec3
		albedo   mgl32.Vec3
		expected float32
	}{
		{"overhead light", dirOnly(mgl32.Vec3{0, -1, 0}, 0, 1), up, grey, 0.5},
		{"grazing light", dirOnly(mgl32.Vec3{1, 0, 0}, 0, 1), up, grey, 0},
		{"back lit", dirOnly(mgl32.Vec3{0, 1, 0}, 0.2, 1), up, grey, 0.1},
		{"ambient and diffuse", dirOnly(mgl32.Vec3{0, -1, 0}, 0.2, 0.5), up, grey, 0.35},
		{"clamped", dirOnly(mgl32.Vec3{0, -1, 0}, 5, 5), up, grey, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shade(tt.lights, mgl32.Vec3{}, tt.normal, tt.albedo)
			for i := range got {
				if math.Abs(float64(got[i]-tt.expected)) > tolerance {
					t.Errorf("Expected %v in every channel, got %v", tt.expected, got)
					break
				}
			}
		})
	}
}

func TestShade_SpotCone(t *testing.T) {
	l := dirOnly(mgl32.Vec3{0, -1, 0}, 0, 0)
	l.Spot = SpotLight{
		Position:    mgl32.Vec3{0, 1, 0},
		Direction:   mgl32.Vec3{0, -1, 0},
		Diffuse:     mgl32.Vec3{1, 1, 1},
		CutOff:      float32(math.Cos(8 * math.Pi / 180)),
		OuterCutOff: float32(math.Cos(12 * math.Pi / 180)),
		Constant:    1,
	}
	up := mgl32.Vec3{0, 1, 0}
	white := mgl32.Vec3{1, 1, 1}

	inside := Shade(l, mgl32.Vec3{}, up, white)
	if math.Abs(float64(inside[0]-1)) > tolerance {
		t.Errorf("Expected full intensity inside the cone, got %v", inside)
	}
	outside := Shade(l, mgl32.Vec3{1, 0, 0}, up, white)
	if outside[0] != 0 {
		t.Errorf("Expected no light outside the cone, got %v", outside)
	}
}
