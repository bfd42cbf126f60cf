package glview

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-phong-raytracer/pkg/viewer"
)

func TestLightUniforms_MatchShader(t *testing.T) {
	cam := viewer.NewFlyCamera()
	vecs, floats := lightUniforms(viewer.Lighting(1, cam))

	names := make([]string, 0, len(vecs)+len(floats))
	for _, u := range vecs {
		names = append(names, u.name)
	}
	for _, u := range floats {
		names = append(names, u.name)
	}

	for _, name := range names {
		field := name
		if i := strings.IndexByte(name, '.'); i >= 0 {
			field = name[i+1:]
		}
		if !strings.Contains(fragmentShaderSource, field) {
			t.Errorf("Expected fragment shader to declare %s", name)
		}
	}
	if len(names) != 25 {
		t.Errorf("Expected 25 light uniforms, got %d", len(names))
	}
}

func TestLightUniforms_Values(t *testing.T) {
	cam := viewer.NewFlyCamera()
	cam.Position = mgl32.Vec3{1, 2, 3}
	vecs, floats := lightUniforms(viewer.Lighting(0, cam))

	lookupVec := func(name string) mgl32.Vec3 {
		for _, u := range vecs {
			if u.name == name {
				return u.value
			}
		}
		t.Fatalf("Expected uniform %s", name)
		return mgl32.Vec3{}
	}
	lookupFloat := func(name string) float32 {
		for _, u := range floats {
			if u.name == name {
				return u.value
			}
		}
		t.Fatalf("Expected uniform %s", name)
		return 0
	}

	if got := lookupVec("spotLight.position"); got != cam.Position {
		t.Errorf("Expected spot light at camera %v, got %v", cam.Position, got)
	}
	if got := lookupVec("dLight.direction"); got != (mgl32.Vec3{-1.2, -1, -2.3}) {
		t.Errorf("Expected directional light (-1.2, -1, -2.3), got %v", got)
	}
	if got := lookupFloat("pLight.quadratic"); got != 1.8 {
		t.Errorf("Expected point quadratic 1.8, got %v", got)
	}
	if got := lookupFloat("mat.shininess"); got != 16 {
		t.Errorf("Expected shininess 16, got %v", got)
	}
}

func TestShaderSources(t *testing.T) {
	for _, src := range []string{vertexShaderSource, fragmentShaderSource} {
		if !strings.Contains(src, "#version 330 core") {
			t.Errorf("Expected GLSL 330 core source")
		}
	}
	for _, attr := range []string{"location = 0", "location = 1", "location = 2", "location = 3"} {
		if !strings.Contains(vertexShaderSource, attr) {
			t.Errorf("Expected vertex attribute %s", attr)
		}
	}
}
