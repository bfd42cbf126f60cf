package glview

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-phong-raytracer/pkg/viewer"
)

type vec3Uniform struct {
	name  string
	value mgl32.Vec3
}

type floatUniform struct {
	name  string
	value float32
}

// lightUniforms flattens the frame's lights into the fragment shader's uniform names
func lightUniforms(l viewer.Lights) ([]vec3Uniform, []floatUniform) {
	vecs := []vec3Uniform{
		{"camPosition", l.CameraPosition},

		{"dLight.direction", l.Dir.Direction},
		{"dLight.ambient", l.Dir.Ambient},
		{"dLight.diffuse", l.Dir.Diffuse},
		{"dLight.specular", l.Dir.Specular},

		{"pLight.position", l.Point.Position},
		{"pLight.ambient", l.Point.Ambient},
		{"pLight.diffuse", l.Point.Diffuse},
		{"pLight.specular", l.Point.Specular},

		{"spotLight.position", l.Spot.Position},
		{"spotLight.direction", l.Spot.Direction},
		{"spotLight.ambient", l.Spot.Ambient},
		{"spotLight.diffuse", l.Spot.Diffuse},
		{"spotLight.specular", l.Spot.Specular},

		{"mat.diffuse", l.Material.Diffuse},
		{"mat.specular", l.Material.Specular},
	}
	floats := []floatUniform{
		{"pLight.constant", l.Point.Constant},
		{"pLight.linear", l.Point.Linear},
		{"pLight.quadratic", l.Point.Quadratic},

		{"spotLight.cutOff", l.Spot.CutOff},
		{"spotLight.outerCutOff", l.Spot.OuterCutOff},
		{"spotLight.constant", l.Spot.Constant},
		{"spotLight.linear", l.Spot.Linear},
		{"spotLight.quadratic", l.Spot.Quadratic},

		{"mat.shininess", l.Material.Shininess},
	}
	return vecs, floats
}
