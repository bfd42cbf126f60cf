package geometry

import "github.com/df07/go-phong-raytracer/pkg/core"

// Material holds the Phong reflection coefficients of a surface
type Material struct {
	Ambient   core.Vec3
	Diffuse   core.Vec3
	Specular  core.Vec3
	Shininess float64
}

// NewMaterial creates a new Phong material
func NewMaterial(ambient, diffuse, specular core.Vec3, shininess float64) Material {
	return Material{
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
	}
}
