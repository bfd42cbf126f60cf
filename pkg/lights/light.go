package lights

import "github.com/df07/go-phong-raytracer/pkg/core"

// Light is a Phong light source. Position.W selects the type:
// 0 is a directional light travelling along Position.XYZ, anything else is a point light.
type Light struct {
	Position core.Vec4

	Ambient  core.Vec3
	Diffuse  core.Vec3
	Specular core.Vec3

	// Attenuation factors, ignored for directional lights
	Constant  float64
	Linear    float64
	Quadratic float64
}

// NewPointLight creates a point light at position
func NewPointLight(position, ambient, diffuse, specular core.Vec3, constant, linear, quadratic float64) Light {
	return Light{
		Position:  core.NewVec4(position.X, position.Y, position.Z, 1),
		Ambient:   ambient,
		Diffuse:   diffuse,
		Specular:  specular,
		Constant:  constant,
		Linear:    linear,
		Quadratic: quadratic,
	}
}

// NewDirectionalLight creates a light whose rays travel along direction
func NewDirectionalLight(direction, ambient, diffuse, specular core.Vec3) Light {
	return Light{
		Position: core.NewVec4(direction.X, direction.Y, direction.Z, 0),
		Ambient:  ambient,
		Diffuse:  diffuse,
		Specular: specular,
		Constant: 1,
	}
}

// IsDirectional reports whether the light has no position
func (l Light) IsDirectional() bool {
	return l.Position.W == 0
}

// DirectionFrom returns the unit vector from point toward the light
func (l Light) DirectionFrom(point core.Vec3) core.Vec3 {
	if l.IsDirectional() {
		return l.Position.XYZ().Negate().Normalize()
	}
	return l.Position.XYZ().Subtract(point).Normalize()
}

// Attenuation returns the distance falloff 1/(c + l*d + q*d^2) for point lights and 1 otherwise
func (l Light) Attenuation(point core.Vec3) float64 {
	if l.IsDirectional() {
		return 1.0
	}
	d := l.Position.XYZ().Subtract(point).Length()
	denom := l.Constant + l.Linear*d + l.Quadratic*d*d
	if denom == 0 {
		return 1.0
	}
	return 1.0 / denom
}
