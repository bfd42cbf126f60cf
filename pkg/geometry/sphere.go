package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Intersect tests the ray against the sphere and returns the nearest positive hit.
// The ray direction is assumed to be unit length.
func (s Sphere) Intersect(ray core.Ray) Hit {
	// |P + tD - C|^2 = r^2 with |D| = 1 reduces to t = -b ± sqrt(b^2 - c)
	m := ray.Origin.Subtract(s.Center)
	b := m.Dot(ray.Direction)
	c := m.Dot(m) - s.Radius*s.Radius

	discriminant := b*b - c
	if discriminant < 0 {
		return miss()
	}

	sqrtD := math.Sqrt(discriminant)
	near := -b - sqrtD
	far := -b + sqrtD

	var t float64
	switch {
	case near > 0:
		t = near
	case far > 0:
		// Origin is inside the sphere
		t = far
	default:
		// Sphere is entirely behind the ray origin
		return miss()
	}

	point := ray.At(t)
	return Hit{
		T:      t,
		Point:  point,
		Normal: point.Subtract(s.Center).Multiply(1.0 / s.Radius),
	}
}
