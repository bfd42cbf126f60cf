package geometry

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Kind identifies which primitive an Object holds
type Kind int

const (
	KindSphere Kind = iota
	KindTriangle
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindTriangle:
		return "triangle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Object is a scene primitive. Only the field selected by Kind is meaningful.
type Object struct {
	Kind     Kind
	Sphere   Sphere
	Triangle Triangle
}

// NewSphereObject wraps a sphere as a scene object
func NewSphereObject(s Sphere) Object {
	return Object{Kind: KindSphere, Sphere: s}
}

// NewTriangleObject wraps a triangle as a scene object
func NewTriangleObject(t Triangle) Object {
	return Object{Kind: KindTriangle, Triangle: t}
}

// Material returns the material of the wrapped primitive
func (o *Object) Material() Material {
	switch o.Kind {
	case KindTriangle:
		return o.Triangle.Material
	default:
		return o.Sphere.Material
	}
}

// Intersect dispatches the ray test to the wrapped primitive
func Intersect(ray core.Ray, o *Object) Hit {
	switch o.Kind {
	case KindSphere:
		return o.Sphere.Intersect(ray)
	case KindTriangle:
		return o.Triangle.Intersect(ray)
	default:
		return miss()
	}
}
