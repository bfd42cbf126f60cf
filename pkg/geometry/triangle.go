package geometry

import "github.com/df07/go-phong-raytracer/pkg/core"

// Triangle represents a single triangle defined by three vertices.
// The front face is the one whose normal (B-A)x(C-A) points toward the viewer.
type Triangle struct {
	A, B, C  core.Vec3
	Material Material
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(a, b, c core.Vec3, material Material) Triangle {
	return Triangle{
		A:        a,
		B:        b,
		C:        c,
		Material: material,
	}
}

// Normal returns the unit plane normal of the triangle
func (tri Triangle) Normal() core.Vec3 {
	return tri.B.Subtract(tri.A).Cross(tri.C.Subtract(tri.A)).Normalize()
}

// Intersect tests the ray against the front face of the triangle.
// Rays approaching from the back side are rejected.
func (tri Triangle) Intersect(ray core.Ray) Hit {
	ab := tri.B.Subtract(tri.A)
	ac := tri.C.Subtract(tri.A)
	n := ab.Cross(ac)

	qp := ray.Direction.Negate()
	f := qp.Dot(n)
	if f <= 0 {
		return miss()
	}

	ap := ray.Origin.Subtract(tri.A)
	t := ap.Dot(n) / f
	if t <= 0 {
		return miss()
	}

	e := qp.Cross(ap)
	u := ac.Dot(e) / f
	v := -ab.Dot(e) / f
	if u < 0 || v < 0 || u+v > 1 {
		return miss()
	}

	return Hit{
		T:      t,
		Point:  tri.A.Add(ab.Multiply(u)).Add(ac.Multiply(v)),
		Normal: n.Normalize(),
		U:      u,
		V:      v,
	}
}
