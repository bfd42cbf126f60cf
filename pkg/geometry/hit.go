package geometry

import "github.com/df07/go-phong-raytracer/pkg/core"

// NoHit is the distance reported when a ray misses a primitive
const NoHit = -1.0

// Hit is the result of a single ray/primitive test.
// A non-positive T means there was no intersection.
type Hit struct {
	T      float64   // Distance along the ray
	Point  core.Vec3 // Intersection point
	Normal core.Vec3 // Unit surface normal at Point
	U, V   float64   // Barycentric weights of B and C (triangles only)
}

// OK reports whether the hit is a valid intersection
func (h Hit) OK() bool {
	return h.T > 0
}

func miss() Hit {
	return Hit{T: NoHit}
}
