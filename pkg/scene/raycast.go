package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
)

// IntersectionInfo is the result of casting a ray into a scene
type IntersectionInfo struct {
	Ray    core.Ray         // Ray used to calculate the intersection
	T      float64          // Distance from the ray origin to Point
	Object *geometry.Object // Closest object hit, nil when nothing was hit
	Point  core.Vec3        // Intersection point
	Normal core.Vec3        // Unit normal at Point
}

// Hit reports whether the ray hit anything
func (info IntersectionInfo) Hit() bool {
	return info.Object != nil
}

// Raycast returns the closest positive-t intersection along ray.
// Every object is tested; on equal distances the earlier object wins.
func Raycast(ray core.Ray, s *Scene) IntersectionInfo {
	closest := IntersectionInfo{Ray: ray, T: geometry.NoHit}

	for i := range s.Objects {
		obj := &s.Objects[i]
		hit := geometry.Intersect(ray, obj)
		if !hit.OK() {
			continue
		}
		if closest.Object == nil || hit.T < closest.T {
			closest.T = hit.T
			closest.Object = obj
			closest.Point = hit.Point
			closest.Normal = hit.Normal
		}
	}

	return closest
}

// AnyHitWithin reports whether any object intersects ray with t in (0, maxT)
func AnyHitWithin(ray core.Ray, s *Scene, maxT float64) bool {
	for i := range s.Objects {
		hit := geometry.Intersect(ray, &s.Objects[i])
		if hit.T > 0 && hit.T < maxT {
			return true
		}
	}
	return false
}
