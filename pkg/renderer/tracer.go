package renderer

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Options tunes the offsets and constants used while shading
type Options struct {
	ShadowBias     float64 // Offset along the normal for shadow ray origins
	ReflectionBias float64 // Offset along the normal for reflection ray origins
	ShadowDistance float64 // Occluders are only counted with t below this distance
	ShininessScale float64 // Reflection weight is shininess / ShininessScale
}

// DefaultOptions returns the classic shading constants
func DefaultOptions() Options {
	return Options{
		ShadowBias:     0.01,
		ReflectionBias: 0.001,
		ShadowDistance: 1.0,
		ShininessScale: 128.0,
	}
}

// withDefaults fills unset fields from DefaultOptions
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ShadowBias <= 0 {
		o.ShadowBias = d.ShadowBias
	}
	if o.ReflectionBias <= 0 {
		o.ReflectionBias = d.ReflectionBias
	}
	if o.ShadowDistance <= 0 {
		o.ShadowDistance = d.ShadowDistance
	}
	if o.ShininessScale <= 0 {
		o.ShininessScale = d.ShininessScale
	}
	return o
}

// Tracer shades rays against a single scene. It is not safe for concurrent use.
type Tracer struct {
	scene   *scene.Scene
	options Options
	stats   TraceStats
}

// NewTracer creates a tracer for s. Zero-valued options fall back to DefaultOptions.
func NewTracer(s *scene.Scene, options Options) *Tracer {
	return &Tracer{
		scene:   s,
		options: options.withDefaults(),
	}
}

// Stats returns the ray counters accumulated so far
func (t *Tracer) Stats() TraceStats {
	return t.stats
}

// RayTrace returns the color seen along ray, following at most maxDepth reflections
func (t *Tracer) RayTrace(ray core.Ray, maxDepth int) core.Vec3 {
	info := scene.Raycast(ray, t.scene)
	return t.Shade(info, maxDepth)
}

// Shade computes the Phong color of an intersection summed over every light.
// A miss is black.
func (t *Tracer) Shade(info scene.IntersectionInfo, maxDepth int) core.Vec3 {
	if !info.Hit() {
		return core.Vec3{}
	}

	mat := info.Object.Material()
	point := info.Point
	normal := info.Normal
	view := t.scene.Camera.Position.Subtract(point).Normalize()

	color := core.Vec3{}
	for _, light := range t.scene.Lights {
		lightDir := light.DirectionFrom(point)
		attenuation := light.Attenuation(point)

		ambient := light.Ambient.MultiplyVec(mat.Ambient).Multiply(attenuation)

		diff := math.Max(normal.Dot(lightDir), 0)
		diffuse := light.Diffuse.MultiplyVec(mat.Diffuse).Multiply(diff * attenuation)

		reflected := lightDir.Negate().Reflect(normal)
		spec := math.Pow(math.Max(view.Dot(reflected), 0), mat.Shininess)
		specular := light.Specular.MultiplyVec(mat.Specular).Multiply(spec * attenuation)

		shadowVal := 0.0
		if t.inShadow(point, normal, light) {
			shadowVal = 1.0
		} else if maxDepth > 0 {
			kr := mat.Shininess / t.options.ShininessScale
			origin := point.Add(normal.Multiply(t.options.ReflectionBias))
			reflection := core.NewRay(origin, info.Ray.Direction.Reflect(normal))
			t.stats.ReflectionRays++
			color = color.Add(t.RayTrace(reflection, maxDepth-1).Multiply(kr))
		}

		color = color.Add(ambient).Add(diffuse.Add(specular).Multiply(1.0 - shadowVal))
	}

	return color
}

// inShadow casts a ray from just above point toward light
func (t *Tracer) inShadow(point, normal core.Vec3, light lights.Light) bool {
	origin := point.Add(normal.Multiply(t.options.ShadowBias))
	shadowRay := core.NewRay(origin, light.DirectionFrom(origin))
	t.stats.ShadowRays++
	return scene.AnyHitWithin(shadowRay, t.scene, t.options.ShadowDistance)
}

// RayTrace shades a single ray against s with default options
func RayTrace(ray core.Ray, s *scene.Scene, maxDepth int) core.Vec3 {
	return NewTracer(s, DefaultOptions()).RayTrace(ray, maxDepth)
}
