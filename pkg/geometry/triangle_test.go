package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

func TestTriangle_Intersect(t *testing.T) {
	// Triangle in the XY plane facing +Z
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial,
	)

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "Ray hits triangle centroid",
			ray:       core.NewRay(core.NewVec3(1.0/3, 1.0/3, 2), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 2.0,
		},
		{
			name:      "Ray hits triangle edge",
			ray:       core.NewRay(core.NewVec3(0.5, 0, 1), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray misses triangle",
			ray:       core.NewRay(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, -1)),
			shouldHit: false,
		},
		{
			name:      "Ray parallel to triangle",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 0), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "Ray hits back face",
			ray:       core.NewRay(core.NewVec3(1.0/3, 1.0/3, -2), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Triangle behind ray origin",
			ray:       core.NewRay(core.NewVec3(1.0/3, 1.0/3, -2), core.NewVec3(0, 0, -1)),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := triangle.Intersect(tt.ray)

			if hit.OK() != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got t=%f", tt.shouldHit, hit.T)
			}
			if !tt.shouldHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.U < 0 || hit.V < 0 || hit.U+hit.V > 1 {
				t.Errorf("Barycentric coordinates out of range: u=%f v=%f", hit.U, hit.V)
			}
			expectedPoint := tt.ray.At(hit.T)
			if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
				t.Errorf("Expected point %v, got %v", expectedPoint, hit.Point)
			}
		})
	}
}

func TestTriangle_Intersect_CentroidBarycentrics(t *testing.T) {
	a := core.NewVec3(-1, 0, -3)
	b := core.NewVec3(1, 0, -3)
	c := core.NewVec3(0, 2, -3)
	triangle := NewTriangle(a, b, c, testMaterial)

	centroid := a.Add(b).Add(c).Multiply(1.0 / 3)
	normal := triangle.Normal()

	// Approach perpendicular to the plane from the front side
	origin := centroid.Add(normal.Multiply(4))
	hit := triangle.Intersect(core.NewRay(origin, normal.Negate()))

	if !hit.OK() {
		t.Fatalf("Expected hit through centroid, got t=%f", hit.T)
	}
	if math.Abs(hit.U-1.0/3) > 1e-9 || math.Abs(hit.V-1.0/3) > 1e-9 {
		t.Errorf("Expected u=v=1/3 at centroid, got u=%f v=%f", hit.U, hit.V)
	}
	if hit.Normal.Subtract(normal).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", normal, hit.Normal)
	}

	// Same line from the back side is culled even though it overlaps geometrically
	back := triangle.Intersect(core.NewRay(centroid.Subtract(normal.Multiply(4)), normal))
	if back.OK() {
		t.Errorf("Expected back face to be rejected, got t=%f", back.T)
	}
}

func TestIntersect_Dispatch(t *testing.T) {
	sphere := NewSphereObject(NewSphere(core.NewVec3(0, 0, -5), 1, testMaterial))
	tri := NewTriangleObject(NewTriangle(
		core.NewVec3(-1, -1, -2),
		core.NewVec3(1, -1, -2),
		core.NewVec3(0, 1, -2),
		testMaterial,
	))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	if hit := Intersect(ray, &sphere); math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected sphere t=4, got %f", hit.T)
	}
	if hit := Intersect(ray, &tri); math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected triangle t=2, got %f", hit.T)
	}
	if sphere.Kind.String() != "sphere" || tri.Kind.String() != "triangle" {
		t.Errorf("Unexpected kind names %q, %q", sphere.Kind, tri.Kind)
	}

	unknown := Object{Kind: Kind(42)}
	if hit := Intersect(ray, &unknown); hit.OK() {
		t.Errorf("Expected unknown kind to miss, got t=%f", hit.T)
	}
}
