package viewer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one interleaved vertex as uploaded to the GPU. The colour is
// padded to four bytes so the struct has no implicit padding.
type Vertex struct {
	Position [3]float32
	Color    [4]uint8
	UV       [2]float32
	Normal   [3]float32
}

// Byte offsets of each attribute within a Vertex
const (
	PositionOffset = 0
	ColorOffset    = 12
	UVOffset       = 16
	NormalOffset   = 24
	VertexStride   = 36
)

// DrawRange is a contiguous run of triangles in the vertex buffer
type DrawRange struct {
	First int32
	Count int32
}

// Ranges of each mesh in the buffer returned by Vertices
var (
	CubeRange       = DrawRange{First: 0, Count: 36}
	OctahedronRange = DrawRange{First: 36, Count: 24}
	PyramidRange    = DrawRange{First: 60, Count: 18}
	RoomRange       = DrawRange{First: 78, Count: 36}
	// FloorRange is the top face of the cube
	FloorRange = DrawRange{First: 30, Count: 6}
)

const half = 0.5

var (
	cubeColor       = [4]uint8{255, 255, 255, 255}
	octahedronColor = [4]uint8{255, 200, 120, 255}
	pyramidColor    = [4]uint8{120, 200, 255, 255}
	roomColor       = [4]uint8{220, 220, 220, 255}
)

// Vertices returns the vertex buffer for every mesh in the room, laid out as
// described by the *Range variables.
func Vertices() []Vertex {
	verts := make([]Vertex, 0, RoomRange.First+RoomRange.Count)
	verts = append(verts, cube(cubeColor, true)...)
	verts = append(verts, octahedron(octahedronColor)...)
	verts = append(verts, pyramid(pyramidColor)...)
	verts = append(verts, cube(roomColor, false)...)
	return verts
}

// cube is a unit cube centred on the origin. The +Y face comes last so the
// floor slab can draw it alone. Inward cubes face their normals to the centre.
func cube(color [4]uint8, outward bool) []Vertex {
	p := func(x, y, z float32) mgl32.Vec3 { return mgl32.Vec3{x * half, y * half, z * half} }
	faces := [6][4]mgl32.Vec3{
		{p(-1, -1, 1), p(1, -1, 1), p(1, 1, 1), p(-1, 1, 1)},     // +Z
		{p(1, -1, -1), p(-1, -1, -1), p(-1, 1, -1), p(1, 1, -1)}, // -Z
		{p(1, -1, 1), p(1, -1, -1), p(1, 1, -1), p(1, 1, 1)},     // +X
		{p(-1, -1, -1), p(-1, -1, 1), p(-1, 1, 1), p(-1, 1, -1)}, // -X
		{p(-1, -1, -1), p(1, -1, -1), p(1, -1, 1), p(-1, -1, 1)}, // -Y
		{p(-1, 1, 1), p(1, 1, 1), p(1, 1, -1), p(-1, 1, -1)},     // +Y
	}

	verts := make([]Vertex, 0, 36)
	for _, f := range faces {
		verts = append(verts, quad(f[0], f[1], f[2], f[3], color, outward)...)
	}
	return verts
}

func octahedron(color [4]uint8) []Vertex {
	top := mgl32.Vec3{0, half, 0}
	bottom := mgl32.Vec3{0, -half, 0}
	ring := [4]mgl32.Vec3{{half, 0, 0}, {0, 0, half}, {-half, 0, 0}, {0, 0, -half}}

	verts := make([]Vertex, 0, 24)
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		verts = append(verts, triangle(top, a, b, color, true)...)
		verts = append(verts, triangle(bottom, b, a, color, true)...)
	}
	return verts
}

// pyramid has a square base at y=-0.5 and its apex at y=0.5
func pyramid(color [4]uint8) []Vertex {
	apex := mgl32.Vec3{0, half, 0}
	base := [4]mgl32.Vec3{{-half, -half, -half}, {half, -half, -half}, {half, -half, half}, {-half, -half, half}}

	verts := make([]Vertex, 0, 18)
	verts = append(verts, quad(base[0], base[1], base[2], base[3], color, true)...)
	for i := range base {
		verts = append(verts, triangle(base[i], base[(i+1)%len(base)], apex, color, true)...)
	}
	return verts
}

// quad splits a face into two triangles with texture coordinates covering [0,1]
func quad(a, b, c, d mgl32.Vec3, color [4]uint8, outward bool) []Vertex {
	n := faceNormal(a, b, c, outward)
	uv := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	corners := [4]mgl32.Vec3{a, b, c, d}
	order := [6]int{0, 1, 2, 0, 2, 3}
	if !sameWinding(a, b, c, n) {
		order = [6]int{0, 2, 1, 0, 3, 2}
	}

	verts := make([]Vertex, 0, 6)
	for _, i := range order {
		verts = append(verts, vertex(corners[i], uv[i], n, color))
	}
	return verts
}

func triangle(a, b, c mgl32.Vec3, color [4]uint8, outward bool) []Vertex {
	n := faceNormal(a, b, c, outward)
	if !sameWinding(a, b, c, n) {
		b, c = c, b
	}
	return []Vertex{
		vertex(a, [2]float32{0, 0}, n, color),
		vertex(b, [2]float32{1, 0}, n, color),
		vertex(c, [2]float32{0.5, 1}, n, color),
	}
}

// faceNormal orients the face normal away from the origin, or towards it for
// inward meshes. Every mesh here is convex and contains the origin.
func faceNormal(a, b, c mgl32.Vec3, outward bool) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	centroid := a.Add(b).Add(c).Mul(1.0 / 3)
	if (n.Dot(centroid) < 0) == outward {
		n = n.Mul(-1)
	}
	return n
}

// sameWinding reports whether a, b, c wind counter-clockwise seen from the side n points to
func sameWinding(a, b, c, n mgl32.Vec3) bool {
	return b.Sub(a).Cross(c.Sub(a)).Dot(n) > 0
}

func vertex(p mgl32.Vec3, uv [2]float32, n mgl32.Vec3, color [4]uint8) Vertex {
	return Vertex{
		Position: [3]float32{p[0], p[1], p[2]},
		Color:    color,
		UV:       uv,
		Normal:   [3]float32{n[0], n[1], n[2]},
	}
}
