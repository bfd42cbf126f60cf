package viewer

import (
	"image"
	"math"

	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl32"
)

// ClearColor is the background of every frame
var ClearColor = mgl32.Vec3{0.05, 0.05, 0.08}

// Snapshot rasterises the room at time t on the CPU. textures maps a texture
// unit to its image; drawables whose unit has no image are shaded white.
func Snapshot(width, height int, t float32, cam *FlyCamera, textures map[int32]image.Image) image.Image {
	dc := fauxgl.NewContext(width, height)
	dc.ClearColorBufferWith(fauxgl.Color{R: float64(ClearColor[0]), G: float64(ClearColor[1]), B: float64(ClearColor[2]), A: 1})
	dc.ClearDepthBuffer()
	dc.Cull = fauxgl.CullNone

	viewProj := cam.Projection(float32(width) / float32(height)).Mul4(cam.View())
	lights := Lighting(t, cam)
	verts := Vertices()

	sampled := make(map[int32]fauxgl.Texture, len(textures))
	for unit, img := range textures {
		if img != nil {
			sampled[unit] = fauxgl.NewImageTexture(img)
		}
	}

	for _, d := range Drawables(t) {
		if !d.Visible {
			continue
		}
		dc.Shader = &roomShader{
			matrix:  toFauxMatrix(viewProj),
			lights:  lights,
			texture: sampled[d.TextureUnit],
		}
		dc.DrawMesh(worldMesh(verts, d))
	}
	return dc.Image()
}

// worldMesh transforms one drawable's vertices into world space
func worldMesh(verts []Vertex, d Drawable) *fauxgl.Mesh {
	normalMatrix := d.Model.Mat3().Inv().Transpose()
	run := verts[d.Range.First : d.Range.First+d.Range.Count]

	tris := make([]*fauxgl.Triangle, 0, len(run)/3)
	for i := 0; i+2 < len(run); i += 3 {
		var fv [3]fauxgl.Vertex
		for j := range fv {
			v := run[i+j]
			p := d.Model.Mul4x1(mgl32.Vec3(v.Position).Vec4(1)).Vec3()
			n := normalMatrix.Mul3x1(mgl32.Vec3(v.Normal)).Normalize()
			fv[j] = fauxgl.Vertex{
				Position: fauxgl.V(float64(p[0]), float64(p[1]), float64(p[2])),
				Normal:   fauxgl.V(float64(n[0]), float64(n[1]), float64(n[2])),
				Texture:  fauxgl.V(float64(v.UV[0]), float64(v.UV[1]), 0),
				Color: fauxgl.Color{
					R: float64(v.Color[0]) / 255,
					G: float64(v.Color[1]) / 255,
					B: float64(v.Color[2]) / 255,
					A: 1,
				},
			}
		}
		tris = append(tris, fauxgl.NewTriangle(fv[0], fv[1], fv[2]))
	}
	return fauxgl.NewTriangleMesh(tris)
}

// toFauxMatrix converts a column-major mgl32 matrix to fauxgl's row fields
func toFauxMatrix(m mgl32.Mat4) fauxgl.Matrix {
	at := func(r, c int) float64 { return float64(m.At(r, c)) }
	return fauxgl.Matrix{
		X00: at(0, 0), X01: at(0, 1), X02: at(0, 2), X03: at(0, 3),
		X10: at(1, 0), X11: at(1, 1), X12: at(1, 2), X13: at(1, 3),
		X20: at(2, 0), X21: at(2, 1), X22: at(2, 2), X23: at(2, 3),
		X30: at(3, 0), X31: at(3, 1), X32: at(3, 2), X33: at(3, 3),
	}
}

// roomShader mirrors the fragment shader of the GL viewer: one directional,
// one point and one spot light over a textured albedo.
type roomShader struct {
	matrix  fauxgl.Matrix
	lights  Lights
	texture fauxgl.Texture
}

func (s *roomShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = s.matrix.MulPositionW(v.Position)
	return v
}

func (s *roomShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	albedo := mgl32.Vec3{float32(v.Color.R), float32(v.Color.G), float32(v.Color.B)}
	if s.texture != nil {
		c := s.texture.Sample(v.Texture.X, v.Texture.Y)
		albedo = mgl32.Vec3{albedo[0] * float32(c.R), albedo[1] * float32(c.G), albedo[2] * float32(c.B)}
	}

	frag := mgl32.Vec3{float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z)}
	normal := mgl32.Vec3{float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z)}.Normalize()
	c := Shade(s.lights, frag, normal, albedo)
	return fauxgl.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: 1}
}

// Shade evaluates every light at a surface point. The material diffuse colour
// is added to albedo before lighting. The result is clamped to [0,1].
func Shade(l Lights, frag, normal, albedo mgl32.Vec3) mgl32.Vec3 {
	base := albedo.Add(l.Material.Diffuse)
	view := l.CameraPosition.Sub(frag)
	if view.Len() > 0 {
		view = view.Normalize()
	}

	result := phong(l.Dir.Direction.Mul(-1).Normalize(), normal, view, base,
		l.Dir.Ambient, l.Dir.Diffuse, l.Dir.Specular, l.Material, 1, 1)

	toPoint := l.Point.Position.Sub(frag)
	att := attenuation(toPoint.Len(), l.Point.Constant, l.Point.Linear, l.Point.Quadratic)
	result = result.Add(phong(safeNormalize(toPoint), normal, view, base,
		l.Point.Ambient, l.Point.Diffuse, l.Point.Specular, l.Material, 1, att))

	toSpot := l.Spot.Position.Sub(frag)
	dir := safeNormalize(toSpot)
	theta := dir.Dot(safeNormalize(l.Spot.Direction.Mul(-1)))
	intensity := clamp01((theta - l.Spot.OuterCutOff) / (l.Spot.CutOff - l.Spot.OuterCutOff))
	att = attenuation(toSpot.Len(), l.Spot.Constant, l.Spot.Linear, l.Spot.Quadratic)
	result = result.Add(phong(dir, normal, view, base,
		l.Spot.Ambient, l.Spot.Diffuse, l.Spot.Specular, l.Material, intensity, att))

	return mgl32.Vec3{clamp01(result[0]), clamp01(result[1]), clamp01(result[2])}
}

// phong is one light's contribution. intensity scales diffuse and specular,
// att scales everything.
func phong(lightDir, normal, view, base, ambient, diffuse, specular mgl32.Vec3, m Material, intensity, att float32) mgl32.Vec3 {
	diff := max(normal.Dot(lightDir), 0)
	reflected := reflect(lightDir.Mul(-1), normal)
	spec := float32(math.Pow(float64(max(view.Dot(reflected), 0)), float64(m.Shininess)))

	a := mulVec(ambient, base)
	d := mulVec(diffuse, base).Mul(diff * intensity)
	s := mulVec(specular, m.Specular).Mul(spec * intensity)
	return a.Add(d).Add(s).Mul(att)
}

func attenuation(distance, constant, linear, quadratic float32) float32 {
	return 1 / (constant + linear*distance + quadratic*distance*distance)
}

func reflect(i, n mgl32.Vec3) mgl32.Vec3 {
	return i.Sub(n.Mul(2 * n.Dot(i)))
}

func mulVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return v
	}
	return v.Normalize()
}

func clamp01(x float32) float32 {
	return min(max(x, 0), 1)
}
