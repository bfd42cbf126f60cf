package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/animation"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

var (
	// ErrUnexpectedEnd is returned when the token stream ends inside a record
	ErrUnexpectedEnd = errors.New("unexpected end of scene file")
	// ErrUnknownObject is returned for an object keyword that is not recognised
	ErrUnknownObject = errors.New("unknown object type")
)

// Object record keywords
const (
	KeywordSphere       = "sphere"
	KeywordSphereBounce = "sphereBounce"
	KeywordTriangle     = "tri"
	KeywordTriSide      = "triSide" // followed by the side number 1-4
)

// SceneFile is a tokenized scene description. The tokens are kept so a fresh
// scene can be built for every animation frame.
type SceneFile struct {
	Path   string
	Tokens []string
}

// maxLineBytes bounds a single line of a scene file
const maxLineBytes = 1 << 20

// Tokenize splits r into whitespace separated tokens. Lines starting with '#'
// are comments and carry scene metadata only.
func Tokenize(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var tokens []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	return tokens, nil
}

// ParseSceneFile reads a scene description from r
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	tokens, err := Tokenize(r)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty scene file: %w", ErrUnexpectedEnd)
	}
	return &SceneFile{Tokens: tokens}, nil
}

// LoadSceneFile reads a scene description from disk
func LoadSceneFile(path string) (*SceneFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sf, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}
	sf.Path = path
	return sf, nil
}

// Build creates the scene for frame. Animated records take their overridden
// coordinates from keyframes; a nil keyframes uses the default animation.
func (f *SceneFile) Build(frame int, keyframes *animation.Keyframes) (*scene.Scene, error) {
	if keyframes == nil {
		keyframes = animation.DefaultKeyframes()
	}
	tr := &tokenReader{tokens: f.Tokens}

	camera, maxDepth, err := tr.header()
	if err != nil {
		return nil, err
	}
	s := scene.NewScene(camera, maxDepth)

	numObjects, err := tr.count("object count")
	if err != nil {
		return nil, err
	}
	for i := 0; i < numObjects; i++ {
		if err := tr.object(s, frame, keyframes); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
	}

	numLights, err := tr.count("light count")
	if err != nil {
		return nil, err
	}
	for i := 0; i < numLights; i++ {
		light, err := tr.light()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(light)
	}

	return s, nil
}

// tokenReader walks the token stream of a scene file
type tokenReader struct {
	tokens []string
	pos    int
}

func (tr *tokenReader) next(what string) (string, error) {
	if tr.pos >= len(tr.tokens) {
		return "", fmt.Errorf("token %d (%s): %w", tr.pos, what, ErrUnexpectedEnd)
	}
	tok := tr.tokens[tr.pos]
	tr.pos++
	return tok, nil
}

// skip consumes a token whose value is replaced by animation data
func (tr *tokenReader) skip(what string) error {
	_, err := tr.next(what)
	return err
}

func (tr *tokenReader) float(what string) (float64, error) {
	tok, err := tr.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("token %d: invalid %s '%s': %w", tr.pos-1, what, tok, err)
	}
	return v, nil
}

func (tr *tokenReader) integer(what string) (int, error) {
	tok, err := tr.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("token %d: invalid %s '%s': %w", tr.pos-1, what, tok, err)
	}
	return v, nil
}

func (tr *tokenReader) count(what string) (int, error) {
	n, err := tr.integer(what)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("token %d: %s cannot be negative: %d", tr.pos-1, what, n)
	}
	return n, nil
}

func (tr *tokenReader) vec3(what string) (core.Vec3, error) {
	var v [3]float64
	for i := range v {
		f, err := tr.float(what)
		if err != nil {
			return core.Vec3{}, err
		}
		v[i] = f
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func (tr *tokenReader) header() (scene.CameraConfig, int, error) {
	var camera scene.CameraConfig
	var err error

	sizeToken := tr.pos
	if camera.Width, err = tr.integer("image width"); err != nil {
		return camera, 0, err
	}
	if camera.Height, err = tr.integer("image height"); err != nil {
		return camera, 0, err
	}
	if err := scene.ValidateImageSize(camera.Width, camera.Height); err != nil {
		return camera, 0, fmt.Errorf("token %d: %w", sizeToken, err)
	}
	if camera.Position, err = tr.vec3("camera position"); err != nil {
		return camera, 0, err
	}
	if camera.LookTarget, err = tr.vec3("camera look target"); err != nil {
		return camera, 0, err
	}
	if camera.Up, err = tr.vec3("camera up"); err != nil {
		return camera, 0, err
	}
	if camera.FovY, err = tr.float("field of view"); err != nil {
		return camera, 0, err
	}
	if camera.FocalLength, err = tr.float("focal length"); err != nil {
		return camera, 0, err
	}
	maxDepth, err := tr.count("max depth")
	if err != nil {
		return camera, 0, err
	}
	if err := scene.ValidateMaxDepth(maxDepth); err != nil {
		return camera, 0, fmt.Errorf("token %d: %w", tr.pos-1, err)
	}
	return camera, maxDepth, nil
}

func (tr *tokenReader) material() (geometry.Material, error) {
	var m geometry.Material
	var err error
	if m.Ambient, err = tr.vec3("ambient"); err != nil {
		return m, err
	}
	if m.Diffuse, err = tr.vec3("diffuse"); err != nil {
		return m, err
	}
	if m.Specular, err = tr.vec3("specular"); err != nil {
		return m, err
	}
	if m.Shininess, err = tr.float("shininess"); err != nil {
		return m, err
	}
	return m, nil
}

func (tr *tokenReader) object(s *scene.Scene, frame int, keyframes *animation.Keyframes) error {
	start := tr.pos
	keyword, err := tr.next("object type")
	if err != nil {
		return err
	}

	switch keyword {
	case KeywordSphere:
		sphere, err := tr.sphere(false, 0)
		if err != nil {
			return err
		}
		s.AddSphere(sphere)
	case KeywordSphereBounce:
		bounceY, err := keyframes.Bounce(frame)
		if err != nil {
			return fmt.Errorf("token %d: %w", start, err)
		}
		sphere, err := tr.sphere(true, bounceY)
		if err != nil {
			return err
		}
		s.AddSphere(sphere)
	case KeywordTriangle:
		triangle, err := tr.triangle(nil, frame)
		if err != nil {
			return err
		}
		s.AddTriangle(triangle)
	default:
		side, ok := triSideNumber(keyword)
		if !ok {
			return fmt.Errorf("token %d '%s': %w", start, keyword, ErrUnknownObject)
		}
		track, err := keyframes.Side(side)
		if err != nil {
			return fmt.Errorf("token %d: %w", start, err)
		}
		triangle, err := tr.triangle(&track, frame)
		if err != nil {
			return err
		}
		s.AddTriangle(triangle)
	}
	return nil
}

// triSideNumber parses the side number of a triSideN keyword
func triSideNumber(keyword string) (int, bool) {
	if len(keyword) != len(KeywordTriSide)+1 || keyword[:len(KeywordTriSide)] != KeywordTriSide {
		return 0, false
	}
	n := int(keyword[len(KeywordTriSide)] - '0')
	return n, n >= 1 && n <= 4
}

func (tr *tokenReader) sphere(bounce bool, bounceY float64) (geometry.Sphere, error) {
	var center core.Vec3
	var err error
	if bounce {
		if center.X, err = tr.float("sphere center x"); err != nil {
			return geometry.Sphere{}, err
		}
		if err = tr.skip("sphere center y"); err != nil {
			return geometry.Sphere{}, err
		}
		center.Y = bounceY
		if center.Z, err = tr.float("sphere center z"); err != nil {
			return geometry.Sphere{}, err
		}
	} else if center, err = tr.vec3("sphere center"); err != nil {
		return geometry.Sphere{}, err
	}

	radius, err := tr.float("sphere radius")
	if err != nil {
		return geometry.Sphere{}, err
	}
	mat, err := tr.material()
	if err != nil {
		return geometry.Sphere{}, err
	}
	return geometry.NewSphere(center, radius, mat), nil
}

// triangle reads a triangle record. With a side track, the X and Z
// coordinates of B and C come from the track instead of the file.
func (tr *tokenReader) triangle(track *animation.SideTrack, frame int) (geometry.Triangle, error) {
	a, err := tr.vec3("triangle vertex A")
	if err != nil {
		return geometry.Triangle{}, err
	}

	var b, c core.Vec3
	if track == nil {
		if b, err = tr.vec3("triangle vertex B"); err != nil {
			return geometry.Triangle{}, err
		}
		if c, err = tr.vec3("triangle vertex C"); err != nil {
			return geometry.Triangle{}, err
		}
	} else {
		if b, err = tr.animatedVertex("B"); err != nil {
			return geometry.Triangle{}, err
		}
		if c, err = tr.animatedVertex("C"); err != nil {
			return geometry.Triangle{}, err
		}
		if b.X, b.Z, c.X, c.Z, err = track.At(frame); err != nil {
			return geometry.Triangle{}, err
		}
	}

	mat, err := tr.material()
	if err != nil {
		return geometry.Triangle{}, err
	}
	return geometry.NewTriangle(a, b, c, mat), nil
}

// animatedVertex reads only the Y coordinate of a vertex, consuming X and Z
func (tr *tokenReader) animatedVertex(name string) (core.Vec3, error) {
	var v core.Vec3
	if err := tr.skip("triangle vertex " + name + " x"); err != nil {
		return v, err
	}
	y, err := tr.float("triangle vertex " + name + " y")
	if err != nil {
		return v, err
	}
	v.Y = y
	if err := tr.skip("triangle vertex " + name + " z"); err != nil {
		return v, err
	}
	return v, nil
}

func (tr *tokenReader) light() (lights.Light, error) {
	var l lights.Light
	var v [4]float64
	for i := range v {
		f, err := tr.float("light position")
		if err != nil {
			return l, err
		}
		v[i] = f
	}
	l.Position = core.NewVec4(v[0], v[1], v[2], v[3])

	var err error
	if l.Ambient, err = tr.vec3("light ambient"); err != nil {
		return l, err
	}
	if l.Diffuse, err = tr.vec3("light diffuse"); err != nil {
		return l, err
	}
	if l.Specular, err = tr.vec3("light specular"); err != nil {
		return l, err
	}
	if l.Constant, err = tr.float("light constant attenuation"); err != nil {
		return l, err
	}
	if l.Linear, err = tr.float("light linear attenuation"); err != nil {
		return l, err
	}
	if l.Quadratic, err = tr.float("light quadratic attenuation"); err != nil {
		return l, err
	}
	return l, nil
}
