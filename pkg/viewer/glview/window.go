// Package glview opens an OpenGL 3.3 window and draws the room described by
// package viewer, with WASD movement and mouse look.
package glview

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"github.com/disintegration/imaging"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-phong-raytracer/pkg/config"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/viewer"
)

func init() {
	// GLFW event handling must run on the main thread
	runtime.LockOSThread()
}

// Window is an open viewer window with its GL resources
type Window struct {
	window   *glfw.Window
	camera   *viewer.FlyCamera
	logger   core.Logger
	width    int
	height   int
	program  uint32
	vao      uint32
	vbo      uint32
	textures map[int32]uint32
	uniforms map[string]int32
}

// initError wraps a window setup failure, keeping err inspectable with errors.Is
func initError(stage string, err error) error {
	return fmt.Errorf("failed to %s: %w", stage, err)
}

// New creates the window, compiles the shaders and uploads the meshes and textures
func New(cfg config.ViewerConfig, logger core.Logger) (*Window, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if err := glfw.Init(); err != nil {
		return nil, initError("initialize GLFW", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "Phong Viewer", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, initError("create GLFW window", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, initError("initialize OpenGL", err)
	}
	logger.Printf("OpenGL version %s\n", gl.GoStr(gl.GetString(gl.VERSION)))

	w := &Window{
		window:   window,
		camera:   viewer.NewFlyCameraFromConfig(cfg),
		logger:   logger,
		width:    cfg.Width,
		height:   cfg.Height,
		textures: make(map[int32]uint32),
		uniforms: make(map[string]int32),
	}

	w.program, err = createShaderProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		w.Close()
		return nil, err
	}
	w.uploadVertices(viewer.Vertices())
	for unit, img := range viewer.LoadTextures(cfg.Textures, true, logger) {
		w.textures[unit] = uploadTexture(img)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(viewer.ClearColor[0], viewer.ClearColor[1], viewer.ClearColor[2], 1)
	return w, nil
}

func (w *Window) uploadVertices(verts []viewer.Vertex) {
	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*viewer.VertexStride, gl.Ptr(verts), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, viewer.VertexStride, gl.PtrOffset(viewer.PositionOffset))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.UNSIGNED_BYTE, true, viewer.VertexStride, gl.PtrOffset(viewer.ColorOffset))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, viewer.VertexStride, gl.PtrOffset(viewer.UVOffset))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(3, 3, gl.FLOAT, false, viewer.VertexStride, gl.PtrOffset(viewer.NormalOffset))
	gl.EnableVertexAttribArray(3)

	gl.BindVertexArray(0)
}

func uploadTexture(img image.Image) uint32 {
	pixels := imaging.Clone(img)
	size := pixels.Bounds().Size()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(size.X),
		int32(size.Y),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pixels.Pix),
	)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Run draws frames until the window closes, Escape is pressed or ctx is done
func (w *Window) Run(ctx context.Context) error {
	w.window.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	centerX, centerY := float64(w.width)/2, float64(w.height)/2
	w.window.SetCursorPos(centerX, centerY)

	last := glfw.GetTime()
	frames := 0
	for !w.window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := glfw.GetTime()
		dt := float32(now - last)
		last = now

		mouseX, mouseY := w.window.GetCursorPos()
		w.window.SetCursorPos(centerX, centerY)
		w.camera.Look(centerX-mouseX, centerY-mouseY)

		w.draw(float32(now))

		w.window.SwapBuffers()
		glfw.PollEvents()
		w.processInput(dt)
		frames++
	}

	w.logger.Printf("Viewer closed after %d frames\n", frames)
	return nil
}

func (w *Window) processInput(dt float32) {
	if w.window.GetKey(glfw.KeyEscape) == glfw.Press {
		w.window.SetShouldClose(true)
		return
	}

	var forward, strafe float32
	if w.window.GetKey(glfw.KeyW) == glfw.Press {
		forward++
	}
	if w.window.GetKey(glfw.KeyS) == glfw.Press {
		forward--
	}
	if w.window.GetKey(glfw.KeyD) == glfw.Press {
		strafe++
	}
	if w.window.GetKey(glfw.KeyA) == glfw.Press {
		strafe--
	}
	w.camera.Move(forward, strafe, dt)
}

func (w *Window) draw(t float32) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(w.program)
	gl.BindVertexArray(w.vao)

	viewProj := w.camera.Projection(float32(w.width) / float32(w.height)).Mul4(w.camera.View())

	vecs, floats := lightUniforms(viewer.Lighting(t, w.camera))
	for _, u := range vecs {
		gl.Uniform3fv(w.uniform(u.name), 1, &u.value[0])
	}
	for _, u := range floats {
		gl.Uniform1f(w.uniform(u.name), u.value)
	}

	for unit, tex := range w.textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}

	for _, d := range viewer.Drawables(t) {
		if !d.Visible {
			continue
		}
		gl.Uniform1i(w.uniform("tex"), d.TextureUnit)
		w.setMat4("transformationMatrix", viewProj.Mul4(d.Model))
		w.setMat4("model", d.Model)
		gl.DrawArrays(gl.TRIANGLES, d.Range.First, d.Range.Count)
	}

	gl.BindVertexArray(0)
}

func (w *Window) setMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(w.uniform(name), 1, false, &m[0])
}

// uniform returns the location of name in the program, caching lookups
func (w *Window) uniform(name string) int32 {
	if loc, ok := w.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(w.program, gl.Str(name+"\x00"))
	w.uniforms[name] = loc
	return loc
}

// Close releases GL resources and terminates GLFW
func (w *Window) Close() {
	for _, tex := range w.textures {
		gl.DeleteTextures(1, &tex)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.program != 0 {
		gl.DeleteProgram(w.program)
	}
	w.window.Destroy()
	glfw.Terminate()
}
