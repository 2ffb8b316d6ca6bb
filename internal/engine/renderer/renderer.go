// Package renderer draws plane indicators and placed objects with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/arcanvas/internal/logger"
	"github.com/Faultbox/arcanvas/pkg/math"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FovY   float32 // radians
}

// Renderer owns the GL state for the viewer: one flat-color shader, a unit
// quad for plane indicators and a unit cube for placed objects.
type Renderer struct {
	config Config

	program    uint32
	uniformMVP int32
	uniformCol int32

	quadVAO uint32
	quadVBO uint32
	cubeVAO uint32
	cubeVBO uint32

	view math.Mat4
	proj math.Mat4
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if cfg.FovY == 0 {
		cfg.FovY = 1.0
	}
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.08, 0.09, 0.12, 1.0)

	var err error
	r.program, err = createShaderProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.uniformMVP = gl.GetUniformLocation(r.program, gl.Str("uMVP\x00"))
	r.uniformCol = gl.GetUniformLocation(r.program, gl.Str("uColor\x00"))

	r.quadVAO, r.quadVBO = uploadMesh(quadVertices())
	r.cubeVAO, r.cubeVBO = uploadMesh(cubeVertices())

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, vao := range []uint32{r.quadVAO, r.cubeVAO} {
		if vao != 0 {
			gl.DeleteVertexArrays(1, &vao)
		}
	}
	for _, vbo := range []uint32{r.quadVBO, r.cubeVBO} {
		if vbo != 0 {
			gl.DeleteBuffers(1, &vbo)
		}
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Begin starts a new frame with the given view matrix.
func (r *Renderer) Begin(view math.Mat4) {
	aspect := float32(r.config.Width) / float32(r.config.Height)
	r.view = view
	r.proj = math.Perspective(r.config.FovY, aspect, 0.05, 100)

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawPlane draws a translucent plane indicator. The quad is a unit square
// on XZ scaled to the given extent.
func (r *Renderer) DrawPlane(position math.Vec3, orientation math.Quat, width, depth float32, color [3]float32, alpha float32) {
	model := math.Translate(position.X, position.Y, position.Z).
		Mul(orientation.ToMat4()).
		Mul(math.Scale(width, 1, depth))
	r.draw(r.quadVAO, 6, model, color, alpha)
}

// DrawBox draws an opaque box with the given model matrix.
func (r *Renderer) DrawBox(model math.Mat4, color [3]float32) {
	r.draw(r.cubeVAO, 36, model, color, 1)
}

func (r *Renderer) draw(vao uint32, count int32, model math.Mat4, color [3]float32, alpha float32) {
	mvp := r.proj.Mul(r.view).Mul(model)
	gl.UniformMatrix4fv(r.uniformMVP, 1, false, mvp.Ptr())
	gl.Uniform4f(r.uniformCol, color[0], color[1], color[2], alpha)
	gl.BindVertexArray(vao)
	gl.DrawArrays(gl.TRIANGLES, 0, count)
}

// uploadMesh creates a VAO/VBO pair for position-only vertices.
func uploadMesh(vertices []float32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// quadVertices is a unit square on the XZ plane, centered at the origin.
func quadVertices() []float32 {
	return []float32{
		-0.5, 0, -0.5, 0.5, 0, -0.5, 0.5, 0, 0.5,
		-0.5, 0, -0.5, 0.5, 0, 0.5, -0.5, 0, 0.5,
	}
}

// cubeVertices is a unit cube centered at the origin.
func cubeVertices() []float32 {
	return []float32{
		// Front
		-0.5, -0.5, 0.5, 0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
		-0.5, -0.5, 0.5, 0.5, 0.5, 0.5, -0.5, 0.5, 0.5,
		// Back
		0.5, -0.5, -0.5, -0.5, -0.5, -0.5, -0.5, 0.5, -0.5,
		0.5, -0.5, -0.5, -0.5, 0.5, -0.5, 0.5, 0.5, -0.5,
		// Left
		-0.5, -0.5, -0.5, -0.5, -0.5, 0.5, -0.5, 0.5, 0.5,
		-0.5, -0.5, -0.5, -0.5, 0.5, 0.5, -0.5, 0.5, -0.5,
		// Right
		0.5, -0.5, 0.5, 0.5, -0.5, -0.5, 0.5, 0.5, -0.5,
		0.5, -0.5, 0.5, 0.5, 0.5, -0.5, 0.5, 0.5, 0.5,
		// Top
		-0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, -0.5,
		-0.5, 0.5, 0.5, 0.5, 0.5, -0.5, -0.5, 0.5, -0.5,
		// Bottom
		-0.5, -0.5, -0.5, 0.5, -0.5, -0.5, 0.5, -0.5, 0.5,
		-0.5, -0.5, -0.5, 0.5, -0.5, 0.5, -0.5, -0.5, 0.5,
	}
}
