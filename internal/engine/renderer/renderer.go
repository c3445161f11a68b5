// Package renderer draws a model as a wireframe with OpenGL.
package renderer

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/engine/renderer/shaders"
	"github.com/Faultbox/objviewer/internal/engine/shader"
	"github.com/Faultbox/objviewer/internal/engine/wireframe"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/internal/settings"
	"github.com/Faultbox/objviewer/pkg/model"
)

// vertexStride is the byte size of one position: three float64 values.
const vertexStride = 3 * 8

// Renderer draws the edges and vertices of a model into the bound framebuffer.
// It must be created and used on the thread that owns the GL context.
type Renderer struct {
	program *shader.Program

	vao uint32
	vbo uint32
	ebo uint32

	// Face array currently held by the EBO, identified by its first
	// element and length.
	indexCount int
	indexData  *uint32

	width  int32
	height int32

	lineWidthRange [2]float32
	pointSizeRange [2]float32

	log *zap.Logger
}

// New creates a renderer.
// Must be called AFTER the OpenGL context is created.
func New() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		width:  1,
		height: 1,
		log:    logger.Named("renderer"),
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	// Edges are drawn in submission order with no depth test; geometry
	// outside the near and far planes is clamped instead of clipped.
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.DEPTH_CLAMP)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ProvokingVertex(gl.FIRST_VERTEX_CONVENTION)

	gl.GetFloatv(gl.ALIASED_LINE_WIDTH_RANGE, &r.lineWidthRange[0])
	gl.GetFloatv(gl.POINT_SIZE_RANGE, &r.pointSizeRange[0])
	r.log.Debug("stroke limits",
		zap.Float32s("lineWidth", r.lineWidthRange[:]),
		zap.Float32s("pointSize", r.pointSizeRange[:]),
	)

	program, err := shader.NewProgram(shaders.WireframeVertexShader, shaders.WireframeFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("wireframe shader: %w", err)
	}
	r.program = program

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.DOUBLE, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return r, nil
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}

// Resize sets the viewport dimensions used by the next Render.
func (r *Renderer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r.width = int32(width)
	r.height = int32(height)
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Upload replaces the GPU copy of the model's vertices and face indices.
func (r *Renderer) Upload(m *model.Model) {
	gl.BindVertexArray(r.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(m.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*8, gl.Ptr(m.Vertices), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}

	// The element buffer binding is VAO state.
	if len(m.Faces) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Faces)*4, gl.Ptr(m.Faces), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	r.indexCount = len(m.Faces)
	r.indexData = firstIndex(m.Faces)

	gl.BindVertexArray(0)

	r.log.Debug("model uploaded",
		zap.Uint32("vertices", m.VertexCount),
		zap.Uint32("polygons", m.PolygonCount),
		zap.Int("indices", r.indexCount),
	)
}

// Render clears the target and draws m with the given settings.
// Vertex positions are streamed every frame since transforms run on the CPU.
func (r *Renderer) Render(m *model.Model, s *settings.Settings) {
	gl.Viewport(0, 0, r.width, r.height)
	bg := s.BackgroundColor
	gl.ClearColor(bg.R, bg.G, bg.B, bg.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if m.Empty() {
		return
	}
	if r.staleIndices(m) {
		r.Upload(m)
	}

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*8, gl.Ptr(m.Vertices), gl.DYNAMIC_DRAW)

	r.program.Use()
	aspect := float32(r.width) / float32(r.height)
	r.program.SetMat4("uProjection", wireframe.Projection(s.Projection, aspect))
	r.program.SetVec2("uViewport", float32(r.width), float32(r.height))

	r.drawEdges(m, s)
	r.drawVertices(m, s)

	gl.BindVertexArray(0)
}

func (r *Renderer) drawEdges(m *model.Model, s *settings.Settings) {
	if len(m.Faces) == 0 {
		return
	}

	gl.LineWidth(clamp(float32(s.EdgeThickness), r.lineWidthRange))
	r.program.SetVec4("uColor", s.EdgeColor.Array())
	r.program.SetBool("uRoundPoints", false)
	r.program.SetBool("uStipple", s.EdgeType == settings.Dashed)
	r.program.SetInt("uStipplePattern", wireframe.StipplePattern)
	r.program.SetFloat("uStippleFactor", wireframe.StippleFactor)

	for _, dr := range wireframe.Plan(m) {
		gl.DrawElementsBaseVertex(gl.LINE_LOOP, dr.Count, gl.UNSIGNED_INT,
			gl.PtrOffset(int(dr.Offset)), wireframe.BaseVertex)
	}
}

func (r *Renderer) drawVertices(m *model.Model, s *settings.Settings) {
	draw, round := wireframe.PointStyle(s.DisplayMethod)
	if !draw {
		return
	}

	r.program.SetFloat("uPointSize", clamp(float32(s.VertexSize), r.pointSizeRange))
	r.program.SetVec4("uColor", s.VertexColor.Array())
	r.program.SetBool("uRoundPoints", round)
	r.program.SetBool("uStipple", false)

	gl.DrawArrays(gl.POINTS, 0, int32(m.VertexCount))
}

// staleIndices reports whether the EBO holds a different face array than m.
// Parsing always allocates a new array, so a reloaded or replaced model is
// detected even when its index count matches.
func (r *Renderer) staleIndices(m *model.Model) bool {
	return len(m.Faces) != r.indexCount || firstIndex(m.Faces) != r.indexData
}

func firstIndex(faces []uint32) *uint32 {
	if len(faces) == 0 {
		return nil
	}
	return &faces[0]
}

// clamp limits v to the [min, max] range reported by the driver.
// A zero range means the query failed and v is returned unchanged. NaN is
// treated as 1, the GL default width and size.
func clamp(v float32, limits [2]float32) float32 {
	if math.IsNaN(float64(v)) {
		v = 1
	}
	if limits[1] <= 0 {
		return v
	}
	if v < limits[0] {
		return limits[0]
	}
	if v > limits[1] {
		return limits[1]
	}
	return v
}
