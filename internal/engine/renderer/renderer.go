// Package renderer draws the heat map scene with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/geoheat/internal/engine/shader"
	"github.com/Faultbox/geoheat/internal/logger"
	"github.com/Faultbox/geoheat/pkg/math"
)

// Vertex layout shared by every batch: position xyz then colour rgba.
const (
	floatsPerVertex = 7
	vertexBytes     = floatsPerVertex * 4
)

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uViewProj;

out vec4 vColor;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const fragmentShader = `
#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
}

// batch is a dynamic vertex buffer drawn with a single primitive type.
type batch struct {
	vao, vbo uint32
	mode     uint32
	count    int32
	capacity int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger

	bars  batch
	lines batch
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.MULTISAMPLE)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)

	var err error
	r.program, err = shader.Compile(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	shader.MustGetUniform(r.program.ID(), "uViewProj")

	r.bars = newBatch(gl.TRIANGLES)
	r.lines = newBatch(gl.LINES)
	r.Resize(cfg.Width, cfg.Height)

	r.log.Debug("renderer ready", zap.Uint32("program", r.program.ID()))
	return r, nil
}

func newBatch(mode uint32) batch {
	b := batch{mode: mode}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexBytes, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, vertexBytes, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return b
}

// upload replaces the batch contents, growing the buffer when needed.
func (b *batch) upload(vertices []float32) {
	b.count = int32(len(vertices) / floatsPerVertex)
	if len(vertices) == 0 {
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	size := len(vertices) * 4
	if size > b.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&vertices[0]), gl.DYNAMIC_DRAW)
		b.capacity = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&vertices[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *batch) draw() {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(b.mode, 0, b.count)
	gl.BindVertexArray(0)
}

func (b *batch) delete() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.bars.delete()
	r.lines.delete()
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles framebuffer resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetBars uploads bar triangles.
func (r *Renderer) SetBars(vertices []float32) {
	r.bars.upload(vertices)
}

// SetLines uploads line segments (surface outline, backdrop).
func (r *Renderer) SetLines(vertices []float32) {
	r.lines.upload(vertices)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders every batch with the given view-projection matrix.
func (r *Renderer) Draw(viewProj math.Mat4) {
	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj)
	r.lines.draw()
	r.bars.draw()
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, width, height
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}
