package ui2d

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/geoheat/internal/engine/shader"
	"github.com/Faultbox/geoheat/pkg/math"
)

const solidVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;
uniform mat4 uProjection;
out vec4 vColor;
void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const solidFragmentShader = `
#version 410 core
in vec4 vColor;
out vec4 FragColor;
void main() {
	FragColor = vColor;
}
`

const textVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aUV;
layout (location = 2) in vec4 aColor;
uniform mat4 uProjection;
out vec2 vUV;
out vec4 vColor;
void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vUV = aUV;
	vColor = aColor;
}
`

// The atlas is single channel; coverage becomes alpha.
const textFragmentShader = `
#version 410 core
in vec2 vUV;
in vec4 vColor;
uniform sampler2D uTexture;
out vec4 FragColor;
void main() {
	FragColor = vec4(vColor.rgb, vColor.a * texture(uTexture, vUV).r);
}
`

// Renderer draws a DrawList in screen space on top of the frame.
type Renderer struct {
	screenWidth  int
	screenHeight int

	solid *shader.Program
	text  *shader.Program

	solidVAO, solidVBO uint32
	textVAO, textVBO   uint32
	fontTex            uint32
}

// NewRenderer compiles the panel shaders and uploads the font atlas. width
// and height are in the units pointer events arrive in.
// Must be called after the OpenGL context exists.
func NewRenderer(font *Font, width, height int) (*Renderer, error) {
	r := &Renderer{screenWidth: width, screenHeight: height}

	var err error
	if r.solid, err = shader.Compile(solidVertexShader, solidFragmentShader); err != nil {
		return nil, fmt.Errorf("solid shader: %w", err)
	}
	if r.text, err = shader.Compile(textVertexShader, textFragmentShader); err != nil {
		r.Close()
		return nil, fmt.Errorf("text shader: %w", err)
	}

	r.solidVAO, r.solidVBO = vertexArray(solidStride, 3, 4)
	r.textVAO, r.textVBO = vertexArray(textStride, 3, 2, 4)
	r.fontTex = uploadAtlas(font)
	return r, nil
}

// vertexArray creates a VAO over a streaming VBO with tightly packed float
// attributes of the given sizes.
func vertexArray(stride int, sizes ...int32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	offset := 0
	for i, size := range sizes {
		gl.VertexAttribPointer(uint32(i), size, gl.FLOAT, false, int32(stride*4), gl.PtrOffset(offset*4))
		gl.EnableVertexAttribArray(uint32(i))
		offset += int(size)
	}

	gl.BindVertexArray(0)
	return vao, vbo
}

func uploadAtlas(font *Font) uint32 {
	atlas := font.Atlas()
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8,
		int32(atlas.Rect.Dx()), int32(atlas.Rect.Dy()), 0,
		gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
}

// Draw renders the list with blending on and depth testing off, then
// restores the previous state.
func (r *Renderer) Draw(list *DrawList) {
	solid, text := list.Solid(), list.Text()
	if len(solid) == 0 && len(text) == 0 {
		return
	}

	var prevBlend, prevDepth, prevCull int32
	gl.GetIntegerv(gl.BLEND, &prevBlend)
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)
	gl.GetIntegerv(gl.CULL_FACE, &prevCull)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	proj := math.Ortho(0, float32(r.screenWidth), float32(r.screenHeight), 0, -1, 1)

	if len(solid) > 0 {
		r.solid.Use()
		r.solid.SetMat4("uProjection", proj)
		stream(r.solidVAO, r.solidVBO, solid, solidStride)
	}
	if len(text) > 0 {
		r.text.Use()
		r.text.SetMat4("uProjection", proj)
		gl.Uniform1i(r.text.Uniform("uTexture"), 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.fontTex)
		stream(r.textVAO, r.textVBO, text, textStride)
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if prevBlend == gl.FALSE {
		gl.Disable(gl.BLEND)
	}
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
	if prevCull == gl.TRUE {
		gl.Enable(gl.CULL_FACE)
	}
}

func stream(vao, vbo uint32, vertices []float32, stride int) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/stride))
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	for _, vao := range []*uint32{&r.solidVAO, &r.textVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
			*vao = 0
		}
	}
	for _, vbo := range []*uint32{&r.solidVBO, &r.textVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
			*vbo = 0
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
		r.fontTex = 0
	}
	if r.solid != nil {
		r.solid.Delete()
	}
	if r.text != nil {
		r.text.Delete()
	}
}
