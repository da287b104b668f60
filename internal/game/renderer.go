package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return gl.PtrOffset(n) }

const maxLineVerts = 16384
const maxPointVerts = 8192

type Renderer struct {
	// Line program: [x, y, r, g, b, a] per vertex.
	lineProg uint32
	lineVAO  uint32
	lineVBO  uint32
	lineURes int32

	// Point program: [x, y, size, r, g, b, a] per vertex.
	pointProg uint32
	pointVAO  uint32
	pointVBO  uint32
	pointURes int32

	// Text program: [x, y, u, v, r, g, b, a] per vertex.
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	fontTex      uint32
	textBuf      []float32
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{}

	prog, err := linkProgram(lineVertSrc, lineFragSrc)
	if err != nil {
		return nil, fmt.Errorf("line program: %w", err)
	}
	r.lineProg = prog
	r.lineURes = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	lineStride := int32(6 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxLineVerts*int(lineStride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, lineStride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, lineStride, glOffset(2*4))

	prog, err = linkProgram(pointVertSrc, pointFragSrc)
	if err != nil {
		return nil, fmt.Errorf("point program: %w", err)
	}
	r.pointProg = prog
	r.pointURes = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))

	gl.GenVertexArrays(1, &r.pointVAO)
	gl.GenBuffers(1, &r.pointVBO)
	gl.BindVertexArray(r.pointVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.pointVBO)
	pointStride := int32(7 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxPointVerts*int(pointStride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, pointStride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, pointStride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, pointStride, glOffset(3*4))

	gl.BindVertexArray(0)

	if err := r.initFont(); err != nil {
		return nil, err
	}
	return r, nil
}

// initFont uploads the built-in glyph atlas and sets up the text pipeline.
func (r *Renderer) initFont() error {
	pix := buildFontAtlas()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(FontAtlasW), int32(FontAtlasH), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	r.fontTex = tex

	prog, err := linkProgram(textVertSrc, textFragSrc)
	if err != nil {
		return fmt.Errorf("text program: %w", err)
	}
	r.textProg = prog
	gl.UseProgram(prog)
	r.textURes = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	r.textUFontTex = gl.GetUniformLocation(prog, gl.Str("uFontTex\x00"))
	gl.Uniform1i(r.textUFontTex, 2) // texture unit 2

	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, 1024*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	r.textVAO = vao
	r.textVBO = vbo
	gl.BindVertexArray(0)
	return nil
}

// BeginFrame sets the viewport and clears to the sky colour.
func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(
		float32(Palette.Sky.R)/255.0,
		float32(Palette.Sky.G)/255.0,
		float32(Palette.Sky.B)/255.0,
		1.0,
	)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawLines renders screen-space line segments.
// buf format: [x, y, r, g, b, a] * 2 per segment. additive = glow blend.
func (r *Renderer) DrawLines(buf []float32, fbW, fbH int, additive bool) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 6
	if count > maxLineVerts {
		count = maxLineVerts
	}

	gl.UseProgram(r.lineProg)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.Uniform2f(r.lineURes, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.ONE, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.BufferData(gl.ARRAY_BUFFER, count*6*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawPoints renders screen-space round point sprites.
// buf format: [x, y, size, r, g, b, a] * N.
func (r *Renderer) DrawPoints(buf []float32, fbW, fbH int, additive bool) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / 7
	if count > maxPointVerts {
		count = maxPointVerts
	}

	gl.UseProgram(r.pointProg)
	gl.BindVertexArray(r.pointVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.pointVBO)
	gl.Uniform2f(r.pointURes, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	if additive {
		gl.BlendFunc(gl.ONE, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}

	gl.BufferData(gl.ARRAY_BUFFER, count*7*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawChar queues a single character as a textured quad in screen pixel space.
func (r *Renderer) DrawChar(ch rune, sx, sy, scale float32, col RGB, alpha float32) {
	if ch < fontFirst || ch >= fontLast {
		return
	}
	c := int(ch) - fontFirst
	column := c % FontCols
	row := c / FontCols

	u0 := float32(column*FontCellW) / float32(FontAtlasW)
	v0 := float32(row*FontCellH) / float32(FontAtlasH)
	u1 := float32((column+1)*FontCellW) / float32(FontAtlasW)
	v1 := float32((row+1)*FontCellH) / float32(FontAtlasH)

	w := float32(FontCellW) * scale
	h := float32(FontCellH) * scale

	cr := float32(col.R) / 255.0
	cg := float32(col.G) / 255.0
	cb := float32(col.B) / 255.0

	// Two triangles: TL, TR, BL then TR, BR, BL.
	r.textBuf = append(r.textBuf,
		sx, sy, u0, v0, cr, cg, cb, alpha,
		sx+w, sy, u1, v0, cr, cg, cb, alpha,
		sx, sy+h, u0, v1, cr, cg, cb, alpha,
		sx+w, sy, u1, v0, cr, cg, cb, alpha,
		sx+w, sy+h, u1, v1, cr, cg, cb, alpha,
		sx, sy+h, u0, v1, cr, cg, cb, alpha,
	)
}

// DrawString queues a string at screen pixel position (sx, sy) with given scale.
func (r *Renderer) DrawString(text string, sx, sy int, scale float32, col RGB) {
	r.DrawStringAlpha(text, sx, sy, scale, col, 1.0)
}

func (r *Renderer) DrawStringAlpha(text string, sx, sy int, scale float32, col RGB, alpha float32) {
	advance := float32(FontCellW) * scale
	x := float32(sx)
	y := float32(sy)
	for _, ch := range text {
		r.DrawChar(ch, x, y, scale, col, alpha)
		x += advance
	}
}

// TextWidth returns the width in screen pixels of a string at given scale.
func TextWidth(text string, scale float32) int {
	return int(float32(len(text)*FontCellW) * scale)
}

// FlushText draws all buffered text quads and clears the buffer.
func (r *Renderer) FlushText(fbW, fbH int) {
	if len(r.textBuf) == 0 {
		return
	}

	gl.UseProgram(r.textProg)
	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
	gl.Uniform2f(r.textURes, float32(fbW), float32(fbH))

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(r.textBuf) / 8
	gl.BufferData(gl.ARRAY_BUFFER, len(r.textBuf)*4, gl.Ptr(r.textBuf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	gl.ActiveTexture(gl.TEXTURE0)
	r.textBuf = r.textBuf[:0]
}

func (r *Renderer) Destroy() {
	gl.DeleteProgram(r.lineProg)
	gl.DeleteProgram(r.pointProg)
	gl.DeleteProgram(r.textProg)
	gl.DeleteVertexArrays(1, &r.lineVAO)
	gl.DeleteVertexArrays(1, &r.pointVAO)
	gl.DeleteVertexArrays(1, &r.textVAO)
	gl.DeleteBuffers(1, &r.lineVBO)
	gl.DeleteBuffers(1, &r.pointVBO)
	gl.DeleteBuffers(1, &r.textVBO)
	gl.DeleteTextures(1, &r.fontTex)
}
