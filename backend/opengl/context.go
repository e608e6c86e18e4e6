// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build cgo && !js

package opengl

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glprims"
)

// Context implements glprims.Context on the OpenGL context of a Window.
// The window's context must be current on the calling thread.
type Context struct {
	window *Window
	info   gpucontext.AdapterInfo
}

var _ glprims.Context = (*Context)(nil)

// New creates a context drawing into w's backing buffer.
func New(w *Window) *Context {
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	vendor := gl.GoStr(gl.GetString(gl.VENDOR))
	version := gl.GoStr(gl.GetString(gl.VERSION))
	logger().Info("opengl: context created", "renderer", renderer, "vendor", vendor, "version", version)
	return &Context{
		window: w,
		info:   gpucontext.AdapterInfo{Name: renderer, Type: adapterType(renderer)},
	}
}

// Window returns the surface the context draws into.
func (c *Context) Window() *Window { return c.window }

// AdapterInfo implements glprims.Context.
func (c *Context) AdapterInfo() gpucontext.AdapterInfo { return c.info }

func cstr(s string) *uint8 { return gl.Str(s + "\x00") }

// CreateShader implements glprims.Context.
func (c *Context) CreateShader(stage gputypes.ShaderStage) glprims.Shader {
	switch stage {
	case gputypes.ShaderStageVertex:
		return glprims.Shader{Value: gl.CreateShader(gl.VERTEX_SHADER)}
	case gputypes.ShaderStageFragment:
		return glprims.Shader{Value: gl.CreateShader(gl.FRAGMENT_SHADER)}
	default:
		return glprims.Shader{}
	}
}

// ShaderSource implements glprims.Context. WebGL2 sources are rewritten
// for the desktop core profile.
func (c *Context) ShaderSource(s glprims.Shader, source string) {
	csources, free := gl.Strs(DesktopSource(source) + "\x00")
	gl.ShaderSource(s.Value, 1, csources, nil)
	free()
}

// CompileShader implements glprims.Context.
func (c *Context) CompileShader(s glprims.Shader) { gl.CompileShader(s.Value) }

// ShaderCompileStatus implements glprims.Context.
func (c *Context) ShaderCompileStatus(s glprims.Shader) bool {
	var status int32
	gl.GetShaderiv(s.Value, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

// ShaderInfoLog implements glprims.Context.
func (c *Context) ShaderInfoLog(s glprims.Shader) string {
	var n int32
	gl.GetShaderiv(s.Value, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	log := make([]byte, n)
	gl.GetShaderInfoLog(s.Value, n, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

// DeleteShader implements glprims.Context.
func (c *Context) DeleteShader(s glprims.Shader) { gl.DeleteShader(s.Value) }

// CreateProgram implements glprims.Context.
func (c *Context) CreateProgram() glprims.Program {
	return glprims.Program{Value: gl.CreateProgram()}
}

// AttachShader implements glprims.Context.
func (c *Context) AttachShader(p glprims.Program, s glprims.Shader) {
	gl.AttachShader(p.Value, s.Value)
}

// DetachShader implements glprims.Context.
func (c *Context) DetachShader(p glprims.Program, s glprims.Shader) {
	gl.DetachShader(p.Value, s.Value)
}

// LinkProgram implements glprims.Context.
func (c *Context) LinkProgram(p glprims.Program) { gl.LinkProgram(p.Value) }

// ProgramLinkStatus implements glprims.Context.
func (c *Context) ProgramLinkStatus(p glprims.Program) bool {
	var status int32
	gl.GetProgramiv(p.Value, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

// ProgramInfoLog implements glprims.Context.
func (c *Context) ProgramInfoLog(p glprims.Program) string {
	var n int32
	gl.GetProgramiv(p.Value, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	log := make([]byte, n)
	gl.GetProgramInfoLog(p.Value, n, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

// DeleteProgram implements glprims.Context.
func (c *Context) DeleteProgram(p glprims.Program) { gl.DeleteProgram(p.Value) }

// UseProgram implements glprims.Context.
func (c *Context) UseProgram(p glprims.Program) { gl.UseProgram(p.Value) }

// GetAttribLocation implements glprims.Context.
func (c *Context) GetAttribLocation(p glprims.Program, name string) int {
	return int(gl.GetAttribLocation(p.Value, cstr(name)))
}

// GetUniformLocation implements glprims.Context.
func (c *Context) GetUniformLocation(p glprims.Program, name string) glprims.Uniform {
	loc := gl.GetUniformLocation(p.Value, cstr(name))
	if loc < 0 {
		return glprims.NoUniform
	}
	return glprims.Uniform{Value: loc}
}

// CreateBuffer implements glprims.Context.
func (c *Context) CreateBuffer() glprims.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return glprims.Buffer{Value: b}
}

// BindBuffer implements glprims.Context.
func (c *Context) BindBuffer(target glprims.BufferTarget, b glprims.Buffer) {
	gl.BindBuffer(uint32(target), b.Value)
}

// BufferData implements glprims.Context.
func (c *Context) BufferData(target glprims.BufferTarget, data []float32, usage glprims.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data)*glprims.Float.Size(), gl.Ptr(data), uint32(usage))
}

// DeleteBuffer implements glprims.Context.
func (c *Context) DeleteBuffer(b glprims.Buffer) {
	if b.Valid() {
		gl.DeleteBuffers(1, &b.Value)
	}
}

// CreateVertexArray implements glprims.Context.
func (c *Context) CreateVertexArray() glprims.VertexArray {
	var v uint32
	gl.GenVertexArrays(1, &v)
	return glprims.VertexArray{Value: v}
}

// BindVertexArray implements glprims.Context.
func (c *Context) BindVertexArray(v glprims.VertexArray) { gl.BindVertexArray(v.Value) }

// DeleteVertexArray implements glprims.Context.
func (c *Context) DeleteVertexArray(v glprims.VertexArray) {
	if v.Valid() {
		gl.DeleteVertexArrays(1, &v.Value)
	}
}

// EnableVertexAttribArray implements glprims.Context.
func (c *Context) EnableVertexAttribArray(index int) {
	gl.EnableVertexAttribArray(uint32(index))
}

// VertexAttribPointer implements glprims.Context.
func (c *Context) VertexAttribPointer(index, size int, t glprims.DataType, normalized bool, stride, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(index), int32(size), uint32(t), normalized, int32(stride), uintptr(offset))
}

// Uniform2f implements glprims.Context.
func (c *Context) Uniform2f(u glprims.Uniform, x, y float32) { gl.Uniform2f(u.Value, x, y) }

// Uniform4f implements glprims.Context.
func (c *Context) Uniform4f(u glprims.Uniform, x, y, z, w float32) {
	gl.Uniform4f(u.Value, x, y, z, w)
}

// Viewport implements glprims.Context.
func (c *Context) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// ClearColor implements glprims.Context.
func (c *Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

// Clear implements glprims.Context.
func (c *Context) Clear(mask glprims.ClearMask) { gl.Clear(uint32(mask)) }

// DrawArrays implements glprims.Context.
func (c *Context) DrawArrays(mode gputypes.PrimitiveTopology, first, count int) {
	m, ok := drawMode(mode)
	if !ok {
		logger().Warn("opengl: unsupported topology", "topology", mode)
		return
	}
	gl.DrawArrays(m, int32(first), int32(count))
}
