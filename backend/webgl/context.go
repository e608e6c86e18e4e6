// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js && wasm

package webgl

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/hack-pad/safejs"

	"github.com/gogpu/glprims"
)

// Context implements glprims.Context on a WebGL2RenderingContext.
//
// JavaScript objects are kept in a table and handed out as numeric
// handles. Calls that throw are logged and remembered; Err returns the
// first such error.
type Context struct {
	canvas *Canvas
	gl     safejs.Value

	objects  map[uint32]safejs.Value
	uniforms map[int32]uniformRef
	next     uint32
	nextLoc  int32

	uint8Array   safejs.Value
	float32Array safejs.Value

	err error
}

type uniformRef struct {
	program uint32
	loc     safejs.Value
}

var _ glprims.Context = (*Context)(nil)

// New acquires the webgl2 context of canvas. It fails with
// glprims.ErrContextUnavailable when the browser returns null.
func New(canvas *Canvas) (*Context, error) {
	gl, err := canvas.el.Call("getContext", "webgl2")
	if err != nil {
		return nil, fmt.Errorf("%w: webgl: getContext: %w", glprims.ErrContextUnavailable, err)
	}
	if gl.IsNull() || gl.IsUndefined() {
		return nil, fmt.Errorf("%w: webgl: getContext(\"webgl2\") returned null", glprims.ErrContextUnavailable)
	}
	global := safejs.Global()
	u8, err := global.Get("Uint8Array")
	if err != nil {
		return nil, fmt.Errorf("webgl: Uint8Array: %w", err)
	}
	f32, err := global.Get("Float32Array")
	if err != nil {
		return nil, fmt.Errorf("webgl: Float32Array: %w", err)
	}
	return &Context{
		canvas:       canvas,
		gl:           gl,
		objects:      make(map[uint32]safejs.Value),
		uniforms:     make(map[int32]uniformRef),
		uint8Array:   u8,
		float32Array: f32,
	}, nil
}

// Canvas returns the surface the context draws into.
func (c *Context) Canvas() *Canvas { return c.canvas }

// Err returns the first error a WebGL call raised.
func (c *Context) Err() error { return c.err }

func (c *Context) call(method string, args ...any) safejs.Value {
	v, err := c.gl.Call(method, args...)
	if err != nil {
		logger().Warn("webgl: call failed", "method", method, "err", err)
		if c.err == nil {
			c.err = fmt.Errorf("webgl: %s: %w", method, err)
		}
		return safejs.Null()
	}
	return v
}

// store keeps v and returns its handle, or 0 when v is null.
func (c *Context) store(v safejs.Value) uint32 {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	c.next++
	c.objects[c.next] = v
	return c.next
}

// object returns the JavaScript value behind handle id, or null.
func (c *Context) object(id uint32) safejs.Value {
	if v, ok := c.objects[id]; ok {
		return v
	}
	return safejs.Null()
}

func (c *Context) remove(method string, id uint32) {
	v, ok := c.objects[id]
	if !ok {
		return
	}
	c.call(method, v)
	delete(c.objects, id)
}

func (c *Context) boolCall(method string, args ...any) bool {
	b, err := c.call(method, args...).Bool()
	return err == nil && b
}

func (c *Context) stringCall(method string, args ...any) string {
	v := c.call(method, args...)
	if v.IsNull() {
		return ""
	}
	s, err := v.String()
	if err != nil {
		return ""
	}
	return s
}

// AdapterInfo implements glprims.Context. Browsers hide the device name
// unless WEBGL_debug_renderer_info is available.
func (c *Context) AdapterInfo() gpucontext.AdapterInfo {
	name := "WebGL2"
	if ext := c.call("getExtension", "WEBGL_debug_renderer_info"); !ext.IsNull() {
		if enum, err := ext.Get("UNMASKED_RENDERER_WEBGL"); err == nil {
			if s := c.stringCall("getParameter", enum); s != "" {
				name = s
			}
		}
	}
	return gpucontext.AdapterInfo{Name: name, Type: gpucontext.AdapterTypeUnknown}
}

// CreateShader implements glprims.Context.
func (c *Context) CreateShader(stage gputypes.ShaderStage) glprims.Shader {
	enum, ok := stageEnum(stage)
	if !ok {
		return glprims.Shader{}
	}
	return glprims.Shader{Value: c.store(c.call("createShader", enum))}
}

// ShaderSource implements glprims.Context.
func (c *Context) ShaderSource(s glprims.Shader, source string) {
	c.call("shaderSource", c.object(s.Value), source)
}

// CompileShader implements glprims.Context.
func (c *Context) CompileShader(s glprims.Shader) {
	c.call("compileShader", c.object(s.Value))
}

// ShaderCompileStatus implements glprims.Context.
func (c *Context) ShaderCompileStatus(s glprims.Shader) bool {
	return c.boolCall("getShaderParameter", c.object(s.Value), compileStatus)
}

// ShaderInfoLog implements glprims.Context.
func (c *Context) ShaderInfoLog(s glprims.Shader) string {
	return c.stringCall("getShaderInfoLog", c.object(s.Value))
}

// DeleteShader implements glprims.Context.
func (c *Context) DeleteShader(s glprims.Shader) { c.remove("deleteShader", s.Value) }

// CreateProgram implements glprims.Context.
func (c *Context) CreateProgram() glprims.Program {
	return glprims.Program{Value: c.store(c.call("createProgram"))}
}

// AttachShader implements glprims.Context.
func (c *Context) AttachShader(p glprims.Program, s glprims.Shader) {
	c.call("attachShader", c.object(p.Value), c.object(s.Value))
}

// DetachShader implements glprims.Context.
func (c *Context) DetachShader(p glprims.Program, s glprims.Shader) {
	c.call("detachShader", c.object(p.Value), c.object(s.Value))
}

// LinkProgram implements glprims.Context.
func (c *Context) LinkProgram(p glprims.Program) { c.call("linkProgram", c.object(p.Value)) }

// ProgramLinkStatus implements glprims.Context.
func (c *Context) ProgramLinkStatus(p glprims.Program) bool {
	return c.boolCall("getProgramParameter", c.object(p.Value), linkStatus)
}

// ProgramInfoLog implements glprims.Context.
func (c *Context) ProgramInfoLog(p glprims.Program) string {
	return c.stringCall("getProgramInfoLog", c.object(p.Value))
}

// DeleteProgram implements glprims.Context. Uniform locations of the
// program are forgotten.
func (c *Context) DeleteProgram(p glprims.Program) {
	for id, u := range c.uniforms {
		if u.program == p.Value {
			delete(c.uniforms, id)
		}
	}
	c.remove("deleteProgram", p.Value)
}

// UseProgram implements glprims.Context.
func (c *Context) UseProgram(p glprims.Program) { c.call("useProgram", c.object(p.Value)) }

// GetAttribLocation implements glprims.Context.
func (c *Context) GetAttribLocation(p glprims.Program, name string) int {
	n, err := c.call("getAttribLocation", c.object(p.Value), name).Int()
	if err != nil {
		return -1
	}
	return n
}

// GetUniformLocation implements glprims.Context.
func (c *Context) GetUniformLocation(p glprims.Program, name string) glprims.Uniform {
	loc := c.call("getUniformLocation", c.object(p.Value), name)
	if loc.IsNull() || loc.IsUndefined() {
		return glprims.NoUniform
	}
	id := c.nextLoc
	c.nextLoc++
	c.uniforms[id] = uniformRef{program: p.Value, loc: loc}
	return glprims.Uniform{Value: id}
}

func (c *Context) uniform(u glprims.Uniform) (safejs.Value, bool) {
	ref, ok := c.uniforms[u.Value]
	return ref.loc, ok
}

// CreateBuffer implements glprims.Context.
func (c *Context) CreateBuffer() glprims.Buffer {
	return glprims.Buffer{Value: c.store(c.call("createBuffer"))}
}

// BindBuffer implements glprims.Context.
func (c *Context) BindBuffer(target glprims.BufferTarget, b glprims.Buffer) {
	c.call("bindBuffer", int(target), c.object(b.Value))
}

// BufferData implements glprims.Context. data is copied into a
// Float32Array.
func (c *Context) BufferData(target glprims.BufferTarget, data []float32, usage glprims.BufferUsage) {
	arr, err := c.floats(data)
	if err != nil {
		logger().Warn("webgl: float32 upload failed", "err", err)
		if c.err == nil {
			c.err = err
		}
		return
	}
	c.call("bufferData", int(target), arr, int(usage))
}

// floats copies data into a new Float32Array. wasm is little-endian, like
// typed arrays on every browser platform.
func (c *Context) floats(data []float32) (safejs.Value, error) {
	n := len(data) * glprims.Float.Size()
	bytes, err := c.uint8Array.New(n)
	if err != nil {
		return safejs.Value{}, fmt.Errorf("webgl: Uint8Array: %w", err)
	}
	if n > 0 {
		raw := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(data))), n)
		if _, err := safejs.CopyBytesToJS(bytes, raw); err != nil {
			return safejs.Value{}, fmt.Errorf("webgl: copy: %w", err)
		}
	}
	buf, err := bytes.Get("buffer")
	if err != nil {
		return safejs.Value{}, fmt.Errorf("webgl: buffer: %w", err)
	}
	return c.float32Array.New(buf)
}

// DeleteBuffer implements glprims.Context.
func (c *Context) DeleteBuffer(b glprims.Buffer) { c.remove("deleteBuffer", b.Value) }

// CreateVertexArray implements glprims.Context.
func (c *Context) CreateVertexArray() glprims.VertexArray {
	return glprims.VertexArray{Value: c.store(c.call("createVertexArray"))}
}

// BindVertexArray implements glprims.Context.
func (c *Context) BindVertexArray(v glprims.VertexArray) {
	c.call("bindVertexArray", c.object(v.Value))
}

// DeleteVertexArray implements glprims.Context.
func (c *Context) DeleteVertexArray(v glprims.VertexArray) {
	c.remove("deleteVertexArray", v.Value)
}

// EnableVertexAttribArray implements glprims.Context.
func (c *Context) EnableVertexAttribArray(index int) {
	c.call("enableVertexAttribArray", index)
}

// VertexAttribPointer implements glprims.Context.
func (c *Context) VertexAttribPointer(index, size int, t glprims.DataType, normalized bool, stride, offset int) {
	c.call("vertexAttribPointer", index, size, int(t), normalized, stride, offset)
}

// Uniform2f implements glprims.Context. Unknown locations are ignored.
func (c *Context) Uniform2f(u glprims.Uniform, x, y float32) {
	if loc, ok := c.uniform(u); ok {
		c.call("uniform2f", loc, x, y)
	}
}

// Uniform4f implements glprims.Context. Unknown locations are ignored.
func (c *Context) Uniform4f(u glprims.Uniform, x, y, z, w float32) {
	if loc, ok := c.uniform(u); ok {
		c.call("uniform4f", loc, x, y, z, w)
	}
}

// Viewport implements glprims.Context.
func (c *Context) Viewport(x, y, width, height int) {
	c.call("viewport", x, y, width, height)
}

// ClearColor implements glprims.Context.
func (c *Context) ClearColor(r, g, b, a float32) { c.call("clearColor", r, g, b, a) }

// Clear implements glprims.Context.
func (c *Context) Clear(mask glprims.ClearMask) { c.call("clear", int(mask)) }

// DrawArrays implements glprims.Context.
func (c *Context) DrawArrays(mode gputypes.PrimitiveTopology, first, count int) {
	m, ok := drawModes[mode]
	if !ok {
		logger().Warn("webgl: unsupported topology", "topology", mode)
		return
	}
	c.call("drawArrays", m, first, count)
}
