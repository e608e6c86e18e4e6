// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glprims

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Shader is a compiled (or compiling) shader stage object.
// The zero value is no shader.
type Shader struct{ Value uint32 }

// Valid reports whether s names a shader object.
func (s Shader) Valid() bool { return s.Value != 0 }

// Program is a program object linking a vertex and a fragment stage.
// The zero value is no program.
type Program struct{ Value uint32 }

// Valid reports whether p names a program object.
func (p Program) Valid() bool { return p.Value != 0 }

// Buffer is a GPU-resident array of vertex data.
// The zero value is no buffer.
type Buffer struct{ Value uint32 }

// Valid reports whether b names a buffer object.
func (b Buffer) Valid() bool { return b.Value != 0 }

// VertexArray records how buffer bytes map to shader inputs.
// The zero value is no vertex array.
type VertexArray struct{ Value uint32 }

// Valid reports whether v names a vertex array object.
func (v VertexArray) Valid() bool { return v.Value != 0 }

// Uniform is the location of an active uniform in a linked program.
// A Value of -1 means the name did not resolve.
type Uniform struct{ Value int32 }

// Valid reports whether u refers to an active uniform.
func (u Uniform) Valid() bool { return u.Value >= 0 }

// NoUniform is returned for names that are not active uniforms.
var NoUniform = Uniform{Value: -1}

// BufferTarget selects the binding point for BindBuffer and BufferData.
type BufferTarget uint32

const (
	// ArrayBuffer holds vertex attributes.
	ArrayBuffer BufferTarget = 0x8892
)

// BufferUsage hints how buffer contents will be updated.
type BufferUsage uint32

const (
	// StaticDraw is written once and drawn many times.
	StaticDraw BufferUsage = 0x88e4
	// DynamicDraw is rewritten repeatedly.
	DynamicDraw BufferUsage = 0x88e8
)

// DataType is the numeric type of vertex attribute components.
type DataType uint32

const (
	// Float is a 32-bit IEEE float.
	Float DataType = 0x1406
)

// Size returns the size in bytes of one component.
func (t DataType) Size() int {
	switch t {
	case Float:
		return 4
	default:
		return 0
	}
}

// ClearMask selects which buffers Clear resets.
type ClearMask uint32

const (
	// ColorBufferBit clears the color buffer.
	ColorBufferBit ClearMask = 0x4000
)

// Context is a rendering capability bound to a display surface.
//
// The method set is the subset of WebGL2 the exercises use. Creation methods
// return the zero handle when the object cannot be created. Methods taking
// handles ignore zero handles the way the browser API ignores null.
//
// A Context is not safe for concurrent use.
type Context interface {
	// AdapterInfo describes the device behind the context.
	AdapterInfo() gpucontext.AdapterInfo

	CreateShader(stage gputypes.ShaderStage) Shader
	ShaderSource(s Shader, source string)
	CompileShader(s Shader)
	// ShaderCompileStatus reports the COMPILE_STATUS flag.
	ShaderCompileStatus(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	DetachShader(p Program, s Shader)
	LinkProgram(p Program)
	// ProgramLinkStatus reports the LINK_STATUS flag.
	ProgramLinkStatus(p Program) bool
	ProgramInfoLog(p Program) string
	DeleteProgram(p Program)
	UseProgram(p Program)

	// GetAttribLocation returns -1 if name is not an active attribute.
	GetAttribLocation(p Program, name string) int
	// GetUniformLocation returns NoUniform if name is not an active uniform.
	GetUniformLocation(p Program, name string) Uniform

	CreateBuffer() Buffer
	BindBuffer(target BufferTarget, b Buffer)
	BufferData(target BufferTarget, data []float32, usage BufferUsage)
	DeleteBuffer(b Buffer)

	CreateVertexArray() VertexArray
	BindVertexArray(v VertexArray)
	DeleteVertexArray(v VertexArray)
	EnableVertexAttribArray(index int)
	// VertexAttribPointer describes attribute index as size components of
	// type t read from the bound array buffer. Stride and offset are in bytes;
	// a zero stride means tightly packed.
	VertexAttribPointer(index, size int, t DataType, normalized bool, stride, offset int)

	Uniform2f(u Uniform, x, y float32)
	Uniform4f(u Uniform, x, y, z, w float32)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	DrawArrays(mode gputypes.PrimitiveTopology, first, count int)
}
