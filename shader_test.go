// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glprims

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// scriptedContext is a Context whose compile and link outcomes are fixed in
// advance. It records the calls that matter for object ownership.
type scriptedContext struct {
	next       uint32
	compileLog map[gputypes.ShaderStage]string // non-empty log means failure
	linkLog    string
	noObjects  bool
	calls      []string
	stages     map[uint32]gputypes.ShaderStage
}

func newScripted() *scriptedContext {
	return &scriptedContext{
		compileLog: make(map[gputypes.ShaderStage]string),
		stages:     make(map[uint32]gputypes.ShaderStage),
	}
}

func (c *scriptedContext) record(format string, args ...any) {
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

func (c *scriptedContext) id() uint32 {
	if c.noObjects {
		return 0
	}
	c.next++
	return c.next
}

func (c *scriptedContext) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "scripted", Type: gpucontext.AdapterTypeUnknown}
}

func (c *scriptedContext) CreateShader(stage gputypes.ShaderStage) Shader {
	id := c.id()
	c.stages[id] = stage
	c.record("CreateShader(%d)", id)
	return Shader{Value: id}
}
func (c *scriptedContext) ShaderSource(Shader, string) {}
func (c *scriptedContext) CompileShader(s Shader) { c.record("CompileShader(%d)", s.Value) }
func (c *scriptedContext) ShaderCompileStatus(s Shader) bool {
	return c.compileLog[c.stages[s.Value]] == ""
}
func (c *scriptedContext) ShaderInfoLog(s Shader) string { return c.compileLog[c.stages[s.Value]] }
func (c *scriptedContext) DeleteShader(s Shader) { c.record("DeleteShader(%d)", s.Value) }

func (c *scriptedContext) CreateProgram() Program {
	id := c.id()
	c.record("CreateProgram(%d)", id)
	return Program{Value: id}
}
func (c *scriptedContext) AttachShader(p Program, s Shader) {
	c.record("AttachShader(%d, %d)", p.Value, s.Value)
}
func (c *scriptedContext) DetachShader(p Program, s Shader) {
	c.record("DetachShader(%d, %d)", p.Value, s.Value)
}
func (c *scriptedContext) LinkProgram(p Program) { c.record("LinkProgram(%d)", p.Value) }
func (c *scriptedContext) ProgramLinkStatus(Program) bool { return c.linkLog == "" }
func (c *scriptedContext) ProgramInfoLog(Program) string { return c.linkLog }
func (c *scriptedContext) DeleteProgram(p Program) { c.record("DeleteProgram(%d)", p.Value) }
func (c *scriptedContext) UseProgram(Program) {}
func (c *scriptedContext) GetAttribLocation(Program, string) int { return -1 }
func (c *scriptedContext) GetUniformLocation(Program, string) Uniform { return NoUniform }

func (c *scriptedContext) CreateBuffer() Buffer { return Buffer{Value: c.id()} }
func (c *scriptedContext) BindBuffer(BufferTarget, Buffer) {}
func (c *scriptedContext) BufferData(BufferTarget, []float32, BufferUsage) {}
func (c *scriptedContext) DeleteBuffer(Buffer) {}
func (c *scriptedContext) CreateVertexArray() VertexArray { return VertexArray{Value: c.id()} }
func (c *scriptedContext) BindVertexArray(VertexArray) {}
func (c *scriptedContext) DeleteVertexArray(VertexArray) {}
func (c *scriptedContext) EnableVertexAttribArray(int) {}
func (c *scriptedContext) VertexAttribPointer(int, int, DataType, bool, int, int) {}
func (c *scriptedContext) Uniform2f(Uniform, float32, float32) {}
func (c *scriptedContext) Uniform4f(Uniform, float32, float32, float32, float32) {}
func (c *scriptedContext) Viewport(int, int, int, int) {}
func (c *scriptedContext) ClearColor(float32, float32, float32, float32) {}
func (c *scriptedContext) Clear(ClearMask) {}
func (c *scriptedContext) DrawArrays(gputypes.PrimitiveTopology, int, int) {}

func TestCompileShader(t *testing.T) {
	gl := newScripted()
	s, err := CompileShader(gl, gputypes.ShaderStageVertex, "void main() {}")
	if err != nil {
		t.Fatalf("CompileShader() error = %v", err)
	}
	if !s.Valid() {
		t.Error("CompileShader() returned an invalid shader")
	}
}

func TestCompileShaderFailure(t *testing.T) {
	const log = "ERROR: 0:2: 'void' : syntax error"
	gl := newScripted()
	gl.compileLog[gputypes.ShaderStageFragment] = log

	s, err := CompileShader(gl, gputypes.ShaderStageFragment, "bad")
	if s.Valid() {
		t.Error("failed compile returned a valid shader")
	}
	var ce *ShaderCompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *ShaderCompileError", err)
	}
	if ce.Stage != gputypes.ShaderStageFragment || ce.Log != log {
		t.Errorf("error = %+v, want fragment stage with the compiler log", ce)
	}
	want := []string{"CreateShader(1)", "CompileShader(1)", "DeleteShader(1)"}
	if !reflect.DeepEqual(gl.calls, want) {
		t.Errorf("calls = %v, want %v", gl.calls, want)
	}
}

func TestCompileShaderUnsupportedStage(t *testing.T) {
	gl := newScripted()
	_, err := CompileShader(gl, gputypes.ShaderStageCompute, "")
	var ce *ShaderCompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *ShaderCompileError", err)
	}
	if !strings.Contains(ce.Log, "unsupported") {
		t.Errorf("Log = %q, want it to mention the unsupported stage", ce.Log)
	}
	if len(gl.calls) != 0 {
		t.Errorf("calls = %v, want none", gl.calls)
	}
}

func TestCompileShaderNoHandle(t *testing.T) {
	gl := newScripted()
	gl.noObjects = true
	_, err := CompileShader(gl, gputypes.ShaderStageVertex, "")
	var rc *ResourceCreationError
	if !errors.As(err, &rc) {
		t.Fatalf("error = %v, want *ResourceCreationError", err)
	}
	if rc.Resource != "vertex shader" {
		t.Errorf("Resource = %q, want %q", rc.Resource, "vertex shader")
	}
}

func TestLinkProgramFailure(t *testing.T) {
	gl := newScripted()
	gl.linkLog = "ERROR: Linking failed: varying 'v' is not declared"

	p, err := LinkProgram(gl, Shader{Value: 7}, Shader{Value: 8})
	if p.Valid() {
		t.Error("failed link returned a valid program")
	}
	var le *ProgramLinkError
	if !errors.As(err, &le) || le.Log != gl.linkLog {
		t.Fatalf("error = %v, want *ProgramLinkError with the linker log", err)
	}
	want := []string{
		"CreateProgram(1)", "AttachShader(1, 7)", "AttachShader(1, 8)",
		"LinkProgram(1)", "DeleteProgram(1)",
	}
	if !reflect.DeepEqual(gl.calls, want) {
		t.Errorf("calls = %v, want %v", gl.calls, want)
	}
}

func TestLinkProgramInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		vs, fs Shader
	}{
		{"no vertex", Shader{}, Shader{Value: 1}},
		{"no fragment", Shader{Value: 1}, Shader{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl := newScripted()
			_, err := LinkProgram(gl, tt.vs, tt.fs)
			var le *ProgramLinkError
			if !errors.As(err, &le) {
				t.Fatalf("error = %v, want *ProgramLinkError", err)
			}
			if len(gl.calls) != 0 {
				t.Errorf("calls = %v, want none", gl.calls)
			}
		})
	}
}

func TestBuildProgramReleasesShaders(t *testing.T) {
	gl := newScripted()
	p, err := BuildProgram(gl, "vs", "fs")
	if err != nil {
		t.Fatalf("BuildProgram() error = %v", err)
	}
	if p.Value != 3 {
		t.Errorf("program = %d, want 3", p.Value)
	}
	want := []string{
		"CreateShader(1)", "CompileShader(1)",
		"CreateShader(2)", "CompileShader(2)",
		"CreateProgram(3)", "AttachShader(3, 1)", "AttachShader(3, 2)", "LinkProgram(3)",
		"DetachShader(3, 1)", "DetachShader(3, 2)",
		"DeleteShader(2)", "DeleteShader(1)",
	}
	if !reflect.DeepEqual(gl.calls, want) {
		t.Errorf("calls = %v, want %v", gl.calls, want)
	}
}

func TestBuildProgramFragmentFailure(t *testing.T) {
	gl := newScripted()
	gl.compileLog[gputypes.ShaderStageFragment] = "ERROR: 0:1: '' : bad"
	_, err := BuildProgram(gl, "vs", "fs")
	var ce *ShaderCompileError
	if !errors.As(err, &ce) || ce.Stage != gputypes.ShaderStageFragment {
		t.Fatalf("error = %v, want fragment *ShaderCompileError", err)
	}
	want := []string{
		"CreateShader(1)", "CompileShader(1)",
		"CreateShader(2)", "CompileShader(2)", "DeleteShader(2)",
		"DeleteShader(1)",
	}
	if !reflect.DeepEqual(gl.calls, want) {
		t.Errorf("calls = %v, want %v", gl.calls, want)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ShaderCompileError{Stage: gputypes.ShaderStageVertex, Log: "x"}, "glprims: vertex shader compile failed: x"},
		{&ShaderCompileError{Stage: gputypes.ShaderStageFragment}, "glprims: fragment shader compile failed"},
		{&ProgramLinkError{Log: "y"}, "glprims: program link failed: y"},
		{&ProgramLinkError{}, "glprims: program link failed"},
		{&ResourceCreationError{Resource: "buffer"}, "glprims: failed to create buffer"},
		{&BackendNotFoundError{Name: "vulkan"}, "glprims: backend not found: vulkan"},
		{&BackendUnavailableError{Name: "webgl2"}, "glprims: backend unavailable: webgl2"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
