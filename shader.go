// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glprims

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// CompileShader creates a shader object for stage, compiles source into it
// and checks the compile status.
//
// On failure the compiler's info log is captured, the shader object is
// deleted and a *ShaderCompileError carrying the log is returned. Only
// vertex and fragment stages are supported.
func CompileShader(gl Context, stage gputypes.ShaderStage, source string) (Shader, error) {
	if stage != gputypes.ShaderStageVertex && stage != gputypes.ShaderStageFragment {
		return Shader{}, &ShaderCompileError{
			Stage: stage,
			Log:   fmt.Sprintf("unsupported shader stage %s", stage),
		}
	}

	s := gl.CreateShader(stage)
	if !s.Valid() {
		return Shader{}, &ResourceCreationError{Resource: stageName(stage) + " shader"}
	}

	gl.ShaderSource(s, source)
	gl.CompileShader(s)
	if !gl.ShaderCompileStatus(s) {
		log := gl.ShaderInfoLog(s)
		gl.DeleteShader(s)
		Logger().Debug("glprims: shader compile failed", "stage", stageName(stage), "log", log)
		return Shader{}, &ShaderCompileError{Stage: stage, Log: log}
	}
	return s, nil
}

// LinkProgram creates a program, attaches vs and fs, links it and checks the
// link status.
//
// On failure the linker's info log is captured, the program object is
// deleted and a *ProgramLinkError carrying the log is returned. The shaders
// are left untouched; the caller still owns them.
func LinkProgram(gl Context, vs, fs Shader) (Program, error) {
	if !vs.Valid() || !fs.Valid() {
		return Program{}, &ProgramLinkError{Log: "both a vertex and a fragment shader are required"}
	}

	p := gl.CreateProgram()
	if !p.Valid() {
		return Program{}, &ResourceCreationError{Resource: "program"}
	}

	gl.AttachShader(p, vs)
	gl.AttachShader(p, fs)
	gl.LinkProgram(p)
	if !gl.ProgramLinkStatus(p) {
		log := gl.ProgramInfoLog(p)
		gl.DeleteProgram(p)
		Logger().Debug("glprims: program link failed", "log", log)
		return Program{}, &ProgramLinkError{Log: log}
	}
	return p, nil
}

// BuildProgram compiles a vertex and a fragment stage from source and links
// them. The intermediate shader objects are deleted before returning, so on
// success the program is the only object left alive and on failure nothing
// is.
func BuildProgram(gl Context, vertexSource, fragmentSource string) (Program, error) {
	vs, err := CompileShader(gl, gputypes.ShaderStageVertex, vertexSource)
	if err != nil {
		return Program{}, err
	}
	defer gl.DeleteShader(vs)

	fs, err := CompileShader(gl, gputypes.ShaderStageFragment, fragmentSource)
	if err != nil {
		return Program{}, err
	}
	defer gl.DeleteShader(fs)

	p, err := LinkProgram(gl, vs, fs)
	if err != nil {
		return Program{}, err
	}
	gl.DetachShader(p, vs)
	gl.DetachShader(p, fs)

	Logger().Debug("glprims: program built", "program", p.Value)
	return p, nil
}
