// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgsl translates WGSL shaders into the GLSL dialects glprims
// backends compile.
//
// Translation goes through naga: the WGSL source is parsed, lowered to naga
// IR, validated, and each requested entry point is emitted as a standalone
// GLSL stage.
package wgsl

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/glprims"
)

// ErrInvalidShader is returned when WGSL source fails to parse, lower or
// validate.
var ErrInvalidShader = errors.New("wgsl: invalid shader")

// WebGL2 is the GLSL dialect every glprims backend accepts.
var WebGL2 = glsl.VersionES300

// Program is a vertex and fragment stage pair in GLSL.
type Program struct {
	Vertex   string
	Fragment string
}

// Options selects the entry points and output dialect.
type Options struct {
	// VertexEntry and FragmentEntry name the WGSL entry points. They default
	// to "vs_main" and "fs_main".
	VertexEntry   string
	FragmentEntry string

	// Version is the GLSL dialect to emit. The zero value means WebGL2.
	Version glsl.Version
}

func (o Options) withDefaults() Options {
	if o.VertexEntry == "" {
		o.VertexEntry = "vs_main"
	}
	if o.FragmentEntry == "" {
		o.FragmentEntry = "fs_main"
	}
	if o.Version == (glsl.Version{}) {
		o.Version = WebGL2
	}
	return o
}

// Translate converts a WGSL module holding a vertex and a fragment entry
// point into GLSL sources ready for glprims.BuildProgram.
func Translate(source string, opts Options) (Program, error) {
	opts = opts.withDefaults()

	module, err := Module(source)
	if err != nil {
		return Program{}, err
	}

	vs, err := emit(module, opts.VertexEntry, opts.Version)
	if err != nil {
		return Program{}, err
	}
	fs, err := emit(module, opts.FragmentEntry, opts.Version)
	if err != nil {
		return Program{}, err
	}
	glprims.Logger().Debug("wgsl: translated",
		"vertex_entry", opts.VertexEntry,
		"fragment_entry", opts.FragmentEntry,
		"version", opts.Version.String())
	return Program{Vertex: vs, Fragment: fs}, nil
}

// Module parses, lowers and validates WGSL source.
func Module(source string) (*ir.Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	problems, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	if len(problems) > 0 {
		errs := make([]error, len(problems))
		for i, p := range problems {
			errs[i] = p
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidShader, errors.Join(errs...))
	}
	return module, nil
}

// emit writes one entry point as GLSL.
func emit(module *ir.Module, entry string, version glsl.Version) (string, error) {
	if !hasEntryPoint(module, entry) {
		return "", fmt.Errorf("%w: no entry point %q", ErrInvalidShader, entry)
	}
	src, _, err := glsl.Compile(module, glsl.Options{
		LangVersion:        version,
		EntryPoint:         entry,
		ForceHighPrecision: true,
	})
	if err != nil {
		return "", fmt.Errorf("wgsl: emit %s: %w", entry, err)
	}
	return src, nil
}

func hasEntryPoint(module *ir.Module, name string) bool {
	for _, ep := range module.EntryPoints {
		if ep.Name == name {
			return true
		}
	}
	return false
}
