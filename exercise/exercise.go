// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package exercise holds the drawing exercises: a single triangle, a
// hundred random rectangles, the triangle again authored in WGSL, and a
// loop that keeps the backing buffer sized to the display.
//
// Every exercise follows the same setup: build the program, resolve
// attribute and uniform locations, upload vertex data into one buffer,
// describe its layout in one vertex array, size the surface, set the
// viewport, clear, activate the program, set uniforms and draw. The
// objects created along the way are returned in a Scene that the caller
// must Close.
package exercise

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glprims"
	"github.com/gogpu/glprims/frameloop"
)

//go:embed shaders/triangle.vert
var triangleVertex string

//go:embed shaders/triangle.frag
var triangleFragment string

//go:embed shaders/rectangles.vert
var rectanglesVertex string

//go:embed shaders/rectangles.frag
var rectanglesFragment string

//go:embed shaders/triangle.wgsl
var triangleWGSL string

// ErrAttributeNotFound is returned when a vertex input the exercise feeds
// is not an active attribute of the linked program.
var ErrAttributeNotFound = errors.New("exercise: attribute not found")

// ErrNoRandomSource is returned by exercises that need random input when
// Env.Rand is nil.
var ErrNoRandomSource = errors.New("exercise: no random source")

// ErrNoFrameRequester is returned by exercises that need a frame loop when
// Env.Frames is nil.
var ErrNoFrameRequester = errors.New("exercise: no frame requester")

// Env is what an exercise draws with.
type Env struct {
	GL      glprims.Context
	Surface glprims.Surface

	// Rand drives random geometry. Exercises that need it fail without it.
	Rand Rand

	// Frames schedules per-frame work for exercises that keep running.
	Frames frameloop.Requester
}

// Exercise is a named drawing routine.
type Exercise struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env Env) (*Scene, error)
}

var exercises = map[string]Exercise{}

func register(e Exercise) {
	if _, dup := exercises[e.Name]; dup {
		panic("exercise: duplicate exercise " + e.Name)
	}
	exercises[e.Name] = e
}

func init() {
	register(Exercise{
		Name:        "triangle",
		Description: "one constant-colored triangle in clip space",
		Run: func(_ context.Context, env Env) (*Scene, error) {
			return Triangle(env.GL, env.Surface)
		},
	})
	register(Exercise{
		Name:        "rectangles",
		Description: "100 randomly placed, randomly colored rectangles",
		Run: func(_ context.Context, env Env) (*Scene, error) {
			if env.Rand == nil {
				return nil, ErrNoRandomSource
			}
			return Rectangles(env.GL, env.Surface, env.Rand)
		},
	})
	register(Exercise{
		Name:        "wgsl-triangle",
		Description: "the triangle exercise with shaders translated from WGSL",
		Run: func(_ context.Context, env Env) (*Scene, error) {
			return WGSLTriangle(env.GL, env.Surface)
		},
	})
	register(Exercise{
		Name:        "resize",
		Description: "resize the backing buffer on every frame",
		Run: func(ctx context.Context, env Env) (*Scene, error) {
			if env.Frames == nil {
				return nil, ErrNoFrameRequester
			}
			ResizeLoop(ctx, env.Surface, env.Frames, nil)
			return &Scene{gl: env.GL}, nil
		},
	})
}

// Lookup returns the exercise registered under name.
func Lookup(name string) (Exercise, bool) {
	e, ok := exercises[name]
	return e, ok
}

// Names returns the registered exercise names in sorted order.
func Names() []string {
	names := make([]string, 0, len(exercises))
	for name := range exercises {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scene owns the objects an exercise created.
type Scene struct {
	gl          glprims.Context
	Program     glprims.Program
	Buffer      glprims.Buffer
	VertexArray glprims.VertexArray

	// Draws is the number of draw calls issued.
	Draws int
}

// Close deletes the scene's objects. It is safe to call more than once and
// on a nil Scene.
func (s *Scene) Close() {
	if s == nil || s.gl == nil {
		return
	}
	if s.VertexArray.Valid() {
		s.gl.BindVertexArray(glprims.VertexArray{})
		s.gl.DeleteVertexArray(s.VertexArray)
	}
	if s.Buffer.Valid() {
		s.gl.DeleteBuffer(s.Buffer)
	}
	if s.Program.Valid() {
		s.gl.UseProgram(glprims.Program{})
		s.gl.DeleteProgram(s.Program)
	}
	*s = Scene{}
}

// build links the program from source and starts a scene around it.
func build(gl glprims.Context, vertexSource, fragmentSource string) (*Scene, error) {
	p, err := glprims.BuildProgram(gl, vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	return &Scene{gl: gl, Program: p}, nil
}

// attribute resolves a vertex input by name.
func (s *Scene) attribute(name string) (int, error) {
	loc := s.gl.GetAttribLocation(s.Program, name)
	if loc < 0 {
		return -1, fmt.Errorf("%w: %q", ErrAttributeNotFound, name)
	}
	return loc, nil
}

// bindPositions creates the scene's buffer and vertex array and feeds data
// to attribute loc as tightly packed vec2s.
func (s *Scene) bindPositions(loc int, data []float32, usage glprims.BufferUsage) error {
	s.Buffer = s.gl.CreateBuffer()
	if !s.Buffer.Valid() {
		return &glprims.ResourceCreationError{Resource: "buffer"}
	}
	s.gl.BindBuffer(glprims.ArrayBuffer, s.Buffer)
	s.gl.BufferData(glprims.ArrayBuffer, data, usage)

	s.VertexArray = s.gl.CreateVertexArray()
	if !s.VertexArray.Valid() {
		return &glprims.ResourceCreationError{Resource: "vertex array"}
	}
	s.gl.BindVertexArray(s.VertexArray)
	s.gl.EnableVertexAttribArray(loc)
	s.gl.VertexAttribPointer(loc, 2, glprims.Float, false, 0, 0)
	return nil
}

// begin sizes the surface, covers it with the viewport, clears it to
// transparent black and activates the program.
func (s *Scene) begin(surface glprims.Surface) (width, height int) {
	glprims.Resize(surface)
	width, height = surface.BackingSize()
	s.gl.Viewport(0, 0, width, height)
	s.gl.ClearColor(0, 0, 0, 0)
	s.gl.Clear(glprims.ColorBufferBit)
	s.gl.UseProgram(s.Program)
	return width, height
}

func (s *Scene) draw(mode gputypes.PrimitiveTopology, count int) {
	s.gl.DrawArrays(mode, 0, count)
	s.Draws++
}

// fail releases whatever the scene holds and passes err through.
func (s *Scene) fail(err error) (*Scene, error) {
	s.Close()
	return nil, err
}
