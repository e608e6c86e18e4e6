// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package exercise

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glprims"
	"github.com/gogpu/glprims/wgsl"
)

// TriangleVertices are the clip-space corners of the triangle exercise.
var TriangleVertices = []float32{
	0, 0,
	0, 0.5,
	0.7, 0,
}

// Triangle draws one triangle filled with a constant color.
func Triangle(gl glprims.Context, surface glprims.Surface) (*Scene, error) {
	s, err := build(gl, triangleVertex, triangleFragment)
	if err != nil {
		return nil, err
	}
	loc, err := s.attribute("a_position")
	if err != nil {
		return s.fail(err)
	}
	return drawTriangle(s, surface, loc)
}

// WGSLTriangle draws the same triangle as Triangle from a WGSL module
// translated to GLSL ES 3.00. The position input is bound by its layout
// location rather than by name.
func WGSLTriangle(gl glprims.Context, surface glprims.Surface) (*Scene, error) {
	src, err := wgsl.Translate(triangleWGSL, wgsl.Options{})
	if err != nil {
		return nil, err
	}
	s, err := build(gl, src.Vertex, src.Fragment)
	if err != nil {
		return nil, err
	}
	return drawTriangle(s, surface, 0)
}

func drawTriangle(s *Scene, surface glprims.Surface, loc int) (*Scene, error) {
	if err := s.bindPositions(loc, TriangleVertices, glprims.StaticDraw); err != nil {
		return s.fail(err)
	}
	s.begin(surface)
	s.draw(gputypes.PrimitiveTopologyTriangleList, len(TriangleVertices)/2)
	return s, nil
}
