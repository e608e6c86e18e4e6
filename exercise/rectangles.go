// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package exercise

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glprims"
)

const (
	// RectangleCount is how many rectangles Rectangles draws.
	RectangleCount = 100

	// RectangleExtent bounds the origin and size of a random rectangle,
	// in pixels: each is an integer in [0, RectangleExtent).
	RectangleExtent = 300
)

// Rand is the random source used for geometry and colors.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Rectangle is an axis-aligned rectangle in pixels with a fill color.
type Rectangle struct {
	X, Y          int
	Width, Height int
	Color         gputypes.Color
}

// RandomRectangle draws the origin, then the size, then an opaque color
// from r.
func RandomRectangle(r Rand) Rectangle {
	return Rectangle{
		X:      r.IntN(RectangleExtent),
		Y:      r.IntN(RectangleExtent),
		Width:  r.IntN(RectangleExtent),
		Height: r.IntN(RectangleExtent),
		Color:  gputypes.Color{R: r.Float64(), G: r.Float64(), B: r.Float64(), A: 1},
	}
}

// Vertices returns the rectangle as two triangles sharing the
// (x2, y1)-(x1, y2) diagonal.
func (r Rectangle) Vertices() [12]float32 {
	x1, y1 := float32(r.X), float32(r.Y)
	x2, y2 := float32(r.X+r.Width), float32(r.Y+r.Height)
	return [12]float32{
		x1, y1,
		x2, y1,
		x1, y2,
		x1, y2,
		x2, y1,
		x2, y2,
	}
}

// Rectangles draws RectangleCount rectangles from r, one draw call each.
// The buffer is re-uploaded and the color uniform re-set for every
// rectangle.
func Rectangles(gl glprims.Context, surface glprims.Surface, r Rand) (*Scene, error) {
	s, err := build(gl, rectanglesVertex, rectanglesFragment)
	if err != nil {
		return nil, err
	}
	loc, err := s.attribute("a_position")
	if err != nil {
		return s.fail(err)
	}
	resolution := gl.GetUniformLocation(s.Program, "u_resolution")
	color := gl.GetUniformLocation(s.Program, "u_color")

	var initial Rectangle
	v := initial.Vertices()
	if err := s.bindPositions(loc, v[:], glprims.DynamicDraw); err != nil {
		return s.fail(err)
	}
	width, height := s.begin(surface)
	gl.Uniform2f(resolution, float32(width), float32(height))

	for range RectangleCount {
		rect := RandomRectangle(r)
		v = rect.Vertices()
		gl.BufferData(glprims.ArrayBuffer, v[:], glprims.DynamicDraw)
		c := rect.Color
		gl.Uniform4f(color, float32(c.R), float32(c.G), float32(c.B), float32(c.A))
		s.draw(gputypes.PrimitiveTopologyTriangleList, len(v)/2)
	}
	glprims.Logger().Debug("exercise: rectangles drawn", "count", RectangleCount, "width", width, "height", height)
	return s, nil
}
