// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
)

// Default backing-buffer size of a fresh canvas, matching an HTML canvas
// element without width and height attributes.
const (
	DefaultBackingWidth  = 300
	DefaultBackingHeight = 150
)

// Canvas is an offscreen display surface backed by a gg pixmap.
//
// The embedded NullWindowProvider holds the logical size and scale factor
// (W, H, SF); the backing buffer keeps its own size until SetBackingSize is
// called, which is what glprims.Resize does.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	gpucontext.NullWindowProvider

	dc      *gg.Context
	width   int
	height  int
	redraws int
}

// NewCanvas creates a canvas with the given logical size and scale factor
// and a 300x150 backing buffer.
func NewCanvas(width, height int, scale float64) *Canvas {
	return &Canvas{
		NullWindowProvider: gpucontext.NullWindowProvider{W: width, H: height, SF: scale},
		width:              DefaultBackingWidth,
		height:             DefaultBackingHeight,
	}
}

// SetLogicalSize changes the on-screen size, as a page layout would.
func (c *Canvas) SetLogicalSize(width, height int) {
	c.W, c.H = width, height
}

// SetScaleFactor changes the pixel density, as moving a window to another
// monitor would.
func (c *Canvas) SetScaleFactor(scale float64) {
	c.SF = scale
}

// BackingSize returns the backing-buffer size in device pixels.
func (c *Canvas) BackingSize() (width, height int) {
	return c.width, c.height
}

// SetBackingSize reallocates the backing buffer. Content is discarded even
// if the size does not change.
func (c *Canvas) SetBackingSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.width, c.height = width, height
	if c.dc == nil {
		return
	}
	if width == 0 || height == 0 {
		_ = c.dc.Close()
		c.dc = nil
		return
	}
	if err := c.dc.Resize(width, height); err != nil {
		logger().Warn("soft: canvas resize failed", "err", err)
	}
	c.dc.Clear()
}

// RequestRedraw counts redraw requests.
func (c *Canvas) RequestRedraw() { c.redraws++ }

// Redraws returns how many times RequestRedraw was called.
func (c *Canvas) Redraws() int { return c.redraws }

// Image returns a snapshot of the backing buffer.
func (c *Canvas) Image() image.Image {
	if c.dc == nil {
		return image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	}
	return c.dc.Image()
}

// EncodePNG writes the backing buffer as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if dc := c.context(); dc != nil {
		return dc.EncodePNG(w)
	}
	return errEmptyCanvas
}

// context returns the drawing context, creating it on first use. It is nil
// while either backing dimension is zero.
func (c *Canvas) context() *gg.Context {
	if c.dc == nil && c.width > 0 && c.height > 0 {
		c.dc = gg.NewContext(c.width, c.height)
	}
	return c.dc
}

// Close releases the backing buffer.
func (c *Canvas) Close() error {
	if c.dc == nil {
		return nil
	}
	err := c.dc.Close()
	c.dc = nil
	return err
}
