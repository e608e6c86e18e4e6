// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build cgo && !js

package opengl

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/glprims"
	"github.com/gogpu/glprims/frameloop"
)

// WindowOptions configures NewWindow.
type WindowOptions struct {
	Title string

	// Width and Height are the logical window size in screen coordinates.
	Width, Height int

	// Scale overrides the monitor content scale when positive.
	Scale float64

	// Visible shows the window. Hidden windows still render offscreen.
	Visible bool
}

// Window is a GLFW window with a current OpenGL context. It implements
// glprims.Surface and frameloop.Requester.
//
// A fresh window has a 300x150 backing buffer, like a new canvas element.
//
// Window is NOT safe for concurrent use and must be used from the thread
// that created it.
type Window struct {
	win    *glfw.Window
	scale  float64
	fbo    uint32
	color  uint32
	width  int
	height int
	frames *frameloop.Queue
}

var (
	_ glprims.Surface     = (*Window)(nil)
	_ frameloop.Requester = (*Window)(nil)
)

// NewWindow opens a window with an OpenGL 4.1 core context and makes the
// context current.
func NewWindow(opts WindowOptions) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw: %w", glprims.ErrContextUnavailable, err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	visible := glfw.False
	if opts.Visible {
		visible = glfw.True
	}
	glfw.WindowHint(glfw.Visible, visible)

	title := opts.Title
	if title == "" {
		title = "glprims"
	}
	win, err := glfw.CreateWindow(opts.Width, opts.Height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: glfw: %w", glprims.ErrContextUnavailable, err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: gl: %w", glprims.ErrContextUnavailable, err)
	}
	glfw.SwapInterval(1)

	w := &Window{win: win, scale: opts.Scale}
	w.frames = frameloop.NewQueue(w)
	gl.GenFramebuffers(1, &w.fbo)
	gl.GenRenderbuffers(1, &w.color)
	w.SetBackingSize(300, 150)
	return w, nil
}

// Size returns the logical window size.
func (w *Window) Size() (width, height int) {
	return w.win.GetSize()
}

// ScaleFactor returns the configured scale, or the window's content scale.
func (w *Window) ScaleFactor() float64 {
	if w.scale > 0 {
		return w.scale
	}
	sx, _ := w.win.GetContentScale()
	return float64(sx)
}

// RequestRedraw wakes the event loop.
func (w *Window) RequestRedraw() {
	glfw.PostEmptyEvent()
}

// BackingSize returns the offscreen framebuffer size.
func (w *Window) BackingSize() (width, height int) {
	return w.width, w.height
}

// SetBackingSize reallocates the offscreen framebuffer and leaves it bound.
func (w *Window) SetBackingSize(width, height int) {
	w.width, w.height = max(width, 0), max(height, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, w.color)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(max(w.width, 1)), int32(max(w.height, 1)))
	gl.BindFramebuffer(gl.FRAMEBUFFER, w.fbo)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, w.color)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		logger().Warn("opengl: framebuffer incomplete", "status", status)
	}
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// RequestFrame implements frameloop.Requester. Callbacks run inside Run.
func (w *Window) RequestFrame(fn frameloop.Callback) {
	w.frames.RequestFrame(fn)
}

// Pending returns the number of callbacks waiting for the next frame.
func (w *Window) Pending() int {
	return w.frames.Pending()
}

// Run processes window events and delivers frames until ctx is done or
// the window is closed. Each frame is presented after its callbacks ran.
func (w *Window) Run(ctx context.Context) error {
	for !w.win.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if w.frames.Pending() == 0 {
			glfw.WaitEventsTimeout(0.1)
		} else {
			glfw.PollEvents()
		}
		w.frames.Step(time.Duration(glfw.GetTime() * float64(time.Second)))
		w.Present()
	}
	return nil
}

// Present copies the backing buffer onto the window and swaps buffers.
func (w *Window) Present() {
	fw, fh := w.win.GetFramebufferSize()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, w.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BlitFramebuffer(0, 0, int32(w.width), int32(w.height), 0, 0, int32(fw), int32(fh),
		gl.COLOR_BUFFER_BIT, gl.LINEAR)
	w.win.SwapBuffers()
	gl.BindFramebuffer(gl.FRAMEBUFFER, w.fbo)
}

// Image reads the backing buffer back into memory.
func (w *Window) Image() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w.width, w.height))
	if w.width == 0 || w.height == 0 {
		return img
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, w.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w.width), int32(w.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&img.Pix[0]))
	flipRows(img)
	return img
}

// Close releases the framebuffer, destroys the window and terminates GLFW.
func (w *Window) Close() error {
	if w.win == nil {
		return nil
	}
	gl.DeleteRenderbuffers(1, &w.color)
	gl.DeleteFramebuffers(1, &w.fbo)
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
	return nil
}
