// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package opengl is the desktop glprims backend. It drives an OpenGL 4.1
// core context through go-gl, hosted in a GLFW window.
//
// Rendering goes to an offscreen framebuffer whose size is the surface's
// backing size, so Resize behaves the way it does on an HTML canvas: the
// window's logical size and content scale are inputs, and the backing
// buffer only changes when glprims.Resize says so. Window.Present scales
// the framebuffer onto the window.
//
// Shader sources written for WebGL2 are accepted unchanged: a leading
// "#version 300 es" directive is rewritten to "#version 410 core".
//
// The backend needs cgo. GLFW must be used from the main thread, so
// programs should call runtime.LockOSThread from an init function.
package opengl
