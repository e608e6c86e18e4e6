// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build cgo && !js

package main

import (
	"runtime"

	"github.com/gogpu/glprims/backend/opengl"
	"github.com/gogpu/glprims/config"
)

func init() {
	// GLFW calls must come from the main thread.
	runtime.LockOSThread()
	targets[opengl.BackendName] = newWindowTarget
}

func newWindowTarget(cfg config.Config) (*target, error) {
	w, err := opengl.NewWindow(opengl.WindowOptions{
		Title:   "glprims: " + cfg.Exercise,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Scale:   cfg.Scale,
		Visible: cfg.Output == "",
	})
	if err != nil {
		return nil, err
	}
	return &target{
		surface: w,
		image:   w.Image,
		loop:    w,
		close:   w.Close,
	}, nil
}
