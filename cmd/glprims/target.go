// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gogpu/glprims"
	"github.com/gogpu/glprims/backend/soft"
	"github.com/gogpu/glprims/config"
	"github.com/gogpu/glprims/frameloop"
)

// frameInterval paces headless frame loops at roughly 60 Hz.
const frameInterval = time.Second / 60

// loop delivers frames until its context is done.
type loop interface {
	frameloop.Requester
	Pending() int
	Run(ctx context.Context) error
}

// target is a surface the command can open, read back and drive.
type target struct {
	surface glprims.Surface
	image   func() image.Image
	loop    loop
	close   func() error
}

// targets opens a surface for each backend this build can drive.
var targets = map[string]func(config.Config) (*target, error){
	soft.BackendName: newSoftTarget,
}

func newSoftTarget(cfg config.Config) (*target, error) {
	canvas := soft.NewCanvas(cfg.Width, cfg.Height, cfg.Scale)
	return &target{
		surface: canvas,
		image:   canvas.Image,
		loop:    tickerLoop{frameloop.NewQueue(canvas)},
		close:   canvas.Close,
	}, nil
}

// tickerLoop runs a frameloop.Queue from a ticker.
type tickerLoop struct{ *frameloop.Queue }

func (l tickerLoop) Run(ctx context.Context) error {
	return l.Queue.Run(ctx, frameInterval)
}

// acquire opens a target and binds a context to it. An empty
// cfg.Backend tries every available backend with a target, best first.
func acquire(cfg config.Config) (*target, glprims.Context, error) {
	if cfg.Backend != "" {
		return open(cfg.Backend, cfg)
	}
	var lastErr error
	for _, name := range glprims.Backends() {
		if _, ok := targets[name]; !ok {
			continue
		}
		t, gl, err := open(name, cfg)
		if err == nil {
			return t, gl, nil
		}
		glprims.Logger().Debug("glprims: backend skipped", "backend", name, "err", err)
		lastErr = err
	}
	if lastErr != nil {
		return nil, nil, lastErr
	}
	return nil, nil, glprims.ErrNoBackendAvailable
}

func open(name string, cfg config.Config) (*target, glprims.Context, error) {
	newTarget, ok := targets[name]
	if !ok {
		if _, registered := glprims.Backend(name); registered {
			return nil, nil, fmt.Errorf("backend %q has no surface in this build", name)
		}
		return nil, nil, &glprims.BackendNotFoundError{Name: name}
	}
	t, err := newTarget(cfg)
	if err != nil {
		return nil, nil, err
	}
	gl, err := glprims.AcquireByName(name, t.surface)
	if err != nil {
		_ = t.close()
		return nil, nil, err
	}
	return t, gl, nil
}
