// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package frameloop schedules work once per display refresh.
//
// A Requester runs a callback before the next frame is presented, the way
// requestAnimationFrame does in a browser. Chain turns a one-shot request
// into a loop that lasts until its context is cancelled.
package frameloop

import (
	"context"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
)

// Callback receives the frame timestamp, measured from an arbitrary origin
// that is fixed for the lifetime of the Requester.
type Callback func(now time.Duration)

// Requester schedules a callback for the next frame. Each request fires at
// most once.
type Requester interface {
	RequestFrame(fn Callback)
}

// Chain runs fn on every frame until ctx is done. It returns immediately;
// the first call to fn happens on the next frame. fn runs on whatever
// goroutine r delivers frames on.
func Chain(ctx context.Context, r Requester, fn Callback) {
	var tick Callback
	tick = func(now time.Duration) {
		if ctx.Err() != nil {
			return
		}
		fn(now)
		if ctx.Err() == nil {
			r.RequestFrame(tick)
		}
	}
	if ctx.Err() == nil {
		r.RequestFrame(tick)
	}
}

// Queue is a Requester driven by the caller, either frame by frame with
// Step or from a ticker with Run. It is safe for concurrent use.
type Queue struct {
	mu      sync.Mutex
	pending []Callback
	window  gpucontext.WindowProvider
	frames  int
}

// NewQueue creates an empty queue. If window is not nil, its RequestRedraw
// is called whenever a request arrives while no frame is pending.
func NewQueue(window gpucontext.WindowProvider) *Queue {
	return &Queue{window: window}
}

// RequestFrame implements Requester.
func (q *Queue) RequestFrame(fn Callback) {
	q.mu.Lock()
	first := len(q.pending) == 0
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
	if first && q.window != nil {
		q.window.RequestRedraw()
	}
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Frames returns the number of frames stepped so far.
func (q *Queue) Frames() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.frames
}

// Step delivers one frame at time now. Callbacks requested while the frame
// runs wait for the next one. It returns how many callbacks ran.
func (q *Queue) Step(now time.Duration) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.frames++
	q.mu.Unlock()

	for _, fn := range batch {
		fn(now)
	}
	return len(batch)
}

// Run steps the queue every interval until ctx is done and returns the
// context's error. Timestamps are measured from the start of Run.
func (q *Queue) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticker.C:
			q.Step(t.Sub(start))
		}
	}
}
