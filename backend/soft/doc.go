// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package soft provides a CPU rendering backend for glprims.
//
// A Canvas is an offscreen surface backed by a gg pixmap, and New binds a
// Context to it. Importing the package registers the backend as "software"
// with the lowest priority, so glprims.Acquire falls back to it when no
// hardware backend can serve the surface.
//
//	canvas := soft.NewCanvas(400, 300, 2)
//	ctx, err := glprims.Acquire(canvas)
//
// The context records every draw and counts live objects, which makes it the
// backend the tests run against.
package soft
