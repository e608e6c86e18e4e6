// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package webgl is the browser glprims backend. It forwards every call to
// a WebGL2RenderingContext through safejs, so JavaScript exceptions become
// logged errors instead of panics.
//
// The package only has content when built with GOOS=js GOARCH=wasm.
package webgl
