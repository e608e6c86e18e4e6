// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glprims

import (
	"math"

	"github.com/gogpu/gpucontext"
)

// Surface is a display surface a Context renders into.
//
// Size and ScaleFactor (from gpucontext.WindowProvider) describe the logical
// on-screen size and the device pixel density. The backing buffer is the
// actual pixel storage and may have a different resolution.
type Surface interface {
	gpucontext.WindowProvider

	// BackingSize returns the backing-buffer dimensions in device pixels.
	BackingSize() (width, height int)

	// SetBackingSize reallocates the backing buffer. Existing content is
	// discarded, as it is for an HTML canvas.
	SetBackingSize(width, height int)
}

// DisplaySize returns the backing-buffer size that matches the logical size
// of s at its pixel density: floor(size * scale) in each dimension. A scale
// factor that is not positive counts as 1.
func DisplaySize(s gpucontext.WindowProvider) (width, height int) {
	scale := s.ScaleFactor()
	if !(scale > 0) {
		scale = 1
	}
	w, h := s.Size()
	return int(math.Floor(float64(w) * scale)), int(math.Floor(float64(h) * scale))
}

// Resize makes the backing buffer of s match its display size.
// It only touches the surface when the sizes differ, so calling it on every
// frame is cheap. It reports whether the backing buffer changed.
func Resize(s Surface) bool {
	dw, dh := DisplaySize(s)
	bw, bh := s.BackingSize()
	if bw == dw && bh == dh {
		return false
	}
	s.SetBackingSize(dw, dh)
	Logger().Debug("glprims: surface resized",
		"from_width", bw, "from_height", bh,
		"to_width", dw, "to_height", dh)
	return true
}
