// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package exercise

import (
	"context"
	"time"

	"github.com/gogpu/glprims"
	"github.com/gogpu/glprims/frameloop"
)

// ResizeLoop keeps the backing buffer of surface matched to its display
// size, checking once per frame until ctx is done. onResize, if not nil,
// runs after every frame that changed the backing buffer.
//
// ResizeLoop returns immediately; the first check happens on the next
// frame delivered by frames.
func ResizeLoop(ctx context.Context, surface glprims.Surface, frames frameloop.Requester, onResize func()) {
	frameloop.Chain(ctx, frames, func(time.Duration) {
		if glprims.Resize(surface) && onResize != nil {
			onResize()
		}
	})
}
