// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build cgo && !js

package opengl

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/glprims"
)

func init() {
	glprims.Register(BackendName, Priority, func(s glprims.Surface) (glprims.Context, error) {
		w, ok := s.(*Window)
		if !ok {
			return nil, fmt.Errorf("%w: opengl: unsupported surface %T", glprims.ErrContextUnavailable, s)
		}
		return New(w), nil
	}, nil)
}

func logger() *slog.Logger {
	return glprims.Logger()
}
