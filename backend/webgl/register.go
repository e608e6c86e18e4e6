// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js && wasm

package webgl

import (
	"fmt"
	"log/slog"

	"github.com/hack-pad/safejs"

	"github.com/gogpu/glprims"
)

func init() {
	glprims.Register(BackendName, Priority, func(s glprims.Surface) (glprims.Context, error) {
		canvas, ok := s.(*Canvas)
		if !ok {
			return nil, fmt.Errorf("%w: webgl: unsupported surface %T", glprims.ErrContextUnavailable, s)
		}
		gl, err := New(canvas)
		if err != nil {
			return nil, err
		}
		return gl, nil
	}, available)
}

// available reports whether the browser exposes WebGL2 at all.
func available() bool {
	v, err := safejs.Global().Get("WebGL2RenderingContext")
	if err != nil {
		return false
	}
	ok, err := v.Truthy()
	return err == nil && ok
}

func logger() *slog.Logger {
	return glprims.Logger()
}
