// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/glprims"
)

// BackendName is the registry name of the software backend.
const BackendName = "software"

// Priority ranks the software backend below every hardware backend.
const Priority = 10

// init registers the software backend on package import.
func init() {
	glprims.Register(BackendName, Priority, func(s glprims.Surface) (glprims.Context, error) {
		canvas, ok := s.(*Canvas)
		if !ok {
			return nil, fmt.Errorf("%w: soft: unsupported surface %T", glprims.ErrContextUnavailable, s)
		}
		return New(canvas), nil
	}, func() bool { return true })
}

func logger() *slog.Logger {
	return glprims.Logger()
}
