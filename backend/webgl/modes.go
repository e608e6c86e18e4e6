// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package webgl

import "github.com/gogpu/gputypes"

const (
	// BackendName is the name the backend registers under.
	BackendName = "webgl2"

	// Priority ranks the backend above every native backend.
	Priority = 100

	// DefaultSelector finds the first canvas element of the page.
	DefaultSelector = "canvas"
)

// WebGL2 enums used by the backend.
const (
	vertexShader   = 0x8B31
	fragmentShader = 0x8B30
	compileStatus  = 0x8B81
	linkStatus     = 0x8B82
)

var drawModes = map[gputypes.PrimitiveTopology]int{
	gputypes.PrimitiveTopologyPointList:     0x0000,
	gputypes.PrimitiveTopologyLineList:      0x0001,
	gputypes.PrimitiveTopologyLineStrip:     0x0003,
	gputypes.PrimitiveTopologyTriangleList:  0x0004,
	gputypes.PrimitiveTopologyTriangleStrip: 0x0005,
}

// stageEnum maps a shader stage onto createShader's argument.
func stageEnum(stage gputypes.ShaderStage) (int, bool) {
	switch stage {
	case gputypes.ShaderStageVertex:
		return vertexShader, true
	case gputypes.ShaderStageFragment:
		return fragmentShader, true
	default:
		return 0, false
	}
}

// devicePixelRatio applies the browser's `devicePixelRatio || 1` rule.
func devicePixelRatio(v float64) float64 {
	if v > 0 {
		return v
	}
	return 1
}
