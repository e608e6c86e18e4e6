// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package webgl

import (
	"math"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestDrawModes(t *testing.T) {
	if got := drawModes[gputypes.PrimitiveTopologyTriangleList]; got != 0x0004 {
		t.Errorf("TRIANGLES = %#x, want 0x4", got)
	}
	if len(drawModes) != 5 {
		t.Errorf("%d draw modes, want 5", len(drawModes))
	}
}

func TestStageEnum(t *testing.T) {
	tests := []struct {
		stage gputypes.ShaderStage
		want  int
		ok    bool
	}{
		{gputypes.ShaderStageVertex, 0x8B31, true},
		{gputypes.ShaderStageFragment, 0x8B30, true},
		{gputypes.ShaderStageCompute, 0, false},
	}
	for _, tt := range tests {
		got, ok := stageEnum(tt.stage)
		if got != tt.want || ok != tt.ok {
			t.Errorf("stageEnum(%v) = %#x, %v; want %#x, %v", tt.stage, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDevicePixelRatio(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{2, 2},
		{1.25, 1.25},
		{0, 1},
		{-1, 1},
		{math.NaN(), 1},
	}
	for _, tt := range tests {
		if got := devicePixelRatio(tt.in); got != tt.want {
			t.Errorf("devicePixelRatio(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
