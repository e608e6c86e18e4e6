// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package opengl

import (
	"image"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func TestDesktopSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"es300", "#version 300 es\nin vec4 a_position;\n", "#version 410 core\nin vec4 a_position;\n"},
		{"leading blank lines", "\n\n#version 300 es\nvoid main() {}\n", "\n\n#version 410 core\nvoid main() {}\n"},
		{"crlf", "#version 300 es\r\nvoid main() {}\r\n", "#version 410 core\r\nvoid main() {}\r\n"},
		{"desktop unchanged", "#version 330 core\nvoid main() {}\n", "#version 330 core\nvoid main() {}\n"},
		{"es310 unchanged", "#version 310 es\n", "#version 310 es\n"},
		{"es3000 unchanged", "#version 300 esx\n", "#version 300 esx\n"},
		{"no version", "void main() {}\n", "void main() {}\n"},
		{"directive only", "#version 300 es", "#version 410 core"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DesktopSource(tt.in); got != tt.want {
				t.Errorf("DesktopSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDrawMode(t *testing.T) {
	tests := []struct {
		topology gputypes.PrimitiveTopology
		want     uint32
	}{
		{gputypes.PrimitiveTopologyPointList, 0x0000},
		{gputypes.PrimitiveTopologyLineList, 0x0001},
		{gputypes.PrimitiveTopologyLineStrip, 0x0003},
		{gputypes.PrimitiveTopologyTriangleList, 0x0004},
		{gputypes.PrimitiveTopologyTriangleStrip, 0x0005},
	}
	for _, tt := range tests {
		got, ok := drawMode(tt.topology)
		if !ok || got != tt.want {
			t.Errorf("drawMode(%v) = %#x, %v; want %#x", tt.topology, got, ok, tt.want)
		}
	}
	if _, ok := drawMode(gputypes.PrimitiveTopology(99)); ok {
		t.Error("drawMode(99) ok = true")
	}
}

func TestAdapterType(t *testing.T) {
	tests := []struct {
		renderer string
		want     gpucontext.AdapterType
	}{
		{"llvmpipe (LLVM 15.0.7, 256 bits)", gpucontext.AdapterTypeSoftware},
		{"Mesa Intel(R) UHD Graphics 620 (KBL GT2)", gpucontext.AdapterTypeIntegrated},
		{"NVIDIA GeForce RTX 3070/PCIe/SSE2", gpucontext.AdapterTypeDiscrete},
		{"AMD Radeon RX 6800 (radeonsi, navi21)", gpucontext.AdapterTypeDiscrete},
		{"Mystery GPU", gpucontext.AdapterTypeUnknown},
	}
	for _, tt := range tests {
		if got := adapterType(tt.renderer); got != tt.want {
			t.Errorf("adapterType(%q) = %v, want %v", tt.renderer, got, tt.want)
		}
	}
}

func TestFlipRows(t *testing.T) {
	for _, h := range []int{1, 2, 3} {
		img := image.NewRGBA(image.Rect(0, 0, 2, h))
		for y := 0; y < h; y++ {
			for i := 0; i < img.Stride; i++ {
				img.Pix[y*img.Stride+i] = uint8(y)
			}
		}
		flipRows(img)
		for y := 0; y < h; y++ {
			if got := img.Pix[y*img.Stride]; got != uint8(h-1-y) {
				t.Errorf("h=%d: row %d holds %d, want %d", h, y, got, h-1-y)
			}
		}
	}
}
