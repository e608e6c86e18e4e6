// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package opengl

import (
	"image"
	"strings"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

const (
	// BackendName is the name the backend registers under.
	BackendName = "opengl"

	// Priority ranks the backend below WebGL2 and above software.
	Priority = 90

	// DesktopVersion replaces the WebGL2 version directive.
	DesktopVersion = "#version 410 core"

	webGL2Version = "#version 300 es"
)

// DesktopSource rewrites a GLSL ES 3.00 shader for a desktop core
// profile. Only the version directive changes; precision statements are
// legal, and ignored, in desktop GLSL. Sources with any other version are
// returned unchanged.
func DesktopSource(source string) string {
	trimmed := strings.TrimLeft(source, " \t\r\n")
	if !strings.HasPrefix(trimmed, webGL2Version) {
		return source
	}
	rest := trimmed[len(webGL2Version):]
	if rest != "" && rest[0] != '\n' && rest[0] != '\r' && rest[0] != ' ' && rest[0] != '\t' {
		return source
	}
	return source[:len(source)-len(trimmed)] + DesktopVersion + rest
}

// GL primitive modes.
const (
	modePoints        = 0x0000
	modeLines         = 0x0001
	modeLineStrip     = 0x0003
	modeTriangles     = 0x0004
	modeTriangleStrip = 0x0005
)

// drawMode maps a topology onto a GL primitive mode.
func drawMode(t gputypes.PrimitiveTopology) (uint32, bool) {
	switch t {
	case gputypes.PrimitiveTopologyPointList:
		return modePoints, true
	case gputypes.PrimitiveTopologyLineList:
		return modeLines, true
	case gputypes.PrimitiveTopologyLineStrip:
		return modeLineStrip, true
	case gputypes.PrimitiveTopologyTriangleList:
		return modeTriangles, true
	case gputypes.PrimitiveTopologyTriangleStrip:
		return modeTriangleStrip, true
	default:
		return 0, false
	}
}

// adapterType guesses the device class from the GL_RENDERER string.
func adapterType(renderer string) gpucontext.AdapterType {
	r := strings.ToLower(renderer)
	for _, sw := range []string{"llvmpipe", "softpipe", "swiftshader", "software"} {
		if strings.Contains(r, sw) {
			return gpucontext.AdapterTypeSoftware
		}
	}
	for _, igpu := range []string{"intel", "apple m", "mali", "adreno"} {
		if strings.Contains(r, igpu) {
			return gpucontext.AdapterTypeIntegrated
		}
	}
	for _, dgpu := range []string{"nvidia", "geforce", "radeon", "quadro"} {
		if strings.Contains(r, dgpu) {
			return gpucontext.AdapterTypeDiscrete
		}
	}
	return gpucontext.AdapterTypeUnknown
}

// flipRows turns GL's bottom-up rows into image top-down rows.
func flipRows(img *image.RGBA) {
	h := img.Rect.Dy()
	tmp := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}
