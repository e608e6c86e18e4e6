// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glprims

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// Errors.
var (
	// ErrContextUnavailable is returned when a surface cannot supply the
	// requested capability tier (for example the browser has no WebGL2).
	ErrContextUnavailable = errors.New("glprims: rendering context unavailable")

	// ErrElementNotFound is returned when the expected display surface is
	// missing from the host document.
	ErrElementNotFound = errors.New("glprims: display surface element not found")

	// ErrNoBackendAvailable is returned when no backend is registered or
	// available on the current system.
	ErrNoBackendAvailable = errors.New("glprims: no backend available")
)

// ShaderCompileError reports a failed shader compilation together with the
// compiler's diagnostic log.
type ShaderCompileError struct {
	Stage gputypes.ShaderStage
	Log   string
}

func (e *ShaderCompileError) Error() string {
	if e.Log == "" {
		return "glprims: " + stageName(e.Stage) + " shader compile failed"
	}
	return "glprims: " + stageName(e.Stage) + " shader compile failed: " + e.Log
}

// ProgramLinkError reports a failed program link together with the linker's
// diagnostic log.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	if e.Log == "" {
		return "glprims: program link failed"
	}
	return "glprims: program link failed: " + e.Log
}

// ResourceCreationError indicates a handle-creation call returned no handle,
// typically because the context is lost or out of resources.
type ResourceCreationError struct {
	Resource string
}

func (e *ResourceCreationError) Error() string {
	return "glprims: failed to create " + e.Resource
}

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "glprims: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "glprims: backend unavailable: " + e.Name
}

func stageName(s gputypes.ShaderStage) string {
	switch s {
	case gputypes.ShaderStageVertex:
		return "vertex"
	case gputypes.ShaderStageFragment:
		return "fragment"
	default:
		return s.String()
	}
}
