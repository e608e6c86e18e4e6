// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"strings"
)

// Diagnostic is a single compiler or linker message.
type Diagnostic struct {
	// Line is the 1-based source line, or 0 for whole-unit messages.
	Line    int
	Token   string
	Message string
}

// String formats d the way browser GLSL compilers print info logs:
//
//	ERROR: 0:3: 'vec' : no matching type
func (d Diagnostic) String() string {
	return fmt.Sprintf("ERROR: 0:%d: '%s' : %s", d.Line, d.Token, d.Message)
}

// Diagnostics is the error returned by Parse and Link. Its Error text is
// the complete info log.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	var b strings.Builder
	for _, d := range ds {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// linkError formats a linker message, which carries no source position.
type linkError string

func (e linkError) Error() string { return "ERROR: Linking failed: " + string(e) + "\n" }
