// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// maxVertexAttribs is the WebGL2 minimum for MAX_VERTEX_ATTRIBS.
const maxVertexAttribs = 16

// Program is the linked interface of a vertex and a fragment unit.
type Program struct {
	Vertex   *Unit
	Fragment *Unit

	// Attributes are the vertex inputs with resolved locations.
	Attributes []Variable
	// Uniforms are the uniforms of both stages; Location is the index.
	Uniforms []Variable
}

// Attribute returns the attribute called name.
func (p *Program) Attribute(name string) (Variable, bool) {
	return find(p.Attributes, name)
}

// Uniform returns the uniform called name.
func (p *Program) Uniform(name string) (Variable, bool) {
	return find(p.Uniforms, name)
}

// Link matches the interfaces of vs and fs. On failure the error text is the
// info log a driver would report.
func Link(vs, fs *Unit) (*Program, error) {
	if vs == nil || vs.Stage != gputypes.ShaderStageVertex {
		return nil, linkError("missing vertex shader")
	}
	if fs == nil || fs.Stage != gputypes.ShaderStageFragment {
		return nil, linkError("missing fragment shader")
	}
	if vs.Version != fs.Version {
		return nil, linkError(fmt.Sprintf("shader versions differ (%s, %s)", vs.Version, fs.Version))
	}

	for _, in := range fs.Inputs {
		out, ok := find(vs.Outputs, in.Name)
		if !ok {
			return nil, linkError(fmt.Sprintf("varying '%s' is not declared in the vertex shader", in.Name))
		}
		if out.Type != in.Type {
			return nil, linkError(fmt.Sprintf("types of varying '%s' differ between shaders", in.Name))
		}
	}

	if len(fs.Outputs) > 1 {
		for _, out := range fs.Outputs {
			if out.Location < 0 {
				return nil, linkError("must explicitly specify all locations when using multiple fragment outputs")
			}
		}
	}

	attrs, err := assignAttributeLocations(vs.Inputs)
	if err != nil {
		return nil, err
	}

	uniforms := make([]Variable, 0, len(vs.Uniforms)+len(fs.Uniforms))
	for _, u := range vs.Uniforms {
		u.Location = len(uniforms)
		uniforms = append(uniforms, u)
	}
	for _, u := range fs.Uniforms {
		if prev, ok := find(uniforms, u.Name); ok {
			if prev.Type != u.Type {
				return nil, linkError(fmt.Sprintf("types of uniform '%s' differ between shaders", u.Name))
			}
			continue
		}
		u.Location = len(uniforms)
		uniforms = append(uniforms, u)
	}

	return &Program{Vertex: vs, Fragment: fs, Attributes: attrs, Uniforms: uniforms}, nil
}

// assignAttributeLocations keeps explicit locations and hands out the lowest
// free location to the rest, in declaration order.
func assignAttributeLocations(inputs []Variable) ([]Variable, error) {
	used := make(map[int]string)
	for _, in := range inputs {
		if in.Location < 0 {
			continue
		}
		if in.Location >= maxVertexAttribs {
			return nil, linkError(fmt.Sprintf("attribute '%s' location %d exceeds MAX_VERTEX_ATTRIBS", in.Name, in.Location))
		}
		if other, ok := used[in.Location]; ok {
			return nil, linkError(fmt.Sprintf("attributes '%s' and '%s' are bound to the same location", other, in.Name))
		}
		used[in.Location] = in.Name
	}

	attrs := make([]Variable, 0, len(inputs))
	next := 0
	for _, in := range inputs {
		if in.Location < 0 {
			for used[next] != "" {
				next++
			}
			if next >= maxVertexAttribs {
				return nil, linkError("too many vertex attributes")
			}
			in.Location = next
			used[next] = in.Name
		}
		attrs = append(attrs, in)
	}
	return attrs, nil
}
