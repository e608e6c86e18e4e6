// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
)

const rectVertex = `#version 300 es

// position in pixels
in vec2 a_position;

uniform vec2 u_resolution;

void main() {
  vec2 zeroToOne = a_position / u_resolution;
  vec2 zeroToTwo = zeroToOne * 2.0;
  vec2 clipSpace = zeroToTwo - 1.0;
  gl_Position = vec4(clipSpace * vec2(1, -1), 0, 1);
}
`

const rectFragment = `#version 300 es
precision highp float;

uniform vec4 u_color;
out vec4 outColor;

void main() {
  outColor = u_color;
}
`

const constFragment = `#version 300 es
precision highp float;
out vec4 outColor;
void main() {
  /* magenta-ish */
  outColor = vec4(1, 0, 0.5, 1.0);
}
`

func TestParseVertexInterface(t *testing.T) {
	u, err := Parse(gputypes.ShaderStageVertex, rectVertex)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if u.Version != "300 es" {
		t.Errorf("Version = %q, want %q", u.Version, "300 es")
	}
	if len(u.Inputs) != 1 || u.Inputs[0].Name != "a_position" || u.Inputs[0].Type != "vec2" {
		t.Errorf("Inputs = %+v, want one vec2 a_position", u.Inputs)
	}
	if u.Inputs[0].Line != 4 {
		t.Errorf("a_position line = %d, want 4", u.Inputs[0].Line)
	}
	if _, ok := u.Uniform("u_resolution"); !ok {
		t.Error("u_resolution not collected")
	}
}

func TestParseAssignments(t *testing.T) {
	u, err := Parse(gputypes.ShaderStageFragment, constFragment)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, ok := u.Assignments["outColor"]
	if !ok {
		t.Fatal("outColor assignment not recorded")
	}
	want := []float64{1, 0, 0.5, 1}
	if len(got.Const) != len(want) {
		t.Fatalf("Const = %v, want %v", got.Const, want)
	}
	for i := range want {
		if got.Const[i] != want[i] {
			t.Errorf("Const[%d] = %v, want %v", i, got.Const[i], want[i])
		}
	}

	u, err = Parse(gputypes.ShaderStageFragment, rectFragment)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ref := u.Assignments["outColor"].Ref; ref != "u_color" {
		t.Errorf("Ref = %q, want u_color", ref)
	}
}

func TestParseLayoutLocation(t *testing.T) {
	src := "#version 300 es\nlayout(location = 3) in vec4 p;\nvoid main() { gl_Position = p; }\n"
	u, err := Parse(gputypes.ShaderStageVertex, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if u.Inputs[0].Location != 3 {
		t.Errorf("Location = %d, want 3", u.Inputs[0].Location)
	}
}

func TestParseStructsAndHelpers(t *testing.T) {
	src := `#version 330 core
struct VertexOutput {
    vec4 position;
};
layout(location = 0) in vec2 _p2vs_location0;
VertexOutput make_output(vec2 position) {
    VertexOutput o;
    o.position = vec4(position, 0.0, 1.0);
    return o;
}
void main() {
    VertexOutput o = make_output(_p2vs_location0);
    gl_Position = o.position;
    return;
}
`
	if _, err := Parse(gputypes.ShaderStageVertex, src); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestParseBuiltinFunctions(t *testing.T) {
	tests := []struct {
		name  string
		stage gputypes.ShaderStage
		body  string
	}{
		{"relational", gputypes.ShaderStageFragment,
			"bvec4 b = lessThan(v, vec4(0.5));\n  if (any(b) || all(equal(v, v)) || !all(notEqual(v, v))) { discard; }"},
		{"derivatives", gputypes.ShaderStageFragment, "float w = fwidth(v.x) + dFdx(v.y) + dFdy(v.z);"},
		{"hyperbolic", gputypes.ShaderStageFragment, "float h = sinh(v.x) + cosh(v.y) + tanh(v.z) + atanh(0.5);"},
		{"common", gputypes.ShaderStageFragment,
			"vec4 whole;\n  vec4 f = modf(v, whole);\n  bool bad = any(isnan(f)) || any(isinf(f));\n  float r = roundEven(f.x);"},
		{"matrix", gputypes.ShaderStageFragment, "mat4 m = outerProduct(v, v);\n  mat4 n = matrixCompMult(m, m);"},
		{"bits", gputypes.ShaderStageFragment, "uint u = floatBitsToUint(v.x) + packHalf2x16(v.xy);"},
		{"texture", gputypes.ShaderStageFragment,
			"vec4 a = texelFetchOffset(s, ivec2(0), 0, ivec2(1));\n  vec4 b = textureGrad(s, v.xy, vec2(0), vec2(0));\n  vec4 c = textureProjLod(s, v.xyz, 0.0);"},
		{"constants", gputypes.ShaderStageVertex, "int n = gl_MaxVertexAttribs + gl_MaxDrawBuffers;\n  float d = gl_DepthRange.far;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "#version 300 es\nprecision highp float;\nuniform sampler2D s;\nuniform vec4 v;\nout vec4 o;\nvoid main() {\n  " +
				tt.body + "\n  o = v;\n}\n"
			if _, err := Parse(tt.stage, src); err != nil {
				t.Fatalf("Parse: %v", err)
			}
		})
	}
}

func TestParseUniformBlocks(t *testing.T) {
	src := `#version 300 es
precision highp float;
layout(std140) uniform Colors {
  vec4 base;
  highp vec4 tint, shade;
  layout(row_major) mat4 m;
};
uniform Light {
  vec3 dir;
  float power[2];
} light;
uniform vec2 u_resolution;
out vec4 outColor;
void main() {
  outColor = base * tint + shade * light.power[0] + vec4(light.dir, 0) + m[0];
}
`
	u, err := Parse(gputypes.ShaderStageFragment, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(u.Blocks) != 2 {
		t.Fatalf("Blocks = %+v, want 2", u.Blocks)
	}
	colors, lightBlock := u.Blocks[0], u.Blocks[1]
	if colors.Name != "Colors" || colors.Instance != "" || colors.Line != 3 {
		t.Errorf("Blocks[0] = %+v", colors)
	}
	var names []string
	for _, m := range colors.Members {
		names = append(names, m.Type+" "+m.Name)
	}
	if got := strings.Join(names, ", "); got != "vec4 base, vec4 tint, vec4 shade, mat4 m" {
		t.Errorf("Colors members = %s", got)
	}
	if lightBlock.Name != "Light" || lightBlock.Instance != "light" || len(lightBlock.Members) != 2 {
		t.Errorf("Blocks[1] = %+v", lightBlock)
	}
	if len(u.Uniforms) != 1 || u.Uniforms[0].Name != "u_resolution" {
		t.Errorf("Uniforms = %+v, want only u_resolution", u.Uniforms)
	}
	if _, ok := u.Uniform("base"); ok {
		t.Error("block member reported as a plain uniform")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		token string
		line  int
	}{
		{"no version", "in vec4 p;\nvoid main() {}\n", "in", 1},
		{"bad version", "#version 100\nvoid main() {}\n", "100", 1},
		{"missing semicolon", "#version 300 es\nin vec4 a_position\nvoid main() { gl_Position = a_position; }\n", "void", 3},
		{"unknown type", "#version 300 es\nin vecc4 p;\nvoid main() {}\n", "vecc4", 2},
		{"undeclared", "#version 300 es\nin vec4 p;\nvoid main() {\n gl_Position = q;\n}\n", "q", 4},
		{"unbalanced", "#version 300 es\nvoid main() {\n gl_Position = vec4(1;\n}\n", "}", 4},
		{"statement not terminated", "#version 300 es\nvoid main() {\n gl_Position = vec4(1)\n}\n", "}", 4},
		{"eof in body", "#version 300 es\nvoid main() {\n", "", 2},
		{"eof after blank lines", "#version 300 es\nvoid main() {\n\n\n", "", 2},
		{"eof without newline", "#version 300 es\nvoid main() {", "", 2},
		{"missing main", "#version 300 es\nin vec4 p;\n", "", 0},
		{"reserved name", "#version 300 es\nin vec4 gl_thing;\nvoid main() {}\n", "gl_thing", 2},
		{"uniform initializer", "#version 300 es\nuniform float f = 1.0;\nvoid main() {}\n", "=", 2},
		{"unterminated comment", "#version 300 es\n/* oops\nvoid main() {}\n", "", 4},
		{"bad character", "#version 300 es\nvoid main() { @ }\n", "@", 2},
		{"non-ascii identifier", "#version 300 es\nin vec4 p;\nvoid main() { float é = 1.0; }\n", "é", 3},
		{"non-ascii after letter", "#version 300 es\nuniform float aé;\nvoid main() {}\n", "é", 2},
		{"sampler in block", "#version 300 es\nuniform B { sampler2D s; };\nvoid main() {}\n", "sampler2D", 2},
		{"out block", "#version 300 es\nout V { vec4 c; };\nvoid main() {}\n", "V", 2},
		{"block member clash", "#version 300 es\nuniform vec4 c;\nuniform B { vec4 c; };\nvoid main() {}\n", "c", 3},
		{"block without semicolon", "#version 300 es\nuniform B { vec4 c; }\nvoid main() {}\n", "void", 3},
		{"define", "#version 300 es\n#define X 1\nvoid main() {}\n", "#define", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(gputypes.ShaderStageVertex, tt.src)
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			var ds Diagnostics
			if !errors.As(err, &ds) || len(ds) == 0 {
				t.Fatalf("error %T is not Diagnostics", err)
			}
			if ds[0].Token != tt.token || ds[0].Line != tt.line {
				t.Errorf("diagnostic = %q, want token %q on line %d", ds[0].String(), tt.token, tt.line)
			}
			if !strings.HasPrefix(err.Error(), "ERROR: 0:") {
				t.Errorf("log %q does not look like an info log", err.Error())
			}
		})
	}
}

func TestLink(t *testing.T) {
	vs, err := Parse(gputypes.ShaderStageVertex, rectVertex)
	if err != nil {
		t.Fatal(err)
	}
	fs, err := Parse(gputypes.ShaderStageFragment, rectFragment)
	if err != nil {
		t.Fatal(err)
	}
	p, err := Link(vs, fs)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	a, ok := p.Attribute("a_position")
	if !ok || a.Location != 0 {
		t.Errorf("a_position = %+v, %v; want location 0", a, ok)
	}
	res, _ := p.Uniform("u_resolution")
	col, _ := p.Uniform("u_color")
	if res.Location != 0 || col.Location != 1 {
		t.Errorf("uniform locations = %d, %d; want 0, 1", res.Location, col.Location)
	}
	if _, ok := p.Attribute("a_missing"); ok {
		t.Error("unexpected attribute a_missing")
	}
}

func TestLinkAttributeLocations(t *testing.T) {
	vs, err := Parse(gputypes.ShaderStageVertex,
		"#version 300 es\nin vec2 a;\nlayout(location = 0) in vec2 b;\nin vec2 c;\nvoid main() { gl_Position = vec4(a + b + c, 0, 1); }\n")
	if err != nil {
		t.Fatal(err)
	}
	fs, err := Parse(gputypes.ShaderStageFragment, constFragment)
	if err != nil {
		t.Fatal(err)
	}
	p, err := Link(vs, fs)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"a": 1, "b": 0, "c": 2}
	for name, loc := range want {
		got, _ := p.Attribute(name)
		if got.Location != loc {
			t.Errorf("%s location = %d, want %d", name, got.Location, loc)
		}
	}
}

func TestLinkErrors(t *testing.T) {
	vs300 := "#version 300 es\nout vec2 v_uv;\nuniform float u;\nvoid main() { v_uv = vec2(0); gl_Position = vec4(0); }\n"
	tests := []struct {
		name string
		vs   string
		fs   string
		want string
	}{
		{"missing varying", vs300,
			"#version 300 es\nprecision highp float;\nin vec2 v_other;\nout vec4 o;\nvoid main() { o = vec4(v_other, 0, 1); }\n",
			"v_other"},
		{"varying type", vs300,
			"#version 300 es\nprecision highp float;\nin vec3 v_uv;\nout vec4 o;\nvoid main() { o = vec4(v_uv, 1); }\n",
			"types of varying"},
		{"uniform type", vs300,
			"#version 300 es\nprecision highp float;\nuniform vec2 u;\nout vec4 o;\nvoid main() { o = vec4(u, 0, 1); }\n",
			"types of uniform"},
		{"version", vs300,
			"#version 330\nout vec4 o;\nvoid main() { o = vec4(1); }\n",
			"versions differ"},
		{"multiple outputs", vs300,
			"#version 300 es\nprecision highp float;\nout vec4 a;\nout vec4 b;\nvoid main() { a = vec4(1); b = vec4(1); }\n",
			"explicitly specify"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs, err := Parse(gputypes.ShaderStageVertex, tt.vs)
			if err != nil {
				t.Fatal(err)
			}
			fs, err := Parse(gputypes.ShaderStageFragment, tt.fs)
			if err != nil {
				t.Fatal(err)
			}
			_, err = Link(vs, fs)
			if err == nil {
				t.Fatal("Link succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Link error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}
