// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glsl is a front end for the subset of GLSL ES 3.00 (and desktop
// GLSL 3.30+) that the software backend accepts.
//
// It checks that a shader is well formed, collects its interface (inputs,
// outputs, uniforms with their layout locations) and records simple
// assignments in main that the software rasterizer can evaluate. It does
// not type-check expressions.
package glsl

import (
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
)

// Qualifier is a storage qualifier of a global variable.
type Qualifier uint8

const (
	// In is a vertex attribute or a fragment input varying.
	In Qualifier = iota
	// Out is a vertex output varying or a fragment color output.
	Out
	// UniformQualifier is a per-draw constant.
	UniformQualifier
)

func (q Qualifier) String() string {
	switch q {
	case In:
		return "in"
	case Out:
		return "out"
	case UniformQualifier:
		return "uniform"
	default:
		return "unknown"
	}
}

// Variable is a global interface variable.
type Variable struct {
	Qualifier Qualifier
	Type      string
	Name      string
	// Location is the layout(location = N) value, or -1 when absent.
	Location int
	Line     int
}

// Block is a uniform block.
type Block struct {
	Name string
	// Instance is the instance name, or "" when members are accessed
	// directly.
	Instance string
	Members  []Variable
	Line     int
}

// Expr is the right-hand side of an assignment in main, reduced to the two
// forms the software rasterizer evaluates.
type Expr struct {
	// Const holds the arguments of a constructor call whose arguments are
	// all numeric literals, such as vec4(1, 0, 0.5, 1).
	Const []float64
	// Ref names a single variable, such as u_color.
	Ref string
}

// Unit is a parsed shader stage.
type Unit struct {
	Stage   gputypes.ShaderStage
	Version string

	Inputs   []Variable
	Outputs  []Variable
	Uniforms []Variable

	// Blocks are the uniform blocks. Their members are backed by uniform
	// buffers and have no uniform locations.
	Blocks []Block

	// Assignments maps an assigned variable to its last assigned value in
	// main. Only plain assignments of the forms Expr describes are kept.
	Assignments map[string]Expr
}

// Uniform returns the uniform called name.
func (u *Unit) Uniform(name string) (Variable, bool) {
	return find(u.Uniforms, name)
}

func find(vars []Variable, name string) (Variable, bool) {
	for _, v := range vars {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

var types = map[string]bool{
	"void": true, "bool": true, "int": true, "uint": true, "float": true,
	"vec2": true, "vec3": true, "vec4": true,
	"bvec2": true, "bvec3": true, "bvec4": true,
	"ivec2": true, "ivec3": true, "ivec4": true,
	"uvec2": true, "uvec3": true, "uvec4": true,
	"mat2": true, "mat3": true, "mat4": true,
	"mat2x2": true, "mat2x3": true, "mat2x4": true,
	"mat3x2": true, "mat3x3": true, "mat3x4": true,
	"mat4x2": true, "mat4x3": true, "mat4x4": true,
	"sampler2D": true, "sampler3D": true, "samplerCube": true, "sampler2DArray": true,
	"sampler2DShadow": true, "samplerCubeShadow": true, "sampler2DArrayShadow": true,
	"isampler2D": true, "isampler3D": true, "isamplerCube": true, "isampler2DArray": true,
	"usampler2D": true, "usampler3D": true, "usamplerCube": true, "usampler2DArray": true,
}

var precisions = map[string]bool{"highp": true, "mediump": true, "lowp": true}

var interpolation = map[string]bool{"flat": true, "smooth": true, "centroid": true, "invariant": true}

var keywords = map[string]bool{
	"return": true, "if": true, "else": true, "for": true, "while": true, "do": true,
	"break": true, "continue": true, "discard": true, "true": true, "false": true,
	"const": true, "in": true, "out": true, "inout": true, "switch": true, "case": true, "default": true,
}

// builtins lists the GLSL ES 3.00 built-in variables, constants and
// functions.
var builtins = map[string]bool{
	// variables
	"gl_Position": true, "gl_PointSize": true, "gl_VertexID": true, "gl_InstanceID": true,
	"gl_FragCoord": true, "gl_FrontFacing": true, "gl_PointCoord": true, "gl_FragDepth": true,
	"gl_DepthRange": true,

	// constants
	"gl_MaxVertexAttribs": true, "gl_MaxVertexUniformVectors": true, "gl_MaxVertexOutputVectors": true,
	"gl_MaxFragmentInputVectors": true, "gl_MaxVertexTextureImageUnits": true,
	"gl_MaxCombinedTextureImageUnits": true, "gl_MaxTextureImageUnits": true,
	"gl_MaxFragmentUniformVectors": true, "gl_MaxDrawBuffers": true,
	"gl_MinProgramTexelOffset": true, "gl_MaxProgramTexelOffset": true,

	// angle and trigonometry
	"radians": true, "degrees": true, "sin": true, "cos": true, "tan": true,
	"asin": true, "acos": true, "atan": true,
	"sinh": true, "cosh": true, "tanh": true, "asinh": true, "acosh": true, "atanh": true,

	// exponential
	"pow": true, "exp": true, "log": true, "exp2": true, "log2": true, "sqrt": true, "inversesqrt": true,

	// common
	"abs": true, "sign": true, "floor": true, "trunc": true, "round": true, "roundEven": true,
	"ceil": true, "fract": true, "mod": true, "modf": true, "min": true, "max": true,
	"clamp": true, "mix": true, "step": true, "smoothstep": true, "isnan": true, "isinf": true,
	"floatBitsToInt": true, "floatBitsToUint": true, "intBitsToFloat": true, "uintBitsToFloat": true,

	// packing
	"packSnorm2x16": true, "unpackSnorm2x16": true, "packUnorm2x16": true, "unpackUnorm2x16": true,
	"packHalf2x16": true, "unpackHalf2x16": true,

	// geometric
	"length": true, "distance": true, "dot": true, "cross": true, "normalize": true,
	"faceforward": true, "reflect": true, "refract": true,

	// matrix
	"matrixCompMult": true, "outerProduct": true, "transpose": true, "determinant": true, "inverse": true,

	// vector relational
	"lessThan": true, "lessThanEqual": true, "greaterThan": true, "greaterThanEqual": true,
	"equal": true, "notEqual": true, "any": true, "all": true, "not": true,

	// texture lookup
	"textureSize": true, "texture": true, "textureProj": true, "textureLod": true, "textureOffset": true,
	"texelFetch": true, "texelFetchOffset": true, "textureProjOffset": true, "textureLodOffset": true,
	"textureProjLod": true, "textureProjLodOffset": true, "textureGrad": true, "textureGradOffset": true,
	"textureProjGrad": true, "textureProjGradOffset": true,

	// fragment processing
	"dFdx": true, "dFdy": true, "fwidth": true,
}

// Parse checks source as a shader of the given stage and returns its
// interface. On failure the error is Diagnostics, whose text is the info
// log a driver would report.
func Parse(stage gputypes.ShaderStage, source string) (*Unit, error) {
	clean, ok := stripComments(source)
	if !ok {
		return nil, Diagnostics{{Line: strings.Count(source, "\n") + 1, Message: "unterminated block comment"}}
	}
	toks, d := lex(clean)
	if d != nil {
		return nil, Diagnostics{*d}
	}

	p := &parser{
		toks:      toks,
		unit:      &Unit{Stage: stage, Assignments: make(map[string]Expr)},
		functions: make(map[string]bool),
		globals:   make(map[string]bool),
		structs:   make(map[string]bool),
		blocks:    make(map[string]bool),
	}
	p.parse()
	if len(p.diags) > 0 {
		return nil, p.diags
	}
	return p.unit, nil
}

type parser struct {
	toks  []token
	pos   int
	unit  *Unit
	diags Diagnostics

	functions map[string]bool
	globals   map[string]bool
	structs   map[string]bool
	blocks    map[string]bool
	hasMain   bool
}

func (p *parser) isType(name string) bool {
	return types[name] || p.structs[name]
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, msg string) {
	text := t.text
	if t.kind == tokEOF {
		msg = "unexpected end of file"
	}
	p.diags = append(p.diags, Diagnostic{Line: t.line, Token: text, Message: msg})
}

// expect consumes a token with the given text or records a syntax error.
func (p *parser) expect(text string) bool {
	t := p.next()
	if t.text != text || t.kind == tokEOF {
		p.errorf(t, "syntax error, expected '"+text+"'")
		return false
	}
	return true
}

func (p *parser) parse() {
	first := p.peek()
	if first.kind != tokDirective || !strings.HasPrefix(first.text, "#version") {
		p.errorf(token{line: first.line, text: first.text}, "'#version 300 es' must be the first line of the shader")
		return
	}
	p.next()
	if !p.parseVersion(first) {
		return
	}

	for len(p.diags) == 0 {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			if !p.hasMain {
				p.diags = append(p.diags, Diagnostic{Line: 0, Message: "Missing main()"})
			}
			return
		case t.kind == tokDirective:
			p.next()
			p.parseDirective(t)
		case t.text == "precision":
			p.next()
			p.parsePrecision()
		case t.text == "layout":
			p.next()
			loc, ok := p.parseLayout()
			if !ok {
				return
			}
			p.parseStorage(loc)
		case t.text == "in" || t.text == "out" || t.text == "uniform" || interpolation[t.text]:
			p.parseStorage(-1)
		case t.text == "const":
			p.next()
			p.skipDeclaration()
		case t.text == "struct":
			p.next()
			p.parseStruct()
		case t.kind == tokIdent && p.isType(t.text):
			p.parseFunctionOrGlobal()
		default:
			p.next()
			p.errorf(t, "syntax error")
		}
	}
}

func (p *parser) parseVersion(t token) bool {
	fields := strings.Fields(t.text)
	switch {
	case len(fields) == 3 && fields[1] == "300" && fields[2] == "es":
	case (len(fields) == 2 || (len(fields) == 3 && fields[2] == "core")) && desktopVersion(fields[1]):
	default:
		p.errorf(token{line: t.line, text: strings.Join(fields[1:], " ")}, "version number not supported")
		return false
	}
	p.unit.Version = strings.Join(fields[1:], " ")
	return true
}

func desktopVersion(v string) bool {
	n, err := strconv.Atoi(v)
	return err == nil && n >= 330 && n <= 460
}

func (p *parser) parseDirective(t token) {
	fields := strings.Fields(t.text)
	switch fields[0] {
	case "#version":
		p.errorf(t, "#version directive must occur before anything else")
	case "#extension", "#pragma", "#line", "#":
	default:
		p.errorf(token{line: t.line, text: fields[0]}, "preprocessor directive not supported")
	}
}

func (p *parser) parsePrecision() {
	q := p.next()
	if !precisions[q.text] {
		p.errorf(q, "expected precision qualifier")
		return
	}
	ty := p.next()
	if !p.isType(ty.text) {
		p.errorf(ty, "no matching type for precision statement")
		return
	}
	p.expect(";")
}

// parseLayout parses "(location = N)" after the layout keyword.
func (p *parser) parseLayout() (int, bool) {
	if !p.expect("(") {
		return 0, false
	}
	loc := -1
	for {
		key := p.next()
		if key.kind != tokIdent {
			p.errorf(key, "syntax error in layout qualifier")
			return 0, false
		}
		if p.peek().text == "=" {
			p.next()
			val := p.next()
			n, err := strconv.Atoi(val.text)
			if val.kind != tokNumber || err != nil || n < 0 {
				p.errorf(val, "invalid layout value")
				return 0, false
			}
			if key.text == "location" {
				loc = n
			}
		}
		sep := p.next()
		if sep.text == ")" {
			return loc, true
		}
		if sep.text != "," {
			p.errorf(sep, "syntax error in layout qualifier")
			return 0, false
		}
	}
}

func (p *parser) parseStorage(location int) {
	for interpolation[p.peek().text] {
		p.next()
	}
	qt := p.next()
	var q Qualifier
	switch qt.text {
	case "in":
		q = In
	case "out":
		q = Out
	case "uniform":
		q = UniformQualifier
	default:
		p.errorf(qt, "syntax error, expected storage qualifier")
		return
	}
	if next := p.peek(); next.kind == tokIdent && !p.isType(next.text) && p.toks[p.pos+1].text == "{" {
		if q != UniformQualifier {
			p.errorf(next, qt.text+" interface blocks are not supported in GLSL ES 3.00")
			return
		}
		p.parseUniformBlock()
		return
	}
	if precisions[p.peek().text] {
		p.next()
	}
	ty := p.next()
	if !p.isType(ty.text) || ty.text == "void" {
		p.errorf(ty, "no matching type")
		return
	}
	if strings.HasPrefix(ty.text, "sampler") || strings.Contains(ty.text, "sampler") {
		if q != UniformQualifier {
			p.errorf(ty, "samplers must be uniform")
			return
		}
	}
	if q == In && p.unit.Stage == gputypes.ShaderStageVertex && (ty.text == "bool" || strings.HasPrefix(ty.text, "bvec")) {
		p.errorf(ty, "vertex attributes cannot be boolean")
		return
	}

	for {
		name := p.next()
		if name.kind != tokIdent || p.isType(name.text) || keywords[name.text] {
			p.errorf(name, "syntax error, expected identifier")
			return
		}
		if strings.HasPrefix(name.text, "gl_") {
			p.errorf(name, "identifiers starting with \"gl_\" are reserved")
			return
		}
		if p.globals[name.text] {
			p.errorf(name, "redefinition")
			return
		}
		if !p.arraySize() {
			return
		}
		if p.peek().text == "=" {
			p.errorf(p.peek(), "cannot initialize this type of qualifier")
			return
		}

		p.globals[name.text] = true
		v := Variable{Qualifier: q, Type: ty.text, Name: name.text, Location: location, Line: name.line}
		switch q {
		case In:
			p.unit.Inputs = append(p.unit.Inputs, v)
		case Out:
			p.unit.Outputs = append(p.unit.Outputs, v)
		case UniformQualifier:
			p.unit.Uniforms = append(p.unit.Uniforms, v)
		}

		sep := p.next()
		if sep.text == ";" {
			return
		}
		if sep.text != "," {
			p.errorf(sep, "syntax error, expected ';'")
			return
		}
	}
}

// arraySize consumes an optional "[N]" suffix.
func (p *parser) arraySize() bool {
	if p.peek().text != "[" {
		return true
	}
	p.next()
	n := p.next()
	if n.kind != tokNumber {
		p.errorf(n, "array size must be a constant integer expression")
		return false
	}
	return p.expect("]")
}

// parseUniformBlock parses "Name { members } [instance];" after the
// uniform qualifier. Members of a block without an instance name are
// visible as globals.
func (p *parser) parseUniformBlock() {
	name := p.next()
	if p.blocks[name.text] {
		p.errorf(name, "redefinition of block")
		return
	}
	p.next() // {
	b := Block{Name: name.text, Line: name.line}
	seen := make(map[string]bool)
	for p.peek().text != "}" {
		if p.peek().kind == tokEOF {
			p.errorf(p.next(), "")
			return
		}
		if p.peek().text == "layout" {
			p.next()
			if _, ok := p.parseLayout(); !ok {
				return
			}
		}
		if precisions[p.peek().text] {
			p.next()
		}
		ty := p.next()
		if !p.isType(ty.text) || ty.text == "void" {
			p.errorf(ty, "no matching type")
			return
		}
		if strings.Contains(ty.text, "sampler") {
			p.errorf(ty, "samplers are not allowed in uniform blocks")
			return
		}
		for {
			m := p.next()
			if m.kind != tokIdent || p.isType(m.text) || keywords[m.text] {
				p.errorf(m, "syntax error, expected identifier")
				return
			}
			if seen[m.text] {
				p.errorf(m, "redefinition")
				return
			}
			if !p.arraySize() {
				return
			}
			seen[m.text] = true
			b.Members = append(b.Members, Variable{
				Qualifier: UniformQualifier, Type: ty.text, Name: m.text, Location: -1, Line: m.line,
			})
			sep := p.next()
			if sep.text == ";" {
				break
			}
			if sep.text != "," {
				p.errorf(sep, "syntax error, expected ';'")
				return
			}
		}
	}
	p.next() // }

	if inst := p.peek(); inst.kind == tokIdent {
		p.next()
		if p.isType(inst.text) || keywords[inst.text] || p.globals[inst.text] {
			p.errorf(inst, "syntax error, expected identifier")
			return
		}
		if !p.arraySize() {
			return
		}
		b.Instance = inst.text
	}
	if !p.expect(";") {
		return
	}

	if b.Instance != "" {
		p.globals[b.Instance] = true
	} else {
		for _, m := range b.Members {
			if p.globals[m.Name] {
				p.errorf(token{kind: tokIdent, text: m.Name, line: m.Line}, "redefinition")
				return
			}
			p.globals[m.Name] = true
		}
	}
	p.blocks[b.Name] = true
	p.unit.Blocks = append(p.unit.Blocks, b)
}

// parseStruct registers a struct type. Fields are not tracked.
func (p *parser) parseStruct() {
	name := p.next()
	if name.kind != tokIdent || p.isType(name.text) || keywords[name.text] {
		p.errorf(name, "syntax error, expected struct name")
		return
	}
	open := p.next()
	if open.text != "{" {
		p.errorf(open, "syntax error, expected '{'")
		return
	}
	if _, ok := p.parseBody(open); !ok {
		return
	}
	p.structs[name.text] = true
	for {
		t := p.next()
		if t.text == ";" {
			return
		}
		if t.kind == tokIdent {
			p.globals[t.text] = true
			continue
		}
		p.errorf(t, "syntax error, expected ';'")
		return
	}
}

// skipDeclaration consumes a global declaration up to its semicolon,
// recording the declared name.
func (p *parser) skipDeclaration() {
	if precisions[p.peek().text] {
		p.next()
	}
	ty := p.next()
	if !p.isType(ty.text) {
		p.errorf(ty, "no matching type")
		return
	}
	name := p.next()
	if name.kind != tokIdent {
		p.errorf(name, "syntax error, expected identifier")
		return
	}
	p.globals[name.text] = true
	for {
		t := p.next()
		if t.text == ";" {
			return
		}
		if t.kind == tokEOF {
			p.errorf(t, "")
			return
		}
	}
}

func (p *parser) parseFunctionOrGlobal() {
	ty := p.next()
	name := p.next()
	if name.kind != tokIdent || p.isType(name.text) || keywords[name.text] {
		p.errorf(name, "syntax error, expected identifier")
		return
	}
	if p.peek().text != "(" {
		p.pos -= 2
		p.skipDeclaration()
		return
	}
	p.next()

	params := make(map[string]bool)
	var paramToks []token
	for {
		t := p.next()
		if t.text == ")" {
			break
		}
		if t.kind == tokEOF {
			p.errorf(t, "")
			return
		}
		paramToks = append(paramToks, t)
	}
	for i, t := range paramToks {
		if t.kind == tokIdent && i > 0 && p.isType(paramToks[i-1].text) {
			params[t.text] = true
		}
	}

	if name.text == "main" {
		if ty.text != "void" {
			p.errorf(ty, "main function cannot return a value")
			return
		}
		if len(paramToks) > 1 || (len(paramToks) == 1 && paramToks[0].text != "void") {
			p.errorf(name, "main function cannot take any parameters")
			return
		}
	}
	p.functions[name.text] = true

	if p.peek().text == ";" {
		p.next()
		return
	}
	open := p.next()
	if open.text != "{" {
		p.errorf(open, "syntax error, expected '{'")
		return
	}
	body, ok := p.parseBody(open)
	if !ok {
		return
	}
	p.checkIdentifiers(body, params)
	if name.text == "main" {
		if p.hasMain {
			p.errorf(name, "function already has a body")
			return
		}
		p.hasMain = true
		p.collectAssignments(body)
	}
}

// parseBody consumes tokens up to the brace matching open and returns the
// tokens in between. It checks bracket balance and that every statement is
// terminated.
func (p *parser) parseBody(open token) ([]token, bool) {
	stack := []token{open}
	start := p.pos
	prev := open
	for {
		t := p.next()
		switch t.text {
		case "{", "(", "[":
			if t.kind == tokPunct {
				stack = append(stack, t)
			}
		case "}", ")", "]":
			if t.kind != tokPunct {
				break
			}
			top := stack[len(stack)-1]
			if !matches(top.text, t.text) {
				p.errorf(t, "syntax error, unbalanced '"+top.text+"'")
				return nil, false
			}
			if t.text == "}" && prev.text != ";" && prev.text != "{" && prev.text != "}" {
				p.errorf(t, "syntax error, expected ';'")
				return nil, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return p.toks[start : p.pos-1], true
			}
		}
		if t.kind == tokEOF {
			p.errorf(t, "")
			return nil, false
		}
		if t.kind == tokDirective {
			p.errorf(t, "preprocessor directive not supported")
			return nil, false
		}
		prev = t
	}
}

func matches(open, closing string) bool {
	switch open {
	case "{":
		return closing == "}"
	case "(":
		return closing == ")"
	case "[":
		return closing == "]"
	}
	return false
}

// checkIdentifiers reports identifiers in body that are not declared.
func (p *parser) checkIdentifiers(body []token, params map[string]bool) {
	locals := make(map[string]bool)
	for i, t := range body {
		if t.kind != tokIdent {
			continue
		}
		if i > 0 && body[i-1].text == "." {
			continue
		}
		if i > 0 && (p.isType(body[i-1].text) || (body[i-1].text == "," && p.isDeclaration(body, i))) {
			locals[t.text] = true
			continue
		}
		switch {
		case p.isType(t.text), keywords[t.text], precisions[t.text], builtins[t.text]:
		case p.globals[t.text], p.functions[t.text], params[t.text], locals[t.text]:
		default:
			p.errorf(t, "undeclared identifier")
			return
		}
	}
}

// isDeclaration reports whether the identifier at i continues a
// comma-separated declaration such as "float a, b".
func (p *parser) isDeclaration(body []token, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch body[j].text {
		case ";", "{", "}", "(":
			return false
		}
		if p.isType(body[j].text) && (j == 0 || body[j-1].text == ";" || body[j-1].text == "{" || body[j-1].text == "}") {
			return true
		}
	}
	return false
}

// collectAssignments records "name = rhs;" statements at the top level of
// main.
func (p *parser) collectAssignments(body []token) {
	depth := 0
	var stmt []token
	for _, t := range body {
		switch t.text {
		case "{", "(", "[":
			depth++
		case "}", ")", "]":
			depth--
		}
		if t.text == ";" && depth == 0 {
			p.recordAssignment(stmt)
			stmt = stmt[:0]
			continue
		}
		stmt = append(stmt, t)
	}
}

func (p *parser) recordAssignment(stmt []token) {
	if len(stmt) < 3 || stmt[0].kind != tokIdent || stmt[1].text != "=" {
		return
	}
	target := stmt[0].text
	rhs := stmt[2:]

	if len(rhs) == 1 && rhs[0].kind == tokIdent {
		p.unit.Assignments[target] = Expr{Ref: rhs[0].text}
		return
	}
	if len(rhs) < 3 || !p.isType(rhs[0].text) || rhs[1].text != "(" || rhs[len(rhs)-1].text != ")" {
		delete(p.unit.Assignments, target)
		return
	}
	var vals []float64
	args := rhs[2 : len(rhs)-1]
	for i := 0; i < len(args); {
		sign := 1.0
		if args[i].text == "-" || args[i].text == "+" {
			if args[i].text == "-" {
				sign = -1
			}
			i++
		}
		if i >= len(args) || args[i].kind != tokNumber {
			delete(p.unit.Assignments, target)
			return
		}
		v, err := parseNumber(args[i].text)
		if err != nil {
			delete(p.unit.Assignments, target)
			return
		}
		vals = append(vals, sign*v)
		i++
		if i < len(args) {
			if args[i].text != "," {
				delete(p.unit.Assignments, target)
				return
			}
			i++
		}
	}
	p.unit.Assignments[target] = Expr{Const: vals}
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimRight(s, "fFuU")
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseInt(s[2:], 16, 64)
		return float64(n), err
	}
	return strconv.ParseFloat(s, 64)
}
