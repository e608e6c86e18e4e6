// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glprims"
	"github.com/gogpu/glprims/internal/glsl"
)

var errEmptyCanvas = errors.New("soft: canvas has no pixels")

// maxVertexAttribs matches the attribute limit of the shader front end.
const maxVertexAttribs = 16

// ErrorCode is a GL error flag value.
type ErrorCode uint32

// GL error flags recorded by the context.
const (
	NoError          ErrorCode = 0
	InvalidEnum      ErrorCode = 0x0500
	InvalidValue     ErrorCode = 0x0501
	InvalidOperation ErrorCode = 0x0502
)

func (e ErrorCode) String() string {
	switch e {
	case NoError:
		return "NO_ERROR"
	case InvalidEnum:
		return "INVALID_ENUM"
	case InvalidValue:
		return "INVALID_VALUE"
	case InvalidOperation:
		return "INVALID_OPERATION"
	default:
		return fmt.Sprintf("ErrorCode(%#x)", uint32(e))
	}
}

// Draw records one DrawArrays call that reached the rasterizer.
type Draw struct {
	Mode  gputypes.PrimitiveTopology
	First int
	Count int
	// Color is the fragment color the draw was shaded with.
	Color gputypes.Color
	// Positions are the clip-space x, y of each vertex.
	Positions [][2]float32
}

// Objects counts live GPU objects, including ones whose deletion is
// deferred because they are still attached or in use.
type Objects struct {
	Shaders      int
	Programs     int
	Buffers      int
	VertexArrays int
}

// Total returns the number of live objects of all kinds.
func (o Objects) Total() int {
	return o.Shaders + o.Programs + o.Buffers + o.VertexArrays
}

// Option configures a Context.
type Option func(*Context)

// WithMaxObjects limits the number of live objects. Create calls beyond the
// limit return the zero handle, as a browser does after context loss.
func WithMaxObjects(n int) Option {
	return func(c *Context) { c.maxObjects = n }
}

// WithParseCache makes the context compile shaders through cache. Contexts
// share a package-level cache by default; a nil cache parses every time.
func WithParseCache(cache *glsl.Cache) Option {
	return func(c *Context) { c.parses = cache }
}

// sharedParses is the default parse cache. Tests and the CLI compile the
// same exercise sources over and over.
var sharedParses = glsl.NewCache(glsl.DefaultCacheCapacity)

type shaderObject struct {
	stage    gputypes.ShaderStage
	source   string
	compiled bool
	log      string
	unit     *glsl.Unit
	attached int
	deleted  bool
}

type programObject struct {
	shaders  []uint32
	linked   bool
	log      string
	linkage  *glsl.Program
	uniforms map[int32][]float32
	deleted  bool
}

type bufferObject struct {
	data []float32
}

type vertexAttrib struct {
	enabled bool
	buffer  uint32
	size    int
	stride  int
	offset  int
}

type vertexArrayObject struct {
	attribs [maxVertexAttribs]vertexAttrib
}

// Context is a CPU implementation of glprims.Context that draws into a
// Canvas.
//
// Shaders are checked by a GLSL front end. Drawing evaluates the shader
// forms the exercises use: the vertex position comes from the attribute
// assigned to gl_Position (or the first attribute), in pixel space when the
// vertex shader has a vec2 resolution uniform that has been set, and the
// fragment color is the uniform or constant assigned to the color output.
//
// Context is NOT safe for concurrent use.
type Context struct {
	canvas     *Canvas
	maxObjects int
	parses     *glsl.Cache

	next     uint32
	shaders  map[uint32]*shaderObject
	programs map[uint32]*programObject
	buffers  map[uint32]*bufferObject
	arrays   map[uint32]*vertexArrayObject

	defaultArray vertexArrayObject
	current      uint32
	arrayBuffer  uint32
	boundArray   uint32

	viewport   [4]int
	clearColor [4]float32

	draws []Draw
	err   ErrorCode
}

var _ glprims.Context = (*Context)(nil)

// New creates a context drawing into canvas. The viewport starts out
// covering the current backing buffer.
func New(canvas *Canvas, opts ...Option) *Context {
	w, h := canvas.BackingSize()
	c := &Context{
		canvas:   canvas,
		shaders:  make(map[uint32]*shaderObject),
		programs: make(map[uint32]*programObject),
		buffers:  make(map[uint32]*bufferObject),
		arrays:   make(map[uint32]*vertexArrayObject),
		viewport: [4]int{0, 0, w, h},
		parses:   sharedParses,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Canvas returns the surface the context draws into.
func (c *Context) Canvas() *Canvas { return c.canvas }

// Draws returns the draws issued so far.
func (c *Context) Draws() []Draw { return c.draws }

// ResetDraws forgets recorded draws.
func (c *Context) ResetDraws() { c.draws = nil }

// Live returns the number of live objects.
func (c *Context) Live() Objects {
	return Objects{
		Shaders:      len(c.shaders),
		Programs:     len(c.programs),
		Buffers:      len(c.buffers),
		VertexArrays: len(c.arrays),
	}
}

// Err returns and clears the error flag. Only the first error since the
// last call is kept.
func (c *Context) Err() ErrorCode {
	e := c.err
	c.err = NoError
	return e
}

// ViewportRect returns the current viewport rectangle.
func (c *Context) ViewportRect() (x, y, width, height int) {
	return c.viewport[0], c.viewport[1], c.viewport[2], c.viewport[3]
}

func (c *Context) setError(e ErrorCode, op string) {
	logger().Debug("soft: gl error", "op", op, "error", e)
	if c.err == NoError {
		c.err = e
	}
}

// AdapterInfo implements glprims.Context.
func (c *Context) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "glprims software rasterizer", Type: gpucontext.AdapterTypeSoftware}
}

func (c *Context) allocate() uint32 {
	if c.maxObjects > 0 && c.Live().Total() >= c.maxObjects {
		return 0
	}
	c.next++
	return c.next
}

// CreateShader implements glprims.Context.
func (c *Context) CreateShader(stage gputypes.ShaderStage) glprims.Shader {
	if stage != gputypes.ShaderStageVertex && stage != gputypes.ShaderStageFragment {
		c.setError(InvalidEnum, "CreateShader")
		return glprims.Shader{}
	}
	id := c.allocate()
	if id == 0 {
		return glprims.Shader{}
	}
	c.shaders[id] = &shaderObject{stage: stage}
	return glprims.Shader{Value: id}
}

func (c *Context) shader(s glprims.Shader, op string) *shaderObject {
	obj, ok := c.shaders[s.Value]
	if !ok || obj.deleted {
		if s.Valid() {
			c.setError(InvalidValue, op)
		}
		return nil
	}
	return obj
}

// ShaderSource implements glprims.Context.
func (c *Context) ShaderSource(s glprims.Shader, source string) {
	if obj := c.shader(s, "ShaderSource"); obj != nil {
		obj.source = source
	}
}

// CompileShader implements glprims.Context.
func (c *Context) CompileShader(s glprims.Shader) {
	obj := c.shader(s, "CompileShader")
	if obj == nil {
		return
	}
	var (
		unit *glsl.Unit
		err  error
	)
	if c.parses != nil {
		unit, err = c.parses.Parse(obj.stage, obj.source)
	} else {
		unit, err = glsl.Parse(obj.stage, obj.source)
	}
	if err != nil {
		obj.compiled, obj.unit, obj.log = false, nil, err.Error()
		return
	}
	obj.compiled, obj.unit, obj.log = true, unit, ""
}

// ShaderCompileStatus implements glprims.Context.
func (c *Context) ShaderCompileStatus(s glprims.Shader) bool {
	obj := c.shader(s, "ShaderCompileStatus")
	return obj != nil && obj.compiled
}

// ShaderInfoLog implements glprims.Context.
func (c *Context) ShaderInfoLog(s glprims.Shader) string {
	if obj := c.shader(s, "ShaderInfoLog"); obj != nil {
		return obj.log
	}
	return ""
}

// DeleteShader implements glprims.Context. A shader still attached to a
// program is freed when it is detached.
func (c *Context) DeleteShader(s glprims.Shader) {
	obj, ok := c.shaders[s.Value]
	if !ok {
		return
	}
	obj.deleted = true
	if obj.attached == 0 {
		delete(c.shaders, s.Value)
	}
}

// CreateProgram implements glprims.Context.
func (c *Context) CreateProgram() glprims.Program {
	id := c.allocate()
	if id == 0 {
		return glprims.Program{}
	}
	c.programs[id] = &programObject{}
	return glprims.Program{Value: id}
}

func (c *Context) program(p glprims.Program, op string) *programObject {
	obj, ok := c.programs[p.Value]
	if !ok || obj.deleted {
		if p.Valid() {
			c.setError(InvalidValue, op)
		}
		return nil
	}
	return obj
}

// AttachShader implements glprims.Context.
func (c *Context) AttachShader(p glprims.Program, s glprims.Shader) {
	prog := c.program(p, "AttachShader")
	sh := c.shader(s, "AttachShader")
	if prog == nil || sh == nil {
		return
	}
	for _, id := range prog.shaders {
		if id == s.Value || c.shaders[id].stage == sh.stage {
			c.setError(InvalidOperation, "AttachShader")
			return
		}
	}
	prog.shaders = append(prog.shaders, s.Value)
	sh.attached++
}

// DetachShader implements glprims.Context.
func (c *Context) DetachShader(p glprims.Program, s glprims.Shader) {
	prog := c.program(p, "DetachShader")
	if prog == nil {
		return
	}
	for i, id := range prog.shaders {
		if id == s.Value {
			prog.shaders = append(prog.shaders[:i], prog.shaders[i+1:]...)
			c.release(id)
			return
		}
	}
	c.setError(InvalidOperation, "DetachShader")
}

// release drops one attachment of shader id, freeing it if its deletion
// was deferred.
func (c *Context) release(id uint32) {
	sh, ok := c.shaders[id]
	if !ok {
		return
	}
	sh.attached--
	if sh.deleted && sh.attached == 0 {
		delete(c.shaders, id)
	}
}

// LinkProgram implements glprims.Context.
func (c *Context) LinkProgram(p glprims.Program) {
	prog := c.program(p, "LinkProgram")
	if prog == nil {
		return
	}
	var vs, fs *glsl.Unit
	for _, id := range prog.shaders {
		sh := c.shaders[id]
		if !sh.compiled {
			prog.linked, prog.linkage = false, nil
			prog.log = fmt.Sprintf("ERROR: Linking failed: %s shader is not compiled\n", stageWord(sh.stage))
			return
		}
		if sh.stage == gputypes.ShaderStageVertex {
			vs = sh.unit
		} else {
			fs = sh.unit
		}
	}
	linkage, err := glsl.Link(vs, fs)
	if err != nil {
		prog.linked, prog.linkage, prog.log = false, nil, err.Error()
		return
	}
	prog.linked, prog.linkage, prog.log = true, linkage, ""
	prog.uniforms = make(map[int32][]float32)
}

func stageWord(s gputypes.ShaderStage) string {
	if s == gputypes.ShaderStageVertex {
		return "vertex"
	}
	return "fragment"
}

// ProgramLinkStatus implements glprims.Context.
func (c *Context) ProgramLinkStatus(p glprims.Program) bool {
	prog := c.program(p, "ProgramLinkStatus")
	return prog != nil && prog.linked
}

// ProgramInfoLog implements glprims.Context.
func (c *Context) ProgramInfoLog(p glprims.Program) string {
	if prog := c.program(p, "ProgramInfoLog"); prog != nil {
		return prog.log
	}
	return ""
}

// DeleteProgram implements glprims.Context. The program in use is freed
// when another program replaces it.
func (c *Context) DeleteProgram(p glprims.Program) {
	prog, ok := c.programs[p.Value]
	if !ok {
		return
	}
	prog.deleted = true
	if c.current != p.Value {
		c.freeProgram(p.Value)
	}
}

func (c *Context) freeProgram(id uint32) {
	prog := c.programs[id]
	for _, sid := range prog.shaders {
		c.release(sid)
	}
	delete(c.programs, id)
}

// UseProgram implements glprims.Context.
func (c *Context) UseProgram(p glprims.Program) {
	if p.Valid() {
		prog := c.program(p, "UseProgram")
		if prog == nil {
			return
		}
		if !prog.linked {
			c.setError(InvalidOperation, "UseProgram")
			return
		}
	}
	prev := c.current
	c.current = p.Value
	if prev != 0 && prev != p.Value {
		if old, ok := c.programs[prev]; ok && old.deleted {
			c.freeProgram(prev)
		}
	}
}

// GetAttribLocation implements glprims.Context.
func (c *Context) GetAttribLocation(p glprims.Program, name string) int {
	prog := c.program(p, "GetAttribLocation")
	if prog == nil {
		return -1
	}
	if !prog.linked {
		c.setError(InvalidOperation, "GetAttribLocation")
		return -1
	}
	if a, ok := prog.linkage.Attribute(name); ok {
		return a.Location
	}
	return -1
}

// GetUniformLocation implements glprims.Context.
func (c *Context) GetUniformLocation(p glprims.Program, name string) glprims.Uniform {
	prog := c.program(p, "GetUniformLocation")
	if prog == nil {
		return glprims.NoUniform
	}
	if !prog.linked {
		c.setError(InvalidOperation, "GetUniformLocation")
		return glprims.NoUniform
	}
	if u, ok := prog.linkage.Uniform(name); ok {
		return glprims.Uniform{Value: int32(u.Location)}
	}
	return glprims.NoUniform
}

// CreateBuffer implements glprims.Context.
func (c *Context) CreateBuffer() glprims.Buffer {
	id := c.allocate()
	if id == 0 {
		return glprims.Buffer{}
	}
	c.buffers[id] = &bufferObject{}
	return glprims.Buffer{Value: id}
}

// BindBuffer implements glprims.Context.
func (c *Context) BindBuffer(target glprims.BufferTarget, b glprims.Buffer) {
	if target != glprims.ArrayBuffer {
		c.setError(InvalidEnum, "BindBuffer")
		return
	}
	if _, ok := c.buffers[b.Value]; b.Valid() && !ok {
		c.setError(InvalidOperation, "BindBuffer")
		return
	}
	c.arrayBuffer = b.Value
}

// BufferData implements glprims.Context. The data is copied.
func (c *Context) BufferData(target glprims.BufferTarget, data []float32, usage glprims.BufferUsage) {
	if target != glprims.ArrayBuffer || (usage != glprims.StaticDraw && usage != glprims.DynamicDraw) {
		c.setError(InvalidEnum, "BufferData")
		return
	}
	buf, ok := c.buffers[c.arrayBuffer]
	if !ok {
		c.setError(InvalidOperation, "BufferData")
		return
	}
	buf.data = append(buf.data[:0], data...)
}

// DeleteBuffer implements glprims.Context.
func (c *Context) DeleteBuffer(b glprims.Buffer) {
	if _, ok := c.buffers[b.Value]; !ok {
		return
	}
	delete(c.buffers, b.Value)
	if c.arrayBuffer == b.Value {
		c.arrayBuffer = 0
	}
}

// CreateVertexArray implements glprims.Context.
func (c *Context) CreateVertexArray() glprims.VertexArray {
	id := c.allocate()
	if id == 0 {
		return glprims.VertexArray{}
	}
	c.arrays[id] = &vertexArrayObject{}
	return glprims.VertexArray{Value: id}
}

// BindVertexArray implements glprims.Context. The zero handle binds the
// default vertex array.
func (c *Context) BindVertexArray(v glprims.VertexArray) {
	if _, ok := c.arrays[v.Value]; v.Valid() && !ok {
		c.setError(InvalidOperation, "BindVertexArray")
		return
	}
	c.boundArray = v.Value
}

// DeleteVertexArray implements glprims.Context.
func (c *Context) DeleteVertexArray(v glprims.VertexArray) {
	if _, ok := c.arrays[v.Value]; !ok {
		return
	}
	delete(c.arrays, v.Value)
	if c.boundArray == v.Value {
		c.boundArray = 0
	}
}

func (c *Context) vertexArray() *vertexArrayObject {
	if va, ok := c.arrays[c.boundArray]; ok {
		return va
	}
	return &c.defaultArray
}

// EnableVertexAttribArray implements glprims.Context.
func (c *Context) EnableVertexAttribArray(index int) {
	if index < 0 || index >= maxVertexAttribs {
		c.setError(InvalidValue, "EnableVertexAttribArray")
		return
	}
	c.vertexArray().attribs[index].enabled = true
}

// VertexAttribPointer implements glprims.Context. The currently bound array
// buffer is captured into the bound vertex array.
func (c *Context) VertexAttribPointer(index, size int, t glprims.DataType, normalized bool, stride, offset int) {
	switch {
	case t != glprims.Float:
		c.setError(InvalidEnum, "VertexAttribPointer")
		return
	case index < 0 || index >= maxVertexAttribs || size < 1 || size > 4 || stride < 0 || stride > 255 || offset < 0:
		c.setError(InvalidValue, "VertexAttribPointer")
		return
	case offset%t.Size() != 0 || stride%t.Size() != 0 || c.arrayBuffer == 0:
		c.setError(InvalidOperation, "VertexAttribPointer")
		return
	}
	a := &c.vertexArray().attribs[index]
	a.buffer, a.size, a.stride, a.offset = c.arrayBuffer, size, stride, offset
}

// Uniform2f implements glprims.Context.
func (c *Context) Uniform2f(u glprims.Uniform, x, y float32) {
	c.setUniform(u, "vec2", "Uniform2f", x, y)
}

// Uniform4f implements glprims.Context.
func (c *Context) Uniform4f(u glprims.Uniform, x, y, z, w float32) {
	c.setUniform(u, "vec4", "Uniform4f", x, y, z, w)
}

func (c *Context) setUniform(u glprims.Uniform, typ, op string, v ...float32) {
	prog, ok := c.programs[c.current]
	if !ok || !prog.linked {
		c.setError(InvalidOperation, op)
		return
	}
	if !u.Valid() {
		return
	}
	if int(u.Value) >= len(prog.linkage.Uniforms) || prog.linkage.Uniforms[u.Value].Type != typ {
		c.setError(InvalidOperation, op)
		return
	}
	prog.uniforms[u.Value] = v
}

// Viewport implements glprims.Context.
func (c *Context) Viewport(x, y, width, height int) {
	if width < 0 || height < 0 {
		c.setError(InvalidValue, "Viewport")
		return
	}
	c.viewport = [4]int{x, y, width, height}
}

// ClearColor implements glprims.Context.
func (c *Context) ClearColor(r, g, b, a float32) {
	c.clearColor = [4]float32{clamp01(r), clamp01(g), clamp01(b), clamp01(a)}
}

const validClearBits = glprims.ColorBufferBit | 0x0100 | 0x0400

// Clear implements glprims.Context. Only the color buffer exists.
func (c *Context) Clear(mask glprims.ClearMask) {
	if mask&^validClearBits != 0 {
		c.setError(InvalidValue, "Clear")
		return
	}
	if mask&glprims.ColorBufferBit == 0 {
		return
	}
	if dc := c.canvas.context(); dc != nil {
		cc := c.clearColor
		dc.ClearWithColor(gg.RGBA{R: float64(cc[0]), G: float64(cc[1]), B: float64(cc[2]), A: float64(cc[3])})
	}
}

// DrawArrays implements glprims.Context.
func (c *Context) DrawArrays(mode gputypes.PrimitiveTopology, first, count int) {
	switch mode {
	case gputypes.PrimitiveTopologyPointList, gputypes.PrimitiveTopologyLineList, gputypes.PrimitiveTopologyLineStrip,
		gputypes.PrimitiveTopologyTriangleList, gputypes.PrimitiveTopologyTriangleStrip:
	default:
		c.setError(InvalidEnum, "DrawArrays")
		return
	}
	if first < 0 || count < 0 {
		c.setError(InvalidValue, "DrawArrays")
		return
	}
	prog, ok := c.programs[c.current]
	if !ok || !prog.linked {
		c.setError(InvalidOperation, "DrawArrays")
		return
	}
	positions, ok := c.fetchPositions(prog, first, count)
	if !ok {
		c.setError(InvalidOperation, "DrawArrays")
		return
	}
	d := Draw{Mode: mode, First: first, Count: count, Color: fragmentColor(prog), Positions: positions}
	c.draws = append(c.draws, d)
	c.rasterize(d)
}

// positionAttribute picks the attribute that feeds gl_Position.
func positionAttribute(p *glsl.Program) (glsl.Variable, bool) {
	if ref := p.Vertex.Assignments["gl_Position"].Ref; ref != "" {
		if a, ok := p.Attribute(ref); ok {
			return a, true
		}
	}
	var best glsl.Variable
	found := false
	for _, a := range p.Attributes {
		if !found || a.Location < best.Location {
			best, found = a, true
		}
	}
	return best, found
}

// fetchPositions reads count vertices starting at first and converts them to
// clip space. It fails when an enabled attribute reads past its buffer.
func (c *Context) fetchPositions(prog *programObject, first, count int) ([][2]float32, bool) {
	out := make([][2]float32, count)
	attr, ok := positionAttribute(prog.linkage)
	if !ok {
		return out, true
	}
	a := c.vertexArray().attribs[attr.Location]
	if !a.enabled {
		// The generic attribute value is (0, 0, 0, 1).
		return out, true
	}
	buf, ok := c.buffers[a.buffer]
	if !ok {
		return nil, false
	}
	stride := a.stride / 4
	if stride == 0 {
		stride = a.size
	}
	res, pixels := resolution(prog)
	for i := range out {
		base := a.offset/4 + (first+i)*stride
		if base+a.size > len(buf.data) {
			return nil, false
		}
		v := [4]float32{0, 0, 0, 1}
		copy(v[:a.size], buf.data[base:base+a.size])
		x, y := v[0], v[1]
		if pixels {
			x = x/res[0]*2 - 1
			y = -(y/res[1]*2 - 1)
		} else if v[3] != 0 && v[3] != 1 {
			x, y = x/v[3], y/v[3]
		}
		out[i] = [2]float32{x, y}
	}
	return out, true
}

// resolution returns the first vec2 uniform of the vertex stage when it has
// been set to a non-degenerate value.
func resolution(prog *programObject) ([2]float32, bool) {
	for _, u := range prog.linkage.Vertex.Uniforms {
		if u.Type != "vec2" {
			continue
		}
		lu, _ := prog.linkage.Uniform(u.Name)
		v, ok := prog.uniforms[int32(lu.Location)]
		if !ok || v[0] == 0 || v[1] == 0 {
			return [2]float32{}, false
		}
		return [2]float32{v[0], v[1]}, true
	}
	return [2]float32{}, false
}

// fragmentColor evaluates the value written to the first fragment output.
func fragmentColor(prog *programObject) gputypes.Color {
	fs := prog.linkage.Fragment
	white := gputypes.Color{R: 1, G: 1, B: 1, A: 1}
	if len(fs.Outputs) == 0 {
		return white
	}
	out := fs.Outputs[0].Name
	expr, ok := fs.Assignments[out]
	switch {
	case ok && expr.Ref != "":
		u, found := prog.linkage.Uniform(expr.Ref)
		if !found {
			break
		}
		v := prog.uniforms[int32(u.Location)]
		var col [4]float64
		for i := 0; i < len(v) && i < 4; i++ {
			col[i] = float64(v[i])
		}
		return gputypes.Color{R: col[0], G: col[1], B: col[2], A: col[3]}
	case ok && len(expr.Const) > 0:
		k := expr.Const
		switch len(k) {
		case 1:
			return gputypes.Color{R: k[0], G: k[0], B: k[0], A: k[0]}
		case 3:
			return gputypes.Color{R: k[0], G: k[1], B: k[2], A: 1}
		case 4:
			return gputypes.Color{R: k[0], G: k[1], B: k[2], A: k[3]}
		}
	}
	logger().Warn("soft: fragment output is not a constant or uniform, shading white", "output", out)
	return white
}

// rasterize draws d clipped to the viewport.
func (c *Context) rasterize(d Draw) {
	dc := c.canvas.context()
	if dc == nil || len(d.Positions) == 0 {
		return
	}
	_, height := c.canvas.BackingSize()
	vx, vy, vw, vh := float64(c.viewport[0]), float64(c.viewport[1]), float64(c.viewport[2]), float64(c.viewport[3])
	win := make([]gg.Point, len(d.Positions))
	for i, p := range d.Positions {
		win[i] = gg.Pt(
			vx+(float64(p[0])+1)/2*vw,
			float64(height)-(vy+(float64(p[1])+1)/2*vh),
		)
	}

	dc.Push()
	defer dc.Pop()
	dc.ClipRect(vx, float64(height)-vy-vh, vw, vh)
	col := gg.RGBA{R: clampf(d.Color.R), G: clampf(d.Color.G), B: clampf(d.Color.B), A: clampf(d.Color.A)}
	dc.SetRGBA(col.R, col.G, col.B, col.A)

	switch d.Mode {
	case gputypes.PrimitiveTopologyTriangleList:
		for i := 0; i+2 < len(win); i += 3 {
			triangle(dc, win[i], win[i+1], win[i+2])
		}
		fill(dc)
	case gputypes.PrimitiveTopologyTriangleStrip:
		for i := 0; i+2 < len(win); i++ {
			triangle(dc, win[i], win[i+1], win[i+2])
		}
		fill(dc)
	case gputypes.PrimitiveTopologyLineList:
		for i := 0; i+1 < len(win); i += 2 {
			dc.MoveTo(win[i].X, win[i].Y)
			dc.LineTo(win[i+1].X, win[i+1].Y)
		}
		stroke(dc)
	case gputypes.PrimitiveTopologyLineStrip:
		for i, p := range win {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
				continue
			}
			dc.LineTo(p.X, p.Y)
		}
		stroke(dc)
	case gputypes.PrimitiveTopologyPointList:
		for _, p := range win {
			x, y := int(math.Floor(p.X)), int(math.Floor(p.Y))
			if float64(x) >= vx && float64(x) < vx+vw && float64(y) >= float64(height)-vy-vh && float64(y) < float64(height)-vy {
				dc.SetPixel(x, y, col)
			}
		}
	}
}

// triangle appends a counter-clockwise triangle to the current path so the
// nonzero rule never cancels overlapping triangles of one draw.
func triangle(dc *gg.Context, a, b, p gg.Point) {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if cross == 0 {
		return
	}
	if cross < 0 {
		b, p = p, b
	}
	dc.MoveTo(a.X, a.Y)
	dc.LineTo(b.X, b.Y)
	dc.LineTo(p.X, p.Y)
	dc.ClosePath()
}

func fill(dc *gg.Context) {
	dc.SetFillRule(gg.FillRuleNonZero)
	if err := dc.Fill(); err != nil {
		logger().Warn("soft: fill failed", "err", err)
	}
}

func stroke(dc *gg.Context) {
	dc.SetLineWidth(1)
	if err := dc.Stroke(); err != nil {
		logger().Warn("soft: stroke failed", "err", err)
	}
}

func clamp01(v float32) float32 {
	return float32(clampf(float64(v)))
}

func clampf(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
