// Package gltest is an in-memory driver. It keeps the full object and
// binding state machine of a real context (names, bindings, buffer
// contents, texture levels, program introspection, framebuffer
// completeness) without touching a GPU, so the resource layer can be
// exercised in plain unit tests. Draw calls are validated and counted,
// not rasterized.
package gltest

import (
	"github.com/spaghettifunk/vitrail/engine/graphics"
)

const (
	uniformAlignment = 256
	textureUnits     = 32
)

func init() {
	graphics.Register("gltest", func() (graphics.Driver, error) {
		return New(), nil
	})
}

type bufferObject struct {
	data   []byte
	usage  graphics.Usage
	mapped bool
}

// Driver is the in-memory state machine. Like a native context it is not
// safe for concurrent use.
type Driver struct {
	bufferNames      nameAllocator
	textureNames     nameAllocator
	shaderNames      nameAllocator
	programNames     nameAllocator
	framebufferNames nameAllocator
	vertexArrayNames nameAllocator

	buffers      map[uint32]*bufferObject
	boundBuffers map[graphics.BufferKind]uint32

	textures      map[uint32]*textureObject
	boundTextures map[graphics.TextureTarget]uint32
	activeUnit    uint32

	shaders        map[uint32]*shaderObject
	programs       map[uint32]*programObject
	currentProgram uint32

	framebuffers     map[uint32]*framebufferObject
	boundFramebuffer uint32

	vertexArrays     map[uint32]*vertexArrayObject
	boundVertexArray uint32
	// Element binding used while no vertex array is bound.
	looseElementBuffer uint32

	viewport   [4]int32
	clearColor [4]float32
	clearDepth float64
	caps       map[graphics.Capability]bool
	blendSrc   graphics.BlendFactor
	blendDst   graphics.BlendFactor
	blendEq    graphics.BlendEquation
	depthFn    graphics.DepthFunction
	scissor    [4]int32

	lastError   graphics.ErrorCode
	contextLost bool
	corruptNext bool
	debugFn     func(graphics.DebugMessage)

	drawCalls int
}

// New creates a fresh context with nothing bound and no objects.
func New() *Driver {
	return &Driver{
		buffers:       make(map[uint32]*bufferObject),
		boundBuffers:  make(map[graphics.BufferKind]uint32),
		textures:      make(map[uint32]*textureObject),
		boundTextures: make(map[graphics.TextureTarget]uint32),
		shaders:       make(map[uint32]*shaderObject),
		programs:      make(map[uint32]*programObject),
		framebuffers:  make(map[uint32]*framebufferObject),
		vertexArrays:  make(map[uint32]*vertexArrayObject),
		caps:          make(map[graphics.Capability]bool),
		clearDepth:    1,
		depthFn:       graphics.DepthLess,
		viewport:      [4]int32{0, 0, 640, 480},
	}
}

// setError records a code in the sticky flag, keeping the first one the way
// native contexts do.
func (d *Driver) setError(code graphics.ErrorCode) {
	if d.lastError == graphics.NoError {
		d.lastError = code
	}
}

// Error pops the sticky flag. A lost context reports ContextLost forever.
func (d *Driver) Error() graphics.ErrorCode {
	if d.contextLost {
		return graphics.ContextLost
	}
	code := d.lastError
	d.lastError = graphics.NoError
	return code
}

func (d *Driver) SetDebugCallback(fn func(graphics.DebugMessage)) bool {
	d.debugFn = fn
	return true
}

// Buffers.

func (d *Driver) CreateBuffer() uint32 {
	name := d.bufferNames.acquire()
	d.buffers[name] = &bufferObject{}
	return name
}

func (d *Driver) DeleteBuffer(name uint32) {
	if !d.bufferNames.inUse(name) {
		return
	}
	d.bufferNames.release(name)
	delete(d.buffers, name)
	// Deleting unbinds from every target it was bound to.
	for kind, bound := range d.boundBuffers {
		if bound == name {
			d.boundBuffers[kind] = 0
		}
	}
}

func (d *Driver) BindBuffer(kind graphics.BufferKind, name uint32) {
	if name != 0 && !d.bufferNames.inUse(name) {
		d.setError(graphics.InvalidOperation)
		return
	}
	if kind == graphics.ElementArrayBuffer && d.boundVertexArray != 0 {
		d.vertexArrays[d.boundVertexArray].elementBuffer = name
		return
	}
	if kind == graphics.ElementArrayBuffer {
		d.looseElementBuffer = name
		return
	}
	d.boundBuffers[kind] = name
}

func (d *Driver) BoundBuffer(kind graphics.BufferKind) uint32 {
	if kind == graphics.ElementArrayBuffer {
		if d.boundVertexArray != 0 {
			return d.vertexArrays[d.boundVertexArray].elementBuffer
		}
		return d.looseElementBuffer
	}
	return d.boundBuffers[kind]
}

func (d *Driver) targetBuffer(kind graphics.BufferKind) *bufferObject {
	name := d.BoundBuffer(kind)
	if name == 0 {
		d.setError(graphics.InvalidOperation)
		return nil
	}
	return d.buffers[name]
}

func (d *Driver) BufferData(kind graphics.BufferKind, data []byte, usage graphics.Usage) {
	b := d.targetBuffer(kind)
	if b == nil {
		return
	}
	b.data = make([]byte, len(data))
	copy(b.data, data)
	b.usage = usage
}

func (d *Driver) MapBufferRange(kind graphics.BufferKind, offset, length int, access graphics.MapAccess) []byte {
	b := d.targetBuffer(kind)
	if b == nil {
		return nil
	}
	if b.mapped || offset < 0 || length < 0 || offset+length > len(b.data) {
		d.setError(graphics.InvalidOperation)
		return nil
	}
	b.mapped = true
	return b.data[offset : offset+length]
}

func (d *Driver) UnmapBuffer(kind graphics.BufferKind) bool {
	b := d.targetBuffer(kind)
	if b == nil || !b.mapped {
		d.setError(graphics.InvalidOperation)
		return false
	}
	b.mapped = false
	if d.corruptNext {
		d.corruptNext = false
		return false
	}
	return true
}

func (d *Driver) BindBufferRange(kind graphics.BufferKind, index uint32, name uint32, offset, length int) {
	if !d.bufferNames.inUse(name) {
		d.setError(graphics.InvalidOperation)
		return
	}
	if offset%uniformAlignment != 0 {
		d.setError(graphics.InvalidValue)
	}
}

func (d *Driver) UniformBufferOffsetAlignment() int { return uniformAlignment }

// Pipeline state.

func (d *Driver) Viewport(x, y, width, height int32) {
	if width < 0 || height < 0 {
		d.setError(graphics.InvalidValue)
		return
	}
	d.viewport = [4]int32{x, y, width, height}
}

func (d *Driver) GetViewport() [4]int32 { return d.viewport }

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.clearColor = [4]float32{r, g, b, a}
}

func (d *Driver) ClearDepth(depth float64) { d.clearDepth = depth }

func (d *Driver) SetCapability(cap graphics.Capability, enabled bool) {
	d.caps[cap] = enabled
}

func (d *Driver) BlendFunc(src, dst graphics.BlendFactor) {
	d.blendSrc, d.blendDst = src, dst
}

func (d *Driver) BlendEquation(eq graphics.BlendEquation) { d.blendEq = eq }

func (d *Driver) DepthFunc(fn graphics.DepthFunction) { d.depthFn = fn }

func (d *Driver) Scissor(x, y, width, height int32) {
	if width < 0 || height < 0 {
		d.setError(graphics.InvalidValue)
		return
	}
	d.scissor = [4]int32{x, y, width, height}
}

// Test hooks. These have no native counterpart; tests use them to reach
// states that are awkward to produce through the public API.

// InjectError primes the sticky error flag as if a native call had failed.
func (d *Driver) InjectError(code graphics.ErrorCode) { d.setError(code) }

// LoseContext makes every later Error call report ContextLost.
func (d *Driver) LoseContext() { d.contextLost = true }

// CorruptNextUnmap makes the next unmap of a mapped buffer report a lost
// data store, the way a native context does after a screen mode change.
func (d *Driver) CorruptNextUnmap() { d.corruptNext = true }

// Emit pushes a message through the installed debug callback.
func (d *Driver) Emit(msg graphics.DebugMessage) {
	if d.debugFn != nil {
		d.debugFn(msg)
	}
}

// DrawCalls is the number of draws issued so far.
func (d *Driver) DrawCalls() int { return d.drawCalls }

// LiveObjects counts all undeleted objects across every class.
func (d *Driver) LiveObjects() int {
	return d.bufferNames.count() + d.textureNames.count() +
		d.shaderNames.count() + d.programNames.count() +
		d.framebufferNames.count() + d.vertexArrayNames.count()
}

// IsEnabled reports a capability's current state.
func (d *Driver) IsEnabled(cap graphics.Capability) bool { return d.caps[cap] }

// BlendState returns the current blend factors and equation.
func (d *Driver) BlendState() (graphics.BlendFactor, graphics.BlendFactor, graphics.BlendEquation) {
	return d.blendSrc, d.blendDst, d.blendEq
}

// DepthState returns the current depth predicate.
func (d *Driver) DepthState() graphics.DepthFunction { return d.depthFn }

// ClearState returns the current clear color and depth.
func (d *Driver) ClearState() ([4]float32, float64) { return d.clearColor, d.clearDepth }

// BufferContents returns a copy of a buffer's backing store.
func (d *Driver) BufferContents(name uint32) []byte {
	b, ok := d.buffers[name]
	if !ok {
		return nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}
