package graphics

// ScalarKind is the native element type of vertex attributes, index buffers
// and texture subpixels.
type ScalarKind uint32

const (
	Byte ScalarKind = iota
	UnsignedByte
	Short
	UnsignedShort
	Int
	UnsignedInt
	Float
	Double
)

// Size returns the byte width of one scalar of this kind.
func (k ScalarKind) Size() int {
	switch k {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	case Int, UnsignedInt, Float:
		return 4
	case Double:
		return 8
	}
	return 0
}

func (k ScalarKind) String() string {
	switch k {
	case Byte:
		return "byte"
	case UnsignedByte:
		return "ubyte"
	case Short:
		return "short"
	case UnsignedShort:
		return "ushort"
	case Int:
		return "int"
	case UnsignedInt:
		return "uint"
	case Float:
		return "float"
	case Double:
		return "double"
	}
	return "invalid"
}

// Usage is the buffer placement hint forwarded to the driver. It never
// affects correctness, only where the driver puts the allocation.
type Usage uint32

const (
	StreamDraw Usage = iota
	StaticDraw
	DynamicDraw
)

// MapAccess is the bitmask controlling buffer memory mapping.
type MapAccess uint32

const (
	MapRead MapAccess = 1 << iota
	MapWrite
	MapPersistent
	MapCoherent
)

// TexParam names a per-texture sampler parameter.
type TexParam uint32

const (
	ParamWrapS TexParam = iota
	ParamWrapT
	ParamWrapR
	ParamMinFilter
	ParamMagFilter
)

// DrawMode selects the primitive assembly of a draw call.
type DrawMode uint32

const (
	Points DrawMode = iota
	Lines
	LineLoop
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
)

// ClearMask selects which backing stores a clear touches.
type ClearMask uint32

const (
	ClearColorBit ClearMask = 1 << iota
	ClearDepthBit
	ClearStencilBit
)

// Capability is a toggleable per-context driver feature.
type Capability uint32

const (
	CapBlend Capability = iota
	CapDepthTest
	CapScissorTest
	CapDebugOutput
)

// UniformDesc describes one active uniform of a linked program.
type UniformDesc struct {
	Name       string
	Location   int32
	BlockIndex int32
	Kind       ScalarKind
	// Components per element: 1 for scalars, 2..4 for vectors, 4/9/16 for
	// matrices.
	Components int
}

// AttributeDesc describes one active vertex input of a linked program.
type AttributeDesc struct {
	Name       string
	Location   int32
	Kind       ScalarKind
	Components int
}

// Driver is the fixed set of native entry points this layer depends on. It
// is an explicit handle: resources keep the Driver they were created with
// and never reach for a global. Implementations are not safe for use from
// more than one goroutine; the whole layer assumes a single current context.
type Driver interface {
	// Buffers.
	CreateBuffer() uint32
	DeleteBuffer(name uint32)
	BindBuffer(kind BufferKind, name uint32)
	BoundBuffer(kind BufferKind) uint32
	BufferData(kind BufferKind, data []byte, usage Usage)
	// MapBufferRange exposes the given byte range of the bound buffer.
	// Writes through the returned slice must be visible to the driver once
	// UnmapBuffer is called.
	MapBufferRange(kind BufferKind, offset, length int, access MapAccess) []byte
	UnmapBuffer(kind BufferKind) bool
	BindBufferRange(kind BufferKind, index uint32, name uint32, offset, length int)
	UniformBufferOffsetAlignment() int

	// Textures.
	CreateTexture() uint32
	DeleteTexture(name uint32)
	BindTexture(target TextureTarget, name uint32)
	BoundTexture(target TextureTarget) uint32
	ActiveTexture(unit uint32)
	MaxCombinedTextureUnits() int
	TexImage2D(target TextureTarget, level int, format PixelFormat, width, height int, data []byte)
	TexImage2DMultisample(target TextureTarget, samples int, format PixelFormat, width, height int)
	TexImage3D(target TextureTarget, level int, format PixelFormat, width, height, depth int, data []byte)
	TexSubImage2D(target TextureTarget, level, x, y, width, height int, format PixelFormat, data []byte)
	GetTexImage(target TextureTarget, level int, format PixelFormat, dst []byte)
	ReadPixels(x, y, width, height int, format PixelFormat, dst []byte)
	GenerateMipmap(target TextureTarget)
	TexParameter(target TextureTarget, param TexParam, value int32)
	TexLevelSize(target TextureTarget, level int) (width, height int)

	// Shaders and programs.
	CreateShader(stage ShaderStage) uint32
	DeleteShader(name uint32)
	CompileShader(name uint32, sources []string) bool
	ShaderInfoLog(name uint32) string
	CreateProgram() uint32
	DeleteProgram(name uint32)
	AttachShader(program, shader uint32)
	LinkProgram(name uint32) bool
	ValidateProgram(name uint32) bool
	ProgramInfoLog(name uint32) string
	UseProgram(name uint32)
	CurrentProgram() uint32
	ActiveUniforms(program uint32) []UniformDesc
	ActiveAttributes(program uint32) []AttributeDesc
	UniformLocation(program uint32, name string) int32
	AttributeLocation(program uint32, name string) int32
	UniformBlockIndex(program uint32, name string) (uint32, bool)
	UniformBlockBinding(program uint32, blockIndex, binding uint32)
	UniformFloats(location int32, components int, v []float32)
	UniformDoubles(location int32, components int, v []float64)
	UniformInts(location int32, components int, v []int32)
	UniformUints(location int32, components int, v []uint32)
	UniformMatrix(location int32, dim int, v []float32)
	UniformMatrixDouble(location int32, dim int, v []float64)

	// Framebuffers.
	CreateFramebuffer() uint32
	DeleteFramebuffer(name uint32)
	BindFramebuffer(name uint32)
	BoundFramebuffer() uint32
	FramebufferTexture(attachment Attachment, texture uint32, level int)
	FramebufferTexture2D(attachment Attachment, target TextureTarget, texture uint32, level int)
	FramebufferTexture3D(attachment Attachment, texture uint32, level, layer int)
	DrawBuffers(attachments []Attachment)
	CheckFramebufferStatus() FramebufferStatus

	// Vertex arrays.
	CreateVertexArray() uint32
	DeleteVertexArray(name uint32)
	BindVertexArray(name uint32)
	BoundVertexArray() uint32
	VertexAttribPointer(index uint32, components int, kind ScalarKind, normalized bool, stride, offset int)
	EnableVertexAttrib(index uint32)
	DisableVertexAttrib(index uint32)

	// Draws and per-context pipeline state.
	DrawArrays(mode DrawMode, first, count int)
	DrawElements(mode DrawMode, count int, kind ScalarKind, offset int)
	Viewport(x, y, width, height int32)
	GetViewport() [4]int32
	ClearColor(r, g, b, a float32)
	ClearDepth(depth float64)
	Clear(mask ClearMask)
	SetCapability(cap Capability, enabled bool)
	BlendFunc(src, dst BlendFactor)
	BlendEquation(eq BlendEquation)
	DepthFunc(fn DepthFunction)
	Scissor(x, y, width, height int32)

	// Diagnostics. Error pops the driver's sticky error flag.
	Error() ErrorCode
	SetDebugCallback(fn func(DebugMessage)) bool
}
