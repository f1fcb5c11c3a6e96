package opengl

import (
	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/spaghettifunk/vitrail/engine/graphics"
)

// Translation tables between the portable enums and the native constants.
// Every closed tag on the portable side has exactly one entry here; a
// missing entry would surface as GL_INVALID_ENUM on the first use.

var bufferKinds = map[graphics.BufferKind]uint32{
	graphics.ArrayBuffer:             gl.ARRAY_BUFFER,
	graphics.ElementArrayBuffer:      gl.ELEMENT_ARRAY_BUFFER,
	graphics.UniformBuffer:           gl.UNIFORM_BUFFER,
	graphics.PixelPackBuffer:         gl.PIXEL_PACK_BUFFER,
	graphics.PixelUnpackBuffer:       gl.PIXEL_UNPACK_BUFFER,
	graphics.CopyReadBuffer:          gl.COPY_READ_BUFFER,
	graphics.CopyWriteBuffer:         gl.COPY_WRITE_BUFFER,
	graphics.ShaderStorageBuffer:     gl.SHADER_STORAGE_BUFFER,
	graphics.TextureBuffer:           gl.TEXTURE_BUFFER,
	graphics.TransformFeedbackBuffer: gl.TRANSFORM_FEEDBACK_BUFFER,
	graphics.DrawIndirectBuffer:      gl.DRAW_INDIRECT_BUFFER,
	graphics.DispatchIndirectBuffer:  gl.DISPATCH_INDIRECT_BUFFER,
	graphics.AtomicCounterBuffer:     gl.ATOMIC_COUNTER_BUFFER,
	graphics.QueryBuffer:             gl.QUERY_BUFFER,
}

var bufferBindings = map[graphics.BufferKind]uint32{
	graphics.ArrayBuffer:             gl.ARRAY_BUFFER_BINDING,
	graphics.ElementArrayBuffer:      gl.ELEMENT_ARRAY_BUFFER_BINDING,
	graphics.UniformBuffer:           gl.UNIFORM_BUFFER_BINDING,
	graphics.PixelPackBuffer:         gl.PIXEL_PACK_BUFFER_BINDING,
	graphics.PixelUnpackBuffer:       gl.PIXEL_UNPACK_BUFFER_BINDING,
	graphics.CopyReadBuffer:          gl.COPY_READ_BUFFER_BINDING,
	graphics.CopyWriteBuffer:         gl.COPY_WRITE_BUFFER_BINDING,
	graphics.ShaderStorageBuffer:     gl.SHADER_STORAGE_BUFFER_BINDING,
	graphics.TextureBuffer:           gl.TEXTURE_BUFFER_BINDING,
	graphics.TransformFeedbackBuffer: gl.TRANSFORM_FEEDBACK_BUFFER_BINDING,
	graphics.DrawIndirectBuffer:      gl.DRAW_INDIRECT_BUFFER_BINDING,
	graphics.DispatchIndirectBuffer:  gl.DISPATCH_INDIRECT_BUFFER_BINDING,
	graphics.AtomicCounterBuffer:     gl.ATOMIC_COUNTER_BUFFER_BINDING,
	graphics.QueryBuffer:             gl.QUERY_BUFFER_BINDING,
}

var usages = map[graphics.Usage]uint32{
	graphics.StreamDraw:  gl.STREAM_DRAW,
	graphics.StaticDraw:  gl.STATIC_DRAW,
	graphics.DynamicDraw: gl.DYNAMIC_DRAW,
}

func mapAccessBits(access graphics.MapAccess) uint32 {
	var bits uint32
	if access&graphics.MapRead != 0 {
		bits |= gl.MAP_READ_BIT
	}
	if access&graphics.MapWrite != 0 {
		bits |= gl.MAP_WRITE_BIT
	}
	if access&graphics.MapPersistent != 0 {
		bits |= gl.MAP_PERSISTENT_BIT
	}
	if access&graphics.MapCoherent != 0 {
		bits |= gl.MAP_COHERENT_BIT
	}
	return bits
}

type texTargetEnums struct {
	target  uint32
	binding uint32
}

var texTargets = map[graphics.TextureTarget]texTargetEnums{
	{Dim: graphics.D1, Samples: 1}:      {gl.TEXTURE_1D, gl.TEXTURE_BINDING_1D},
	{Dim: graphics.D1Array, Samples: 1}: {gl.TEXTURE_1D_ARRAY, gl.TEXTURE_BINDING_1D_ARRAY},
	{Dim: graphics.D2, Samples: 1}:      {gl.TEXTURE_2D, gl.TEXTURE_BINDING_2D},
	{Dim: graphics.D2Array, Samples: 1}: {gl.TEXTURE_2D_ARRAY, gl.TEXTURE_BINDING_2D_ARRAY},
	{Dim: graphics.D3, Samples: 1}:      {gl.TEXTURE_3D, gl.TEXTURE_BINDING_3D},
}

// texTarget resolves multisample targets too: any sample count above one
// lands on the multisample binding points.
func texTarget(t graphics.TextureTarget) texTargetEnums {
	if t.Multisample() {
		if t.Dim == graphics.D2Array {
			return texTargetEnums{gl.TEXTURE_2D_MULTISAMPLE_ARRAY, gl.TEXTURE_BINDING_2D_MULTISAMPLE_ARRAY}
		}
		return texTargetEnums{gl.TEXTURE_2D_MULTISAMPLE, gl.TEXTURE_BINDING_2D_MULTISAMPLE}
	}
	return texTargets[graphics.TextureTarget{Dim: t.Dim, Samples: 1}]
}

type pixelFormatEnums struct {
	internal uint32
	format   uint32
	xtype    uint32
}

var pixelFormats = map[graphics.PixelFormat]pixelFormatEnums{
	graphics.R8:               {gl.R8, gl.RED, gl.UNSIGNED_BYTE},
	graphics.R8I:              {gl.R8I, gl.RED_INTEGER, gl.BYTE},
	graphics.R16:              {gl.R16, gl.RED, gl.UNSIGNED_SHORT},
	graphics.R16I:             {gl.R16I, gl.RED_INTEGER, gl.SHORT},
	graphics.R16UI:            {gl.R16UI, gl.RED_INTEGER, gl.UNSIGNED_SHORT},
	graphics.R32I:             {gl.R32I, gl.RED_INTEGER, gl.INT},
	graphics.R32UI:            {gl.R32UI, gl.RED_INTEGER, gl.UNSIGNED_INT},
	graphics.R32F:             {gl.R32F, gl.RED, gl.FLOAT},
	graphics.RG8:              {gl.RG8, gl.RG, gl.UNSIGNED_BYTE},
	graphics.RG32F:            {gl.RG32F, gl.RG, gl.FLOAT},
	graphics.RGB8:             {gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE},
	graphics.RGB32F:           {gl.RGB32F, gl.RGB, gl.FLOAT},
	graphics.RGBA8:            {gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE},
	graphics.RGBA8I:           {gl.RGBA8I, gl.RGBA_INTEGER, gl.BYTE},
	graphics.RGBA16:           {gl.RGBA16, gl.RGBA, gl.UNSIGNED_SHORT},
	graphics.RGBA32F:          {gl.RGBA32F, gl.RGBA, gl.FLOAT},
	graphics.Depth32F:         {gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT},
	graphics.Depth24Stencil8:  {gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8},
	graphics.Depth32FStencil8: {gl.DEPTH32F_STENCIL8, gl.DEPTH_STENCIL, gl.FLOAT_32_UNSIGNED_INT_24_8_REV},
}

var texParams = map[graphics.TexParam]uint32{
	graphics.ParamWrapS:     gl.TEXTURE_WRAP_S,
	graphics.ParamWrapT:     gl.TEXTURE_WRAP_T,
	graphics.ParamWrapR:     gl.TEXTURE_WRAP_R,
	graphics.ParamMinFilter: gl.TEXTURE_MIN_FILTER,
	graphics.ParamMagFilter: gl.TEXTURE_MAG_FILTER,
}

var texWraps = map[graphics.TextureWrap]int32{
	graphics.Repeat:         gl.REPEAT,
	graphics.MirroredRepeat: gl.MIRRORED_REPEAT,
	graphics.ClampToEdge:    gl.CLAMP_TO_EDGE,
	graphics.ClampToBorder:  gl.CLAMP_TO_BORDER,
}

var texFilters = map[graphics.TextureFilter]int32{
	graphics.FilterNearest:              gl.NEAREST,
	graphics.FilterLinear:               gl.LINEAR,
	graphics.FilterNearestMipmapNearest: gl.NEAREST_MIPMAP_NEAREST,
	graphics.FilterNearestMipmapLinear:  gl.NEAREST_MIPMAP_LINEAR,
	graphics.FilterLinearMipmapNearest:  gl.LINEAR_MIPMAP_NEAREST,
	graphics.FilterLinearMipmapLinear:   gl.LINEAR_MIPMAP_LINEAR,
}

// texParamValue translates the parameter value, whose portable type depends
// on which parameter is being set.
func texParamValue(param graphics.TexParam, value int32) int32 {
	switch param {
	case graphics.ParamWrapS, graphics.ParamWrapT, graphics.ParamWrapR:
		return texWraps[graphics.TextureWrap(value)]
	case graphics.ParamMinFilter, graphics.ParamMagFilter:
		return texFilters[graphics.TextureFilter(value)]
	}
	return value
}

var scalarKinds = map[graphics.ScalarKind]uint32{
	graphics.Byte:          gl.BYTE,
	graphics.UnsignedByte:  gl.UNSIGNED_BYTE,
	graphics.Short:         gl.SHORT,
	graphics.UnsignedShort: gl.UNSIGNED_SHORT,
	graphics.Int:           gl.INT,
	graphics.UnsignedInt:   gl.UNSIGNED_INT,
	graphics.Float:         gl.FLOAT,
	graphics.Double:        gl.DOUBLE,
}

var shaderStages = map[graphics.ShaderStage]uint32{
	graphics.VertexShader:         gl.VERTEX_SHADER,
	graphics.FragmentShader:       gl.FRAGMENT_SHADER,
	graphics.GeometryShader:       gl.GEOMETRY_SHADER,
	graphics.TessControlShader:    gl.TESS_CONTROL_SHADER,
	graphics.TessEvaluationShader: gl.TESS_EVALUATION_SHADER,
	graphics.ComputeShader:        gl.COMPUTE_SHADER,
}

var drawModes = map[graphics.DrawMode]uint32{
	graphics.Points:        gl.POINTS,
	graphics.Lines:         gl.LINES,
	graphics.LineLoop:      gl.LINE_LOOP,
	graphics.LineStrip:     gl.LINE_STRIP,
	graphics.Triangles:     gl.TRIANGLES,
	graphics.TriangleStrip: gl.TRIANGLE_STRIP,
	graphics.TriangleFan:   gl.TRIANGLE_FAN,
}

func clearMaskBits(mask graphics.ClearMask) uint32 {
	var bits uint32
	if mask&graphics.ClearColorBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&graphics.ClearDepthBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&graphics.ClearStencilBit != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	return bits
}

var capabilities = map[graphics.Capability]uint32{
	graphics.CapBlend:       gl.BLEND,
	graphics.CapDepthTest:   gl.DEPTH_TEST,
	graphics.CapScissorTest: gl.SCISSOR_TEST,
	graphics.CapDebugOutput: gl.DEBUG_OUTPUT,
}

func attachmentEnum(a graphics.Attachment) uint32 {
	switch {
	case a.IsColor():
		return gl.COLOR_ATTACHMENT0 + a.ColorIndex()
	case a == graphics.DepthAttachment:
		return gl.DEPTH_ATTACHMENT
	case a == graphics.StencilAttachment:
		return gl.STENCIL_ATTACHMENT
	default:
		return gl.DEPTH_STENCIL_ATTACHMENT
	}
}

var framebufferStatuses = map[uint32]graphics.FramebufferStatus{
	gl.FRAMEBUFFER_COMPLETE:                      graphics.FramebufferComplete,
	gl.FRAMEBUFFER_UNDEFINED:                     graphics.FramebufferUndefined,
	gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:         graphics.FramebufferIncompleteAttachment,
	gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT: graphics.FramebufferIncompleteMissingAttachment,
	gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:        graphics.FramebufferIncompleteDrawBuffer,
	gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:        graphics.FramebufferIncompleteReadBuffer,
	gl.FRAMEBUFFER_UNSUPPORTED:                   graphics.FramebufferUnsupported,
	gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:        graphics.FramebufferIncompleteMultisample,
	gl.FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:      graphics.FramebufferIncompleteLayerTargets,
}

var blendFactors = map[graphics.BlendFactor]uint32{
	graphics.BlendZero:             gl.ZERO,
	graphics.BlendOne:              gl.ONE,
	graphics.BlendSrcColor:         gl.SRC_COLOR,
	graphics.BlendOneMinusSrcColor: gl.ONE_MINUS_SRC_COLOR,
	graphics.BlendDstColor:         gl.DST_COLOR,
	graphics.BlendOneMinusDstColor: gl.ONE_MINUS_DST_COLOR,
	graphics.BlendSrcAlpha:         gl.SRC_ALPHA,
	graphics.BlendOneMinusSrcAlpha: gl.ONE_MINUS_SRC_ALPHA,
	graphics.BlendDstAlpha:         gl.DST_ALPHA,
	graphics.BlendOneMinusDstAlpha: gl.ONE_MINUS_DST_ALPHA,
}

var blendEquations = map[graphics.BlendEquation]uint32{
	graphics.BlendAdd:             gl.FUNC_ADD,
	graphics.BlendSubtract:        gl.FUNC_SUBTRACT,
	graphics.BlendReverseSubtract: gl.FUNC_REVERSE_SUBTRACT,
	graphics.BlendMin:             gl.MIN,
	graphics.BlendMax:             gl.MAX,
}

var depthFunctions = map[graphics.DepthFunction]uint32{
	graphics.DepthNever:          gl.NEVER,
	graphics.DepthLess:           gl.LESS,
	graphics.DepthEqual:          gl.EQUAL,
	graphics.DepthLessOrEqual:    gl.LEQUAL,
	graphics.DepthGreater:        gl.GREATER,
	graphics.DepthNotEqual:       gl.NOTEQUAL,
	graphics.DepthGreaterOrEqual: gl.GEQUAL,
	graphics.DepthAlways:         gl.ALWAYS,
}

var errorCodes = map[uint32]graphics.ErrorCode{
	gl.NO_ERROR:                      graphics.NoError,
	gl.INVALID_ENUM:                  graphics.InvalidEnum,
	gl.INVALID_VALUE:                 graphics.InvalidValue,
	gl.INVALID_OPERATION:             graphics.InvalidOperation,
	gl.STACK_OVERFLOW:                graphics.StackOverflow,
	gl.STACK_UNDERFLOW:               graphics.StackUnderflow,
	gl.OUT_OF_MEMORY:                 graphics.OutOfMemory,
	gl.INVALID_FRAMEBUFFER_OPERATION: graphics.InvalidFramebufferOperation,
	gl.CONTEXT_LOST:                  graphics.ContextLost,
}

var debugSources = map[uint32]string{
	gl.DEBUG_SOURCE_API:             "api",
	gl.DEBUG_SOURCE_WINDOW_SYSTEM:   "window system",
	gl.DEBUG_SOURCE_SHADER_COMPILER: "shader compiler",
	gl.DEBUG_SOURCE_THIRD_PARTY:     "third party",
	gl.DEBUG_SOURCE_APPLICATION:     "application",
	gl.DEBUG_SOURCE_OTHER:           "other",
}

var debugTypes = map[uint32]string{
	gl.DEBUG_TYPE_ERROR:               "error",
	gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR: "deprecated behavior",
	gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:  "undefined behavior",
	gl.DEBUG_TYPE_PORTABILITY:         "portability",
	gl.DEBUG_TYPE_PERFORMANCE:         "performance",
	gl.DEBUG_TYPE_MARKER:              "marker",
	gl.DEBUG_TYPE_OTHER:               "other",
}

var debugSeverities = map[uint32]graphics.DebugSeverity{
	gl.DEBUG_SEVERITY_NOTIFICATION: graphics.SeverityNotification,
	gl.DEBUG_SEVERITY_LOW:          graphics.SeverityLow,
	gl.DEBUG_SEVERITY_MEDIUM:       graphics.SeverityMedium,
	gl.DEBUG_SEVERITY_HIGH:         graphics.SeverityHigh,
}

// uniformShape resolves an active-uniform type enum into the portable
// scalar kind and component count. Samplers and images act as int scalars.
func uniformShape(xtype uint32) (graphics.ScalarKind, int) {
	switch xtype {
	case gl.FLOAT:
		return graphics.Float, 1
	case gl.FLOAT_VEC2:
		return graphics.Float, 2
	case gl.FLOAT_VEC3:
		return graphics.Float, 3
	case gl.FLOAT_VEC4:
		return graphics.Float, 4
	case gl.FLOAT_MAT2:
		return graphics.Float, 4
	case gl.FLOAT_MAT3:
		return graphics.Float, 9
	case gl.FLOAT_MAT4:
		return graphics.Float, 16
	case gl.DOUBLE:
		return graphics.Double, 1
	case gl.DOUBLE_VEC2:
		return graphics.Double, 2
	case gl.DOUBLE_VEC3:
		return graphics.Double, 3
	case gl.DOUBLE_VEC4:
		return graphics.Double, 4
	case gl.DOUBLE_MAT4:
		return graphics.Double, 16
	case gl.INT_VEC2:
		return graphics.Int, 2
	case gl.INT_VEC3:
		return graphics.Int, 3
	case gl.INT_VEC4:
		return graphics.Int, 4
	case gl.UNSIGNED_INT:
		return graphics.UnsignedInt, 1
	case gl.UNSIGNED_INT_VEC2:
		return graphics.UnsignedInt, 2
	case gl.UNSIGNED_INT_VEC3:
		return graphics.UnsignedInt, 3
	case gl.UNSIGNED_INT_VEC4:
		return graphics.UnsignedInt, 4
	case gl.BOOL:
		return graphics.Int, 1
	default:
		// INT plus every sampler and image type.
		return graphics.Int, 1
	}
}
