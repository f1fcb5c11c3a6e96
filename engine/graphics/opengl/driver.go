// Package opengl backs the graphics layer with a real OpenGL 4.6 core
// context. A context must be current on the calling thread before New runs;
// the platform layer takes care of that.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/spaghettifunk/vitrail/engine/graphics"
)

func init() {
	graphics.Register("opengl", func() (graphics.Driver, error) {
		return New()
	})
}

// Driver issues native calls on the context that was current when it was
// created. It carries no state of its own beyond two startup-time limits.
type Driver struct {
	uniformAlignment int
	maxTextureUnits  int
	debugFn          func(graphics.DebugMessage)
}

// New loads the function pointers of the current context.
func New() (*Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: load function pointers: %w", err)
	}
	var alignment, units int32
	gl.GetIntegerv(gl.UNIFORM_BUFFER_OFFSET_ALIGNMENT, &alignment)
	gl.GetIntegerv(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS, &units)
	return &Driver{
		uniformAlignment: int(alignment),
		maxTextureUnits:  int(units),
	}, nil
}

// Version returns the context's version string.
func (d *Driver) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func dataPtr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

func (d *Driver) CreateBuffer() uint32 {
	var name uint32
	gl.GenBuffers(1, &name)
	return name
}

func (d *Driver) DeleteBuffer(name uint32) {
	gl.DeleteBuffers(1, &name)
}

func (d *Driver) BindBuffer(kind graphics.BufferKind, name uint32) {
	gl.BindBuffer(bufferKinds[kind], name)
}

func (d *Driver) BoundBuffer(kind graphics.BufferKind) uint32 {
	var name int32
	gl.GetIntegerv(bufferBindings[kind], &name)
	return uint32(name)
}

func (d *Driver) BufferData(kind graphics.BufferKind, data []byte, usage graphics.Usage) {
	gl.BufferData(bufferKinds[kind], len(data), dataPtr(data), usages[usage])
}

func (d *Driver) MapBufferRange(kind graphics.BufferKind, offset, length int, access graphics.MapAccess) []byte {
	ptr := gl.MapBufferRange(bufferKinds[kind], offset, length, mapAccessBits(access))
	if ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(ptr), length)
}

func (d *Driver) UnmapBuffer(kind graphics.BufferKind) bool {
	return gl.UnmapBuffer(bufferKinds[kind])
}

func (d *Driver) BindBufferRange(kind graphics.BufferKind, index uint32, name uint32, offset, length int) {
	gl.BindBufferRange(bufferKinds[kind], index, name, offset, length)
}

func (d *Driver) UniformBufferOffsetAlignment() int { return d.uniformAlignment }

func (d *Driver) CreateTexture() uint32 {
	var name uint32
	gl.GenTextures(1, &name)
	return name
}

func (d *Driver) DeleteTexture(name uint32) {
	gl.DeleteTextures(1, &name)
}

func (d *Driver) BindTexture(target graphics.TextureTarget, name uint32) {
	gl.BindTexture(texTarget(target).target, name)
}

func (d *Driver) BoundTexture(target graphics.TextureTarget) uint32 {
	var name int32
	gl.GetIntegerv(texTarget(target).binding, &name)
	return uint32(name)
}

func (d *Driver) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (d *Driver) MaxCombinedTextureUnits() int { return d.maxTextureUnits }

func (d *Driver) TexImage2D(target graphics.TextureTarget, level int, format graphics.PixelFormat, width, height int, data []byte) {
	pf := pixelFormats[format]
	gl.TexImage2D(texTarget(target).target, int32(level), int32(pf.internal),
		int32(width), int32(height), 0, pf.format, pf.xtype, dataPtr(data))
}

func (d *Driver) TexImage2DMultisample(target graphics.TextureTarget, samples int, format graphics.PixelFormat, width, height int) {
	pf := pixelFormats[format]
	gl.TexImage2DMultisample(texTarget(target).target, int32(samples), pf.internal,
		int32(width), int32(height), true)
}

func (d *Driver) TexImage3D(target graphics.TextureTarget, level int, format graphics.PixelFormat, width, height, depth int, data []byte) {
	pf := pixelFormats[format]
	gl.TexImage3D(texTarget(target).target, int32(level), int32(pf.internal),
		int32(width), int32(height), int32(depth), 0, pf.format, pf.xtype, dataPtr(data))
}

func (d *Driver) TexSubImage2D(target graphics.TextureTarget, level, x, y, width, height int, format graphics.PixelFormat, data []byte) {
	pf := pixelFormats[format]
	gl.TexSubImage2D(texTarget(target).target, int32(level), int32(x), int32(y),
		int32(width), int32(height), pf.format, pf.xtype, dataPtr(data))
}

func (d *Driver) GetTexImage(target graphics.TextureTarget, level int, format graphics.PixelFormat, dst []byte) {
	pf := pixelFormats[format]
	gl.GetTexImage(texTarget(target).target, int32(level), pf.format, pf.xtype, dataPtr(dst))
}

func (d *Driver) ReadPixels(x, y, width, height int, format graphics.PixelFormat, dst []byte) {
	pf := pixelFormats[format]
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), pf.format, pf.xtype, dataPtr(dst))
}

func (d *Driver) GenerateMipmap(target graphics.TextureTarget) {
	gl.GenerateMipmap(texTarget(target).target)
}

func (d *Driver) TexParameter(target graphics.TextureTarget, param graphics.TexParam, value int32) {
	gl.TexParameteri(texTarget(target).target, texParams[param], texParamValue(param, value))
}

func (d *Driver) TexLevelSize(target graphics.TextureTarget, level int) (int, int) {
	var width, height int32
	native := texTarget(target).target
	gl.GetTexLevelParameteriv(native, int32(level), gl.TEXTURE_WIDTH, &width)
	gl.GetTexLevelParameteriv(native, int32(level), gl.TEXTURE_HEIGHT, &height)
	return int(width), int(height)
}

func (d *Driver) CreateShader(stage graphics.ShaderStage) uint32 {
	return gl.CreateShader(shaderStages[stage])
}

func (d *Driver) DeleteShader(name uint32) {
	gl.DeleteShader(name)
}

func (d *Driver) CompileShader(name uint32, sources []string) bool {
	terminated := make([]string, len(sources))
	for i, s := range sources {
		terminated[i] = s + "\x00"
	}
	cstrs, free := gl.Strs(terminated...)
	gl.ShaderSource(name, int32(len(terminated)), cstrs, nil)
	free()
	gl.CompileShader(name)
	var status int32
	gl.GetShaderiv(name, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (d *Driver) ShaderInfoLog(name uint32) string {
	var length int32
	gl.GetShaderiv(name, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length)+1)
	gl.GetShaderInfoLog(name, length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Driver) DeleteProgram(name uint32) {
	gl.DeleteProgram(name)
}

func (d *Driver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Driver) LinkProgram(name uint32) bool {
	gl.LinkProgram(name)
	var status int32
	gl.GetProgramiv(name, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (d *Driver) ValidateProgram(name uint32) bool {
	gl.ValidateProgram(name)
	var status int32
	gl.GetProgramiv(name, gl.VALIDATE_STATUS, &status)
	return status == gl.TRUE
}

func (d *Driver) ProgramInfoLog(name uint32) string {
	var length int32
	gl.GetProgramiv(name, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length)+1)
	gl.GetProgramInfoLog(name, length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *Driver) UseProgram(name uint32) {
	gl.UseProgram(name)
}

func (d *Driver) CurrentProgram() uint32 {
	var name int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &name)
	return uint32(name)
}

func (d *Driver) ActiveUniforms(program uint32) []graphics.UniformDesc {
	var count int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	uniforms := make([]graphics.UniformDesc, 0, count)
	nameBuf := make([]byte, 256)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(program, uint32(i), int32(len(nameBuf)), &length, &size, &xtype, &nameBuf[0])
		name := string(nameBuf[:length])
		var blockIndex int32
		index := uint32(i)
		gl.GetActiveUniformsiv(program, 1, &index, gl.UNIFORM_BLOCK_INDEX, &blockIndex)
		kind, components := uniformShape(xtype)
		uniforms = append(uniforms, graphics.UniformDesc{
			Name:       name,
			Location:   gl.GetUniformLocation(program, gl.Str(name+"\x00")),
			BlockIndex: blockIndex,
			Kind:       kind,
			Components: components,
		})
	}
	return uniforms
}

func (d *Driver) ActiveAttributes(program uint32) []graphics.AttributeDesc {
	var count int32
	gl.GetProgramiv(program, gl.ACTIVE_ATTRIBUTES, &count)
	attributes := make([]graphics.AttributeDesc, 0, count)
	nameBuf := make([]byte, 256)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveAttrib(program, uint32(i), int32(len(nameBuf)), &length, &size, &xtype, &nameBuf[0])
		name := string(nameBuf[:length])
		kind, components := uniformShape(xtype)
		attributes = append(attributes, graphics.AttributeDesc{
			Name:       name,
			Location:   gl.GetAttribLocation(program, gl.Str(name+"\x00")),
			Kind:       kind,
			Components: components,
		})
	}
	return attributes
}

func (d *Driver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Driver) AttributeLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *Driver) UniformBlockIndex(program uint32, name string) (uint32, bool) {
	index := gl.GetUniformBlockIndex(program, gl.Str(name+"\x00"))
	return index, index != gl.INVALID_INDEX
}

func (d *Driver) UniformBlockBinding(program uint32, blockIndex, binding uint32) {
	gl.UniformBlockBinding(program, blockIndex, binding)
}

func (d *Driver) UniformFloats(location int32, components int, v []float32) {
	count := int32(len(v) / components)
	switch components {
	case 1:
		gl.Uniform1fv(location, count, &v[0])
	case 2:
		gl.Uniform2fv(location, count, &v[0])
	case 3:
		gl.Uniform3fv(location, count, &v[0])
	case 4:
		gl.Uniform4fv(location, count, &v[0])
	}
}

func (d *Driver) UniformDoubles(location int32, components int, v []float64) {
	count := int32(len(v) / components)
	switch components {
	case 1:
		gl.Uniform1dv(location, count, &v[0])
	case 2:
		gl.Uniform2dv(location, count, &v[0])
	case 3:
		gl.Uniform3dv(location, count, &v[0])
	case 4:
		gl.Uniform4dv(location, count, &v[0])
	}
}

func (d *Driver) UniformInts(location int32, components int, v []int32) {
	count := int32(len(v) / components)
	switch components {
	case 1:
		gl.Uniform1iv(location, count, &v[0])
	case 2:
		gl.Uniform2iv(location, count, &v[0])
	case 3:
		gl.Uniform3iv(location, count, &v[0])
	case 4:
		gl.Uniform4iv(location, count, &v[0])
	}
}

func (d *Driver) UniformUints(location int32, components int, v []uint32) {
	count := int32(len(v) / components)
	switch components {
	case 1:
		gl.Uniform1uiv(location, count, &v[0])
	case 2:
		gl.Uniform2uiv(location, count, &v[0])
	case 3:
		gl.Uniform3uiv(location, count, &v[0])
	case 4:
		gl.Uniform4uiv(location, count, &v[0])
	}
}

func (d *Driver) UniformMatrix(location int32, dim int, v []float32) {
	switch dim {
	case 2:
		gl.UniformMatrix2fv(location, 1, false, &v[0])
	case 3:
		gl.UniformMatrix3fv(location, 1, false, &v[0])
	case 4:
		gl.UniformMatrix4fv(location, 1, false, &v[0])
	}
}

func (d *Driver) UniformMatrixDouble(location int32, dim int, v []float64) {
	switch dim {
	case 2:
		gl.UniformMatrix2dv(location, 1, false, &v[0])
	case 3:
		gl.UniformMatrix3dv(location, 1, false, &v[0])
	case 4:
		gl.UniformMatrix4dv(location, 1, false, &v[0])
	}
}

func (d *Driver) CreateFramebuffer() uint32 {
	var name uint32
	gl.GenFramebuffers(1, &name)
	return name
}

func (d *Driver) DeleteFramebuffer(name uint32) {
	gl.DeleteFramebuffers(1, &name)
}

func (d *Driver) BindFramebuffer(name uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, name)
}

func (d *Driver) BoundFramebuffer() uint32 {
	var name int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &name)
	return uint32(name)
}

func (d *Driver) FramebufferTexture(attachment graphics.Attachment, texture uint32, level int) {
	gl.FramebufferTexture(gl.FRAMEBUFFER, attachmentEnum(attachment), texture, int32(level))
}

func (d *Driver) FramebufferTexture2D(attachment graphics.Attachment, target graphics.TextureTarget, texture uint32, level int) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachmentEnum(attachment), texTarget(target).target, texture, int32(level))
}

func (d *Driver) FramebufferTexture3D(attachment graphics.Attachment, texture uint32, level, layer int) {
	gl.FramebufferTextureLayer(gl.FRAMEBUFFER, attachmentEnum(attachment), texture, int32(level), int32(layer))
}

func (d *Driver) DrawBuffers(attachments []graphics.Attachment) {
	bufs := make([]uint32, len(attachments))
	for i, a := range attachments {
		bufs[i] = attachmentEnum(a)
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (d *Driver) CheckFramebufferStatus() graphics.FramebufferStatus {
	return framebufferStatuses[gl.CheckFramebufferStatus(gl.FRAMEBUFFER)]
}

func (d *Driver) CreateVertexArray() uint32 {
	var name uint32
	gl.GenVertexArrays(1, &name)
	return name
}

func (d *Driver) DeleteVertexArray(name uint32) {
	gl.DeleteVertexArrays(1, &name)
}

func (d *Driver) BindVertexArray(name uint32) {
	gl.BindVertexArray(name)
}

func (d *Driver) BoundVertexArray() uint32 {
	var name int32
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &name)
	return uint32(name)
}

func (d *Driver) VertexAttribPointer(index uint32, components int, kind graphics.ScalarKind, normalized bool, stride, offset int) {
	gl.VertexAttribPointerWithOffset(index, int32(components), scalarKinds[kind], normalized, int32(stride), uintptr(offset))
}

func (d *Driver) EnableVertexAttrib(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *Driver) DisableVertexAttrib(index uint32) {
	gl.DisableVertexAttribArray(index)
}

func (d *Driver) DrawArrays(mode graphics.DrawMode, first, count int) {
	gl.DrawArrays(drawModes[mode], int32(first), int32(count))
}

func (d *Driver) DrawElements(mode graphics.DrawMode, count int, kind graphics.ScalarKind, offset int) {
	gl.DrawElementsWithOffset(drawModes[mode], int32(count), scalarKinds[kind], uintptr(offset))
}

func (d *Driver) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Driver) GetViewport() [4]int32 {
	var vp [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])
	return vp
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Driver) ClearDepth(depth float64) {
	gl.ClearDepth(depth)
}

func (d *Driver) Clear(mask graphics.ClearMask) {
	gl.Clear(clearMaskBits(mask))
}

func (d *Driver) SetCapability(cap graphics.Capability, enabled bool) {
	if enabled {
		gl.Enable(capabilities[cap])
	} else {
		gl.Disable(capabilities[cap])
	}
}

func (d *Driver) BlendFunc(src, dst graphics.BlendFactor) {
	gl.BlendFunc(blendFactors[src], blendFactors[dst])
}

func (d *Driver) BlendEquation(eq graphics.BlendEquation) {
	gl.BlendEquation(blendEquations[eq])
}

func (d *Driver) DepthFunc(fn graphics.DepthFunction) {
	gl.DepthFunc(depthFunctions[fn])
}

func (d *Driver) Scissor(x, y, width, height int32) {
	gl.Scissor(x, y, width, height)
}

func (d *Driver) Error() graphics.ErrorCode {
	return errorCodes[gl.GetError()]
}

func (d *Driver) SetDebugCallback(fn func(graphics.DebugMessage)) bool {
	d.debugFn = fn
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		if d.debugFn == nil {
			return
		}
		d.debugFn(graphics.DebugMessage{
			Source:   debugSources[source],
			Type:     debugTypes[gltype],
			Severity: debugSeverities[severity],
			Message:  message,
		})
	}, nil)
	return true
}
