package gltest

import (
	"encoding/binary"
	"math"

	"github.com/spaghettifunk/vitrail/engine/graphics"
)

type attachmentRef struct {
	texture uint32
	level   int
	layer   int
}

type framebufferObject struct {
	attachments map[graphics.Attachment]attachmentRef
	drawBuffers []graphics.Attachment
}

func (d *Driver) CreateFramebuffer() uint32 {
	name := d.framebufferNames.acquire()
	d.framebuffers[name] = &framebufferObject{
		attachments: make(map[graphics.Attachment]attachmentRef),
	}
	return name
}

func (d *Driver) DeleteFramebuffer(name uint32) {
	if !d.framebufferNames.inUse(name) {
		return
	}
	d.framebufferNames.release(name)
	delete(d.framebuffers, name)
	if d.boundFramebuffer == name {
		d.boundFramebuffer = 0
	}
}

func (d *Driver) BindFramebuffer(name uint32) {
	if name != 0 && !d.framebufferNames.inUse(name) {
		d.setError(graphics.InvalidOperation)
		return
	}
	d.boundFramebuffer = name
}

func (d *Driver) BoundFramebuffer() uint32 { return d.boundFramebuffer }

func (d *Driver) targetFramebuffer() *framebufferObject {
	if d.boundFramebuffer == 0 {
		d.setError(graphics.InvalidOperation)
		return nil
	}
	return d.framebuffers[d.boundFramebuffer]
}

func (d *Driver) FramebufferTexture(attachment graphics.Attachment, texture uint32, level int) {
	d.attach(attachment, texture, level, 0)
}

func (d *Driver) FramebufferTexture2D(attachment graphics.Attachment, target graphics.TextureTarget, texture uint32, level int) {
	d.attach(attachment, texture, level, 0)
}

func (d *Driver) FramebufferTexture3D(attachment graphics.Attachment, texture uint32, level, layer int) {
	d.attach(attachment, texture, level, layer)
}

func (d *Driver) attach(attachment graphics.Attachment, texture uint32, level, layer int) {
	f := d.targetFramebuffer()
	if f == nil {
		return
	}
	if texture != 0 && !d.textureNames.inUse(texture) {
		d.setError(graphics.InvalidOperation)
		return
	}
	if texture == 0 {
		delete(f.attachments, attachment)
		return
	}
	f.attachments[attachment] = attachmentRef{texture: texture, level: level, layer: layer}
}

func (d *Driver) DrawBuffers(attachments []graphics.Attachment) {
	f := d.targetFramebuffer()
	if f == nil {
		return
	}
	f.drawBuffers = append([]graphics.Attachment(nil), attachments...)
}

func (d *Driver) CheckFramebufferStatus() graphics.FramebufferStatus {
	if d.boundFramebuffer == 0 {
		return graphics.FramebufferComplete
	}
	f := d.framebuffers[d.boundFramebuffer]
	if len(f.attachments) == 0 {
		return graphics.FramebufferIncompleteMissingAttachment
	}
	samples := -1
	for _, ref := range f.attachments {
		t, ok := d.textures[ref.texture]
		if !ok {
			return graphics.FramebufferIncompleteAttachment
		}
		if samples < 0 {
			samples = t.target.Samples
		} else if samples != t.target.Samples {
			return graphics.FramebufferIncompleteMultisample
		}
	}
	for _, a := range f.drawBuffers {
		if _, ok := f.attachments[a]; !ok {
			return graphics.FramebufferIncompleteDrawBuffer
		}
	}
	return graphics.FramebufferComplete
}

// Clear fills the color attachments of the bound framebuffer with the
// current clear color. The backbuffer has no storage here, so clearing it
// only validates state.
func (d *Driver) Clear(mask graphics.ClearMask) {
	if mask&graphics.ClearColorBit == 0 || d.boundFramebuffer == 0 {
		return
	}
	f := d.framebuffers[d.boundFramebuffer]
	for attachment, ref := range f.attachments {
		if !attachment.IsColor() {
			continue
		}
		t, ok := d.textures[ref.texture]
		if !ok {
			continue
		}
		store, ok := t.levels[ref.level]
		if !ok {
			continue
		}
		pixel := encodePixel(t.format, d.clearColor)
		for i := 0; i+len(pixel) <= len(store); i += len(pixel) {
			copy(store[i:], pixel)
		}
	}
}

// encodePixel writes the clear color in a format's channel layout. Only the
// unsigned byte and float subpixel types carry real values; other layouts
// clear to zero.
func encodePixel(format graphics.PixelFormat, color [4]float32) []byte {
	channels := format.Channels()
	pixel := make([]byte, format.PixelSize())
	switch format.Subpixel() {
	case graphics.UnsignedByte:
		for c := 0; c < channels; c++ {
			pixel[c] = byte(math.Round(float64(clamp01(color[c])) * 255))
		}
	case graphics.Float:
		for c := 0; c < channels; c++ {
			binary.LittleEndian.PutUint32(pixel[c*4:], math.Float32bits(color[c]))
		}
	}
	return pixel
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ReadPixels reads from color attachment 0 of the bound framebuffer. The
// backbuffer reads back zeroes.
func (d *Driver) ReadPixels(x, y, width, height int, format graphics.PixelFormat, dst []byte) {
	if d.boundFramebuffer == 0 {
		return
	}
	f := d.framebuffers[d.boundFramebuffer]
	ref, ok := f.attachments[graphics.ColorAttachment(0)]
	if !ok {
		d.setError(graphics.InvalidFramebufferOperation)
		return
	}
	t, ok := d.textures[ref.texture]
	if !ok || t.format != format {
		d.setError(graphics.InvalidOperation)
		return
	}
	store, ok := t.levels[ref.level]
	if !ok {
		d.setError(graphics.InvalidOperation)
		return
	}
	px := format.PixelSize()
	levelWidth := levelExtent(t.width, ref.level)
	for row := 0; row < height; row++ {
		src := ((y+row)*levelWidth + x) * px
		if src < 0 || src+width*px > len(store) {
			d.setError(graphics.InvalidValue)
			return
		}
		copy(dst[row*width*px:], store[src:src+width*px])
	}
}

type attribRecord struct {
	buffer     uint32
	components int
	kind       graphics.ScalarKind
	normalized bool
	stride     int
	offset     int
}

type vertexArrayObject struct {
	elementBuffer uint32
	attribs       map[uint32]attribRecord
	enabled       map[uint32]bool
}

func (d *Driver) CreateVertexArray() uint32 {
	name := d.vertexArrayNames.acquire()
	d.vertexArrays[name] = &vertexArrayObject{
		attribs: make(map[uint32]attribRecord),
		enabled: make(map[uint32]bool),
	}
	return name
}

func (d *Driver) DeleteVertexArray(name uint32) {
	if !d.vertexArrayNames.inUse(name) {
		return
	}
	d.vertexArrayNames.release(name)
	delete(d.vertexArrays, name)
	if d.boundVertexArray == name {
		d.boundVertexArray = 0
	}
}

func (d *Driver) BindVertexArray(name uint32) {
	if name != 0 && !d.vertexArrayNames.inUse(name) {
		d.setError(graphics.InvalidOperation)
		return
	}
	d.boundVertexArray = name
}

func (d *Driver) BoundVertexArray() uint32 { return d.boundVertexArray }

func (d *Driver) targetVertexArray() *vertexArrayObject {
	if d.boundVertexArray == 0 {
		d.setError(graphics.InvalidOperation)
		return nil
	}
	return d.vertexArrays[d.boundVertexArray]
}

// VertexAttribPointer captures the currently bound array buffer into the
// bound vertex array, like the core profile requires.
func (d *Driver) VertexAttribPointer(index uint32, components int, kind graphics.ScalarKind, normalized bool, stride, offset int) {
	va := d.targetVertexArray()
	if va == nil {
		return
	}
	buffer := d.boundBuffers[graphics.ArrayBuffer]
	if buffer == 0 {
		d.setError(graphics.InvalidOperation)
		return
	}
	if components < 1 || components > 4 {
		d.setError(graphics.InvalidValue)
		return
	}
	va.attribs[index] = attribRecord{
		buffer:     buffer,
		components: components,
		kind:       kind,
		normalized: normalized,
		stride:     stride,
		offset:     offset,
	}
}

func (d *Driver) EnableVertexAttrib(index uint32) {
	if va := d.targetVertexArray(); va != nil {
		va.enabled[index] = true
	}
}

func (d *Driver) DisableVertexAttrib(index uint32) {
	if va := d.targetVertexArray(); va != nil {
		va.enabled[index] = false
	}
}

func (d *Driver) DrawArrays(mode graphics.DrawMode, first, count int) {
	if !d.drawReady() {
		return
	}
	if first < 0 || count < 0 {
		d.setError(graphics.InvalidValue)
		return
	}
	d.drawCalls++
}

func (d *Driver) DrawElements(mode graphics.DrawMode, count int, kind graphics.ScalarKind, offset int) {
	if !d.drawReady() {
		return
	}
	if count < 0 || offset < 0 {
		d.setError(graphics.InvalidValue)
		return
	}
	va := d.vertexArrays[d.boundVertexArray]
	if va.elementBuffer == 0 {
		d.setError(graphics.InvalidOperation)
		return
	}
	d.drawCalls++
}

// drawReady checks the state every draw needs: a linked program in use, a
// vertex array bound and a complete framebuffer.
func (d *Driver) drawReady() bool {
	if d.currentProgram == 0 || d.boundVertexArray == 0 {
		d.setError(graphics.InvalidOperation)
		return false
	}
	if d.CheckFramebufferStatus() != graphics.FramebufferComplete {
		d.setError(graphics.InvalidFramebufferOperation)
		return false
	}
	return true
}

// AttribState reports a vertex array's recorded attribute, for tests.
func (d *Driver) AttribState(vertexArray uint32, index uint32) (buffer uint32, components int, kind graphics.ScalarKind, stride, offset int, enabled bool) {
	va, ok := d.vertexArrays[vertexArray]
	if !ok {
		return 0, 0, 0, 0, 0, false
	}
	a := va.attribs[index]
	return a.buffer, a.components, a.kind, a.stride, a.offset, va.enabled[index]
}
