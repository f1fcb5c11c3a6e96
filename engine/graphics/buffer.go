package graphics

import (
	"fmt"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/spaghettifunk/vitrail/engine/core"
)

// BufferKind is the binding point a buffer occupies. The same name space is
// shared across kinds, so the kind travels with the identifier.
type BufferKind uint32

const (
	ArrayBuffer BufferKind = iota
	ElementArrayBuffer
	UniformBuffer
	PixelPackBuffer
	PixelUnpackBuffer
	CopyReadBuffer
	CopyWriteBuffer
	ShaderStorageBuffer
	TextureBuffer
	TransformFeedbackBuffer
	DrawIndirectBuffer
	DispatchIndirectBuffer
	AtomicCounterBuffer
	QueryBuffer
)

func (k BufferKind) bindName(d Driver, name uint32) { d.BindBuffer(k, name) }
func (k BufferKind) boundName(d Driver) uint32      { return d.BoundBuffer(k) }

func (k BufferKind) String() string {
	switch k {
	case ArrayBuffer:
		return "array buffer"
	case ElementArrayBuffer:
		return "element buffer"
	case UniformBuffer:
		return "uniform buffer"
	case PixelPackBuffer:
		return "pixel pack buffer"
	case PixelUnpackBuffer:
		return "pixel unpack buffer"
	case CopyReadBuffer:
		return "copy read buffer"
	case CopyWriteBuffer:
		return "copy write buffer"
	case ShaderStorageBuffer:
		return "shader storage buffer"
	case TextureBuffer:
		return "texture buffer"
	case TransformFeedbackBuffer:
		return "transform feedback buffer"
	case DrawIndirectBuffer:
		return "draw indirect buffer"
	case DispatchIndirectBuffer:
		return "dispatch indirect buffer"
	case AtomicCounterBuffer:
		return "atomic counter buffer"
	case QueryBuffer:
		return "query buffer"
	}
	return "invalid buffer kind"
}

// Buffer is a linear GPU allocation of elements of type T. T must be a
// plain-old-data type: fixed size, no pointers, no slices. Uniform-kind
// buffers pad every element to the driver's offset alignment so that each
// logical element starts on an alignment boundary.
type Buffer[T any] struct {
	d      Driver
	id     ID
	kind   BufferKind
	count  int
	stride int
	// Padded stride. Equal to stride except for uniform-kind buffers.
	alignment int
}

// NewBuffer allocates an empty buffer. Zero-sized element types are rejected
// because a zero-stride buffer has no usable indexing.
func NewBuffer[T any](d Driver, kind BufferKind) (*Buffer[T], error) {
	var zero T
	stride := int(unsafe.Sizeof(zero))
	if stride == 0 {
		return nil, fmt.Errorf("graphics: cannot allocate %s of zero-sized type %T", kind, zero)
	}
	alignment := stride
	if kind == UniformBuffer || kind == ShaderStorageBuffer {
		alignment = nextMultiple(stride, d.UniformBufferOffsetAlignment())
	}
	id := mustID(d.CreateBuffer(), kind)
	core.LogDebug("create %s", id)
	return &Buffer[T]{d: d, id: id, kind: kind, stride: stride, alignment: alignment}, nil
}

// NewBufferWithData allocates a buffer and uploads data with a static hint.
func NewBufferWithData[T any](d Driver, kind BufferKind, data []T) (*Buffer[T], error) {
	b, err := NewBuffer[T](d, kind)
	if err != nil {
		return nil, err
	}
	if err := b.Upload(data, StaticDraw); err != nil {
		b.Destroy()
		return nil, err
	}
	return b, nil
}

// ID returns the buffer's identifier.
func (b *Buffer[T]) ID() ID { return b.id }

// Len is the number of logical elements uploaded.
func (b *Buffer[T]) Len() int { return b.count }

func (b *Buffer[T]) IsEmpty() bool { return b.count == 0 }

// Stride is the byte size of one element as stored on the GPU, including
// any alignment padding.
func (b *Buffer[T]) Stride() int { return b.alignment }

// Upload replaces the buffer's entire contents. The usage hint only affects
// driver placement.
func (b *Buffer[T]) Upload(data []T, usage Usage) error {
	bytes := b.marshal(data)
	err := Bound(b.d, b.id, func() error {
		return errGuard(b.d, "glBufferData", func() {
			b.d.BufferData(b.kind, bytes, usage)
		})
	})
	if err != nil {
		return fmt.Errorf("upload %d elements to %s: %w", len(data), b.id, err)
	}
	b.count = len(data)
	return nil
}

// marshal lays the elements out the way the driver will address them,
// padding each one up to the alignment stride where required.
func (b *Buffer[T]) marshal(data []T) []byte {
	if b.alignment == b.stride {
		return sliceBytes(data, b.stride)
	}
	out := make([]byte, len(data)*b.alignment)
	for i := range data {
		copy(out[i*b.alignment:], elementBytes(&data[i], b.stride))
	}
	return out
}

// Slice addresses elements [from, to) for mapping. Offsets are computed in
// padded strides, so uniform-kind slices land on alignment boundaries.
func (b *Buffer[T]) Slice(from, to int) (*BufferSlice[T], error) {
	if from < 0 || to < from || to > b.count {
		return nil, fmt.Errorf("graphics: slice %d..%d out of range of %s with %d elements", from, to, b.id, b.count)
	}
	return &BufferSlice[T]{
		buffer: b,
		first:  from,
		count:  to - from,
	}, nil
}

// At addresses the single element at index.
func (b *Buffer[T]) At(index int) (*BufferSlice[T], error) {
	return b.Slice(index, index+1)
}

// Destroy deletes the driver object. The buffer must not be used after.
func (b *Buffer[T]) Destroy() {
	core.LogDebug("delete %s", b.id)
	b.d.DeleteBuffer(b.id.Name())
}

// BufferSlice is a byte-range view of a buffer, addressed by logical
// element index.
type BufferSlice[T any] struct {
	buffer *Buffer[T]
	first  int
	count  int
}

// ByteOffset is the slice's starting byte within the buffer.
func (s *BufferSlice[T]) ByteOffset() int { return s.first * s.buffer.alignment }

// ByteLen is the slice's span in bytes.
func (s *BufferSlice[T]) ByteLen() int { return s.count * s.buffer.alignment }

// Len is the number of elements addressed.
func (s *BufferSlice[T]) Len() int { return s.count }

// Map exposes the slice's range for reading. The returned view must be
// closed before the buffer is used again; Close issues the unmap call.
func (s *BufferSlice[T]) Map() (*MappedData[T], error) {
	b := s.buffer
	var data []T
	err := Bound(b.d, b.id, func() error {
		var raw []byte
		if err := errGuard(b.d, "glMapBufferRange", func() {
			raw = b.d.MapBufferRange(b.kind, s.ByteOffset(), s.ByteLen(), MapRead)
		}); err != nil {
			return err
		}
		data = make([]T, s.count)
		for i := 0; i < s.count; i++ {
			copy(elementBytes(&data[i], b.stride), raw[i*b.alignment:])
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("map %s range %d..%d: %w", b.id, s.first, s.first+s.count, err)
	}
	core.LogDebug("map %s (%d..%d)", b.id, s.ByteOffset(), s.ByteOffset()+s.ByteLen())
	return &MappedData[T]{buffer: b, data: data}, nil
}

// Set writes one element at the given index within the slice through a
// transient write mapping.
func (s *BufferSlice[T]) Set(at int, value T) error {
	if at < 0 || at >= s.count {
		return fmt.Errorf("graphics: write at %d out of range of slice with %d elements", at, s.count)
	}
	b := s.buffer
	return Bound(b.d, b.id, func() error {
		if err := errGuard(b.d, "glMapBufferRange", func() {
			raw := b.d.MapBufferRange(b.kind, s.ByteOffset()+at*b.alignment, b.alignment, MapWrite)
			copy(raw, elementBytes(&value, b.stride))
		}); err != nil {
			return err
		}
		if !b.d.UnmapBuffer(b.kind) {
			return fmt.Errorf("write to %s: data store lost during unmap, write discarded", b.id)
		}
		return nil
	})
}

// SetAll rewrites the whole slice.
func (s *BufferSlice[T]) SetAll(data []T) error {
	if len(data) != s.count {
		return fmt.Errorf("graphics: %d elements do not fill slice of %d", len(data), s.count)
	}
	b := s.buffer
	return Bound(b.d, b.id, func() error {
		if err := errGuard(b.d, "glMapBufferRange", func() {
			raw := b.d.MapBufferRange(b.kind, s.ByteOffset(), s.ByteLen(), MapRead|MapWrite)
			for i := range data {
				copy(raw[i*b.alignment:], elementBytes(&data[i], b.stride))
			}
		}); err != nil {
			return err
		}
		if !b.d.UnmapBuffer(b.kind) {
			return fmt.Errorf("write to %s: data store lost during unmap, write discarded", b.id)
		}
		return nil
	})
}

// MappedData is the guard over a read mapping. Data is valid until Close.
type MappedData[T any] struct {
	buffer *Buffer[T]
	data   []T
	closed bool
}

// Data returns the mapped elements.
func (m *MappedData[T]) Data() []T { return m.data }

// Close unmaps the buffer. Idempotent.
func (m *MappedData[T]) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	core.LogDebug("unmap %s", m.buffer.id)
	return boundName(m.buffer.d, m.buffer.kind, m.buffer.id.Name(), func() error {
		if !m.buffer.d.UnmapBuffer(m.buffer.kind) {
			return fmt.Errorf("unmap %s: driver rejected unmap", m.buffer.id)
		}
		return nil
	})
}

func nextMultiple[T constraints.Integer](x, of T) T {
	if of == 0 {
		return x
	}
	rem := x % of
	if rem == 0 {
		return x
	}
	return x + of - rem
}

// sliceBytes views a POD slice as raw bytes without copying.
func sliceBytes[T any](data []T, stride int) []byte {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*stride)
}

// elementBytes views a single POD value as raw bytes.
func elementBytes[T any](v *T, stride int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), stride)
}
