package graphics

import (
	"fmt"
	"reflect"

	"github.com/spaghettifunk/vitrail/engine/core"
)

// VertexArray captures vertex input state: attribute layouts sourced from
// vertex buffers and, optionally, an element buffer for indexed draws.
type VertexArray struct {
	d         Driver
	id        ID
	indexKind ScalarKind
	hasIndex  bool
}

// NewVertexArray creates an empty vertex array object.
func NewVertexArray(d Driver) (*VertexArray, error) {
	id := mustID(d.CreateVertexArray(), VertexArrayTarget)
	core.LogDebug("create %s", id)
	return &VertexArray{d: d, id: id}, nil
}

func (va *VertexArray) ID() ID { return va.id }

// IndexKind reports the scalar type of the attached element buffer, if one
// has been attached.
func (va *VertexArray) IndexKind() (ScalarKind, bool) {
	return va.indexKind, va.hasIndex
}

// EnableAttribute switches the numbered attribute on.
func (va *VertexArray) EnableAttribute(index uint32) error {
	return Bound(va.d, va.id, func() error {
		return errGuard(va.d, "glEnableVertexAttribArray", func() {
			va.d.EnableVertexAttrib(index)
		})
	})
}

// DisableAttribute switches the numbered attribute off.
func (va *VertexArray) DisableAttribute(index uint32) error {
	return Bound(va.d, va.id, func() error {
		return errGuard(va.d, "glDisableVertexAttribArray", func() {
			va.d.DisableVertexAttrib(index)
		})
	})
}

// Destroy deletes the driver object. Buffers referenced by the array stay
// alive.
func (va *VertexArray) Destroy() {
	core.LogDebug("delete %s", va.id)
	va.d.DeleteVertexArray(va.id.Name())
}

// attribLayout is one derived vertex input: where it lives inside the
// element type and what the driver should read there.
type attribLayout struct {
	kind       ScalarKind
	components int
	offset     int
	normalized bool
}

// AttachVertexBuffer derives the attribute layout from the buffer's element
// type T and records it in the array, with attributes numbered upward from
// baseLocation. Struct element types contribute one attribute per field;
// scalar, small-array and vector-struct fields are all supported. The
// number of attributes consumed is returned.
func AttachVertexBuffer[T any](va *VertexArray, b *Buffer[T], baseLocation uint32) (int, error) {
	var zero T
	layouts, err := layoutOf(reflect.TypeOf(zero))
	if err != nil {
		return 0, fmt.Errorf("attach %s to %s: %w", b.id, va.id, err)
	}
	err = Bound(va.d, va.id, func() error {
		return Bound(va.d, b.id, func() error {
			for i, l := range layouts {
				location := baseLocation + uint32(i)
				if err := errGuard(va.d, "glVertexAttribPointer", func() {
					va.d.VertexAttribPointer(location, l.components, l.kind, l.normalized, b.Stride(), l.offset)
					va.d.EnableVertexAttrib(location)
				}); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	core.LogDebug("attach %s to %s (%d attributes at %d)", b.id, va.id, len(layouts), baseLocation)
	return len(layouts), nil
}

// AttachElementBuffer records the buffer as the array's index source. The
// element binding is part of the array's captured state, so it is set while
// the array is bound and deliberately left in place.
func AttachElementBuffer[T uint8 | uint16 | uint32](va *VertexArray, b *Buffer[T]) error {
	if b.kind != ElementArrayBuffer {
		return fmt.Errorf("graphics: %s is not an element buffer", b.id)
	}
	var zero T
	var kind ScalarKind
	switch any(zero).(type) {
	case uint8:
		kind = UnsignedByte
	case uint16:
		kind = UnsignedShort
	case uint32:
		kind = UnsignedInt
	}
	err := Bound(va.d, va.id, func() error {
		return errGuard(va.d, "glBindBuffer", func() {
			va.d.BindBuffer(ElementArrayBuffer, b.id.Name())
		})
	})
	if err != nil {
		return err
	}
	va.indexKind = kind
	va.hasIndex = true
	core.LogDebug("attach %s to %s (%s indices)", b.id, va.id, kind)
	return nil
}

// layoutOf maps a Go element type onto vertex attributes. Structs become
// one attribute per exported field in declaration order; everything else
// becomes a single attribute. A `vertex:"normalized"` field tag marks
// integer fields for fixed-point normalization.
func layoutOf(t reflect.Type) ([]attribLayout, error) {
	if t.Kind() == reflect.Struct {
		layouts := make([]attribLayout, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			kind, components, err := fieldLayout(field.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Name, err)
			}
			layouts = append(layouts, attribLayout{
				kind:       kind,
				components: components,
				offset:     int(field.Offset),
				normalized: field.Tag.Get("vertex") == "normalized",
			})
		}
		return layouts, nil
	}
	kind, components, err := fieldLayout(t)
	if err != nil {
		return nil, err
	}
	return []attribLayout{{kind: kind, components: components}}, nil
}

// fieldLayout resolves one attribute shape: a bare scalar, a fixed array of
// scalars, or a vector struct whose fields all share one scalar type.
func fieldLayout(t reflect.Type) (ScalarKind, int, error) {
	if kind, ok := scalarKindOf(t.Kind()); ok {
		return kind, 1, nil
	}
	switch t.Kind() {
	case reflect.Array:
		kind, ok := scalarKindOf(t.Elem().Kind())
		if !ok {
			return 0, 0, fmt.Errorf("array element type %s is not a vertex scalar", t.Elem())
		}
		if t.Len() < 1 || t.Len() > 4 {
			return 0, 0, fmt.Errorf("array length %d outside the 1..4 attribute range", t.Len())
		}
		return kind, t.Len(), nil
	case reflect.Struct:
		if t.NumField() < 1 || t.NumField() > 4 {
			return 0, 0, fmt.Errorf("struct %s has %d fields, outside the 1..4 attribute range", t, t.NumField())
		}
		kind, ok := scalarKindOf(t.Field(0).Type.Kind())
		if !ok {
			return 0, 0, fmt.Errorf("struct %s field type %s is not a vertex scalar", t, t.Field(0).Type)
		}
		for i := 1; i < t.NumField(); i++ {
			other, ok := scalarKindOf(t.Field(i).Type.Kind())
			if !ok || other != kind {
				return 0, 0, fmt.Errorf("struct %s mixes scalar types", t)
			}
		}
		return kind, t.NumField(), nil
	}
	return 0, 0, fmt.Errorf("type %s cannot back a vertex attribute", t)
}

func scalarKindOf(k reflect.Kind) (ScalarKind, bool) {
	switch k {
	case reflect.Int8:
		return Byte, true
	case reflect.Uint8:
		return UnsignedByte, true
	case reflect.Int16:
		return Short, true
	case reflect.Uint16:
		return UnsignedShort, true
	case reflect.Int32:
		return Int, true
	case reflect.Uint32:
		return UnsignedInt, true
	case reflect.Float32:
		return Float, true
	case reflect.Float64:
		return Double, true
	}
	return 0, false
}
