package graphics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vitrail/engine/graphics"
	"github.com/spaghettifunk/vitrail/engine/graphics/gltest"
	"github.com/spaghettifunk/vitrail/engine/math"
)

type spriteVertex struct {
	Position math.Vec3
	Texcoord math.Vec2
}

func newTriangleArray(t *testing.T, d *gltest.Driver) *graphics.VertexArray {
	t.Helper()
	va, err := graphics.NewVertexArray(d)
	require.NoError(t, err)
	vertices, err := graphics.NewBufferWithData(d, graphics.ArrayBuffer, []spriteVertex{
		{Position: math.Vec3{X: -1, Y: -1}},
		{Position: math.Vec3{X: 1, Y: -1}},
		{Position: math.Vec3{Y: 1}},
	})
	require.NoError(t, err)
	_, err = graphics.AttachVertexBuffer(va, vertices, 0)
	require.NoError(t, err)
	return va
}

func TestAttachVertexBufferDerivesLayout(t *testing.T) {
	d := gltest.New()
	va, err := graphics.NewVertexArray(d)
	require.NoError(t, err)
	defer va.Destroy()

	vertices, err := graphics.NewBufferWithData(d, graphics.ArrayBuffer, make([]spriteVertex, 3))
	require.NoError(t, err)
	defer vertices.Destroy()

	n, err := graphics.AttachVertexBuffer(va, vertices, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	buffer, components, kind, stride, offset, enabled := d.AttribState(va.ID().Name(), 0)
	assert.Equal(t, vertices.ID().Name(), buffer)
	assert.Equal(t, 3, components)
	assert.Equal(t, graphics.Float, kind)
	assert.Equal(t, 20, stride)
	assert.Equal(t, 0, offset)
	assert.True(t, enabled)

	_, components, kind, _, offset, enabled = d.AttribState(va.ID().Name(), 1)
	assert.Equal(t, 2, components)
	assert.Equal(t, graphics.Float, kind)
	assert.Equal(t, 12, offset)
	assert.True(t, enabled)

	// Attaching leaves neither the array nor the buffer bound.
	_, ok := graphics.Current(d, graphics.VertexArrayTarget)
	assert.False(t, ok)
	_, ok = graphics.Current(d, graphics.ArrayBuffer)
	assert.False(t, ok)
}

func TestAttachVertexBufferScalarElements(t *testing.T) {
	d := gltest.New()
	va, err := graphics.NewVertexArray(d)
	require.NoError(t, err)
	defer va.Destroy()

	positions, err := graphics.NewBufferWithData(d, graphics.ArrayBuffer, [][2]float32{{0, 0}, {1, 1}})
	require.NoError(t, err)
	defer positions.Destroy()

	n, err := graphics.AttachVertexBuffer(va, positions, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, components, kind, stride, _, enabled := d.AttribState(va.ID().Name(), 4)
	assert.Equal(t, 2, components)
	assert.Equal(t, graphics.Float, kind)
	assert.Equal(t, 8, stride)
	assert.True(t, enabled)
}

func TestAttachVertexBufferRejectsUnusableTypes(t *testing.T) {
	d := gltest.New()
	va, err := graphics.NewVertexArray(d)
	require.NoError(t, err)
	defer va.Destroy()

	type oversized struct {
		Weights [5]float32
	}
	b, err := graphics.NewBufferWithData(d, graphics.ArrayBuffer, make([]oversized, 1))
	require.NoError(t, err)
	defer b.Destroy()
	_, err = graphics.AttachVertexBuffer(va, b, 0)
	assert.Error(t, err)

	type mixed struct {
		V struct {
			A float32
			B int32
		}
	}
	m, err := graphics.NewBufferWithData(d, graphics.ArrayBuffer, make([]mixed, 1))
	require.NoError(t, err)
	defer m.Destroy()
	_, err = graphics.AttachVertexBuffer(va, m, 0)
	assert.Error(t, err)
}

func TestAttachElementBufferRecordsIndexKind(t *testing.T) {
	d := gltest.New()
	va, err := graphics.NewVertexArray(d)
	require.NoError(t, err)
	defer va.Destroy()

	_, ok := va.IndexKind()
	assert.False(t, ok)

	indices, err := graphics.NewBufferWithData(d, graphics.ElementArrayBuffer, []uint32{0, 1, 2})
	require.NoError(t, err)
	defer indices.Destroy()
	require.NoError(t, graphics.AttachElementBuffer(va, indices))

	kind, ok := va.IndexKind()
	require.True(t, ok)
	assert.Equal(t, graphics.UnsignedInt, kind)
}

func TestAttachElementBufferRejectsWrongKind(t *testing.T) {
	d := gltest.New()
	va, err := graphics.NewVertexArray(d)
	require.NoError(t, err)
	defer va.Destroy()

	wrong, err := graphics.NewBufferWithData(d, graphics.ArrayBuffer, []uint16{0, 1, 2})
	require.NoError(t, err)
	defer wrong.Destroy()
	assert.Error(t, graphics.AttachElementBuffer(va, wrong))
}

func TestEnableDisableAttribute(t *testing.T) {
	d := gltest.New()
	va := newTriangleArray(t, d)
	defer va.Destroy()

	require.NoError(t, va.DisableAttribute(0))
	_, _, _, _, _, enabled := d.AttribState(va.ID().Name(), 0)
	assert.False(t, enabled)

	require.NoError(t, va.EnableAttribute(0))
	_, _, _, _, _, enabled = d.AttribState(va.ID().Name(), 0)
	assert.True(t, enabled)
}
