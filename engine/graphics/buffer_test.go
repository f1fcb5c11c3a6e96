package graphics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vitrail/engine/graphics"
	"github.com/spaghettifunk/vitrail/engine/graphics/gltest"
)

func TestBufferUploadAndLen(t *testing.T) {
	d := gltest.New()
	b, err := graphics.NewBufferWithData(d, graphics.ArrayBuffer, []float32{1, 2, 3, 4})
	require.NoError(t, err)
	defer b.Destroy()

	assert.Equal(t, 4, b.Len())
	assert.False(t, b.IsEmpty())
	assert.Equal(t, 4, b.Stride())
	assert.Len(t, d.BufferContents(b.ID().Name()), 16)

	// Uploading leaves nothing bound behind.
	_, ok := graphics.Current(d, graphics.ArrayBuffer)
	assert.False(t, ok)
}

func TestBufferRejectsZeroSizedElements(t *testing.T) {
	d := gltest.New()
	_, err := graphics.NewBuffer[struct{}](d, graphics.ArrayBuffer)
	assert.Error(t, err)
}

func TestBufferSliceBounds(t *testing.T) {
	d := gltest.New()
	b, err := graphics.NewBufferWithData(d, graphics.ArrayBuffer, []uint32{0, 1, 2})
	require.NoError(t, err)
	defer b.Destroy()

	_, err = b.Slice(0, 4)
	assert.Error(t, err)
	_, err = b.Slice(2, 1)
	assert.Error(t, err)
	_, err = b.Slice(-1, 1)
	assert.Error(t, err)

	s, err := b.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 4, s.ByteOffset())
	assert.Equal(t, 8, s.ByteLen())
}

func TestBufferMapRoundtrip(t *testing.T) {
	d := gltest.New()
	b, err := graphics.NewBufferWithData(d, graphics.ArrayBuffer, []float32{1, 2, 3, 4})
	require.NoError(t, err)
	defer b.Destroy()

	s, err := b.Slice(1, 3)
	require.NoError(t, err)
	m, err := s.Map()
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 3}, m.Data())
	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "closing a mapping twice must be a no-op")
}

func TestBufferSliceWrites(t *testing.T) {
	d := gltest.New()
	b, err := graphics.NewBufferWithData(d, graphics.ArrayBuffer, []int32{10, 20, 30})
	require.NoError(t, err)
	defer b.Destroy()

	s, err := b.Slice(0, 3)
	require.NoError(t, err)
	require.NoError(t, s.Set(1, 99))
	assert.Error(t, s.Set(3, 0))

	m, err := s.Map()
	require.NoError(t, err)
	assert.Equal(t, []int32{10, 99, 30}, m.Data())
	require.NoError(t, m.Close())

	require.NoError(t, s.SetAll([]int32{7, 8, 9}))
	assert.Error(t, s.SetAll([]int32{7, 8}))

	m, err = s.Map()
	require.NoError(t, err)
	assert.Equal(t, []int32{7, 8, 9}, m.Data())
	require.NoError(t, m.Close())
}

func TestBufferWriteSurfacesLostStore(t *testing.T) {
	d := gltest.New()
	b, err := graphics.NewBufferWithData(d, graphics.ArrayBuffer, []int32{10, 20, 30})
	require.NoError(t, err)
	defer b.Destroy()

	s, err := b.Slice(0, 3)
	require.NoError(t, err)

	d.CorruptNextUnmap()
	assert.Error(t, s.Set(1, 99), "a rejected unmap means the write was discarded")
	d.CorruptNextUnmap()
	assert.Error(t, s.SetAll([]int32{7, 8, 9}))

	m, err := s.Map()
	require.NoError(t, err)
	d.CorruptNextUnmap()
	assert.Error(t, m.Close())
}

type cameraBlock struct {
	View       [16]float32
	Projection [16]float32
}

func TestUniformBufferAlignment(t *testing.T) {
	d := gltest.New()
	b, err := graphics.NewBuffer[cameraBlock](d, graphics.UniformBuffer)
	require.NoError(t, err)
	defer b.Destroy()

	// 128-byte elements round up to the driver's 256-byte offset alignment.
	assert.Equal(t, 256, b.Stride())

	blocks := []cameraBlock{{View: [16]float32{1}}, {Projection: [16]float32{2}}}
	require.NoError(t, b.Upload(blocks, graphics.DynamicDraw))
	assert.Len(t, d.BufferContents(b.ID().Name()), 512)

	s, err := b.At(1)
	require.NoError(t, err)
	assert.Equal(t, 256, s.ByteOffset(), "elements must start on alignment boundaries")

	m, err := s.Map()
	require.NoError(t, err)
	assert.Equal(t, blocks[1], m.Data()[0], "padding must be stripped on the way back")
	require.NoError(t, m.Close())

	require.NoError(t, s.BindTo(0))
}

func TestBindToRejectsPlainBuffers(t *testing.T) {
	d := gltest.New()
	b, err := graphics.NewBufferWithData(d, graphics.ArrayBuffer, []float32{1})
	require.NoError(t, err)
	defer b.Destroy()

	s, err := b.At(0)
	require.NoError(t, err)
	assert.Error(t, s.BindTo(0))
}

func TestBufferDestroyReleasesName(t *testing.T) {
	d := gltest.New()
	b, err := graphics.NewBufferWithData(d, graphics.ArrayBuffer, []byte{1, 2, 3})
	require.NoError(t, err)
	b.Destroy()
	assert.Zero(t, d.LiveObjects())
}
