package graphics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vitrail/engine/graphics"
	"github.com/spaghettifunk/vitrail/engine/graphics/gltest"
)

func TestFramebufferCompleteness(t *testing.T) {
	d := gltest.New()
	fb, err := graphics.NewFramebuffer(d)
	require.NoError(t, err)
	defer fb.Destroy()

	assert.Equal(t, graphics.FramebufferIncompleteMissingAttachment, fb.Status())
	assert.Error(t, fb.AssertComplete())

	color := newTexture2D(t, d, graphics.RGBA8, 4, 4)
	defer color.Destroy()
	require.NoError(t, color.Reserve())
	require.NoError(t, fb.AttachTexture(graphics.ColorAttachment(0), color, 0))

	assert.Equal(t, graphics.FramebufferComplete, fb.Status())
	assert.NoError(t, fb.AssertComplete())
}

func TestFramebufferRejectsFormatMismatches(t *testing.T) {
	d := gltest.New()
	fb, err := graphics.NewFramebuffer(d)
	require.NoError(t, err)
	defer fb.Destroy()

	color := newTexture2D(t, d, graphics.RGBA8, 4, 4)
	defer color.Destroy()
	depth, err := graphics.NewTexture(d, graphics.Depth32F, 4, 4, 1, graphics.D2)
	require.NoError(t, err)
	defer depth.Destroy()

	assert.Error(t, fb.AttachTexture(graphics.ColorAttachment(0), depth, 0))
	assert.Error(t, fb.AttachTexture(graphics.DepthAttachment, color, 0))
	assert.Error(t, fb.AttachTexture(graphics.DepthStencilAttachment, depth, 0),
		"Depth32F has no stencil bits")
	assert.NoError(t, fb.AttachTexture(graphics.DepthAttachment, depth, 0))
}

func TestFramebufferMixedSampleCounts(t *testing.T) {
	d := gltest.New()
	fb, err := graphics.NewFramebuffer(d)
	require.NoError(t, err)
	defer fb.Destroy()

	single := newTexture2D(t, d, graphics.RGBA8, 4, 4)
	defer single.Destroy()
	require.NoError(t, single.Reserve())
	multi, err := graphics.NewMultisampleTexture(d, graphics.RGBA8, 4, 4, 1, graphics.D2, 4)
	require.NoError(t, err)
	defer multi.Destroy()
	require.NoError(t, multi.Reserve())

	require.NoError(t, fb.AttachTexture(graphics.ColorAttachment(0), single, 0))
	require.NoError(t, fb.AttachTexture(graphics.ColorAttachment(1), multi, 0))
	assert.Equal(t, graphics.FramebufferIncompleteMultisample, fb.Status())
}

func TestBackbufferRules(t *testing.T) {
	d := gltest.New()
	fb := graphics.Backbuffer(d)

	assert.True(t, fb.IsBackbuffer())
	_, ok := fb.ID()
	assert.False(t, ok)
	assert.Equal(t, graphics.FramebufferComplete, fb.Status())

	color := newTexture2D(t, d, graphics.RGBA8, 4, 4)
	defer color.Destroy()
	assert.Error(t, fb.AttachTexture(graphics.ColorAttachment(0), color, 0))
	assert.Error(t, fb.SetDrawBuffers([]graphics.Attachment{graphics.ColorAttachment(0)}))

	fb.Destroy()
	assert.Equal(t, graphics.FramebufferComplete, fb.Status(), "destroying the backbuffer is a no-op")
}

func TestDrawBuffersValidation(t *testing.T) {
	d := gltest.New()
	fb, err := graphics.NewFramebuffer(d)
	require.NoError(t, err)
	defer fb.Destroy()

	assert.Error(t, fb.SetDrawBuffers([]graphics.Attachment{graphics.DepthAttachment}))

	color := newTexture2D(t, d, graphics.RGBA8, 4, 4)
	defer color.Destroy()
	require.NoError(t, color.Reserve())
	require.NoError(t, fb.AttachTexture(graphics.ColorAttachment(0), color, 0))
	require.NoError(t, fb.SetDrawBuffers([]graphics.Attachment{graphics.ColorAttachment(0)}))
	assert.Equal(t, graphics.FramebufferComplete, fb.Status())
}

func TestClearAndReadPixel(t *testing.T) {
	d := gltest.New()
	fb, err := graphics.NewFramebuffer(d)
	require.NoError(t, err)
	defer fb.Destroy()

	color := newTexture2D(t, d, graphics.RGBA8, 2, 2)
	defer color.Destroy()
	require.NoError(t, color.Reserve())
	require.NoError(t, fb.AttachTexture(graphics.ColorAttachment(0), color, 0))

	graphics.SetClearColor(d, 1, 0, 0, 1)
	require.NoError(t, fb.Clear(graphics.ClearColorBit))

	pixel, err := fb.ReadPixel(1, 1, graphics.RGBA8)
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0, 255}, pixel)
}

func TestDrawRequiresReadyState(t *testing.T) {
	d := gltest.New()
	p := linkTestProgram(t, d)
	defer p.Destroy()
	va := newTriangleArray(t, d)

	fb := graphics.Backbuffer(d)
	require.NoError(t, fb.Draw(p, va, graphics.Triangles, 0, 3))
	assert.Equal(t, 1, d.DrawCalls())

	// No element buffer attached yet.
	assert.Error(t, fb.DrawElements(p, va, graphics.Triangles, 3, 0))

	indices, err := graphics.NewBufferWithData(d, graphics.ElementArrayBuffer, []uint16{0, 1, 2})
	require.NoError(t, err)
	defer indices.Destroy()
	require.NoError(t, graphics.AttachElementBuffer(va, indices))

	require.NoError(t, fb.DrawElements(p, va, graphics.Triangles, 3, 0))
	assert.Equal(t, 2, d.DrawCalls())

	// Drawing into an incomplete framebuffer is refused by the driver.
	empty, err := graphics.NewFramebuffer(d)
	require.NoError(t, err)
	defer empty.Destroy()
	assert.Error(t, empty.Draw(p, va, graphics.Triangles, 0, 3))
	assert.Equal(t, 2, d.DrawCalls())
}
