package graphics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/vitrail/engine/graphics"
	"github.com/spaghettifunk/vitrail/engine/graphics/gltest"
)

func TestPipelineState(t *testing.T) {
	d := gltest.New()

	graphics.SetViewport(d, 0, 0, 1280, 720)
	assert.Equal(t, [4]int32{0, 0, 1280, 720}, graphics.GetViewport(d))

	graphics.Enable(d, graphics.CapBlend)
	graphics.SetBlendFunc(d, graphics.BlendSrcAlpha, graphics.BlendOneMinusSrcAlpha)
	graphics.SetBlendEquation(d, graphics.BlendAdd)
	assert.True(t, d.IsEnabled(graphics.CapBlend))
	src, dst, eq := d.BlendState()
	assert.Equal(t, graphics.BlendSrcAlpha, src)
	assert.Equal(t, graphics.BlendOneMinusSrcAlpha, dst)
	assert.Equal(t, graphics.BlendAdd, eq)

	graphics.Enable(d, graphics.CapDepthTest)
	graphics.SetDepthFunc(d, graphics.DepthLessOrEqual)
	assert.Equal(t, graphics.DepthLessOrEqual, d.DepthState())

	graphics.Disable(d, graphics.CapDepthTest)
	assert.False(t, d.IsEnabled(graphics.CapDepthTest))

	graphics.SetClearColor(d, 0.1, 0.2, 0.3, 1)
	graphics.SetClearDepth(d, 0.5)
	color, depth := d.ClearState()
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 1}, color)
	assert.Equal(t, 0.5, depth)
}
