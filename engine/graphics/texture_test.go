package graphics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vitrail/engine/graphics"
	"github.com/spaghettifunk/vitrail/engine/graphics/gltest"
)

func newTexture2D(t *testing.T, d graphics.Driver, format graphics.PixelFormat, w, h int) *graphics.Texture {
	t.Helper()
	tex, err := graphics.NewTexture(d, format, w, h, 1, graphics.D2)
	require.NoError(t, err)
	return tex
}

func TestTextureRejectsBadExtents(t *testing.T) {
	d := gltest.New()
	_, err := graphics.NewTexture(d, graphics.RGBA8, 0, 4, 1, graphics.D2)
	assert.Error(t, err)
	_, err = graphics.NewTexture(d, graphics.RGBA8, 4, -1, 1, graphics.D2)
	assert.Error(t, err)
	_, err = graphics.NewMultisampleTexture(d, graphics.RGBA8, 4, 4, 1, graphics.D2, 0)
	assert.Error(t, err)
}

func TestTextureSetDataValidatesSize(t *testing.T) {
	d := gltest.New()
	tex := newTexture2D(t, d, graphics.RGBA8, 2, 2)
	defer tex.Destroy()

	assert.Error(t, tex.SetData(nil))
	assert.Error(t, tex.SetData(make([]byte, 15)))
	assert.NoError(t, tex.SetData(make([]byte, 16)))
}

func TestTextureDownloadRoundtrip(t *testing.T) {
	d := gltest.New()
	tex := newTexture2D(t, d, graphics.RGBA8, 2, 2)
	defer tex.Destroy()

	pixels := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	}
	require.NoError(t, tex.SetData(pixels))

	back, err := tex.Download(0)
	require.NoError(t, err)
	assert.Equal(t, pixels, back)

	_, err = tex.Download(1)
	assert.Error(t, err, "only level 0 exists before mipmap generation")
}

func TestTextureSubDataBounds(t *testing.T) {
	d := gltest.New()
	tex := newTexture2D(t, d, graphics.R8, 4, 4)
	defer tex.Destroy()
	require.NoError(t, tex.Reserve())

	require.NoError(t, tex.SetSubData2D(0, 1, 1, 2, 2, []byte{9, 9, 9, 9}))
	assert.Error(t, tex.SetSubData2D(0, 3, 3, 2, 2, make([]byte, 4)), "rectangle exceeds bounds")
	assert.Error(t, tex.SetSubData2D(0, 0, 0, 2, 2, make([]byte, 3)), "data does not fill rectangle")
	assert.Error(t, tex.SetSubData2D(1, 0, 0, 1, 1, make([]byte, 1)), "level out of range")

	back, err := tex.Download(0)
	require.NoError(t, err)
	assert.Equal(t, byte(9), back[4*1+1])
	assert.Equal(t, byte(9), back[4*2+2])
	assert.Equal(t, byte(0), back[0])
}

func TestTextureMipmaps(t *testing.T) {
	d := gltest.New()
	tex := newTexture2D(t, d, graphics.RGBA8, 8, 4)
	defer tex.Destroy()
	require.NoError(t, tex.SetData(make([]byte, 8*4*4)))

	assert.Equal(t, 1, tex.NumMipmaps())
	require.NoError(t, tex.GenerateMipmaps())
	assert.Equal(t, 4, tex.NumMipmaps(), "1 + floor(log2(8))")

	w, h, err := tex.MipmapSize(1)
	require.NoError(t, err)
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)

	w, h, err = tex.MipmapSize(3)
	require.NoError(t, err)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)

	_, _, err = tex.MipmapSize(4)
	assert.Error(t, err)
}

func TestTextureClearResize(t *testing.T) {
	d := gltest.New()
	tex := newTexture2D(t, d, graphics.RGBA8, 4, 4)
	defer tex.Destroy()
	require.NoError(t, tex.SetData(make([]byte, 64)))
	require.NoError(t, tex.GenerateMipmaps())

	require.NoError(t, tex.ClearResize(2, 2, 1))
	width, height, depth := tex.Size()
	assert.Equal(t, [3]int{2, 2, 1}, [3]int{width, height, depth})
	assert.Equal(t, 1, tex.NumMipmaps(), "resize invalidates the mip chain")
	assert.Error(t, tex.ClearResize(0, 1, 1))
}

func TestTextureParameters(t *testing.T) {
	d := gltest.New()
	tex := newTexture2D(t, d, graphics.RGBA8, 2, 2)
	defer tex.Destroy()

	require.NoError(t, tex.WrapS(graphics.ClampToEdge))
	require.NoError(t, tex.FilterMag(graphics.Linear))
	require.NoError(t, tex.FilterMinMipmap(graphics.Linear, graphics.Nearest))

	v, ok := d.TextureParam(tex.ID().Name(), graphics.ParamWrapS)
	require.True(t, ok)
	assert.Equal(t, int32(graphics.ClampToEdge), v)

	v, ok = d.TextureParam(tex.ID().Name(), graphics.ParamMinFilter)
	require.True(t, ok)
	assert.Equal(t, int32(graphics.FilterLinearMipmapNearest), v)
}

func TestTextureUnit(t *testing.T) {
	d := gltest.New()
	tex := newTexture2D(t, d, graphics.RGBA8, 2, 2)
	defer tex.Destroy()

	unit, err := tex.Unit(3)
	require.NoError(t, err)
	assert.Equal(t, graphics.TextureUnit(3), unit)
	assert.Equal(t, uint32(3), d.ActiveUnit())

	_, err = tex.Unit(uint32(d.MaxCombinedTextureUnits()))
	assert.Error(t, err)
}

func TestPixelFormatInfo(t *testing.T) {
	assert.Equal(t, 4, graphics.RGBA8.PixelSize())
	assert.Equal(t, 16, graphics.RGBA32F.PixelSize())
	assert.Equal(t, 1, graphics.R8.PixelSize())
	assert.True(t, graphics.Depth32F.IsDepth())
	assert.False(t, graphics.Depth32F.HasStencil())
	assert.True(t, graphics.Depth24Stencil8.HasStencil())
	assert.False(t, graphics.RGBA8.IsDepth())
}
