package assets_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vitrail/engine/assets"
	"github.com/spaghettifunk/vitrail/engine/assets/loaders"
	"github.com/spaghettifunk/vitrail/engine/graphics/gltest"
)

func newManager(t *testing.T, dir string) *assets.AssetManager {
	t.Helper()
	am, err := assets.NewAssetManager()
	require.NoError(t, err)
	t.Cleanup(func() { am.Shutdown() })

	am.RegisterLoader(assets.ResourceTypeShader, &loaders.ShaderLoader{})
	am.RegisterLoader(assets.ResourceTypeImage, &loaders.ImageLoader{})
	require.NoError(t, am.Initialize(dir))
	return am
}

func writePNG(t *testing.T, path string, pixels []color.NRGBA, width, height int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, p := range pixels {
		img.SetNRGBA(i%width, i/width, p)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, assets.ResourceTypeShader, assets.TypeOf("shaders/basic.vert"))
	assert.Equal(t, assets.ResourceTypeShader, assets.TypeOf("shaders/basic.frag"))
	assert.Equal(t, assets.ResourceTypeImage, assets.TypeOf("textures/checker.PNG"))
	assert.Equal(t, assets.ResourceTypeImage, assets.TypeOf("textures/photo.jpeg"))
	assert.Equal(t, assets.ResourceTypeNone, assets.TypeOf("notes.txt"))
}

func TestLoadShaderAsset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	source := "#version 460 core\nvoid main() {}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "basic.vert"), []byte(source), 0o644))

	am := newManager(t, dir)

	resource, err := am.LoadAsset(filepath.Join("shaders", "basic.vert"), nil)
	require.NoError(t, err)
	assert.Equal(t, "basic", resource.Name)
	assert.Equal(t, assets.ResourceTypeShader, resource.Type)

	data, ok := resource.Data.(*assets.ShaderData)
	require.True(t, ok)
	assert.Equal(t, source, data.Source)
}

func TestLoadAssetUnknownPath(t *testing.T) {
	am := newManager(t, t.TempDir())
	_, err := am.LoadAsset("shaders/missing.vert", nil)
	assert.Error(t, err)
}

func TestWatcherPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	am := newManager(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.frag"), []byte("void main() {}\n"), 0o644))

	require.Eventually(t, func() bool {
		_, err := am.LoadAsset("late.frag", nil)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestImageLoaderDecodesAndFlips(t *testing.T) {
	dir := t.TempDir()
	top := color.NRGBA{R: 255, A: 255}
	bottom := color.NRGBA{B: 255, A: 255}
	writePNG(t, filepath.Join(dir, "gradient.png"), []color.NRGBA{top, bottom}, 1, 2)

	am := newManager(t, dir)

	resource, err := am.LoadAsset("gradient.png", &assets.ImageParams{FlipY: true})
	require.NoError(t, err)
	img, ok := resource.Data.(*assets.ImageData)
	require.True(t, ok)
	assert.Equal(t, 1, img.Width)
	assert.Equal(t, 2, img.Height)
	require.Len(t, img.Pixels, 8)
	// Flipped: the bottom row comes first.
	assert.Equal(t, []byte{0, 0, 255, 255}, img.Pixels[:4])
	assert.Equal(t, []byte{255, 0, 0, 255}, img.Pixels[4:])

	resource, err = am.LoadAsset("gradient.png", nil)
	require.NoError(t, err)
	img = resource.Data.(*assets.ImageData)
	assert.Equal(t, []byte{255, 0, 0, 255}, img.Pixels[:4])
}

func TestUploadTexture(t *testing.T) {
	d := gltest.New()
	img := &assets.ImageData{
		Width:  2,
		Height: 2,
		Pixels: []byte{
			255, 0, 0, 255, 0, 255, 0, 255,
			0, 0, 255, 255, 255, 255, 255, 255,
		},
	}

	tex, err := assets.UploadTexture(d, img)
	require.NoError(t, err)
	defer tex.Destroy()

	w, h, _ := tex.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, 2, tex.NumMipmaps())

	data, err := tex.Download(0)
	require.NoError(t, err)
	assert.Equal(t, img.Pixels, data)
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "dot.png"), []color.NRGBA{{R: 255, A: 255}}, 1, 1)

	am := newManager(t, dir)
	d := gltest.New()

	tex, err := assets.LoadTexture(d, am, "dot.png")
	require.NoError(t, err)
	defer tex.Destroy()

	data, err := tex.Download(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0, 255}, data)
}
