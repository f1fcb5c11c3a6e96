package assets

import (
	"fmt"

	"github.com/spaghettifunk/vitrail/engine/graphics"
)

// UploadTexture turns decoded image pixels into an RGBA8 texture with a
// full mipmap chain and trilinear filtering.
func UploadTexture(d graphics.Driver, img *ImageData) (*graphics.Texture, error) {
	t, err := graphics.NewTexture(d, graphics.RGBA8, img.Width, img.Height, 1, graphics.D2)
	if err != nil {
		return nil, err
	}
	if err := t.SetData(img.Pixels); err != nil {
		t.Destroy()
		return nil, err
	}
	if err := t.GenerateMipmaps(); err != nil {
		t.Destroy()
		return nil, err
	}
	if err := t.FilterMinMipmap(graphics.Linear, graphics.Linear); err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}

// LoadTexture loads an image asset and uploads it, flipped for texture
// coordinates.
func LoadTexture(d graphics.Driver, am *AssetManager, name string) (*graphics.Texture, error) {
	resource, err := am.LoadAsset(name, &ImageParams{FlipY: true})
	if err != nil {
		return nil, err
	}
	img, ok := resource.Data.(*ImageData)
	if !ok {
		return nil, fmt.Errorf("asset %s is not an image", name)
	}
	return UploadTexture(d, img)
}
