package loaders

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/spaghettifunk/vitrail/engine/assets"
)

// ImageLoader decodes image files to tightly packed RGBA pixels. PNG, JPEG,
// BMP and TIFF are supported through the registered decoders.
type ImageLoader struct{}

func (il *ImageLoader) Load(path string, params interface{}) (*assets.Resource, error) {
	flip := false
	if p, ok := params.(*assets.ImageParams); ok && p != nil {
		flip = p.FlipY
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	pixels := rgba.Pix
	if flip {
		pixels = flipRows(pixels, rgba.Stride, bounds.Dy())
	}

	return &assets.Resource{
		ID:       uuid.New(),
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		Type:     assets.ResourceTypeImage,
		Data: &assets.ImageData{
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Pixels: pixels,
		},
	}, nil
}

func (il *ImageLoader) Unload(*assets.Resource) error {
	return nil
}

// flipRows reverses the row order so the bottom image row comes first.
func flipRows(pixels []byte, stride, rows int) []byte {
	out := make([]byte, len(pixels))
	for row := 0; row < rows; row++ {
		src := pixels[row*stride : (row+1)*stride]
		copy(out[(rows-1-row)*stride:], src)
	}
	return out
}
