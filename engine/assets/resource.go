package assets

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type ResourceType int

const (
	ResourceTypeNone ResourceType = iota
	ResourceTypeShader
	ResourceTypeImage
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeImage:
		return "image"
	}
	return "none"
}

// Resource is one loaded asset. Data carries the type-specific payload:
// *ShaderData for shaders, *ImageData for images.
type Resource struct {
	ID       uuid.UUID
	Name     string
	FullPath string
	Type     ResourceType
	Data     interface{}
}

// ShaderData is the payload of a shader resource: plain GLSL text.
type ShaderData struct {
	Source string
}

// ImageData is the payload of an image resource, decoded to tightly packed
// RGBA with the first pixel row at the bottom when loaded with FlipY.
type ImageData struct {
	Width  int
	Height int
	Pixels []byte
}

// ImageParams tunes image loading.
type ImageParams struct {
	// FlipY flips the image vertically so row 0 is the bottom row, the
	// orientation texture coordinates expect.
	FlipY bool
}

// TypeOf classifies a file path by extension.
func TypeOf(path string) ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vert", ".frag", ".geom", ".comp", ".glsl":
		return ResourceTypeShader
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff":
		return ResourceTypeImage
	default:
		return ResourceTypeNone
	}
}
