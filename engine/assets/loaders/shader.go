package loaders

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/spaghettifunk/vitrail/engine/assets"
)

// ShaderLoader reads GLSL source files as text.
type ShaderLoader struct{}

func (sl *ShaderLoader) Load(path string, params interface{}) (*assets.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &assets.Resource{
		ID:       uuid.New(),
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		Type:     assets.ResourceTypeShader,
		Data: &assets.ShaderData{
			Source: string(data),
		},
	}, nil
}

func (sl *ShaderLoader) Unload(*assets.Resource) error {
	return nil
}
