package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vitrail/engine/core"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
name = "Sandbox"
start_width = 800
start_height = 600
log_level = "debug"
assets_dir = "testdata"
backend = "gltest"
`)
	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Sandbox", config.Name)
	assert.Equal(t, uint32(800), config.StartWidth)
	assert.Equal(t, uint32(600), config.StartHeight)
	assert.Equal(t, "testdata", config.AssetsDir)
	assert.Equal(t, "gltest", config.Backend)

	level, err := config.Level()
	require.NoError(t, err)
	assert.Equal(t, core.DebugLevel, level)
}

func TestLoadConfigKeepsDefaultsForMissingFields(t *testing.T) {
	path := writeConfig(t, `name = "Sandbox"`)
	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().StartWidth, config.StartWidth)
	assert.Equal(t, DefaultConfig().AssetsDir, config.AssetsDir)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `name = ""`))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "name = \"x\"\nstart_width = 0\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "name = \"x\"\nlog_level = \"loud\"\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
