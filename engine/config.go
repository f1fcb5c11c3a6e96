package engine

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/vitrail/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// Minimum severity emitted by the engine logger.
	LogLevel string `toml:"log_level"`
	// Root directory for shaders, images and other assets.
	AssetsDir string `toml:"assets_dir"`
	// Preferred graphics backend; empty picks the best available one.
	Backend string `toml:"backend"`
}

// DefaultConfig is the configuration an application starts from when no
// file overrides it.
func DefaultConfig() ApplicationConfig {
	return ApplicationConfig{
		StartWidth:  1280,
		StartHeight: 720,
		Name:        "Vitrail Application",
		LogLevel:    "info",
		AssetsDir:   "assets",
	}
}

// LoadConfig reads a TOML file on top of the defaults. Fields absent from
// the file keep their default values.
func LoadConfig(path string) (ApplicationConfig, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("load config: %w", err)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// Validate rejects configurations the engine cannot start with.
func (c ApplicationConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name must not be empty")
	}
	if c.StartWidth == 0 || c.StartHeight == 0 {
		return fmt.Errorf("window size %dx%d is not usable", c.StartWidth, c.StartHeight)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level resolves the configured log level name.
func (c ApplicationConfig) Level() (core.LogLevel, error) {
	switch strings.ToLower(c.LogLevel) {
	case "", "info":
		return core.InfoLevel, nil
	case "debug":
		return core.DebugLevel, nil
	case "warn", "warning":
		return core.WarnLevel, nil
	case "error":
		return core.ErrorLevel, nil
	}
	return core.InfoLevel, fmt.Errorf("unknown log level %q", c.LogLevel)
}
