package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/iishyfishyy/sketchflow/pkg/pipeline"
)

// Config holds user defaults loaded from the TOML config file. Command-line
// flags override these values.
type Config struct {
	// Style is the default theme override ("" keeps the diagram's style).
	Style string `toml:"style"`

	// Format is the default output format for render.
	Format string `toml:"format"`

	// Scale is the PNG rasterisation scale factor.
	Scale float64 `toml:"scale"`

	// NoCache disables the artifact cache.
	NoCache bool `toml:"no_cache"`

	// Addr is the default preview server listen address.
	Addr string `toml:"addr"`
}

// configFile is the config filename inside the config directory.
const configFile = "config.toml"

// defaultConfig returns the built-in defaults.
func defaultConfig() Config {
	return Config{
		Format: pipeline.FormatSVG,
		Scale:  pipeline.DefaultScale,
		Addr:   "127.0.0.1:7331",
	}
}

// LoadConfig reads ~/.config/sketchflow/config.toml, returning built-in
// defaults when the file is missing. A malformed file is logged and
// ignored rather than failing the command.
func LoadConfig(logger *log.Logger) Config {
	cfg := defaultConfig()

	dir, err := configDir()
	if err != nil {
		return cfg
	}
	path := filepath.Join(dir, configFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		logger.Warn("ignoring malformed config", "path", path, "err", err)
		return defaultConfig()
	}

	if cfg.Scale <= 0 {
		cfg.Scale = pipeline.DefaultScale
	}
	if cfg.Format == "" {
		cfg.Format = pipeline.FormatSVG
	}
	return cfg
}
