// Package config loads the waterfall CLI configuration from a TOML file,
// WATERFALL_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	waterfall "github.com/grindlemire/go-waterfall"
)

// EnvPrefix is prepended to every environment override, e.g. WATERFALL_LAYOUT_GUTTER.
const EnvPrefix = "WATERFALL"

// DefaultPath is where the config file is looked up when no path is given.
const DefaultPath = "~/.config/waterfall/config.toml"

// Config holds the CLI configuration.
type Config struct {
	Layout LayoutConfig `mapstructure:"layout"`
	Scroll ScrollConfig `mapstructure:"scroll"`
	Viewer ViewerConfig `mapstructure:"viewer"`
	Debug  DebugConfig  `mapstructure:"debug"`
}

// LayoutConfig mirrors the engine settings.
type LayoutConfig struct {
	Gutter          int     `mapstructure:"gutter"`
	ColumnSize      int     `mapstructure:"column_size"`
	ColumnNum       int     `mapstructure:"column_num"`
	Threshold       float64 `mapstructure:"threshold"`
	MaxUnpositioned int     `mapstructure:"max_unpositioned"`
	MaxIterations   int     `mapstructure:"max_iterations"`
}

// ScrollConfig holds scroll debounce timings.
type ScrollConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	MaxWait  time.Duration `mapstructure:"max_wait"`
}

// ViewerConfig holds terminal viewer preferences.
type ViewerConfig struct {
	// AutoColumns fits as many columns as the terminal width allows,
	// ignoring layout.column_num.
	AutoColumns bool `mapstructure:"auto_columns"`
	// Watch reloads the fixture file when it changes.
	Watch bool `mapstructure:"watch"`
}

// DebugConfig controls the debug log.
type DebugConfig struct {
	LogPath string `mapstructure:"log_path"`
}

// New returns a viper instance with defaults and environment overrides set up.
// Defaults are sized for terminal cells rather than pixels.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("layout.gutter", 1)
	v.SetDefault("layout.column_size", 28)
	v.SetDefault("layout.column_num", 3)
	v.SetDefault("layout.threshold", 1.0)
	v.SetDefault("layout.max_unpositioned", 20)
	v.SetDefault("layout.max_iterations", 1000)
	v.SetDefault("scroll.debounce", "100ms")
	v.SetDefault("scroll.max_wait", "200ms")
	v.SetDefault("viewer.auto_columns", true)
	v.SetDefault("viewer.watch", true)
	v.SetDefault("debug.log_path", "")

	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path into v and decodes the result.
// An empty path falls back to DefaultPath, which may be missing; an explicit
// path must exist.
func Load(v *viper.Viper, path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("expand config path %q: %w", path, err)
	}
	v.SetConfigFile(filepath.Clean(expanded))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || isNotExist(err)) {
			return Config{}, fmt.Errorf("read config %s: %w", expanded, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Engine converts the layout and scroll settings into an engine configuration.
func (c Config) Engine() waterfall.Config {
	return waterfall.Config{
		Gutter:          c.Layout.Gutter,
		ColumnSize:      c.Layout.ColumnSize,
		ColumnNum:       c.Layout.ColumnNum,
		Threshold:       c.Layout.Threshold,
		MaxUnpositioned: c.Layout.MaxUnpositioned,
		MaxIterations:   c.Layout.MaxIterations,
		ScrollDebounce:  c.Scroll.Debounce,
		ScrollMaxWait:   c.Scroll.MaxWait,
	}
}

// Validate reports engine settings that would be rejected at startup.
func (c Config) Validate() error {
	return c.Engine().Validate()
}

// isNotExist reports whether err means the config file is missing. With
// SetConfigFile, viper reports a missing file as a plain fs error rather than
// ConfigFileNotFoundError.
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
