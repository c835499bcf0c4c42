// Package config loads dxfview settings from a TOML file.
//
// All sections are optional. Command-line flags override file values; the
// file only supplies defaults:
//
//	[render]
//	size = 1024
//	rotation = 90
//	background = "#ffffff"
//	stroke = "#000000"
//	formats = ["png", "svg"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dxfview/pkg/cache"
	"github.com/matzehuels/dxfview/pkg/errors"
	"github.com/matzehuels/dxfview/pkg/pipeline"
)

// DefaultServerAddr is the listen address used when none is configured.
const DefaultServerAddr = ":8080"

// Config is the decoded config file.
type Config struct {
	Render Render       `toml:"render"`
	Cache  cache.Config `toml:"cache"`
	Server Server       `toml:"server"`
}

// Render holds default render options.
type Render struct {
	Size              int      `toml:"size"`
	Width             int      `toml:"width"`
	Height            int      `toml:"height"`
	Rotation          float64  `toml:"rotation"`
	Background        string   `toml:"background"`
	Stroke            string   `toml:"stroke"`
	Formats           []string `toml:"formats"`
	IgnoreLineweights bool     `toml:"ignore_lineweights"`
	MaxDepth          int      `toml:"max_depth"`
}

// Server holds HTTP server settings.
type Server struct {
	Addr string `toml:"addr"`
	// MaxBody caps request bodies in bytes. Zero means the server default.
	MaxBody int64 `toml:"max_body"`
}

// DefaultPath returns $XDG_CONFIG_HOME/dxfview/config.toml, falling back to
// the platform config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "dxfview", "config.toml")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Cache:  cache.Config{Backend: cache.BackendFile},
		Server: Server{Addr: DefaultServerAddr},
	}
}

// Load reads the config file at path. An empty path means [DefaultPath];
// a missing file at the default path yields [Default], while a missing
// explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML data over [Default] and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that can be checked without rendering.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Render.Size < 0 || c.Render.Width < 0 || c.Render.Height < 0 || c.Server.MaxBody < 0 {
		return errors.New(errors.ErrCodeInvalidSize, "sizes must not be negative")
	}
	_, err := c.Options()
	return err
}

// Options converts the render section into validated pipeline options.
// Width and height take precedence over size.
func (c *Config) Options() (pipeline.Options, error) {
	r := c.Render
	opts := pipeline.Options{
		Width:             r.Size,
		Height:            r.Size,
		Rotation:          r.Rotation,
		Formats:           append([]string(nil), r.Formats...),
		Background:        r.Background,
		Stroke:            r.Stroke,
		IgnoreLineweights: r.IgnoreLineweights,
		MaxDepth:          r.MaxDepth,
	}
	if r.Width > 0 {
		opts.Width = r.Width
	}
	if r.Height > 0 {
		opts.Height = r.Height
	}
	check := opts
	if err := check.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	if len(opts.Formats) > 0 {
		opts.Formats = check.Formats
	}
	return opts, nil
}
