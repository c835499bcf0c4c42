// Package cli implements the dxfview command-line interface.
//
// # Commands
//
//   - render: rasterize a DXF or JSON drawing to PNG, JPEG, SVG, PDF or JSON
//   - bounds: print the drawing extent and the fit transform
//   - inspect: summarize entities, blocks and block references
//   - blocks: draw the block reference graph with Graphviz
//   - view: interactive terminal preview with a rotate key
//   - serve: HTTP preview server
//   - cache: inspect or clear the local cache
//
// All commands accept --verbose (-v) for debug logging and --config for a
// TOML settings file.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dxfview/pkg/cache"
	"github.com/matzehuels/dxfview/pkg/config"
	"github.com/matzehuels/dxfview/pkg/observability"
	"github.com/matzehuels/dxfview/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "dxfview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config *config.Config

	configPath string
	noCache    bool
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner over the configured cache backend.
func (c *CLI) newRunner(ctx context.Context, keyer cache.Keyer) (*pipeline.Runner, error) {
	ch, err := c.openCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	if (cfg.Backend == "" || cfg.Backend == cache.BackendFile) && cfg.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		cfg.Dir = dir
	}
	ch, err := cache.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("cache ready", "backend", cfg.Backend, "dir", cfg.Dir)
	return ch, nil
}

// enableHooks routes pipeline, cache and fetch events to the debug log.
func (c *CLI) enableHooks() {
	h := observability.NewLogHooks(c.Logger)
	observability.Register(h)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/dxfview/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string leaves the choice to the config file or the pipeline.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input (or uses the last
// URL path element). A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		name := input
		if i := strings.LastIndex(name, "/"); i >= 0 && strings.Contains(name, "://") {
			name = name[i+1:]
			if name == "" {
				name = "drawing"
			}
		}
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormats([]string{strings.TrimPrefix(ext, ".")}) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
