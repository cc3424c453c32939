package txlin

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/txlin/backend"
)

// Default glyph cell geometry, matching the legacy build-time macros.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Config is the immutable configuration threaded through the window manager,
// drawing context and font rasterizer. It is fixed before window creation;
// no runtime mechanism changes the glyph cell geometry afterward.
type Config struct {
	// CellWidth and CellHeight are the glyph cell geometry in pixels.
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`

	// Title is the native window title.
	Title string `yaml:"title"`

	// Backend names the rendering backend ("x11", "headless"). Empty
	// selects the default backend by registry priority.
	Backend string `yaml:"backend"`

	// Background is the initial canvas color as a hex string ("#rrggbb").
	Background string `yaml:"background"`
}

// DefaultConfig returns the build-time defaults.
func DefaultConfig() Config {
	return Config{
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
		Title:      "TXLin",
		Background: "#ffffff",
	}
}

// LoadConfig reads a YAML configuration file. Missing fields fall back to
// the defaults, so a partial file is valid.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("txlin: read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("txlin: parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return fmt.Errorf("%w: glyph cell %dx%d", ErrInvalidArgument, c.CellWidth, c.CellHeight)
	}
	if c.Background != "" {
		if _, ok := Hex(c.Background); !ok {
			return fmt.Errorf("%w: background %q", ErrInvalidArgument, c.Background)
		}
	}
	return nil
}

// background resolves the configured background color, defaulting to white.
func (c Config) background() Color {
	if col, ok := Hex(c.Background); ok && c.Background != "" {
		return col
	}
	return White
}

// Option configures a WindowManager during creation.
// Use functional options to customize manager behavior.
//
// Example:
//
//	// Default backend selection by registry priority
//	m := txlin.NewWindowManager(txlin.DefaultConfig())
//
//	// Injected backend (tests, embedding)
//	m := txlin.NewWindowManager(cfg, txlin.WithBackend(headless.New()))
type Option func(*managerOptions)

// managerOptions holds optional configuration for manager creation.
type managerOptions struct {
	backend backend.Backend
}

// WithBackend injects a concrete backend instance, bypassing the registry.
// Use this for dependency injection of test or embedded backends.
func WithBackend(b backend.Backend) Option {
	return func(o *managerOptions) {
		o.backend = b
	}
}
