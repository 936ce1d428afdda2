// Package config loads closet preferences from a TOML file.
//
// A missing file is not an error: every key has a default, and keys absent
// from the file keep theirs. Colors are hex strings ("#ffff00"); an empty
// color means the built-in default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/chazu/closet/pkg/closet"
	"github.com/chazu/closet/pkg/engine"
	"github.com/chazu/closet/pkg/kernel"
	"github.com/chazu/closet/pkg/kernel/manifold"
	"github.com/chazu/closet/pkg/kernel/sdfx"
)

const (
	// appName names the XDG config subdirectory.
	appName = "closet"

	// FileName is the config file name inside the config directory.
	FileName = "config.toml"
)

// Config holds every user preference.
type Config struct {
	Layout Layout `toml:"layout"`
	Colors Colors `toml:"colors"`
	Mesh   Mesh   `toml:"mesh"`
	Engine Engine `toml:"engine"`
}

// Layout controls how holes and separators are built.
type Layout struct {
	Thickness  float64 `toml:"thickness"`
	Separation float64 `toml:"separation"`
	MaxHoles   int     `toml:"max_holes"` // 0 means unlimited
}

// Colors are hex strings; empty keeps the built-in color.
type Colors struct {
	Part     string `toml:"part"`
	Selected string `toml:"selected"`
}

// Kernel names accepted by mesh.kernel.
const (
	KernelSdfx     = "sdfx"
	KernelManifold = "manifold"
)

// Mesh selects the geometry kernel and bounds the marching cubes resolution
// of the sdfx kernel.
type Mesh struct {
	Kernel      string  `toml:"kernel"`
	MinCells    int     `toml:"min_cells"`
	MaxCells    int     `toml:"max_cells"`
	FeatureSize float64 `toml:"feature_size"` // 0 resolves the boxes each solid is built from
}

// Engine controls DSL evaluation.
type Engine struct {
	Timeout time.Duration `toml:"timeout"`
}

// Default returns the built-in preferences.
func Default() Config {
	return Config{
		Layout: Layout{
			Thickness:  closet.DefaultThickness,
			Separation: closet.DefaultSeparation,
		},
		Mesh: Mesh{
			Kernel:   KernelSdfx,
			MinCells: sdfx.DefaultMinCells,
			MaxCells: sdfx.DefaultMaxCells,
		},
		Engine: Engine{Timeout: engine.DefaultTimeout},
	}
}

// Load reads preferences from path on top of Default. A missing file
// returns Default and no error; unknown keys are rejected.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: %s: unknown key %q", path, undecoded[0].String())
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/closet/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, FileName), nil
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch {
	case !(c.Layout.Thickness > 0):
		return fmt.Errorf("layout.thickness must be positive, got %g", c.Layout.Thickness)
	case c.Layout.Separation < 0:
		return fmt.Errorf("layout.separation must not be negative, got %g", c.Layout.Separation)
	case c.Layout.MaxHoles < 0:
		return fmt.Errorf("layout.max_holes must not be negative, got %d", c.Layout.MaxHoles)
	case c.Mesh.Kernel != KernelSdfx && c.Mesh.Kernel != KernelManifold:
		return fmt.Errorf("mesh.kernel must be %q or %q, got %q", KernelSdfx, KernelManifold, c.Mesh.Kernel)
	case c.Mesh.MinCells < 1:
		return fmt.Errorf("mesh.min_cells must be at least 1, got %d", c.Mesh.MinCells)
	case c.Mesh.MaxCells < c.Mesh.MinCells:
		return fmt.Errorf("mesh.max_cells (%d) is below mesh.min_cells (%d)", c.Mesh.MaxCells, c.Mesh.MinCells)
	case c.Mesh.FeatureSize < 0:
		return fmt.Errorf("mesh.feature_size must not be negative, got %g", c.Mesh.FeatureSize)
	case c.Engine.Timeout <= 0:
		return fmt.Errorf("engine.timeout must be positive, got %s", c.Engine.Timeout)
	}
	if _, err := c.PartColor(); err != nil {
		return err
	}
	if _, err := c.SelectedColor(); err != nil {
		return err
	}
	return nil
}

// PartColor is the color of unselected separator parts.
func (c Config) PartColor() (closet.Color, error) {
	return colorOr("colors.part", c.Colors.Part, closet.DefaultPartColor)
}

// SelectedColor is the highlight color.
func (c Config) SelectedColor() (closet.Color, error) {
	return colorOr("colors.selected", c.Colors.Selected, closet.DefaultSelectedColor)
}

// EngineOptions converts the preferences into engine options.
func (c Config) EngineOptions() (engine.Options, error) {
	part, err := c.PartColor()
	if err != nil {
		return engine.Options{}, err
	}
	selected, err := c.SelectedColor()
	if err != nil {
		return engine.Options{}, err
	}
	return engine.Options{
		Timeout:       c.Engine.Timeout,
		Thickness:     c.Layout.Thickness,
		Separation:    c.Layout.Separation,
		MaxHoles:      c.Layout.MaxHoles,
		PartColor:     part,
		SelectedColor: selected,
	}, nil
}

// KernelOptions converts the mesh preferences into sdfx kernel options.
func (c Config) KernelOptions() []sdfx.Option {
	return []sdfx.Option{
		sdfx.WithCells(c.Mesh.MinCells, c.Mesh.MaxCells),
		sdfx.WithFeatureSize(c.Mesh.FeatureSize),
	}
}

// Kernel builds the configured geometry kernel. The manifold kernel is only
// available in builds with the manifold tag.
func (c Config) Kernel() (kernel.Kernel, error) {
	if c.Mesh.Kernel == KernelManifold {
		k, err := manifold.New()
		if err != nil {
			return nil, fmt.Errorf("mesh.kernel: %w", err)
		}
		return k, nil
	}
	return sdfx.New(c.KernelOptions()...), nil
}

// ParseColor parses a hex color such as "#ed801a".
func ParseColor(s string) (closet.Color, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return closet.Color{}, err
	}
	return closet.Color{R: col.R, G: col.G, B: col.B}, nil
}

// HexColor formats c as "#rrggbb".
func HexColor(c closet.Color) string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

func colorOr(key, s string, def closet.Color) (closet.Color, error) {
	if s == "" {
		return def, nil
	}
	c, err := ParseColor(s)
	if err != nil {
		return closet.Color{}, fmt.Errorf("%s: %w", key, err)
	}
	return c, nil
}
