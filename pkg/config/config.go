// Package config loads layerroute settings from a TOML file.
//
// Settings are resolved in three layers: built-in defaults, then the config
// file, then command-line flags (applied by the CLI). The file is either the
// one named by --config or, when that is empty, config.toml in the user
// config directory if it exists:
//
//	[weights]
//	structural = 1.0
//	induced = 1.0
//	same_category = 0.5
//
//	[assembly]
//	group_limit = 100
//
//	[search]
//	default_k = 10
//	default_augmented_limit = 10
//
//	[render]
//	format = "pdf"
//	dpi = 300
//
//	[cache]
//	dir = ""
//	redis_url = ""
//
// Unknown keys are rejected so a typo does not silently fall back to a
// default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	lrerrors "github.com/matzehuels/layerroute/pkg/errors"
	"github.com/matzehuels/layerroute/pkg/layered"
	"github.com/matzehuels/layerroute/pkg/render"
	"github.com/matzehuels/layerroute/pkg/render/nodelink"
)

// Formats lists the diagram formats the renderer produces.
var Formats = []string{"pdf", "svg", "png", "dot"}

// Config holds every tunable setting.
type Config struct {
	Weights  layered.Weights `toml:"weights"`
	Assembly Assembly        `toml:"assembly"`
	Search   Search          `toml:"search"`
	Render   Render          `toml:"render"`
	Cache    Cache           `toml:"cache"`
}

// Assembly configures graph construction.
type Assembly struct {
	// GroupLimit is the largest category group that still receives
	// same-category edges. -1 removes the guard.
	GroupLimit int `toml:"group_limit" validate:"gte=-1"`
}

// Search configures the path finders.
type Search struct {
	Start int `toml:"start" validate:"gte=0"`
	Goal  int `toml:"goal" validate:"gte=0"`

	// DefaultK bounds both searches. Zero means unbounded structural paths.
	DefaultK int `toml:"default_k" validate:"gte=0"`

	// DefaultAugmentedLimit bounds the augmented search when K is zero.
	DefaultAugmentedLimit int `toml:"default_augmented_limit" validate:"gte=1"`
}

// Render configures diagram output.
type Render struct {
	Format        string  `toml:"format" validate:"oneof=pdf svg png dot"`
	DPI           int     `toml:"dpi" validate:"gte=36,lte=1200"`
	PenStructural float64 `toml:"pen_structural" validate:"gt=0"`
	PenAugmented  float64 `toml:"pen_augmented" validate:"gt=0"`
	Viewer        string  `toml:"viewer"` // Overrides xdg-open/open
}

// Cache configures the snapshot store.
type Cache struct {
	Dir       string `toml:"dir"`
	RedisURL  string `toml:"redis_url" validate:"omitempty,url"`
	Namespace string `toml:"namespace"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Weights:  layered.DefaultWeights(),
		Assembly: Assembly{GroupLimit: layered.DefaultGroupLimit},
		Search: Search{
			Start:                 0,
			Goal:                  25,
			DefaultK:              10,
			DefaultAugmentedLimit: 10,
		},
		Render: Render{
			Format:        "pdf",
			DPI:           nodelink.DefaultDPI,
			PenStructural: render.DefaultPenStructural,
			PenAugmented:  render.DefaultPenAugmented,
		},
	}
}

// DefaultPath returns the per-user config file location, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "layerroute", "config.toml")
}

// Load reads the config file at path over the defaults. An empty path
// falls back to [DefaultPath]; a missing default file is not an error, a
// missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
	}

	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, os.ErrNotExist) {
		return nil, lrerrors.Wrap(lrerrors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return nil, lrerrors.Wrap(lrerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, lrerrors.New(lrerrors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field against its constraints. Flag overrides are
// validated the same way, so the CLI calls it again after applying them.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return lrerrors.Wrap(lrerrors.ErrCodeInvalidConfig, formatValidationError(err), "invalid configuration")
	}
	if c.Weights == (layered.Weights{}) {
		return lrerrors.New(lrerrors.ErrCodeInvalidConfig, "invalid configuration: weights are all zero")
	}
	if c.Cache.RedisURL != "" {
		if err := lrerrors.ValidateRedisURL(c.Cache.RedisURL); err != nil {
			return err
		}
	}
	return nil
}

// AugmentedLimit returns the bound for the augmented search given the
// requested k. The augmented search is never unbounded.
func (c *Config) AugmentedLimit(k int) int {
	if k > 0 {
		return k
	}
	return c.Search.DefaultAugmentedLimit
}

// ValidFormat reports whether f is a supported diagram format.
func ValidFormat(f string) bool { return slices.Contains(Formats, f) }

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Report the first failure; it names the TOML-facing field path.
	e := validationErrs[0]
	field := e.Namespace()
	switch e.Tag() {
	case "gte":
		return fmt.Errorf("%s: must be at least %s", field, e.Param())
	case "lte":
		return fmt.Errorf("%s: must not exceed %s", field, e.Param())
	case "gt":
		return fmt.Errorf("%s: must be greater than %s", field, e.Param())
	case "oneof":
		return fmt.Errorf("%s: must be one of %s", field, e.Param())
	case "url":
		return fmt.Errorf("%s: must be a URL", field)
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
	}
}
