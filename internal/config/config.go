package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config holds everything one generator run needs.
type Config struct {
	Input         string           `mapstructure:"input"`
	FeatureIndex  int              `mapstructure:"feature_index"`
	PolygonIndex  int              `mapstructure:"polygon_index"`
	Output        string           `mapstructure:"output"`
	Format        string           `mapstructure:"format"`
	ModulePackage string           `mapstructure:"module_package"`
	Projection    ProjectionConfig `mapstructure:"projection"`
	Simplify      SimplifyConfig   `mapstructure:"simplify"`
	Overlay       OverlayConfig    `mapstructure:"overlay"`
	Landmarks     []LandmarkConfig `mapstructure:"landmarks"`
	LandmarksCSV  string           `mapstructure:"landmarks_csv"`
	Log           LogConfig        `mapstructure:"log"`
}

type ProjectionConfig struct {
	TargetWidth float64 `mapstructure:"target_width"`
	Padding     float64 `mapstructure:"padding"`
}

// SimplifyConfig carries one tolerance per ring class, in drawing units.
// Holes are small, so they get a tighter tolerance than the outer boundary.
type SimplifyConfig struct {
	OuterEpsilon float64 `mapstructure:"outer_epsilon"`
	HoleEpsilon  float64 `mapstructure:"hole_epsilon"`
}

// OverlayConfig describes the hand-digitized sub-region. At most one source
// may be set; the overlay is optional.
type OverlayConfig struct {
	Name        string      `mapstructure:"name"`
	Coordinates [][]float64 `mapstructure:"coordinates"`
	KML         string      `mapstructure:"kml"`
	WKT         string      `mapstructure:"wkt"`
}

// Sources reports how many overlay sources are configured.
func (o OverlayConfig) Sources() int {
	n := 0
	if len(o.Coordinates) > 0 {
		n++
	}
	if o.KML != "" {
		n++
	}
	if o.WKT != "" {
		n++
	}
	return n
}

type LandmarkConfig struct {
	Name string  `mapstructure:"name"`
	Lon  float64 `mapstructure:"lon"`
	Lat  float64 `mapstructure:"lat"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the built-in configuration without reading any file.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(errors.Wrap(err, "decode default config"))
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input", "data/county.geojson")
	v.SetDefault("feature_index", 0)
	v.SetDefault("polygon_index", 0)
	v.SetDefault("output", "")
	v.SetDefault("format", "ts")
	v.SetDefault("module_package", "countymap")
	v.SetDefault("projection.target_width", 520.0)
	v.SetDefault("projection.padding", 40.0)
	v.SetDefault("simplify.outer_epsilon", 1.2)
	v.SetDefault("simplify.hole_epsilon", 0.5)
	v.SetDefault("overlay.name", "overlay")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration from file and environment variables. An explicit
// path must exist; otherwise countypaths.yaml is looked up in . and ./configs
// and may be missing.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		v.SetConfigName("countypaths")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config")
			}
		}
	}

	// Environment variables: COUNTYPATHS_SIMPLIFY_OUTER_EPSILON → simplify.outer_epsilon
	v.SetEnvPrefix("COUNTYPATHS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every field is usable and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Input == "" {
		errs = append(errs, "input is required")
	}
	if c.FeatureIndex < 0 {
		errs = append(errs, fmt.Sprintf("feature_index must not be negative, got %d", c.FeatureIndex))
	}
	if c.PolygonIndex < 0 {
		errs = append(errs, fmt.Sprintf("polygon_index must not be negative, got %d", c.PolygonIndex))
	}
	switch strings.ToLower(c.Format) {
	case "ts", "go", "json":
	default:
		errs = append(errs, fmt.Sprintf("format must be ts, go or json, got %q", c.Format))
	}
	if !finite(c.Projection.TargetWidth) || c.Projection.TargetWidth <= 0 {
		errs = append(errs, fmt.Sprintf("projection.target_width must be positive, got %v", c.Projection.TargetWidth))
	}
	if !finite(c.Projection.Padding) || c.Projection.Padding < 0 {
		errs = append(errs, fmt.Sprintf("projection.padding must not be negative, got %v", c.Projection.Padding))
	}
	if !finite(c.Simplify.OuterEpsilon) || c.Simplify.OuterEpsilon < 0 {
		errs = append(errs, fmt.Sprintf("simplify.outer_epsilon must not be negative, got %v", c.Simplify.OuterEpsilon))
	}
	if !finite(c.Simplify.HoleEpsilon) || c.Simplify.HoleEpsilon < 0 {
		errs = append(errs, fmt.Sprintf("simplify.hole_epsilon must not be negative, got %v", c.Simplify.HoleEpsilon))
	}
	if c.Overlay.Sources() > 1 {
		errs = append(errs, "overlay: set only one of coordinates, kml, wkt")
	}
	for i, pt := range c.Overlay.Coordinates {
		if len(pt) < 2 {
			errs = append(errs, fmt.Sprintf("overlay.coordinates[%d] needs lon and lat", i))
		} else if !finite(pt[0]) || !finite(pt[1]) {
			errs = append(errs, fmt.Sprintf("overlay.coordinates[%d] must be finite, got %v", i, pt))
		}
	}
	seen := map[string]bool{}
	for i, l := range c.Landmarks {
		if l.Name == "" {
			errs = append(errs, fmt.Sprintf("landmarks[%d].name is required", i))
		} else if seen[l.Name] {
			errs = append(errs, fmt.Sprintf("landmarks[%d]: duplicate name %q", i, l.Name))
		}
		seen[l.Name] = true
		if !finite(l.Lon) || !finite(l.Lat) {
			errs = append(errs, fmt.Sprintf("landmarks[%d]: coordinates must be finite, got %v,%v", i, l.Lon, l.Lat))
		}
	}

	if len(errs) > 0 {
		return errors.Newf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
