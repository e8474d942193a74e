package util

import (
	"fmt"
	"runtime"

	"github.com/farrel-a-h/Anchorx/pkg"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds every pipeline parameter. read from ./data/config.yaml,
// overridable per-key with flags in the cmd drivers.
type Config struct {
	GraphFile string `mapstructure:"graph_file" validate:"required"`
	PathsFile string `mapstructure:"paths_file" validate:"required"`

	LandmarksFile  string `mapstructure:"landmarks_file"`
	IterationsFile string `mapstructure:"iterations_file"`

	// quadtree
	MaxTreeDepth int `mapstructure:"max_tree_depth" validate:"gte=0"`

	// wspd
	Epsilon           float64 `mapstructure:"epsilon" validate:"gt=0"`
	VerifyGeometry    bool    `mapstructure:"verify_geometry"`
	GeometryTolerance float64 `mapstructure:"geometry_tolerance" validate:"gte=0"`

	// pair source: "wspd" or "random"
	PairSource  string `mapstructure:"pair_source" validate:"oneof=wspd random"`
	RandomPairs int    `mapstructure:"random_pairs" validate:"gte=0"`
	RandomSeed  int64  `mapstructure:"random_seed"`

	// optional region filter, [minLat, minLon, maxLat, maxLon]. empty = whole graph.
	BoundingBox []float64 `mapstructure:"bounding_box" validate:"omitempty,len=4"`

	// hitting set
	MaxIterations int  `mapstructure:"max_iterations" validate:"gte=-1"`
	VerifyCover   bool `mapstructure:"verify_cover"`

	NumWorkers int `mapstructure:"num_workers" validate:"gte=0"`
}

func defaultConfig() *Config {
	return &Config{
		LandmarksFile:     "./data/landmarks.txt",
		IterationsFile:    "./data/iterations.csv",
		MaxTreeDepth:      pkg.DEFAULT_MAX_TREE_DEPTH,
		Epsilon:           pkg.DEFAULT_EPSILON,
		GeometryTolerance: 0.1,
		PairSource:        "wspd",
		RandomPairs:       100000,
		MaxIterations:     -1,
		NumWorkers:        runtime.NumCPU(),
	}
}

func ReadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("fatal error config file: %w", err)
	}

	config := defaultConfig()
	if err := viper.Unmarshal(config); err != nil {
		return nil, WrapErrorf(err, ErrBadParamInput, "unmarshal config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return WrapErrorf(err, ErrBadParamInput, "invalid config")
	}
	if c.NumWorkers == 0 {
		c.NumWorkers = runtime.NumCPU()
	}
	return nil
}
