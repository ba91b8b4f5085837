// Package config loads jmatch's tunables from a layered source: built-in
// defaults, then a config file (YAML or TOML, via Viper), then environment
// variables, then CLI flags bind over the result last.
package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete set of jmatch tunables.
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Engine      EngineConfig      `json:"engine" mapstructure:"engine"`
	Obfuscation ObfuscationConfig `json:"obfuscation" mapstructure:"obfuscation"`
	Rank        RankConfig        `json:"rank" mapstructure:"rank"`
	Cache       CacheConfig       `json:"cache" mapstructure:"cache"`
	Logging     LoggingConfig     `json:"logging" mapstructure:"logging"`
}

// EngineConfig mirrors match.Options: the Merge Engine's promotion
// tunables.
type EngineConfig struct {
	MinVotes      int     `json:"minVotes" mapstructure:"minVotes"`
	MinGap        int     `json:"minGap" mapstructure:"minGap"`
	BatchPercent  float64 `json:"batchPercent" mapstructure:"batchPercent"`
	FloorClasses  int     `json:"floorClasses" mapstructure:"floorClasses"`
	FloorFields   int     `json:"floorFields" mapstructure:"floorFields"`
	FloorMethods  int     `json:"floorMethods" mapstructure:"floorMethods"`
	MaxIterations int     `json:"maxIterations" mapstructure:"maxIterations"`
}

// ObfuscationConfig controls which simple-name prefixes count as
// non-obfuscated.
type ObfuscationConfig struct {
	MeaningfulPrefixes []string `json:"meaningfulPrefixes" mapstructure:"meaningfulPrefixes"`
}

// RankConfig controls the optional Hybrid Ranker pass over residual
// pending methods.
type RankConfig struct {
	Enabled           bool    `json:"enabled" mapstructure:"enabled"`
	TfidfWeight       float64 `json:"tfidfWeight" mapstructure:"tfidfWeight"`
	KnnWeight         float64 `json:"knnWeight" mapstructure:"knnWeight"`
	CombinedThreshold float64 `json:"combinedThreshold" mapstructure:"combinedThreshold"`
	GapThreshold      float64 `json:"gapThreshold" mapstructure:"gapThreshold"`
}

// CacheConfig controls the archive-cache database.
type CacheConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// LoggingConfig controls internal/logging output.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns jmatch's built-in defaults, matching
// match.DefaultOptions and model.DefaultObfuscationPrefixes exactly.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Engine: EngineConfig{
			MinVotes:      3,
			MinGap:        2,
			BatchPercent:  0.10,
			FloorClasses:  5,
			FloorFields:   5,
			FloorMethods:  10,
			MaxIterations: 50,
		},
		Obfuscation: ObfuscationConfig{
			MeaningfulPrefixes: []string{"class", "method", "field", "client"},
		},
		Rank: RankConfig{
			Enabled:           true,
			TfidfWeight:       0.4,
			KnnWeight:         0.6,
			CombinedThreshold: 0.7,
			GapThreshold:      0.15,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    filepath.Join(".jmatch", "cache.db"),
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load reads configuration from configPath if non-empty, otherwise searches
// for a "config.yaml" or "config.toml" under .jmatch/ in the current
// directory. Env vars prefixed JMATCH_ (with "." replaced by "_") override
// file values; a missing config file is not an error, defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix("JMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".jmatch")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		if configPath == "" && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("engine.minVotes", d.Engine.MinVotes)
	v.SetDefault("engine.minGap", d.Engine.MinGap)
	v.SetDefault("engine.batchPercent", d.Engine.BatchPercent)
	v.SetDefault("engine.floorClasses", d.Engine.FloorClasses)
	v.SetDefault("engine.floorFields", d.Engine.FloorFields)
	v.SetDefault("engine.floorMethods", d.Engine.FloorMethods)
	v.SetDefault("engine.maxIterations", d.Engine.MaxIterations)
	v.SetDefault("obfuscation.meaningfulPrefixes", d.Obfuscation.MeaningfulPrefixes)
	v.SetDefault("rank.enabled", d.Rank.Enabled)
	v.SetDefault("rank.tfidfWeight", d.Rank.TfidfWeight)
	v.SetDefault("rank.knnWeight", d.Rank.KnnWeight)
	v.SetDefault("rank.combinedThreshold", d.Rank.CombinedThreshold)
	v.SetDefault("rank.gapThreshold", d.Rank.GapThreshold)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.path", d.Cache.Path)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
}

// Save writes the configuration as YAML to path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	v := viper.New()
	setDefaults(v, c)
	v.SetConfigFile(path)
	return v.WriteConfigAs(path)
}

// AsJSON renders the configuration as indented JSON, for `jmatch config show`.
func (c *Config) AsJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Validate checks the configuration for internally inconsistent values.
func (c *Config) Validate() error {
	if c.Engine.MinVotes < 1 {
		return &ConfigError{Field: "engine.minVotes", Message: "must be at least 1"}
	}
	if c.Engine.MinGap < 0 {
		return &ConfigError{Field: "engine.minGap", Message: "must not be negative"}
	}
	if c.Engine.BatchPercent <= 0 || c.Engine.BatchPercent > 1 {
		return &ConfigError{Field: "engine.batchPercent", Message: "must be in (0, 1]"}
	}
	if c.Engine.MaxIterations < 1 {
		return &ConfigError{Field: "engine.maxIterations", Message: "must be at least 1"}
	}
	if len(c.Obfuscation.MeaningfulPrefixes) == 0 {
		return &ConfigError{Field: "obfuscation.meaningfulPrefixes", Message: "must name at least one prefix"}
	}
	sum := c.Rank.TfidfWeight + c.Rank.KnnWeight
	if c.Rank.Enabled && (sum < 0.999 || sum > 1.001) {
		return &ConfigError{Field: "rank.tfidfWeight+knnWeight", Message: "combiner weights must sum to 1.0"}
	}
	return nil
}

// ConfigError names the offending field in a validation failure.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
