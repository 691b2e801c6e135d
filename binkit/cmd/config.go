package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultPattern  = "*.fa"
	defaultExclude  = "unbinned"
	defaultLogLevel = "info"
)

var defaultStrategies = []string{"spades", "megahit"}

// Config holds the stats settings. Values come from flags, then an optional
// YAML config file, then defaults.
type Config struct {
	// sample and binner names; derived from the bin dir path when empty
	Sample string `mapstructure:"sample"`
	Binner string `mapstructure:"binner"`

	// glob for bin FASTAs inside the bin dir
	Pattern string `mapstructure:"pattern"`
	// bin files whose name contains this are skipped
	Exclude string `mapstructure:"exclude"`

	// header-length schemes, tried in order before re-scanning the assembly
	Strategies []string `mapstructure:"strategies"`

	Progress bool   `mapstructure:"progress"`
	LogLevel string `mapstructure:"log-level"`
}

func loadConfig(cmd *cobra.Command, path string) (Config, error) {
	v := viper.New()
	v.SetDefault("pattern", defaultPattern)
	v.SetDefault("exclude", defaultExclude)
	v.SetDefault("strategies", defaultStrategies)
	v.SetDefault("progress", true)
	v.SetDefault("log-level", defaultLogLevel)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if c.Pattern == "" {
		c.Pattern = defaultPattern
	}
	return c, nil
}
