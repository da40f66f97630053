package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	GraphFile   string `mapstructure:"graph_file"`
	CoreFile    string `mapstructure:"core_file"`
	Vehicle     string `mapstructure:"vehicle"`
	MaxTurnCost int    `mapstructure:"max_turn_cost"`
	Workers     int    `mapstructure:"workers"`
	LogLevel    string `mapstructure:"log_level"`
}

func setDefaults() {
	viper.SetDefault("graph_file", "./data/original.graph")
	viper.SetDefault("core_file", "./data/core_edges.txt")
	viper.SetDefault("vehicle", "car")
	viper.SetDefault("max_turn_cost", 3)
	viper.SetDefault("workers", 4)
	viper.SetDefault("log_level", "info")
}

// ReadConfig. reads config.yaml from configPath (./data/ when empty). a missing config file is not an error,
// defaults and NAVIGATORX_* environment variables are used instead.
func ReadConfig(configPath string) error {
	if configPath == "" {
		configPath = "./data/"
	}
	setDefaults()
	viper.SetConfigName("config")
	viper.AddConfigPath(configPath)
	viper.SetEnvPrefix("navigatorx")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, WrapErrorf(err, ErrConfiguration, "unable to decode config")
	}
	if cfg.Workers < 1 {
		return cfg, WrapErrorf(nil, ErrConfiguration, "workers must be positive, got %d", cfg.Workers)
	}
	if cfg.Vehicle == "" {
		return cfg, WrapErrorf(nil, ErrConfiguration, "vehicle must be set")
	}
	return cfg, nil
}
