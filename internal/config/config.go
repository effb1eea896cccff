// Package config binds the simulator's run parameters through viper: a
// defaulted struct, optional file override, and PROCSIM_-prefixed
// environment variables, decoded into Config by the keys its struct tags
// name.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is every run parameter the CLI can source from flags,
// PROCSIM_-prefixed environment variables, or a YAML file, in that
// precedence order (flags bound last by cmd/procsim win).
type Config struct {
	File         string `yaml:"file" mapstructure:"file"`
	Scheduler    string `yaml:"scheduler" mapstructure:"scheduler"`
	Memory       string `yaml:"memory" mapstructure:"memory"`
	Quantum      int    `yaml:"quantum" mapstructure:"quantum"`
	WorkerBinary string `yaml:"worker_binary" mapstructure:"worker_binary"`
	Capacity     int    `yaml:"capacity" mapstructure:"capacity"`
	Summary      bool   `yaml:"summary" mapstructure:"summary"`
}

// Default returns the baseline configuration before any file or
// environment override is applied.
func Default() *Config {
	return &Config{
		Scheduler:    "SJF",
		Memory:       "infinite",
		Quantum:      1,
		WorkerBinary: "./process",
		Capacity:     2048,
		Summary:      false,
	}
}

// Load builds a Config from, in increasing precedence: defaults, an
// optional YAML file (explicit path if configFile is non-empty,
// otherwise a best-effort search of standard locations), and
// PROCSIM_-prefixed environment variables.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("procsim")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.procsim")
		v.AddConfigPath("/etc/procsim")
	}

	v.SetEnvPrefix("PROCSIM")
	v.AutomaticEnv()
	// Unmarshal only sees keys viper already knows, so each key is bound
	// to its PROCSIM_ variable explicitly.
	for _, key := range []string{"file", "scheduler", "memory", "quantum", "worker_binary", "capacity", "summary"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
