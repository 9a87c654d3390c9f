package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"

	"github.com/Hanaasagi/promptline/internal/shell"
	"github.com/Hanaasagi/promptline/pkg/promptparser"
)

// envPrefix is prepended to the env tags of Config.
const envPrefix = "PROMPTLINE_"

type Config struct {
	Template string    `toml:"template" env:"TEMPLATE, overwrite"`
	Shell    string    `toml:"shell" env:"SHELL, overwrite"`
	Log      LogConfig `toml:"log"`
}

type LogConfig struct {
	Level string `toml:"level" env:"LOG, overwrite"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Template: promptparser.DefaultTemplate,
		Shell:    shell.Zsh.String(),
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// LoadConfigFromFile reads the TOML file at path over the defaults. A
// missing file is not an error.
func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path == "" {
		return config, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // no config file, return defaults
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	return config, nil
}

// LoadConfig reads the config file and then applies the PROMPTLINE_*
// variables found by lookuper.
func LoadConfig(ctx context.Context, path string, lookuper envconfig.Lookuper) (*Config, error) {
	config, err := LoadConfigFromFile(path)
	if err != nil {
		return nil, err
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   config,
		Lookuper: envconfig.PrefixLookuper(envPrefix, lookuper),
	}); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return config, nil
}
