package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultPath = "./config.yaml"

// Load reads configuration from the file named by CONFIG_PATH (default
// ./config.yaml) and the environment. ENV overrides YAML, which overrides
// env-default tags. A missing default file is not an error.
func Load() (*Config, error) {
	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || path == "" {
		return LoadFrom(defaultPath, false)
	}
	return LoadFrom(path, true)
}

// LoadFrom loads configuration from path. When required is false and the
// file does not exist, only ENV and defaults are used.
func LoadFrom(path string, required bool) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case required || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
