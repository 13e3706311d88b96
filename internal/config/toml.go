// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Quiz    QuizConfig    `toml:"quiz"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// QuizConfig maps quiz-related settings.
type QuizConfig struct {
	Catalog   *string `toml:"catalog"`
	Group     *string `toml:"group"`
	Lang      *string `toml:"lang"`
	RoundSize *int    `toml:"round-size"`
}

// StorageConfig maps persistence settings.
type StorageConfig struct {
	DB        *string `toml:"db"`
	Namespace *string `toml:"namespace"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Mode *string `toml:"mode"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
