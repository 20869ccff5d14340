// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Attack AttackConfig `toml:"attack"`
	Log    LogConfig    `toml:"log"`
}

// AttackConfig maps attack-related settings. Nil means unset.
type AttackConfig struct {
	Algorithm       *string `toml:"algorithm"`
	Charset         *string `toml:"charset"`
	Variations      *bool   `toml:"variations"`
	Patterns        *bool   `toml:"patterns"`
	Advanced        *bool   `toml:"advanced"`
	Markov          *bool   `toml:"markov"`
	KeyboardWalks   *bool   `toml:"keyboard-walks"`
	MaxLength       *int    `toml:"max-length"`
	YearFrom        *int    `toml:"year-from"`
	YearTo          *int    `toml:"year-to"`
	MaxPositions    *int    `toml:"max-positions"`
	MarkovLimit     *int    `toml:"markov-limit"`
	MarkovMinLength *int    `toml:"markov-min-length"`
	MarkovMaxLength *int    `toml:"markov-max-length"`
	MarkovBranching *int    `toml:"markov-branching"`
	WalkLengths     []int   `toml:"walk-lengths"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
	Redact *bool   `toml:"redact"`
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
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
