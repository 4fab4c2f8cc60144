// Package config reads the optional TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. All fields are
// optional; unset values fall back to built-in defaults.
type FileConfig struct {
	Server     ServerConfig     `toml:"server"`
	Curriculum CurriculumConfig `toml:"curriculum"`
	Evaluation EvaluationConfig `toml:"evaluation"`
}

// ServerConfig maps HTTP server settings.
type ServerConfig struct {
	Addr *string `toml:"addr"`
}

// CurriculumConfig maps curriculum catalog settings.
type CurriculumConfig struct {
	Dir *string `toml:"dir"`
}

// EvaluationConfig maps explanation-evaluation settings.
type EvaluationConfig struct {
	MaxTokens      *int     `toml:"max-tokens"`
	Temperature    *float64 `toml:"temperature"`
	TimeoutSeconds *int     `toml:"timeout-seconds"`
}

// Settings is the resolved runtime configuration.
type Settings struct {
	Addr          string
	CurriculumDir string
	EvalMaxTokens int
	EvalTemp      float64
	EvalTimeout   time.Duration
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Addr:          ":8080",
		CurriculumDir: ".",
		EvalMaxTokens: 1024,
		EvalTemp:      0.3,
		EvalTimeout:   30 * time.Second,
	}
}

// Load reads a TOML config from path and resolves it against the
// defaults. A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("failed to stat config: %w", err)
	}

	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return s, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Server.Addr != nil {
		s.Addr = *cfg.Server.Addr
	}
	if cfg.Curriculum.Dir != nil {
		s.CurriculumDir = *cfg.Curriculum.Dir
	}
	if cfg.Evaluation.MaxTokens != nil {
		s.EvalMaxTokens = *cfg.Evaluation.MaxTokens
	}
	if cfg.Evaluation.Temperature != nil {
		s.EvalTemp = *cfg.Evaluation.Temperature
	}
	if cfg.Evaluation.TimeoutSeconds != nil {
		s.EvalTimeout = time.Duration(*cfg.Evaluation.TimeoutSeconds) * time.Second
	}
	return s, nil
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(xdgConfigHome(), "praktik", "config.toml")
}

func xdgConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}
