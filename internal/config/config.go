// internal/config/config.go
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given
const DefaultPath = "config.yaml"

// Models names the backend model for each of the three roles
type Models struct {
	Machiavelli string `yaml:"machiavelli"`
	Socrates    string `yaml:"socrates"`
	Judge       string `yaml:"judge"`
}

// Prompts holds the system prompt for each role
type Prompts struct {
	Machiavelli string `yaml:"machiavelli"`
	Socrates    string `yaml:"socrates"`
	Judge       string `yaml:"judge"`
}

// Settings holds generation and output settings
type Settings struct {
	DefaultRounds int      `yaml:"default_rounds"`
	DebatesDir    string   `yaml:"debates_dir"`
	NumPredict    int      `yaml:"num_predict"`
	Temperature   *float64 `yaml:"temperature"`
	NumCtx        int      `yaml:"num_ctx"`
	Host          string   `yaml:"host,omitempty"`
}

type Config struct {
	Models   Models   `yaml:"models"`
	Prompts  Prompts  `yaml:"prompts"`
	Settings Settings `yaml:"settings"`
}

// Load reads and parses the config file at path. A missing or empty
// file is an error: the debate cannot run without persona prompts.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("config file %s is empty", path)
	}

	// Expand environment variables in config
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Models.Machiavelli == "" {
		cfg.Models.Machiavelli = "llama3:latest"
	}
	if cfg.Models.Socrates == "" {
		cfg.Models.Socrates = "qwen2.5-coder:7b"
	}
	if cfg.Models.Judge == "" {
		cfg.Models.Judge = "llama3.2:latest"
	}
	if cfg.Settings.DefaultRounds == 0 {
		cfg.Settings.DefaultRounds = 2
	}
	if cfg.Settings.DebatesDir == "" {
		cfg.Settings.DebatesDir = "debates"
	}
	if cfg.Settings.NumPredict == 0 {
		cfg.Settings.NumPredict = 350
	}
	if cfg.Settings.Temperature == nil {
		temp := 0.8
		cfg.Settings.Temperature = &temp
	}
	if cfg.Settings.NumCtx == 0 {
		cfg.Settings.NumCtx = 2048
	}
}
