package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HomePath     string
	DBPath       string
	ContentPath  string
	ProviderPath string

	// Overrides loaded from config.yml, all optional.
	Theme    string `yaml:"theme"`
	MockMode bool   `yaml:"mock_mode"`
}

func New(homePath string) (Config, error) {
	if homePath == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		homePath = filepath.Join(dir, ".flo8")
	}
	cfg := Config{
		HomePath:     homePath,
		DBPath:       filepath.Join(homePath, "flo8.db"),
		ContentPath:  filepath.Join(homePath, "content"),
		ProviderPath: homePath,
	}
	if err := cfg.loadFile(filepath.Join(homePath, "config.yml")); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
