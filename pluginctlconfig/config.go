// Package pluginctlconfig loads and saves the pluginctl command's small
// project configuration file.
package pluginctlconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the conventional name of the pluginctl project config file,
// written to the current directory.
const FileName = ".pluginctl.yaml"

// Config is the pluginctl project configuration: where plugins are
// installed and what git reference is fetched for a dependency that
// declares none.
type Config struct {
	InstallRoot string `yaml:"install_root"`
	DefaultRef  string `yaml:"default_ref,omitempty"`
	AuthToken   string `yaml:"auth_token,omitempty"`
}

// Default returns the configuration pluginctl uses when no config file is
// present.
func Default() *Config {
	return &Config{
		InstallRoot: "plugins",
		DefaultRef:  "main",
	}
}

// Load reads and parses the config file at path. A missing file is not an
// error: Default is returned instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("pluginctlconfig: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("pluginctlconfig: parse %s: %w", path, err)
	}
	if cfg.InstallRoot == "" {
		cfg.InstallRoot = "plugins"
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("pluginctlconfig: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o640); err != nil {
		return fmt.Errorf("pluginctlconfig: write %s: %w", path, err)
	}
	return nil
}
