package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment overrides for deploy-time knobs.
const (
	EnvConfigPath = "TRENDHAWK_CONFIG"
	envDataDir    = "TRENDHAWK_DATA_DIR"
	envDocsDir    = "TRENDHAWK_DOCS_DIR"
	envServerAddr = "TRENDHAWK_ADDR"
	envLogLevel   = "TRENDHAWK_LOG_LEVEL"
)

// Load reads a YAML config file over the defaults and applies environment
// overrides. An empty path falls back to the EnvConfigPath variable, then
// to pure defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(envDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(envDocsDir); v != "" {
		c.DocsDir = v
	}
	if v := os.Getenv(envServerAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		c.Logging.Level = v
	}
}
