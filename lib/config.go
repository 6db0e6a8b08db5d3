package lib

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ScanConfig contains the directories to catalog.
type ScanConfig struct {
	Roots []string `toml:"roots"`
}

// ReportConfig contains output configuration.
type ReportConfig struct {
	Output string `toml:"output"`
}

// CacheConfig contains probe cache configuration.
type CacheConfig struct {
	Disabled bool `toml:"disabled"`
}

// Config is the optional TOML config file. Command-line values take
// precedence over everything in here.
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Report ReportConfig `toml:"report"`
	Cache  CacheConfig  `toml:"cache"`
}

// LoadConfig reads and decodes a TOML config file. Unknown keys are
// rejected so typos surface instead of silently doing nothing.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return &cfg, nil
}
