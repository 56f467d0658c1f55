package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// ErrDefaultMissing is returned when neither the requested file nor
// DefaultPath exists.
var ErrDefaultMissing = errors.New("default config.yml cannot be found")

// Logger receives the fallback warning.
type Logger interface {
	Warn(format string, a ...any)
}

// Load reads the configuration at path. When path does not exist Load warns
// and falls back to DefaultPath; when that is missing too it returns
// ErrDefaultMissing. Parse errors are returned as-is.
func Load(path string, log Logger) (*Config, error) {
	cfg, err := LoadFile(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if filepath.Clean(path) == filepath.Clean(DefaultPath) {
		return nil, ErrDefaultMissing
	}

	log.Warn("%s not found, loading default", path)
	cfg, err = LoadFile(DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrDefaultMissing
	}
	return cfg, err
}

// LoadFile reads and parses a single configuration file. The format is
// chosen by extension: .toml and .json are recognised, anything else is
// parsed as YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse TOML config %q: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse JSON config %q: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse YAML config %q: %w", path, err)
		}
	}

	cfg.Path = path
	return &cfg, nil
}
