// Package config loads tileable defaults from a YAML file and TILEABLE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/blacktop/go-tileable"
	"github.com/blacktop/go-tileable/pkg/termview"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they are merged
const EnvPrefix = "TILEABLE_"

// Config holds defaults that command line flags may override
type Config struct {
	Method      string `koanf:"method"`
	ShowPreview bool   `koanf:"show_preview"`
	Display     bool   `koanf:"display"`
	Protocol    string `koanf:"protocol"`
	JPEGQuality int    `koanf:"jpeg_quality"`
}

// DefaultPath returns $XDG_CONFIG_HOME/tileable/config.yaml (or the
// platform equivalent), or "" when no config dir is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tileable", "config.yaml")
}

// Load merges the YAML file at path (a missing file is not an error) with
// TILEABLE_* env vars. Env wins over the file.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	// empty values are skipped so an unset-but-exported var can't clobber the file
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
	}), nil); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set
func Default() Config {
	var cfg Config
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(c *Config) {
	if c.Method == "" {
		c.Method = tileable.Blend.String()
	}
	if c.Protocol == "" {
		c.Protocol = termview.Auto.String()
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = tileable.DefaultJPEGQuality
	}
}

// Validate reports the first field that does not parse
func (c Config) Validate() error {
	if _, err := tileable.ParseMethod(c.Method); err != nil {
		return fmt.Errorf("config method: %w", err)
	}
	if _, err := termview.ParseProtocol(c.Protocol); err != nil {
		return fmt.Errorf("config protocol: %w", err)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("config jpeg_quality %d out of range 1-100", c.JPEGQuality)
	}
	return nil
}

// MethodValue returns the parsed method. Call after Validate.
func (c Config) MethodValue() tileable.Method {
	m, _ := tileable.ParseMethod(c.Method)
	return m
}

// ProtocolValue returns the parsed protocol. Call after Validate.
func (c Config) ProtocolValue() termview.Protocol {
	p, _ := termview.ParseProtocol(c.Protocol)
	return p
}
