// ============================================================================
// chronos - Civil time and timezone library
// ============================================================================
//
// Package:     config
// Description: Typed configuration for the chronos CLI and zone store
// Created:     2025-12-14
// License:     MIT
// ============================================================================

package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/msto63/chronos/pkg/errors"
	"github.com/msto63/chronos/pkg/format"
	"github.com/msto63/chronos/pkg/logging"
	"github.com/msto63/chronos/pkg/zone"
)

// EnvConfig names the environment variable holding the config file path.
const EnvConfig = "CHRONOS_CONFIG"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Store   StoreConfig   `toml:"store" yaml:"store"`
	Zones   []ZoneConfig  `toml:"zones" yaml:"zones"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel    string `toml:"log_level" yaml:"log_level"`
	LogFormat   string `toml:"log_format" yaml:"log_format"`
	DefaultZone string `toml:"default_zone" yaml:"default_zone"`
	Precision   string `toml:"precision" yaml:"precision"`
	UseZ        bool   `toml:"use_z" yaml:"use_z"`
}

// StoreConfig holds zone store settings
type StoreConfig struct {
	Path        string   `toml:"path" yaml:"path"`
	BusyTimeout Duration `toml:"busy_timeout" yaml:"busy_timeout"`

	// Resolved zones are cached for CacheTTL, at most CacheSize of them.
	CacheTTL  Duration `toml:"cache_ttl" yaml:"cache_ttl"`
	CacheSize int      `toml:"cache_size" yaml:"cache_size"`
}

// ZoneConfig names a POSIX TZ rule set
type ZoneConfig struct {
	Name  string `toml:"name" yaml:"name"`
	POSIX string `toml:"posix" yaml:"posix"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file. The format follows
// the file extension; anything but .yaml and .yml is read as TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithHint(errors.Wrapf(errors.ErrNotFound, "config file %s", path),
				"set "+EnvConfig+" or create configs/chronos.toml")
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	cfg, err := LoadFromString(string(content), detectFormat(path))
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	logging.Named("config").Debug("configuration loaded",
		zap.String(logging.FieldPath, path),
		zap.Int(logging.FieldCount, len(cfg.Zones)))
	return cfg, nil
}

// LoadFromString parses configuration content in the given format, applies
// defaults and validates the result.
func LoadFromString(content string, f Format) (*Config, error) {
	var cfg Config
	switch f {
	case FormatTOML:
		if _, err := toml.Decode(content, &cfg); err != nil {
			return nil, errors.Wrap(err, "TOML parse error")
		}
	case FormatYAML:
		if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
			return nil, errors.Wrap(err, "YAML parse error")
		}
	default:
		return nil, errors.Newf("unsupported format: %s", f)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from the CHRONOS_CONFIG environment
// variable, falling back to the default locations. Without any file it
// returns the defaults.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		for _, p := range defaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func defaultPaths() []string {
	paths := []string{
		"./configs/chronos.toml",
		"./chronos.toml",
		"./chronos.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "chronos", "config.toml"))
	}
	return paths
}

// detectFormat determines the configuration format from file extension
func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}
	if c.General.DefaultZone == "" {
		c.General.DefaultZone = "UTC"
	}
	if c.General.Precision == "" {
		c.General.Precision = format.AutoSi.String()
	}
	if c.Store.Path == "" {
		c.Store.Path = "./data/zones.db"
	}
	if c.Store.BusyTimeout.Duration == 0 {
		c.Store.BusyTimeout.Duration = 5 * time.Second
	}
	if c.Store.CacheTTL.Duration == 0 {
		c.Store.CacheTTL.Duration = 5 * time.Minute
	}
	if c.Store.CacheSize == 0 {
		c.Store.CacheSize = 256
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Store.Path = os.ExpandEnv(c.Store.Path)
}

// Validate checks log level, precision and every zone entry.
func (c *Config) Validate() error {
	switch strings.ToLower(c.General.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.Wrapf(ErrInvalid, "log_level %q", c.General.LogLevel)
	}
	if _, err := c.Precision(); err != nil {
		return errors.Wrapf(ErrInvalid, "precision: %v", err)
	}
	if c.Store.CacheTTL.Duration < 0 || c.Store.CacheSize < 0 {
		return errors.Wrap(ErrInvalid, "store cache settings must not be negative")
	}

	seen := make(map[string]bool, len(c.Zones))
	for i, z := range c.Zones {
		if z.Name == "" {
			return errors.Wrapf(ErrInvalid, "zones[%d] has no name", i)
		}
		if seen[z.Name] {
			return errors.Wrapf(ErrInvalid, "zone %q defined twice", z.Name)
		}
		seen[z.Name] = true
		if _, err := zone.ParsePOSIX(z.POSIX); err != nil {
			return errors.Wrapf(ErrInvalid, "zone %q: %v", z.Name, err)
		}
	}
	return nil
}

// Precision returns the configured RFC 3339 fraction precision.
func (c *Config) Precision() (format.Precision, error) {
	return format.ParsePrecision(c.General.Precision)
}

// Provider returns the rule set configured under name.
func (c *Config) Provider(name string) (zone.Rules, bool) {
	for _, z := range c.Zones {
		if z.Name == name {
			r, err := zone.ParsePOSIX(z.POSIX)
			return r, err == nil
		}
	}
	return zone.Rules{}, false
}

// Providers returns every configured zone keyed by name.
func (c *Config) Providers() (map[string]zone.Provider, error) {
	out := make(map[string]zone.Provider, len(c.Zones))
	for _, z := range c.Zones {
		r, err := zone.ParsePOSIX(z.POSIX)
		if err != nil {
			return nil, errors.Wrapf(err, "zone %q", z.Name)
		}
		out[z.Name] = r
	}
	return out, nil
}

// ZoneNames returns the configured zone names in sorted order.
func (c *Config) ZoneNames() []string {
	names := make([]string, 0, len(c.Zones))
	for _, z := range c.Zones {
		names = append(names, z.Name)
	}
	sort.Strings(names)
	return names
}

// LoggerConfig derives the logger settings for service.
func (c *Config) LoggerConfig(service string) logging.LoggerConfig {
	lc := logging.DefaultLoggerConfig(service)
	lc.Level = c.General.LogLevel
	lc.Format = c.General.LogFormat
	return lc
}
