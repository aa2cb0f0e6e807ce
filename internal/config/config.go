// Package config loads the dinebot application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/cognicore/dinebot/pkg/dinebot/internalerr"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DINEBOT_"

// Config is the application configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
	Engine  EngineConfig  `koanf:"engine"`
	Data    DataConfig    `koanf:"data"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// EngineConfig holds matching thresholds. Zero means the built-in default.
type EngineConfig struct {
	SimilarityThreshold float64 `koanf:"similarity_threshold"`
	VocabularyThreshold float64 `koanf:"vocabulary_threshold"`
}

// DataConfig points at data files. Empty paths use the embedded defaults;
// a DBPath makes the SQLite catalog the menu source.
type DataConfig struct {
	MenuPath       string `koanf:"menu_path"`
	RestaurantPath string `koanf:"restaurant_path"`
	LexiconPath    string `koanf:"lexicon_path"`
	DictPath       string `koanf:"dict_path"`
	StoplistPath   string `koanf:"stoplist_path"`
	DBPath         string `koanf:"db_path"`
}

// Load reads configPath (skipped when empty) and applies DINEBOT_*
// environment overrides.
//
// Environment variables map to keys by splitting on the first underscore
// after the prefix:
//
//	DINEBOT_SERVER_PORT            -> server.port
//	DINEBOT_ENGINE_SIMILARITY_THRESHOLD -> engine.similarity_threshold
func Load(configPath string) (*Config, error) {
	var content []byte
	if configPath != "" {
		var err error
		content, err = os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return load(content)
}

func load(content []byte) (*Config, error) {
	k := koanf.New(".")

	if len(content) > 0 {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: parse config: %v", internalerr.ErrInvalidConfig, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: unmarshal config: %v", internalerr.ErrInvalidConfig, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps DINEBOT_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", internalerr.ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: server.shutdown_timeout must not be negative", internalerr.ErrInvalidConfig)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: logging.format %q (want json or console)", internalerr.ErrInvalidConfig, c.Logging.Format)
	}
	for name, v := range map[string]float64{
		"engine.similarity_threshold": c.Engine.SimilarityThreshold,
		"engine.vocabulary_threshold": c.Engine.VocabularyThreshold,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s %v not in [0,1]", internalerr.ErrInvalidConfig, name, v)
		}
	}
	return nil
}

// Addr returns host:port for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
