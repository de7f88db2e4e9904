package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Transport modes.
const (
	ModeStdio = "stdio"
	ModeHTTP  = "http"
)

// SupportedLocales lists the locales with translated validation messages.
var SupportedLocales = []string{"en", "es"}

var (
	ErrInvalidMode   = errors.New("invalid transport mode")
	ErrInvalidLocale = errors.New("unsupported locale")
)

// Config defines server configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Auth      AuthConfig      `yaml:"auth"`
	Transport TransportConfig `yaml:"transport"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Locale    string          `yaml:"locale" env:"RECIPEBOX_LOCALE"`
}

// StoreConfig locates the document store. An empty path leaves the store
// unconfigured.
type StoreConfig struct {
	Path  string `yaml:"path" env:"RECIPEBOX_STORE_PATH"`
	Watch bool   `yaml:"watch" env:"RECIPEBOX_STORE_WATCH"`
}

type AuthConfig struct {
	Token string `yaml:"token" env:"RECIPEBOX_AUTH_TOKEN"`
}

type TransportConfig struct {
	Mode string `yaml:"mode" env:"RECIPEBOX_TRANSPORT_MODE"`
}

type ServerConfig struct {
	Host         string `yaml:"host" env:"RECIPEBOX_SERVER_HOST"`
	Port         int    `yaml:"port" env:"RECIPEBOX_SERVER_PORT"`
	RequireToken bool   `yaml:"require_token" env:"RECIPEBOX_SERVER_REQUIRE_TOKEN"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"RECIPEBOX_LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Path: "recipebox.db",
		},
		Transport: TransportConfig{
			Mode: ModeStdio,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
		},
		Locale: "en",
	}
}

// Load reads configuration from defaults, an optional YAML file, then
// environment variables. path overrides RECIPEBOX_CONFIG_PATH when set.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("RECIPEBOX_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the transport mode and locale.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case ModeStdio, ModeHTTP:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Transport.Mode)
	}
	if !slices.Contains(SupportedLocales, c.Locale) {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, c.Locale)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
