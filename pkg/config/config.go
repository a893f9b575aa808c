package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration values
type Config struct {
	PredictionAPIURL  string        `yaml:"prediction_api_url" validate:"required,url"`
	Port              string        `yaml:"port" validate:"required,numeric"`
	GinMode           string        `yaml:"gin_mode" validate:"oneof=debug release test"`
	LogLevel          string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	SessionTTL        time.Duration `yaml:"session_ttl" validate:"gt=0"`
	PredictionTimeout time.Duration `yaml:"prediction_timeout" validate:"gte=0"`
	// AllowedOrigins may call the JSON API cross-origin; "*" allows any origin without credentials
	AllowedOrigins []string `yaml:"allowed_origins" validate:"dive,required"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		PredictionAPIURL:  "http://localhost:8000",
		Port:              "8080",
		GinMode:           "release",
		LogLevel:          "info",
		SessionTTL:        30 * time.Minute,
		PredictionTimeout: 0,
	}
}

// LoadConfig builds the configuration from defaults, the YAML file named by
// CONFIG_FILE (if any) and environment variables, in that order of precedence.
func LoadConfig() (*Config, error) {
	return Load(os.Getenv("CONFIG_FILE"))
}

// Load is LoadConfig with an explicit YAML path. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.PredictionAPIURL, "PREDICTION_API_URL")
	setString(&cfg.Port, "PORT")
	setString(&cfg.GinMode, "GIN_MODE")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setList(&cfg.AllowedOrigins, "CORS_ALLOWED_ORIGINS")

	if err := setDuration(&cfg.SessionTTL, "SESSION_TTL"); err != nil {
		return err
	}
	return setDuration(&cfg.PredictionTimeout, "PREDICTION_TIMEOUT")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*dst = items
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", key, err)
	}
	*dst = d
	return nil
}

// Validate checks every field against its validate tag
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
