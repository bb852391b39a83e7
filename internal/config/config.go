package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Provider type constants (duplicated from api package to avoid import cycle)
const (
	ProviderOpenRouter = "openrouter"
	ProviderDeepSeek   = "deepseek"
)

type Config struct {
	Provider   string           `koanf:"provider"`
	OpenRouter OpenRouterConfig `koanf:"openrouter"`
	DeepSeek   DeepSeekConfig   `koanf:"deepseek"`
	Model      ModelConfig      `koanf:"model"`
	Planner    PlannerConfig    `koanf:"planner"`
	Session    SessionConfig    `koanf:"session"`
	Reminders  RemindersConfig  `koanf:"reminders"`
	UI         UIConfig         `koanf:"ui"`
}

type OpenRouterConfig struct {
	APIKey      string `koanf:"api_key"`
	BaseURL     string `koanf:"base_url"`
	Timeout     int    `koanf:"timeout"`
	Model       string `koanf:"model"`
	VisionModel string `koanf:"vision_model"`
	Referer     string `koanf:"referer"`
	AppTitle    string `koanf:"app_title"`
}

type DeepSeekConfig struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
	Timeout int    `koanf:"timeout"`
	Model   string `koanf:"model"`
}

type ModelConfig struct {
	MaxTokens   int     `koanf:"max_tokens"`
	Temperature float64 `koanf:"temperature"`
}

type PlannerConfig struct {
	// Timezone is the named zone used for day-granularity checks and for
	// rendering the current-time context in the system prompt.
	Timezone         string `koanf:"timezone"`
	ToleranceSeconds int    `koanf:"tolerance_seconds"`
}

type SessionConfig struct {
	SaveSchedule bool   `koanf:"save_schedule"`
	DBPath       string `koanf:"db_path"`
}

type RemindersConfig struct {
	Enabled bool `koanf:"enabled"`
}

type UIConfig struct {
	ColoredOutput  bool `koanf:"colored_output"`
	ShowTokenCount bool `koanf:"show_token_count"`
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("EASYCAL_", ".", func(s string) string {
		return s
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// API keys come from the conventional environment variables.
	if apiKey := os.Getenv("OPENROUTER_API_KEY"); apiKey != "" {
		k.Set("openrouter.api_key", apiKey)
	}
	if apiKey := os.Getenv("DEEPSEEK_API_KEY"); apiKey != "" {
		k.Set("deepseek.api_key", apiKey)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Session.DBPath = expandPath(cfg.Session.DBPath)

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("OpenRouter API key is required (set OPENROUTER_API_KEY or add to config file)")
		}
	case ProviderDeepSeek:
		if c.DeepSeek.APIKey == "" {
			return fmt.Errorf("DeepSeek API key is required (set DEEPSEEK_API_KEY or add to config file)")
		}
	default:
		return fmt.Errorf("unknown provider: %s (supported: %s, %s)",
			c.Provider, ProviderOpenRouter, ProviderDeepSeek)
	}

	if c.Model.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive")
	}

	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}

	if c.Planner.ToleranceSeconds < 0 {
		return fmt.Errorf("tolerance_seconds must not be negative")
	}

	if _, err := time.LoadLocation(c.Planner.Timezone); err != nil {
		return fmt.Errorf("invalid planner timezone %q: %w", c.Planner.Timezone, err)
	}

	return nil
}

// Location resolves the configured planner timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Planner.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Tolerance returns the grace interval applied to the past/future checks.
func (c *Config) Tolerance() time.Duration {
	return time.Duration(c.Planner.ToleranceSeconds) * time.Second
}

// ProviderConfig contains provider-specific configuration for the API package.
type ProviderConfig struct {
	Type       string
	OpenRouter OpenRouterConfig
	DeepSeek   DeepSeekConfig
	Model      ModelSettings
}

// ModelSettings contains model parameters used by all providers.
type ModelSettings struct {
	MaxTokens   int
	Temperature float64
}

// GetProviderConfig returns the provider configuration for the API package.
func (c *Config) GetProviderConfig() *ProviderConfig {
	return &ProviderConfig{
		Type:       c.Provider,
		OpenRouter: c.OpenRouter,
		DeepSeek:   c.DeepSeek,
		Model: ModelSettings{
			MaxTokens:   c.Model.MaxTokens,
			Temperature: c.Model.Temperature,
		},
	}
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
