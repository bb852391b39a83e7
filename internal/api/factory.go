package api

import (
	"fmt"

	"github.com/easycal/easycal/internal/config"
)

// NewProvider creates a Provider based on the configuration.
func NewProvider(cfg *config.ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case config.ProviderOpenRouter:
		return NewOpenRouterProvider(cfg.OpenRouter)

	case config.ProviderDeepSeek:
		return NewDeepSeekProvider(cfg.DeepSeek)

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s)",
			cfg.Type, config.ProviderOpenRouter, config.ProviderDeepSeek)
	}
}
