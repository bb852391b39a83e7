package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"provider": "openrouter",
		"openrouter": map[string]interface{}{
			"api_key":      "",
			"base_url":     "https://openrouter.ai/api/v1",
			"timeout":      120,
			"model":        "x-ai/grok-4-fast:free",
			"vision_model": "openai/gpt-4o-mini",
			"referer":      "https://easycal.local",
			"app_title":    "EasyCal",
		},
		"deepseek": map[string]interface{}{
			"api_key":  "",
			"base_url": "https://api.deepseek.com",
			"timeout":  120,
			"model":    "deepseek-chat",
		},
		"model": map[string]interface{}{
			"max_tokens":  4096,
			"temperature": 0.2,
		},
		"planner": map[string]interface{}{
			"timezone":          "Asia/Seoul",
			"tolerance_seconds": 60,
		},
		"session": map[string]interface{}{
			"save_schedule": true,
			"db_path":       "~/.easycal/schedule.db",
		},
		"reminders": map[string]interface{}{
			"enabled": true,
		},
		"ui": map[string]interface{}{
			"colored_output":   true,
			"show_token_count": false,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.easycal/config.yaml"
}
