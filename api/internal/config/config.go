package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port           string `mapstructure:"port"`
	GinMode        string `mapstructure:"gin_mode"` // debug | release | test
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
	MaxImageSide   int    `mapstructure:"max_image_side"`
	LLMName        string `mapstructure:"llm_name"` // gemini | gpt

	GeminiAPIKey         string `mapstructure:"gemini_api_key"`
	GeminiModel          string `mapstructure:"gemini_model"`
	GeminiThinkingBudget int32  `mapstructure:"gemini_thinking_budget"`

	OpenAIAPIKey          string `mapstructure:"openai_api_key"`
	OpenAIModel           string `mapstructure:"openai_model"`
	OpenAIReasoningEffort string `mapstructure:"openai_reasoning_effort"`

	TelegramBotToken string `mapstructure:"telegram_bot_token"`
	WebhookURL       string `mapstructure:"webhook_url"`
}

// Load reads .env (if present), then an optional YAML file named by CONFIG_FILE,
// then the environment. Environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("max_upload_bytes", 16*1024*1024)
	v.SetDefault("max_image_side", 1024)
	v.SetDefault("llm_name", "gemini")

	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("gemini_thinking_budget", 2048)

	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_model", "o4-mini")
	v.SetDefault("openai_reasoning_effort", "medium")

	v.SetDefault("telegram_bot_token", "")
	v.SetDefault("webhook_url", "")
}

func (c *Config) Validate() error {
	switch c.LLMName {
	case "gemini", "gpt", "openai":
	default:
		return fmt.Errorf("config: unknown LLM_NAME %q; use 'gemini' or 'gpt'", c.LLMName)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: unknown GIN_MODE %q", c.GinMode)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.MaxImageSide <= 0 {
		return fmt.Errorf("config: MAX_IMAGE_SIDE must be positive, got %d", c.MaxImageSide)
	}
	if c.GeminiThinkingBudget < 0 {
		return fmt.Errorf("config: GEMINI_THINKING_BUDGET must not be negative, got %d", c.GeminiThinkingBudget)
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// APIKey returns the credential of the selected provider.
func (c *Config) APIKey() string {
	if c.LLMName == "gemini" {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}
