package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStorageProviderUnknown = errors.New("variants config: storage provider is invalid")
var ErrLoggingProviderRequired = errors.New("variants config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("variants config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("variants config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("variants config: logging format is invalid")
var ErrTranslationProviderUnknown = errors.New("variants config: translation provider is invalid")
var ErrTranslationAPIKeyRequired = errors.New("variants config: translation provider requires an api key")
var ErrCacheTTLInvalid = errors.New("variants config: cache ttl must be zero or positive")

// Config aggregates feature flags and adapter bindings for the variants
// module. A single Config value configures the whole runtime; hosts build one
// from DefaultConfig and pass it to the module constructor.
type Config struct {
	Enabled       bool
	DefaultLocale string
	Storage       StorageConfig
	Cache         CacheConfig
	Translation   TranslationConfig
	Features      Features
	Logging       LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures repository cache behaviour.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// TranslationConfig wires external translation providers.
type TranslationConfig struct {
	DefaultProvider string
	OpenAI          OpenAIProviderConfig
	Anthropic       AnthropicProviderConfig
}

// OpenAIProviderConfig captures OpenAI chat completion settings.
type OpenAIProviderConfig struct {
	Enabled     bool
	APIKey      string
	Model       string
	Temperature float64
	MaxRetries  uint
}

// AnthropicProviderConfig captures Anthropic messages API settings.
type AnthropicProviderConfig struct {
	Enabled     bool
	APIKey      string
	Model       string
	MaxTokens   int64
	Temperature float64
	MaxRetries  uint
}

// Features toggles module functionality.
type Features struct {
	AITranslation bool
	Logger        bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		DefaultLocale: "en",
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Translation: TranslationConfig{},
		Features:    Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch normalize(cfg.Storage.Provider) {
	case "", "memory", "bun":
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Features.AITranslation {
		if provider := normalize(cfg.Translation.DefaultProvider); provider != "" && !isSupportedTranslationProvider(provider) {
			return fmt.Errorf("%w: %s", ErrTranslationProviderUnknown, provider)
		}
		if cfg.Translation.OpenAI.Enabled && strings.TrimSpace(cfg.Translation.OpenAI.APIKey) == "" {
			return fmt.Errorf("%w: openai", ErrTranslationAPIKeyRequired)
		}
		if cfg.Translation.Anthropic.Enabled && strings.TrimSpace(cfg.Translation.Anthropic.APIKey) == "" {
			return fmt.Errorf("%w: anthropic", ErrTranslationAPIKeyRequired)
		}
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedLoggingProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedTranslationProvider(provider string) bool {
	switch provider {
	case "openai", "anthropic":
		return true
	default:
		return false
	}
}

func isSupportedLoggingProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
