package variants

import "github.com/goliatone/go-cms-variants/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown     = runtimeconfig.ErrStorageProviderUnknown
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
	ErrTranslationProviderUnknown = runtimeconfig.ErrTranslationProviderUnknown
	ErrTranslationAPIKeyRequired  = runtimeconfig.ErrTranslationAPIKeyRequired
	ErrCacheTTLInvalid            = runtimeconfig.ErrCacheTTLInvalid
)

type (
	Config                  = runtimeconfig.Config
	StorageConfig           = runtimeconfig.StorageConfig
	CacheConfig             = runtimeconfig.CacheConfig
	TranslationConfig       = runtimeconfig.TranslationConfig
	OpenAIProviderConfig    = runtimeconfig.OpenAIProviderConfig
	AnthropicProviderConfig = runtimeconfig.AnthropicProviderConfig
	Features                = runtimeconfig.Features
	LoggingConfig           = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
