package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.Storage.Provider != "memory" {
		t.Fatalf("expected memory storage default, got %q", cfg.Storage.Provider)
	}
	if cfg.DefaultLocale != "en" {
		t.Fatalf("expected en default locale, got %q", cfg.DefaultLocale)
	}
}

func TestValidateRejectsUnknownStorageProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Provider = "postgres"
	if err := cfg.Validate(); !errors.Is(err, ErrStorageProviderUnknown) {
		t.Fatalf("expected ErrStorageProviderUnknown, got %v", err)
	}
}

func TestValidateRejectsUnknownTranslationProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.AITranslation = true
	cfg.Translation.DefaultProvider = "deepl"
	if err := cfg.Validate(); !errors.Is(err, ErrTranslationProviderUnknown) {
		t.Fatalf("expected ErrTranslationProviderUnknown, got %v", err)
	}
}

func TestValidateRequiresProviderAPIKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.AITranslation = true
	cfg.Translation.OpenAI.Enabled = true
	if err := cfg.Validate(); !errors.Is(err, ErrTranslationAPIKeyRequired) {
		t.Fatalf("expected ErrTranslationAPIKeyRequired, got %v", err)
	}

	cfg.Translation.OpenAI.APIKey = "sk-test"
	cfg.Translation.Anthropic.Enabled = true
	if err := cfg.Validate(); !errors.Is(err, ErrTranslationAPIKeyRequired) {
		t.Fatalf("expected ErrTranslationAPIKeyRequired for anthropic, got %v", err)
	}

	cfg.Translation.Anthropic.APIKey = "sk-ant-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateLoggingOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRejectsNegativeCacheTTL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.DefaultTTL = -1
	if err := cfg.Validate(); !errors.Is(err, ErrCacheTTLInvalid) {
		t.Fatalf("expected ErrCacheTTLInvalid, got %v", err)
	}
}
