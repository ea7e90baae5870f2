package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-cms-variants/pkg/interfaces"
)

const (
	rootModule      = "variants"
	groupsModule    = "variants.groups"
	configsModule   = "variants.configs"
	fallbackModule  = "variants.fallback"
	translateModule = "variants.translate"
)

const (
	fieldEntryUID     = "entry_uid"
	fieldContentType  = "content_type_uid"
	fieldTargetLocale = "locale"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// GroupsLogger returns the logger namespace reserved for the group registry.
func GroupsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, groupsModule)
}

// ConfigsLogger returns the logger namespace reserved for the variant config store.
func ConfigsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, configsModule)
}

// FallbackLogger returns the logger namespace reserved for fallback resolution.
func FallbackLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, fallbackModule)
}

// TranslateLogger returns the logger namespace reserved for the translation gateway.
func TranslateLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, translateModule)
}

// WithResolutionContext enriches the provided logger with the identifiers of a
// fallback resolution call. Empty values are ignored.
func WithResolutionContext(logger interfaces.Logger, entryUID, contentTypeUID, locale string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(entryUID); trimmed != "" {
		fields[fieldEntryUID] = trimmed
	}
	if trimmed := strings.TrimSpace(contentTypeUID); trimmed != "" {
		fields[fieldContentType] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldTargetLocale] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
