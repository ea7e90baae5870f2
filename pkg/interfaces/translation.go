package interfaces

import "context"

// TranslationProvider is the capability contract for external translation
// backends. Implementations receive flattened text and are expected to return
// the translated text preserving any separator markers verbatim.
type TranslationProvider interface {
	// Name identifies the provider in responses and configuration.
	Name() string
	// Translate converts text between the supplied locales.
	Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error)
}

// LanguageDetector is an optional capability for identifying the language of
// a text sample. Implementations return an ISO 639-1 code such as "en".
type LanguageDetector interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
}
