package translate

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Method identifies how a translation was produced.
type Method string

const (
	// MethodManual marks placeholder transforms awaiting human translation.
	MethodManual Method = "manual"
	// MethodAI marks provider-backed machine translations.
	MethodAI Method = "ai"
	// MethodFallback marks placeholder transforms applied because AI was
	// requested but no provider was available.
	MethodFallback Method = "fallback"
)

// Request captures a single translation invocation. Content is a recursive
// tree of string leaves; non-string values pass through untouched.
type Request struct {
	SourceLocale string
	TargetLocale string
	Content      map[string]any
	UseAI        bool
	Provider     string
}

// Validate ensures the request carries the required locales and content.
func (r Request) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(r.SourceLocale) == "" {
		errs["source_locale"] = validation.NewError("variants.translate.source_required", "source_locale is required")
	}
	if strings.TrimSpace(r.TargetLocale) == "" {
		errs["target_locale"] = validation.NewError("variants.translate.target_required", "target_locale is required")
	}
	if r.Content == nil {
		errs["content"] = validation.NewError("variants.translate.content_required", "content is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Response carries the translated content tree and provenance metadata.
type Response struct {
	TranslatedContent map[string]any `json:"translated_content"`
	Confidence        float64        `json:"confidence"`
	Method            Method         `json:"method"`
	Provider          string         `json:"provider,omitempty"`
	Timestamp         time.Time      `json:"timestamp"`
}

// BatchResult reports the outcome of one item in a batch translation. Either
// Response or Err is set, never both.
type BatchResult struct {
	Response *Response
	Err      error
}

var (
	ErrRegistryRequired  = errors.New("translate: provider registry required")
	ErrProviderUnknown   = errors.New("translate: unknown provider")
	ErrTranslationFailed = errors.New("translate: translation failed")
)
