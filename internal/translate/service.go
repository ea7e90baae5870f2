package translate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-cms-variants/internal/logging"
	"github.com/goliatone/go-cms-variants/pkg/interfaces"
)

const aiConfidence = 0.9

// Service exposes the translation gateway operations.
type Service interface {
	Translate(ctx context.Context, req Request) (*Response, error)
	TranslateBatch(ctx context.Context, reqs []Request) []BatchResult
	DetectLanguage(ctx context.Context, text string) string
}

type service struct {
	registry *Registry
	detector interfaces.LanguageDetector
	logger   interfaces.Logger
	now      func() time.Time
}

// Option customizes the translation service.
type Option func(*service)

// WithLogger overrides the no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDetector installs a model-backed language detector tried before the
// character-range heuristic.
func WithDetector(detector interfaces.LanguageDetector) Option {
	return func(s *service) {
		s.detector = detector
	}
}

// WithNow overrides the clock used for response timestamps.
func WithNow(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the translation gateway around a provider registry.
// Panics when registry is nil.
func NewService(registry *Registry, opts ...Option) Service {
	if registry == nil {
		panic(ErrRegistryRequired)
	}

	svc := &service{
		registry: registry,
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *service) Translate(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if !req.UseAI {
		return s.placeholderResponse(req, MethodManual, ""), nil
	}

	provider, err := s.registry.Get(req.Provider)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		s.logger.Debug("no translation provider configured, applying placeholder",
			"source_locale", req.SourceLocale,
			"target_locale", req.TargetLocale)
		return s.placeholderResponse(req, MethodFallback, ""), nil
	}

	leaves := flattenLeaves(req.Content)
	if len(leaves) == 0 {
		return &Response{
			TranslatedContent: reinjectLeaves(req.Content, nil),
			Confidence:        aiConfidence,
			Method:            MethodAI,
			Provider:          provider.Name(),
			Timestamp:         s.now().UTC(),
		}, nil
	}

	payload := strings.Join(leaves, leafSeparator)
	translated, err := provider.Translate(ctx, payload, req.SourceLocale, req.TargetLocale)
	if err != nil {
		s.logger.Error("provider translation failed",
			"provider", provider.Name(),
			"source_locale", req.SourceLocale,
			"target_locale", req.TargetLocale,
			"error", err)
		return nil, fmt.Errorf("%w: %v", ErrTranslationFailed, err)
	}

	segments := splitTranslated(translated)
	if len(segments) != len(leaves) {
		s.logger.Warn("provider returned mismatched segment count, keeping originals past the end",
			"provider", provider.Name(),
			"expected", len(leaves),
			"got", len(segments))
	}

	return &Response{
		TranslatedContent: reinjectLeaves(req.Content, segments),
		Confidence:        aiConfidence,
		Method:            MethodAI,
		Provider:          provider.Name(),
		Timestamp:         s.now().UTC(),
	}, nil
}

// TranslateBatch translates each request independently and reports per item
// outcomes; one failed item never aborts the rest.
func (s *service) TranslateBatch(ctx context.Context, reqs []Request) []BatchResult {
	results := make([]BatchResult, len(reqs))
	for i, req := range reqs {
		resp, err := s.Translate(ctx, req)
		if err != nil {
			results[i] = BatchResult{Err: err}
			continue
		}
		results[i] = BatchResult{Response: resp}
	}
	return results
}

// DetectLanguage identifies the locale of a text sample. A configured
// detector is asked first; on error or absence the character-range heuristic
// answers, defaulting to "en".
func (s *service) DetectLanguage(ctx context.Context, text string) string {
	if s.detector != nil {
		code, err := s.detector.DetectLanguage(ctx, text)
		if err == nil && code != "" {
			return code
		}
		if err != nil {
			s.logger.Debug("language detector failed, using heuristic", "error", err)
		}
	}
	return detectLocale(text)
}

func (s *service) placeholderResponse(req Request, method Method, provider string) *Response {
	return &Response{
		TranslatedContent: placeholderContent(req.Content),
		Confidence:        1.0,
		Method:            method,
		Provider:          provider,
		Timestamp:         s.now().UTC(),
	}
}

// placeholderContent wraps every string leaf so editors can spot untranslated
// fields at a glance.
func placeholderContent(content map[string]any) map[string]any {
	out := make(map[string]any, len(content))
	for key, value := range content {
		switch v := value.(type) {
		case string:
			out[key] = fmt.Sprintf("[TRANSLATE: %s]", v)
		case map[string]any:
			out[key] = placeholderContent(v)
		default:
			out[key] = v
		}
	}
	return out
}
