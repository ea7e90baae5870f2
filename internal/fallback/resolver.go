package fallback

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/goliatone/go-cms-variants/internal/groups"
	"github.com/goliatone/go-cms-variants/internal/logging"
	"github.com/goliatone/go-cms-variants/internal/variantconfig"
	"github.com/goliatone/go-cms-variants/pkg/interfaces"
	"github.com/google/uuid"
)

// Result is the computed outcome of a fallback resolution. It is never
// persisted. UsedFallback is always a prefix of [target, ...fallback chain],
// and Confidence is 1.0 exactly when the target locale itself was served.
type Result struct {
	Content       map[string]any `json:"content"`
	UsedFallback  []string       `json:"used_fallback"`
	MissingFields []string       `json:"missing_fields"`
	Confidence    float64        `json:"confidence"`
}

// Request identifies the content variant to resolve.
type Request struct {
	EntryUID       string
	ContentTypeUID string
	TargetLocale   string
	GroupID        uuid.UUID
}

var (
	ErrGroupNotFound    = errors.New("fallback: variant group not found")
	ErrLocaleNotInGroup = errors.New("fallback: locale not found in variant group")
)

// Confidence decays by one step per fallback hop, floored at confidenceFloor.
const (
	confidenceStep  = 0.2
	confidenceFloor = 0.1
)

// GroupResolver loads the variant group governing a resolution.
type GroupResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*groups.VariantGroup, error)
}

// ConfigFinder loads the stored configs for an entry/content-type pair.
type ConfigFinder interface {
	FindByEntry(ctx context.Context, entryUID, contentTypeUID string) ([]*variantconfig.VariantConfig, error)
}

// ResolverOption configures the resolver at construction time.
type ResolverOption func(*Resolver)

// WithLogger attaches a logger used for resolution diagnostics.
func WithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver computes effective content for a target locale by walking its
// fallback chain across the stored variant configs.
type Resolver struct {
	groups  GroupResolver
	configs ConfigFinder
	logger  interfaces.Logger
}

// NewResolver constructs a fallback resolver with the required dependencies.
func NewResolver(groupResolver GroupResolver, configFinder ConfigFinder, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		groups:  groupResolver,
		configs: configFinder,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve walks the target locale's fallback chain and selects the best
// stored config. Missing data degrades to a zero-confidence empty result;
// only structurally invalid references (unknown group, locale absent from
// the group) fail.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Result, error) {
	group, err := r.groups.GetByID(ctx, req.GroupID)
	if err != nil {
		var nf *groups.NotFoundError
		if errors.As(err, &nf) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	target := strings.ToLower(strings.TrimSpace(req.TargetLocale))
	locale, ok := group.LocaleByCode(target)
	if !ok {
		return nil, ErrLocaleNotInGroup
	}

	// Candidate chain preserves fallback order without deduplication; a code
	// repeated in its own chain resolves to its first occurrence.
	allLocales := make([]string, 0, len(locale.Fallback)+1)
	allLocales = append(allLocales, target)
	allLocales = append(allLocales, locale.Fallback...)

	stored, err := r.configs.FindByEntry(ctx, req.EntryUID, req.ContentTypeUID)
	if err != nil {
		return nil, err
	}

	candidates := make([]*variantconfig.VariantConfig, 0, len(stored))
	for _, cfg := range stored {
		if indexOf(allLocales, cfg.Locale) >= 0 {
			candidates = append(candidates, cfg)
		}
	}

	logger := logging.WithResolutionContext(r.logger, req.EntryUID, req.ContentTypeUID, target)

	if len(candidates) == 0 {
		logger.Debug("no stored configs in locale family")
		return &Result{
			Content:       map[string]any{},
			UsedFallback:  []string{},
			MissingFields: []string{},
			Confidence:    0,
		}, nil
	}

	selected := selectBest(candidates, target, locale.Fallback)

	usedFallback := []string{target}
	if selected.Locale != target {
		usedFallback = allLocales[:indexOf(allLocales, selected.Locale)+1]
	}

	mostComplete := mostCompleteOf(candidates)
	missingFields := missingTopLevelFields(mostComplete.Content, selected.Content)

	confidence := 1.0
	if selected.Locale != target {
		confidence = 1.0 - float64(len(usedFallback)-1)*confidenceStep
		if confidence < confidenceFloor {
			confidence = confidenceFloor
		}
	}

	logger.Debug("resolved variant content",
		"resolved_locale", selected.Locale,
		"confidence", confidence,
	)

	return &Result{
		Content:       selected.Content,
		UsedFallback:  append([]string(nil), usedFallback...),
		MissingFields: missingFields,
		Confidence:    confidence,
	}, nil
}

// selectBest prefers an exact target match, then the candidate sitting at the
// earliest fallback-chain position, then the first remaining candidate.
func selectBest(candidates []*variantconfig.VariantConfig, target string, chain []string) *variantconfig.VariantConfig {
	for _, cfg := range candidates {
		if cfg.Locale == target {
			return cfg
		}
	}

	var best *variantconfig.VariantConfig
	bestPos := -1
	for _, cfg := range candidates {
		pos := indexOf(chain, cfg.Locale)
		if pos < 0 {
			continue
		}
		if best == nil || pos < bestPos {
			best = cfg
			bestPos = pos
		}
	}
	if best != nil {
		return best
	}

	return candidates[0]
}

// mostCompleteOf picks the candidate with the most top-level content fields,
// ties broken by first encountered.
func mostCompleteOf(candidates []*variantconfig.VariantConfig) *variantconfig.VariantConfig {
	best := candidates[0]
	for _, cfg := range candidates[1:] {
		if len(cfg.Content) > len(best.Content) {
			best = cfg
		}
	}
	return best
}

// missingTopLevelFields compares shallow keys only; nested structure
// differences are not inspected. The result is sorted for stable output.
func missingTopLevelFields(reference, selected map[string]any) []string {
	missing := make([]string, 0)
	for field := range reference {
		if _, ok := selected[field]; !ok {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return missing
}

func indexOf(list []string, value string) int {
	for i, item := range list {
		if item == value {
			return i
		}
	}
	return -1
}
