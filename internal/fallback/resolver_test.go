package fallback

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/goliatone/go-cms-variants/internal/groups"
	"github.com/goliatone/go-cms-variants/internal/variantconfig"
	"github.com/google/uuid"
)

func testGroup(t *testing.T, repo groups.GroupRepository) *groups.VariantGroup {
	t.Helper()

	group := &groups.VariantGroup{
		ID:   uuid.New(),
		Name: "indian-languages",
		Locales: []groups.Locale{
			{Code: "en", Name: "English", IsDefault: true},
			{Code: "hi", Name: "Hindi", Fallback: []string{"en"}},
			{Code: "mr", Name: "Marathi", Fallback: []string{"hi", "en"}},
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	created, err := repo.Create(context.Background(), group)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	return created
}

func storeConfig(t *testing.T, repo variantconfig.ConfigRepository, groupID uuid.UUID, locale string, chain []string, content map[string]any) {
	t.Helper()

	_, err := repo.Create(context.Background(), &variantconfig.VariantConfig{
		ID:             uuid.New(),
		GroupID:        groupID,
		EntryUID:       "entry1",
		ContentTypeUID: "blog_post",
		Locale:         locale,
		VariantParam:   variantconfig.Param(locale, chain),
		Content:        content,
		FallbackChain:  chain,
		LastModified:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("store config for %s: %v", locale, err)
	}
}

func newFixture(t *testing.T) (*Resolver, *groups.VariantGroup, variantconfig.ConfigRepository) {
	t.Helper()

	groupRepo := groups.NewMemoryRepository()
	configRepo := variantconfig.NewMemoryRepository()
	group := testGroup(t, groupRepo)
	return NewResolver(groupRepo, configRepo), group, configRepo
}

func resolve(t *testing.T, r *Resolver, groupID uuid.UUID, target string) *Result {
	t.Helper()

	result, err := r.Resolve(context.Background(), Request{
		EntryUID:       "entry1",
		ContentTypeUID: "blog_post",
		TargetLocale:   target,
		GroupID:        groupID,
	})
	if err != nil {
		t.Fatalf("Resolve(%s) returned error: %v", target, err)
	}
	return result
}

func TestResolveExactMatch(t *testing.T) {
	resolver, group, configs := newFixture(t)

	content := map[string]any{"title": "नमस्कार", "body": "मजकूर"}
	storeConfig(t, configs, group.ID, "mr", []string{"hi", "en"}, content)

	result := resolve(t, resolver, group.ID, "mr")

	if !reflect.DeepEqual(result.Content, content) {
		t.Fatalf("expected verbatim content, got %v", result.Content)
	}
	if !reflect.DeepEqual(result.UsedFallback, []string{"mr"}) {
		t.Fatalf("expected used fallback [mr], got %v", result.UsedFallback)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", result.Confidence)
	}
	if len(result.MissingFields) != 0 {
		t.Fatalf("expected no missing fields, got %v", result.MissingFields)
	}
}

func TestResolveNoConfigsYieldsZeroConfidence(t *testing.T) {
	resolver, group, _ := newFixture(t)

	result := resolve(t, resolver, group.ID, "mr")

	if result.Confidence != 0 {
		t.Fatalf("expected confidence 0, got %v", result.Confidence)
	}
	if result.Content == nil || len(result.Content) != 0 {
		t.Fatalf("expected empty content map, got %v", result.Content)
	}
	if result.UsedFallback == nil || len(result.UsedFallback) != 0 {
		t.Fatalf("expected empty used fallback, got %v", result.UsedFallback)
	}
	if result.MissingFields == nil || len(result.MissingFields) != 0 {
		t.Fatalf("expected empty missing fields, got %v", result.MissingFields)
	}
}

func TestResolveWalksFullChain(t *testing.T) {
	resolver, group, configs := newFixture(t)

	// Only the end of the mr -> hi -> en chain holds content.
	storeConfig(t, configs, group.ID, "en", nil, map[string]any{"title": "Hello"})

	result := resolve(t, resolver, group.ID, "mr")

	if !reflect.DeepEqual(result.UsedFallback, []string{"mr", "hi", "en"}) {
		t.Fatalf("expected full chain walk, got %v", result.UsedFallback)
	}
	// Two fallback hops from the target.
	if result.Confidence != 1.0-2*0.2 {
		t.Fatalf("expected confidence 0.6, got %v", result.Confidence)
	}
	if result.Content["title"] != "Hello" {
		t.Fatalf("unexpected content: %v", result.Content)
	}
}

func TestResolveSingleHopConfidence(t *testing.T) {
	resolver, group, configs := newFixture(t)

	storeConfig(t, configs, group.ID, "en", nil, map[string]any{"title": "Hello"})

	result := resolve(t, resolver, group.ID, "hi")

	if !reflect.DeepEqual(result.UsedFallback, []string{"hi", "en"}) {
		t.Fatalf("expected [hi en], got %v", result.UsedFallback)
	}
	if result.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %v", result.Confidence)
	}
}

func TestResolvePrefersEarliestChainPosition(t *testing.T) {
	resolver, group, configs := newFixture(t)

	// Both fallback locales hold configs; hi sits earlier in mr's chain and
	// must win regardless of insertion order.
	storeConfig(t, configs, group.ID, "en", nil, map[string]any{"title": "Hello"})
	storeConfig(t, configs, group.ID, "hi", []string{"en"}, map[string]any{"title": "नमस्ते"})

	result := resolve(t, resolver, group.ID, "mr")

	if result.Content["title"] != "नमस्ते" {
		t.Fatalf("expected hi content, got %v", result.Content)
	}
	if !reflect.DeepEqual(result.UsedFallback, []string{"mr", "hi"}) {
		t.Fatalf("expected [mr hi], got %v", result.UsedFallback)
	}
	if result.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %v", result.Confidence)
	}
}

func TestResolveReportsMissingFields(t *testing.T) {
	resolver, group, configs := newFixture(t)

	storeConfig(t, configs, group.ID, "hi", []string{"en"}, map[string]any{
		"title": "नमस्ते",
	})
	storeConfig(t, configs, group.ID, "en", nil, map[string]any{
		"title":    "Hello",
		"body":     "Text",
		"keywords": "cms",
	})

	result := resolve(t, resolver, group.ID, "mr")

	// hi wins the chain but en carries more fields; the delta is reported.
	if result.Content["title"] != "नमस्ते" {
		t.Fatalf("expected hi content, got %v", result.Content)
	}
	if !reflect.DeepEqual(result.MissingFields, []string{"body", "keywords"}) {
		t.Fatalf("expected sorted missing fields, got %v", result.MissingFields)
	}
}

func TestResolveConfidenceFloor(t *testing.T) {
	groupRepo := groups.NewMemoryRepository()
	configRepo := variantconfig.NewMemoryRepository()

	chain := []string{"l1", "l2", "l3", "l4", "l5", "l6"}
	group, err := groupRepo.Create(context.Background(), &groups.VariantGroup{
		ID:   uuid.New(),
		Name: "deep-chain",
		Locales: []groups.Locale{
			{Code: "l1"}, {Code: "l2"}, {Code: "l3"},
			{Code: "l4"}, {Code: "l5"}, {Code: "l6"},
			{Code: "xx", Fallback: chain},
		},
	})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	storeConfig(t, configRepo, group.ID, "l6", nil, map[string]any{"title": "deep"})

	resolver := NewResolver(groupRepo, configRepo)
	result := resolve(t, resolver, group.ID, "xx")

	// Six hops would compute below the floor; the floor wins.
	if result.Confidence != 0.1 {
		t.Fatalf("expected floor confidence 0.1, got %v", result.Confidence)
	}
}

func TestResolveUnknownGroup(t *testing.T) {
	resolver, _, _ := newFixture(t)

	_, err := resolver.Resolve(context.Background(), Request{
		EntryUID:       "entry1",
		ContentTypeUID: "blog_post",
		TargetLocale:   "mr",
		GroupID:        uuid.New(),
	})
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestResolveLocaleOutsideGroup(t *testing.T) {
	resolver, group, _ := newFixture(t)

	_, err := resolver.Resolve(context.Background(), Request{
		EntryUID:       "entry1",
		ContentTypeUID: "blog_post",
		TargetLocale:   "de",
		GroupID:        group.ID,
	})
	if !errors.Is(err, ErrLocaleNotInGroup) {
		t.Fatalf("expected ErrLocaleNotInGroup, got %v", err)
	}
}

func TestResolveIgnoresLocalesOutsideChain(t *testing.T) {
	resolver, group, configs := newFixture(t)

	// en's chain is empty, so hi content never leaks into an en resolution.
	storeConfig(t, configs, group.ID, "hi", []string{"en"}, map[string]any{"title": "नमस्ते"})

	result := resolve(t, resolver, group.ID, "en")

	if result.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %v", result.Confidence)
	}
	if len(result.Content) != 0 {
		t.Fatalf("expected empty content, got %v", result.Content)
	}
}
