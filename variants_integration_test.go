package variants_test

import (
	"context"
	"testing"

	variants "github.com/goliatone/go-cms-variants"
	"github.com/goliatone/go-cms-variants/internal/di"
	"github.com/goliatone/go-cms-variants/internal/fallback"
	"github.com/goliatone/go-cms-variants/internal/groups"
	"github.com/goliatone/go-cms-variants/internal/translate"
	"github.com/goliatone/go-cms-variants/internal/variantconfig"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-cms-variants/pkg/testsupport"
)

func TestModuleLifecycleWithMemoryStorage(t *testing.T) {
	module, err := variants.New(variants.DefaultConfig())
	if err != nil {
		t.Fatalf("variants.New returned error: %v", err)
	}

	ctx := context.Background()

	group, err := module.Groups().CreateGroup(ctx, groups.CreateGroupInput{
		Name: "indian-languages",
		Locales: []groups.LocaleInput{
			{Code: "en", Name: "English", IsDefault: true},
			{Code: "hi", Name: "Hindi", Fallback: []string{"en"}},
			{Code: "mr", Name: "Marathi", Fallback: []string{"hi", "en"}},
		},
	})
	if err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}

	created, err := module.Configs().BulkCreate(ctx, variantconfig.BulkCreateInput{
		GroupID:        group.ID,
		EntryUIDs:      []string{"entry1"},
		ContentTypeUID: "blog_post",
		Locales:        []string{"en", "hi", "mr"},
	})
	if err != nil {
		t.Fatalf("BulkCreate returned error: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 configs, got %d", len(created))
	}

	if _, err := module.Configs().UpsertConfig(ctx, variantconfig.CreateConfigInput{
		GroupID:        group.ID,
		EntryUID:       "entry1",
		ContentTypeUID: "blog_post",
		Locale:         "en",
		Content:        map[string]any{"title": "Hello", "body": "World"},
	}); err != nil {
		t.Fatalf("UpsertConfig returned error: %v", err)
	}

	result, err := module.Resolver().Resolve(ctx, variants.ResolveRequest{
		EntryUID:       "entry1",
		ContentTypeUID: "blog_post",
		TargetLocale:   "mr",
		GroupID:        group.ID,
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	// mr and hi only hold empty bulk-created configs; the mr config itself is
	// the exact match even though en carries the real content.
	if result.Confidence != 1.0 {
		t.Fatalf("expected exact-match confidence, got %v", result.Confidence)
	}
	if len(result.MissingFields) != 2 {
		t.Fatalf("expected missing fields vs en content, got %v", result.MissingFields)
	}

	resp, err := module.Translator().Translate(ctx, variants.TranslateRequest{
		SourceLocale: "en",
		TargetLocale: "mr",
		Content:      map[string]any{"title": "Hello"},
	})
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if resp.Method != translate.MethodManual {
		t.Fatalf("expected manual method, got %s", resp.Method)
	}

	if got := variants.VariantParam("mr", []string{"hi", "en"}); got != "mr_hi_en" {
		t.Fatalf("unexpected variant param: %s", got)
	}
}

func TestModuleLifecycleWithBunStorage(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := bunDB.NewCreateTable().Model((*groups.VariantGroup)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create variant_groups table: %v", err)
	}
	if _, err := bunDB.NewCreateTable().Model((*variantconfig.VariantConfig)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create variant_configs table: %v", err)
	}

	cfg := variants.DefaultConfig()
	cfg.Storage.Provider = "bun"

	module, err := variants.New(cfg, di.WithBunDB(bunDB))
	if err != nil {
		t.Fatalf("variants.New returned error: %v", err)
	}

	group, err := module.Groups().CreateGroup(ctx, groups.CreateGroupInput{
		Name: "bun-backed",
		Locales: []groups.LocaleInput{
			{Code: "en", IsDefault: true},
			{Code: "fr", Fallback: []string{"en"}},
		},
	})
	if err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}

	if _, err := module.Configs().CreateConfig(ctx, variantconfig.CreateConfigInput{
		GroupID:        group.ID,
		EntryUID:       "entry9",
		ContentTypeUID: "landing_page",
		Locale:         "en",
		Content:        map[string]any{"headline": "Bonjour not required"},
	}); err != nil {
		t.Fatalf("CreateConfig returned error: %v", err)
	}

	result, err := module.Resolver().Resolve(ctx, fallback.Request{
		EntryUID:       "entry9",
		ContentTypeUID: "landing_page",
		TargetLocale:   "fr",
		GroupID:        group.ID,
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if result.Confidence != 0.8 {
		t.Fatalf("expected single-hop confidence, got %v", result.Confidence)
	}
	if result.Content["headline"] != "Bonjour not required" {
		t.Fatalf("unexpected content: %v", result.Content)
	}
}
