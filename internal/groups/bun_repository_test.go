package groups_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-cms-variants/internal/groups"
	"github.com/goliatone/go-cms-variants/pkg/testsupport"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newGroupsDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	if _, err := bunDB.NewCreateTable().Model((*groups.VariantGroup)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		t.Fatalf("create variant_groups table: %v", err)
	}
	return bunDB
}

func TestBunGroupRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := groups.NewBunGroupRepository(newGroupsDB(t))
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	desc := "Indian regional languages"
	group := &groups.VariantGroup{
		ID:          uuid.MustParse("00000000-0000-0000-0000-00000000a001"),
		Name:        "indian-languages",
		Description: &desc,
		Locales: []groups.Locale{
			{Code: "en", Name: "English", IsDefault: true},
			{Code: "hi", Name: "Hindi", Fallback: []string{"en"}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := repo.Create(ctx, group)
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	if created.ID != group.ID {
		t.Fatalf("expected id %s, got %s", group.ID, created.ID)
	}

	byID, err := repo.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Name != "indian-languages" {
		t.Fatalf("expected name indian-languages, got %s", byID.Name)
	}
	if len(byID.Locales) != 2 || byID.Locales[1].Fallback[0] != "en" {
		t.Fatalf("locales did not round-trip: %+v", byID.Locales)
	}

	byName, err := repo.GetByName(ctx, "indian-languages")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if byName.ID != group.ID {
		t.Fatalf("expected id %s, got %s", group.ID, byName.ID)
	}

	byID.Name = "indian-regional"
	byID.UpdatedAt = now.Add(time.Hour)
	updated, err := repo.Update(ctx, byID)
	if err != nil {
		t.Fatalf("update group: %v", err)
	}
	if updated.Name != "indian-regional" {
		t.Fatalf("expected updated name, got %s", updated.Name)
	}

	second := &groups.VariantGroup{
		ID:        uuid.MustParse("00000000-0000-0000-0000-00000000a002"),
		Name:      "later-group",
		Locales:   []groups.Locale{{Code: "en"}},
		CreatedAt: now.Add(time.Minute),
		UpdatedAt: now.Add(time.Minute),
	}
	if _, err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create second group: %v", err)
	}

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(listed))
	}
	if listed[0].ID != group.ID || listed[1].ID != second.ID {
		t.Fatalf("expected creation order, got %s then %s", listed[0].ID, listed[1].ID)
	}

	if err := repo.Delete(ctx, group.ID); err != nil {
		t.Fatalf("delete group: %v", err)
	}

	var nf *groups.NotFoundError
	if _, err := repo.GetByID(ctx, group.ID); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
}

func TestBunGroupRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := groups.NewBunGroupRepository(newGroupsDB(t))

	var nf *groups.NotFoundError

	if _, err := repo.GetByID(ctx, uuid.New()); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if _, err := repo.GetByName(ctx, "missing"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if err := repo.Delete(ctx, uuid.New()); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
