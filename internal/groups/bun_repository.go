package groups

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunGroupRepository implements GroupRepository with optional caching.
type BunGroupRepository struct {
	repo repository.Repository[*VariantGroup]
}

// NewBunGroupRepository creates a variant group repository without caching.
func NewBunGroupRepository(db *bun.DB) *BunGroupRepository {
	return NewBunGroupRepositoryWithCache(db, nil, nil)
}

// NewBunGroupRepositoryWithCache creates a variant group repository with caching support.
func NewBunGroupRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunGroupRepository {
	base := newGroupRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunGroupRepository{repo: base}
}

func newGroupRepository(db *bun.DB) repository.Repository[*VariantGroup] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*VariantGroup]{
		NewRecord: func() *VariantGroup { return &VariantGroup{} },
		GetID: func(group *VariantGroup) uuid.UUID {
			return group.ID
		},
		SetID: func(group *VariantGroup, id uuid.UUID) {
			group.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
		GetIdentifierValue: func(group *VariantGroup) string {
			return group.Name
		},
	})
}

func (r *BunGroupRepository) Create(ctx context.Context, group *VariantGroup) (*VariantGroup, error) {
	record, err := r.repo.Create(ctx, group)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunGroupRepository) Update(ctx context.Context, group *VariantGroup) (*VariantGroup, error) {
	updated, err := r.repo.Update(ctx, group,
		repository.UpdateByID(group.ID.String()),
		repository.UpdateColumns(
			"name",
			"description",
			"locales",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "variant_group", group.ID.String())
	}
	return updated, nil
}

func (r *BunGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*VariantGroup, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "variant_group", id.String())
	}
	return record, nil
}

func (r *BunGroupRepository) GetByName(ctx context.Context, name string) (*VariantGroup, error) {
	record, err := r.repo.GetByIdentifier(ctx, name)
	if err != nil {
		return nil, mapRepositoryError(err, "variant_group", name)
	}
	return record, nil
}

func (r *BunGroupRepository) List(ctx context.Context) ([]*VariantGroup, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("created_at ASC")
	}))
	return records, err
}

func (r *BunGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.repo.Delete(ctx, &VariantGroup{ID: id})
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
