package variantconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// ErrDatabaseRequired indicates the repository was constructed without a database.
var ErrDatabaseRequired = errors.New("variantconfig: bun repository requires a database")

// BunConfigRepository persists variant configs using a Bun-backed database.
type BunConfigRepository struct {
	db *bun.DB
}

// NewBunConfigRepository constructs a Bun-backed variant config repository.
func NewBunConfigRepository(db *bun.DB) *BunConfigRepository {
	return &BunConfigRepository{db: db}
}

// Create inserts a config, rejecting duplicates on the storage key.
func (r *BunConfigRepository) Create(ctx context.Context, cfg *VariantConfig) (*VariantConfig, error) {
	if r.db == nil {
		return nil, ErrDatabaseRequired
	}

	key := KeyOf(cfg)
	var existing VariantConfig
	err := r.scanByKey(ctx, &existing, key)
	if err == nil {
		return nil, &ConflictError{Key: key}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	record := cloneConfig(cfg)
	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, err
	}
	return r.GetByKey(ctx, key)
}

// Update rewrites the mutable columns of a stored config.
func (r *BunConfigRepository) Update(ctx context.Context, cfg *VariantConfig) (*VariantConfig, error) {
	if r.db == nil {
		return nil, ErrDatabaseRequired
	}

	key := KeyOf(cfg)
	var existing VariantConfig
	if err := r.scanByKey(ctx, &existing, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "variant_config", Key: keyString(key)}
		}
		return nil, err
	}

	record := cloneConfig(cfg)
	record.ID = existing.ID
	if _, err := r.db.NewUpdate().
		Model(record).
		Column("group_id", "variant_param", "content", "fallback_chain", "is_translated", "last_modified").
		WherePK().
		Exec(ctx); err != nil {
		return nil, err
	}
	return r.GetByKey(ctx, key)
}

// GetByKey fetches the single config stored for a key.
func (r *BunConfigRepository) GetByKey(ctx context.Context, key Key) (*VariantConfig, error) {
	if r.db == nil {
		return nil, ErrDatabaseRequired
	}
	var record VariantConfig
	if err := r.scanByKey(ctx, &record, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "variant_config", Key: keyString(key)}
		}
		return nil, err
	}
	return &record, nil
}

// FindByEntry returns all configs for an entry/content-type pair, across locales.
func (r *BunConfigRepository) FindByEntry(ctx context.Context, entryUID, contentTypeUID string) ([]*VariantConfig, error) {
	if r.db == nil {
		return nil, ErrDatabaseRequired
	}
	probe := NewKey(entryUID, contentTypeUID, "")
	var records []*VariantConfig
	if err := r.db.NewSelect().
		Model(&records).
		Where("entry_uid = ?", probe.EntryUID).
		Where("content_type_uid = ?", probe.ContentTypeUID).
		Order("last_modified ASC", "locale ASC").
		Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes the config stored for a key.
func (r *BunConfigRepository) Delete(ctx context.Context, key Key) error {
	if r.db == nil {
		return ErrDatabaseRequired
	}
	var record VariantConfig
	if err := r.scanByKey(ctx, &record, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundError{Resource: "variant_config", Key: keyString(key)}
		}
		return err
	}
	if _, err := r.db.NewDelete().Model(&record).WherePK().Exec(ctx); err != nil {
		return err
	}
	return nil
}

func (r *BunConfigRepository) scanByKey(ctx context.Context, record *VariantConfig, key Key) error {
	return r.db.NewSelect().
		Model(record).
		Where("entry_uid = ?", key.EntryUID).
		Where("content_type_uid = ?", key.ContentTypeUID).
		Where("locale = ?", key.Locale).
		Scan(ctx)
}
