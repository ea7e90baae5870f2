package variantconfig

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// VariantConfig stores the localized content payload for one entry, in one
// content type, in one locale. At most one config exists per key.
type VariantConfig struct {
	bun.BaseModel `bun:"table:variant_configs,alias:vc"`

	ID             uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	GroupID        uuid.UUID      `bun:"group_id,notnull,type:uuid" json:"group_id"`
	EntryUID       string         `bun:"entry_uid,notnull" json:"entry_uid"`
	ContentTypeUID string         `bun:"content_type_uid,notnull" json:"content_type_uid"`
	Locale         string         `bun:"locale,notnull" json:"locale"`
	VariantParam   string         `bun:"variant_param,notnull" json:"variant_param"`
	Content        map[string]any `bun:"content,type:jsonb,notnull" json:"content"`
	FallbackChain  []string       `bun:"fallback_chain,type:jsonb" json:"fallback_chain,omitempty"`
	IsTranslated   bool           `bun:"is_translated,notnull,default:false" json:"is_translated"`
	LastModified   time.Time      `bun:"last_modified,nullzero,default:current_timestamp" json:"last_modified"`
}

// Key identifies a variant config uniquely within the store.
type Key struct {
	EntryUID       string
	ContentTypeUID string
	Locale         string
}

// KeyOf derives the storage key for a config record.
func KeyOf(cfg *VariantConfig) Key {
	if cfg == nil {
		return Key{}
	}
	return NewKey(cfg.EntryUID, cfg.ContentTypeUID, cfg.Locale)
}

// NewKey builds a normalized config key.
func NewKey(entryUID, contentTypeUID, locale string) Key {
	return Key{
		EntryUID:       strings.TrimSpace(entryUID),
		ContentTypeUID: strings.TrimSpace(contentTypeUID),
		Locale:         strings.ToLower(strings.TrimSpace(locale)),
	}
}
