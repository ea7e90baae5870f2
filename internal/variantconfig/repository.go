package variantconfig

import (
	"context"
	"fmt"
)

// ConfigRepository exposes persistence operations for variant configs. The
// store is keyed by (entry, content type, locale); Create must reject
// duplicate keys so callers never accumulate shadow configs.
type ConfigRepository interface {
	Create(ctx context.Context, cfg *VariantConfig) (*VariantConfig, error)
	Update(ctx context.Context, cfg *VariantConfig) (*VariantConfig, error)
	GetByKey(ctx context.Context, key Key) (*VariantConfig, error)
	FindByEntry(ctx context.Context, entryUID, contentTypeUID string) ([]*VariantConfig, error)
	Delete(ctx context.Context, key Key) error
}

// NotFoundError is returned when a variant config cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// ConflictError is returned when a create collides with an existing key.
type ConflictError struct {
	Key Key
}

func (e *ConflictError) Error() string {
	if e == nil {
		return ErrConfigExists.Error()
	}
	return fmt.Sprintf("%s: entry=%s content_type=%s locale=%s",
		ErrConfigExists.Error(), e.Key.EntryUID, e.Key.ContentTypeUID, e.Key.Locale)
}

func (e *ConflictError) Unwrap() error {
	return ErrConfigExists
}

func keyString(key Key) string {
	return fmt.Sprintf("%s/%s/%s", key.EntryUID, key.ContentTypeUID, key.Locale)
}
