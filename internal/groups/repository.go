package groups

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// GroupRepository exposes persistence operations for variant groups.
type GroupRepository interface {
	Create(ctx context.Context, group *VariantGroup) (*VariantGroup, error)
	Update(ctx context.Context, group *VariantGroup) (*VariantGroup, error)
	GetByID(ctx context.Context, id uuid.UUID) (*VariantGroup, error)
	GetByName(ctx context.Context, name string) (*VariantGroup, error)
	List(ctx context.Context) ([]*VariantGroup, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a variant group cannot be located.
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
