package groups

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Locale describes one language entry inside a variant group. The fallback
// chain lists locale codes in the order they should be tried after the locale
// itself, lowest priority last.
type Locale struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Fallback  []string `json:"fallback,omitempty"`
	IsDefault bool     `json:"is_default,omitempty"`
}

// VariantGroup is a named set of locales sharing a fallback topology.
type VariantGroup struct {
	bun.BaseModel `bun:"table:variant_groups,alias:vg"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description *string   `bun:"description" json:"description,omitempty"`
	Locales     []Locale  `bun:"locales,type:jsonb,notnull" json:"locales"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// LocaleByCode returns the locale entry matching code, case-insensitively.
func (g *VariantGroup) LocaleByCode(code string) (Locale, bool) {
	if g == nil {
		return Locale{}, false
	}
	normalized := normalizeLocaleCode(code)
	for _, locale := range g.Locales {
		if normalizeLocaleCode(locale.Code) == normalized {
			return locale, true
		}
	}
	return Locale{}, false
}

// DefaultLocale returns the locale flagged as default, if any.
func (g *VariantGroup) DefaultLocale() (Locale, bool) {
	if g == nil {
		return Locale{}, false
	}
	for _, locale := range g.Locales {
		if locale.IsDefault {
			return locale, true
		}
	}
	return Locale{}, false
}
