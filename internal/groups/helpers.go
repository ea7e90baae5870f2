package groups

import (
	"strings"

	"golang.org/x/text/language"
)

func normalizeLocaleCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// validLocaleCode reports whether code parses as a BCP-47 language tag.
// Underscore separators are tolerated since variant params use them.
func validLocaleCode(code string) bool {
	code = normalizeLocaleCode(code)
	if code == "" {
		return false
	}
	_, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	return err == nil
}

func cloneGroup(group *VariantGroup) *VariantGroup {
	if group == nil {
		return nil
	}
	cloned := *group
	cloned.Description = cloneString(group.Description)
	cloned.Locales = cloneLocales(group.Locales)
	return &cloned
}

func cloneGroupSlice(src []*VariantGroup) []*VariantGroup {
	if len(src) == 0 {
		return nil
	}
	out := make([]*VariantGroup, len(src))
	for i, group := range src {
		out[i] = cloneGroup(group)
	}
	return out
}

func cloneLocales(src []Locale) []Locale {
	if len(src) == 0 {
		return nil
	}
	out := make([]Locale, len(src))
	for i, locale := range src {
		out[i] = locale
		if len(locale.Fallback) > 0 {
			out[i].Fallback = append([]string(nil), locale.Fallback...)
		}
	}
	return out
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
