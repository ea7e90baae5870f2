package variantconfig

import "strings"

// Param derives the canonical addressing key for a locale and its fallback
// chain by joining the codes with underscores: Param("mr", ["hi","en"]) is
// "mr_hi_en". The result is used both when materializing configs and as the
// delivery key for cached variant content.
func Param(locale string, fallbackChain []string) string {
	parts := make([]string, 0, len(fallbackChain)+1)
	parts = append(parts, locale)
	parts = append(parts, fallbackChain...)
	return strings.Join(parts, "_")
}
