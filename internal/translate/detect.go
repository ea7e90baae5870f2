package translate

import (
	"regexp"
	"strings"
)

// detectionRule pairs a locale with the character or word pattern that marks
// text as belonging to it. Rules are evaluated in order; the first hit wins.
type detectionRule struct {
	locale  string
	pattern *regexp.Regexp
}

var detectionRules = []detectionRule{
	{"en", regexp.MustCompile(`(?i)\b(the|and|is|are|was|were|have|has|will|would)\b`)},
	{"es", regexp.MustCompile(`(?i)\b(el|la|los|las|es|son|está|están|que|para)\b`)},
	{"fr", regexp.MustCompile(`(?i)\b(le|la|les|est|sont|que|pour|avec|dans|une)\b`)},
	{"de", regexp.MustCompile(`(?i)\b(der|die|das|ist|sind|und|mit|für|eine|nicht)\b`)},
	{"it", regexp.MustCompile(`(?i)\b(il|lo|gli|sono|che|per|con|una|della|questo)\b`)},
	{"pt", regexp.MustCompile(`(?i)\b(o|os|as|são|que|para|com|uma|não|este)\b`)},
	{"ru", regexp.MustCompile(`\p{Cyrillic}`)},
	{"zh", regexp.MustCompile(`\p{Han}`)},
	{"ja", regexp.MustCompile(`[\p{Hiragana}\p{Katakana}]`)},
	{"ko", regexp.MustCompile(`\p{Hangul}`)},
	{"ar", regexp.MustCompile(`\p{Arabic}`)},
	{"hi", regexp.MustCompile(`\p{Devanagari}`)},
}

// detectLocale guesses the locale of a text sample from character ranges and
// common function words. Returns "en" when nothing matches.
func detectLocale(text string) string {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return "en"
	}
	for _, rule := range detectionRules {
		if rule.pattern.MatchString(sample) {
			return rule.locale
		}
	}
	return "en"
}
