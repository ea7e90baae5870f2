package translate

import (
	"regexp"
	"sort"
	"strings"
)

// leafSeparator joins flattened string leaves into a single provider payload.
// Providers are instructed to preserve it verbatim so the translated text can
// be split back into the original positions.
const leafSeparator = "\n---\n"

// flattenLeaves collects every string leaf of the content tree in
// deterministic pre-order. Keys are visited sorted so the traversal is stable
// across runs; the same order is used when re-injecting translated values.
func flattenLeaves(content map[string]any) []string {
	leaves := make([]string, 0)
	walkLeaves(content, func(leaf string) {
		leaves = append(leaves, leaf)
	})
	return leaves
}

func walkLeaves(content map[string]any, visit func(string)) {
	keys := sortedKeys(content)
	for _, key := range keys {
		switch value := content[key].(type) {
		case string:
			visit(value)
		case map[string]any:
			walkLeaves(value, visit)
		}
	}
}

// reinjectLeaves rebuilds the content tree substituting string leaves with the
// supplied values in traversal order. Positions past the end of the slice keep
// their original value, so a provider returning too few segments degrades to
// partially translated content instead of failing.
func reinjectLeaves(content map[string]any, leaves []string) map[string]any {
	index := 0
	return reinjectNode(content, leaves, &index)
}

func reinjectNode(content map[string]any, leaves []string, index *int) map[string]any {
	out := make(map[string]any, len(content))
	for _, key := range sortedKeys(content) {
		switch value := content[key].(type) {
		case string:
			if *index < len(leaves) {
				out[key] = leaves[*index]
			} else {
				out[key] = value
			}
			*index++
		case map[string]any:
			out[key] = reinjectNode(value, leaves, index)
		default:
			out[key] = value
		}
	}
	return out
}

// leafSeparatorPattern matches the separator as a whole line, tolerating the
// trailing spaces providers tend to add. A bare "---" inside a segment, such
// as a markdown horizontal rule followed by more text on the same line, is
// not a separator and must survive intact.
var leafSeparatorPattern = regexp.MustCompile(`\n[ \t]*---[ \t]*\n`)

// splitTranslated splits a provider response back into leaf segments. Only
// whitespace around the payload as a whole is trimmed; newlines inside a
// segment belong to the translated text.
func splitTranslated(text string) []string {
	return leafSeparatorPattern.Split(strings.TrimSpace(text), -1)
}

func sortedKeys(content map[string]any) []string {
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
