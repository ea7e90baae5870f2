package translate

import (
	"reflect"
	"testing"
)

func TestFlattenLeavesSortedPreOrder(t *testing.T) {
	content := map[string]any{
		"title": "Hello",
		"meta": map[string]any{
			"keywords": "cms",
			"author":   "jane",
		},
		"body":  "World",
		"views": 42,
	}

	got := flattenLeaves(content)
	want := []string{"World", "jane", "cms", "Hello"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected leaves: %v", got)
	}
}

func TestReinjectLeavesRoundTrip(t *testing.T) {
	content := map[string]any{
		"title": "Hello",
		"meta": map[string]any{
			"author": "jane",
		},
		"views": 42,
	}

	out := reinjectLeaves(content, []string{"Hola", "juana"})

	meta := out["meta"].(map[string]any)
	if meta["author"] != "juana" {
		t.Fatalf("unexpected author: %v", meta["author"])
	}
	if out["title"] != "Hola" {
		t.Fatalf("unexpected title: %v", out["title"])
	}
	if out["views"] != 42 {
		t.Fatalf("expected non-string value untouched, got %v", out["views"])
	}
	// Input is never mutated.
	if content["title"] != "Hello" {
		t.Fatalf("input mutated: %v", content["title"])
	}
}

func TestReinjectLeavesShortSliceKeepsOriginals(t *testing.T) {
	content := map[string]any{
		"a": "one",
		"b": "two",
		"c": "three",
	}

	out := reinjectLeaves(content, []string{"uno"})

	if out["a"] != "uno" || out["b"] != "two" || out["c"] != "three" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestSplitTranslatedTrimsSegments(t *testing.T) {
	got := splitTranslated("Hola\n---\nMundo")
	want := []string{"Hola", "Mundo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected segments: %v", got)
	}
}

func TestSplitTranslatedKeepsInlineDashes(t *testing.T) {
	got := splitTranslated("alpha---beta\n---\ngamma")
	want := []string{"alpha---beta", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected segments: %v", got)
	}
}

func TestSplitTranslatedKeepsSegmentNewlines(t *testing.T) {
	got := splitTranslated("line one\nline two\n---\nsecond")
	want := []string{"line one\nline two", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected segments: %v", got)
	}
}

func TestSplitTranslatedToleratesSeparatorPadding(t *testing.T) {
	got := splitTranslated("  Hola\n ---\t\nMundo\n")
	want := []string{"Hola", "Mundo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected segments: %v", got)
	}
}
