package script

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseWellFormed(t *testing.T) {
	raw := "TITLE: Fast Facts\nDESCRIPTION: Learn something new.\nTAGS: science, facts\nKEYWORDS: ocean waves aerial drone\nSCRIPT:\nThe ocean covers 71 percent of Earth."

	rec := Parse(raw)

	if rec.Title != "Fast Facts" {
		t.Errorf("title = %q, want %q", rec.Title, "Fast Facts")
	}
	if rec.Description != "Learn something new." {
		t.Errorf("description = %q, want %q", rec.Description, "Learn something new.")
	}
	if !reflect.DeepEqual(rec.Tags, []string{"science", "facts"}) {
		t.Errorf("tags = %v, want [science facts]", rec.Tags)
	}
	if rec.Keywords != "ocean waves aerial drone" {
		t.Errorf("keywords = %q, want %q", rec.Keywords, "ocean waves aerial drone")
	}
	if rec.Script != "The ocean covers 71 percent of Earth." {
		t.Errorf("script = %q", rec.Script)
	}
}

func TestParseMultilineScript(t *testing.T) {
	raw := "TITLE: Two Liner\nSCRIPT:\nFirst line.\n\nSecond line."

	rec := Parse(raw)

	if rec.Script != "First line.\nSecond line." {
		t.Errorf("script = %q, want blank lines dropped and lines joined with newline", rec.Script)
	}
}

func TestParseTagsTrimmed(t *testing.T) {
	rec := Parse("TITLE: T\nTAGS:  alpha ,beta,  gamma delta \nSCRIPT:\nBody.")

	want := []string{"alpha", "beta", "gamma delta"}
	if !reflect.DeepEqual(rec.Tags, want) {
		t.Errorf("tags = %v, want %v", rec.Tags, want)
	}
}

func TestParseUnstructuredFallback(t *testing.T) {
	raw := "Just some unstructured rambling text."

	rec := Parse(raw)

	if rec.Script != raw {
		t.Errorf("script = %q, want full raw text", rec.Script)
	}
	if rec.Title != raw {
		t.Errorf("title = %q, want full raw text (under 100 chars)", rec.Title)
	}
	if rec.Keywords != fallbackKeywords {
		t.Errorf("keywords = %q, want default %q", rec.Keywords, fallbackKeywords)
	}
	if !reflect.DeepEqual(rec.Tags, fallbackTags) {
		t.Errorf("tags = %v, want defaults %v", rec.Tags, fallbackTags)
	}
	if rec.Description != raw {
		t.Errorf("description = %q, want full raw text (under 200 chars)", rec.Description)
	}
}

func TestParseFallbackDiscardsPartialFields(t *testing.T) {
	// Tags and keywords parsed fine, but the title marker is missing:
	// the whole parse degrades rather than merging partial results.
	raw := "TAGS: one, two\nKEYWORDS: something specific\nSCRIPT:\nBody text."

	rec := Parse(raw)

	if rec.Script != strings.TrimSpace(raw) {
		t.Errorf("script = %q, want full raw text", rec.Script)
	}
	if rec.Keywords != fallbackKeywords {
		t.Errorf("keywords = %q, want default (partial results discarded)", rec.Keywords)
	}
	if !reflect.DeepEqual(rec.Tags, fallbackTags) {
		t.Errorf("tags = %v, want defaults (partial results discarded)", rec.Tags)
	}
}

func TestParseFallbackTruncation(t *testing.T) {
	long := strings.Repeat("a", 50) + " " + strings.Repeat("b", 300)

	rec := Parse(long)

	if got := len([]rune(rec.Title)); got > 100 {
		t.Errorf("title length = %d runes, want <= 100", got)
	}
	if got := len([]rune(rec.Description)); got > 200 {
		t.Errorf("description length = %d runes, want <= 200", got)
	}
	if rec.Script != long {
		t.Errorf("script should be the full raw text")
	}
}

func TestParseFallbackTitleIsFirstLine(t *testing.T) {
	rec := Parse("First line here\nsecond line without any markers")

	if rec.Title != "First line here" {
		t.Errorf("title = %q, want first line of truncated text", rec.Title)
	}
}

func TestParseEmptyInput(t *testing.T) {
	rec := Parse("")

	if rec.Title != fallbackTitle {
		t.Errorf("title = %q, want placeholder %q", rec.Title, fallbackTitle)
	}
	if rec.Script != "" {
		t.Errorf("script = %q, want empty", rec.Script)
	}
}

func TestParseFallbackIdempotent(t *testing.T) {
	first := Parse("Some rambling without markers that is reasonably short.")
	second := Parse(first.Script)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-parsing fallback output changed the record:\nfirst  %+v\nsecond %+v", first, second)
	}
}
