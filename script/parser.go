package script

import (
	"strings"

	"faceless-pipeline/types"
)

// Fallback metadata used when the model ignored the requested format.
var (
	fallbackTitle    = "AI Generated Video"
	fallbackKeywords = "ai content technology"
	fallbackTags     = []string{"AI", "Technology", "Education"}
)

// Parse turns one raw generation response into a ScriptRecord. The model is
// asked for TITLE:/DESCRIPTION:/TAGS:/KEYWORDS:/SCRIPT: markers but is not
// guaranteed to follow them, so Parse never fails: if the title or narration
// body cannot be found, the whole response becomes the script and basic
// metadata is synthesized from its leading text.
func Parse(raw string) types.ScriptRecord {
	var rec types.ScriptRecord

	scriptStarted := false
	var scriptLines []string

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "TITLE:"):
			rec.Title = strings.TrimSpace(strings.TrimPrefix(line, "TITLE:"))
		case strings.HasPrefix(line, "DESCRIPTION:"):
			rec.Description = strings.TrimSpace(strings.TrimPrefix(line, "DESCRIPTION:"))
		case strings.HasPrefix(line, "TAGS:"):
			rec.Tags = splitTags(strings.TrimPrefix(line, "TAGS:"))
		case strings.HasPrefix(line, "KEYWORDS:"):
			rec.Keywords = strings.TrimSpace(strings.TrimPrefix(line, "KEYWORDS:"))
		case strings.HasPrefix(line, "SCRIPT:"):
			scriptStarted = true
		case scriptStarted:
			scriptLines = append(scriptLines, line)
		}
	}

	rec.Script = strings.TrimSpace(strings.Join(scriptLines, "\n"))

	// Degraded parse: markers were not reliably found, so trade structure
	// for availability. Partial results are discarded, not merged.
	if rec.Title == "" || rec.Script == "" {
		rec.Script = strings.TrimSpace(raw)
		rec.Title = firstLine(strings.TrimSpace(firstRunes(raw, 100)))
		if rec.Title == "" {
			rec.Title = fallbackTitle
		}
		rec.Keywords = fallbackKeywords
		rec.Tags = append([]string(nil), fallbackTags...)
		rec.Description = strings.TrimSpace(firstRunes(raw, 200))
	}

	return rec
}

func splitTags(s string) []string {
	parts := strings.Split(strings.TrimSpace(s), ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, strings.TrimSpace(p))
	}
	return tags
}

// firstRunes truncates without splitting a multibyte character.
func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
