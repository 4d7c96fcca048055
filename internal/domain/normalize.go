package domain

import (
	"strings"
)

// NormalizeTitle trims surrounding whitespace and compresses runs of spaces
// into one. Case is preserved.
func NormalizeTitle(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeTags trims each tag, drops empty ones and removes duplicates while
// keeping first-seen order. Returns a non-nil slice.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SplitTags parses a comma-separated tag list as sent in query strings.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return NormalizeTags(strings.Split(raw, ","))
}
