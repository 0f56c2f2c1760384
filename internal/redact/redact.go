// Package redact replaces pattern matches in text with placeholder tokens,
// for sharing clinical notes without identifiers.
package redact

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/oxhq/medrex/pattern"
)

// Redact replaces every occurrence of the named patterns with "[NAME]"
// placeholders. Patterns are located on the original text; overlapping
// matches are resolved in favor of the earlier (then longer) span, so one
// replacement never corrupts another's offsets. An unknown name fails the
// whole call.
func Redact(reg *pattern.Registry, text string, names ...string) (string, error) {
	if len(names) == 0 {
		return "", &pattern.InvalidInputError{Reason: "at least one pattern name is required"}
	}

	var matches []pattern.Match
	for _, name := range names {
		found, err := reg.FindAll(name, text)
		if err != nil {
			return "", err
		}
		matches = append(matches, found...)
	}

	// Stable keeps the earlier-named pattern first when spans tie.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		return matches[i].End > matches[j].End
	})

	var b strings.Builder
	last := 0
	for _, m := range matches {
		if m.Start < last {
			continue // overlaps a span already redacted
		}
		b.WriteString(text[last:m.Start])
		b.WriteString("[" + m.Pattern + "]")
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// Diff creates a unified diff of the original against the redacted text.
func Diff(original, redacted string) string {
	if original == redacted {
		return ""
	}

	diff := difflib.UnifiedDiff{
		A:        strings.Split(original, "\n"),
		B:        strings.Split(redacted, "\n"),
		FromFile: "original",
		ToFile:   "redacted",
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Sprintf("--- original\n+++ redacted\n@@ changes @@\n%d bytes -> %d bytes",
			len(original), len(redacted))
	}

	return text
}
