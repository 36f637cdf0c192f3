// File: internal/scanner/constraints.go
package scanner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hireloop/autopilot/api/schemas"
)

// Free-text constraint phrasings seen on application forms: "max 200 words",
// "maximum of 500 characters", "200 words max", "minimum 50 characters".
var (
	maxWordsRe = regexp.MustCompile(`(?i)(?:max(?:imum)?(?:\s+of)?\s+(\d+)\s+words?|(\d+)\s+words?\s+max)`)
	maxCharsRe = regexp.MustCompile(`(?i)(?:max(?:imum)?(?:\s+of)?\s+(\d+)\s+(?:characters?|chars?)|(\d+)\s+(?:characters?|chars?)\s+max)`)
	minCharsRe = regexp.MustCompile(`(?i)min(?:imum)?(?:\s+of)?\s+(\d+)\s+(?:characters?|chars?)`)
)

// parseConstraints merges HTML attribute limits with limits stated in the
// surrounding prose. Attribute limits win on conflict because the browser
// enforces them.
func parseConstraints(raw rawControl, prose string) schemas.Constraints {
	c := schemas.Constraints{
		MaxLength: raw.MaxLength,
		MinLength: raw.MinLength,
	}
	if prose == "" {
		return c
	}

	if n, ok := firstGroup(maxWordsRe, prose); ok {
		c.MaxWords = n
	}
	if n, ok := firstGroup(maxCharsRe, prose); ok {
		c.MaxChars = n
		if c.MaxLength == 0 {
			c.MaxLength = n
		}
	}
	if n, ok := firstGroup(minCharsRe, prose); ok && c.MinLength == 0 {
		c.MinLength = n
	}
	return c
}

// firstGroup returns the first non-empty capture group of the first match.
func firstGroup(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	for _, g := range m[1:] {
		if g == "" {
			continue
		}
		n, err := strconv.Atoi(g)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// essayVocabulary marks questions that want multi-sentence prose.
var essayVocabulary = []string{
	"why", "describe", "motivation", "cover letter", "tell us",
	"explain", "in your own words", "elaborate",
}

// likelyEssay reports whether a field expects a long free-text answer: a
// textarea or rich-text control, an explicit word/char budget, or essay
// wording in its label or question text.
func likelyEssay(kind schemas.FieldKind, c schemas.Constraints, label, question string) bool {
	if kind == schemas.FieldTextarea || kind == schemas.FieldRichText {
		return true
	}
	if c.MaxWords > 0 || c.MaxChars > 0 {
		return true
	}
	combined := strings.ToLower(strings.TrimSpace(label + " " + question))
	if combined == "" {
		return false
	}
	for _, word := range essayVocabulary {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}
