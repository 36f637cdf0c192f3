// File: internal/scanner/fieldid.go
package scanner

import (
	"fmt"
	"strings"

	"github.com/hireloop/autopilot/api/schemas"
)

// Slugify lowercases text, replaces every run of non-alphanumeric characters
// with a single underscore, and trims leading/trailing underscores.
func Slugify(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	lastUnderscore := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(sb.String(), "_")
}

// buildFieldID derives the stable field identifier: DOM id, then name, then a
// slug of the best available text, then an index-based fallback. For any
// control with a DOM id the field id equals that id verbatim.
func buildFieldID(raw rawControl, bestText string, index int) string {
	if raw.ID != "" {
		return raw.ID
	}
	if raw.Name != "" {
		return raw.Name
	}
	if slug := Slugify(bestText); slug != "" {
		return slug
	}
	return fmt.Sprintf("field_%d", index)
}

// buildLocator produces the structural selector plus a human-readable
// accessor string used in diagnostics and LLM prompts.
func buildLocator(raw rawControl, bestText string) schemas.Locator {
	var selector string
	switch {
	case raw.ID != "":
		selector = "#" + cssEscape(raw.ID)
	case raw.Name != "":
		selector = fmt.Sprintf(`%s[name=%q]`, raw.Tag, raw.Name)
	default:
		selector = raw.Tag
	}

	var description string
	switch {
	case raw.Label != "":
		description = fmt.Sprintf("by label %q", raw.Label)
	case raw.Placeholder != "":
		description = fmt.Sprintf("by placeholder %q", raw.Placeholder)
	case bestText != "":
		description = fmt.Sprintf("near text %q", bestText)
	default:
		description = "by selector " + selector
	}

	return schemas.Locator{Selector: selector, Description: description}
}

// cssEscape escapes the characters that would break an id out of a CSS
// selector. Covers the ids seen in the wild (colons from JSF/React scopes,
// dots, brackets); full CSS.escape fidelity is not needed here.
func cssEscape(id string) string {
	var sb strings.Builder
	sb.Grow(len(id))
	for _, r := range id {
		switch r {
		case ':', '.', '[', ']', '(', ')', '#', '"', '\'', '\\', '/', ' ':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
