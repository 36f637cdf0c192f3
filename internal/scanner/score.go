// File: internal/scanner/score.go
package scanner

import (
	"strings"

	"github.com/hireloop/autopilot/api/schemas"
)

// interrogativePrefixes mark text that opens like a question or an
// instruction ("Why do you...", "Describe a time...").
var interrogativePrefixes = []string{
	"why", "how", "what", "when", "where", "which", "who",
	"describe", "explain", "tell us", "tell me", "share",
	"list", "provide", "summarize", "give an example",
}

// questionVocabulary is role/motivation/experience wording that usually
// appears in real application questions rather than page chrome.
var questionVocabulary = []string{
	"experience", "role", "position", "motivat", "interest",
	"skill", "team", "career", "background", "strength",
	"challenge", "accomplish", "passion", "qualif",
}

// boilerplateVocabulary is text that looks like legal or compliance chrome,
// not a question directed at the applicant.
var boilerplateVocabulary = []string{
	"privacy", "terms", "cookie", "gdpr", "consent",
	"equal employment", "eeo is the law", "e-verify",
	"by submitting", "all rights reserved",
}

// ScoreCandidate rates how likely a piece of text is the human-facing question
// for a field. Pure function over the extracted text and its source; it never
// touches the DOM, so the weights stay unit testable without a browser.
func ScoreCandidate(text string, source schemas.CandidateSource) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return -100
	}
	lower := strings.ToLower(trimmed)

	score := 0
	if strings.Contains(trimmed, "?") {
		score += 6
	}
	for _, prefix := range interrogativePrefixes {
		if strings.HasPrefix(lower, prefix) {
			score += 4
			break
		}
	}
	for _, word := range questionVocabulary {
		if strings.Contains(lower, word) {
			score += 2
			break
		}
	}

	n := len(trimmed)
	if n >= 20 && n <= 220 {
		score += 3
	}
	if n > 350 {
		score -= 4
	}

	switch source {
	case schemas.SourceLabel, schemas.SourceAria:
		score += 5
	case schemas.SourceDescribedBy:
		score += 3
	}

	for _, word := range boilerplateVocabulary {
		if strings.Contains(lower, word) {
			score -= 6
			break
		}
	}

	// A bare "optional" / "required" marker is metadata, not a question.
	if lower == "optional" || lower == "required" || lower == "(optional)" || lower == "(required)" {
		score -= 5
	}

	return score
}
