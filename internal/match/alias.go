// File: internal/match/alias.go
package match

import (
	"strings"
	"unicode"

	"github.com/hireloop/autopilot/api/schemas"
)

// AliasIndex maps normalized alias text to a canonical field key. It is built
// once per request from the alias store listing and is read-only afterwards.
type AliasIndex map[string]string

// Normalize folds a label or alias into its canonical lookup form: lowercase,
// punctuation folded to spaces, whitespace collapsed. The exact same fold is
// applied when building the index and when matching candidates; any drift
// between the two makes matches fail silently.
func Normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			lastSpace = false
			continue
		}
		// Everything else (punctuation, symbols, whitespace) folds to a
		// single space.
		if !lastSpace {
			sb.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(sb.String())
}

// BuildIndex constructs an AliasIndex from alias pairs. The canonical key
// itself is always registered as an alias for its own key, so fields whose id
// or name already equals a canonical key match without an explicit alias row.
// On duplicate aliases the first registration wins.
func BuildIndex(pairs []schemas.AliasPair) AliasIndex {
	idx := make(AliasIndex, len(pairs)*2)
	for _, p := range pairs {
		key := strings.TrimSpace(p.CanonicalKey)
		if key == "" {
			continue
		}
		if self := Normalize(key); self != "" {
			if _, ok := idx[self]; !ok {
				idx[self] = key
			}
		}
		alias := Normalize(p.Alias)
		if alias == "" {
			continue
		}
		if _, ok := idx[alias]; !ok {
			idx[alias] = key
		}
	}
	return idx
}

// Match resolves a single candidate string against the index.
func (idx AliasIndex) Match(candidate string) (string, bool) {
	norm := Normalize(candidate)
	if norm == "" {
		return "", false
	}
	key, ok := idx[norm]
	return key, ok
}

// MatchField resolves a field descriptor to a canonical key by trying its
// textual candidates in a fixed priority order; the first hit wins. A field
// with no match is simply unrecognized, which excludes it from the alias plan
// without marking it blocked.
func MatchField(field *schemas.FieldDescriptor, idx AliasIndex) (string, bool) {
	for _, candidate := range fieldCandidates(field) {
		if key, ok := idx.Match(candidate); ok {
			return key, true
		}
	}
	return "", false
}

// fieldCandidates lists the field's matchable texts in priority order: best
// scored question candidate, raw question text, label, aria name, placeholder,
// describedby, field id, name, DOM id, then every remaining prompt candidate.
func fieldCandidates(field *schemas.FieldDescriptor) []string {
	candidates := make([]string, 0, 9+len(field.Candidates))
	if best, ok := field.BestCandidate(); ok {
		candidates = append(candidates, best.Text)
	}
	candidates = append(candidates,
		field.QuestionText,
		field.Label,
		field.AriaName,
		field.Placeholder,
		field.DescribedBy,
		field.FieldID,
		field.Name,
		field.DOMID,
	)
	for _, c := range field.Candidates {
		candidates = append(candidates, c.Text)
	}
	return candidates
}
