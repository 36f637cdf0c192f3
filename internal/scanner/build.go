// File: internal/scanner/build.go
package scanner

import (
	"strings"

	"github.com/hireloop/autopilot/api/schemas"
)

// classifyKind maps the raw tag/type/editable signals onto the closed
// FieldKind set.
func classifyKind(raw rawControl) schemas.FieldKind {
	switch raw.Tag {
	case "select":
		return schemas.FieldSelect
	case "textarea":
		return schemas.FieldTextarea
	case "input":
		switch raw.Type {
		case "checkbox":
			return schemas.FieldCheckbox
		case "radio":
			return schemas.FieldRadio
		case "file":
			return schemas.FieldFile
		}
		return schemas.FieldText
	}
	if raw.Editable {
		return schemas.FieldRichText
	}
	return schemas.FieldText
}

// buildDescriptor turns one raw in-page record into a FieldDescriptor:
// candidates are gathered and scored, constraints parsed, identity and
// locator derived. index is the control's position within its frame, used
// only for the last-resort field id.
func buildDescriptor(raw rawControl, frame schemas.FrameInfo, index int) schemas.FieldDescriptor {
	candidates := gatherCandidates(raw)
	questionText := ""
	bestText := ""
	field := schemas.FieldDescriptor{Candidates: candidates}
	if best, ok := field.BestCandidate(); ok {
		questionText = best.Text
		bestText = best.Text
	}
	if bestText == "" {
		bestText = firstNonEmpty(raw.Label, raw.AriaName, raw.Placeholder)
	}

	kind := classifyKind(raw)

	// Constraint phrasing can live in the question, the description, or any
	// nearby hint text.
	prose := strings.Join(append([]string{questionText, raw.DescribedBy}, raw.Nearby...), " ")
	constraints := parseConstraints(raw, prose)

	return schemas.FieldDescriptor{
		FieldID:      buildFieldID(raw, bestText, index),
		Tag:          raw.Tag,
		Kind:         kind,
		InputType:    raw.Type,
		Name:         raw.Name,
		DOMID:        raw.ID,
		Label:        raw.Label,
		AriaName:     raw.AriaName,
		Placeholder:  raw.Placeholder,
		DescribedBy:  raw.DescribedBy,
		Required:     raw.Required,
		Constraints:  constraints,
		Candidates:   candidates,
		QuestionText: questionText,
		Options:      raw.Options,
		LikelyEssay:  likelyEssay(kind, constraints, raw.Label, questionText),
		Locator:      buildLocator(raw, bestText),
		FrameURL:     frame.URL,
		FrameName:    frame.Name,
	}
}

// gatherCandidates scores every piece of prompt text the page extraction
// found for the control. Order is stable (label, aria, placeholder,
// describedby, legend, nearby) so candidate lists diff cleanly between scans.
func gatherCandidates(raw rawControl) []schemas.QuestionCandidate {
	type sourced struct {
		source schemas.CandidateSource
		text   string
	}
	pool := []sourced{
		{schemas.SourceLabel, raw.Label},
		{schemas.SourceAria, raw.AriaName},
		{schemas.SourcePlaceholder, raw.Placeholder},
		{schemas.SourceDescribedBy, raw.DescribedBy},
		{schemas.SourceLegend, raw.Legend},
	}
	for _, t := range raw.Nearby {
		pool = append(pool, sourced{schemas.SourceNearby, t})
	}

	var candidates []schemas.QuestionCandidate
	for _, s := range pool {
		text := strings.TrimSpace(s.text)
		if text == "" {
			continue
		}
		candidates = append(candidates, schemas.QuestionCandidate{
			Source: s.source,
			Text:   text,
			Score:  ScoreCandidate(text, s.source),
		})
	}
	return candidates
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
