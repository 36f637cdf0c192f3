// File: internal/genplan/parse.go
package genplan

import (
	"fmt"
	"strings"

	json "github.com/json-iterator/go"

	"github.com/hireloop/autopilot/api/schemas"
)

// ParseActions decodes the model's JSON action array. Models wrap JSON in
// markdown fences often enough that stripping them here is cheaper than
// re-prompting. Entries with no field identity at all are dropped; everything
// else passes through for the planner to filter.
func ParseActions(text string) ([]schemas.FillAction, error) {
	payload := extractJSON(text)
	if payload == "" {
		return nil, fmt.Errorf("response contains no JSON array")
	}

	var raw []schemas.FillAction
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode action list: %w", err)
	}

	actions := make([]schemas.FillAction, 0, len(raw))
	for _, a := range raw {
		if a.Field == "" && a.FieldID == "" && a.Selector == "" {
			continue
		}
		if a.Action == "" {
			a.Action = schemas.ActionFill
		}
		if a.Confidence <= 0 || a.Confidence > 1 {
			a.Confidence = 0.5
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// extractJSON finds the outermost JSON array in the text, tolerating markdown
// fences and surrounding prose.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if fenced, ok := strings.CutPrefix(text, "```json"); ok {
		text = fenced
	} else if fenced, ok := strings.CutPrefix(text, "```"); ok {
		text = fenced
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
