// File: internal/genplan/prompt.go
package genplan

import (
	"fmt"
	"strings"

	json "github.com/json-iterator/go"

	"github.com/hireloop/autopilot/api/schemas"
)

const promptHeader = `You map job application form fields to applicant data.
For each field below, decide the value to enter and respond with a JSON array.
Each element: {"field": "<canonical key or field id>", "fieldId": "<field id>",
"selector": "<selector>", "action": "fill|select|check|skip", "value": "<value>",
"confidence": <0.0-1.0>}.
Rules:
- Use ONLY the applicant data provided. Never invent values.
- For select fields, value must be one of the listed options.
- Use action "skip" for any field you cannot answer from the data.
- Do not answer demographic or self-identification questions; skip them.
- Output only the JSON array, no prose.`

// promptField is the trimmed field view sent to the model. Keeping the shape
// small keeps prompts inside the token budget at the 300 field cap.
type promptField struct {
	FieldID  string   `json:"fieldId"`
	Kind     string   `json:"kind"`
	Question string   `json:"question,omitempty"`
	Label    string   `json:"label,omitempty"`
	Selector string   `json:"selector"`
	Access   string   `json:"access,omitempty"`
	Required bool     `json:"required,omitempty"`
	Options  []string `json:"options,omitempty"`
}

// BuildPrompt renders the planning prompt: instructions, the job context, the
// applicant data, and the field inventory as JSON blocks.
func BuildPrompt(fields []schemas.FieldDescriptor, profile schemas.Profile, job schemas.JobContext) (string, error) {
	trimmed := make([]promptField, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		trimmed = append(trimmed, promptField{
			FieldID:  f.FieldID,
			Kind:     string(f.Kind),
			Question: f.QuestionText,
			Label:    f.Label,
			Selector: f.Locator.Selector,
			Access:   f.Locator.Description,
			Required: f.Required,
			Options:  f.Options,
		})
	}

	fieldsJSON, err := json.MarshalIndent(trimmed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode fields: %w", err)
	}
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString("\n\n")
	if job.Title != "" || job.Company != "" {
		fmt.Fprintf(&sb, "Applying for: %s at %s\n", job.Title, firstNonEmpty(job.Company, job.Employer))
		if job.URL != "" {
			fmt.Fprintf(&sb, "Posting URL: %s\n", job.URL)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Applicant data:\n")
	sb.Write(profileJSON)
	sb.WriteString("\n\nForm fields:\n")
	sb.Write(fieldsJSON)
	sb.WriteString("\n")
	return sb.String(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
