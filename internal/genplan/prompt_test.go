// File: internal/genplan/prompt_test.go
package genplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/autopilot/api/schemas"
)

func TestBuildPrompt(t *testing.T) {
	fields := []schemas.FieldDescriptor{
		{
			FieldID:      "email",
			Kind:         schemas.FieldText,
			QuestionText: "Email Address",
			Locator:      schemas.Locator{Selector: "#email", Description: `by label "Email Address"`},
			Required:     true,
		},
		{
			FieldID: "country",
			Kind:    schemas.FieldSelect,
			Label:   "Country",
			Locator: schemas.Locator{Selector: "#country"},
			Options: []string{"Germany", "France"},
		},
	}
	profile := schemas.Profile{
		Name:    schemas.PersonName{First: "Ada", Last: "Lovelace"},
		Contact: schemas.Contact{Email: "ada@example.com"},
	}
	job := schemas.JobContext{Title: "Staff Engineer", Company: "Hireloop", URL: "https://jobs.example.com/123"}

	prompt, err := BuildPrompt(fields, profile, job)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Staff Engineer at Hireloop")
	assert.Contains(t, prompt, "https://jobs.example.com/123")
	assert.Contains(t, prompt, "ada@example.com")
	assert.Contains(t, prompt, `"#email"`)
	assert.Contains(t, prompt, "Germany")
	// The instructions demand skips for unanswerable and demographic fields.
	assert.Contains(t, prompt, `action "skip"`)
	assert.Contains(t, prompt, "demographic")
}
