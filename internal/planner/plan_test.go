// File: internal/planner/plan_test.go
package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/autopilot/api/schemas"
	"github.com/hireloop/autopilot/internal/match"
	"github.com/hireloop/autopilot/internal/profile"
)

func textField(id, label, selector string) schemas.FieldDescriptor {
	return schemas.FieldDescriptor{
		FieldID: id,
		Tag:     "input",
		Kind:    schemas.FieldText,
		Label:   label,
		Locator: schemas.Locator{Selector: selector},
	}
}

func testIndex(t *testing.T) match.AliasIndex {
	t.Helper()
	return match.BuildIndex(match.DefaultAliases())
}

func TestBuildAliasPlanFillsMatchedFields(t *testing.T) {
	b := NewBuilder([]string{"cover_letter"}, 0, nil)
	fields := []schemas.FieldDescriptor{
		textField("email", "Email Address", "#email"),
		textField("q_custom", "Favorite color", "#q_custom"),
	}
	values := profile.ValueMap{"email": "a@b.com"}

	result := b.BuildAliasPlan(fields, testIndex(t), values)

	require.Len(t, result.Filled, 1)
	assert.Equal(t, "email", result.Filled[0].Field)
	assert.Equal(t, "a@b.com", result.Filled[0].Value)
	assert.InDelta(t, AliasConfidence, result.Filled[0].Confidence, 1e-9)

	require.Len(t, result.Actions, 1)
	assert.Equal(t, schemas.ActionFill, result.Actions[0].Action)
	assert.Equal(t, "#email", result.Actions[0].Selector)

	// The unrecognized field is excluded entirely: not filled, not suggested,
	// not blocked.
	assert.Empty(t, result.Suggestions)
	assert.Empty(t, result.Blocked)
}

func TestBuildAliasPlanSelectFieldsUseSelectAction(t *testing.T) {
	b := NewBuilder(nil, 0, nil)
	field := textField("country", "Country", "#country")
	field.Kind = schemas.FieldSelect

	result := b.BuildAliasPlan([]schemas.FieldDescriptor{field}, testIndex(t), profile.ValueMap{"country": "Germany"})
	require.Len(t, result.Actions, 1)
	assert.Equal(t, schemas.ActionSelect, result.Actions[0].Action)
}

func TestBuildAliasPlanEmptyValueYieldsSuggestion(t *testing.T) {
	b := NewBuilder(nil, 0, nil)
	fields := []schemas.FieldDescriptor{textField("school", "School", "#school")}

	result := b.BuildAliasPlan(fields, testIndex(t), profile.ValueMap{"school": ""})

	assert.Empty(t, result.Filled)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "school", result.Suggestions[0].Field)
	assert.Equal(t, "no data available for school", result.Suggestions[0].Reason)
}

func TestBuildAliasPlanDenylistedKeySkippedEntirely(t *testing.T) {
	b := NewBuilder([]string{"cover_letter"}, 0, nil)
	fields := []schemas.FieldDescriptor{textField("cover_letter", "Cover Letter", "#cl")}

	result := b.BuildAliasPlan(fields, testIndex(t), profile.ValueMap{"cover_letter": "canned text"})

	// Denylisted keys appear nowhere: not filled, not suggested, not blocked.
	assert.Empty(t, result.Filled)
	assert.Empty(t, result.Suggestions)
	assert.Empty(t, result.Blocked)
	assert.Empty(t, result.Actions)
}

func TestBuildAliasPlanMissingSelectorBlocks(t *testing.T) {
	b := NewBuilder(nil, 0, nil)
	fields := []schemas.FieldDescriptor{textField("email", "Email", "")}

	result := b.BuildAliasPlan(fields, testIndex(t), profile.ValueMap{"email": "a@b.com"})

	assert.Empty(t, result.Filled)
	require.Len(t, result.Blocked, 1)
	assert.Equal(t, "no usable selector", result.Blocked[0].Reason)
}

func TestBuildAliasPlanDeduplicatesFieldNames(t *testing.T) {
	b := NewBuilder(nil, 0, nil)
	fields := []schemas.FieldDescriptor{
		textField("email", "Email", "#email"),
		textField("email", "Email", "#email"), // repeated step of a wizard form
	}

	result := b.BuildAliasPlan(fields, testIndex(t), profile.ValueMap{"email": "a@b.com"})
	assert.Len(t, result.Filled, 1)
	assert.Len(t, result.Actions, 1)
}

func TestBuildAliasPlanEmptyInput(t *testing.T) {
	b := NewBuilder(nil, 0, nil)
	result := b.BuildAliasPlan(nil, testIndex(t), profile.ValueMap{})

	// Lists are allocated and empty, never nil.
	require.NotNil(t, result)
	assert.NotNil(t, result.Filled)
	assert.NotNil(t, result.Suggestions)
	assert.NotNil(t, result.Blocked)
	assert.Empty(t, result.Filled)
}

func TestBuildAliasPlanFilledAndBlockedDisjoint(t *testing.T) {
	b := NewBuilder(nil, 0, nil)
	fields := []schemas.FieldDescriptor{
		textField("email", "Email", "#email"),
		textField("phone", "Phone", ""),
	}
	result := b.BuildAliasPlan(fields, testIndex(t), profile.ValueMap{"email": "a@b.com", "phone": "12345"})

	filled := make(map[string]bool)
	for _, f := range result.Filled {
		filled[f.Field] = true
	}
	for _, blocked := range result.Blocked {
		assert.False(t, filled[blocked.Field], "field %q must not be both filled and blocked", blocked.Field)
	}
}
