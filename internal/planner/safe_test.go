// File: internal/planner/safe_test.go
package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/autopilot/internal/profile"
)

func TestSafePlanConfidenceTiers(t *testing.T) {
	builder := NewBuilder(nil, 0, nil)
	strategy := NewSafeStrategy(builder, nil)

	values := profile.ValueMap{"email": "a@b.com", "school": "MIT"}
	result, err := strategy.Plan(context.Background(), PlanRequest{Values: values})
	require.NoError(t, err)
	require.Len(t, result.Filled, 2)

	byField := make(map[string]float64)
	for _, f := range result.Filled {
		byField[f.Field] = f.Confidence
	}
	assert.InDelta(t, 0.9, byField["email"], 1e-9, "contact fields fill at high confidence")
	assert.InDelta(t, 0.6, byField["school"], 1e-9, "education fields fill at reduced confidence")
}

func TestSafePlanEmitsSelectorlessActions(t *testing.T) {
	builder := NewBuilder(nil, 0, nil)
	strategy := NewSafeStrategy(builder, nil)

	values := profile.ValueMap{"phone": "+1 5551234"}
	result, err := strategy.Plan(context.Background(), PlanRequest{Values: values})
	require.NoError(t, err)
	require.Len(t, result.Actions, 1)

	// The executor derives a multi-candidate selector from the field id, so
	// the static plan carries the canonical key there and nothing else.
	action := result.Actions[0]
	assert.Empty(t, action.Selector)
	assert.Equal(t, "phone", action.FieldID)
	assert.Equal(t, "+1 5551234", action.Value)
}

func TestSafePlanStandingBlockedList(t *testing.T) {
	builder := NewBuilder(nil, 0, nil)
	strategy := NewSafeStrategy(builder, nil)

	// Even with nothing to fill, demographic categories are reported blocked
	// so the caller learns they need explicit review.
	result, err := strategy.Plan(context.Background(), PlanRequest{Values: profile.ValueMap{}})
	require.NoError(t, err)
	assert.Empty(t, result.Filled)

	blocked := make(map[string]string)
	for _, b := range result.Blocked {
		blocked[b.Field] = b.Reason
	}
	for _, key := range []string{"gender", "ethnicity", "veteran_status", "disability_status"} {
		assert.Equal(t, "requires explicit review", blocked[key])
	}
}

func TestSafePlanSkipsNonWhitelistedKeys(t *testing.T) {
	builder := NewBuilder(nil, 0, nil)
	strategy := NewSafeStrategy(builder, nil)

	// Salary resolves but is not on the safe whitelist; the decline default
	// for gender must never be filled by the last-resort path.
	values := profile.ValueMap{
		"desired_salary": "120,000",
		"gender":         "Prefer not to say",
	}
	result, err := strategy.Plan(context.Background(), PlanRequest{Values: values})
	require.NoError(t, err)
	assert.Empty(t, result.Filled)
	assert.Empty(t, result.Actions)
}

func TestSafePlanHonorsDenylist(t *testing.T) {
	builder := NewBuilder([]string{"email"}, 0, nil)
	strategy := NewSafeStrategy(builder, nil)

	values := profile.ValueMap{"email": "a@b.com", "city": "Austin"}
	result, err := strategy.Plan(context.Background(), PlanRequest{Values: values})
	require.NoError(t, err)
	require.Len(t, result.Filled, 1)
	assert.Equal(t, "city", result.Filled[0].Field)
}
