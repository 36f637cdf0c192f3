// File: internal/planner/strategy_test.go
package planner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/autopilot/api/schemas"
	"github.com/hireloop/autopilot/internal/match"
	"github.com/hireloop/autopilot/internal/profile"
)

// stubStrategy returns a fixed result or error.
type stubStrategy struct {
	name   string
	result *schemas.FillPlanResult
	err    error
	calls  int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Plan(ctx context.Context, req PlanRequest) (*schemas.FillPlanResult, error) {
	s.calls++
	return s.result, s.err
}

func filledResult(field, value string) *schemas.FillPlanResult {
	r := schemas.NewFillPlanResult()
	r.Filled = append(r.Filled, schemas.FilledField{Field: field, Value: value, Confidence: 0.8})
	r.Actions = append(r.Actions, schemas.FillAction{Field: field, Action: schemas.ActionFill, Value: value})
	return r
}

func someFields() []schemas.FieldDescriptor {
	return []schemas.FieldDescriptor{textField("email", "Email", "#email")}
}

func TestEngineStopsAtFirstNonEmptyResult(t *testing.T) {
	first := &stubStrategy{name: "first", result: schemas.NewFillPlanResult()}
	second := &stubStrategy{name: "second", result: filledResult("email", "a@b.com")}
	third := &stubStrategy{name: "third", result: filledResult("phone", "123")}

	engine := NewEngine(nil, first, second, third)
	result := engine.Plan(context.Background(), PlanRequest{Fields: someFields()})

	require.Len(t, result.Filled, 1)
	assert.Equal(t, "email", result.Filled[0].Field)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls, "the chain must stop at the first non-empty result")
}

func TestEngineTreatsErrorAsEmpty(t *testing.T) {
	failing := &stubStrategy{name: "failing", err: fmt.Errorf("provider unavailable")}
	fallback := &stubStrategy{name: "fallback", result: filledResult("email", "a@b.com")}

	engine := NewEngine(nil, failing, fallback)
	result := engine.Plan(context.Background(), PlanRequest{Fields: someFields()})

	require.Len(t, result.Filled, 1)
	assert.Equal(t, 1, fallback.calls)
}

func TestEnginePreservesFirstResultWhenNothingFills(t *testing.T) {
	first := schemas.NewFillPlanResult()
	first.Suggestions = append(first.Suggestions, schemas.Suggestion{Field: "school", Reason: "no data available for school"})

	engine := NewEngine(nil,
		&stubStrategy{name: "alias", result: first},
		&stubStrategy{name: "safe", result: schemas.NewFillPlanResult()},
	)
	result := engine.Plan(context.Background(), PlanRequest{Fields: someFields()})

	assert.Empty(t, result.Filled)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "school", result.Suggestions[0].Field)
}

func TestEngineNeverReturnsNil(t *testing.T) {
	engine := NewEngine(nil)
	result := engine.Plan(context.Background(), PlanRequest{})
	require.NotNil(t, result)
	assert.NotNil(t, result.Filled)
	assert.NotNil(t, result.Suggestions)
	assert.NotNil(t, result.Blocked)
}

// fakeProvider implements schemas.GenerativePlanner.
type fakeProvider struct {
	actions []schemas.FillAction
	err     error
}

func (p *fakeProvider) PlanActions(ctx context.Context, fields []schemas.FieldDescriptor, profile schemas.Profile, job schemas.JobContext) ([]schemas.FillAction, error) {
	return p.actions, p.err
}

func TestGenerativeStrategyFiltersOutput(t *testing.T) {
	provider := &fakeProvider{actions: []schemas.FillAction{
		{Field: "email", Selector: "#email", Action: schemas.ActionFill, Value: "a@b.com", Confidence: 0.7},
		{Field: "cover_letter", Selector: "#cl", Action: schemas.ActionFill, Value: "generated prose", Confidence: 0.6},
		{Field: "q_misc", Action: schemas.ActionSkip},
	}}
	builder := NewBuilder([]string{"cover_letter"}, 0, nil)
	strategy := NewGenerativeStrategy(provider, builder, nil)

	result, err := strategy.Plan(context.Background(), PlanRequest{Fields: someFields()})
	require.NoError(t, err)

	// Denylisted and skip entries are gone; only the real fill survives.
	require.Len(t, result.Actions, 1)
	assert.Equal(t, "email", result.Actions[0].Field)
	require.Len(t, result.Filled, 1)
	assert.Equal(t, "a@b.com", result.Filled[0].Value)
}

func TestGenerativeStrategyPropagatesProviderError(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("quota exceeded")}
	strategy := NewGenerativeStrategy(provider, NewBuilder(nil, 0, nil), nil)

	_, err := strategy.Plan(context.Background(), PlanRequest{Fields: someFields()})
	assert.Error(t, err)
}

func TestGenerativeStrategyNoProviderNoFields(t *testing.T) {
	strategy := NewGenerativeStrategy(nil, NewBuilder(nil, 0, nil), nil)
	result, err := strategy.Plan(context.Background(), PlanRequest{Fields: someFields()})
	require.NoError(t, err)
	assert.Nil(t, result, "a missing provider yields no plan, not an error")
}

func TestFullChainFallsBackToSafePlan(t *testing.T) {
	builder := NewBuilder([]string{"cover_letter"}, 0, nil)
	engine := NewEngine(nil,
		NewAliasStrategy(builder),
		NewSafeStrategy(builder, nil),
	)

	// No alias recognizes this label, so the alias plan comes back empty and
	// the static plan must still produce intended fills from the profile.
	fields := []schemas.FieldDescriptor{
		textField("q_contact", "Candidate electronic mail", "#q_contact"),
	}
	idx := match.BuildIndex(match.DefaultAliases())
	values := profile.ValueMap{
		"full_name": "Ada Lovelace",
		"email":     "ada@example.com",
		"phone":     "+44 5550100",
	}

	result := engine.Plan(context.Background(), PlanRequest{Fields: fields, Index: idx, Values: values})
	require.Len(t, result.Filled, 3)

	filled := make(map[string]bool)
	for _, f := range result.Filled {
		filled[f.Field] = true
	}
	assert.True(t, filled["full_name"])
	assert.True(t, filled["email"])
	assert.True(t, filled["phone"])
	for _, a := range result.Actions {
		assert.Empty(t, a.Selector, "static fills leave selector derivation to the executor")
		assert.NotEmpty(t, a.FieldID)
	}
}

func TestFullChainSurfacesSafeBlockedWhenNothingFills(t *testing.T) {
	builder := NewBuilder(nil, 0, nil)
	engine := NewEngine(nil,
		NewAliasStrategy(builder),
		NewSafeStrategy(builder, nil),
	)

	fields := []schemas.FieldDescriptor{
		textField("vet", "Protected Veteran Status", "#vet"),
	}
	idx := match.BuildIndex(match.DefaultAliases())

	// Nothing resolves a value, so no strategy fills; the safe plan's
	// standing blocked entry for the veteran field must survive the chain.
	result := engine.Plan(context.Background(), PlanRequest{Fields: fields, Index: idx, Values: profile.ValueMap{}})
	assert.Empty(t, result.Filled)

	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "veteran_status", result.Suggestions[0].Field)

	blocked := make(map[string]string)
	for _, b := range result.Blocked {
		blocked[b.Field] = b.Reason
	}
	assert.Equal(t, "requires explicit review", blocked["veteran_status"])
}

func TestFullChainAliasFirst(t *testing.T) {
	builder := NewBuilder([]string{"cover_letter"}, 0, nil)
	engine := NewEngine(nil,
		NewAliasStrategy(builder),
		NewSafeStrategy(builder, nil),
	)

	idx := match.BuildIndex(match.DefaultAliases())
	result := engine.Plan(context.Background(), PlanRequest{
		Fields: someFields(),
		Index:  idx,
		Values: profile.ValueMap{"email": "a@b.com"},
	})

	require.Len(t, result.Filled, 1)
	assert.InDelta(t, AliasConfidence, result.Filled[0].Confidence, 1e-9)
}
