// File: internal/autofill/engine_test.go
package autofill

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/autopilot/api/schemas"
	"github.com/hireloop/autopilot/internal/config"
	"github.com/hireloop/autopilot/internal/executor"
	"github.com/hireloop/autopilot/internal/match"
	"github.com/hireloop/autopilot/internal/planner"
	"github.com/hireloop/autopilot/internal/scanner"
)

// formPage is a single-frame page with a static field payload and recording
// write operations.
type formPage struct {
	payload  string
	fills    map[string]string
	failWith map[string]error
}

func newFormPage(payload string) *formPage {
	return &formPage{payload: payload, fills: make(map[string]string), failWith: make(map[string]error)}
}

func (p *formPage) Frames(ctx context.Context) ([]schemas.FrameInfo, error) {
	return []schemas.FrameInfo{{ID: "main", Main: true}}, nil
}

func (p *formPage) EvaluateInFrame(ctx context.Context, frameID, script string) (json.RawMessage, error) {
	return json.RawMessage(p.payload), nil
}

func (p *formPage) Fill(ctx context.Context, selector, value string) error {
	if err := p.failWith[selector]; err != nil {
		return err
	}
	p.fills[selector] = value
	return nil
}

func (p *formPage) SelectByLabel(ctx context.Context, selector, label string) error { return nil }
func (p *formPage) SetChecked(ctx context.Context, selector string, checked bool) error {
	return nil
}
func (p *formPage) Click(ctx context.Context, selector string) error { return nil }

func newTestEngine() *Engine {
	builder := planner.NewBuilder([]string{"cover_letter"}, 0, nil)
	return NewEngine(
		scanner.New(config.ScannerConfig{}, nil),
		match.NewFileStore(""),
		planner.NewEngine(nil, planner.NewAliasStrategy(builder), planner.NewSafeStrategy(builder, nil)),
		executor.New(nil),
		nil,
	)
}

func testProfile() schemas.Profile {
	return schemas.Profile{
		Name:    schemas.PersonName{First: "Ada", Last: "Lovelace"},
		Contact: schemas.Contact{Email: "ada@example.com", PhoneNumber: "5550001111"},
	}
}

const twoFieldForm = `[
	{"tag":"input","type":"text","id":"email","label":"Email Address"},
	{"tag":"input","type":"text","id":"school","label":"School"}
]`

func TestEngineRunEndToEnd(t *testing.T) {
	page := newFormPage(twoFieldForm)
	engine := newTestEngine()

	result, err := engine.Run(context.Background(), Request{
		Page:    page,
		Profile: testProfile(),
	})
	require.NoError(t, err)

	// Email fills; school is recognized but has no value.
	require.Len(t, result.Filled, 1)
	assert.Equal(t, "email", result.Filled[0].Field)
	assert.Equal(t, "ada@example.com", page.fills["#email"])

	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "no data available for school", result.Suggestions[0].Reason)
}

func TestEngineRunDryRunDoesNotTouchPage(t *testing.T) {
	page := newFormPage(twoFieldForm)
	engine := newTestEngine()

	result, err := engine.Run(context.Background(), Request{
		Page:    page,
		Profile: testProfile(),
		DryRun:  true,
	})
	require.NoError(t, err)

	assert.Len(t, result.Filled, 1, "the plan still reports intended fills")
	assert.Empty(t, page.fills, "dry run must not write to the page")
}

func TestEngineRunExecutionFailureBecomesBlocked(t *testing.T) {
	page := newFormPage(twoFieldForm)
	page.failWith["#email"] = fmt.Errorf("element detached")
	engine := newTestEngine()

	result, err := engine.Run(context.Background(), Request{
		Page:    page,
		Profile: testProfile(),
	})
	require.NoError(t, err)

	assert.Empty(t, result.Filled)
	require.Len(t, result.Blocked, 1)
	assert.Equal(t, "email", result.Blocked[0].Field)
}

func TestEngineRunEmptyPage(t *testing.T) {
	page := newFormPage("[]")
	engine := newTestEngine()

	result, err := engine.Run(context.Background(), Request{Page: page, Profile: testProfile()})
	require.NoError(t, err)
	assert.Empty(t, result.Filled)
	assert.Empty(t, result.Suggestions)
	assert.Empty(t, result.Blocked)
	assert.NotNil(t, result.Actions)
}
