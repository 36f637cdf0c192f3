package schemas

import (
	"fmt"
	"strings"
)

// -- Fill Plan Schemas --

// ActionKind is the directed operation to perform against one control.
type ActionKind string

const (
	ActionFill    ActionKind = "fill"
	ActionSelect  ActionKind = "select"
	ActionCheck   ActionKind = "check"
	ActionUncheck ActionKind = "uncheck"
	ActionClick   ActionKind = "click"
	ActionUpload  ActionKind = "upload"
	ActionSkip    ActionKind = "skip"
)

// MutatesValue reports whether the action writes into a control and therefore
// must carry a non-empty selector before it may be executed.
func (k ActionKind) MutatesValue() bool {
	switch k {
	case ActionFill, ActionSelect, ActionCheck, ActionUncheck:
		return true
	}
	return false
}

// FillAction is one planned operation against one field.
type FillAction struct {
	// Field is the human field name the plan deduplicates on (canonical key
	// for alias plans, fieldId/name for generative plans).
	Field      string     `json:"field"`
	FieldID    string     `json:"fieldId,omitempty"`
	Label      string     `json:"label,omitempty"`
	Selector   string     `json:"selector,omitempty"`
	Action     ActionKind `json:"action"`
	Value      string     `json:"value,omitempty"`
	Confidence float64    `json:"confidence"`

	// RequiresReview flags fills a human should confirm before submission.
	RequiresReview bool `json:"requiresReview,omitempty"`
}

// FilledField records a successful (or intended) fill with its confidence.
type FilledField struct {
	Field      string  `json:"field"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// Suggestion records a recognized field the engine could not produce a value
// for, with a human-readable reason for the route layer.
type Suggestion struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// BlockedField records a field that was recognized but is not safely
// actionable: missing selector, excluded by policy, or execution failure.
type BlockedField struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// FillPlanResult is the aggregate outcome of planning or execution.
//
// Invariant: a field name appears in at most one of Filled and Blocked, and
// appears in Suggestions only when it produced no value.
type FillPlanResult struct {
	Filled      []FilledField `json:"filled"`
	Suggestions []Suggestion  `json:"suggestions"`
	Blocked     []BlockedField `json:"blocked"`

	// Actions is the full ordered operation list, a superset of Filled.
	Actions []FillAction `json:"actions"`
}

// NewFillPlanResult returns a result with all lists allocated and empty, so an
// empty plan still marshals as [] rather than null.
func NewFillPlanResult() *FillPlanResult {
	return &FillPlanResult{
		Filled:      []FilledField{},
		Suggestions: []Suggestion{},
		Blocked:     []BlockedField{},
		Actions:     []FillAction{},
	}
}

// Summary renders a short human-readable account of the result for CLI output
// and route-layer messaging.
func (r *FillPlanResult) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "filled %d, needs input %d, blocked %d\n", len(r.Filled), len(r.Suggestions), len(r.Blocked))
	for _, f := range r.Filled {
		fmt.Fprintf(&sb, "  + %s = %q (confidence %.2f)\n", f.Field, f.Value, f.Confidence)
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(&sb, "  ? %s: %s\n", s.Field, s.Reason)
	}
	for _, b := range r.Blocked {
		fmt.Fprintf(&sb, "  ! %s: %s\n", b.Field, b.Reason)
	}
	return sb.String()
}
