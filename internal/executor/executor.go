// File: internal/executor/executor.go

// Package executor applies a fill plan against a live page, one action at a
// time, isolating failures so a single bad selector never aborts the run.
package executor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hireloop/autopilot/api/schemas"
)

// Executor drives planned actions through the page abstraction.
type Executor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{logger: logger.Named("executor")}
}

// Apply executes every action in order and reports the outcome. Each action
// runs in isolation: a failure is recorded as blocked and execution moves to
// the next action. The result's Filled and Blocked lists reflect what actually
// happened on the page, which the invariant keeps disjoint because each action
// lands in exactly one of them.
func (e *Executor) Apply(ctx context.Context, page schemas.Page, actions []schemas.FillAction) *schemas.FillPlanResult {
	result := schemas.NewFillPlanResult()

	for _, action := range actions {
		if err := ctx.Err(); err != nil {
			e.blockRemaining(result, actions, action, err)
			break
		}
		if action.Action == schemas.ActionSkip {
			continue
		}

		selector := action.Selector
		if selector == "" {
			selector = selectorFromFieldID(action.FieldID)
		}
		if selector == "" {
			result.Blocked = append(result.Blocked, schemas.BlockedField{
				Field:  actionName(action),
				Reason: "no usable selector",
			})
			continue
		}

		if err := e.perform(ctx, page, action, selector); err != nil {
			e.logger.Warn("Action failed; continuing.",
				zap.String("field", actionName(action)),
				zap.String("selector", selector),
				zap.String("action", string(action.Action)),
				zap.Error(err))
			result.Blocked = append(result.Blocked, schemas.BlockedField{
				Field:  actionName(action),
				Reason: err.Error(),
			})
			continue
		}

		result.Actions = append(result.Actions, action)
		if action.Action.MutatesValue() {
			result.Filled = append(result.Filled, schemas.FilledField{
				Field:      actionName(action),
				Value:      action.Value,
				Confidence: action.Confidence,
			})
		}
	}

	e.logger.Info("Plan execution complete.",
		zap.Int("applied", len(result.Actions)),
		zap.Int("blocked", len(result.Blocked)))
	return result
}

// perform dispatches one action to the page.
func (e *Executor) perform(ctx context.Context, page schemas.Page, action schemas.FillAction, selector string) error {
	switch action.Action {
	case schemas.ActionFill:
		return page.Fill(ctx, selector, action.Value)
	case schemas.ActionSelect:
		return page.SelectByLabel(ctx, selector, action.Value)
	case schemas.ActionCheck:
		return page.SetChecked(ctx, selector, true)
	case schemas.ActionUncheck:
		return page.SetChecked(ctx, selector, false)
	case schemas.ActionClick:
		return page.Click(ctx, selector)
	case schemas.ActionUpload:
		// File uploads need a staged local artifact the engine does not manage.
		return fmt.Errorf("upload actions are not executable")
	}
	return fmt.Errorf("unknown action %q", action.Action)
}

// blockRemaining records the current and all following actions as blocked when
// the context dies mid-run, so the caller can see exactly what was left undone.
func (e *Executor) blockRemaining(result *schemas.FillPlanResult, actions []schemas.FillAction, current schemas.FillAction, err error) {
	started := false
	for _, a := range actions {
		if !started {
			if a == current {
				started = true
			} else {
				continue
			}
		}
		if a.Action == schemas.ActionSkip {
			continue
		}
		result.Blocked = append(result.Blocked, schemas.BlockedField{
			Field:  actionName(a),
			Reason: err.Error(),
		})
	}
}

// selectorFromFieldID widens a bare field id into a multi-candidate selector.
// Field ids derived from DOM ids match the first branch; ids derived from the
// name attribute match the second.
func selectorFromFieldID(fieldID string) string {
	if fieldID == "" || strings.ContainsAny(fieldID, `"\`) {
		return ""
	}
	return fmt.Sprintf(`#%s, [name=%q], [id=%q]`, fieldID, fieldID, fieldID)
}

func actionName(a schemas.FillAction) string {
	switch {
	case a.Field != "":
		return a.Field
	case a.FieldID != "":
		return a.FieldID
	case a.Label != "":
		return a.Label
	}
	return a.Selector
}
