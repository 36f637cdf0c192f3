// File: internal/autofill/engine.go

// Package autofill orchestrates one application pass: scan the page, resolve
// the applicant's values, plan, and execute.
package autofill

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hireloop/autopilot/api/schemas"
	"github.com/hireloop/autopilot/internal/executor"
	"github.com/hireloop/autopilot/internal/match"
	"github.com/hireloop/autopilot/internal/planner"
	"github.com/hireloop/autopilot/internal/profile"
	"github.com/hireloop/autopilot/internal/scanner"
)

// Request is one autofill pass over one loaded page.
type Request struct {
	Page    schemas.Page
	Profile schemas.Profile
	Job     schemas.JobContext

	// DryRun plans without touching the page.
	DryRun bool
}

// Engine wires the pipeline stages together. Stateless across requests; the
// alias index is rebuilt per request so store edits apply immediately.
type Engine struct {
	scanner  *scanner.Scanner
	aliases  schemas.AliasStore
	plan     *planner.Engine
	executor *executor.Executor
	logger   *zap.Logger
}

func NewEngine(sc *scanner.Scanner, aliases schemas.AliasStore, plan *planner.Engine, exec *executor.Executor, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		scanner:  sc,
		aliases:  aliases,
		plan:     plan,
		executor: exec,
		logger:   logger.Named("autofill"),
	}
}

// Run performs one pass. The returned result always has non-nil lists; the
// Filled entries reflect execution outcomes (or planned fills on a dry run),
// while Suggestions and Blocked carry everything the engine recognized but
// could not or would not fill.
func (e *Engine) Run(ctx context.Context, req Request) (*schemas.FillPlanResult, error) {
	fields, err := e.scanner.Scan(ctx, req.Page)
	if err != nil {
		return nil, fmt.Errorf("field scan failed: %w", err)
	}

	pairs, err := e.aliases.ListAliases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aliases: %w", err)
	}
	idx := match.BuildIndex(pairs)
	values := profile.BuildValueMap(req.Profile, req.Job)

	planned := e.plan.Plan(ctx, planner.PlanRequest{
		Fields:  fields,
		Index:   idx,
		Values:  values,
		Profile: req.Profile,
		Job:     req.Job,
	})

	if req.DryRun || len(planned.Actions) == 0 {
		e.logger.Info("Autofill pass complete (plan only).",
			zap.Int("fields", len(fields)),
			zap.Int("planned", len(planned.Actions)),
			zap.Bool("dry_run", req.DryRun))
		return planned, nil
	}

	executed := e.executor.Apply(ctx, req.Page, planned.Actions)

	// Planning outcomes that never reached execution still belong in the
	// final report.
	result := schemas.NewFillPlanResult()
	result.Actions = executed.Actions
	result.Filled = executed.Filled
	result.Suggestions = append(result.Suggestions, planned.Suggestions...)
	result.Blocked = append(result.Blocked, planned.Blocked...)
	result.Blocked = append(result.Blocked, executed.Blocked...)

	e.logger.Info("Autofill pass complete.",
		zap.Int("fields", len(fields)),
		zap.Int("filled", len(result.Filled)),
		zap.Int("suggestions", len(result.Suggestions)),
		zap.Int("blocked", len(result.Blocked)))
	return result, nil
}
