// File: internal/planner/strategy.go
package planner

import (
	"context"

	"go.uber.org/zap"

	"github.com/hireloop/autopilot/api/schemas"
	"github.com/hireloop/autopilot/internal/match"
	"github.com/hireloop/autopilot/internal/profile"
)

// PlanRequest carries everything a strategy may need to produce a plan.
type PlanRequest struct {
	Fields  []schemas.FieldDescriptor
	Index   match.AliasIndex
	Values  profile.ValueMap
	Profile schemas.Profile
	Job     schemas.JobContext
}

// Strategy is one way of producing a fill plan. Strategies run in a fixed
// order; the first one yielding any filled entry wins. A strategy signals "no
// plan" by returning a result with no filled entries (or an error, which is
// logged and treated the same way).
type Strategy interface {
	Name() string
	Plan(ctx context.Context, req PlanRequest) (*schemas.FillPlanResult, error)
}

// Engine runs the ordered fallback chain: alias plan, then the generative
// plan when configured, then the static safe-field plan.
type Engine struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewEngine assembles an engine over the given strategies, in order.
func NewEngine(logger *zap.Logger, strategies ...Strategy) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{strategies: strategies, logger: logger.Named("plan_engine")}
}

// Plan runs the chain. When no field was discovered at all there is nothing
// to fall back to: the (possibly empty) first-strategy result is returned
// as-is. Otherwise each strategy runs in turn until one fills something; its
// result is returned with the advisory entries of the strategies that ran
// before it folded in. If none fills, the accumulated suggestions and blocked
// entries from every strategy survive for user messaging; worst case is an
// empty result, never nil.
func (e *Engine) Plan(ctx context.Context, req PlanRequest) *schemas.FillPlanResult {
	var merged *schemas.FillPlanResult

	for _, strategy := range e.strategies {
		if err := ctx.Err(); err != nil {
			break
		}

		result, err := strategy.Plan(ctx, req)
		if err != nil {
			e.logger.Warn("Plan strategy failed; falling through.",
				zap.String("strategy", strategy.Name()),
				zap.Error(err))
			continue
		}
		if result == nil {
			continue
		}
		if len(result.Filled) > 0 {
			e.logger.Info("Plan strategy produced fills.",
				zap.String("strategy", strategy.Name()),
				zap.Int("filled", len(result.Filled)))
			if merged != nil {
				foldAdvice(result, merged)
			}
			return result
		}
		if merged == nil {
			merged = result
		} else {
			foldAdvice(merged, result)
		}
		// Nothing filled: only keep falling through while there are fields a
		// later strategy could still act on.
		if len(req.Fields) == 0 {
			break
		}
	}

	if merged == nil {
		return schemas.NewFillPlanResult()
	}
	return merged
}

// foldAdvice copies suggestions and blocked entries from src into dst,
// skipping fields dst already accounts for. A field dst filled or blocked
// never gains another entry, which keeps filled and blocked disjoint across
// strategy boundaries.
func foldAdvice(dst, src *schemas.FillPlanResult) {
	reported := make(map[string]bool, len(dst.Filled)+len(dst.Blocked))
	for _, f := range dst.Filled {
		reported[f.Field] = true
	}
	for _, b := range dst.Blocked {
		reported[b.Field] = true
	}
	suggested := make(map[string]bool, len(dst.Suggestions))
	for _, s := range dst.Suggestions {
		suggested[s.Field] = true
	}

	for _, s := range src.Suggestions {
		if reported[s.Field] || suggested[s.Field] {
			continue
		}
		suggested[s.Field] = true
		dst.Suggestions = append(dst.Suggestions, s)
	}
	for _, b := range src.Blocked {
		if reported[b.Field] {
			continue
		}
		reported[b.Field] = true
		dst.Blocked = append(dst.Blocked, b)
	}
}

// -- Alias strategy --

// AliasStrategy wraps the deterministic alias plan builder.
type AliasStrategy struct {
	builder *Builder
}

func NewAliasStrategy(builder *Builder) *AliasStrategy {
	return &AliasStrategy{builder: builder}
}

func (s *AliasStrategy) Name() string { return "alias" }

func (s *AliasStrategy) Plan(ctx context.Context, req PlanRequest) (*schemas.FillPlanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.builder.BuildAliasPlan(req.Fields, req.Index, req.Values), nil
}

// -- Generative strategy --

// GenerativeStrategy adapts the external generative planner into the chain.
// Its output is untrusted: denylisted keys and skip entries are filtered out
// before the plan is accepted, and the call is bounded by the configured
// timeout so a slow provider degrades into "no generative plan available".
type GenerativeStrategy struct {
	provider schemas.GenerativePlanner
	builder  *Builder
	logger   *zap.Logger
}

func NewGenerativeStrategy(provider schemas.GenerativePlanner, builder *Builder, logger *zap.Logger) *GenerativeStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerativeStrategy{provider: provider, builder: builder, logger: logger.Named("generative_strategy")}
}

func (s *GenerativeStrategy) Name() string { return "generative" }

func (s *GenerativeStrategy) Plan(ctx context.Context, req PlanRequest) (*schemas.FillPlanResult, error) {
	if s.provider == nil || len(req.Fields) == 0 {
		return nil, nil
	}

	actions, err := s.provider.PlanActions(ctx, req.Fields, req.Profile, req.Job)
	if err != nil {
		return nil, err
	}

	result := schemas.NewFillPlanResult()
	for _, action := range actions {
		if action.Action == schemas.ActionSkip {
			continue
		}
		if s.builder.Denylisted(action.Field) {
			s.logger.Debug("Dropping denylisted generative action.",
				zap.String("field", action.Field))
			continue
		}
		result.Actions = append(result.Actions, action)
		if action.Action.MutatesValue() && action.Value != "" {
			result.Filled = append(result.Filled, schemas.FilledField{
				Field:      action.Field,
				Value:      action.Value,
				Confidence: action.Confidence,
			})
		}
	}
	return result, nil
}
