// -- cmd/bootstrap.go --
package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hireloop/autopilot/api/schemas"
	"github.com/hireloop/autopilot/internal/autofill"
	"github.com/hireloop/autopilot/internal/config"
	"github.com/hireloop/autopilot/internal/executor"
	"github.com/hireloop/autopilot/internal/genplan"
	"github.com/hireloop/autopilot/internal/match"
	"github.com/hireloop/autopilot/internal/planner"
	"github.com/hireloop/autopilot/internal/scanner"
)

// buildEngine assembles the autofill pipeline from the loaded configuration.
// The generative strategy joins the chain only when the LLM is enabled; the
// alias and safe strategies are always present.
func buildEngine(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*autofill.Engine, error) {
	builder := planner.NewBuilder(cfg.Planner.DenylistKeys, cfg.Planner.AliasConfidence, logger)

	strategies := []planner.Strategy{planner.NewAliasStrategy(builder)}
	if cfg.LLM.Enabled {
		provider, err := genplan.NewGeminiPlanner(ctx, cfg.LLM, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize generative planner: %w", err)
		}
		strategies = append(strategies, planner.NewGenerativeStrategy(provider, builder, logger))
	}
	strategies = append(strategies, planner.NewSafeStrategy(builder, logger))

	return autofill.NewEngine(
		scanner.New(cfg.Scanner, logger),
		match.NewFileStore(cfg.Planner.AliasFile),
		planner.NewEngine(logger, strategies...),
		executor.New(logger),
		logger,
	), nil
}

// jobContextFromFlags builds the job context passed to value resolution and
// generative planning.
func jobContextFromFlags(url, title, company string) schemas.JobContext {
	return schemas.JobContext{URL: url, Title: title, Company: company}
}
