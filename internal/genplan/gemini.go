// File: internal/genplan/gemini.go

// Package genplan produces fill plans from a generative model. It is the
// middle link of the planning fallback chain: consulted only when the
// deterministic alias plan fills nothing, and its output is always filtered
// by the planner before use.
package genplan

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/hireloop/autopilot/api/schemas"
	"github.com/hireloop/autopilot/internal/config"
)

// GeminiPlanner asks a Gemini model to map discovered page fields onto
// profile data. Implements schemas.GenerativePlanner.
type GeminiPlanner struct {
	client  *genai.Client
	cfg     config.LLMConfig
	logger  *zap.Logger
	timeout time.Duration
}

// NewGeminiPlanner constructs the planner and its API client.
func NewGeminiPlanner(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (*GeminiPlanner, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	return &GeminiPlanner{
		client:  client,
		cfg:     cfg,
		logger:  logger.Named("genplan.gemini"),
		timeout: timeout,
	}, nil
}

// PlanActions prompts the model with the field inventory and the applicant
// profile and parses its JSON action list. Transient API failures retry with
// exponential backoff; the whole call is bounded by the configured timeout.
func (p *GeminiPlanner) PlanActions(ctx context.Context, fields []schemas.FieldDescriptor, profile schemas.Profile, job schemas.JobContext) ([]schemas.FillAction, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	prompt, err := BuildPrompt(fields, profile, job)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(p.cfg.Temperature)),
	}
	if p.cfg.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(p.cfg.MaxTokens)
	}
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = p.timeout
	b.MaxInterval = 10 * time.Second

	var text string
	operation := func() error {
		start := time.Now()
		resp, err := p.client.Models.GenerateContent(ctx, p.cfg.Model, contents, genCfg)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			p.logger.Warn("Gemini request failed, retrying...", zap.Error(err))
			return err
		}
		p.logger.Debug("Gemini request succeeded.",
			zap.Duration("duration", time.Since(start)))
		text = resp.Text()
		return nil
	}
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("gemini plan request failed: %w", err)
	}

	actions, err := ParseActions(text)
	if err != nil {
		p.logger.Warn("Gemini returned an unparseable plan.",
			zap.Int("response_bytes", len(text)),
			zap.Error(err))
		return nil, err
	}
	return actions, nil
}
