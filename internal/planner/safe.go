// File: internal/planner/safe.go
package planner

import (
	"context"

	"go.uber.org/zap"

	"github.com/hireloop/autopilot/api/schemas"
	"github.com/hireloop/autopilot/internal/profile"
)

// Confidence tiers for the static safe-field plan. Identity and contact
// values come straight from the profile; career and education values are more
// likely to need tailoring per application.
const (
	safeIdentityConfidence = 0.9
	safeCareerConfidence   = 0.6
)

// safePlanKeys whitelists the canonical keys the last-resort plan is allowed
// to fill, in plan order, with their confidence tier. Anything absent here is
// never touched by the safe plan.
var safePlanKeys = []struct {
	key        string
	confidence float64
}{
	{profile.KeyFullName, safeIdentityConfidence},
	{profile.KeyFirstName, safeIdentityConfidence},
	{profile.KeyLastName, safeIdentityConfidence},
	{profile.KeyEmail, safeIdentityConfidence},
	{profile.KeyPhone, safeIdentityConfidence},
	{profile.KeyAddress, safeIdentityConfidence},
	{profile.KeyCity, safeIdentityConfidence},
	{profile.KeyState, safeIdentityConfidence},
	{profile.KeyCountry, safeIdentityConfidence},
	{profile.KeyPostalCode, safeIdentityConfidence},
	{profile.KeyCurrentLocation, safeIdentityConfidence},
	{profile.KeyLinkedIn, safeIdentityConfidence},
	{profile.KeyPortfolio, safeIdentityConfidence},
	{profile.KeyGitHub, safeIdentityConfidence},

	{profile.KeyJobTitle, safeCareerConfidence},
	{profile.KeyCurrentCompany, safeCareerConfidence},
	{profile.KeyYearsExperience, safeCareerConfidence},
	{profile.KeySchool, safeCareerConfidence},
	{profile.KeyDegree, safeCareerConfidence},
	{profile.KeyMajor, safeCareerConfidence},
	{profile.KeyGraduationDate, safeCareerConfidence},
}

// sensitiveKeys form the safe plan's standing blocked list. Demographic
// self-identification must never be answered by the last-resort path, not
// even with the decline option.
var sensitiveKeys = []string{
	profile.KeyGender,
	profile.KeyEthnicity,
	profile.KeyVeteranStatus,
	profile.KeyDisability,
}

// SafeStrategy is the terminal fallback. It never consults the scanned
// fields or the alias index (those gates already failed by the time it
// runs); instead it emits intended fills straight from the whitelisted
// profile keys, selector-less, with the canonical key as the field id. The
// executor widens each field id into a multi-candidate selector at apply
// time, so whatever the page does expose under a matching id or name still
// gets filled.
type SafeStrategy struct {
	builder *Builder
	logger  *zap.Logger
}

func NewSafeStrategy(builder *Builder, logger *zap.Logger) *SafeStrategy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SafeStrategy{builder: builder, logger: logger.Named("safe_strategy")}
}

func (s *SafeStrategy) Name() string { return "safe" }

func (s *SafeStrategy) Plan(ctx context.Context, req PlanRequest) (*schemas.FillPlanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := schemas.NewFillPlanResult()

	for _, entry := range safePlanKeys {
		if s.builder.Denylisted(entry.key) {
			continue
		}
		value := req.Values[entry.key]
		if value == "" {
			continue
		}
		result.Actions = append(result.Actions, schemas.FillAction{
			Field:      entry.key,
			FieldID:    entry.key,
			Action:     schemas.ActionFill,
			Value:      value,
			Confidence: entry.confidence,
		})
		result.Filled = append(result.Filled, schemas.FilledField{
			Field:      entry.key,
			Value:      value,
			Confidence: entry.confidence,
		})
	}

	for _, key := range sensitiveKeys {
		result.Blocked = append(result.Blocked, schemas.BlockedField{
			Field:  key,
			Reason: "requires explicit review",
		})
	}

	s.logger.Debug("Safe plan built.",
		zap.Int("filled", len(result.Filled)),
		zap.Int("blocked", len(result.Blocked)))
	return result, nil
}
