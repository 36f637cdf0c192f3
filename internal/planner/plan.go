// File: internal/planner/plan.go
package planner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hireloop/autopilot/api/schemas"
	"github.com/hireloop/autopilot/internal/match"
	"github.com/hireloop/autopilot/internal/profile"
)

// AliasConfidence is the fixed confidence for deterministic alias-resolved
// fills, deliberately below review thresholds used for human-confirmed values
// but above generative guesses.
const AliasConfidence = 0.75

// Builder constructs the deterministic alias-based fill plan.
type Builder struct {
	denylist   map[string]bool
	confidence float64
	logger     *zap.Logger
}

// NewBuilder creates a plan builder. denylistKeys names canonical keys that
// must never be auto-filled from the profile (cover letters need generated
// prose, not a lookup). Zero confidence falls back to AliasConfidence.
func NewBuilder(denylistKeys []string, confidence float64, logger *zap.Logger) *Builder {
	if confidence <= 0 {
		confidence = AliasConfidence
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	deny := make(map[string]bool, len(denylistKeys))
	for _, k := range denylistKeys {
		deny[k] = true
	}
	return &Builder{denylist: deny, confidence: confidence, logger: logger.Named("planner")}
}

// Denylisted reports whether a canonical key is excluded from automatic fill.
func (b *Builder) Denylisted(key string) bool {
	return b.denylist[key]
}

// BuildAliasPlan resolves every field against the alias index and the value
// map, producing the primary fill plan.
//
// Per field, in order: unmatched fields are skipped entirely (unrecognized,
// not blocked); denylisted keys are skipped; duplicate field names are
// dropped after the first occurrence (multi-step forms render visually
// identical duplicate controls); an empty value yields a suggestion; a
// missing selector yields a blocked entry; everything else becomes a fill or
// select action.
func (b *Builder) BuildAliasPlan(fields []schemas.FieldDescriptor, idx match.AliasIndex, values profile.ValueMap) *schemas.FillPlanResult {
	result := schemas.NewFillPlanResult()
	seen := make(map[string]bool, len(fields))

	for i := range fields {
		field := &fields[i]

		key, ok := match.MatchField(field, idx)
		if !ok {
			continue // unrecognized: excluded from the alias plan entirely
		}
		if b.denylist[key] {
			b.logger.Debug("Skipping denylisted field.",
				zap.String("field_id", field.FieldID),
				zap.String("canonical_key", key))
			continue
		}

		name := fieldName(field, key)
		if seen[name] {
			continue
		}
		seen[name] = true

		value := values[key]
		if value == "" {
			result.Suggestions = append(result.Suggestions, schemas.Suggestion{
				Field:  key,
				Reason: fmt.Sprintf("no data available for %s", key),
			})
			continue
		}

		selector := field.Locator.Selector
		if selector == "" {
			result.Blocked = append(result.Blocked, schemas.BlockedField{
				Field:  name,
				Reason: "no usable selector",
			})
			continue
		}

		action := schemas.ActionFill
		if field.Kind == schemas.FieldSelect {
			action = schemas.ActionSelect
		}

		fill := schemas.FillAction{
			Field:      key,
			FieldID:    field.FieldID,
			Label:      field.Label,
			Selector:   selector,
			Action:     action,
			Value:      value,
			Confidence: b.confidence,
		}
		result.Actions = append(result.Actions, fill)
		result.Filled = append(result.Filled, schemas.FilledField{
			Field:      key,
			Value:      value,
			Confidence: b.confidence,
		})
	}

	return result
}

// fieldName picks the human field name used for deduplication: fieldId, then
// name, then DOM id, then the matched label, then the canonical key.
func fieldName(field *schemas.FieldDescriptor, key string) string {
	switch {
	case field.FieldID != "":
		return field.FieldID
	case field.Name != "":
		return field.Name
	case field.DOMID != "":
		return field.DOMID
	case field.Label != "":
		return field.Label
	}
	return key
}
