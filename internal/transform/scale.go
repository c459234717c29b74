package transform

import (
	"fmt"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
)

// ScaleAllEffects multiplies every effect of every present pathway by Factor.
type ScaleAllEffects struct {
	Factor decimal.Decimal
}

func (s *ScaleAllEffects) Name() string {
	return "scale_effects"
}

func (s *ScaleAllEffects) Description() string {
	return fmt.Sprintf("Scale all effect magnitudes by %s", s.Factor.String())
}

func (s *ScaleAllEffects) Validate(base domain.InterventionParameters) error {
	if s.Factor.IsNegative() {
		return NewTransformError(s.Name(), "validate", "factor cannot be negative", nil)
	}
	return nil
}

func (s *ScaleAllEffects) Apply(base domain.InterventionParameters) (domain.InterventionParameters, error) {
	return ScaleEffects(base, s.Factor), nil
}

// ScaleEffectValue multiplies a single named effect by Factor.
type ScaleEffectValue struct {
	Effect string
	Factor decimal.Decimal
}

func (s *ScaleEffectValue) Name() string {
	return "scale_effect"
}

func (s *ScaleEffectValue) Description() string {
	return fmt.Sprintf("Scale %s by %s", s.Effect, s.Factor.String())
}

func (s *ScaleEffectValue) Validate(base domain.InterventionParameters) error {
	if s.Factor.IsNegative() {
		return NewTransformError(s.Name(), "validate", "factor cannot be negative", nil)
	}
	if _, err := EffectValue(base, s.Effect); err != nil {
		return NewTransformError(s.Name(), "validate", "effect not available", err)
	}
	return nil
}

func (s *ScaleEffectValue) Apply(base domain.InterventionParameters) (domain.InterventionParameters, error) {
	return ScaleEffect(base, s.Effect, s.Factor)
}

// SetEffectValue replaces a single named effect with Value.
type SetEffectValue struct {
	Effect string
	Value  decimal.Decimal
}

func (s *SetEffectValue) Name() string {
	return "set_effect"
}

func (s *SetEffectValue) Description() string {
	return fmt.Sprintf("Set %s to %s", s.Effect, s.Value.String())
}

func (s *SetEffectValue) Validate(base domain.InterventionParameters) error {
	if _, err := EffectValue(base, s.Effect); err != nil {
		return NewTransformError(s.Name(), "validate", "effect not available", err)
	}
	return nil
}

func (s *SetEffectValue) Apply(base domain.InterventionParameters) (domain.InterventionParameters, error) {
	out, err := SetEffect(base, s.Effect, s.Value)
	if err != nil {
		return domain.InterventionParameters{}, NewTransformError(s.Name(), "apply", "value out of range", err)
	}
	return out, nil
}

// DropPathway removes an optional pathway so it is no longer modeled.
type DropPathway struct {
	Pathway domain.Pathway
}

func (d *DropPathway) Name() string {
	return "remove_pathway"
}

func (d *DropPathway) Description() string {
	return fmt.Sprintf("Stop modeling the %s pathway", d.Pathway)
}

func (d *DropPathway) Validate(base domain.InterventionParameters) error {
	switch d.Pathway {
	case domain.PathwayCognitive, domain.PathwayKidney, domain.PathwayPhysical:
		return nil
	}
	return NewTransformError(d.Name(), "validate", fmt.Sprintf("pathway %q cannot be removed", d.Pathway), nil)
}

func (d *DropPathway) Apply(base domain.InterventionParameters) (domain.InterventionParameters, error) {
	return RemovePathway(base, d.Pathway)
}
