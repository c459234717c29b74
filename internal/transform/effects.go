package transform

import (
	"fmt"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
)

// Effect names accepted by SetEffect, ScaleEffect and the registry.
const (
	EffectIQIncrease              = "iq_increase"
	EffectAlzheimersReduction     = "alzheimers_reduction"
	EffectEGFRImprovement         = "egfr_improvement"
	EffectCKDProgressionReduction = "ckd_progression_reduction"
	EffectMuscleMassChange        = "muscle_mass_change"
	EffectFatMassChange           = "fat_mass_change"
	EffectLifespanIncreaseYears   = "lifespan_increase_years"
	EffectHealthspanImprovement   = "healthspan_improvement"
	EffectHospitalVisitReduction  = "hospital_visit_reduction"
)

// Effect describes one scalar effect leaf in an intervention parameter tree
type Effect struct {
	Name    string
	Pathway domain.Pathway
	Unit    string
	leaf    func(ip *domain.InterventionParameters) *decimal.Decimal
}

var effects = []Effect{
	{EffectIQIncrease, domain.PathwayCognitive, "points", func(ip *domain.InterventionParameters) *decimal.Decimal {
		if ip.Cognitive == nil {
			return nil
		}
		return &ip.Cognitive.IQIncrease
	}},
	{EffectAlzheimersReduction, domain.PathwayCognitive, "%", func(ip *domain.InterventionParameters) *decimal.Decimal {
		if ip.Cognitive == nil {
			return nil
		}
		return &ip.Cognitive.AlzheimersReduction
	}},
	{EffectEGFRImprovement, domain.PathwayKidney, "mL/min/1.73m²", func(ip *domain.InterventionParameters) *decimal.Decimal {
		if ip.Kidney == nil {
			return nil
		}
		return &ip.Kidney.EGFRImprovement
	}},
	{EffectCKDProgressionReduction, domain.PathwayKidney, "%", func(ip *domain.InterventionParameters) *decimal.Decimal {
		if ip.Kidney == nil {
			return nil
		}
		return &ip.Kidney.CKDProgressionReduction
	}},
	{EffectMuscleMassChange, domain.PathwayPhysical, "lbs", func(ip *domain.InterventionParameters) *decimal.Decimal {
		if ip.Physical == nil {
			return nil
		}
		return &ip.Physical.MuscleMassChangeLb
	}},
	{EffectFatMassChange, domain.PathwayPhysical, "lbs", func(ip *domain.InterventionParameters) *decimal.Decimal {
		if ip.Physical == nil {
			return nil
		}
		return &ip.Physical.FatMassChangeLb
	}},
	{EffectLifespanIncreaseYears, domain.PathwayLongevity, "years", func(ip *domain.InterventionParameters) *decimal.Decimal {
		return &ip.Longevity.LifespanIncreaseYears
	}},
	{EffectHealthspanImprovement, domain.PathwayLongevity, "%", func(ip *domain.InterventionParameters) *decimal.Decimal {
		return &ip.Longevity.HealthspanImprovementPercent
	}},
	{EffectHospitalVisitReduction, domain.PathwayHealthcare, "%", func(ip *domain.InterventionParameters) *decimal.Decimal {
		return &ip.Healthcare.HospitalVisitReductionPercent
	}},
}

// EffectNames returns every effect name in pathway order.
func EffectNames() []string {
	names := make([]string, len(effects))
	for i, e := range effects {
		names[i] = e.Name
	}
	return names
}

// LookupEffect returns the effect with the given name.
func LookupEffect(name string) (Effect, bool) {
	for _, e := range effects {
		if e.Name == name {
			return e, true
		}
	}
	return Effect{}, false
}

// Present reports whether the effect's pathway is modeled in ip.
func (e Effect) Present(ip domain.InterventionParameters) bool {
	return e.leaf(&ip) != nil
}

// EffectValue returns the current value of a named effect.
func EffectValue(ip domain.InterventionParameters, name string) (decimal.Decimal, error) {
	e, ok := LookupEffect(name)
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown effect %q", name)
	}
	v := e.leaf(&ip)
	if v == nil {
		return decimal.Zero, fmt.Errorf("effect %q: %s pathway is not modeled", name, e.Pathway)
	}
	return *v, nil
}

// ScaleEffects returns a new parameter tree with every effect of every
// present pathway multiplied by factor. Impact modifiers are not scaled.
// The result is not range-validated.
func ScaleEffects(ip domain.InterventionParameters, factor decimal.Decimal) domain.InterventionParameters {
	out := ip.DeepCopy()
	for _, e := range effects {
		if v := e.leaf(&out); v != nil {
			*v = v.Mul(factor)
		}
	}
	return out
}

// ScaleEffect returns a new parameter tree with one effect multiplied by
// factor. The result is not range-validated.
func ScaleEffect(ip domain.InterventionParameters, name string, factor decimal.Decimal) (domain.InterventionParameters, error) {
	current, err := EffectValue(ip, name)
	if err != nil {
		return domain.InterventionParameters{}, err
	}
	return replaceEffect(ip, name, current.Mul(factor)), nil
}

// SetEffect returns a new parameter tree with one effect replaced. The
// result is validated, so out-of-range values produce a ValidationError.
func SetEffect(ip domain.InterventionParameters, name string, value decimal.Decimal) (domain.InterventionParameters, error) {
	if _, err := EffectValue(ip, name); err != nil {
		return domain.InterventionParameters{}, err
	}
	out := replaceEffect(ip, name, value)
	if err := out.Validate(); err != nil {
		return domain.InterventionParameters{}, err
	}
	return out, nil
}

// OverrideEffect returns a new parameter tree with one effect replaced,
// without range validation.
func OverrideEffect(ip domain.InterventionParameters, name string, value decimal.Decimal) (domain.InterventionParameters, error) {
	if _, err := EffectValue(ip, name); err != nil {
		return domain.InterventionParameters{}, err
	}
	return replaceEffect(ip, name, value), nil
}

func replaceEffect(ip domain.InterventionParameters, name string, value decimal.Decimal) domain.InterventionParameters {
	out := ip.DeepCopy()
	e, _ := LookupEffect(name)
	*e.leaf(&out) = value
	return out
}

// RemovePathway returns a new parameter tree without the given optional pathway.
func RemovePathway(ip domain.InterventionParameters, pathway domain.Pathway) (domain.InterventionParameters, error) {
	out := ip.DeepCopy()
	switch pathway {
	case domain.PathwayCognitive:
		out.Cognitive = nil
	case domain.PathwayKidney:
		out.Kidney = nil
	case domain.PathwayPhysical:
		out.Physical = nil
	default:
		return domain.InterventionParameters{}, fmt.Errorf("pathway %q is required and cannot be removed", pathway)
	}
	return out, nil
}
