package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	iqIncreaseRange            = newRange("-5", "10")
	alzheimersReductionRange   = newRange("0", "50")
	egfrImprovementRange       = newRange("-5", "30")
	ckdReductionRange          = newRange("0", "50")
	muscleMassChangeRange      = newRange("-10", "10")
	fatMassChangeRange         = newRange("-30", "10")
	lifespanIncreaseRange      = newRange("0", "20")
	healthspanImprovementRange = newRange("0", "100")
	hospitalReductionRange     = newRange("0", "50")
)

var effectRanges = map[string]valueRange{
	"iq_increase":               iqIncreaseRange,
	"alzheimers_reduction":      alzheimersReductionRange,
	"egfr_improvement":          egfrImprovementRange,
	"ckd_progression_reduction": ckdReductionRange,
	"muscle_mass_change":        muscleMassChangeRange,
	"fat_mass_change":           fatMassChangeRange,
	"lifespan_increase_years":   lifespanIncreaseRange,
	"healthspan_improvement":    healthspanImprovementRange,
	"hospital_visit_reduction":  hospitalReductionRange,
}

// EffectRange returns the inclusive valid range of an effect field.
func EffectRange(field string) (min, max decimal.Decimal, ok bool) {
	r, ok := effectRanges[field]
	return r.Min, r.Max, ok
}

// CognitiveParams describes cognitive effects. Percentages are in [0, 100].
type CognitiveParams struct {
	IQIncrease          decimal.Decimal `yaml:"iq_increase" json:"iqIncrease"`
	AlzheimersReduction decimal.Decimal `yaml:"alzheimers_reduction" json:"alzheimersReduction"`
}

// NewCognitiveParams builds validated cognitive parameters.
func NewCognitiveParams(iqIncrease, alzheimersReduction decimal.Decimal) (*CognitiveParams, error) {
	p := &CognitiveParams{IQIncrease: iqIncrease, AlzheimersReduction: alzheimersReduction}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p CognitiveParams) Validate() error {
	return errors.Join(
		iqIncreaseRange.check("iq_increase", p.IQIncrease),
		alzheimersReductionRange.check("alzheimers_reduction", p.AlzheimersReduction),
	)
}

// KidneyParams describes kidney function effects.
type KidneyParams struct {
	EGFRImprovement         decimal.Decimal `yaml:"egfr_improvement" json:"egfrImprovement"`
	CKDProgressionReduction decimal.Decimal `yaml:"ckd_progression_reduction" json:"ckdProgressionReduction"`
}

// NewKidneyParams builds validated kidney parameters.
func NewKidneyParams(egfrImprovement, ckdProgressionReduction decimal.Decimal) (*KidneyParams, error) {
	p := &KidneyParams{EGFRImprovement: egfrImprovement, CKDProgressionReduction: ckdProgressionReduction}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p KidneyParams) Validate() error {
	return errors.Join(
		egfrImprovementRange.check("egfr_improvement", p.EGFRImprovement),
		ckdReductionRange.check("ckd_progression_reduction", p.CKDProgressionReduction),
	)
}

// PhysicalParams describes body composition changes in pounds per person.
type PhysicalParams struct {
	MuscleMassChangeLb decimal.Decimal `yaml:"muscle_mass_change" json:"muscleMassChangeLb"`
	FatMassChangeLb    decimal.Decimal `yaml:"fat_mass_change" json:"fatMassChangeLb"`
}

// NewPhysicalParams builds validated physical parameters.
func NewPhysicalParams(muscleMassChangeLb, fatMassChangeLb decimal.Decimal) (*PhysicalParams, error) {
	p := &PhysicalParams{MuscleMassChangeLb: muscleMassChangeLb, FatMassChangeLb: fatMassChangeLb}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p PhysicalParams) Validate() error {
	return errors.Join(
		muscleMassChangeRange.check("muscle_mass_change", p.MuscleMassChangeLb),
		fatMassChangeRange.check("fat_mass_change", p.FatMassChangeLb),
	)
}

// LongevityParams describes lifespan effects. Lifespan is always in years;
// percent-of-life-expectancy inputs are converted by the configuration loader.
type LongevityParams struct {
	LifespanIncreaseYears        decimal.Decimal `yaml:"lifespan_increase_years" json:"lifespanIncreaseYears"`
	HealthspanImprovementPercent decimal.Decimal `yaml:"healthspan_improvement" json:"healthspanImprovementPercent"`
}

// NewLongevityParams builds validated longevity parameters.
func NewLongevityParams(lifespanIncreaseYears, healthspanImprovementPercent decimal.Decimal) (LongevityParams, error) {
	p := LongevityParams{LifespanIncreaseYears: lifespanIncreaseYears, HealthspanImprovementPercent: healthspanImprovementPercent}
	if err := p.Validate(); err != nil {
		return LongevityParams{}, err
	}
	return p, nil
}

func (p LongevityParams) Validate() error {
	return errors.Join(
		lifespanIncreaseRange.check("lifespan_increase_years", p.LifespanIncreaseYears),
		healthspanImprovementRange.check("healthspan_improvement", p.HealthspanImprovementPercent),
	)
}

// HealthcareUtilizationParams describes the reduction in hospital visits.
type HealthcareUtilizationParams struct {
	HospitalVisitReductionPercent decimal.Decimal `yaml:"hospital_visit_reduction" json:"hospitalVisitReductionPercent"`
}

// NewHealthcareUtilizationParams builds validated healthcare utilization parameters.
func NewHealthcareUtilizationParams(hospitalVisitReductionPercent decimal.Decimal) (HealthcareUtilizationParams, error) {
	p := HealthcareUtilizationParams{HospitalVisitReductionPercent: hospitalVisitReductionPercent}
	if err := p.Validate(); err != nil {
		return HealthcareUtilizationParams{}, err
	}
	return p, nil
}

func (p HealthcareUtilizationParams) Validate() error {
	return hospitalReductionRange.check("hospital_visit_reduction", p.HospitalVisitReductionPercent)
}

// InterventionParameters bundles the per-pathway effects of one intervention.
// A nil optional pathway means the pathway is not modeled for the intervention.
type InterventionParameters struct {
	Cognitive  *CognitiveParams            `yaml:"cognitive,omitempty" json:"cognitive,omitempty"`
	Kidney     *KidneyParams               `yaml:"kidney,omitempty" json:"kidney,omitempty"`
	Physical   *PhysicalParams             `yaml:"physical,omitempty" json:"physical,omitempty"`
	Longevity  LongevityParams             `yaml:"longevity" json:"longevity"`
	Healthcare HealthcareUtilizationParams `yaml:"healthcare" json:"healthcare"`
	Modifiers  ImpactModifiers             `yaml:"impact_modifiers" json:"impactModifiers"`
}

// Validate checks every present pathway and the modifiers.
func (ip InterventionParameters) Validate() error {
	var errs []error
	if ip.Cognitive != nil {
		errs = append(errs, wrapPathway("cognitive", ip.Cognitive.Validate()))
	}
	if ip.Kidney != nil {
		errs = append(errs, wrapPathway("kidney", ip.Kidney.Validate()))
	}
	if ip.Physical != nil {
		errs = append(errs, wrapPathway("physical", ip.Physical.Validate()))
	}
	errs = append(errs,
		wrapPathway("longevity", ip.Longevity.Validate()),
		wrapPathway("healthcare", ip.Healthcare.Validate()),
		wrapPathway("impact_modifiers", ip.Modifiers.Validate()),
	)
	return errors.Join(errs...)
}

func wrapPathway(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

// DeepCopy returns a copy that shares no pointers with ip.
func (ip InterventionParameters) DeepCopy() InterventionParameters {
	out := ip
	if ip.Cognitive != nil {
		c := *ip.Cognitive
		out.Cognitive = &c
	}
	if ip.Kidney != nil {
		k := *ip.Kidney
		out.Kidney = &k
	}
	if ip.Physical != nil {
		p := *ip.Physical
		out.Physical = &p
	}
	return out
}

// Intervention is a named intervention with its default effects.
type Intervention struct {
	Key         string                 `yaml:"key" json:"key"`
	Name        string                 `yaml:"name" json:"name"`
	Description string                 `yaml:"description" json:"description"`
	References  []string               `yaml:"references" json:"references"`
	Parameters  InterventionParameters `yaml:"parameters" json:"parameters"`
}

// DeepCopy returns a copy that shares no pointers or slices with i.
func (i Intervention) DeepCopy() Intervention {
	out := i
	if i.References != nil {
		out.References = append([]string(nil), i.References...)
	}
	out.Parameters = i.Parameters.DeepCopy()
	return out
}
