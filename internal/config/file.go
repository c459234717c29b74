package config

import (
	"fmt"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
)

// configFile mirrors the YAML layout. Pointer sections are optional.
type configFile struct {
	PopulationSegments  map[string]segmentFile      `yaml:"population_segments"`
	Economics           *domain.EconomicParameters  `yaml:"economics"`
	HealthcareBaselines *baselinesFile              `yaml:"healthcare_baselines"`
	ImpactModifiers     *domain.ImpactModifiers     `yaml:"impact_modifiers"`
	BaseLifeExpectancy  *decimal.Decimal            `yaml:"base_life_expectancy"`
	NationalTotals      *domain.NationalTotals      `yaml:"national_totals"`
	PlausibilityBounds  *domain.PlausibilityBounds  `yaml:"plausibility_bounds"`
	Projection          *projectionFile             `yaml:"projection"`
	Interventions       map[string]interventionFile `yaml:"interventions"`
}

type segmentFile struct {
	Description           string          `yaml:"description"`
	MedicareEligible      bool            `yaml:"medicare_eligible"`
	TotalPopulation       int64           `yaml:"total_population"`
	TargetPopulation      int64           `yaml:"target_population"`
	MedicareBeneficiaries int64           `yaml:"medicare_beneficiaries"`
	WorkforceFraction     decimal.Decimal `yaml:"workforce_fraction"`
}

type baselinesFile struct {
	AnnualHospitalVisits int64            `yaml:"annual_hospital_visits"`
	AnnualAlzheimersCost decimal.Decimal  `yaml:"annual_alzheimers_cost"`
	AnnualCKDCost        decimal.Decimal  `yaml:"annual_ckd_cost"`
	SavingsPerLbMuscle   decimal.Decimal  `yaml:"savings_per_lb_muscle"`
	SavingsPerLbFat      decimal.Decimal  `yaml:"savings_per_lb_fat"`
	CostPerHospitalVisit *decimal.Decimal `yaml:"cost_per_hospital_visit"`
}

type projectionFile struct {
	Years      *int                  `yaml:"years"`
	GrowthRate *decimal.Decimal      `yaml:"growth_rate"`
	Cumulation domain.CumulationMode `yaml:"cumulation"`
}

type interventionFile struct {
	Name            string             `yaml:"name"`
	Description     string             `yaml:"description"`
	References      []string           `yaml:"references"`
	Effects         effectsFile        `yaml:"effects"`
	ImpactModifiers *modifierOverrides `yaml:"impact_modifiers"`
}

type effectsFile struct {
	Cognitive  *domain.CognitiveParams             `yaml:"cognitive"`
	Kidney     *domain.KidneyParams                `yaml:"kidney"`
	Physical   *domain.PhysicalParams              `yaml:"physical"`
	Longevity  *longevityFile                      `yaml:"longevity"`
	Healthcare *domain.HealthcareUtilizationParams `yaml:"healthcare"`
}

type longevityFile struct {
	LifespanIncreaseYears   *decimal.Decimal `yaml:"lifespan_increase_years"`
	LifespanIncreasePercent *decimal.Decimal `yaml:"lifespan_increase_percent"`
	HealthspanImprovement   decimal.Decimal  `yaml:"healthspan_improvement"`
}

type modifierOverrides struct {
	IQToGDP              *decimal.Decimal `yaml:"iq_to_gdp"`
	KidneyToMedicare     *decimal.Decimal `yaml:"kidney_to_medicare"`
	AlzheimersToMedicare *decimal.Decimal `yaml:"alzheimers_to_medicare"`
	HealthQuality        *decimal.Decimal `yaml:"health_quality"`
	LifespanToGDP        *decimal.Decimal `yaml:"lifespan_to_gdp"`
}

// applyTo overlays the file onto config. A population_segments or
// interventions section replaces the corresponding defaults when replace is set.
func (f *configFile) applyTo(config *domain.Configuration, replace bool) error {
	if f.Economics != nil {
		config.Economics = *f.Economics
	}
	if f.ImpactModifiers != nil {
		config.Modifiers = *f.ImpactModifiers
	}
	if f.BaseLifeExpectancy != nil {
		config.BaseLifeExpectancy = *f.BaseLifeExpectancy
	}
	if f.NationalTotals != nil {
		config.NationalTotals = *f.NationalTotals
	}
	if f.PlausibilityBounds != nil {
		config.Bounds = *f.PlausibilityBounds
	}
	if f.Projection != nil {
		if f.Projection.Years != nil {
			config.Projection.Years = *f.Projection.Years
		}
		if f.Projection.GrowthRate != nil {
			config.Projection.GrowthRate = *f.Projection.GrowthRate
		}
		if f.Projection.Cumulation != "" {
			config.Projection.Cumulation = f.Projection.Cumulation
		}
	}

	if len(f.PopulationSegments) > 0 {
		config.Segments = make(map[string]domain.PopulationParameters, len(f.PopulationSegments))
		for key, s := range f.PopulationSegments {
			config.Segments[key] = domain.PopulationParameters{
				Segment: domain.PopulationSegment{
					Key:              key,
					Description:      s.Description,
					MedicareEligible: s.MedicareEligible,
				},
				TotalPopulation:       s.TotalPopulation,
				TargetPopulation:      s.TargetPopulation,
				MedicareBeneficiaries: s.MedicareBeneficiaries,
				WorkforceFraction:     s.WorkforceFraction,
			}
		}
	}

	if f.HealthcareBaselines != nil {
		baselines, err := f.HealthcareBaselines.resolve(config)
		if err != nil {
			return err
		}
		config.Baselines = baselines
	}

	return f.applyInterventions(config, replace)
}

// applyInterventions converts file interventions using the configuration's
// modifiers and base life expectancy.
func (f *configFile) applyInterventions(config *domain.Configuration, replace bool) error {
	if len(f.Interventions) == 0 {
		return nil
	}
	if replace || config.Interventions == nil {
		config.Interventions = make(map[string]domain.Intervention, len(f.Interventions))
	}
	for key, i := range f.Interventions {
		intervention, err := i.toDomain(key, config.Modifiers, config.BaseLifeExpectancy)
		if err != nil {
			return fmt.Errorf("intervention %s: %w", key, err)
		}
		config.Interventions[key] = intervention
	}
	return nil
}

// resolve derives cost_per_hospital_visit when absent as national healthcare
// spend divided by annual visits, using the largest segment as the nation.
func (b *baselinesFile) resolve(config *domain.Configuration) (domain.HealthcareBaselines, error) {
	baselines := domain.HealthcareBaselines{
		AnnualHospitalVisits: b.AnnualHospitalVisits,
		AnnualAlzheimersCost: b.AnnualAlzheimersCost,
		AnnualCKDCost:        b.AnnualCKDCost,
		SavingsPerLbMuscle:   b.SavingsPerLbMuscle,
		SavingsPerLbFat:      b.SavingsPerLbFat,
	}
	if b.CostPerHospitalVisit != nil {
		baselines.CostPerHospitalVisit = *b.CostPerHospitalVisit
		return baselines, nil
	}

	if b.AnnualHospitalVisits <= 0 {
		return domain.HealthcareBaselines{}, fmt.Errorf("annual_hospital_visits must be positive to derive cost_per_hospital_visit")
	}
	var national int64
	for _, s := range config.Segments {
		if s.TotalPopulation > national {
			national = s.TotalPopulation
		}
	}
	baselines.CostPerHospitalVisit = CostPerHospitalVisit(config.Economics.AnnualHealthcareCost, national, b.AnnualHospitalVisits)
	return baselines, nil
}

func (i interventionFile) toDomain(key string, globalModifiers domain.ImpactModifiers, baseLifeExpectancy decimal.Decimal) (domain.Intervention, error) {
	params := domain.InterventionParameters{
		Cognitive: i.Effects.Cognitive,
		Kidney:    i.Effects.Kidney,
		Physical:  i.Effects.Physical,
		Modifiers: i.ImpactModifiers.apply(globalModifiers),
	}
	if i.Effects.Healthcare != nil {
		params.Healthcare = *i.Effects.Healthcare
	}

	if l := i.Effects.Longevity; l != nil {
		params.Longevity.HealthspanImprovementPercent = l.HealthspanImprovement
		switch {
		case l.LifespanIncreaseYears != nil && l.LifespanIncreasePercent != nil:
			return domain.Intervention{}, fmt.Errorf("specify either lifespan_increase_years or lifespan_increase_percent, not both")
		case l.LifespanIncreaseYears != nil:
			params.Longevity.LifespanIncreaseYears = *l.LifespanIncreaseYears
		case l.LifespanIncreasePercent != nil:
			params.Longevity.LifespanIncreaseYears = LifespanYearsFromPercent(*l.LifespanIncreasePercent, baseLifeExpectancy)
		}
	}

	name := i.Name
	if name == "" {
		name = key
	}
	return domain.Intervention{
		Key:         key,
		Name:        name,
		Description: i.Description,
		References:  i.References,
		Parameters:  params,
	}, nil
}

func (m *modifierOverrides) apply(base domain.ImpactModifiers) domain.ImpactModifiers {
	if m == nil {
		return base
	}
	out := base
	for _, o := range []struct {
		src *decimal.Decimal
		dst *decimal.Decimal
	}{
		{m.IQToGDP, &out.IQToGDP},
		{m.KidneyToMedicare, &out.KidneyToMedicare},
		{m.AlzheimersToMedicare, &out.AlzheimersToMedicare},
		{m.HealthQuality, &out.HealthQuality},
		{m.LifespanToGDP, &out.LifespanToGDP},
	} {
		if o.src != nil {
			*o.dst = *o.src
		}
	}
	return out
}

// LifespanYearsFromPercent converts a lifespan increase expressed as a
// percentage of base life expectancy into years.
func LifespanYearsFromPercent(percent, baseLifeExpectancy decimal.Decimal) decimal.Decimal {
	return baseLifeExpectancy.Mul(percent).Div(decimal.NewFromInt(100))
}

// CostPerHospitalVisit spreads national healthcare spend over annual visits.
func CostPerHospitalVisit(perCapitaCost decimal.Decimal, population, visits int64) decimal.Decimal {
	if visits <= 0 {
		return decimal.Zero
	}
	return perCapitaCost.Mul(decimal.NewFromInt(population)).Div(decimal.NewFromInt(visits))
}
