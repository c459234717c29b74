package calculation

import (
	"github.com/rgehrsitz/heis/internal/domain"
)

// CalculateCognitive computes the benefits of IQ gains and slowed Alzheimer's
// progression. It returns nil when the cognitive pathway is not modeled.
//
// The Alzheimer's Medicare term is a population-wide flat amount and only
// applies to Medicare-eligible segments; the QALY terms always apply.
func CalculateCognitive(
	p *domain.CognitiveParams,
	pop domain.PopulationParameters,
	econ domain.EconomicParameters,
	mods domain.ImpactModifiers,
	baselines domain.HealthcareBaselines,
) *domain.BenefitRecord {
	if p == nil {
		return nil
	}

	alzReduction := percent(p.AlzheimersReduction)

	gdp := p.IQIncrease.
		Mul(mods.IQToGDP).
		Mul(pop.Target()).
		Mul(pop.WorkforceFraction).
		Mul(econ.AnnualProductivity)

	record := &domain.BenefitRecord{
		Pathway:   domain.PathwayCognitive,
		GDPImpact: gdp,
	}

	if pop.Segment.MedicareEligible {
		record.MedicareSavings = alzReduction.
			Mul(mods.AlzheimersToMedicare).
			Mul(baselines.AnnualAlzheimersCost)
	}

	record.QALYImprovement = pop.Target().Mul(p.IQIncrease).Mul(qalyPerIQPoint).
		Add(pop.Medicare().Mul(alzReduction).Mul(qalyPerAlzheimersReduction))

	return record
}
