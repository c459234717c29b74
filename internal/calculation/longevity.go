package calculation

import (
	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateLongevity computes the productivity and QALY benefits of added
// lifespan, weighted by the healthspan improvement.
func CalculateLongevity(
	p domain.LongevityParams,
	pop domain.PopulationParameters,
	econ domain.EconomicParameters,
	mods domain.ImpactModifiers,
	baselines domain.HealthcareBaselines,
) *domain.BenefitRecord {
	target := pop.Target()

	gdp := p.LifespanIncreaseYears.
		Mul(mods.LifespanToGDP).
		Mul(target).
		Mul(pop.WorkforceFraction).
		Mul(econ.AnnualProductivity)

	healthspanWeight := decimal.NewFromInt(1).Add(percent(p.HealthspanImprovementPercent))

	return &domain.BenefitRecord{
		Pathway:         domain.PathwayLongevity,
		GDPImpact:       gdp,
		QALYImprovement: target.Mul(p.LifespanIncreaseYears).Mul(healthspanWeight),
	}
}
