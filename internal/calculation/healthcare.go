package calculation

import (
	"github.com/rgehrsitz/heis/internal/domain"
)

// CalculateHealthcare computes hospital savings from fewer visits. The
// segment's baseline visits are its population share of national visits, and
// Medicare's share of the savings is proportional to beneficiaries. Hospital
// savings are also reported as the pathway's healthcare savings.
func CalculateHealthcare(
	p domain.HealthcareUtilizationParams,
	pop domain.PopulationParameters,
	econ domain.EconomicParameters,
	mods domain.ImpactModifiers,
	baselines domain.HealthcareBaselines,
) *domain.BenefitRecord {
	record := &domain.BenefitRecord{Pathway: domain.PathwayHealthcare}
	if pop.TotalPopulation == 0 {
		return record
	}

	reduction := percent(p.HospitalVisitReductionPercent)
	total := pop.Total()

	baselineVisits := pop.Target().Mul(baselines.HospitalVisits()).Div(total)
	visitsReduced := baselineVisits.Mul(reduction)
	hospitalSavings := visitsReduced.Mul(baselines.CostPerHospitalVisit)

	record.HospitalSavings = hospitalSavings
	record.HealthcareSavings = hospitalSavings
	record.MedicareSavings = hospitalSavings.Mul(pop.Medicare()).Div(total)
	record.QALYImprovement = pop.Target().Mul(reduction).Mul(qalyPerHospitalReduction)

	return record
}
