package calculation

import (
	"github.com/rgehrsitz/heis/internal/domain"
)

// Aggregate sums benefit records into the four outcome metrics. Nil records
// (pathways not modeled) contribute nothing.
func Aggregate(records ...*domain.BenefitRecord) domain.AggregatedImpact {
	var total domain.AggregatedImpact
	for _, r := range records {
		if r == nil {
			continue
		}
		total.GDPImpact = total.GDPImpact.Add(r.GDPImpact)
		total.HealthcareSavings = total.HealthcareSavings.Add(r.HealthcareSavings)
		total.MedicareSavings = total.MedicareSavings.Add(r.MedicareSavings)
		total.QALYImprovement = total.QALYImprovement.Add(r.QALYImprovement)
	}
	return total
}

// CalculatePathways runs every calculator for the given parameters and
// returns one record per pathway in fixed order; absent pathways are nil.
func CalculatePathways(
	ip domain.InterventionParameters,
	pop domain.PopulationParameters,
	econ domain.EconomicParameters,
	baselines domain.HealthcareBaselines,
) []*domain.BenefitRecord {
	mods := ip.Modifiers
	return []*domain.BenefitRecord{
		CalculateCognitive(ip.Cognitive, pop, econ, mods, baselines),
		CalculateKidney(ip.Kidney, pop, econ, mods, baselines),
		CalculatePhysical(ip.Physical, pop, econ, mods, baselines),
		CalculateLongevity(ip.Longevity, pop, econ, mods, baselines),
		CalculateHealthcare(ip.Healthcare, pop, econ, mods, baselines),
	}
}

// CalculateImpact runs every calculator and aggregates the results.
func CalculateImpact(
	ip domain.InterventionParameters,
	pop domain.PopulationParameters,
	econ domain.EconomicParameters,
	baselines domain.HealthcareBaselines,
) domain.AggregatedImpact {
	return Aggregate(CalculatePathways(ip, pop, econ, baselines)...)
}
