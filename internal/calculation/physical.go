package calculation

import (
	"github.com/rgehrsitz/heis/internal/domain"
)

// CalculatePhysical computes the healthcare savings of body composition
// changes. Fat change counts by magnitude: gains and losses both move cost.
// It returns nil when the physical pathway is not modeled.
func CalculatePhysical(
	p *domain.PhysicalParams,
	pop domain.PopulationParameters,
	econ domain.EconomicParameters,
	mods domain.ImpactModifiers,
	baselines domain.HealthcareBaselines,
) *domain.BenefitRecord {
	if p == nil {
		return nil
	}

	fatChange := p.FatMassChangeLb.Abs()
	target := pop.Target()

	muscleSavings := target.Mul(p.MuscleMassChangeLb).Mul(baselines.SavingsPerLbMuscle)
	fatSavings := target.Mul(fatChange).Mul(baselines.SavingsPerLbFat)

	qalyPerPerson := p.MuscleMassChangeLb.Mul(qalyPerLbMuscle).Add(fatChange.Mul(qalyPerLbFat))

	return &domain.BenefitRecord{
		Pathway:           domain.PathwayPhysical,
		HealthcareSavings: muscleSavings.Add(fatSavings),
		QALYImprovement:   target.Mul(qalyPerPerson).Mul(mods.HealthQuality),
	}
}
