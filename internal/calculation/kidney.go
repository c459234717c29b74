package calculation

import (
	"github.com/rgehrsitz/heis/internal/domain"
)

// CalculateKidney computes the benefits of improved kidney function and slowed
// CKD progression. It returns nil when the kidney pathway is not modeled.
func CalculateKidney(
	p *domain.KidneyParams,
	pop domain.PopulationParameters,
	econ domain.EconomicParameters,
	mods domain.ImpactModifiers,
	baselines domain.HealthcareBaselines,
) *domain.BenefitRecord {
	if p == nil {
		return nil
	}

	ckdReduction := percent(p.CKDProgressionReduction)

	return &domain.BenefitRecord{
		Pathway: domain.PathwayKidney,
		MedicareSavings: ckdReduction.
			Mul(mods.KidneyToMedicare).
			Mul(baselines.AnnualCKDCost),
		QALYImprovement: pop.Target().Mul(p.EGFRImprovement).Mul(qalyPerEGFRUnit).
			Add(pop.Medicare().Mul(ckdReduction).Mul(qalyPerCKDReduction)),
	}
}
