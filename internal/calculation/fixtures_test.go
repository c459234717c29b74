package calculation

import (
	"testing"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func defaultModifiers() domain.ImpactModifiers {
	return domain.ImpactModifiers{
		IQToGDP:              d("0.02"),
		KidneyToMedicare:     d("0.4"),
		AlzheimersToMedicare: d("0.5"),
		HealthQuality:        d("0.8"),
		LifespanToGDP:        d("0.6"),
	}
}

func defaultEconomics(t *testing.T) domain.EconomicParameters {
	t.Helper()
	econ, err := domain.NewEconomicParameters(d("12500"), d("68000"), d("0.03"))
	require.NoError(t, err)
	return econ
}

func defaultBaselines() domain.HealthcareBaselines {
	return domain.HealthcareBaselines{
		AnnualHospitalVisits: 36_500_000,
		AnnualAlzheimersCost: d("305000000000"),
		AnnualCKDCost:        d("87000000000"),
		SavingsPerLbMuscle:   d("12"),
		SavingsPerLbFat:      d("8"),
		CostPerHospitalVisit: d("12500").Mul(d("331900000")).Div(d("36500000")),
	}
}

func totalUSPopulation(t *testing.T) domain.PopulationParameters {
	t.Helper()
	pop, err := domain.NewPopulationParameters(
		domain.PopulationSegment{Key: "total_us"},
		331_900_000, 331_900_000, 61_733_400, d("0.63"))
	require.NoError(t, err)
	return pop
}

func medicarePopulation(t *testing.T) domain.PopulationParameters {
	t.Helper()
	pop, err := domain.NewPopulationParameters(
		domain.PopulationSegment{Key: "over_60", MedicareEligible: true},
		331_900_000, 165_950_000, 61_733_400, d("0.63"))
	require.NoError(t, err)
	return pop
}

// klothoParameters has every pathway present and a negative fat change.
func klothoParameters() domain.InterventionParameters {
	return domain.InterventionParameters{
		Cognitive: &domain.CognitiveParams{IQIncrease: d("2.5"), AlzheimersReduction: d("15")},
		Kidney:    &domain.KidneyParams{EGFRImprovement: d("8"), CKDProgressionReduction: d("20")},
		Physical:  &domain.PhysicalParams{MuscleMassChangeLb: d("1.5"), FatMassChangeLb: d("-1")},
		Longevity: domain.LongevityParams{LifespanIncreaseYears: d("1.58"), HealthspanImprovementPercent: d("80")},
		Healthcare: domain.HealthcareUtilizationParams{
			HospitalVisitReductionPercent: d("12"),
		},
		Modifiers: defaultModifiers(),
	}
}

func klothoInputs(t *testing.T) domain.CalculationInputs {
	t.Helper()
	return domain.CalculationInputs{
		Intervention: domain.Intervention{Key: "klotho", Name: "Klotho", Parameters: klothoParameters()},
		Population:   medicarePopulation(t),
		Economics:    defaultEconomics(t),
		Baselines:    defaultBaselines(),
	}
}

// assertDecimalEqual fails unless want and got are numerically equal.
func assertDecimalEqual(t *testing.T, want, got decimal.Decimal, msg string) {
	t.Helper()
	require.Truef(t, want.Equal(got), "%s: expected %s, got %s", msg, want.String(), got.String())
}
