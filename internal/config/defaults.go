package config

import (
	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	usPopulation          int64 = 331_900_000
	medicareBeneficiaries int64 = 61_733_400
	annualHospitalVisits  int64 = 36_500_000
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultModifiers returns the standard impact modifiers.
func DefaultModifiers() domain.ImpactModifiers {
	return domain.ImpactModifiers{
		IQToGDP:              dec("0.02"),
		KidneyToMedicare:     dec("0.4"),
		AlzheimersToMedicare: dec("0.5"),
		HealthQuality:        dec("0.8"),
		LifespanToGDP:        dec("0.6"),
	}
}

// DefaultConfiguration returns US baselines, the total_us, over_60 and adult
// segments, and the Follistatin and Klotho interventions.
func DefaultConfiguration() *domain.Configuration {
	economics := domain.EconomicParameters{
		AnnualHealthcareCost: dec("12500"),
		AnnualProductivity:   dec("68000"),
		DiscountRate:         dec("0.03"),
	}
	modifiers := DefaultModifiers()

	return &domain.Configuration{
		Segments: map[string]domain.PopulationParameters{
			"total_us": {
				Segment:               domain.PopulationSegment{Key: "total_us", Description: "Total US population"},
				TotalPopulation:       usPopulation,
				TargetPopulation:      usPopulation,
				MedicareBeneficiaries: medicareBeneficiaries,
				WorkforceFraction:     dec("0.63"),
			},
			"over_60": {
				Segment: domain.PopulationSegment{
					Key:              "over_60",
					Description:      "Population over 60 years old",
					MedicareEligible: true,
				},
				TotalPopulation:       usPopulation,
				TargetPopulation:      82_000_000,
				MedicareBeneficiaries: medicareBeneficiaries,
				WorkforceFraction:     dec("0.27"),
			},
			"adult": {
				Segment:               domain.PopulationSegment{Key: "adult", Description: "Adult population (18+)"},
				TotalPopulation:       usPopulation,
				TargetPopulation:      258_300_000,
				MedicareBeneficiaries: medicareBeneficiaries,
				WorkforceFraction:     dec("0.63"),
			},
		},
		Economics: economics,
		Baselines: domain.HealthcareBaselines{
			AnnualHospitalVisits: annualHospitalVisits,
			AnnualAlzheimersCost: dec("305000000000"),
			AnnualCKDCost:        dec("87000000000"),
			SavingsPerLbMuscle:   dec("12"),
			SavingsPerLbFat:      dec("8"),
			CostPerHospitalVisit: CostPerHospitalVisit(economics.AnnualHealthcareCost, usPopulation, annualHospitalVisits),
		},
		Modifiers:          modifiers,
		BaseLifeExpectancy: dec("79.1"),
		NationalTotals:     domain.DefaultNationalTotals(),
		Bounds:             domain.DefaultPlausibilityBounds(),
		Projection:         domain.DefaultProjectionSettings(),
		Interventions: map[string]domain.Intervention{
			"follistatin": {
				Key:         "follistatin",
				Name:        "Follistatin",
				Description: "Muscle growth and fat reduction therapeutic protein",
				Parameters: domain.InterventionParameters{
					Physical:  &domain.PhysicalParams{MuscleMassChangeLb: dec("2.0"), FatMassChangeLb: dec("-2.0")},
					Modifiers: modifiers,
				},
			},
			"klotho": {
				Key:         "klotho",
				Name:        "Klotho",
				Description: "A protein that regulates aging and metabolism",
				Parameters: domain.InterventionParameters{
					Cognitive: &domain.CognitiveParams{IQIncrease: dec("2.5"), AlzheimersReduction: dec("15")},
					Kidney:    &domain.KidneyParams{EGFRImprovement: dec("8"), CKDProgressionReduction: dec("20")},
					Physical:  &domain.PhysicalParams{MuscleMassChangeLb: dec("1.5"), FatMassChangeLb: dec("-1.0")},
					Longevity: domain.LongevityParams{
						LifespanIncreaseYears:        dec("1.58"),
						HealthspanImprovementPercent: dec("80"),
					},
					Healthcare: domain.HealthcareUtilizationParams{HospitalVisitReductionPercent: dec("12")},
					Modifiers:  modifiers,
				},
			},
		},
	}
}
