package calculation

import (
	"testing"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCalculatePhysical_ConcreteScenario(t *testing.T) {
	pop := totalUSPopulation(t)
	ip := domain.InterventionParameters{
		Physical:  &domain.PhysicalParams{MuscleMassChangeLb: d("2.0"), FatMassChangeLb: d("-2.0")},
		Modifiers: defaultModifiers(),
	}

	agg := Aggregate(CalculatePhysical(ip.Physical, pop, defaultEconomics(t), ip.Modifiers, defaultBaselines()))

	assertDecimalEqual(t, d("13276000000"), agg.HealthcareSavings, "healthcare savings")
	assertDecimalEqual(t, d("796560"), agg.QALYImprovement, "qaly improvement")
	assert.True(t, agg.GDPImpact.IsZero(), "Should have no GDP impact")
	assert.True(t, agg.MedicareSavings.IsZero(), "Should have no Medicare savings")
}

func TestCalculatePhysical_FatGainCountsByMagnitude(t *testing.T) {
	pop := totalUSPopulation(t)
	loss := CalculatePhysical(&domain.PhysicalParams{MuscleMassChangeLb: d("1"), FatMassChangeLb: d("-3")}, pop, defaultEconomics(t), defaultModifiers(), defaultBaselines())
	gain := CalculatePhysical(&domain.PhysicalParams{MuscleMassChangeLb: d("1"), FatMassChangeLb: d("3")}, pop, defaultEconomics(t), defaultModifiers(), defaultBaselines())

	assertDecimalEqual(t, loss.HealthcareSavings, gain.HealthcareSavings, "fat gain and loss")
	assertDecimalEqual(t, loss.QALYImprovement, gain.QALYImprovement, "fat gain and loss qaly")
}

func TestCalculateLongevity_ConcreteScenario(t *testing.T) {
	pop := medicarePopulation(t)
	p := domain.LongevityParams{LifespanIncreaseYears: d("2.0"), HealthspanImprovementPercent: d("80")}

	record := CalculateLongevity(p, pop, defaultEconomics(t), defaultModifiers(), defaultBaselines())

	assert.Equal(t, domain.PathwayLongevity, record.Pathway)
	assertDecimalEqual(t, d("2.0").Mul(d("0.6")).Mul(d("165950000")).Mul(d("0.63")).Mul(d("68000")), record.GDPImpact, "gdp impact")
	assertDecimalEqual(t, d("8531157600000"), record.GDPImpact, "gdp impact literal")
	assertDecimalEqual(t, d("597420000"), record.QALYImprovement, "qaly improvement")
	assert.True(t, record.MedicareSavings.IsZero(), "Should have no Medicare savings")
	assert.True(t, record.HealthcareSavings.IsZero(), "Should have no healthcare savings")
}

func TestCalculateCognitive(t *testing.T) {
	p := &domain.CognitiveParams{IQIncrease: d("2.5"), AlzheimersReduction: d("15")}

	t.Run("medicare eligible segment", func(t *testing.T) {
		record := CalculateCognitive(p, medicarePopulation(t), defaultEconomics(t), defaultModifiers(), defaultBaselines())

		assertDecimalEqual(t, d("355464900000"), record.GDPImpact, "gdp impact")
		assertDecimalEqual(t, d("22875000000"), record.MedicareSavings, "medicare savings")
		assertDecimalEqual(t, d("6000752"), record.QALYImprovement, "qaly improvement")
	})

	t.Run("segment outside Medicare", func(t *testing.T) {
		record := CalculateCognitive(p, totalUSPopulation(t), defaultEconomics(t), defaultModifiers(), defaultBaselines())

		assert.True(t, record.MedicareSavings.IsZero(), "Should gate the Alzheimer's Medicare term on segment")
		assert.True(t, record.QALYImprovement.IsPositive(), "Should still credit QALYs")
	})

	t.Run("absent pathway", func(t *testing.T) {
		assert.Nil(t, CalculateCognitive(nil, medicarePopulation(t), defaultEconomics(t), defaultModifiers(), defaultBaselines()))
	})
}

func TestCalculateKidney(t *testing.T) {
	p := &domain.KidneyParams{EGFRImprovement: d("8"), CKDProgressionReduction: d("20")}

	record := CalculateKidney(p, medicarePopulation(t), defaultEconomics(t), defaultModifiers(), defaultBaselines())

	assertDecimalEqual(t, d("6960000000"), record.MedicareSavings, "medicare savings")
	assertDecimalEqual(t, d("16980004"), record.QALYImprovement, "qaly improvement")
	assert.True(t, record.GDPImpact.IsZero(), "Should have no GDP impact")
	assert.Nil(t, CalculateKidney(nil, medicarePopulation(t), defaultEconomics(t), defaultModifiers(), defaultBaselines()))
}

func TestCalculateHealthcare(t *testing.T) {
	pop := domain.PopulationParameters{TotalPopulation: 1000, TargetPopulation: 500, MedicareBeneficiaries: 200, WorkforceFraction: d("0.5")}
	baselines := domain.HealthcareBaselines{AnnualHospitalVisits: 100, CostPerHospitalVisit: d("1000")}
	p := domain.HealthcareUtilizationParams{HospitalVisitReductionPercent: d("10")}

	record := CalculateHealthcare(p, pop, defaultEconomics(t), defaultModifiers(), baselines)

	assertDecimalEqual(t, d("5000"), record.HospitalSavings, "hospital savings")
	assertDecimalEqual(t, record.HospitalSavings, record.HealthcareSavings, "healthcare savings")
	assertDecimalEqual(t, d("1000"), record.MedicareSavings, "medicare savings")
	assertDecimalEqual(t, d("5"), record.QALYImprovement, "qaly improvement")
}

func TestCalculateHealthcare_EmptyPopulation(t *testing.T) {
	record := CalculateHealthcare(
		domain.HealthcareUtilizationParams{HospitalVisitReductionPercent: d("10")},
		domain.PopulationParameters{}, defaultEconomics(t), defaultModifiers(), defaultBaselines())

	assert.Equal(t, domain.PathwayHealthcare, record.Pathway)
	assert.True(t, record.HospitalSavings.IsZero(), "Should not divide by an empty population")
}

func TestAggregate_ZeroPathwayInvariant(t *testing.T) {
	pop := medicarePopulation(t)
	econ := defaultEconomics(t)
	baselines := defaultBaselines()

	absent := klothoParameters()
	absent.Cognitive, absent.Kidney, absent.Physical = nil, nil, nil

	zeroed := absent.DeepCopy()
	zeroed.Cognitive = &domain.CognitiveParams{}
	zeroed.Kidney = &domain.KidneyParams{}
	zeroed.Physical = &domain.PhysicalParams{}

	assert.True(t, CalculateImpact(absent, pop, econ, baselines).Equal(CalculateImpact(zeroed, pop, econ, baselines)),
		"Absent and zero-valued pathways should contribute the same")

	full := klothoParameters()
	records := CalculatePathways(full, pop, econ, baselines)
	withoutPhysical := full.DeepCopy()
	withoutPhysical.Physical = nil

	expected := Aggregate(records[0], records[1], records[3], records[4])
	assert.True(t, expected.Equal(CalculateImpact(withoutPhysical, pop, econ, baselines)),
		"Removing a pathway should remove exactly its record")
}

func TestAggregate_Deterministic(t *testing.T) {
	records := CalculatePathways(klothoParameters(), medicarePopulation(t), defaultEconomics(t), defaultBaselines())

	first := Aggregate(records...)
	second := Aggregate(records...)

	assert.True(t, first.Equal(second), "Should produce identical results")
	assert.True(t, Aggregate().IsZero(), "Should be zero with no records")
	assert.True(t, Aggregate(nil, nil).IsZero(), "Should ignore nil records")
}

func TestCalculatePathways_FixedOrder(t *testing.T) {
	records := CalculatePathways(klothoParameters(), medicarePopulation(t), defaultEconomics(t), defaultBaselines())

	assert.Len(t, records, 5)
	for i, pathway := range []domain.Pathway{
		domain.PathwayCognitive, domain.PathwayKidney, domain.PathwayPhysical, domain.PathwayLongevity, domain.PathwayHealthcare,
	} {
		assert.Equal(t, pathway, records[i].Pathway)
	}
}
