package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var totalUS = PopulationSegment{Key: "total_us"}

func TestNewPopulationParameters_TargetBoundary(t *testing.T) {
	p, err := NewPopulationParameters(totalUS, 331_900_000, 331_900_000, 61_733_400, decimal.NewFromFloat(0.63))
	require.NoError(t, err, "Target equal to total should be valid")
	assert.Equal(t, int64(331_900_000), p.TargetPopulation)

	_, err = NewPopulationParameters(totalUS, 331_900_000, 331_900_001, 61_733_400, decimal.NewFromFloat(0.63))
	require.Error(t, err, "Target above total should fail")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "Should be a ValidationError")
	assert.Equal(t, "target_population", verr.Field)
}

func TestPopulationParameters_Validate(t *testing.T) {
	tests := []struct {
		name  string
		pop   PopulationParameters
		field string
	}{
		{"negative total", PopulationParameters{TotalPopulation: -1}, "total_population"},
		{"negative target", PopulationParameters{TotalPopulation: 10, TargetPopulation: -1}, "target_population"},
		{"medicare above total", PopulationParameters{TotalPopulation: 10, MedicareBeneficiaries: 11}, "medicare_beneficiaries"},
		{"workforce above one", PopulationParameters{TotalPopulation: 10, WorkforceFraction: decimal.NewFromFloat(1.1)}, "workforce_fraction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pop.Validate()
			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestNewEconomicParameters(t *testing.T) {
	_, err := NewEconomicParameters(decimal.NewFromInt(12500), decimal.NewFromInt(68000), decimal.NewFromFloat(0.03))
	assert.NoError(t, err, "Standard economics should be valid")

	_, err = NewEconomicParameters(decimal.NewFromInt(12500), decimal.NewFromInt(68000), decimal.NewFromFloat(0.21))
	assert.Error(t, err, "Discount rate above 0.2 should fail")

	_, err = NewEconomicParameters(decimal.Zero, decimal.NewFromInt(68000), decimal.NewFromFloat(0.03))
	assert.Error(t, err, "Zero healthcare cost should fail")
}

func TestHealthcareBaselines_Validate(t *testing.T) {
	valid := HealthcareBaselines{
		AnnualHospitalVisits: 36_500_000,
		AnnualAlzheimersCost: decimal.NewFromInt(305_000_000_000),
		AnnualCKDCost:        decimal.NewFromInt(87_000_000_000),
		SavingsPerLbMuscle:   decimal.NewFromInt(12),
		SavingsPerLbFat:      decimal.NewFromInt(8),
		CostPerHospitalVisit: decimal.NewFromInt(113_664),
	}
	assert.NoError(t, valid.Validate())

	invalid := valid
	invalid.AnnualHospitalVisits = 0
	invalid.SavingsPerLbFat = decimal.NewFromInt(-1)
	err := invalid.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "annual_hospital_visits")
	assert.Contains(t, err.Error(), "savings_per_lb_fat", "Should report every violation")
}

func TestImpactModifiers_Validate(t *testing.T) {
	m := ImpactModifiers{
		IQToGDP:              decimal.NewFromFloat(0.02),
		KidneyToMedicare:     decimal.NewFromFloat(0.4),
		AlzheimersToMedicare: decimal.NewFromFloat(0.5),
		HealthQuality:        decimal.NewFromFloat(0.8),
		LifespanToGDP:        decimal.NewFromFloat(0.6),
	}
	assert.NoError(t, m.Validate())

	m.IQToGDP = decimal.NewFromFloat(0.2)
	assert.Error(t, m.Validate(), "iq_to_gdp is bounded to 0.1")
}

func TestPathwayConstructors_Ranges(t *testing.T) {
	d := decimal.NewFromFloat

	_, err := NewCognitiveParams(d(10), d(50))
	assert.NoError(t, err, "Upper bounds are inclusive")
	_, err = NewCognitiveParams(d(-5.5), d(0))
	assert.Error(t, err)

	_, err = NewKidneyParams(d(30.5), d(0))
	assert.Error(t, err)

	_, err = NewPhysicalParams(d(10.5), d(0))
	assert.Error(t, err, "Muscle change above 10 should fail")
	_, err = NewPhysicalParams(d(0), d(-30))
	assert.NoError(t, err)

	_, err = NewLongevityParams(d(2), d(101))
	assert.Error(t, err)

	_, err = NewHealthcareUtilizationParams(d(51))
	assert.Error(t, err)
}

func TestInterventionParameters_ValidateNamesPathway(t *testing.T) {
	ip := InterventionParameters{
		Physical: &PhysicalParams{MuscleMassChangeLb: decimal.NewFromInt(11)},
	}
	err := ip.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "physical")

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestInterventionParameters_DeepCopy(t *testing.T) {
	original := InterventionParameters{
		Cognitive: &CognitiveParams{IQIncrease: decimal.NewFromFloat(2.5)},
		Physical:  &PhysicalParams{MuscleMassChangeLb: decimal.NewFromInt(2)},
	}

	copied := original.DeepCopy()
	assert.NotSame(t, original.Cognitive, copied.Cognitive)
	assert.NotSame(t, original.Physical, copied.Physical)
	assert.Nil(t, copied.Kidney, "Absent pathways stay absent")

	copied.Cognitive.IQIncrease = decimal.NewFromInt(9)
	assert.True(t, original.Cognitive.IQIncrease.Equal(decimal.NewFromFloat(2.5)), "Original should be unchanged")
}

func TestConfiguration_Inputs(t *testing.T) {
	cfg := &Configuration{
		Segments: map[string]PopulationParameters{
			"total_us": {Segment: totalUS, TotalPopulation: 100, TargetPopulation: 50},
		},
		Interventions: map[string]Intervention{
			"klotho": {Key: "klotho", Name: "Klotho", References: []string{"a"}},
		},
	}

	in, err := cfg.Inputs("klotho", "total_us")
	require.NoError(t, err)
	assert.Equal(t, "Klotho", in.Intervention.Name)
	assert.Equal(t, int64(50), in.Population.TargetPopulation)

	in.Intervention.References[0] = "changed"
	assert.Equal(t, "a", cfg.Interventions["klotho"].References[0], "Inputs should not alias configuration")

	_, err = cfg.Inputs("missing", "total_us")
	assert.Error(t, err)
	_, err = cfg.Inputs("klotho", "missing")
	assert.Error(t, err)

	assert.Equal(t, []string{"klotho"}, cfg.InterventionKeys())
}

func TestAggregatedImpact_Helpers(t *testing.T) {
	a := AggregatedImpact{
		GDPImpact:         decimal.NewFromInt(4),
		HealthcareSavings: decimal.NewFromInt(3),
		MedicareSavings:   decimal.NewFromInt(2),
		QALYImprovement:   decimal.NewFromInt(1),
	}
	doubled := a.Map(func(v decimal.Decimal) decimal.Decimal { return v.Mul(decimal.NewFromInt(2)) })
	assert.True(t, doubled.GDPImpact.Equal(decimal.NewFromInt(8)))
	assert.True(t, doubled.Value(MetricQALYImprovement).Equal(decimal.NewFromInt(2)))
	assert.False(t, a.IsZero())
	assert.True(t, AggregatedImpact{}.IsZero())
	assert.Equal(t, "Medicare Savings", MetricMedicareSavings.Label())
	assert.False(t, MetricQALYImprovement.IsMonetary())
}

func TestEffectRange(t *testing.T) {
	min, max, ok := EffectRange("fat_mass_change")
	require.True(t, ok)
	assert.True(t, min.Equal(decimal.NewFromInt(-30)), "Should expose the lower bound")
	assert.True(t, max.Equal(decimal.NewFromInt(10)), "Should expose the upper bound")

	_, _, ok = EffectRange("unknown")
	assert.False(t, ok)
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("medicare_savings")
	require.NoError(t, err)
	assert.Equal(t, MetricMedicareSavings, m)

	_, err = ParseMetric("happiness")
	assert.ErrorContains(t, err, "unknown metric")
}
