package calculation

import (
	"testing"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plausibilityPopulation() domain.PopulationParameters {
	return domain.PopulationParameters{
		TotalPopulation:       100_000_000,
		TargetPopulation:      100_000_000,
		MedicareBeneficiaries: 20_000_000,
		WorkforceFraction:     d("0.6"),
	}
}

func plausibilityEconomics() domain.EconomicParameters {
	return domain.EconomicParameters{AnnualHealthcareCost: d("10000"), AnnualProductivity: d("60000"), DiscountRate: d("0.03")}
}

func TestPlausibilityValidator_NoWarnings(t *testing.T) {
	v := NewPlausibilityValidator()
	agg := domain.AggregatedImpact{
		GDPImpact:         d("1000000000"),
		HealthcareSavings: d("1000000000"),
		MedicareSavings:   d("1000000000"),
		QALYImprovement:   d("1000000"),
	}

	warnings := v.Validate(agg, plausibilityPopulation(), plausibilityEconomics(), defaultBaselines())

	assert.NotNil(t, warnings, "Should return an empty list rather than nil")
	assert.Empty(t, warnings, "Should not warn for modest results")
}

func TestPlausibilityValidator_EveryBoundExceeded(t *testing.T) {
	v := NewPlausibilityValidator()
	agg := domain.AggregatedImpact{
		HealthcareSavings: d("300000000000"),  // 30% of $1T national healthcare
		GDPImpact:         d("2000000000000"), // 8% of $25T
		MedicareSavings:   d("300000000000"),  // 30% of $1T
		QALYImprovement:   d("2500000000"),    // 25 per person
	}

	warnings := v.Validate(agg, plausibilityPopulation(), plausibilityEconomics(), defaultBaselines())
	require.Len(t, warnings, 4)

	assert.Equal(t, domain.MetricHealthcareSavings, warnings[0].Metric)
	assert.Contains(t, warnings[0].Message, "30.0%")
	assert.Contains(t, warnings[0].Message, "20.0%")

	assert.Equal(t, domain.MetricGDPImpact, warnings[1].Metric)
	assert.Contains(t, warnings[1].Message, "8.0%")

	assert.Equal(t, domain.MetricMedicareSavings, warnings[2].Metric)
	assertDecimalEqual(t, d("0.3"), warnings[2].Ratio, "medicare ratio")

	assert.Equal(t, domain.MetricQALYImprovement, warnings[3].Metric)
	assert.Contains(t, warnings[3].Message, "25.0")
	assert.NotContains(t, warnings[0].String(), "$", "Should not format currency")
}

func TestPlausibilityValidator_BoundaryIsNotExceeded(t *testing.T) {
	v := NewPlausibilityValidator()
	agg := domain.AggregatedImpact{HealthcareSavings: d("200000000000")}

	warnings := v.Validate(agg, plausibilityPopulation(), plausibilityEconomics(), defaultBaselines())

	assert.Empty(t, warnings, "A share equal to the ceiling should not warn")
}

func TestPlausibilityValidator_SkipsZeroDenominators(t *testing.T) {
	v := &PlausibilityValidator{Bounds: domain.DefaultPlausibilityBounds()}
	agg := domain.AggregatedImpact{
		GDPImpact:       d("1"),
		MedicareSavings: d("1"),
		QALYImprovement: d("1000"),
	}

	warnings := v.Validate(agg, domain.PopulationParameters{}, plausibilityEconomics(), defaultBaselines())

	assert.Empty(t, warnings, "Should skip checks without a reference total")
}

func TestPlausibilityValidator_CustomBounds(t *testing.T) {
	v := NewPlausibilityValidator()
	v.Bounds.MaxQALYPerPerson = d("0.001")

	warnings := v.Validate(domain.AggregatedImpact{QALYImprovement: d("1000000")}, plausibilityPopulation(), plausibilityEconomics(), defaultBaselines())

	require.Len(t, warnings, 1)
	assert.Equal(t, domain.MetricQALYImprovement, warnings[0].Metric)
}
