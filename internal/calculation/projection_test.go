package calculation

import (
	"testing"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_CumulativeRule(t *testing.T) {
	agg := domain.AggregatedImpact{
		GDPImpact:       d("1000"),
		MedicareSavings: d("100"),
		QALYImprovement: d("10"),
	}
	growth := d("0.1")

	points, err := Project(agg, 5, growth)
	require.NoError(t, err)
	require.Len(t, points, 5)

	for year, p := range points {
		factor := decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(year)).Mul(growth))
		elapsed := decimal.NewFromInt(int64(year + 1))

		assert.Equal(t, year+1, p.Year, "Should be 1-indexed")
		assertDecimalEqual(t, agg.MedicareSavings.Mul(factor), p.AnnualMedicareSavings, "annual medicare")
		assertDecimalEqual(t, agg.MedicareSavings.Mul(factor).Mul(elapsed), p.CumulativeMedicareSavings, "cumulative medicare")
		assertDecimalEqual(t, agg.GDPImpact.Mul(factor).Mul(elapsed), p.CumulativeGDPImpact, "cumulative gdp")
		assertDecimalEqual(t, agg.QALYImprovement.Mul(factor).Mul(elapsed), p.CumulativeQALYImpact, "cumulative qaly")
	}

	// 100, 110, 120 annual; 100, 220, 360 cumulative
	assertDecimalEqual(t, d("360"), points[2].CumulativeMedicareSavings, "third year cumulative")
}

func TestProjectWithOptions_RunningSum(t *testing.T) {
	agg := domain.AggregatedImpact{MedicareSavings: d("100")}

	points, err := ProjectWithOptions(agg, ProjectionOptions{Years: 3, GrowthRate: d("0.1"), Cumulation: domain.CumulationRunningSum})
	require.NoError(t, err)

	assertDecimalEqual(t, d("100"), points[0].CumulativeMedicareSavings, "year 1")
	assertDecimalEqual(t, d("210"), points[1].CumulativeMedicareSavings, "year 2")
	assertDecimalEqual(t, d("330"), points[2].CumulativeMedicareSavings, "year 3")
}

func TestProjectWithOptions_Errors(t *testing.T) {
	agg := domain.AggregatedImpact{MedicareSavings: d("100")}

	_, err := Project(agg, 0, d("0.02"))
	assert.Error(t, err, "Should reject zero years")

	_, err = Project(agg, -3, d("0.02"))
	assert.Error(t, err, "Should reject negative years")

	_, err = ProjectWithOptions(agg, ProjectionOptions{Years: 3, Cumulation: "geometric"})
	assert.Error(t, err, "Should reject unknown cumulation mode")
	assert.Contains(t, err.Error(), "geometric")
}

func TestProject_ZeroGrowthIsFlat(t *testing.T) {
	agg := domain.AggregatedImpact{GDPImpact: d("250")}

	points, err := Project(agg, 4, decimal.Zero)
	require.NoError(t, err)

	for _, p := range points {
		assertDecimalEqual(t, d("250"), p.AnnualGDPImpact, "annual gdp")
	}
	assertDecimalEqual(t, d("1000"), points[3].CumulativeGDPImpact, "cumulative gdp")
}

func TestPresentValue(t *testing.T) {
	agg := domain.AggregatedImpact{MedicareSavings: d("100"), GDPImpact: d("200"), QALYImprovement: d("1")}
	points, err := Project(agg, 3, d("0.1"))
	require.NoError(t, err)

	undiscounted := PresentValue(points, decimal.Zero)
	assertDecimalEqual(t, d("330"), undiscounted.MedicareSavings, "sum of annual medicare")
	assertDecimalEqual(t, d("660"), undiscounted.GDPImpact, "sum of annual gdp")

	flat, err := Project(domain.AggregatedImpact{MedicareSavings: d("110")}, 1, decimal.Zero)
	require.NoError(t, err)
	discounted := PresentValue(flat, d("0.1"))
	assertDecimalEqual(t, d("100"), discounted.MedicareSavings, "one year at 10%")
}

func TestFinalYear(t *testing.T) {
	_, ok := FinalYear(nil)
	assert.False(t, ok, "Should report no final year for an empty projection")

	points, err := Project(domain.AggregatedImpact{MedicareSavings: d("1")}, 10, decimal.Zero)
	require.NoError(t, err)

	final, ok := FinalYear(points)
	assert.True(t, ok)
	assert.Equal(t, 10, final.Year)
}
