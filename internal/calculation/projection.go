package calculation

import (
	"fmt"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectionOptions controls a time-series projection
type ProjectionOptions struct {
	Years      int
	GrowthRate decimal.Decimal
	Cumulation domain.CumulationMode
}

// Project projects an annual impact over years using linear growth. Year i
// (0-based) has annual value A×(1+i×g) and cumulative value annual×(i+1).
func Project(agg domain.AggregatedImpact, years int, growthRate decimal.Decimal) ([]domain.TimeSeriesPoint, error) {
	return ProjectWithOptions(agg, ProjectionOptions{Years: years, GrowthRate: growthRate})
}

// ProjectWithOptions projects an annual impact using the given options. An
// empty Cumulation selects CumulationScaled.
func ProjectWithOptions(agg domain.AggregatedImpact, opts ProjectionOptions) ([]domain.TimeSeriesPoint, error) {
	if opts.Years <= 0 {
		return nil, fmt.Errorf("projection years must be positive, got %d", opts.Years)
	}

	cumulation := opts.Cumulation
	if cumulation == "" {
		cumulation = domain.CumulationScaled
	}
	if cumulation != domain.CumulationScaled && cumulation != domain.CumulationRunningSum {
		return nil, fmt.Errorf("unknown cumulation mode %q", cumulation)
	}

	one := decimal.NewFromInt(1)
	points := make([]domain.TimeSeriesPoint, opts.Years)
	var running domain.ProjectedTotals

	for year := 0; year < opts.Years; year++ {
		factor := one.Add(decimal.NewFromInt(int64(year)).Mul(opts.GrowthRate))

		p := domain.TimeSeriesPoint{
			Year:                  year + 1,
			AnnualMedicareSavings: agg.MedicareSavings.Mul(factor),
			AnnualGDPImpact:       agg.GDPImpact.Mul(factor),
			AnnualQALYImpact:      agg.QALYImprovement.Mul(factor),
		}

		switch cumulation {
		case domain.CumulationRunningSum:
			running.MedicareSavings = running.MedicareSavings.Add(p.AnnualMedicareSavings)
			running.GDPImpact = running.GDPImpact.Add(p.AnnualGDPImpact)
			running.QALYImpact = running.QALYImpact.Add(p.AnnualQALYImpact)
			p.CumulativeMedicareSavings = running.MedicareSavings
			p.CumulativeGDPImpact = running.GDPImpact
			p.CumulativeQALYImpact = running.QALYImpact
		default:
			elapsed := decimal.NewFromInt(int64(year + 1))
			p.CumulativeMedicareSavings = p.AnnualMedicareSavings.Mul(elapsed)
			p.CumulativeGDPImpact = p.AnnualGDPImpact.Mul(elapsed)
			p.CumulativeQALYImpact = p.AnnualQALYImpact.Mul(elapsed)
		}

		points[year] = p
	}

	return points, nil
}

// PresentValue discounts each annual value by 1/(1+r)^year and sums them.
func PresentValue(points []domain.TimeSeriesPoint, discountRate decimal.Decimal) domain.ProjectedTotals {
	var pv domain.ProjectedTotals
	base := decimal.NewFromInt(1).Add(discountRate)

	for _, p := range points {
		factor := base.Pow(decimal.NewFromInt(int64(p.Year)))
		pv.MedicareSavings = pv.MedicareSavings.Add(p.AnnualMedicareSavings.Div(factor))
		pv.GDPImpact = pv.GDPImpact.Add(p.AnnualGDPImpact.Div(factor))
		pv.QALYImpact = pv.QALYImpact.Add(p.AnnualQALYImpact.Div(factor))
	}

	return pv
}

// FinalYear returns the last point of a projection.
func FinalYear(points []domain.TimeSeriesPoint) (domain.TimeSeriesPoint, bool) {
	if len(points) == 0 {
		return domain.TimeSeriesPoint{}, false
	}
	return points[len(points)-1], true
}
