package calculation

import (
	"fmt"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
)

// PlausibilityValidator flags aggregated results that exceed a share of
// national totals. Findings are advisory and never block a calculation.
type PlausibilityValidator struct {
	Totals domain.NationalTotals
	Bounds domain.PlausibilityBounds
}

// NewPlausibilityValidator creates a validator with default totals and bounds
func NewPlausibilityValidator() *PlausibilityValidator {
	return &PlausibilityValidator{
		Totals: domain.DefaultNationalTotals(),
		Bounds: domain.DefaultPlausibilityBounds(),
	}
}

// Validate returns one warning per exceeded bound. Checks whose denominator
// is zero are skipped.
func (v *PlausibilityValidator) Validate(
	agg domain.AggregatedImpact,
	pop domain.PopulationParameters,
	econ domain.EconomicParameters,
	baselines domain.HealthcareBaselines,
) []domain.Warning {
	warnings := []domain.Warning{}

	nationalHealthcare := econ.AnnualHealthcareCost.Mul(pop.Total())
	if w, ok := checkShare(domain.MetricHealthcareSavings, agg.HealthcareSavings, nationalHealthcare, v.Bounds.MaxHealthcareSavingsShare,
		"Healthcare savings are %s%% of national healthcare expenditure, above the expected maximum of %s%%"); ok {
		warnings = append(warnings, w)
	}

	if w, ok := checkShare(domain.MetricGDPImpact, agg.GDPImpact, v.Totals.GDP, v.Bounds.MaxGDPShare,
		"GDP impact is %s%% of national GDP, above the expected maximum of %s%%"); ok {
		warnings = append(warnings, w)
	}

	if w, ok := checkShare(domain.MetricMedicareSavings, agg.MedicareSavings, v.Totals.MedicareSpending, v.Bounds.MaxMedicareShare,
		"Medicare savings are %s%% of national Medicare spending, above the expected maximum of %s%%"); ok {
		warnings = append(warnings, w)
	}

	if pop.TargetPopulation > 0 {
		perPerson := agg.QALYImprovement.Div(pop.Target())
		if perPerson.GreaterThan(v.Bounds.MaxQALYPerPerson) {
			warnings = append(warnings, domain.Warning{
				Metric: domain.MetricQALYImprovement,
				Ratio:  perPerson,
				Limit:  v.Bounds.MaxQALYPerPerson,
				Message: fmt.Sprintf("QALYs gained per person (%s) exceed the expected maximum of %s",
					perPerson.StringFixed(1), v.Bounds.MaxQALYPerPerson.String()),
			})
		}
	}

	return warnings
}

func checkShare(metric domain.Metric, value, total, limit decimal.Decimal, format string) (domain.Warning, bool) {
	if !total.IsPositive() {
		return domain.Warning{}, false
	}
	ratio := value.Div(total)
	if !ratio.GreaterThan(limit) {
		return domain.Warning{}, false
	}
	return domain.Warning{
		Metric:  metric,
		Ratio:   ratio,
		Limit:   limit,
		Message: fmt.Sprintf(format, ratio.Shift(2).StringFixed(1), limit.Shift(2).StringFixed(1)),
	}, true
}
