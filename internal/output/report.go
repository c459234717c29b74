package output

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	billion = decimal.NewFromInt(1_000_000_000)
	million = decimal.NewFromInt(1_000_000)
)

// Report collects everything a single run produced. Optional sections are
// nil or empty when the run did not compute them.
type Report struct {
	RunID        string                      `json:"runId"`
	GeneratedAt  time.Time                   `json:"generatedAt"`
	Intervention domain.Intervention         `json:"intervention"`
	Population   domain.PopulationParameters `json:"population"`
	Economics    domain.EconomicParameters   `json:"economics"`
	Assessment   *domain.ImpactAssessment    `json:"assessment"`
	Projection   *ProjectionSection          `json:"projection,omitempty"`
	Scenarios    []domain.ScenarioResult     `json:"scenarios,omitempty"`
	MonteCarlo   *domain.MonteCarloSummary   `json:"monteCarlo,omitempty"`
	Stratified   *StratificationSection      `json:"stratified,omitempty"`
	Sensitivity  *domain.SensitivitySummary  `json:"sensitivity,omitempty"`
	Assumptions  []string                    `json:"assumptions"`
}

// ProjectionSection holds a time-series projection and its present value
type ProjectionSection struct {
	GrowthRate   decimal.Decimal          `json:"growthRate"`
	Cumulation   domain.CumulationMode    `json:"cumulation"`
	DiscountRate decimal.Decimal          `json:"discountRate"`
	Points       []domain.TimeSeriesPoint `json:"points"`
	PresentValue domain.ProjectedTotals   `json:"presentValue"`
}

// StratificationSection holds an age-weighted impact
type StratificationSection struct {
	Factor        decimal.Decimal         `json:"factor"`
	DiscountYears int                     `json:"discountYears"`
	Impact        domain.AggregatedImpact `json:"impact"`
}

// NewReport creates a report for an assessment with a fresh run ID.
func NewReport(in domain.CalculationInputs, assessment *domain.ImpactAssessment) *Report {
	return &Report{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now(),
		Intervention: in.Intervention,
		Population:   in.Population,
		Economics:    in.Economics,
		Assessment:   assessment,
		Assumptions:  DefaultAssumptions,
	}
}

// Warnings returns the assessment's plausibility warnings.
func (r *Report) Warnings() []domain.Warning {
	if r.Assessment == nil {
		return nil
	}
	return r.Assessment.Warnings
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fraction such as 0.025 as "2.5%".
func FormatRate(rate decimal.Decimal) string {
	return rate.Shift(2).StringFixed(1) + "%"
}

// FormatLargeNumber formats dollars as $X.XB, $X.XM or $X,XXX.
func FormatLargeNumber(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	abs := amount.Abs()

	switch {
	case abs.GreaterThanOrEqual(billion):
		return sign + "$" + abs.Div(billion).StringFixed(1) + "B"
	case abs.GreaterThanOrEqual(million):
		return sign + "$" + abs.Div(million).StringFixed(1) + "M"
	default:
		return sign + "$" + groupThousands(abs.StringFixed(0))
	}
}

// FormatQALY formats a QALY count as a whole number with thousands separators.
func FormatQALY(qalys decimal.Decimal) string {
	s := groupThousands(qalys.Abs().StringFixed(0))
	if qalys.Round(0).IsNegative() {
		return "-" + s
	}
	return s
}

// FormatMetric formats a metric value in its own unit.
func FormatMetric(m domain.Metric, v decimal.Decimal) string {
	if m.IsMonetary() {
		return FormatLargeNumber(v)
	}
	return FormatQALY(v)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
