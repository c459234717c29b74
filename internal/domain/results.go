package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Pathway identifies one category of intervention effect
type Pathway string

const (
	PathwayCognitive  Pathway = "cognitive"
	PathwayKidney     Pathway = "kidney"
	PathwayPhysical   Pathway = "physical"
	PathwayLongevity  Pathway = "longevity"
	PathwayHealthcare Pathway = "healthcare"
)

// Metric identifies one of the four aggregated outcome metrics
type Metric string

const (
	MetricGDPImpact         Metric = "gdp_impact"
	MetricHealthcareSavings Metric = "healthcare_savings"
	MetricMedicareSavings   Metric = "medicare_savings"
	MetricQALYImprovement   Metric = "qaly_improvement"
)

// AllMetrics lists the outcome metrics in display order.
var AllMetrics = []Metric{
	MetricGDPImpact,
	MetricHealthcareSavings,
	MetricMedicareSavings,
	MetricQALYImprovement,
}

// ParseMetric returns the metric with the given name.
func ParseMetric(name string) (Metric, error) {
	for _, m := range AllMetrics {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q (available: %v)", name, AllMetrics)
}

// Label returns a human-readable metric name.
func (m Metric) Label() string {
	switch m {
	case MetricGDPImpact:
		return "GDP Impact"
	case MetricHealthcareSavings:
		return "Healthcare Savings"
	case MetricMedicareSavings:
		return "Medicare Savings"
	case MetricQALYImprovement:
		return "QALY Improvement"
	}
	return string(m)
}

// IsMonetary reports whether the metric is measured in dollars.
func (m Metric) IsMonetary() bool {
	return m != MetricQALYImprovement
}

// BenefitRecord is the output of a single pathway calculator. HospitalSavings
// is only populated by the healthcare utilization pathway, where it is also
// counted as that pathway's healthcare savings.
type BenefitRecord struct {
	Pathway           Pathway         `json:"pathway"`
	GDPImpact         decimal.Decimal `json:"gdpImpact"`
	HealthcareSavings decimal.Decimal `json:"healthcareSavings"`
	MedicareSavings   decimal.Decimal `json:"medicareSavings"`
	QALYImprovement   decimal.Decimal `json:"qalyImprovement"`
	HospitalSavings   decimal.Decimal `json:"hospitalSavings"`
}

// AggregatedImpact is the sum of all present pathway benefit records
type AggregatedImpact struct {
	GDPImpact         decimal.Decimal `json:"gdpImpact"`
	HealthcareSavings decimal.Decimal `json:"healthcareSavings"`
	MedicareSavings   decimal.Decimal `json:"medicareSavings"`
	QALYImprovement   decimal.Decimal `json:"qalyImprovement"`
}

// Value returns the value of a single metric.
func (a AggregatedImpact) Value(m Metric) decimal.Decimal {
	switch m {
	case MetricGDPImpact:
		return a.GDPImpact
	case MetricHealthcareSavings:
		return a.HealthcareSavings
	case MetricMedicareSavings:
		return a.MedicareSavings
	case MetricQALYImprovement:
		return a.QALYImprovement
	}
	return decimal.Zero
}

// Map applies fn to every metric and returns the result.
func (a AggregatedImpact) Map(fn func(decimal.Decimal) decimal.Decimal) AggregatedImpact {
	return AggregatedImpact{
		GDPImpact:         fn(a.GDPImpact),
		HealthcareSavings: fn(a.HealthcareSavings),
		MedicareSavings:   fn(a.MedicareSavings),
		QALYImprovement:   fn(a.QALYImprovement),
	}
}

// Equal reports whether every metric is numerically equal.
func (a AggregatedImpact) Equal(b AggregatedImpact) bool {
	return a.GDPImpact.Equal(b.GDPImpact) &&
		a.HealthcareSavings.Equal(b.HealthcareSavings) &&
		a.MedicareSavings.Equal(b.MedicareSavings) &&
		a.QALYImprovement.Equal(b.QALYImprovement)
}

// IsZero reports whether every metric is zero.
func (a AggregatedImpact) IsZero() bool {
	return a.Equal(AggregatedImpact{})
}

// ImpactAssessment is the full current-year result for one intervention and segment
type ImpactAssessment struct {
	Intervention string           `json:"intervention"`
	Segment      string           `json:"segment"`
	Pathways     []BenefitRecord  `json:"pathways"`
	Total        AggregatedImpact `json:"total"`
	Warnings     []Warning        `json:"warnings"`
}

// TimeSeriesPoint holds annual and cumulative values for one projected year (1-indexed)
type TimeSeriesPoint struct {
	Year                      int             `json:"year"`
	AnnualMedicareSavings     decimal.Decimal `json:"annualMedicareSavings"`
	CumulativeMedicareSavings decimal.Decimal `json:"cumulativeMedicareSavings"`
	AnnualGDPImpact           decimal.Decimal `json:"annualGdpImpact"`
	CumulativeGDPImpact       decimal.Decimal `json:"cumulativeGdpImpact"`
	AnnualQALYImpact          decimal.Decimal `json:"annualQalyImpact"`
	CumulativeQALYImpact      decimal.Decimal `json:"cumulativeQalyImpact"`
}

// ProjectedTotals holds a single value for each projected metric
type ProjectedTotals struct {
	MedicareSavings decimal.Decimal `json:"medicareSavings"`
	GDPImpact       decimal.Decimal `json:"gdpImpact"`
	QALYImpact      decimal.Decimal `json:"qalyImpact"`
}

// ScenarioResult is the final projected year for one named sensitivity scenario
type ScenarioResult struct {
	Name             string          `json:"name"`
	EffectMultiplier decimal.Decimal `json:"effectMultiplier"`
	GrowthRate       decimal.Decimal `json:"growthRate"`
	FinalYear        TimeSeriesPoint `json:"finalYear"`
}

// Warning is a non-fatal plausibility finding
type Warning struct {
	Metric  Metric          `json:"metric"`
	Ratio   decimal.Decimal `json:"ratio"`
	Limit   decimal.Decimal `json:"limit"`
	Message string          `json:"message"`
}

func (w Warning) String() string {
	return w.Message
}

// MetricStatistics summarizes the simulated distribution of one metric
type MetricStatistics struct {
	Metric Metric          `json:"metric"`
	Mean   decimal.Decimal `json:"mean"`
	StdDev decimal.Decimal `json:"stdDev"`
	Lower  decimal.Decimal `json:"lower"`
	Upper  decimal.Decimal `json:"upper"`
}

// MonteCarloSummary holds confidence intervals for every outcome metric
type MonteCarloSummary struct {
	Simulations     int                `json:"simulations"`
	Seed            int64              `json:"seed"`
	ConfidenceLevel decimal.Decimal    `json:"confidenceLevel"`
	Statistics      []MetricStatistics `json:"statistics"`
}
