package compare

import (
	"fmt"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents one evaluated (intervention, segment) pair
type ComparisonResult struct {
	Name         string                   `json:"name"`
	Intervention string                   `json:"intervention"`
	Segment      string                   `json:"segment"`
	Description  string                   `json:"description,omitempty"`
	Assessment   *domain.ImpactAssessment `json:"-"`

	Impact       domain.AggregatedImpact `json:"impact"`
	WarningCount int                     `json:"warningCount"`

	// Comparison to Base
	DiffFromBase domain.AggregatedImpact `json:"diffFromBase"`
	PctFromBase  domain.AggregatedImpact `json:"pctFromBase"`
}

// ComparisonSet represents a base evaluation and its alternatives
type ComparisonSet struct {
	BaseName           string             `json:"baseName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts comparison metrics from assessments
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics builds a comparison result from an assessment
func (mc *MetricsCalculator) CalculateMetrics(name string, assessment *domain.ImpactAssessment) ComparisonResult {
	return ComparisonResult{
		Name:         name,
		Intervention: assessment.Intervention,
		Segment:      assessment.Segment,
		Assessment:   assessment,
		Impact:       assessment.Total,
		WarningCount: len(assessment.Warnings),
	}
}

// CalculateComparison fills in absolute and percentage differences from base.
// A metric whose base value is zero gets a zero percentage difference.
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	hundred := decimal.NewFromInt(100)
	alt.DiffFromBase = domain.AggregatedImpact{
		GDPImpact:         alt.Impact.GDPImpact.Sub(base.Impact.GDPImpact),
		HealthcareSavings: alt.Impact.HealthcareSavings.Sub(base.Impact.HealthcareSavings),
		MedicareSavings:   alt.Impact.MedicareSavings.Sub(base.Impact.MedicareSavings),
		QALYImprovement:   alt.Impact.QALYImprovement.Sub(base.Impact.QALYImprovement),
	}

	pct := func(diff, b decimal.Decimal) decimal.Decimal {
		if b.IsZero() {
			return decimal.Zero
		}
		return diff.Div(b.Abs()).Mul(hundred)
	}
	alt.PctFromBase = domain.AggregatedImpact{
		GDPImpact:         pct(alt.DiffFromBase.GDPImpact, base.Impact.GDPImpact),
		HealthcareSavings: pct(alt.DiffFromBase.HealthcareSavings, base.Impact.HealthcareSavings),
		MedicareSavings:   pct(alt.DiffFromBase.MedicareSavings, base.Impact.MedicareSavings),
		QALYImprovement:   pct(alt.DiffFromBase.QALYImprovement, base.Impact.QALYImprovement),
	}
	return alt
}

// GenerateRecommendations names the alternative that beats base by the
// widest margin on each metric.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	for _, m := range domain.AllMetrics {
		best := compSet.BaseResult
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			if alt.Impact.Value(m).GreaterThan(best.Impact.Value(m)) {
				best = alt
			}
		}
		if best == compSet.BaseResult {
			continue
		}
		diff := best.Impact.Value(m).Sub(compSet.BaseResult.Impact.Value(m))
		amount := "$" + diff.StringFixed(0)
		if !m.IsMonetary() {
			amount = diff.StringFixed(0) + " QALYs"
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Best %s: %s adds %s over %s", m.Label(), best.Name, amount, compSet.BaseName))
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.WarningCount > 0 {
			recommendations = append(recommendations,
				fmt.Sprintf("Review %s: %d plausibility warning(s)", alt.Name, alt.WarningCount))
		}
	}

	return recommendations
}

// ResultName returns the display name for an (intervention, segment) pair.
func ResultName(intervention, segment string) string {
	return intervention + "@" + segment
}
