package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Sensitivity risk levels
const (
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// EffectSensitivity is the result of swinging a single effect between a low
// and high value while holding everything else at base.
type EffectSensitivity struct {
	Effect     string          `json:"effect"`
	BaseValue  decimal.Decimal `json:"baseValue"`
	LowValue   decimal.Decimal `json:"lowValue"`
	HighValue  decimal.Decimal `json:"highValue"`
	BaseOutput decimal.Decimal `json:"baseOutput"`
	LowOutput  decimal.Decimal `json:"lowOutput"`
	HighOutput decimal.Decimal `json:"highOutput"`
	Score      decimal.Decimal `json:"score"`
}

// OutputSwing returns the absolute output range between the high and low runs.
func (es EffectSensitivity) OutputSwing() decimal.Decimal {
	return es.HighOutput.Sub(es.LowOutput).Abs()
}

// SensitivitySummary ranks effects by their influence on one metric
type SensitivitySummary struct {
	Metric              Metric              `json:"metric"`
	Swing               decimal.Decimal     `json:"swing"`
	Results             []EffectSensitivity `json:"results"`
	MostSensitiveEffect string              `json:"mostSensitiveEffect"`
	RiskLevel           string              `json:"riskLevel"`
	Recommendations     []string            `json:"recommendations"`
}

// DetermineRiskLevel classifies the largest elasticity. In a linear model an
// effect's elasticity equals its share of the metric.
func (ss *SensitivitySummary) DetermineRiskLevel() string {
	maxScore := decimal.Zero
	for _, r := range ss.Results {
		if r.Score.Abs().GreaterThan(maxScore) {
			maxScore = r.Score.Abs()
		}
	}

	if maxScore.LessThan(decimal.NewFromFloat(0.25)) {
		return RiskLow
	} else if maxScore.LessThan(decimal.NewFromFloat(0.5)) {
		return RiskMedium
	} else if maxScore.LessThan(decimal.NewFromFloat(0.75)) {
		return RiskHigh
	}
	return RiskCritical
}

// GenerateRecommendations produces guidance based on the risk level
func (ss *SensitivitySummary) GenerateRecommendations() []string {
	recommendations := []string{}

	switch ss.DetermineRiskLevel() {
	case RiskLow:
		recommendations = append(recommendations, "Impact is spread across several effects")
		recommendations = append(recommendations, "No single assumption dominates the estimate")
	case RiskMedium:
		recommendations = append(recommendations, fmt.Sprintf("Track the evidence behind %s", ss.MostSensitiveEffect))
	case RiskHigh:
		recommendations = append(recommendations, fmt.Sprintf("Estimate depends heavily on %s", ss.MostSensitiveEffect))
		recommendations = append(recommendations, "Run Monte Carlo with a wider variation on this effect")
	case RiskCritical:
		recommendations = append(recommendations, fmt.Sprintf("Estimate is driven almost entirely by %s", ss.MostSensitiveEffect))
		recommendations = append(recommendations, "Treat the result as a single-assumption projection")
	}

	return recommendations
}
