package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/rgehrsitz/heis/internal/transform"
	"github.com/shopspring/decimal"
)

// ScenarioHorizonYears is the projection length used for every scenario.
const ScenarioHorizonYears = 10

// ScenarioDefinition names a scenario and the factor applied to both the
// effect multiplier and the growth rate.
type ScenarioDefinition struct {
	Name   string
	Factor decimal.Decimal
}

// DefaultScenarios returns Conservative, Base Case and Optimistic in that order.
func DefaultScenarios() []ScenarioDefinition {
	return []ScenarioDefinition{
		{Name: "Conservative", Factor: decimal.NewFromFloat(0.8)},
		{Name: "Base Case", Factor: decimal.NewFromInt(1)},
		{Name: "Optimistic", Factor: decimal.NewFromFloat(1.2)},
	}
}

// SensitivityAnalyzer runs scenario and per-effect sensitivity analysis
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
	Scenarios         []ScenarioDefinition
	HorizonYears      int
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer() *SensitivityAnalyzer {
	return NewSensitivityAnalyzerWithEngine(NewCalculationEngine())
}

// NewSensitivityAnalyzerWithEngine creates an analyzer that logs through engine
func NewSensitivityAnalyzerWithEngine(engine *CalculationEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{
		calculationEngine: engine,
		Scenarios:         DefaultScenarios(),
		HorizonYears:      ScenarioHorizonYears,
	}
}

// RunScenarios runs the default scenarios with a fresh analyzer.
func RunScenarios(in domain.CalculationInputs, effectMultiplier, growthRate decimal.Decimal) ([]domain.ScenarioResult, error) {
	return NewSensitivityAnalyzer().RunScenarios(in, effectMultiplier, growthRate)
}

// RunScenarios scales every effect by effectMultiplier×factor, recomputes the
// impact and projects it at growthRate×factor for each scenario. The final
// projected year of each scenario is returned in scenario order.
func (sa *SensitivityAnalyzer) RunScenarios(in domain.CalculationInputs, effectMultiplier, growthRate decimal.Decimal) ([]domain.ScenarioResult, error) {
	results := make([]domain.ScenarioResult, 0, len(sa.Scenarios))
	log := sa.calculationEngine.Logger

	for _, sc := range sa.Scenarios {
		effectMult := effectMultiplier.Mul(sc.Factor)
		growth := growthRate.Mul(sc.Factor)

		scaled := transform.ScaleEffects(in.Intervention.Parameters, effectMult)
		agg := CalculateImpact(scaled, in.Population, in.Economics, in.Baselines)

		points, err := Project(agg, sa.HorizonYears, growth)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		final, _ := FinalYear(points)

		log.Debugf("scenario %s: effect=%s growth=%s cumulative medicare=%s",
			sc.Name, effectMult.String(), growth.String(), final.CumulativeMedicareSavings.StringFixed(0))

		results = append(results, domain.ScenarioResult{
			Name:             sc.Name,
			EffectMultiplier: effectMult,
			GrowthRate:       growth,
			FinalYear:        final,
		})
	}

	return results, nil
}

// AnalyzeEffect recomputes metric with one effect set to low and high.
func (sa *SensitivityAnalyzer) AnalyzeEffect(in domain.CalculationInputs, metric domain.Metric, effect string, low, high decimal.Decimal) (domain.EffectSensitivity, error) {
	base, err := transform.EffectValue(in.Intervention.Parameters, effect)
	if err != nil {
		return domain.EffectSensitivity{}, err
	}

	lowParams, err := transform.OverrideEffect(in.Intervention.Parameters, effect, low)
	if err != nil {
		return domain.EffectSensitivity{}, err
	}
	highParams, err := transform.OverrideEffect(in.Intervention.Parameters, effect, high)
	if err != nil {
		return domain.EffectSensitivity{}, err
	}

	result := domain.EffectSensitivity{
		Effect:     effect,
		BaseValue:  base,
		LowValue:   low,
		HighValue:  high,
		BaseOutput: sa.metricFor(in, in.Intervention.Parameters, metric),
		LowOutput:  sa.metricFor(in, lowParams, metric),
		HighOutput: sa.metricFor(in, highParams, metric),
	}
	result.Score = sensitivityScore(result)

	return result, nil
}

// AnalyzeAllEffects swings every present, non-zero effect by ±swing (a
// fraction of its base value) and ranks effects by output swing.
func (sa *SensitivityAnalyzer) AnalyzeAllEffects(in domain.CalculationInputs, metric domain.Metric, swing decimal.Decimal) (*domain.SensitivitySummary, error) {
	if !swing.IsPositive() || swing.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("swing must be in (0, 1], got %s", swing.String())
	}

	one := decimal.NewFromInt(1)
	results := []domain.EffectSensitivity{}

	for _, name := range transform.EffectNames() {
		base, err := transform.EffectValue(in.Intervention.Parameters, name)
		if err != nil || base.IsZero() {
			continue
		}

		result, err := sa.AnalyzeEffect(in, metric, name, base.Mul(one.Sub(swing)), base.Mul(one.Add(swing)))
		if err != nil {
			return nil, fmt.Errorf("failed to analyze %s: %w", name, err)
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OutputSwing().GreaterThan(results[j].OutputSwing())
	})

	summary := &domain.SensitivitySummary{
		Metric:  metric,
		Swing:   swing,
		Results: results,
	}
	if len(results) > 0 {
		summary.MostSensitiveEffect = results[0].Effect
	}
	summary.RiskLevel = summary.DetermineRiskLevel()
	summary.Recommendations = summary.GenerateRecommendations()

	return summary, nil
}

func (sa *SensitivityAnalyzer) metricFor(in domain.CalculationInputs, ip domain.InterventionParameters, metric domain.Metric) decimal.Decimal {
	return CalculateImpact(ip, in.Population, in.Economics, in.Baselines).Value(metric)
}

// sensitivityScore is the elasticity (Δoutput/base output)/(Δparam/base param).
func sensitivityScore(es domain.EffectSensitivity) decimal.Decimal {
	paramRange := es.HighValue.Sub(es.LowValue)
	if paramRange.IsZero() || es.BaseOutput.IsZero() || es.BaseValue.IsZero() {
		return decimal.Zero
	}
	outputChange := es.HighOutput.Sub(es.LowOutput).Div(es.BaseOutput)
	paramChange := paramRange.Div(es.BaseValue)
	return outputChange.Div(paramChange)
}
