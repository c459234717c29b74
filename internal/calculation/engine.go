package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates pathway calculations, aggregation,
// projection and plausibility validation
type CalculationEngine struct {
	Validator *PlausibilityValidator
	Logger    Logger
	Debug     bool // Enable debug output for detailed calculations
}

// NewCalculationEngine creates a new calculation engine with default
// national totals and plausibility bounds
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Validator: NewPlausibilityValidator(),
		Logger:    NopLogger{},
	}
}

// NewCalculationEngineWithConfig creates an engine whose plausibility checks
// use the configured national totals and bounds
func NewCalculationEngineWithConfig(config *domain.Configuration) *CalculationEngine {
	ce := NewCalculationEngine()
	if config == nil {
		return ce
	}
	if config.NationalTotals.GDP.IsPositive() || config.NationalTotals.MedicareSpending.IsPositive() {
		ce.Validator.Totals = config.NationalTotals
	}
	if !config.Bounds.MaxGDPShare.IsZero() {
		ce.Validator.Bounds = config.Bounds
	}
	return ce
}

// SetLogger sets the logger; nil selects NopLogger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Assess validates the inputs, runs every present pathway and aggregates the
// results. Plausibility findings are attached as warnings and never fail the
// assessment.
func (ce *CalculationEngine) Assess(in domain.CalculationInputs) (*domain.ImpactAssessment, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid inputs: %w", err)
	}

	records := CalculatePathways(in.Intervention.Parameters, in.Population, in.Economics, in.Baselines)

	assessment := &domain.ImpactAssessment{
		Intervention: in.Intervention.Key,
		Segment:      in.Population.Segment.Key,
		Pathways:     make([]domain.BenefitRecord, 0, len(records)),
		Total:        Aggregate(records...),
	}
	for _, r := range records {
		if r == nil {
			continue
		}
		if ce.Debug {
			ce.Logger.Debugf("%s: gdp=%s healthcare=%s medicare=%s qaly=%s", r.Pathway,
				r.GDPImpact.StringFixed(0), r.HealthcareSavings.StringFixed(0),
				r.MedicareSavings.StringFixed(0), r.QALYImprovement.StringFixed(1))
		}
		assessment.Pathways = append(assessment.Pathways, *r)
	}

	assessment.Warnings = ce.Validator.Validate(assessment.Total, in.Population, in.Economics, in.Baselines)
	for _, w := range assessment.Warnings {
		ce.Logger.Warnf("%s/%s: %s", assessment.Intervention, assessment.Segment, w.Message)
	}

	return assessment, nil
}

// RunAssessment resolves an intervention and segment from config and assesses them.
func (ce *CalculationEngine) RunAssessment(ctx context.Context, config *domain.Configuration, interventionKey, segmentKey string) (*domain.ImpactAssessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	in, err := config.Inputs(interventionKey, segmentKey)
	if err != nil {
		return nil, err
	}
	ce.Logger.Infof("assessing %s for segment %s", interventionKey, segmentKey)
	return ce.Assess(in)
}

// Project assesses the inputs and projects the aggregated impact.
func (ce *CalculationEngine) Project(in domain.CalculationInputs, opts ProjectionOptions) (*domain.ImpactAssessment, []domain.TimeSeriesPoint, error) {
	assessment, err := ce.Assess(in)
	if err != nil {
		return nil, nil, err
	}
	points, err := ProjectWithOptions(assessment.Total, opts)
	if err != nil {
		return nil, nil, err
	}
	return assessment, points, nil
}

// RunScenarios validates the inputs and runs the default sensitivity scenarios.
func (ce *CalculationEngine) RunScenarios(in domain.CalculationInputs, effectMultiplier, growthRate decimal.Decimal) ([]domain.ScenarioResult, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid inputs: %w", err)
	}
	return NewSensitivityAnalyzerWithEngine(ce).RunScenarios(in, effectMultiplier, growthRate)
}

// RunMonteCarlo validates the inputs and runs a Monte Carlo simulation.
func (ce *CalculationEngine) RunMonteCarlo(ctx context.Context, in domain.CalculationInputs, config MonteCarloConfig) (*MonteCarloResult, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid inputs: %w", err)
	}
	return NewMonteCarloSimulator(ce, config).Run(ctx, in)
}
