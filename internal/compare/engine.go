package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/heis/internal/calculation"
	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/rgehrsitz/heis/internal/transform"
)

// CompareEngine orchestrates intervention comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior. Every pair in
// Interventions × Segments other than the base pair becomes an alternative;
// an empty list stands for the base value alone.
type CompareOptions struct {
	BaseIntervention string
	BaseSegment      string
	Interventions    []string
	Segments         []string
	Templates        []string // variants of the base pair
}

type evaluation struct {
	name         string
	description  string
	intervention string
	segment      string
	template     *transform.Template
}

// Compare evaluates the base pair and every alternative
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if options.BaseIntervention == "" || options.BaseSegment == "" {
		return nil, fmt.Errorf("base intervention and segment are required")
	}

	baseName := ResultName(options.BaseIntervention, options.BaseSegment)
	base, err := ce.evaluate(ctx, config, evaluation{
		name:         baseName,
		intervention: options.BaseIntervention,
		segment:      options.BaseSegment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base %s: %w", baseName, err)
	}

	plan, err := ce.plan(options)
	if err != nil {
		return nil, err
	}

	alternatives := make([]ComparisonResult, 0, len(plan))
	for _, ev := range plan {
		alt, err := ce.evaluate(ctx, config, ev)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s: %w", ev.name, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(*alt, *base))
	}

	compSet := &ComparisonSet{
		BaseName:           baseName,
		BaseResult:         base,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) plan(options CompareOptions) ([]evaluation, error) {
	interventions := options.Interventions
	if len(interventions) == 0 {
		interventions = []string{options.BaseIntervention}
	}
	segments := options.Segments
	if len(segments) == 0 {
		segments = []string{options.BaseSegment}
	}

	var plan []evaluation
	for _, i := range interventions {
		for _, s := range segments {
			if i == options.BaseIntervention && s == options.BaseSegment {
				continue
			}
			plan = append(plan, evaluation{name: ResultName(i, s), intervention: i, segment: s})
		}
	}

	for _, name := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		plan = append(plan, evaluation{
			name:         ResultName(options.BaseIntervention+"+"+template.Name, options.BaseSegment),
			description:  template.Description,
			intervention: options.BaseIntervention,
			segment:      options.BaseSegment,
			template:     &template,
		})
	}
	return plan, nil
}

func (ce *CompareEngine) evaluate(ctx context.Context, config *domain.Configuration, ev evaluation) (*ComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in, err := config.Inputs(ev.intervention, ev.segment)
	if err != nil {
		return nil, err
	}
	if ev.template != nil {
		params, err := transform.ApplyTemplate(in.Intervention.Parameters, *ev.template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", ev.template.Name, err)
		}
		in = in.WithParameters(params)
	}

	assessment, err := ce.CalcEngine.Assess(in)
	if err != nil {
		return nil, err
	}

	result := ce.MetricsCalculator.CalculateMetrics(ev.name, assessment)
	result.Description = ev.description
	return &result, nil
}
