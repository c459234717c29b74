package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/heis/internal/calculation"
	"github.com/rgehrsitz/heis/internal/compare"
	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/rgehrsitz/heis/internal/output"
	"github.com/rgehrsitz/heis/internal/transform"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [config-file]",
		Short: "Calculate the annual impact of an intervention on a population segment",
		Long: `Run the five pathway calculators (cognitive, kidney, physical, longevity and
healthcare utilization), aggregate them and check the totals for plausibility.

Examples:
  heis calculate
  heis calculate heis.yaml --intervention follistatin --segment over_60
  heis calculate --set iq_increase=5 --years 10 --format markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, args)
			if err != nil {
				return err
			}

			assessment, err := s.engine.Assess(s.inputs)
			if err != nil {
				return err
			}
			report := output.NewReport(s.inputs, assessment)

			if cmd.Flags().Changed("years") {
				years, _ := cmd.Flags().GetInt("years")
				growth, _ := cmd.Flags().GetFloat64("growth")
				opts := calculation.ProjectionOptions{
					Years:      years,
					GrowthRate: decimal.NewFromFloat(growth),
					Cumulation: s.config.Projection.Cumulation,
				}
				section, err := projectionSection(s, opts)
				if err != nil {
					return err
				}
				report.Projection = section.ProjectionSection
			}
			return emitReport(cmd, report)
		},
	}
	addInputFlags(cmd)
	addReportFlags(cmd, "console")
	cmd.Flags().Int("years", 0, "Also project the impact over this many years (must be positive)")
	cmd.Flags().Float64("growth", 0.02, "Annual growth rate used with --years")
	return cmd
}

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [config-file]",
		Short: "Project the annual impact over a time horizon",
		Long: `Project the aggregated impact with linear growth. Year i has annual value
A×(1+i×g). By default the cumulative value is annual×(i+1); --running-sum sums
the annual values instead. Totals are also discounted to present value at the
configured discount rate.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, args)
			if err != nil {
				return err
			}

			opts := calculation.ProjectionOptions{
				Years:      s.config.Projection.Years,
				GrowthRate: s.config.Projection.GrowthRate,
				Cumulation: s.config.Projection.Cumulation,
			}
			if cmd.Flags().Changed("years") {
				opts.Years, _ = cmd.Flags().GetInt("years")
			}
			if cmd.Flags().Changed("growth") {
				growth, _ := cmd.Flags().GetFloat64("growth")
				opts.GrowthRate = decimal.NewFromFloat(growth)
			}
			if runningSum, _ := cmd.Flags().GetBool("running-sum"); runningSum {
				opts.Cumulation = domain.CumulationRunningSum
			}

			section, err := projectionSection(s, opts)
			if err != nil {
				return err
			}
			report := output.NewReport(s.inputs, section.assessment)
			report.Projection = section.ProjectionSection
			return emitReport(cmd, report)
		},
	}
	addInputFlags(cmd)
	addReportFlags(cmd, "console")
	cmd.Flags().Int("years", 0, "Projection horizon in years (default from configuration)")
	cmd.Flags().Float64("growth", 0, "Annual growth rate (default from configuration)")
	cmd.Flags().Bool("running-sum", false, "Cumulate by summing annual values")
	return cmd
}

type projectedRun struct {
	*output.ProjectionSection
	assessment *domain.ImpactAssessment
}

func projectionSection(s *session, opts calculation.ProjectionOptions) (projectedRun, error) {
	assessment, points, err := s.engine.Project(s.inputs, opts)
	if err != nil {
		return projectedRun{}, err
	}
	cumulation := opts.Cumulation
	if cumulation == "" {
		cumulation = domain.CumulationScaled
	}
	return projectedRun{
		ProjectionSection: &output.ProjectionSection{
			GrowthRate:   opts.GrowthRate,
			Cumulation:   cumulation,
			DiscountRate: s.inputs.Economics.DiscountRate,
			Points:       points,
			PresentValue: calculation.PresentValue(points, s.inputs.Economics.DiscountRate),
		},
		assessment: assessment,
	}, nil
}

func scenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios [config-file]",
		Short: "Run the conservative, base and optimistic scenarios",
		Long: `Scale every effect by 0.8, 1.0 and 1.2 (times --effect-multiplier) and report
the tenth projection year of each scenario.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, args)
			if err != nil {
				return err
			}

			multiplier, _ := cmd.Flags().GetFloat64("effect-multiplier")
			growth, _ := cmd.Flags().GetFloat64("growth")

			assessment, err := s.engine.Assess(s.inputs)
			if err != nil {
				return err
			}
			scenarios, err := s.engine.RunScenarios(s.inputs, decimal.NewFromFloat(multiplier), decimal.NewFromFloat(growth))
			if err != nil {
				return err
			}

			report := output.NewReport(s.inputs, assessment)
			report.Scenarios = scenarios
			return emitReport(cmd, report)
		},
	}
	addInputFlags(cmd)
	addReportFlags(cmd, "console")
	cmd.Flags().Float64("effect-multiplier", 1, "Multiplier applied to every effect before the scenario factors")
	cmd.Flags().Float64("growth", 0.02, "Annual growth rate")
	return cmd
}

func monteCarloCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "montecarlo [config-file]",
		Aliases: []string{"monte-carlo"},
		Short:   "Estimate outcome uncertainty by perturbing intervention effects",
		Long: `Multiply each effect by a Normal(1, σ) draw (clamped at zero) for every
simulation and summarize the distribution of each aggregated metric.

Examples:
  heis montecarlo --simulations 5000 --seed 7
  heis montecarlo --variation lifespan_increase_years=0.5 --confidence 0.9`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, args)
			if err != nil {
				return err
			}

			mcConfig := calculation.DefaultMonteCarloConfig()
			mcConfig.NumSimulations, _ = cmd.Flags().GetInt("simulations")
			mcConfig.Seed, _ = cmd.Flags().GetInt64("seed")
			confidence, _ := cmd.Flags().GetFloat64("confidence")
			mcConfig.ConfidenceLevel = decimal.NewFromFloat(confidence)

			variations, _ := cmd.Flags().GetStringArray("variation")
			for _, v := range variations {
				name, sigma, err := parseVariation(v)
				if err != nil {
					return err
				}
				mcConfig.Variations[name] = sigma
			}

			assessment, err := s.engine.Assess(s.inputs)
			if err != nil {
				return err
			}
			result, err := s.engine.RunMonteCarlo(cmd.Context(), s.inputs, mcConfig)
			if err != nil {
				return err
			}

			report := output.NewReport(s.inputs, assessment)
			report.MonteCarlo = &result.Summary
			return emitReport(cmd, report)
		},
	}
	addInputFlags(cmd)
	addReportFlags(cmd, "console")
	cmd.Flags().Int("simulations", 1000, "Number of simulations")
	cmd.Flags().Int64("seed", 42, "Random seed")
	cmd.Flags().Float64("confidence", 0.95, "Confidence level of the reported interval")
	cmd.Flags().StringArray("variation", nil, "Standard deviation for one effect (name=σ); repeatable")
	return cmd
}

func parseVariation(v string) (string, decimal.Decimal, error) {
	parts := strings.SplitN(v, "=", 2)
	if len(parts) != 2 {
		return "", decimal.Zero, fmt.Errorf("invalid variation %q: expected name=sigma", v)
	}
	name := strings.TrimSpace(parts[0])
	if _, ok := transform.LookupEffect(name); !ok {
		return "", decimal.Zero, fmt.Errorf("unknown effect %q (available: %s)", name, strings.Join(transform.EffectNames(), ", "))
	}
	sigma, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", decimal.Zero, fmt.Errorf("invalid variation %q: %w", v, err)
	}
	return name, sigma, nil
}

func stratifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stratify [config-file]",
		Short: "Weight the impact by age-group effectiveness",
		Long: `Apply the default age stratification to the aggregated impact and optionally
discount it to present value over --discount-years at the configured rate.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, args)
			if err != nil {
				return err
			}

			assessment, err := s.engine.Assess(s.inputs)
			if err != nil {
				return err
			}

			strat := calculation.DefaultAgeStratification()
			years, _ := cmd.Flags().GetInt("discount-years")
			if years < 0 {
				return fmt.Errorf("discount years cannot be negative, got %d", years)
			}
			var discounting *calculation.Discounting
			if years > 0 {
				discounting = &calculation.Discounting{Rate: s.inputs.Economics.DiscountRate, Years: years}
			}
			impact, err := strat.ApplyToImpact(assessment.Total, discounting)
			if err != nil {
				return err
			}

			report := output.NewReport(s.inputs, assessment)
			report.Stratified = &output.StratificationSection{
				Factor:        strat.EffectivenessFactor(),
				DiscountYears: years,
				Impact:        impact,
			}
			return emitReport(cmd, report)
		},
	}
	addInputFlags(cmd)
	addReportFlags(cmd, "console")
	cmd.Flags().Int("discount-years", 0, "Discount the stratified impact over this many years")
	return cmd
}

func sensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [config-file]",
		Short: "Rank effects by their influence on one metric",
		Long: `Swing each modeled effect by ±--swing around its base value and rank the
effects by the elasticity of the chosen metric.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, args)
			if err != nil {
				return err
			}

			metricName, _ := cmd.Flags().GetString("metric")
			metric, err := domain.ParseMetric(metricName)
			if err != nil {
				return err
			}
			swing, _ := cmd.Flags().GetFloat64("swing")
			format, _ := cmd.Flags().GetString("format")

			formatter, err := output.NewSensitivityFormatter(format)
			if err != nil {
				return err
			}

			analyzer := calculation.NewSensitivityAnalyzerWithEngine(s.engine)
			summary, err := analyzer.AnalyzeAllEffects(s.inputs, metric, decimal.NewFromFloat(swing))
			if err != nil {
				return err
			}

			text, err := formatter.FormatSensitivity(summary)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
	addInputFlags(cmd)
	cmd.Flags().String("metric", string(domain.MetricMedicareSavings), "Metric to analyze (gdp_impact, healthcare_savings, medicare_savings, qaly_improvement)")
	cmd.Flags().Float64("swing", 0.2, "Relative swing applied to each effect")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [config-file]",
		Short: "Compare interventions, segments and effect variants against a base",
		Long: `Evaluate a base intervention on a base segment, then every other requested
intervention/segment pair and every template variant of the base, and report
the differences.

Examples:
  heis compare --interventions follistatin,klotho --segments adult,over_60
  heis compare --base-intervention klotho --with conservative,without_kidney
  heis compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}

			cfg, source, err := loadConfiguration(args)
			if err != nil {
				return err
			}

			opts := compare.CompareOptions{}
			opts.BaseIntervention, _ = cmd.Flags().GetString("base-intervention")
			opts.BaseSegment, _ = cmd.Flags().GetString("base-segment")
			opts.Interventions, _ = cmd.Flags().GetStringSlice("interventions")
			opts.Segments, _ = cmd.Flags().GetStringSlice("segments")
			with, _ := cmd.Flags().GetString("with")
			opts.Templates = transform.ParseTemplateList(with)
			format, _ := cmd.Flags().GetString("format")

			engine := compare.NewCompareEngine(newEngine(cmd, cfg))
			set, err := engine.Compare(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			set.ConfigPath = source

			var out string
			switch strings.ToLower(format) {
			case "table", "":
				out = (&compare.TableFormatter{}).Format(set)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(set)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
			default:
				return fmt.Errorf("unknown format %q (available: table, compact, csv, json)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("base-intervention", defaultIntervention, "Base intervention key")
	cmd.Flags().String("base-segment", defaultSegment, "Base population segment key")
	cmd.Flags().StringSlice("interventions", nil, "Interventions to compare (default: base only)")
	cmd.Flags().StringSlice("segments", nil, "Segments to compare (default: base only)")
	cmd.Flags().String("with", "", "Comma-separated templates applied to the base intervention")
	cmd.Flags().Bool("list-templates", false, "List available templates and exit")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}
