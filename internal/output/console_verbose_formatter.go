package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/heis/internal/domain"
)

const banner = "================================================================================="

// ConsoleVerboseFormatter renders the full report with every computed section.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Assessment == nil {
		return nil, fmt.Errorf("report has no assessment")
	}
	var buf bytes.Buffer

	fmt.Fprintln(&buf, banner)
	fmt.Fprintf(&buf, "HEALTH & ECONOMIC IMPACT ANALYSIS: %s\n", strings.ToUpper(interventionTitle(report)))
	fmt.Fprintln(&buf, banner)
	fmt.Fprintf(&buf, "Run ID:     %s\n", report.RunID)
	fmt.Fprintf(&buf, "Generated:  %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&buf, "Population: %s (%s of %s people)\n",
		report.Population.Segment.Key,
		groupThousands(fmt.Sprint(report.Population.TargetPopulation)),
		groupThousands(fmt.Sprint(report.Population.TotalPopulation)))
	if report.Intervention.Description != "" {
		fmt.Fprintf(&buf, "About:      %s\n", report.Intervention.Description)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writePathwayTable(&buf, report.Assessment)
	writeWarnings(&buf, report.Warnings())

	if report.Projection != nil {
		writeProjection(&buf, report.Projection)
	}
	if len(report.Scenarios) > 0 {
		writeScenarios(&buf, report.Scenarios)
	}
	if report.MonteCarlo != nil {
		writeMonteCarlo(&buf, report.MonteCarlo)
	}
	if report.Stratified != nil {
		writeStratified(&buf, report.Stratified)
	}
	if report.Sensitivity != nil {
		out, err := SensitivityConsoleFormatter{}.FormatSensitivity(report.Sensitivity)
		if err != nil {
			return nil, err
		}
		buf.WriteString(out)
	}

	if len(report.Intervention.References) > 0 {
		fmt.Fprintln(&buf, "REFERENCES")
		fmt.Fprintln(&buf, strings.Repeat("=", 10))
		for _, ref := range report.Intervention.References {
			fmt.Fprintf(&buf, "• %s\n", ref)
		}
		fmt.Fprintln(&buf)
	}

	return buf.Bytes(), nil
}

func interventionTitle(report *Report) string {
	if report.Intervention.Name != "" {
		return report.Intervention.Name
	}
	return report.Intervention.Key
}

func writePathwayTable(buf *bytes.Buffer, a *domain.ImpactAssessment) {
	fmt.Fprintln(buf, "ANNUAL IMPACT BY PATHWAY")
	fmt.Fprintln(buf, strings.Repeat("=", 24))
	fmt.Fprintf(buf, "%-12s %16s %16s %16s %16s\n", "Pathway", "GDP", "Healthcare", "Medicare", "QALYs")
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	for _, r := range a.Pathways {
		fmt.Fprintf(buf, "%-12s %16s %16s %16s %16s\n",
			r.Pathway,
			FormatLargeNumber(r.GDPImpact),
			FormatLargeNumber(r.HealthcareSavings),
			FormatLargeNumber(r.MedicareSavings),
			FormatQALY(r.QALYImprovement))
	}
	fmt.Fprintln(buf, strings.Repeat("-", 80))
	fmt.Fprintf(buf, "%-12s %16s %16s %16s %16s\n",
		"TOTAL",
		FormatLargeNumber(a.Total.GDPImpact),
		FormatLargeNumber(a.Total.HealthcareSavings),
		FormatLargeNumber(a.Total.MedicareSavings),
		FormatQALY(a.Total.QALYImprovement))
	fmt.Fprintln(buf)
}

func writeWarnings(buf *bytes.Buffer, warnings []domain.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(buf, "⚠️  PLAUSIBILITY WARNINGS")
	for _, w := range warnings {
		fmt.Fprintf(buf, "• %s\n", w.Message)
	}
	fmt.Fprintln(buf)
}

func writeProjection(buf *bytes.Buffer, p *ProjectionSection) {
	fmt.Fprintf(buf, "PROJECTION (%d years, %s annual growth, %s cumulation)\n",
		len(p.Points), FormatRate(p.GrowthRate), p.Cumulation)
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "%-5s %14s %14s %14s %14s %12s %14s\n",
		"Year", "Medicare", "Cum. Medicare", "GDP", "Cum. GDP", "QALYs", "Cum. QALYs")
	fmt.Fprintln(buf, strings.Repeat("-", 93))
	for _, pt := range p.Points {
		fmt.Fprintf(buf, "%-5d %14s %14s %14s %14s %12s %14s\n",
			pt.Year,
			FormatLargeNumber(pt.AnnualMedicareSavings),
			FormatLargeNumber(pt.CumulativeMedicareSavings),
			FormatLargeNumber(pt.AnnualGDPImpact),
			FormatLargeNumber(pt.CumulativeGDPImpact),
			FormatQALY(pt.AnnualQALYImpact),
			FormatQALY(pt.CumulativeQALYImpact))
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Present value at %s discount: Medicare %s, GDP %s, QALYs %s\n",
		FormatRate(p.DiscountRate),
		FormatLargeNumber(p.PresentValue.MedicareSavings),
		FormatLargeNumber(p.PresentValue.GDPImpact),
		FormatQALY(p.PresentValue.QALYImpact))
	fmt.Fprintln(buf)
}

func writeScenarios(buf *bytes.Buffer, scenarios []domain.ScenarioResult) {
	fmt.Fprintln(buf, "SENSITIVITY SCENARIOS")
	fmt.Fprintln(buf, strings.Repeat("=", 21))
	fmt.Fprintf(buf, "%-14s %8s %8s %18s %18s %16s\n",
		"Scenario", "Effect", "Growth", "Cum. Medicare", "Cum. GDP", "Cum. QALYs")
	fmt.Fprintln(buf, strings.Repeat("-", 88))
	for _, s := range scenarios {
		fmt.Fprintf(buf, "%-14s %8s %8s %18s %18s %16s\n",
			s.Name,
			s.EffectMultiplier.StringFixed(2)+"x",
			FormatRate(s.GrowthRate),
			FormatLargeNumber(s.FinalYear.CumulativeMedicareSavings),
			FormatLargeNumber(s.FinalYear.CumulativeGDPImpact),
			FormatQALY(s.FinalYear.CumulativeQALYImpact))
	}
	if len(scenarios) > 0 {
		fmt.Fprintf(buf, "Values are cumulative through year %d.\n", scenarios[0].FinalYear.Year)
	}
	fmt.Fprintln(buf)
}

func writeMonteCarlo(buf *bytes.Buffer, mc *domain.MonteCarloSummary) {
	fmt.Fprintf(buf, "MONTE CARLO (%d simulations, seed %d, %s confidence)\n",
		mc.Simulations, mc.Seed, FormatRate(mc.ConfidenceLevel))
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "%-20s %16s %16s %16s %16s\n", "Metric", "Mean", "Std Dev", "Lower", "Upper")
	fmt.Fprintln(buf, strings.Repeat("-", 88))
	for _, s := range mc.Statistics {
		fmt.Fprintf(buf, "%-20s %16s %16s %16s %16s\n",
			s.Metric.Label(),
			FormatMetric(s.Metric, s.Mean),
			FormatMetric(s.Metric, s.StdDev),
			FormatMetric(s.Metric, s.Lower),
			FormatMetric(s.Metric, s.Upper))
	}
	fmt.Fprintln(buf)
}

func writeStratified(buf *bytes.Buffer, s *StratificationSection) {
	fmt.Fprintln(buf, "AGE-STRATIFIED IMPACT")
	fmt.Fprintln(buf, strings.Repeat("=", 21))
	fmt.Fprintf(buf, "Effectiveness factor: %s\n", s.Factor.StringFixed(4))
	if s.DiscountYears > 0 {
		fmt.Fprintf(buf, "Discounted over:      %d years\n", s.DiscountYears)
	}
	for _, m := range domain.AllMetrics {
		fmt.Fprintf(buf, "%-20s %s\n", m.Label()+":", FormatMetric(m, s.Impact.Value(m)))
	}
	fmt.Fprintln(buf)
}
