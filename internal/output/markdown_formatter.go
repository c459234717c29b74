package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/heis/internal/domain"
)

// MarkdownFormatter renders the report as GitHub-flavored markdown tables.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Assessment == nil {
		return nil, fmt.Errorf("report has no assessment")
	}
	var buf bytes.Buffer
	a := report.Assessment

	fmt.Fprintf(&buf, "# %s Impact Report\n\n", interventionTitle(report))
	fmt.Fprintf(&buf, "Population segment **%s**, %s people targeted. Run `%s`.\n\n",
		report.Population.Segment.Key,
		groupThousands(fmt.Sprint(report.Population.TargetPopulation)),
		report.RunID)

	fmt.Fprintln(&buf, "## Annual Impact")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "| Pathway | GDP | Healthcare | Medicare | QALYs |")
	fmt.Fprintln(&buf, "|---|---:|---:|---:|---:|")
	for _, r := range a.Pathways {
		fmt.Fprintf(&buf, "| %s | %s | %s | %s | %s |\n", r.Pathway,
			FormatLargeNumber(r.GDPImpact), FormatLargeNumber(r.HealthcareSavings),
			FormatLargeNumber(r.MedicareSavings), FormatQALY(r.QALYImprovement))
	}
	fmt.Fprintf(&buf, "| **Total** | **%s** | **%s** | **%s** | **%s** |\n\n",
		FormatLargeNumber(a.Total.GDPImpact), FormatLargeNumber(a.Total.HealthcareSavings),
		FormatLargeNumber(a.Total.MedicareSavings), FormatQALY(a.Total.QALYImprovement))

	if len(a.Warnings) > 0 {
		fmt.Fprintln(&buf, "## Warnings")
		fmt.Fprintln(&buf)
		for _, w := range a.Warnings {
			fmt.Fprintf(&buf, "- %s\n", w.Message)
		}
		fmt.Fprintln(&buf)
	}

	if p := report.Projection; p != nil {
		fmt.Fprintf(&buf, "## Projection (%s growth)\n\n", FormatRate(p.GrowthRate))
		fmt.Fprintln(&buf, "| Year | Medicare | Cumulative Medicare | GDP | Cumulative GDP | QALYs | Cumulative QALYs |")
		fmt.Fprintln(&buf, "|---:|---:|---:|---:|---:|---:|---:|")
		for _, pt := range p.Points {
			fmt.Fprintf(&buf, "| %d | %s | %s | %s | %s | %s | %s |\n", pt.Year,
				FormatLargeNumber(pt.AnnualMedicareSavings), FormatLargeNumber(pt.CumulativeMedicareSavings),
				FormatLargeNumber(pt.AnnualGDPImpact), FormatLargeNumber(pt.CumulativeGDPImpact),
				FormatQALY(pt.AnnualQALYImpact), FormatQALY(pt.CumulativeQALYImpact))
		}
		fmt.Fprintln(&buf)
	}

	if len(report.Scenarios) > 0 {
		fmt.Fprintln(&buf, "## Scenarios")
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "| Scenario | Effect | Growth | Cumulative Medicare | Cumulative GDP | Cumulative QALYs |")
		fmt.Fprintln(&buf, "|---|---:|---:|---:|---:|---:|")
		for _, s := range report.Scenarios {
			fmt.Fprintf(&buf, "| %s | %sx | %s | %s | %s | %s |\n", s.Name,
				s.EffectMultiplier.StringFixed(2), FormatRate(s.GrowthRate),
				FormatLargeNumber(s.FinalYear.CumulativeMedicareSavings),
				FormatLargeNumber(s.FinalYear.CumulativeGDPImpact),
				FormatQALY(s.FinalYear.CumulativeQALYImpact))
		}
		fmt.Fprintln(&buf)
	}

	if mc := report.MonteCarlo; mc != nil {
		fmt.Fprintf(&buf, "## Monte Carlo (%d runs, %s confidence)\n\n", mc.Simulations, FormatRate(mc.ConfidenceLevel))
		fmt.Fprintln(&buf, "| Metric | Mean | Lower | Upper |")
		fmt.Fprintln(&buf, "|---|---:|---:|---:|")
		for _, s := range mc.Statistics {
			fmt.Fprintf(&buf, "| %s | %s | %s | %s |\n", s.Metric.Label(),
				FormatMetric(s.Metric, s.Mean), FormatMetric(s.Metric, s.Lower), FormatMetric(s.Metric, s.Upper))
		}
		fmt.Fprintln(&buf)
	}

	if s := report.Stratified; s != nil {
		fmt.Fprintf(&buf, "## Age-Stratified Impact (factor %s)\n\n", s.Factor.StringFixed(4))
		for _, metric := range domain.AllMetrics {
			fmt.Fprintf(&buf, "- %s: %s\n", metric.Label(), FormatMetric(metric, s.Impact.Value(metric)))
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "## Assumptions")
	fmt.Fprintln(&buf)
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = DefaultAssumptions
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "- %s\n", a)
	}
	if refs := report.Intervention.References; len(refs) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "## References")
		fmt.Fprintln(&buf)
		for _, r := range refs {
			fmt.Fprintf(&buf, "- %s\n", strings.TrimSpace(r))
		}
	}

	return buf.Bytes(), nil
}
