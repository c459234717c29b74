package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/heis/internal/domain"
)

// ConsoleFormatter renders a compact summary of the headline numbers.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Assessment == nil {
		return nil, fmt.Errorf("report has no assessment")
	}
	var buf bytes.Buffer
	total := report.Assessment.Total

	fmt.Fprintf(&buf, "%s on %s\n", interventionTitle(report), report.Population.Segment.Key)
	for _, m := range domain.AllMetrics {
		fmt.Fprintf(&buf, "  %-20s %s\n", m.Label()+":", FormatMetric(m, total.Value(m)))
	}
	if p := report.Projection; p != nil && len(p.Points) > 0 {
		last := p.Points[len(p.Points)-1]
		fmt.Fprintf(&buf, "  %d-year Medicare:     %s\n", last.Year, FormatLargeNumber(last.CumulativeMedicareSavings))
		fmt.Fprintf(&buf, "  %d-year GDP:          %s\n", last.Year, FormatLargeNumber(last.CumulativeGDPImpact))
	}
	for _, w := range report.Warnings() {
		fmt.Fprintf(&buf, "  warning: %s\n", w.Message)
	}
	return buf.Bytes(), nil
}
