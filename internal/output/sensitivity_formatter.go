package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/heis/internal/domain"
)

// SensitivityFormatter defines a formatter for effect sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivity(summary *domain.SensitivitySummary) (string, error)
	Name() string
}

// NewSensitivityFormatter returns the sensitivity formatter for a format name.
func NewSensitivityFormatter(format string) (SensitivityFormatter, error) {
	switch format {
	case "", "console", "console-lite", "verbose":
		return SensitivityConsoleFormatter{}, nil
	case "csv":
		return SensitivityCSVFormatter{}, nil
	case "json":
		return SensitivityJSONFormatter{}, nil
	}
	return nil, fmt.Errorf("unsupported sensitivity format %q", format)
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivity(summary *domain.SensitivitySummary) (string, error) {
	if summary == nil || len(summary.Results) == 0 {
		return "", fmt.Errorf("no results in sensitivity analysis")
	}
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "EFFECT SENSITIVITY: %s\n", strings.ToUpper(summary.Metric.Label()))
	fmt.Fprintln(&buf, "=================================================================")
	fmt.Fprintf(&buf, "Each effect swung ±%s with all others held at base\n\n", FormatRate(summary.Swing))
	fmt.Fprintf(&buf, "%-28s %16s %16s %16s %8s\n", "Effect", "Low", "Base", "High", "Score")
	fmt.Fprintln(&buf, strings.Repeat("-", 88))
	for _, r := range summary.Results {
		marker := ""
		if r.Effect == summary.MostSensitiveEffect {
			marker = " ← MOST SENSITIVE"
		}
		fmt.Fprintf(&buf, "%-28s %16s %16s %16s %8s%s\n",
			r.Effect,
			FormatMetric(summary.Metric, r.LowOutput),
			FormatMetric(summary.Metric, r.BaseOutput),
			FormatMetric(summary.Metric, r.HighOutput),
			r.Score.StringFixed(3),
			marker)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Risk level: %s\n", summary.RiskLevel)
	for _, rec := range summary.Recommendations {
		fmt.Fprintf(&buf, "• %s\n", rec)
	}
	fmt.Fprintln(&buf)
	return buf.String(), nil
}

// SensitivityCSVFormatter formats sensitivity analysis as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivity(summary *domain.SensitivitySummary) (string, error) {
	if summary == nil {
		return "", fmt.Errorf("no sensitivity analysis")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Metric", "Effect", "BaseValue", "LowValue", "HighValue", "BaseOutput", "LowOutput", "HighOutput", "Score"}); err != nil {
		return "", err
	}
	for _, r := range summary.Results {
		row := []string{
			string(summary.Metric),
			r.Effect,
			r.BaseValue.String(),
			r.LowValue.String(),
			r.HighValue.String(),
			r.BaseOutput.StringFixed(2),
			r.LowOutput.StringFixed(2),
			r.HighOutput.StringFixed(2),
			r.Score.StringFixed(4),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// SensitivityJSONFormatter formats sensitivity analysis as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivity(summary *domain.SensitivitySummary) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
