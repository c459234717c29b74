package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Name",
		"Type",
		"Intervention",
		"Segment",
		"GDP Impact",
		"Healthcare Savings",
		"Medicare Savings",
		"QALY Improvement",
		"GDP Diff",
		"GDP % Change",
		"Healthcare Diff",
		"Healthcare % Change",
		"Medicare Diff",
		"Medicare % Change",
		"QALY Diff",
		"QALY % Change",
		"Warnings",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, kind string) []string {
	return []string{
		result.Name,
		kind,
		result.Intervention,
		result.Segment,
		result.Impact.GDPImpact.StringFixed(2),
		result.Impact.HealthcareSavings.StringFixed(2),
		result.Impact.MedicareSavings.StringFixed(2),
		result.Impact.QALYImprovement.StringFixed(2),
		result.DiffFromBase.GDPImpact.StringFixed(2),
		result.PctFromBase.GDPImpact.StringFixed(2),
		result.DiffFromBase.HealthcareSavings.StringFixed(2),
		result.PctFromBase.HealthcareSavings.StringFixed(2),
		result.DiffFromBase.MedicareSavings.StringFixed(2),
		result.PctFromBase.MedicareSavings.StringFixed(2),
		result.DiffFromBase.QALYImprovement.StringFixed(2),
		result.PctFromBase.QALYImprovement.StringFixed(2),
		strconv.Itoa(result.WarningCount),
	}
}
