package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/heis/internal/domain"
)

// CSVSummarizer writes one row per pathway plus a total row.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	if report == nil || report.Assessment == nil {
		return nil, fmt.Errorf("report has no assessment")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Intervention", "Segment", "Pathway", "GDPImpact", "HealthcareSavings", "MedicareSavings", "QALYImprovement"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	a := report.Assessment
	for _, r := range a.Pathways {
		row := []string{
			a.Intervention,
			a.Segment,
			string(r.Pathway),
			r.GDPImpact.StringFixed(2),
			r.HealthcareSavings.StringFixed(2),
			r.MedicareSavings.StringFixed(2),
			r.QALYImprovement.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	total := []string{
		a.Intervention,
		a.Segment,
		"total",
		a.Total.GDPImpact.StringFixed(2),
		a.Total.HealthcareSavings.StringFixed(2),
		a.Total.MedicareSavings.StringFixed(2),
		a.Total.QALYImprovement.StringFixed(2),
	}
	if err := w.Write(total); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// DetailedCSVFormatter writes the projected time series, one row per year.
type DetailedCSVFormatter struct{}

func (d DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (d DetailedCSVFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Projection == nil {
		return nil, fmt.Errorf("report has no projection")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Year",
		"AnnualMedicareSavings", "CumulativeMedicareSavings",
		"AnnualGDPImpact", "CumulativeGDPImpact",
		"AnnualQALYImpact", "CumulativeQALYImpact",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, pt := range report.Projection.Points {
		if err := w.Write(pointRow(pt)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func pointRow(pt domain.TimeSeriesPoint) []string {
	return []string{
		strconv.Itoa(pt.Year),
		pt.AnnualMedicareSavings.StringFixed(2),
		pt.CumulativeMedicareSavings.StringFixed(2),
		pt.AnnualGDPImpact.StringFixed(2),
		pt.CumulativeGDPImpact.StringFixed(2),
		pt.AnnualQALYImpact.StringFixed(2),
		pt.CumulativeQALYImpact.StringFixed(2),
	}
}
