package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/heis/internal/tui/tuistyles"
)

// ASCIIChart renders labeled values as horizontal bars
type ASCIIChart struct {
	Title  string
	Labels []string
	Values []float64
	Width  int
	Format func(float64) string
}

// NewASCIIChart creates a new bar chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:  title,
		Width:  40,
		Format: FormatChartValue,
	}
}

// WithData sets bar labels and values; extra labels or values are ignored.
func (c *ASCIIChart) WithData(labels []string, values []float64) *ASCIIChart {
	n := min(len(labels), len(values))
	c.Labels = labels[:n]
	c.Values = values[:n]
	return c
}

// WithWidth sets the maximum bar width
func (c *ASCIIChart) WithWidth(width int) *ASCIIChart {
	c.Width = width
	return c
}

// WithFormat sets the value formatter
func (c *ASCIIChart) WithFormat(format func(float64) string) *ASCIIChart {
	c.Format = format
	return c
}

// Render returns the styled chart. Bars are scaled to the largest absolute value.
func (c *ASCIIChart) Render() string {
	if len(c.Values) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		b.WriteString("\n")
	}

	maxAbs := 0.0
	labelWidth := 0
	for i, v := range c.Values {
		maxAbs = math.Max(maxAbs, math.Abs(v))
		labelWidth = max(labelWidth, len(c.Labels[i]))
	}

	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorChartBar)
	negStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)
	for i, v := range c.Values {
		n := 0
		if maxAbs > 0 {
			n = int(math.Round(math.Abs(v) / maxAbs * float64(c.Width)))
		}
		style := barStyle
		if v < 0 {
			style = negStyle
		}
		fmt.Fprintf(&b, "%*s │%s %s\n",
			labelWidth, c.Labels[i],
			style.Render(strings.Repeat("█", n)),
			tuistyles.SubtitleStyle.Render(c.Format(v)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatChartValue formats dollars compactly for chart annotations
func FormatChartValue(value float64) string {
	switch abs := math.Abs(value); {
	case abs >= 1e9:
		return fmt.Sprintf("$%.1fB", value/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.1fM", value/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.0fK", value/1e3)
	}
	return fmt.Sprintf("$%.0f", value)
}
