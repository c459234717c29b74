package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/rgehrsitz/heis/internal/output"
	"github.com/rgehrsitz/heis/internal/tui/components"
)

// View renders the current state of the dashboard
func (m Model) View() string {
	sections := []string{m.renderTitleBar()}

	switch {
	case m.config == nil && m.err == nil:
		sections = append(sections, BorderStyle.Render("Loading configuration..."))
	case m.config == nil:
		sections = append(sections, m.renderError())
	default:
		if m.err != nil {
			sections = append(sections, m.renderError())
		}
		sections = append(sections, m.renderBody())
	}

	sections = append(sections, StatusBarStyle.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("HEIS - Health & Economic Impact")
	if m.config == nil {
		return title
	}
	crumb := SubtitleStyle.Render(fmt.Sprintf("%s / %s / %s cumulation",
		m.currentIntervention(), m.currentSegment(), m.cumulation))
	return lipgloss.JoinVertical(lipgloss.Left, title, crumb)
}

func (m Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
}

func (m Model) renderBody() string {
	left := m.renderSliders()
	if m.assessment == nil {
		return lipgloss.JoinHorizontal(lipgloss.Top, left, BorderStyle.Render("Calculating..."))
	}
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.renderMetrics(),
		m.renderChart(),
		m.renderScenarios(),
		m.renderWarnings(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderSliders() string {
	if len(m.sliders) == 0 {
		return BorderStyle.Render("No adjustable parameters")
	}
	lines := make([]string, 0, len(m.sliders)+3)
	for _, group := range []struct {
		title   string
		sliders []*components.ParameterSlider
	}{
		{"Effects", m.effects},
		{"Impact modifiers", m.modifiers},
		{"Scenario settings", m.settings},
	} {
		if len(group.sliders) == 0 {
			continue
		}
		lines = append(lines, SubtitleStyle.Render(group.title))
		for _, s := range group.sliders {
			lines = append(lines, s.RenderCompact())
		}
	}
	return ActiveBorderStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderMetrics() string {
	total := m.assessment.Total
	cards := make([]*components.MetricCard, 0, len(domain.AllMetrics))
	for _, metric := range domain.AllMetrics {
		var prev *decimal.Decimal
		if m.previous != nil {
			v := m.previous.Value(metric)
			prev = &v
		}
		cards = append(cards, components.NewImpactCard(metric, total.Value(metric), prev))
	}
	return components.MetricGrid(cards, 2)
}

func (m Model) renderChart() string {
	if len(m.points) == 0 {
		return ""
	}
	labels := make([]string, len(m.points))
	values := make([]float64, len(m.points))
	for i, p := range m.points {
		labels[i] = fmt.Sprintf("Y%d", p.Year)
		values[i] = p.CumulativeMedicareSavings.InexactFloat64()
	}
	return BorderStyle.Render(components.NewASCIIChart("Cumulative Medicare savings").
		WithData(labels, values).
		WithWidth(max(10, m.width/3)).
		Render())
}

// renderScenarios shows the final projected year of each scenario.
func (m Model) renderScenarios() string {
	if len(m.scenarios) == 0 {
		return ""
	}
	labels := make([]string, len(m.scenarios))
	values := make([]float64, len(m.scenarios))
	rows := make([]string, len(m.scenarios))
	for i, sc := range m.scenarios {
		labels[i] = sc.Name
		values[i] = sc.FinalYear.CumulativeMedicareSavings.InexactFloat64()
		rows[i] = fmt.Sprintf("%-12s ×%s  GDP %s  QALYs %s",
			sc.Name, sc.EffectMultiplier.StringFixed(2),
			output.FormatLargeNumber(sc.FinalYear.CumulativeGDPImpact),
			output.FormatQALY(sc.FinalYear.CumulativeQALYImpact))
	}
	chart := components.NewASCIIChart(fmt.Sprintf("%d-year cumulative Medicare savings by scenario", m.scenarios[0].FinalYear.Year)).
		WithData(labels, values).
		WithWidth(max(10, m.width/4)).
		Render()
	return BorderStyle.Render(chart + "\n" + strings.Join(rows, "\n"))
}

func (m Model) renderWarnings() string {
	if len(m.assessment.Warnings) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.assessment.Warnings))
	for _, w := range m.assessment.Warnings {
		lines = append(lines, WarningStyle.Render("⚠ "+w.Message))
	}
	return strings.Join(lines, "\n")
}

// Summary returns a plain one-line description of the current result.
func (m Model) Summary() string {
	if m.assessment == nil {
		return ""
	}
	return fmt.Sprintf("%s/%s GDP %s Medicare %s",
		m.assessment.Intervention, m.assessment.Segment,
		output.FormatLargeNumber(m.assessment.Total.GDPImpact),
		output.FormatLargeNumber(m.assessment.Total.MedicareSavings))
}
