package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/rgehrsitz/heis/internal/transform"
	"github.com/rgehrsitz/heis/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ParameterSlider displays one adjustable effect with a visual track
type ParameterSlider struct {
	Effect    string
	Label     string
	Value     decimal.Decimal
	Min       decimal.Decimal
	Max       decimal.Decimal
	Step      decimal.Decimal
	Unit      string
	Width     int
	IsFocused bool
}

// NewParameterSlider creates a slider clamped to [min, max]
func NewParameterSlider(label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	p := &ParameterSlider{
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 30,
	}
	p.SetValue(value)
	return p
}

// NewEffectSlider creates a slider over an effect's valid range. Ranges of
// 20 units or less move in half steps.
func NewEffectSlider(effect transform.Effect, value decimal.Decimal) (*ParameterSlider, error) {
	min, max, ok := domain.EffectRange(effect.Name)
	if !ok {
		return nil, fmt.Errorf("no range defined for effect %q", effect.Name)
	}
	step := decimal.NewFromInt(1)
	if max.Sub(min).LessThanOrEqual(decimal.NewFromInt(20)) {
		step = decimal.RequireFromString("0.5")
	}
	p := NewParameterSlider(strings.ReplaceAll(effect.Name, "_", " "), value, min, max, step)
	p.Effect = effect.Name
	p.Unit = effect.Unit
	return p, nil
}

// Increment increases the value by step, stopping at Max
func (p *ParameterSlider) Increment() {
	p.SetValue(p.Value.Add(p.Step))
}

// Decrement decreases the value by step, stopping at Min
func (p *ParameterSlider) Decrement() {
	p.SetValue(p.Value.Sub(p.Step))
}

// SetValue sets the value directly, clamping to min/max
func (p *ParameterSlider) SetValue(value decimal.Decimal) {
	p.Value = decimal.Max(p.Min, decimal.Min(p.Max, value))
}

// Fraction returns the value's position within the range in [0, 1]
func (p *ParameterSlider) Fraction() float64 {
	span := p.Max.Sub(p.Min)
	if span.IsZero() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

func (p *ParameterSlider) valueText(v decimal.Decimal) string {
	s := v.String()
	if p.Unit == "%" {
		return s + "%"
	}
	if p.Unit != "" {
		return s + " " + p.Unit
	}
	return s
}

// Render returns the label, value, track and range on separate lines
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(p.Label))
	b.WriteString(" ")
	b.WriteString(valueStyle.Render(p.valueText(p.Value)))
	b.WriteString("\n")
	b.WriteString(p.track(p.Width))
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s  ─  %s", p.valueText(p.Min), p.valueText(p.Max))))
	return b.String()
}

// RenderCompact returns a single-line version
func (p *ParameterSlider) RenderCompact() string {
	marker := "  "
	labelStyle := tuistyles.ParameterLabelStyle
	if p.IsFocused {
		marker = "▶ "
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
	}
	return fmt.Sprintf("%s%s %s %s",
		marker,
		labelStyle.Render(fmt.Sprintf("%-26s", p.Label)),
		p.track(16),
		tuistyles.ParameterValueStyle.Render(p.valueText(p.Value)))
}

func (p *ParameterSlider) track(width int) string {
	if width < 1 {
		width = 1
	}
	pos := int(math.Round(float64(width-1) * p.Fraction()))

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var b strings.Builder
	b.WriteString("[")
	if pos > 0 {
		b.WriteString(thumbStyle.Render(strings.Repeat("━", pos)))
	}
	b.WriteString(thumbStyle.Render("●"))
	if rest := width - pos - 1; rest > 0 {
		b.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest)))
	}
	b.WriteString("]")
	return b.String()
}
