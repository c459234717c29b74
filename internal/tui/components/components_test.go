package components

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/rgehrsitz/heis/internal/transform"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParameterSlider_Clamps(t *testing.T) {
	s := NewParameterSlider("x", d("9"), d("0"), d("10"), d("2"))

	s.Increment()
	assert.True(t, s.Value.Equal(d("10")), "Should stop at max")

	s.SetValue(d("-4"))
	assert.True(t, s.Value.Equal(d("0")), "Should clamp to min")

	s.Decrement()
	assert.True(t, s.Value.Equal(d("0")), "Should stay at min")
	assert.Equal(t, 0.0, s.Fraction())

	s.SetValue(d("5"))
	assert.InDelta(t, 0.5, s.Fraction(), 1e-9)
}

func TestNewEffectSlider(t *testing.T) {
	effect, ok := transform.LookupEffect(transform.EffectFatMassChange)
	require.True(t, ok)

	s, err := NewEffectSlider(effect, d("-1"))
	require.NoError(t, err)

	assert.Equal(t, transform.EffectFatMassChange, s.Effect)
	assert.Equal(t, "fat mass change", s.Label)
	assert.True(t, s.Min.Equal(d("-30")))
	assert.True(t, s.Max.Equal(d("10")))
	assert.True(t, s.Step.Equal(d("1")), "Should use whole steps on wide ranges")

	iq, _ := transform.LookupEffect(transform.EffectIQIncrease)
	s, err = NewEffectSlider(iq, d("2.5"))
	require.NoError(t, err)
	assert.True(t, s.Step.Equal(d("0.5")), "Should use half steps on narrow ranges")

	_, err = NewEffectSlider(transform.Effect{Name: "unknown"}, d("1"))
	assert.Error(t, err)
}

func TestParameterSlider_Render(t *testing.T) {
	s := NewParameterSlider("alzheimers reduction", d("15"), d("0"), d("50"), d("1"))
	s.Unit = "%"
	s.IsFocused = true

	assert.Contains(t, s.Render(), "15%")
	assert.Contains(t, s.Render(), "0%  ─  50%")
	assert.Contains(t, s.RenderCompact(), "▶")
}

func TestNewImpactCard(t *testing.T) {
	prev := d("1000000")
	card := NewImpactCard(domain.MetricMedicareSavings, d("3000000"), &prev)

	assert.Equal(t, "Medicare Savings", card.Label)
	assert.Equal(t, "$3.0M", card.Value)
	require.NotNil(t, card.Trend)
	assert.True(t, card.Trend.IsPositive)
	assert.Equal(t, "$2.0M", card.Trend.Change)
	assert.Contains(t, card.RenderCompact(), "↑ $2.0M")

	same := NewImpactCard(domain.MetricQALYImprovement, d("10"), &[]decimal.Decimal{d("10")}[0])
	assert.Nil(t, same.Trend, "Should omit trend when unchanged")
	assert.Equal(t, "10", same.Value)
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 2))

	grid := MetricGrid([]*MetricCard{NewMetricCard("A", "1"), NewMetricCard("B", "2"), NewMetricCard("C", "3")}, 2)
	for _, s := range []string{"A", "B", "C"} {
		assert.Contains(t, grid, s)
	}
}

func TestASCIIChart_Render(t *testing.T) {
	empty := NewASCIIChart("Empty")
	assert.Contains(t, empty.Render(), "No data to display")

	chart := NewASCIIChart("Savings").
		WithData([]string{"Y1", "Y2", "Y10"}, []float64{1e9, 2e9}).
		WithWidth(10)

	out := chart.Render()
	assert.Len(t, chart.Values, 2, "Should trim unmatched labels")
	assert.Contains(t, out, "Savings")
	assert.Contains(t, out, "$2.0B")
	assert.Contains(t, out, "██████████", "Should draw the largest bar at full width")
	assert.NotContains(t, out, "Y10")
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "$1.5B", FormatChartValue(1.5e9))
	assert.Equal(t, "$2.5M", FormatChartValue(2.5e6))
	assert.Equal(t, "$12K", FormatChartValue(12000))
	assert.Equal(t, "$-3", FormatChartValue(-3))
}
