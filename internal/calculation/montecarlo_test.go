package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/rgehrsitz/heis/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMonteCarloConfig(t *testing.T) {
	config := DefaultMonteCarloConfig()

	assert.Equal(t, 1000, config.NumSimulations)
	assert.Len(t, config.Variations, len(transform.EffectNames()), "Should vary every effect")
	assert.NoError(t, config.Validate())
}

func TestMonteCarloConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*MonteCarloConfig)
	}{
		{"zero simulations", func(c *MonteCarloConfig) { c.NumSimulations = 0 }},
		{"confidence of one", func(c *MonteCarloConfig) { c.ConfidenceLevel = d("1") }},
		{"zero confidence", func(c *MonteCarloConfig) { c.ConfidenceLevel = decimal.Zero }},
		{"negative variation", func(c *MonteCarloConfig) { c.Variations[transform.EffectIQIncrease] = d("-0.1") }},
		{"unknown effect", func(c *MonteCarloConfig) { c.Variations["telomere_length"] = d("0.1") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultMonteCarloConfig()
			tt.modify(&config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestMonteCarloSimulator_Deterministic(t *testing.T) {
	config := DefaultMonteCarloConfig()
	config.NumSimulations = 200
	config.Seed = 7

	first, err := NewMonteCarloSimulator(nil, config).Run(context.Background(), klothoInputs(t))
	require.NoError(t, err)
	second, err := NewMonteCarloSimulator(nil, config).Run(context.Background(), klothoInputs(t))
	require.NoError(t, err)

	for _, m := range domain.AllMetrics {
		assert.Equal(t, first.Samples[m], second.Samples[m], "Same seed should reproduce %s samples", m)
		assert.Len(t, first.Samples[m], 200)
	}
	assert.Len(t, first.Summary.Statistics, len(domain.AllMetrics))

	for _, s := range first.Summary.Statistics {
		assert.True(t, s.Lower.LessThanOrEqual(s.Mean) && s.Mean.LessThanOrEqual(s.Upper),
			"%s mean should lie inside its interval", s.Metric)
	}
}

func TestMonteCarloSimulator_ZeroVariationReproducesBase(t *testing.T) {
	in := klothoInputs(t)
	config := DefaultMonteCarloConfig()
	config.NumSimulations = 25
	for name := range config.Variations {
		config.Variations[name] = decimal.Zero
	}

	result, err := NewMonteCarloSimulator(nil, config).Run(context.Background(), in)
	require.NoError(t, err)

	base := CalculateImpact(in.Intervention.Parameters, in.Population, in.Economics, in.Baselines)
	for _, s := range result.Summary.Statistics {
		expected := base.Value(s.Metric).InexactFloat64()
		assert.InEpsilon(t, expected, s.Mean.InexactFloat64(), 1e-9, "%s mean", s.Metric)
		assert.LessOrEqual(t, s.StdDev.InexactFloat64(), expected*1e-9, "%s std dev", s.Metric)
		assert.InEpsilon(t, expected, s.Lower.InexactFloat64(), 1e-9, "%s lower", s.Metric)
		assert.InEpsilon(t, expected, s.Upper.InexactFloat64(), 1e-9, "%s upper", s.Metric)
	}
}

func TestMonteCarloSimulator_SkipsAbsentPathways(t *testing.T) {
	in := klothoInputs(t)
	in.Intervention.Parameters.Physical = nil

	config := DefaultMonteCarloConfig()
	config.NumSimulations = 10

	result, err := NewMonteCarloSimulator(nil, config).Run(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, in.Intervention.Parameters.Physical, "Should not add absent pathways")
	assert.Len(t, result.Samples[domain.MetricHealthcareSavings], 10)
}

func TestMonteCarloSimulator_AbsentPathwayVariationHasNoEffect(t *testing.T) {
	in := klothoInputs(t)
	in.Intervention.Parameters.Physical = nil
	expected := CalculateImpact(in.Intervention.Parameters, in.Population, in.Economics, in.Baselines)

	config := DefaultMonteCarloConfig()
	config.NumSimulations = 20
	config.Variations = map[string]decimal.Decimal{
		transform.EffectMuscleMassChange: d("0.5"),
		transform.EffectFatMassChange:    d("0.5"),
	}

	result, err := NewMonteCarloSimulator(nil, config).Run(context.Background(), in)
	require.NoError(t, err)
	for _, m := range domain.AllMetrics {
		want := expected.Value(m).InexactFloat64()
		for _, got := range result.Samples[m] {
			assert.Equal(t, want, got, "Should not vary %s through an unmodeled pathway", m)
		}
	}
}

func TestMonteCarloSimulator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMonteCarloSimulator(nil, DefaultMonteCarloConfig()).Run(ctx, klothoInputs(t))

	assert.ErrorIs(t, err, context.Canceled)
}
