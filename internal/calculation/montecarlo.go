package calculation

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/rgehrsitz/heis/internal/domain"
	"github.com/rgehrsitz/heis/internal/transform"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// MonteCarloConfig holds configuration for Monte Carlo simulations
type MonteCarloConfig struct {
	NumSimulations  int
	Seed            int64
	ConfidenceLevel decimal.Decimal

	// Variations maps effect names to the standard deviation of a
	// multiplicative Normal(1, σ) perturbation.
	Variations map[string]decimal.Decimal
}

// DefaultMonteCarloConfig returns 1000 simulations at 95% confidence with a
// 20% variation on every effect.
func DefaultMonteCarloConfig() MonteCarloConfig {
	variations := make(map[string]decimal.Decimal)
	for _, name := range transform.EffectNames() {
		variations[name] = decimal.NewFromFloat(0.2)
	}
	return MonteCarloConfig{
		NumSimulations:  1000,
		Seed:            42,
		ConfidenceLevel: decimal.NewFromFloat(0.95),
		Variations:      variations,
	}
}

// Validate checks the simulation settings.
func (c MonteCarloConfig) Validate() error {
	if c.NumSimulations <= 0 {
		return fmt.Errorf("number of simulations must be positive, got %d", c.NumSimulations)
	}
	if !c.ConfidenceLevel.IsPositive() || !c.ConfidenceLevel.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("confidence level must be in (0, 1), got %s", c.ConfidenceLevel.String())
	}
	for name, sigma := range c.Variations {
		if _, ok := transform.LookupEffect(name); !ok {
			return fmt.Errorf("unknown effect %q in variations", name)
		}
		if sigma.IsNegative() {
			return fmt.Errorf("variation for %s cannot be negative", name)
		}
	}
	return nil
}

// MonteCarloResult holds the raw samples and their summary
type MonteCarloResult struct {
	Samples map[domain.Metric][]float64 `json:"-"`
	Summary domain.MonteCarloSummary    `json:"summary"`
}

// MonteCarloSimulator perturbs intervention effects and records the
// distribution of aggregated outcomes.
type MonteCarloSimulator struct {
	calculationEngine *CalculationEngine
	config            MonteCarloConfig
}

// NewMonteCarloSimulator creates a simulator that logs through engine
func NewMonteCarloSimulator(engine *CalculationEngine, config MonteCarloConfig) *MonteCarloSimulator {
	if engine == nil {
		engine = NewCalculationEngine()
	}
	return &MonteCarloSimulator{
		calculationEngine: engine,
		config:            config,
	}
}

// Run executes the simulations sequentially. The same seed always produces
// the same samples. Effects whose pathway is absent are left untouched.
func (mc *MonteCarloSimulator) Run(ctx context.Context, in domain.CalculationInputs) (*MonteCarloResult, error) {
	if err := mc.config.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(mc.config.Variations))
	for name := range mc.config.Variations {
		effect, _ := transform.LookupEffect(name)
		if !effect.Present(in.Intervention.Parameters) {
			mc.calculationEngine.Logger.Debugf("monte carlo: skipping %s: %s pathway not modeled", name, effect.Pathway)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	rng := rand.New(rand.NewSource(mc.config.Seed))
	samples := make(map[domain.Metric][]float64, len(domain.AllMetrics))
	for _, m := range domain.AllMetrics {
		samples[m] = make([]float64, 0, mc.config.NumSimulations)
	}

	for i := 0; i < mc.config.NumSimulations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		params := in.Intervention.Parameters
		for _, name := range names {
			sigma := mc.config.Variations[name].InexactFloat64()
			factor := decimal.NewFromFloat(1 + sigma*rng.NormFloat64())
			varied, err := transform.ScaleEffect(params, name, factor)
			if err != nil {
				return nil, fmt.Errorf("simulation %d: %w", i, err)
			}
			params = varied
		}

		agg := CalculateImpact(params, in.Population, in.Economics, in.Baselines)
		for _, m := range domain.AllMetrics {
			samples[m] = append(samples[m], agg.Value(m).InexactFloat64())
		}
	}

	mc.calculationEngine.Logger.Infof("monte carlo: completed %d simulations (seed %d)", mc.config.NumSimulations, mc.config.Seed)

	return &MonteCarloResult{
		Samples: samples,
		Summary: summarizeSamples(samples, mc.config),
	}, nil
}

func summarizeSamples(samples map[domain.Metric][]float64, config MonteCarloConfig) domain.MonteCarloSummary {
	confidence := config.ConfidenceLevel.InexactFloat64()
	lowerP := (1 - confidence) / 2
	upperP := (1 + confidence) / 2

	summary := domain.MonteCarloSummary{
		Simulations:     config.NumSimulations,
		Seed:            config.Seed,
		ConfidenceLevel: config.ConfidenceLevel,
		Statistics:      make([]domain.MetricStatistics, 0, len(domain.AllMetrics)),
	}

	for _, m := range domain.AllMetrics {
		values := append([]float64(nil), samples[m]...)
		sort.Float64s(values)

		stdDev := 0.0
		if len(values) > 1 {
			stdDev = stat.StdDev(values, nil)
		}

		summary.Statistics = append(summary.Statistics, domain.MetricStatistics{
			Metric: m,
			Mean:   decimal.NewFromFloat(stat.Mean(values, nil)),
			StdDev: decimal.NewFromFloat(stdDev),
			Lower:  decimal.NewFromFloat(stat.Quantile(lowerP, stat.LinInterp, values, nil)),
			Upper:  decimal.NewFromFloat(stat.Quantile(upperP, stat.LinInterp, values, nil)),
		})
	}

	return summary
}
